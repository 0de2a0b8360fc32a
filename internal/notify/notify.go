package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Alert is the channel-independent payload for a failure event.
type Alert struct {
	MonitorName string
	Target      string
	Reason      string
	At          time.Time
}

// Text renders the shared human-readable body used by chat-style channels.
func (a Alert) Text() string {
	return fmt.Sprintf("%s is DOWN\nTarget: %s\nReason: %s\nAt: %s",
		a.MonitorName, a.Target, a.Reason, a.At.Format(time.RFC3339))
}

// Notifier delivers one alert through one channel. Implementations are
// fire-and-forget: the response is inspected only to decide success for
// logging, never for control flow.
type Notifier interface {
	Kind() string
	Send(ctx context.Context, a Alert) error
}

// postJSON is the shared send path for webhook-style channels.
func postJSON(ctx context.Context, client *http.Client, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("non-2xx response: " + resp.Status)
	}
	return nil
}

func newClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
