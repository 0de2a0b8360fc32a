package notify

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/upwatch/watchtower/internal/domain"
)

type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	Client     *http.Client

	// APIBase is overridable for tests.
	APIBase string
}

func NewTwilio(cfg domain.TwilioConfig) *Twilio {
	return &Twilio{
		AccountSID: cfg.AccountSID,
		AuthToken:  cfg.AuthToken,
		From:       cfg.From,
		To:         cfg.To,
		Client:     newClient(),
		APIBase:    "https://api.twilio.com",
	}
}

func (t *Twilio) Kind() string { return domain.ChannelTwilio }

// Send posts a form-encoded SMS request to the Messages endpoint with
// basic auth, which is how the Twilio REST API is spoken without an SDK.
func (t *Twilio) Send(ctx context.Context, a Alert) error {
	form := url.Values{}
	form.Set("From", t.From)
	form.Set("To", t.To)
	form.Set("Body", a.MonitorName+" is DOWN ("+a.Target+"): "+a.Reason)

	endpoint := t.APIBase + "/2010-04-01/Accounts/" + t.AccountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("non-2xx response: " + resp.Status)
	}
	return nil
}
