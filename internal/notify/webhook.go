package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
)

// Webhook posts the raw alert as JSON to a user-supplied URL.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(cfg domain.WebhookConfig) *Webhook {
	return &Webhook{URL: cfg.URL, Client: newClient()}
}

func (w *Webhook) Kind() string { return domain.ChannelWebhook }

type webhookPayload struct {
	Monitor string    `json:"monitor"`
	Target  string    `json:"target"`
	Status  string    `json:"status"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"at"`
}

func (w *Webhook) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(webhookPayload{
		Monitor: a.MonitorName,
		Target:  a.Target,
		Status:  "down",
		Reason:  a.Reason,
		At:      a.At,
	})
	return postJSON(ctx, w.Client, w.URL, body)
}
