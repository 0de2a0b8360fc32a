package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upwatch/watchtower/internal/domain"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(cfg domain.WebhookConfig) *Slack {
	return &Slack{Webhook: cfg.URL, Client: newClient()}
}

func (s *Slack) Kind() string { return domain.ChannelSlack }

type slackPayload struct {
	Text string `json:"text"`
}

func (s *Slack) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(slackPayload{Text: "*" + a.MonitorName + " is DOWN*\n" + a.Target + "\n" + a.Reason})
	return postJSON(ctx, s.Client, s.Webhook, body)
}
