package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upwatch/watchtower/internal/domain"
)

type Teams struct {
	Webhook string
	Client  *http.Client
}

func NewTeams(cfg domain.WebhookConfig) *Teams {
	return &Teams{Webhook: cfg.URL, Client: newClient()}
}

func (t *Teams) Kind() string { return domain.ChannelTeams }

// Teams incoming webhooks still speak the legacy MessageCard schema.
type teamsPayload struct {
	Type       string `json:"@type"`
	Context    string `json:"@context"`
	Summary    string `json:"summary"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	ThemeColor string `json:"themeColor"`
}

func (t *Teams) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(teamsPayload{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		Summary:    a.MonitorName + " is DOWN",
		Title:      a.MonitorName + " is DOWN",
		Text:       a.Target + "<br>" + a.Reason,
		ThemeColor: "E81123",
	})
	return postJSON(ctx, t.Client, t.Webhook, body)
}
