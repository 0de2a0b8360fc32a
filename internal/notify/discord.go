package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upwatch/watchtower/internal/domain"
)

type Discord struct {
	Webhook string
	Client  *http.Client
}

func NewDiscord(cfg domain.WebhookConfig) *Discord {
	return &Discord{Webhook: cfg.URL, Client: newClient()}
}

func (d *Discord) Kind() string { return domain.ChannelDiscord }

type discordPayload struct {
	Content string `json:"content"`
}

func (d *Discord) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(discordPayload{Content: a.Text()})
	return postJSON(ctx, d.Client, d.Webhook, body)
}
