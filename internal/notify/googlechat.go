package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upwatch/watchtower/internal/domain"
)

type GoogleChat struct {
	Webhook string
	Client  *http.Client
}

func NewGoogleChat(cfg domain.WebhookConfig) *GoogleChat {
	return &GoogleChat{Webhook: cfg.URL, Client: newClient()}
}

func (g *GoogleChat) Kind() string { return domain.ChannelGoogleChat }

func (g *GoogleChat) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(map[string]string{"text": a.Text()})
	return postJSON(ctx, g.Client, g.Webhook, body)
}
