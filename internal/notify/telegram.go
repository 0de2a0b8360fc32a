package notify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upwatch/watchtower/internal/domain"
)

type Telegram struct {
	BotToken string
	ChatID   string
	Client   *http.Client

	// BaseURL is overridable for tests; defaults to the Bot API.
	BaseURL string
}

func NewTelegram(cfg domain.TelegramConfig) *Telegram {
	return &Telegram{
		BotToken: cfg.BotToken,
		ChatID:   cfg.ChatID,
		Client:   newClient(),
		BaseURL:  "https://api.telegram.org",
	}
}

func (t *Telegram) Kind() string { return domain.ChannelTelegram }

type telegramPayload struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (t *Telegram) Send(ctx context.Context, a Alert) error {
	body, _ := json.Marshal(telegramPayload{ChatID: t.ChatID, Text: a.Text()})
	return postJSON(ctx, t.Client, t.BaseURL+"/bot"+t.BotToken+"/sendMessage", body)
}
