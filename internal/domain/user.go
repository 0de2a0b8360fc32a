package domain

// Channel kind identifiers. A monitor's AlertChannels allow-list holds these.
const (
	ChannelTelegram   = "telegram"
	ChannelDiscord    = "discord"
	ChannelSlack      = "slack"
	ChannelTeams      = "teams"
	ChannelPagerDuty  = "pagerduty"
	ChannelGoogleChat = "googlechat"
	ChannelTwilio     = "twilio"
	ChannelWebhook    = "webhook"
)

type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

type WebhookConfig struct {
	URL string `json:"url"`
}

type PagerDutyConfig struct {
	RoutingKey string `json:"routing_key"`
}

type TwilioConfig struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// ChannelSettings holds per-channel connection state for a user. A nil
// pointer means the channel is not connected.
type ChannelSettings struct {
	Telegram   *TelegramConfig  `json:"telegram,omitempty"`
	Discord    *WebhookConfig   `json:"discord,omitempty"`
	Slack      *WebhookConfig   `json:"slack,omitempty"`
	Teams      *WebhookConfig   `json:"teams,omitempty"`
	PagerDuty  *PagerDutyConfig `json:"pagerduty,omitempty"`
	GoogleChat *WebhookConfig   `json:"googlechat,omitempty"`
	Twilio     *TwilioConfig    `json:"twilio,omitempty"`
	Webhook    *WebhookConfig   `json:"webhook,omitempty"`
}

// User is the owning account for monitors. The engine only reads it to
// resolve notification channels; account management lives elsewhere.
type User struct {
	ID       UserID          `json:"id"`
	Email    string          `json:"email"`
	Channels ChannelSettings `json:"channels"`
}
