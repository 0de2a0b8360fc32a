package notify

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/repo"
)

// Dispatcher fans a failure event out to every channel the monitor's owner
// has both connected and opted in for. Channels are independent: one
// failing send never blocks the others, and nothing is retried.
type Dispatcher struct {
	Users  repo.UserStore
	Logger *zap.Logger
}

func NewDispatcher(users repo.UserStore, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{Users: users, Logger: logger}
}

// Dispatch resolves the owner's channels and sends one alert per channel.
// It only ever logs failures; the alerting path is best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, m *domain.Monitor, r *domain.CheckResult) {
	user, err := d.Users.GetUser(ctx, m.UserID)
	if err != nil {
		d.Logger.Warn("notify_user_lookup_error",
			zap.String("monitor_id", string(m.ID)),
			zap.String("user_id", string(m.UserID)),
			zap.Error(err),
		)
		return
	}
	if user == nil {
		d.Logger.Warn("notify_user_missing",
			zap.String("monitor_id", string(m.ID)),
			zap.String("user_id", string(m.UserID)),
		)
		return
	}

	alert := Alert{
		MonitorName: m.Name,
		Target:      m.Target,
		Reason:      r.Reason,
		At:          time.Now().UTC(),
	}

	var sendErr error
	sent := 0
	for _, n := range Channels(user, m.AlertChannels) {
		if err := n.Send(ctx, alert); err != nil {
			d.Logger.Warn("notify_send_error",
				zap.String("monitor_id", string(m.ID)),
				zap.String("channel", n.Kind()),
				zap.Error(err),
			)
			sendErr = multierr.Append(sendErr, err)
			continue
		}
		sent++
		d.Logger.Info("notify_sent",
			zap.String("monitor_id", string(m.ID)),
			zap.String("channel", n.Kind()),
		)
	}

	if sendErr != nil {
		d.Logger.Warn("notify_partial_failure",
			zap.String("monitor_id", string(m.ID)),
			zap.Int("sent", sent),
			zap.Int("failed", len(multierr.Errors(sendErr))),
		)
	}
}

// Channels builds the adapter list for a user, filtered by a monitor's
// allow-list. An empty allow-list means every connected channel.
func Channels(u *domain.User, allow []string) []Notifier {
	allowed := func(kind string) bool {
		if len(allow) == 0 {
			return true
		}
		for _, k := range allow {
			if k == kind {
				return true
			}
		}
		return false
	}

	var out []Notifier
	c := u.Channels
	if c.Telegram != nil && allowed(domain.ChannelTelegram) {
		out = append(out, NewTelegram(*c.Telegram))
	}
	if c.Discord != nil && allowed(domain.ChannelDiscord) {
		out = append(out, NewDiscord(*c.Discord))
	}
	if c.Slack != nil && allowed(domain.ChannelSlack) {
		out = append(out, NewSlack(*c.Slack))
	}
	if c.Teams != nil && allowed(domain.ChannelTeams) {
		out = append(out, NewTeams(*c.Teams))
	}
	if c.PagerDuty != nil && allowed(domain.ChannelPagerDuty) {
		out = append(out, NewPagerDuty(*c.PagerDuty))
	}
	if c.GoogleChat != nil && allowed(domain.ChannelGoogleChat) {
		out = append(out, NewGoogleChat(*c.GoogleChat))
	}
	if c.Twilio != nil && allowed(domain.ChannelTwilio) {
		out = append(out, NewTwilio(*c.Twilio))
	}
	if c.Webhook != nil && allowed(domain.ChannelWebhook) {
		out = append(out, NewWebhook(*c.Webhook))
	}
	return out
}
