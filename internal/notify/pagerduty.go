package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
)

type PagerDuty struct {
	RoutingKey string
	Client     *http.Client

	// EventsURL is overridable for tests; defaults to Events API v2.
	EventsURL string
}

func NewPagerDuty(cfg domain.PagerDutyConfig) *PagerDuty {
	return &PagerDuty{
		RoutingKey: cfg.RoutingKey,
		Client:     newClient(),
		EventsURL:  "https://events.pagerduty.com/v2/enqueue",
	}
}

func (p *PagerDuty) Kind() string { return domain.ChannelPagerDuty }

type pagerDutyPayload struct {
	RoutingKey  string `json:"routing_key"`
	EventAction string `json:"event_action"`
	Payload     struct {
		Summary   string `json:"summary"`
		Source    string `json:"source"`
		Severity  string `json:"severity"`
		Timestamp string `json:"timestamp"`
	} `json:"payload"`
}

func (p *PagerDuty) Send(ctx context.Context, a Alert) error {
	ev := pagerDutyPayload{RoutingKey: p.RoutingKey, EventAction: "trigger"}
	ev.Payload.Summary = a.MonitorName + " is DOWN: " + a.Reason
	ev.Payload.Source = a.Target
	ev.Payload.Severity = "critical"
	ev.Payload.Timestamp = a.At.Format(time.RFC3339)
	body, _ := json.Marshal(ev)
	return postJSON(ctx, p.Client, p.EventsURL, body)
}
