package probe

import (
	"context"
	"fmt"

	"github.com/upwatch/watchtower/internal/domain"
)

// Outcome is the normalized result of a single probe attempt.
//
// ResponseTimeMS is nil when the probe did not complete (timeout, DNS
// failure, connection refused); a nil latency is the documented signal for
// "did not complete". Code is the HTTP status code when an exchange
// happened, nil otherwise.
type Outcome struct {
	Up             bool
	ResponseTimeMS *float64
	Code           *int
	Reason         string
}

// Prober performs exactly one network probe per invocation. No retries.
type Prober interface {
	Probe(ctx context.Context, target string) Outcome
}

// ForKind returns the prober matching a monitor kind.
func ForKind(kind domain.MonitorKind) (Prober, error) {
	switch kind {
	case domain.KindHTTP:
		return NewHTTPProber(), nil
	case domain.KindHost:
		return NewHostProber(), nil
	default:
		return nil, fmt.Errorf("unknown monitor kind %q", kind)
	}
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }
