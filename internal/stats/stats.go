package stats

import (
	"context"
	"math"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/repo"
)

// DefaultWindow is the trailing window the read APIs report over.
const DefaultWindow = 24 * time.Hour

// Summary is the derived read-side view of a monitor's check history.
type Summary struct {
	UptimePercent        float64 `json:"uptime_percent"`
	AvgResponseMS        float64 `json:"avg_response_ms"`
	Incidents            int     `json:"incidents"`
	DaysWithoutIncidents int     `json:"days_without_incidents"`
}

// Compute derives a Summary from results in chronological order. It is a
// pure function of its inputs: running it twice on the same window yields
// identical output.
//
// lastDownEver is the newest down result ever recorded (not just in the
// window); days-without-incidents falls back to the monitor's creation
// time when the monitor has never been down.
func Compute(results []domain.CheckResult, lastDownEver *time.Time, createdAt, now time.Time) Summary {
	var s Summary

	upCount := 0
	var latencySum float64
	latencyN := 0
	incidents := 0
	prev := domain.StatusUnknown
	for _, r := range results {
		if r.Outcome == domain.StatusUp {
			upCount++
			if r.ResponseTimeMS != nil {
				latencySum += *r.ResponseTimeMS
				latencyN++
			}
		}
		// incidents are counted at their start: an up immediately followed
		// by a down
		if prev == domain.StatusUp && r.Outcome == domain.StatusDown {
			incidents++
		}
		prev = r.Outcome
	}

	if len(results) > 0 {
		s.UptimePercent = math.Round(float64(upCount)/float64(len(results))*100*100) / 100
	}
	if latencyN > 0 {
		s.AvgResponseMS = latencySum / float64(latencyN)
	}
	s.Incidents = incidents

	since := createdAt
	if lastDownEver != nil {
		since = *lastDownEver
	}
	if days := int(now.Sub(since).Hours() / 24); days > 0 {
		s.DaysWithoutIncidents = days
	}
	return s
}

// Incidents derives the contiguous down runs from chronological results.
// A run starts at the first down after a non-down result, ends at the next
// up, and is ongoing when the window ends while still down. The run's
// reason is the first down result's reason.
func Incidents(results []domain.CheckResult) []domain.Incident {
	var out []domain.Incident
	var open *domain.Incident
	for _, r := range results {
		switch r.Outcome {
		case domain.StatusDown:
			if open == nil {
				open = &domain.Incident{
					MonitorID: r.MonitorID,
					StartedAt: r.CheckedAt,
					Reason:    r.Reason,
				}
			}
		case domain.StatusUp:
			if open != nil {
				t := r.CheckedAt
				open.EndedAt = &t
				out = append(out, *open)
				open = nil
			}
		}
	}
	if open != nil {
		out = append(out, *open)
	}
	return out
}

// Service answers summary queries against the check-history store.
type Service struct {
	Checks repo.CheckStore
	Window time.Duration
}

func NewService(checks repo.CheckStore) *Service {
	return &Service{Checks: checks, Window: DefaultWindow}
}

func (s *Service) Summary(ctx context.Context, m *domain.Monitor) (Summary, error) {
	now := time.Now().UTC()
	results, err := s.Checks.ListSince(ctx, m.ID, now.Add(-s.Window))
	if err != nil {
		return Summary{}, err
	}
	lastDown, err := s.Checks.LastDownAt(ctx, m.ID)
	if err != nil {
		return Summary{}, err
	}
	return Compute(results, lastDown, m.CreatedAt, now), nil
}
