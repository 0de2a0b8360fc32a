package memory

import (
	"context"
	"testing"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
)

func TestStore_AddAndListActive(t *testing.T) {
	s := New()
	ctx := context.Background()

	active := &domain.Monitor{Name: "a", Kind: domain.KindHTTP, Target: "https://a.example"}
	paused := &domain.Monitor{Name: "b", Kind: domain.KindHTTP, Target: "https://b.example", Lifecycle: domain.LifecyclePaused}
	if err := s.Add(ctx, active); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(ctx, paused); err != nil {
		t.Fatal(err)
	}
	if active.ID == "" {
		t.Fatalf("want minted id")
	}
	if active.LastStatus != domain.StatusUnknown {
		t.Fatalf("want unknown initial status, got %q", active.LastStatus)
	}

	ms, err := s.ListActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].ID != active.ID {
		t.Fatalf("paused monitor must not be listed: %+v", ms)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	m := &domain.Monitor{Name: "a", Kind: domain.KindHTTP, Target: "https://a.example"}
	if err := s.Add(ctx, m); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	if err := s.UpdateStatus(ctx, m.ID, domain.StatusDown, now, &now); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastStatus != domain.StatusDown {
		t.Fatalf("want down, got %q", got.LastStatus)
	}
	if got.LastCheckedAt == nil || !got.LastCheckedAt.Equal(now) {
		t.Fatalf("want lastCheckedAt %v, got %v", now, got.LastCheckedAt)
	}
	if got.LastIncidentAt == nil || !got.LastIncidentAt.Equal(now) {
		t.Fatalf("want lastIncidentAt %v, got %v", now, got.LastIncidentAt)
	}

	// recovery must not clear lastIncidentAt
	later := now.Add(time.Minute)
	if err := s.UpdateStatus(ctx, m.ID, domain.StatusUp, later, nil); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(ctx, m.ID)
	if got.LastIncidentAt == nil || !got.LastIncidentAt.Equal(now) {
		t.Fatalf("lastIncidentAt should survive recovery, got %v", got.LastIncidentAt)
	}
}

func TestStore_CheckHistory(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := domain.MonitorID("m1")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	outcomes := []domain.Status{domain.StatusUp, domain.StatusDown, domain.StatusUp}
	for i, o := range outcomes {
		r := &domain.CheckResult{MonitorID: id, Outcome: o, CheckedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	last, err := s.LastByMonitor(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || !last.CheckedAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("unexpected last result: %+v", last)
	}

	rs, err := s.ListSince(ctx, id, base.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 {
		t.Fatalf("want 2 results since t+1m, got %d", len(rs))
	}

	downAt, err := s.LastDownAt(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if downAt == nil || !downAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("unexpected last down: %v", downAt)
	}

	if got, _ := s.LastByMonitor(ctx, "absent"); got != nil {
		t.Fatalf("want nil for unknown monitor, got %+v", got)
	}
	if got, _ := s.LastDownAt(ctx, "absent"); got != nil {
		t.Fatalf("want nil last down for unknown monitor")
	}
}

func TestStore_Users(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := &domain.User{Email: "owner@example.com", Channels: domain.ChannelSettings{
		Slack: &domain.WebhookConfig{URL: "https://hooks.slack.example/x"},
	}}
	if err := s.PutUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Channels.Slack == nil {
		t.Fatalf("unexpected user: %+v", got)
	}
	if missing, _ := s.GetUser(ctx, "nobody"); missing != nil {
		t.Fatalf("want nil for unknown user")
	}
}
