package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/repo"
)

var (
	_ repo.MonitorStore = (*Store)(nil)
	_ repo.CheckStore   = (*Store)(nil)
	_ repo.UserStore    = (*Store)(nil)
)

// Store keeps everything in process memory. Results are held as an
// append-only slice per monitor, mirroring the history log contract.
type Store struct {
	mu       sync.RWMutex
	monitors map[domain.MonitorID]*domain.Monitor
	results  map[domain.MonitorID][]domain.CheckResult
	users    map[domain.UserID]*domain.User
}

func New() *Store {
	return &Store{
		monitors: make(map[domain.MonitorID]*domain.Monitor),
		results:  make(map[domain.MonitorID][]domain.CheckResult),
		users:    make(map[domain.UserID]*domain.User),
	}
}

// ---- MonitorStore ----

func (s *Store) Add(ctx context.Context, m *domain.Monitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = domain.MonitorID(uuid.NewString())
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if m.Lifecycle == "" {
		m.Lifecycle = domain.LifecycleActive
	}
	if m.LastStatus == "" {
		m.LastStatus = domain.StatusUnknown
	}
	cp := *m
	s.monitors[m.ID] = &cp
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.MonitorID) (*domain.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.monitors[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *Store) ListActive(ctx context.Context) ([]domain.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Monitor, 0, len(s.monitors))
	for _, m := range s.monitors {
		if m.Lifecycle != domain.LifecycleActive {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id domain.MonitorID, status domain.Status, checkedAt time.Time, incidentAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.monitors[id]
	if !ok {
		return nil
	}
	m.LastStatus = status
	m.LastCheckedAt = &checkedAt
	if incidentAt != nil {
		t := *incidentAt
		m.LastIncidentAt = &t
	}
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// ---- CheckStore ----

func (s *Store) Append(ctx context.Context, r *domain.CheckResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.MonitorID] = append(s.results[r.MonitorID], *r)
	return nil
}

func (s *Store) LastByMonitor(ctx context.Context, id domain.MonitorID) (*domain.CheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.results[id]
	if len(rs) == 0 {
		return nil, nil
	}
	cp := rs[len(rs)-1]
	return &cp, nil
}

func (s *Store) ListSince(ctx context.Context, id domain.MonitorID, since time.Time) ([]domain.CheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CheckResult
	for _, r := range s.results[id] {
		if !r.CheckedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) LastDownAt(ctx context.Context, id domain.MonitorID) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.results[id]
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Outcome == domain.StatusDown {
			t := rs[i].CheckedAt
			return &t, nil
		}
	}
	return nil, nil
}

// ---- UserStore ----

func (s *Store) PutUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = domain.UserID(uuid.NewString())
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
