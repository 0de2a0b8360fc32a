package domain

import "time"

type MonitorID string

type UserID string

// Status is the last observed probe outcome for a monitor.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusUp      Status = "up"
	StatusDown    Status = "down"
)

// MonitorKind selects which prober runs against the target.
type MonitorKind string

const (
	KindHTTP MonitorKind = "http" // GET against a URL, strict success window
	KindHost MonitorKind = "host" // HEAD reachability check against an address
)

// Lifecycle controls scheduler visibility. Paused monitors are never probed.
type Lifecycle string

const (
	LifecycleActive Lifecycle = "active"
	LifecyclePaused Lifecycle = "paused"
)

type Monitor struct {
	ID             MonitorID   `json:"id"`
	UserID         UserID      `json:"user_id"`
	Name           string      `json:"name"`
	Kind           MonitorKind `json:"kind"`
	Target         string      `json:"target"` // URL for http, host/address for host
	Frequency      Frequency   `json:"frequency"`
	Locations      []string    `json:"locations,omitempty"`
	NotifyOnDown   bool        `json:"notify_on_down"`
	AlertChannels  []string    `json:"alert_channels,omitempty"` // channel kinds this monitor opted into; empty = all connected
	Lifecycle      Lifecycle   `json:"lifecycle"`
	LastStatus     Status      `json:"last_status"`
	LastCheckedAt  *time.Time  `json:"last_checked_at"`
	LastIncidentAt *time.Time  `json:"last_incident_at"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CheckResult is one immutable record of a probe outcome. History is a
// time-ordered append log per monitor and is never rewritten.
type CheckResult struct {
	MonitorID      MonitorID `json:"monitor_id"`
	Outcome        Status    `json:"outcome"`
	ResponseTimeMS *float64  `json:"response_time_ms"` // nil when the probe did not complete
	Code           *int      `json:"code"`             // HTTP status code; nil on transport failure
	Location       string    `json:"location"`
	Reason         string    `json:"reason,omitempty"` // populated only on down
	CheckedAt      time.Time `json:"checked_at"`
}

// Incident is a derived view: a maximal contiguous run of down results,
// bounded by up results or still ongoing. Never stored.
type Incident struct {
	MonitorID MonitorID  `json:"monitor_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"` // nil while ongoing
	Reason    string     `json:"reason"`   // first down result's reason in the run
}
