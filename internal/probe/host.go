package probe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

const hostProbeTimeout = 10 * time.Second

// HostProber is a reachability check, not a health check: a HEAD request
// where any status below 500 counts as up. Targets without a scheme are
// treated as plain HTTP origins.
type HostProber struct {
	Client *http.Client
}

func NewHostProber() *HostProber {
	return &HostProber{
		Client: &http.Client{Timeout: hostProbeTimeout},
	}
}

func (p *HostProber) Probe(ctx context.Context, target string) Outcome {
	url := target
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Outcome{Up: false, Reason: "Unreachable"}
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return Outcome{Up: false, Reason: "Unreachable"}
	}
	defer resp.Body.Close()

	latency := time.Since(start).Seconds() * 1000
	out := Outcome{
		Up:             resp.StatusCode < 500,
		ResponseTimeMS: ptrFloat(latency),
		Code:           ptrInt(resp.StatusCode),
	}
	if !out.Up {
		out.Reason = "Unreachable"
	}
	return out
}

// shortErr trims the verbose url.Error wrapper down to the underlying cause.
func shortErr(err error) string {
	if inner := errors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}
