package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	httpProbeTimeout = 30 * time.Second
	maxRedirects     = 5
)

// HTTPProber issues a single GET and applies the strict success window:
// any status in [200,400) is up, everything else is down.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		Client: &http.Client{
			Timeout: httpProbeTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{Up: false, Reason: err.Error()}
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return Outcome{Up: false, Reason: shortErr(err)}
	}
	defer resp.Body.Close()

	latency := time.Since(start).Seconds() * 1000
	out := Outcome{
		Up:             resp.StatusCode >= 200 && resp.StatusCode < 400,
		ResponseTimeMS: ptrFloat(latency),
		Code:           ptrInt(resp.StatusCode),
	}
	if !out.Up {
		out.Reason = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return out
}
