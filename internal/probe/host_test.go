package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHostProber_LenientWindow(t *testing.T) {
	// A 404 means the origin answered, which is all reachability asks for.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("want HEAD, got %s", r.Method)
		}
		w.WriteHeader(404)
	}))
	defer s.Close()

	out := NewHostProber().Probe(context.Background(), s.URL)
	if !out.Up {
		t.Fatalf("4xx should count as reachable, got %+v", out)
	}
	if out.Code == nil || *out.Code != 404 {
		t.Fatalf("want code 404, got %v", out.Code)
	}
}

func TestHostProber_ServerErrorIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer s.Close()

	out := NewHostProber().Probe(context.Background(), s.URL)
	if out.Up {
		t.Fatalf("5xx should be down, got %+v", out)
	}
	if out.Reason != "Unreachable" {
		t.Fatalf("want Unreachable, got %q", out.Reason)
	}
}

func TestHostProber_SchemeDefaulted(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer s.Close()

	bare := strings.TrimPrefix(s.URL, "http://")
	out := NewHostProber().Probe(context.Background(), bare)
	if !out.Up {
		t.Fatalf("bare host should be probed over plain http, got %+v", out)
	}
}

func TestHostProber_Unreachable(t *testing.T) {
	out := NewHostProber().Probe(context.Background(), "127.0.0.1:1")
	if out.Up {
		t.Fatalf("want down, got %+v", out)
	}
	if out.Reason != "Unreachable" {
		t.Fatalf("want Unreachable, got %q", out.Reason)
	}
	if out.ResponseTimeMS != nil {
		t.Fatalf("want nil latency, got %v", *out.ResponseTimeMS)
	}
}
