package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin(t *testing.T) {
	keys := Keys{Admin: []string{"adm1", "adm2"}, Public: []string{"pub"}}
	h := RequireAdmin(keys)(okHandler())

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"no key", "", "", http.StatusForbidden},
		{"public key rejected", "X-API-Key", "pub", http.StatusForbidden},
		{"wrong key", "X-API-Key", "nope", http.StatusForbidden},
		{"admin key", "X-API-Key", "adm1", http.StatusOK},
		{"second admin key", "X-API-Key", "adm2", http.StatusOK},
		{"bearer admin key", "Authorization", "Bearer adm1", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/checks/run", nil)
		if tc.header != "" {
			req.Header.Set(tc.header, tc.value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}

func TestRequireAdmin_NoKeysConfiguredAllowsAll(t *testing.T) {
	h := RequireAdmin(Keys{})(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("want open access with no keys, got %d", rec.Code)
	}
}

func TestRequireAny(t *testing.T) {
	keys := Keys{Admin: []string{"adm"}, Public: []string{"pub"}}
	h := RequireAny(keys)(okHandler())

	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"no key", "", http.StatusUnauthorized},
		{"public key", "pub", http.StatusOK},
		{"admin key", "adm", http.StatusOK},
		{"wrong key", "nope", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/monitors", nil)
		if tc.value != "" {
			req.Header.Set("X-API-Key", tc.value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}
