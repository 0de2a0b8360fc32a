package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
)

func testAlert() Alert {
	return Alert{
		MonitorName: "api",
		Target:      "https://api.example.com",
		Reason:      "HTTP 503",
		At:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSlack_PayloadAndNon2xx(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]string
		_ = json.NewDecoder(r.Body).Decode(&p)
		got = p["text"]
		w.WriteHeader(200)
	}))
	defer ts.Close()

	s := NewSlack(domain.WebhookConfig{URL: ts.URL})
	if err := s.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if !strings.Contains(got, "api is DOWN") || !strings.Contains(got, "HTTP 503") {
		t.Fatalf("payload not as expected: %q", got)
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer bad.Close()
	s2 := NewSlack(domain.WebhookConfig{URL: bad.URL})
	if err := s2.Send(context.Background(), testAlert()); err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestTelegram_SendsToBotAPI(t *testing.T) {
	var path string
	var p telegramPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	tg := NewTelegram(domain.TelegramConfig{BotToken: "tok123", ChatID: "42"})
	tg.BaseURL = ts.URL
	if err := tg.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if path != "/bottok123/sendMessage" {
		t.Fatalf("unexpected path %q", path)
	}
	if p.ChatID != "42" || !strings.Contains(p.Text, "api is DOWN") {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestDiscord_ContentField(t *testing.T) {
	var p discordPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.WriteHeader(204)
	}))
	defer ts.Close()

	d := NewDiscord(domain.WebhookConfig{URL: ts.URL})
	if err := d.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if !strings.Contains(p.Content, "https://api.example.com") {
		t.Fatalf("unexpected content %q", p.Content)
	}
}

func TestTeams_MessageCard(t *testing.T) {
	var p teamsPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	tm := NewTeams(domain.WebhookConfig{URL: ts.URL})
	if err := tm.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if p.Type != "MessageCard" || p.Title != "api is DOWN" {
		t.Fatalf("unexpected card %+v", p)
	}
}

func TestPagerDuty_TriggerEvent(t *testing.T) {
	var p pagerDutyPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.WriteHeader(202)
	}))
	defer ts.Close()

	pd := NewPagerDuty(domain.PagerDutyConfig{RoutingKey: "rk"})
	pd.EventsURL = ts.URL
	if err := pd.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if p.RoutingKey != "rk" || p.EventAction != "trigger" || p.Payload.Severity != "critical" {
		t.Fatalf("unexpected event %+v", p)
	}
}

func TestTwilio_FormPostWithBasicAuth(t *testing.T) {
	var user, pass, body, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		path = r.URL.Path
		_ = r.ParseForm()
		body = r.PostFormValue("Body")
		w.WriteHeader(201)
	}))
	defer ts.Close()

	tw := NewTwilio(domain.TwilioConfig{AccountSID: "AC1", AuthToken: "secret", From: "+100", To: "+200"})
	tw.APIBase = ts.URL
	if err := tw.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if user != "AC1" || pass != "secret" {
		t.Fatalf("basic auth not set: %q %q", user, pass)
	}
	if path != "/2010-04-01/Accounts/AC1/Messages.json" {
		t.Fatalf("unexpected path %q", path)
	}
	if !strings.Contains(body, "api is DOWN") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestWebhook_RawAlertJSON(t *testing.T) {
	var p webhookPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&p)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	wh := NewWebhook(domain.WebhookConfig{URL: ts.URL})
	if err := wh.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if p.Monitor != "api" || p.Status != "down" || p.Reason != "HTTP 503" {
		t.Fatalf("unexpected payload %+v", p)
	}
}
