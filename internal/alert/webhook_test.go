package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
)

func TestWebhookNotifierDefaultTemplate(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(zerolog.Nop(), server.URL, "")
	if err != nil {
		t.Fatalf("NewWebhookNotifier error: %v", err)
	}
	event := testEvent(models.AlertAlarm)
	event.Message = `Refill "tank" now`
	if err := notifier.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("default template produced invalid JSON %s: %v", body, err)
	}
	if decoded["kind"] != "alarm" || decoded["message"] != event.Message {
		t.Fatalf("unexpected payload %v", decoded)
	}
	if decoded["firedAt"] != "2026-03-14T12:00:00Z" {
		t.Fatalf("unexpected firedAt %q", decoded["firedAt"])
	}
}

func TestWebhookNotifierCustomTemplate(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(zerolog.Nop(), server.URL, `{"text":"{{ .Event.Kind }}: {{ .Event.Title }}"}`)
	if err != nil {
		t.Fatalf("NewWebhookNotifier error: %v", err)
	}
	if err := notifier.Notify(context.Background(), testEvent(models.AlertFilter)); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if !strings.Contains(body, `"text":"filter: Service interval reached"`) {
		t.Fatalf("unexpected payload %s", body)
	}
}

func TestWebhookNotifierRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(zerolog.Nop(), server.URL, "")
	if err != nil {
		t.Fatalf("NewWebhookNotifier error: %v", err)
	}
	notifier.poster.timing.backoffInitial = time.Millisecond
	notifier.poster.timing.backoffMax = 2 * time.Millisecond
	notifier.poster.timing.backoffMaxElapsed = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := notifier.Notify(ctx, testEvent(models.AlertAlarm)); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestWebhookNotifierDisabledAndInvalid(t *testing.T) {
	notifier, err := NewWebhookNotifier(zerolog.Nop(), "", "")
	if err != nil || notifier != nil {
		t.Fatalf("expected nil notifier without URL, got %v, %v", notifier, err)
	}
	if err := notifier.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("nil notifier should be a no-op, got %v", err)
	}
	if _, err := NewWebhookNotifier(zerolog.Nop(), "http://example.com", "{{"); err == nil {
		t.Fatalf("expected template error")
	}
}
