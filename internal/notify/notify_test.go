package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulsemetrics/adpulse/internal/report"
)

func TestWebhook_PostsTextPayload(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL).Send(context.Background(), report.Notification{Text: "⚠️ weekly digest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received["text"] != "⚠️ weekly digest" {
		t.Errorf("unexpected payload: %v", received)
	}
}

func TestWebhook_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if err := NewWebhook(srv.URL).Send(context.Background(), report.Notification{Text: "x"}); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestStderr_Send(t *testing.T) {
	if err := (Stderr{}).Send(context.Background(), report.Notification{Text: "fallback"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
