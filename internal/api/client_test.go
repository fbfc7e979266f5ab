package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"grade":"A"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	var result struct {
		Grade string `json:"grade"`
	}
	if err := c.Post(context.Background(), "/v1/analyze", map[string]string{"text": "hi"}, &result); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if result.Grade != "A" {
		t.Errorf("grade = %q, want A", result.Grade)
	}
}

func TestClientErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"text is required"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Post(context.Background(), "/v1/analyze", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "server error (400): text is required" {
		t.Errorf("error = %q", got)
	}
}

func TestClientWaitReady(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.WaitReady(context.Background(), 30*time.Second); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if calls < 2 {
		t.Errorf("calls = %d, want >= 2", calls)
	}
}
