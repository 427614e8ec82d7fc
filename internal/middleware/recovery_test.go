package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vineetGray/crudtodo/internal/middleware"
)

func TestRecovery_PanicReturnsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	h := middleware.Recovery(logger)(inner)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if body["error"] != "something went wrong on the server" {
		t.Errorf("expected generic error message, got %v", body["error"])
	}

	// The panic detail stays server-side only
	if !strings.Contains(buf.String(), "boom") {
		t.Error("expected panic value in log output")
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	h := middleware.Recovery(logger)(inner)
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
}

func TestRecovery_PanicAfterHeaderWritten(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		panic("late panic")
	})

	h := middleware.Recovery(logger)(inner)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	// Too late to change the status; the panic is only logged
	if w.Code != http.StatusOK {
		t.Errorf("expected original status 200, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "late panic") {
		t.Error("expected panic value in log output")
	}
}
