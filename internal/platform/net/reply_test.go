package net_test

import (
	"net/http"
	"testing"

	perr "homeboard/internal/platform/errors"
	pnet "homeboard/internal/platform/net"
)

func TestOK(t *testing.T) {
	reqID := "req-1"
	data := map[string]any{"x": 1}

	status, w := pnet.OK(data, reqID)

	if status != http.StatusOK {
		t.Fatalf("status %d want %d", status, http.StatusOK)
	}
	if !w.Success {
		t.Fatalf("expected success envelope: %+v", w)
	}
	if w.RequestID != reqID {
		t.Fatalf("req id %q want %q", w.RequestID, reqID)
	}
	if got, ok := w.Data.(map[string]any)["x"]; !ok || got != 1 {
		t.Fatalf("data mismatch: %+v", w.Data)
	}
}

func TestError_NilFallsBackToOK(t *testing.T) {
	reqID := "req-2"

	status, w := pnet.Error(nil, reqID)

	if status != http.StatusOK {
		t.Fatalf("status %d want %d", status, http.StatusOK)
	}
	if !w.Success || w.Error != "" {
		t.Fatalf("expected success envelope, got %+v", w)
	}
}

func TestError_ProjectErrorMapped(t *testing.T) {
	reqID := "req-3"
	err := perr.New(perr.ErrorCodeUnavailable, "hub offline")

	status, w := pnet.Error(err, reqID)

	if status != http.StatusServiceUnavailable {
		t.Fatalf("status %d want %d", status, http.StatusServiceUnavailable)
	}
	if w.Success {
		t.Fatalf("expected failure envelope: %+v", w)
	}
	if w.RequestID != reqID {
		t.Fatalf("req id %q want %q", w.RequestID, reqID)
	}
	if w.Error == "" {
		t.Fatalf("expected error message to be set")
	}
	if w.Data != nil {
		t.Fatalf("expected data to be nil on error, got %v", w.Data)
	}
}
