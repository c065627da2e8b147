package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pingOK(context.Context) error   { return nil }
func pingDown(context.Context) error { return errors.New("connection refused") }

func TestHandler_AllHealthy(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.Register(NewCheckFunc("postgres", pingOK))
	handler.Register(NewCheckFunc("kafka", pingOK))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", report.Status)
	}
	if report.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %s", report.Version)
	}
	if len(report.Probes) != 2 {
		t.Fatalf("expected 2 probes, got %d", len(report.Probes))
	}
	// Probes приходят в алфавитном порядке.
	if report.Probes[0].Name != "kafka" || report.Probes[1].Name != "postgres" {
		t.Errorf("unexpected probe order: %+v", report.Probes)
	}
}

func TestHandler_UnhealthyDependency(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.Register(NewCheckFunc("postgres", pingDown))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", report.Status)
	}
	if report.Probes[0].Message != "connection refused" {
		t.Errorf("unexpected probe message: %q", report.Probes[0].Message)
	}
}

func TestLiveness(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()

	Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %s", w.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.Register(NewCheckFunc("postgres", pingOK))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	handler.Readiness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ready" {
		t.Errorf("expected body 'ready', got %s", w.Body.String())
	}
}

func TestReadiness_NotReady(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.Register(NewCheckFunc("kafka", pingDown))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	handler.Readiness(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if w.Body.String() != "not ready" {
		t.Errorf("expected body 'not ready', got %s", w.Body.String())
	}
}

func TestCheckFunc(t *testing.T) {
	probe := NewCheckFunc("catalog", pingOK).Check(context.Background())
	if probe.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", probe.Status)
	}
	if probe.Name != "catalog" {
		t.Errorf("expected name catalog, got %s", probe.Name)
	}

	probe = NewCheckFunc("catalog", pingDown).Check(context.Background())
	if probe.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", probe.Status)
	}
	if probe.Message != "connection refused" {
		t.Errorf("unexpected message: %q", probe.Message)
	}
}
