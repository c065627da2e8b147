package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		input   string
		want    loadMode
		wantErr bool
	}{
		{input: "create", want: modeCreate},
		{input: " create-confirm ", want: modeCreateConfirm},
		{input: "create-cancel", want: modeCreateCancel},
		{input: "create-pay", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		mode, err := parseMode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseMode(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMode(%q) failed: %v", tc.input, err)
			continue
		}
		if mode != tc.want {
			t.Errorf("parseMode(%q) = %s, want %s", tc.input, mode, tc.want)
		}
	}
}

func TestCollector_Record(t *testing.T) {
	col := newCollector()
	col.record("CreateOrder", 10*time.Millisecond, http.StatusCreated)
	col.record("CreateOrder", 20*time.Millisecond, http.StatusPreconditionFailed)
	col.record("CreateOrder", 5*time.Millisecond, 0)

	result := col.buildReport(time.Now(), time.Second)
	stats, ok := result.Methods["CreateOrder"]
	if !ok {
		t.Fatal("expected CreateOrder stats")
	}
	if stats.Calls != 3 || stats.Success != 1 || stats.Failed != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Statuses["201"] != 1 || stats.Statuses["412"] != 1 || stats.Statuses["transport_error"] != 1 {
		t.Fatalf("unexpected status breakdown: %+v", stats.Statuses)
	}
}

func TestCollector_ScenarioSummary(t *testing.T) {
	col := newCollector()
	col.record("scenario", 10*time.Millisecond, http.StatusOK)
	col.record("scenario", 30*time.Millisecond, http.StatusInternalServerError)

	result := col.buildReport(time.Now(), 2*time.Second)
	if result.TotalScenarios != 2 {
		t.Fatalf("expected 2 scenarios, got %d", result.TotalScenarios)
	}
	if result.SuccessScenarios != 1 || result.FailedScenarios != 1 {
		t.Fatalf("unexpected scenario counts: %+v", result)
	}
	if result.ErrorRate != 0.5 {
		t.Errorf("expected error rate 0.5, got %f", result.ErrorRate)
	}
	if result.RPS != 1 {
		t.Errorf("expected 1 rps, got %f", result.RPS)
	}
}

func TestBuildLatencySummary(t *testing.T) {
	summary := buildLatencySummary([]float64{10, 20, 30, 40})
	if summary.Min != 10 || summary.Max != 40 {
		t.Fatalf("unexpected min/max: %+v", summary)
	}
	if summary.Avg != 25 {
		t.Errorf("expected avg 25, got %f", summary.Avg)
	}
	if summary.P50 != 25 {
		t.Errorf("expected p50 25, got %f", summary.P50)
	}

	empty := buildLatencySummary(nil)
	if empty != (latencySummary{}) {
		t.Errorf("expected zero summary for empty input, got %+v", empty)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if got := percentile(sorted, 50); got != 3 {
		t.Errorf("p50 = %f, want 3", got)
	}
	if got := percentile(sorted, 100); got != 5 {
		t.Errorf("p100 = %f, want 5", got)
	}
	if got := percentile([]float64{7}, 99); got != 7 {
		t.Errorf("single value p99 = %f, want 7", got)
	}
}

func TestShouldCancelScenario(t *testing.T) {
	if shouldCancelScenario(1, 0) {
		t.Error("cancel rate 0 should never cancel")
	}
	if !shouldCancelScenario(1, 100) {
		t.Error("cancel rate 100 should always cancel")
	}
	if !shouldCancelScenario(10, 50) {
		t.Error("index 10 with rate 50 should cancel")
	}
	if shouldCancelScenario(60, 50) {
		t.Error("index 60 with rate 50 should not cancel")
	}
}

func TestDispatchJobs_CountMode(t *testing.T) {
	jobs := make(chan int, 10)
	dispatchJobs(jobs, config{total: 5})

	var got []int
	for id := range jobs {
		got = append(got, id)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(got))
	}
}

func TestCallCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(idempotencyHeader) == "" {
			t.Error("expected idempotency key header")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "order-1"})
	}))
	defer srv.Close()

	cfg := config{baseURL: srv.URL, userID: 1, productID: 5, quantity: 2}
	col := newCollector()

	orderID, status, err := callCreateOrder(http.DefaultClient, cfg, "lt-key-1", col)
	if err != nil {
		t.Fatalf("callCreateOrder failed: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("expected 201, got %d", status)
	}
	if orderID != "order-1" {
		t.Errorf("expected order-1, got %s", orderID)
	}
}

func TestCallUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/orders/order-1/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["status"] != "cancelled" {
			t.Errorf("expected status cancelled, got %s", body["status"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config{baseURL: srv.URL}
	col := newCollector()

	status, err := callUpdateStatus(http.DefaultClient, cfg, "order-1", "cancelled", col)
	if err != nil {
		t.Fatalf("callUpdateStatus failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
}

func TestRatio(t *testing.T) {
	if got := ratio(1, 4); got != 0.25 {
		t.Errorf("ratio(1,4) = %f, want 0.25", got)
	}
	if got := ratio(3, 0); got != 0 {
		t.Errorf("ratio with zero total should be 0, got %f", got)
	}
}
