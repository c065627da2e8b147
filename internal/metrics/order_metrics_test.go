package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newOrderMetricsWithRegisterer(registry)

	m.OrderCreated()
	m.OrderCreated()
	m.StatusUpdated("shipped")
	m.CreateRejected("insufficient_stock")
	m.EnrichmentDegraded()
	m.ObserveCollaborator("user-directory", 15*time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}

	created, ok := byName["orders_created_total"]
	if !ok {
		t.Fatal("orders_created_total is not registered")
	}
	if got := created.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("orders_created_total = %v, want 2", got)
	}

	if _, ok := byName["orders_status_updates_total"]; !ok {
		t.Fatal("orders_status_updates_total is not registered")
	}
	if _, ok := byName["orders_enrichment_degraded_total"]; !ok {
		t.Fatal("orders_enrichment_degraded_total is not registered")
	}
	if _, ok := byName["orders_collaborator_request_duration_seconds"]; !ok {
		t.Fatal("orders_collaborator_request_duration_seconds is not registered")
	}
}

func TestOrderMetrics_DoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	// Повторная регистрация должна переиспользовать коллекторы, а не паниковать.
	first.OrderCreated()
	second.OrderCreated()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	for _, family := range families {
		if family.GetName() != "orders_created_total" {
			continue
		}
		if got := family.GetMetric()[0].GetCounter().GetValue(); got != 2 {
			t.Fatalf("orders_created_total = %v, want 2", got)
		}
		return
	}
	t.Fatal("orders_created_total is not registered")
}

func TestOrderMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *OrderMetrics

	m.OrderCreated()
	m.StatusUpdated("pending")
	m.CreateRejected("validation")
	m.EnrichmentDegraded()
	m.ObserveCollaborator("catalog", time.Millisecond)
}
