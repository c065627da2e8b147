package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики оркестрации заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated  prometheus.Counter
	statusUpdates  *prometheus.CounterVec
	createRejected *prometheus.CounterVec

	// Деградация обогащения при чтении
	enrichmentDegraded prometheus.Counter

	// Время обращения к коллабораторам
	collaboratorDuration *prometheus.HistogramVec
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		statusUpdates: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_status_updates_total",
			Help: "Total number of order status updates grouped by new status",
		}, []string{"status"}),
		createRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_create_rejected_total",
			Help: "Total number of rejected order creations grouped by reason",
		}, []string{"reason"}),
		enrichmentDegraded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_enrichment_degraded_total",
			Help: "Total number of order reads that degraded to null user/product",
		}),
		collaboratorDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_collaborator_request_duration_seconds",
			Help:    "Duration of collaborator calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"collaborator"}),
	}
}

// OrderCreated инкрементирует счётчик созданных заказов.
func (m *OrderMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// StatusUpdated инкрементирует счётчик смен статуса.
func (m *OrderMetrics) StatusUpdated(status string) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(status).Inc()
}

// CreateRejected фиксирует отклонённое создание заказа.
func (m *OrderMetrics) CreateRejected(reason string) {
	if m == nil {
		return
	}
	m.createRejected.WithLabelValues(reason).Inc()
}

// EnrichmentDegraded фиксирует деградацию обогащения при чтении.
func (m *OrderMetrics) EnrichmentDegraded() {
	if m == nil {
		return
	}
	m.enrichmentDegraded.Inc()
}

// ObserveCollaborator фиксирует длительность обращения к коллаборатору.
func (m *OrderMetrics) ObserveCollaborator(collaborator string, duration time.Duration) {
	if m == nil {
		return
	}
	m.collaboratorDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
