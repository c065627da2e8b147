package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status представляет состояние компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Слишком долгие проверки отсекаем по таймауту,
// чтобы probe не висел на недоступной зависимости.
const checkTimeout = 2 * time.Second

// Probe представляет результат одной проверки
type Probe struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Report представляет сводный ответ health check
type Report struct {
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Probes        []Probe   `json:"probes,omitempty"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// Checker проверяет здоровье одной зависимости
type Checker interface {
	Check(ctx context.Context) Probe
}

// CheckFunc адаптирует функцию вида ping(ctx) error в Checker
type CheckFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewCheckFunc создаёт проверку из функции
func NewCheckFunc(name string, fn func(ctx context.Context) error) *CheckFunc {
	return &CheckFunc{name: name, fn: fn}
}

// Check выполняет проверку и замеряет её длительность
func (c *CheckFunc) Check(ctx context.Context) Probe {
	start := time.Now()
	err := c.fn(ctx)
	probe := Probe{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		probe.Status = StatusUnhealthy
		probe.Message = err.Error()
	}
	return probe
}

// Handler обрабатывает health probes сервиса
type Handler struct {
	mu        sync.RWMutex
	checkers  []Checker
	version   string
	startTime time.Time
}

// NewHandler создаёт health handler
func NewHandler(version string) *Handler {
	return &Handler{
		version:   version,
		startTime: time.Now(),
	}
}

// Register добавляет проверку зависимости
func (h *Handler) Register(checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

func (h *Handler) snapshot() []Checker {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Checker, len(h.checkers))
	copy(out, h.checkers)
	return out
}

func (h *Handler) runProbes(ctx context.Context) ([]Probe, Status) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	probes := make([]Probe, 0, len(h.checkers))
	overall := StatusHealthy
	for _, checker := range h.snapshot() {
		probe := checker.Check(ctx)
		probes = append(probes, probe)

		switch probe.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall == StatusHealthy {
				overall = StatusDegraded
			}
		}
	}
	sort.Slice(probes, func(i, j int) bool { return probes[i].Name < probes[j].Name })
	return probes, overall
}

// ServeHTTP отдаёт полный отчёт о здоровье сервиса
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	probes, overall := h.runProbes(r.Context())

	report := Report{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Probes:        probes,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	statusCode := http.StatusOK
	if overall == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(report)
}

// Readiness возвращает 200 только когда все зависимости живы
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	_, overall := h.runProbes(r.Context())
	if overall == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Liveness отвечает 200 пока процесс жив
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
