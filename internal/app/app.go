package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/service/idempotency"
	"github.com/vladislavdragonenkov/orders/internal/service/order"
	"github.com/vladislavdragonenkov/orders/internal/service/outbox"
	"github.com/vladislavdragonenkov/orders/internal/service/rest"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает зависимости и запускает сервис заказов: HTTP API,
// сервер метрик, outbox worker и очистку idempotency-ключей.
// Блокируется до отмены ctx или фатальной ошибки HTTP-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	users := initUserDirectory(cfg, logger)
	catalogSvc := initCatalog(cfg, logger)

	kafkaProducer := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer func() {
		if kafkaProducer == nil {
			return
		}
		if err := kafkaProducer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		}
	}()

	orderMetrics := metrics.NewOrderMetrics()
	httpMetrics := metrics.NewHTTPMetrics()

	svc := order.NewService(
		deps.repo,
		users,
		catalogSvc,
		order.WithOutbox(deps.outboxRepo),
		order.WithTimeline(deps.timelineRepo),
		order.WithMetrics(orderMetrics),
		order.WithLogger(logger.WithField("component", "order-service")),
	)

	handler := rest.NewHandler(
		svc,
		rest.WithIdempotency(deps.idempotencyRepo),
		rest.WithHandlerLogger(logger.WithField("component", "rest")),
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		rest.RequestLogger(logger.WithField("component", "http")),
		rest.RequestMetrics(httpMetrics),
	)
	handler.Register(router)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.store != nil {
		healthHandler.Register(healthcheck.NewCheckFunc("postgres", deps.store.Ping))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	var workers sync.WaitGroup
	if kafkaProducer != nil {
		publisher := kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicOrderEvents)
		dlq := kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicDeadLetterQueue)
		worker := outbox.NewWorker(
			deps.outboxRepo,
			publisher,
			outbox.WithDLQPublisher(dlq),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			worker.Run(ctx)
		}()
	} else {
		logger.Info("kafka is not configured, outbox worker is disabled")
	}

	cleanup := idempotency.NewCleanupWorker(
		deps.idempotencyRepo,
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
		idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
	)
	workers.Add(1)
	go func() {
		defer workers.Done()
		cleanup.Run(ctx)
	}()
	defer workers.Wait()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчики /metrics и health probes.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.Readiness)
	mux.HandleFunc("/livez", healthcheck.Liveness)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http server shutdown with error")
	}
}
