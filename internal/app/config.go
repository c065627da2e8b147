package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	UserServiceURL      string
	CatalogServiceURL   string
	CollaboratorTimeout time.Duration

	KafkaBrokers string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int
}

// DefaultConfig возвращает конфигурацию по умолчанию: in-memory хранилище,
// mock-коллабораторы и без Kafka.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:                    ":8080",
		MetricsAddr:                 ":9090",
		StorageDriver:               StorageDriverMemory,
		PostgresAutoMigrate:         true,
		CollaboratorTimeout:         5 * time.Second,
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            100 * time.Millisecond,
		IdempotencyCleanupInterval:  time.Minute,
		IdempotencyCleanupBatchSize: 500,
	}
}

// LoadConfig читает конфигурацию из переменных окружения ORDERS_*,
// недостающие значения берёт из DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.HTTPAddr = envString("ORDERS_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MetricsAddr = envString("ORDERS_METRICS_ADDR", cfg.MetricsAddr)

	cfg.StorageDriver = envString("ORDERS_STORAGE_DRIVER", cfg.StorageDriver)
	cfg.PostgresDSN = envString("ORDERS_POSTGRES_DSN", cfg.PostgresDSN)

	cfg.UserServiceURL = envString("ORDERS_USER_SERVICE_URL", cfg.UserServiceURL)
	cfg.CatalogServiceURL = envString("ORDERS_CATALOG_SERVICE_URL", cfg.CatalogServiceURL)
	cfg.KafkaBrokers = envString("ORDERS_KAFKA_BROKERS", cfg.KafkaBrokers)

	var err error
	if cfg.PostgresAutoMigrate, err = envBool("ORDERS_POSTGRES_AUTO_MIGRATE", cfg.PostgresAutoMigrate); err != nil {
		return Config{}, err
	}
	if cfg.CollaboratorTimeout, err = envDuration("ORDERS_COLLABORATOR_TIMEOUT", cfg.CollaboratorTimeout); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = envDuration("ORDERS_OUTBOX_POLL_INTERVAL", cfg.OutboxPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = envInt("ORDERS_OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize); err != nil {
		return Config{}, err
	}
	if cfg.OutboxMaxAttempts, err = envInt("ORDERS_OUTBOX_MAX_ATTEMPTS", cfg.OutboxMaxAttempts); err != nil {
		return Config{}, err
	}
	if cfg.OutboxRetryDelay, err = envDuration("ORDERS_OUTBOX_RETRY_DELAY", cfg.OutboxRetryDelay); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyCleanupInterval, err = envDuration("ORDERS_IDEMPOTENCY_CLEANUP_INTERVAL", cfg.IdempotencyCleanupInterval); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyCleanupBatchSize, err = envInt("ORDERS_IDEMPOTENCY_CLEANUP_BATCH_SIZE", cfg.IdempotencyCleanupBatchSize); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("storage driver %q requires ORDERS_POSTGRES_DSN", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("outbox batch size must be positive, got %d", c.OutboxBatchSize)
	}
	if c.OutboxMaxAttempts <= 0 {
		return fmt.Errorf("outbox max attempts must be positive, got %d", c.OutboxMaxAttempts)
	}
	if c.IdempotencyCleanupBatchSize <= 0 {
		return fmt.Errorf("idempotency cleanup batch size must be positive, got %d", c.IdempotencyCleanupBatchSize)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean in %s: %w", key, err)
	}
	return parsed, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer in %s: %w", key, err)
	}
	return parsed, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return parsed, nil
}
