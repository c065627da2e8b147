package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Smoke test: сервис поднимается на in-memory хранилище и
// корректно останавливается по отмене контекста.
func TestRun_StartsAndStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected context deadline error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRun_InvalidStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
