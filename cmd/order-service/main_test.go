package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupLogger_Level(t *testing.T) {
	t.Setenv("ORDERS_LOG_LEVEL", "debug")
	setupLogger()
	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
}

func TestSetupLogger_InvalidLevelFallsBack(t *testing.T) {
	t.Setenv("ORDERS_LOG_LEVEL", "verbose")
	setupLogger()
	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level fallback, got %s", log.GetLevel())
	}
}
