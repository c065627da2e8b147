package app

import (
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/service/catalog"
	"github.com/vladislavdragonenkov/orders/internal/service/user"
)

func TestInitUserDirectory_MockFallback(t *testing.T) {
	t.Parallel()

	logger := log.WithField("test", "user-directory")

	svc := initUserDirectory(Config{}, logger)
	if _, ok := svc.(*user.MockService); !ok {
		t.Fatalf("expected mock user directory without URL, got %T", svc)
	}

	svc = initUserDirectory(Config{UserServiceURL: "http://users.internal"}, logger)
	if _, ok := svc.(*user.Client); !ok {
		t.Fatalf("expected HTTP user client with URL, got %T", svc)
	}
}

func TestInitCatalog_MockFallback(t *testing.T) {
	t.Parallel()

	logger := log.WithField("test", "catalog")

	svc := initCatalog(Config{}, logger)
	if _, ok := svc.(*catalog.MockService); !ok {
		t.Fatalf("expected mock catalog without URL, got %T", svc)
	}

	svc = initCatalog(Config{CatalogServiceURL: "http://catalog.internal"}, logger)
	if _, ok := svc.(*catalog.Client); !ok {
		t.Fatalf("expected HTTP catalog client with URL, got %T", svc)
	}
}

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	t.Parallel()

	if p := initKafkaProducer("", log.WithField("test", "kafka")); p != nil {
		t.Fatal("expected nil producer for empty brokers")
	}
}
