package memory_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func TestTimelineRepository_AppendAndList(t *testing.T) {
	repo := memory.NewTimelineRepository()
	base := time.Now().UTC()

	events := []domain.TimelineEvent{
		{OrderID: "order-1", Type: "OrderStatusChanged", Reason: "status set to confirmed", Occurred: base.Add(time.Minute)},
		{OrderID: "order-1", Type: "OrderCreated", Reason: "order created", Occurred: base},
		{OrderID: "order-2", Type: "OrderCreated", Reason: "order created", Occurred: base},
	}
	for _, event := range events {
		if err := repo.Append(event); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	timeline, err := repo.List("order-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected 2 events, got %d", len(timeline))
	}
	if timeline[0].Type != "OrderCreated" {
		t.Fatalf("expected chronological order, got %s first", timeline[0].Type)
	}

	empty, err := repo.List("missing")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no events, got %d", len(empty))
	}
}
