package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, назначая временные метки.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if _, exists := r.items[order.ID]; exists {
		return domain.Order{}, domain.ErrOrderAlreadyExists
	}

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = order
	return order, nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// List возвращает страницу заказов по фильтру и общее число подходящих записей.
// Общее число не зависит от offset/limit.
func (r *orderRepositoryInMemory) List(_ context.Context, filter domain.OrderFilter, offset, limit int) ([]domain.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if filter.UserID != 0 && order.UserID != filter.UserID {
			continue
		}
		matched = append(matched, order)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Order{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	page := make([]domain.Order, len(matched))
	copy(page, matched)
	return page, total, nil
}

// UpdateStatus устанавливает новый статус и обновляет updated_at.
func (r *orderRepositoryInMemory) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.items[id] = order
	return order, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
