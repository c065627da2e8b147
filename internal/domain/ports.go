package domain

import (
	"context"
	"time"
)

// UserDirectory описывает взаимодействие с внешним реестром аккаунтов.
// Один синхронный вызов на обращение, без кэширования и retry.
type UserDirectory interface {
	// GetUser возвращает пользователя или ErrUserNotFound, если реестр
	// его не знает. Транспортные сбои возвращаются отдельной ошибкой.
	GetUser(ctx context.Context, id int64) (User, error)
}

// Catalog описывает взаимодействие с внешним каталогом товаров и остатков.
type Catalog interface {
	// GetProduct возвращает товар или ErrProductNotFound.
	GetProduct(ctx context.Context, id int64) (Product, error)
	// CheckStock сообщает, достаточно ли остатков под запрошенное
	// количество. Остатки только проверяются, но не резервируются.
	CheckStock(ctx context.Context, productID int64, quantity int32) (StockReport, error)
}

// OrderFilter задаёт опциональные условия выборки заказов.
// UserID == 0 означает отсутствие фильтра.
type OrderFilter struct {
	UserID int64
}

// OrderRepository описывает требования к хранилищу заказов.
// Заказы никогда не удаляются: операции удаления в контракте нет.
type OrderRepository interface {
	// Create сохраняет новый заказ, назначая временные метки.
	Create(ctx context.Context, order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает страницу заказов по фильтру в порядке убывания
	// created_at, а также полное число подходящих записей.
	List(ctx context.Context, filter OrderFilter, offset, limit int) ([]Order, int, error)
	// UpdateStatus устанавливает статус и обновляет updated_at.
	// Возвращает обновлённый заказ или ErrOrderNotFound.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (Order, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(key string) (IdempotencyRecord, error)
	MarkDone(key string, responseBody []byte, httpStatus int) error
	MarkFailed(key string, responseBody []byte, httpStatus int) error
	DeleteExpired(before time.Time, limit int) (int, error)
}
