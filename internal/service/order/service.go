package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	timelineEventOrderCreated       = "OrderCreated"
	timelineEventOrderStatusChanged = "OrderStatusChanged"
)

// Service — оркестратор заказов. Валидирует запросы, разрешает внешние
// зависимости (реестр аккаунтов и каталог), замораживает цену при создании
// и обогащает чтения живыми данными с деградацией по строке.
type Service struct {
	repo     domain.OrderRepository
	users    domain.UserDirectory
	catalog  domain.Catalog
	outbox   domain.OutboxRepository
	timeline domain.TimelineRepository
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithOutbox подключает transactional outbox для публикации событий заказа.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(s *Service) {
		s.outbox = outbox
	}
}

// WithTimeline подключает хранилище событий жизненного цикла заказа.
func WithTimeline(timeline domain.TimelineRepository) Option {
	return func(s *Service) {
		s.timeline = timeline
	}
}

// WithMetrics подключает метрики оркестрации.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService конструирует оркестратор с зависимостями.
func NewService(repo domain.OrderRepository, users domain.UserDirectory, catalog domain.Catalog, options ...Option) *Service {
	s := &Service{
		repo:    repo,
		users:   users,
		catalog: catalog,
		logger:  log.WithField("component", "order-service"),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// CreateOrderInput — входные данные создания заказа.
type CreateOrderInput struct {
	UserID    int64
	ProductID int64
	Quantity  int32
}

// CreateOrder создаёт заказ. Валидация выполняется до единственного
// обращения к коллабораторам; цепочка зависимостей строго последовательна:
// пользователь → товар → остатки. Остатки проверяются, но не списываются.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.EnrichedOrder, error) {
	if err := validateCreateInput(in); err != nil {
		s.metrics.CreateRejected("validation")
		return domain.EnrichedOrder{}, err
	}

	usr, err := s.lookupUser(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.CreateRejected("user_not_found")
			return domain.EnrichedOrder{}, domain.ErrUserNotFound
		}
		s.logger.WithError(err).WithField("user_id", in.UserID).Error("failed to resolve user")
		s.metrics.CreateRejected("user_lookup_failed")
		return domain.EnrichedOrder{}, fmt.Errorf("resolve user: %w", err)
	}

	product, err := s.lookupProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.metrics.CreateRejected("product_not_found")
			return domain.EnrichedOrder{}, domain.ErrProductNotFound
		}
		s.logger.WithError(err).WithField("product_id", in.ProductID).Error("failed to resolve product")
		s.metrics.CreateRejected("product_lookup_failed")
		return domain.EnrichedOrder{}, fmt.Errorf("resolve product: %w", err)
	}

	report, err := s.checkStock(ctx, in.ProductID, in.Quantity)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", in.ProductID).Error("failed to check stock")
		s.metrics.CreateRejected("stock_check_failed")
		return domain.EnrichedOrder{}, fmt.Errorf("check stock: %w", err)
	}
	if !report.Available {
		s.metrics.CreateRejected("insufficient_stock")
		return domain.EnrichedOrder{}, &domain.StockError{
			CurrentStock: report.CurrentStock,
			Requested:    in.Quantity,
		}
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TotalPrice: domain.TotalPrice(product.Price, in.Quantity),
		Status:     domain.OrderStatusPending,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.WithError(err).Error("failed to persist order")
		s.metrics.CreateRejected("persistence_failed")
		return domain.EnrichedOrder{}, fmt.Errorf("persist order: %w", err)
	}

	s.metrics.OrderCreated()
	s.appendTimeline(created.ID, timelineEventOrderCreated, string(created.Status), created.CreatedAt)
	s.enqueueOrderEvent(kafka.EventTypeOrderCreated, created)

	return domain.EnrichedOrder{Order: created, User: &usr, Product: &product}, nil
}

// GetOrder возвращает заказ, обогащённый живыми данными коллабораторов.
// Обогащение деградирует до user = nil / product = nil при сбое любого
// из двух lookup'ов; сама операция при этом успешна.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.EnrichedOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.EnrichedOrder{}, domain.ErrOrderNotFound
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return domain.EnrichedOrder{}, fmt.Errorf("load order: %w", err)
	}

	return s.enrich(ctx, order), nil
}

// ListOrdersQuery — параметры постраничной выборки заказов.
type ListOrdersQuery struct {
	// UserID == 0 — без фильтра по пользователю.
	UserID int64
	Page   int
	Limit  int
}

// ListOrders возвращает страницу заказов в порядке убывания created_at.
// Total не зависит от окна страницы. Обогащение каждой строки деградирует
// независимо: сбой зависимостей для одной строки не затрагивает остальные.
func (s *Service) ListOrders(ctx context.Context, q ListOrdersQuery) (domain.OrderPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	offset := (q.Page - 1) * q.Limit
	rows, total, err := s.repo.List(ctx, domain.OrderFilter{UserID: q.UserID}, offset, q.Limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return domain.OrderPage{}, fmt.Errorf("list orders: %w", err)
	}

	enriched := make([]domain.EnrichedOrder, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, row domain.Order) {
			defer wg.Done()
			enriched[i] = s.enrich(ctx, row)
		}(i, row)
	}
	wg.Wait()

	return domain.OrderPage{
		Orders: enriched,
		Total:  total,
		Page:   q.Page,
		Limit:  q.Limit,
	}, nil
}

// UpdateOrderStatus устанавливает новый статус заказа. Проверяется только
// принадлежность перечислению; граф переходов не навязывается. Ответ
// обогащается с той же деградацией, что и чтения.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, rawStatus string) (domain.EnrichedOrder, error) {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.EnrichedOrder{}, domain.ErrOrderNotFound
		}
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": id,
			"status":   status,
		}).Error("failed to update order status")
		return domain.EnrichedOrder{}, fmt.Errorf("update order status: %w", err)
	}

	s.metrics.StatusUpdated(string(status))
	s.appendTimeline(updated.ID, timelineEventOrderStatusChanged, string(status), updated.UpdatedAt)
	s.enqueueOrderEvent(kafka.EventTypeOrderStatusChanged, updated)

	return s.enrich(ctx, updated), nil
}

// OrderHistory возвращает таймлайн событий заказа.
func (s *Service) OrderHistory(ctx context.Context, id string) ([]domain.TimelineEvent, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}

	events, err := s.timeline.List(id)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	return events, nil
}

// enrich выполняет параллельный fan-out двух независимых lookup'ов и
// дожидается обоих. Любой сбой деградирует строку целиком: и user, и
// product становятся nil.
func (s *Service) enrich(ctx context.Context, order domain.Order) domain.EnrichedOrder {
	var (
		wg         sync.WaitGroup
		usr        domain.User
		product    domain.Product
		userErr    error
		productErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		usr, userErr = s.lookupUser(ctx, order.UserID)
	}()
	go func() {
		defer wg.Done()
		product, productErr = s.lookupProduct(ctx, order.ProductID)
	}()
	wg.Wait()

	if userErr != nil || productErr != nil {
		s.metrics.EnrichmentDegraded()
		s.logger.WithFields(log.Fields{
			"order_id":    order.ID,
			"user_err":    userErr,
			"product_err": productErr,
		}).Warn("order enrichment degraded")
		return domain.EnrichedOrder{Order: order}
	}

	return domain.EnrichedOrder{Order: order, User: &usr, Product: &product}
}

func (s *Service) lookupUser(ctx context.Context, id int64) (domain.User, error) {
	start := time.Now()
	usr, err := s.users.GetUser(ctx, id)
	s.metrics.ObserveCollaborator("user-directory", time.Since(start))
	return usr, err
}

func (s *Service) lookupProduct(ctx context.Context, id int64) (domain.Product, error) {
	start := time.Now()
	product, err := s.catalog.GetProduct(ctx, id)
	s.metrics.ObserveCollaborator("catalog", time.Since(start))
	return product, err
}

func (s *Service) checkStock(ctx context.Context, productID int64, quantity int32) (domain.StockReport, error) {
	start := time.Now()
	report, err := s.catalog.CheckStock(ctx, productID, quantity)
	s.metrics.ObserveCollaborator("catalog", time.Since(start))
	return report, err
}

// validateCreateInput отклоняет некорректный запрос до каких-либо side
// effects и обращений к коллабораторам.
func validateCreateInput(in CreateOrderInput) error {
	switch {
	case in.UserID <= 0:
		return domain.ErrUserIDInvalid
	case in.ProductID <= 0:
		return domain.ErrProductIDInvalid
	case in.Quantity <= 0:
		return domain.ErrQuantityInvalid
	default:
		return nil
	}
}

func (s *Service) appendTimeline(orderID, eventType, reason string, occurred time.Time) {
	if s.timeline == nil {
		return
	}

	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: occurred,
	}
	if err := s.timeline.Append(event); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to append timeline event")
	}
}

func (s *Service) enqueueOrderEvent(eventType kafka.EventType, order domain.Order) {
	if s.outbox == nil {
		return
	}

	payload, err := kafka.MarshalOrderEvent(eventType, order)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to encode order event")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(eventType),
		Payload:       payload,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order event")
	}
}
