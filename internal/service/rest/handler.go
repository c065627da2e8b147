package rest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/orders/internal/service/order"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
)

// OrderService описывает операции оркестратора, доступные из API.
type OrderService interface {
	CreateOrder(ctx context.Context, in ordersvc.CreateOrderInput) (domain.EnrichedOrder, error)
	GetOrder(ctx context.Context, id string) (domain.EnrichedOrder, error)
	ListOrders(ctx context.Context, q ordersvc.ListOrdersQuery) (domain.OrderPage, error)
	UpdateOrderStatus(ctx context.Context, id, rawStatus string) (domain.EnrichedOrder, error)
	OrderHistory(ctx context.Context, id string) ([]domain.TimelineEvent, error)
}

// Handler реализует REST API поверх оркестратора заказов.
type Handler struct {
	svc      OrderService
	idem     domain.IdempotencyRepository
	validate *validatorv10.Validate
	logger   *log.Entry
}

// HandlerOption настраивает Handler.
type HandlerOption func(*Handler)

// WithIdempotency подключает хранилище idempotency-ключей для create.
func WithIdempotency(repo domain.IdempotencyRepository) HandlerOption {
	return func(h *Handler) {
		h.idem = repo
	}
}

// WithHandlerLogger задаёт logger обработчика.
func WithHandlerLogger(logger *log.Entry) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler конструирует обработчик API.
func NewHandler(svc OrderService, options ...HandlerOption) *Handler {
	h := &Handler{
		svc:      svc,
		validate: validatorv10.New(),
		logger:   log.WithField("component", "rest-handler"),
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// Register регистрирует маршруты API.
func (h *Handler) Register(router gin.IRouter) {
	api := router.Group("/api/v1")
	api.POST("/orders", h.createOrder)
	api.GET("/orders", h.listOrders)
	api.GET("/orders/:id", h.getOrder)
	api.PUT("/orders/:id/status", h.updateOrderStatus)
	api.GET("/orders/:id/history", h.orderHistory)
}

type createOrderRequest struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) createOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, "failed to read request body")
		return
	}

	var req createOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		if sentinel := createValidationError(err); sentinel != nil {
			writeError(c, sentinel)
			return
		}
		writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, "validation failed")
		return
	}

	key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if h.idem == nil || key == "" {
		status, payload := h.performCreate(c.Request.Context(), req)
		c.Data(status, "application/json", payload)
		return
	}

	h.createOrderIdempotent(c, key, body, req)
}

// createOrderIdempotent выполняет create под защитой idempotency-ключа:
// повторный запрос с тем же ключом и телом получает сохранённый ответ.
func (h *Handler) createOrderIdempotent(c *gin.Context, key string, body []byte, req createOrderRequest) {
	hash := buildRequestHash(c.Request.Method, c.FullPath(), body)

	record, err := h.idem.CreateProcessing(key, hash, time.Now().UTC().Add(idempotencyTTL))
	if err != nil {
		h.replayIdempotent(c, err, record)
		return
	}

	status, payload := h.performCreate(c.Request.Context(), req)

	var markErr error
	if status < http.StatusBadRequest {
		markErr = h.idem.MarkDone(key, payload, status)
	} else {
		markErr = h.idem.MarkFailed(key, payload, status)
	}
	if markErr != nil {
		h.logger.WithError(markErr).WithField("idempotency_key", key).Warn("failed to store idempotency outcome")
	}

	c.Data(status, "application/json", payload)
}

// replayIdempotent решает судьбу повторного запроса по состоянию записи.
func (h *Handler) replayIdempotent(c *gin.Context, createErr error, record domain.IdempotencyRecord) {
	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		writeError(c, domain.ErrIdempotencyHashMismatch)
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed:
			if len(record.ResponseBody) == 0 || record.HTTPStatus == 0 {
				writeErrorMessage(c, http.StatusInternalServerError, codeInternal, "idempotency cache is empty")
				return
			}
			c.Data(record.HTTPStatus, "application/json", record.ResponseBody)
		case domain.IdempotencyStatusProcessing:
			writeErrorMessage(c, http.StatusConflict, codeConflict,
				"request with the same idempotency key is already processing")
		default:
			writeErrorMessage(c, http.StatusInternalServerError, codeInternal, "unknown idempotency record status")
		}
	default:
		h.logger.WithError(createErr).Warn("failed to create idempotency record")
		writeErrorMessage(c, http.StatusInternalServerError, codeInternal, "failed to initialize idempotent request")
	}
}

// performCreate выполняет создание заказа и сериализует результат так,
// чтобы его можно было и отдать клиенту, и закэшировать по ключу.
func (h *Handler) performCreate(ctx context.Context, req createOrderRequest) (int, []byte) {
	created, err := h.svc.CreateOrder(ctx, ordersvc.CreateOrderInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		status, code, message := mapError(err)
		payload, _ := json.Marshal(errorEnvelope{Error: errorBody{Code: code, Message: message}})
		return status, payload
	}

	payload, marshalErr := json.Marshal(toOrderView(created))
	if marshalErr != nil {
		h.logger.WithError(marshalErr).Error("failed to encode order response")
		payload, _ = json.Marshal(errorEnvelope{Error: errorBody{Code: codeInternal, Message: "internal server error"}})
		return http.StatusInternalServerError, payload
	}
	return http.StatusCreated, payload
}

func (h *Handler) getOrder(c *gin.Context) {
	enriched, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderView(enriched))
}

func (h *Handler) listOrders(c *gin.Context) {
	query := ordersvc.ListOrdersQuery{}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, "user_id must be a positive integer")
			return
		}
		query.UserID = userID
	}

	page, ok := parsePositiveQuery(c, "page")
	if !ok {
		return
	}
	limit, ok := parsePositiveQuery(c, "limit")
	if !ok {
		return
	}
	query.Page = page
	query.Limit = limit

	result, err := h.svc.ListOrders(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageView(result))
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(c, domain.ErrStatusInvalid)
		return
	}

	updated, err := h.svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderView(updated))
}

func (h *Handler) orderHistory(c *gin.Context) {
	orderID := c.Param("id")
	events, err := h.svc.OrderHistory(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTimelineView(orderID, events))
}

// parsePositiveQuery читает опциональный положительный числовой параметр.
// Отсутствующее значение трактуется как 0 и нормализуется сервисом.
func parsePositiveQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		writeErrorMessage(c, http.StatusBadRequest, codeInvalidArgument, name+" must be a positive integer")
		return 0, false
	}
	return value, true
}

// createValidationError переводит ошибку validator в доменную ошибку
// соответствующего поля, чтобы сообщение совпадало с доменной валидацией.
// Возвращает nil, если поле не распознано.
func createValidationError(err error) error {
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		switch ve[0].Field() {
		case "UserID":
			return domain.ErrUserIDInvalid
		case "ProductID":
			return domain.ErrProductIDInvalid
		case "Quantity":
			return domain.ErrQuantityInvalid
		}
	}
	return nil
}

func buildRequestHash(method, path string, body []byte) string {
	payload := make([]byte, 0, len(method)+len(path)+len(body)+2)
	payload = append(payload, method...)
	payload = append(payload, ':')
	payload = append(payload, path...)
	payload = append(payload, ':')
	payload = append(payload, body...)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
