package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка неположительного идентификатора пользователя.
	ErrUserIDInvalid = errors.New("user_id must be greater than zero")
	// Ошибка неположительного идентификатора товара.
	ErrProductIDInvalid = errors.New("product_id must be greater than zero")
	// Ошибка некорректного количества (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка отрицательной стоимости заказа.
	ErrTotalPriceNegative = errors.New("total_price must be non-negative")
	// Ошибка значения статуса вне перечисления.
	ErrStatusInvalid = errors.New("invalid status, must be one of: pending, confirmed, shipped, delivered, cancelled")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists — попытка повторно создать заказ с занятым ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrUserNotFound — реестр аккаунтов не знает такого пользователя.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound — каталог не знает такого товара.
	ErrProductNotFound = errors.New("product not found")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrIdempotencyKeyRequired — пустой idempotency-key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired — пустой hash запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyNotFound — запись по ключу отсутствует.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	// ErrIdempotencyKeyAlreadyExists — ключ уже занят другим запросом.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch — ключ переиспользован с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key is already used with different request payload")
)

// StockError сигнализирует о нехватке остатков на складе. Сообщение несёт
// текущий остаток и запрошенное количество.
type StockError struct {
	CurrentStock int32
	Requested    int32
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.CurrentStock, e.Requested)
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатков.
func IsInsufficientStock(err error) bool {
	var stockErr *StockError
	return errors.As(err, &stockErr)
}

// IsValidationError проверяет, относится ли ошибка к нарушению входных инвариантов.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUserIDInvalid) ||
		errors.Is(err, ErrProductIDInvalid) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrStatusInvalid)
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности:
// самого заказа либо (на этапе создания) пользователя или товара.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsIdempotencyConflict проверяет, является ли ошибка конфликтом идемпотентности.
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) ||
		errors.Is(err, ErrIdempotencyHashMismatch)
}
