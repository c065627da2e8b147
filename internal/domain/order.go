package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, подтверждение ещё не получено.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
// Граф переходов намеренно не проверяется: любой статус может следовать
// за любым другим.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus преобразует строку в OrderStatus или возвращает
// ErrStatusInvalid для значения вне перечисления.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", ErrStatusInvalid
	}
	return status, nil
}

// Order агрегирует состояние заказа. TotalPrice фиксируется в момент
// создания и после этого не пересчитывается.
type Order struct {
	ID         string
	UserID     int64
	ProductID  int64
	Quantity   int32
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID <= 0 {
		errs = append(errs, ErrUserIDInvalid)
	}
	if o.ProductID <= 0 {
		errs = append(errs, ErrProductIDInvalid)
	}
	if o.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}
	if o.TotalPrice.IsNegative() {
		errs = append(errs, ErrTotalPriceNegative)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}

	return errs
}

// User — минимальный снимок пользователя из внешнего реестра аккаунтов.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Product — снимок товара из внешнего каталога.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// StockReport — ответ каталога на проверку доступности остатков.
type StockReport struct {
	Available    bool   `json:"available"`
	CurrentStock int32  `json:"current_stock"`
	Message      string `json:"message"`
}

// EnrichedOrder — заказ, дополненный живыми данными коллабораторов.
// User и Product равны nil, если обогащение деградировало.
type EnrichedOrder struct {
	Order
	User    *User
	Product *Product
}

// OrderPage — страница выборки заказов. Total — полное число записей,
// удовлетворяющих фильтру, независимо от окна страницы.
type OrderPage struct {
	Orders []EnrichedOrder
	Total  int
	Page   int
	Limit  int
}

// TotalPrice вычисляет замороженную стоимость заказа: цена за единицу,
// умноженная на количество, округлённая до 2 знаков (half-up).
func TotalPrice(unitPrice decimal.Decimal, quantity int32) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt32(quantity)).Round(2)
}
