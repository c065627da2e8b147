package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderView — JSON-представление заказа для ответов API. User и Product
// сериализуются как null, если обогащение деградировало.
type orderView struct {
	ID         string          `json:"id"`
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	User       *domain.User    `json:"user"`
	Product    *domain.Product `json:"product"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toOrderView(order domain.EnrichedOrder) orderView {
	return orderView{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		User:       order.User,
		Product:    order.Product,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// pageView — страница заказов; total не зависит от окна страницы.
type pageView struct {
	Orders []orderView `json:"orders"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

func toPageView(page domain.OrderPage) pageView {
	orders := make([]orderView, 0, len(page.Orders))
	for _, order := range page.Orders {
		orders = append(orders, toOrderView(order))
	}
	return pageView{
		Orders: orders,
		Total:  page.Total,
		Page:   page.Page,
		Limit:  page.Limit,
	}
}

type timelineEventView struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason"`
	Occurred time.Time `json:"occurred_at"`
}

type timelineView struct {
	OrderID string              `json:"order_id"`
	Events  []timelineEventView `json:"events"`
}

func toTimelineView(orderID string, events []domain.TimelineEvent) timelineView {
	result := make([]timelineEventView, 0, len(events))
	for _, event := range events {
		result = append(result, timelineEventView{
			Type:     event.Type,
			Reason:   event.Reason,
			Occurred: event.Occurred,
		})
	}
	return timelineView{OrderID: orderID, Events: result}
}
