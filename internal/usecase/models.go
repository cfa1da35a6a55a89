package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
)

// Сообщения, которые показываются покупателю
const (
	MsgNothingToOrder = "Please select an item to place an order"
	MsgCheckoutFailed = "Checkout failed. Please try again."
)

// CHECKOUT USECASE

// CheckoutHooks — необязательные колбэки вызывающей стороны.
type CheckoutHooks struct {
	OnMutate  func(items []domain.OrderItem) // перед отправкой заказа
	OnSuccess func(items []domain.OrderItem) // после успешной отправки
	OnError   func(err error)                // после неудачной отправки (повтор уже исчерпан)
}

// CheckoutRes — результат успешного оформления заказа.
type CheckoutRes struct {
	Items []domain.OrderItem
	Total string
	Route string
}

// INFRASTRUCTURE

// OrderPlacedEvent — событие об успешно оформленном заказе.
type OrderPlacedEvent struct {
	EventID   string
	SessionID string
	Items     []domain.OrderItem
	Total     string
	PlacedAt  time.Time
}

// MAPPERS
func NewCheckoutRes(items []domain.OrderItem, total string, route string) *CheckoutRes {
	return &CheckoutRes{
		Items: items,
		Total: total,
		Route: route,
	}
}

func NewOrderPlacedEvent(sessionID string, items []domain.OrderItem, total string) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventID:   uuid.NewString(),
		SessionID: sessionID,
		Items:     items,
		Total:     total,
		PlacedAt:  time.Now().UTC(),
	}
}
