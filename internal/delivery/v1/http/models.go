package http

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
)

// REQUESTS

type SetQuantityReq struct {
	Quantity *int64 `json:"quantity"`
}

type SetOrderReq struct {
	Order map[string]int64 `json:"order"`
}

// RESPONSES

type ProductResponse struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Description string  `json:"description,omitempty"`
}

// CatalogResponse повторяет форму ответа API пекарни: {storage: [...]}
type CatalogResponse struct {
	Storage []ProductResponse `json:"storage"`
}

type NotificationResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type OrderItemResponse struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type CartResponse struct {
	SessionID    string                `json:"session_id"`
	Order        map[string]int64      `json:"order"`
	Items        []OrderItemResponse   `json:"items"`
	Total        string                `json:"total"`
	IsEmpty      bool                  `json:"is_empty"`
	State        string                `json:"state"`
	LastOutcome  string                `json:"last_outcome"`
	IsLoading    bool                  `json:"is_loading"`
	Notification *NotificationResponse `json:"notification"`
	Route        string                `json:"route"`
}

type CheckoutResponse struct {
	Route string              `json:"route"`
	Items []OrderItemResponse `json:"items"`
	Total string              `json:"total"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	CatalogLoaded bool   `json:"catalog_loaded"`
	Sessions      int    `json:"sessions"`
}

// MAPPERS
func ToProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		Name:        p.Name,
		Price:       p.Price.Round(2).InexactFloat64(),
		Stock:       p.Stock,
		Description: p.Description,
	}
}

func ToCatalogResponse(catalog domain.Catalog) *CatalogResponse {
	storage := make([]ProductResponse, 0, len(catalog))
	for _, p := range catalog {
		storage = append(storage, ToProductResponse(p))
	}

	return &CatalogResponse{Storage: storage}
}

func ToArrOrderItemResponse(items []domain.OrderItem) []OrderItemResponse {
	res := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, OrderItemResponse{Name: item.Name, Quantity: item.Quantity})
	}

	return res
}

func ToNotificationResponse(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		Level:   string(n.Level),
		Message: n.Message,
	}
}

// ToCartResponse собирает представление корзины. Сумма пересчитывается при каждом вызове.
func ToCartResponse(sess *usecase.Session, catalog domain.Catalog) *CartResponse {
	order := sess.Order().Order()
	state := sess.CheckoutState()

	return &CartResponse{
		SessionID:    sess.ID,
		Order:        order,
		Items:        ToArrOrderItemResponse(order.Items()),
		Total:        usecase.Total(order, catalog),
		IsEmpty:      usecase.IsOrderEmpty(order),
		State:        state.String(),
		LastOutcome:  sess.LastOutcome().String(),
		IsLoading:    state == usecase.CheckoutSubmitting,
		Notification: ToNotificationResponse(sess.Notification()),
		Route:        sess.Route(),
	}
}

func ToCheckoutResponse(res *usecase.CheckoutRes) *CheckoutResponse {
	return &CheckoutResponse{
		Route: res.Route,
		Items: ToArrOrderItemResponse(res.Items),
		Total: res.Total,
	}
}
