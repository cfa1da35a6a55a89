package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// BakeryAPI — клиент API пекарни: каталог и приём заказов.
type BakeryAPI interface {
	FetchProducts(ctx context.Context) (domain.Catalog, error)
	PlaceOrder(ctx context.Context, items []domain.OrderItem) error
}

// EventProducer публикует события об оформленных заказах.
type EventProducer interface {
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error
}
