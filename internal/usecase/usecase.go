package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type CatalogUC interface {
	Products(ctx context.Context) (domain.Catalog, error)
	Peek() domain.Catalog
	Invalidate(ctx context.Context) error
	PatchStock(items []domain.OrderItem)
}

type CheckoutUC interface {
	Submit(ctx context.Context, sess *Session) (*CheckoutRes, error)
}
