package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
)

// CacheRepository — кэш второго уровня для каталога. GetCatalog возвращает e.ErrCacheMiss при промахе,
// иначе каталог и время его записи в кэш (нулевое, если неизвестно).
type CacheRepository interface {
	GetCatalog(ctx context.Context) (domain.Catalog, time.Time, error)
	SetCatalog(ctx context.Context, catalog domain.Catalog) error
	DeleteCatalog(ctx context.Context) error
}

// noopCacheRepo используется, когда кэш второго уровня отключён.
type noopCacheRepo struct{}

func (noopCacheRepo) GetCatalog(context.Context) (domain.Catalog, time.Time, error) {
	return nil, time.Time{}, e.ErrCacheMiss
}

func (noopCacheRepo) SetCatalog(context.Context, domain.Catalog) error { return nil }

func (noopCacheRepo) DeleteCatalog(context.Context) error { return nil }
