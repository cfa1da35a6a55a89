package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type fakeBakeryAPI struct {
	mu          sync.Mutex
	catalog     domain.Catalog
	fetchErr    error
	placeErr    error
	fetchCalls  int
	placeCalls  int
	placed      [][]domain.OrderItem
	beforeFetch func()
	placeHook   func()
}

func (f *fakeBakeryAPI) FetchProducts(ctx context.Context) (domain.Catalog, error) {
	f.mu.Lock()
	f.fetchCalls++
	hook := f.beforeFetch
	catalog, err := f.catalog, f.fetchErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	out := make(domain.Catalog, len(catalog))
	copy(out, catalog)
	return out, nil
}

func (f *fakeBakeryAPI) PlaceOrder(ctx context.Context, items []domain.OrderItem) error {
	f.mu.Lock()
	f.placeCalls++
	f.placed = append(f.placed, items)
	hook, err := f.placeHook, f.placeErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return err
}

func (f *fakeBakeryAPI) setCatalog(c domain.Catalog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog = c
}

func (f *fakeBakeryAPI) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls, f.placeCalls
}

type fakeCacheRepo struct {
	mu       sync.Mutex
	catalog  domain.Catalog
	cachedAt time.Time
	sets     int
	deletes  int
}

func (f *fakeCacheRepo) GetCatalog(context.Context) (domain.Catalog, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catalog == nil {
		return nil, time.Time{}, e.ErrCacheMiss
	}
	return f.catalog, f.cachedAt, nil
}

func (f *fakeCacheRepo) SetCatalog(_ context.Context, c domain.Catalog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.catalog = c
	f.cachedAt = time.Now()
	return nil
}

func (f *fakeCacheRepo) DeleteCatalog(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.catalog = nil
	f.cachedAt = time.Time{}
	return nil
}

func (f *fakeCacheRepo) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets, f.deletes
}

type fakeProducer struct {
	mu     sync.Mutex
	delay  time.Duration
	events []*OrderPlacedEvent
}

func (f *fakeProducer) PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) published() []*OrderPlacedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*OrderPlacedEvent(nil), f.events...)
}

func bakeryCatalog() domain.Catalog {
	return domain.Catalog{
		{Name: "Croissant", Price: decimal.RequireFromString("2.99"), Stock: 10, Description: "Buttery"},
		{Name: "Pretzel", Price: decimal.RequireFromString("3.99"), Stock: 5, Description: "Salty"},
	}
}

func catalogCfg() *cfg.CatalogCfg {
	return &cfg.CatalogCfg{StaleTime: time.Minute}
}
