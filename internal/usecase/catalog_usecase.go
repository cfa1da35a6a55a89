package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CatalogUseCase кэширует каталог пекарни в памяти и в кэше второго уровня.
//
// Все записи сериализуются через mu. Каждая запись получает поколение из gen:
// результат обновления применяется, только если после его старта не было
// оптимистичного патча и не было применено более новое обновление.
type CatalogUseCase struct {
	api       BakeryAPI
	cacheRepo CacheRepository
	cfg       *cfg.CatalogCfg
	logger    logger.Logger
	now       func() time.Time

	mu         sync.Mutex
	catalog    domain.Catalog
	loaded     bool
	stale      bool
	fetchedAt  time.Time
	gen        uint64
	appliedGen uint64
	patchGen   uint64

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewCatalogUC(api BakeryAPI, cacheRepo CacheRepository, cfg *cfg.CatalogCfg, logger logger.Logger) *CatalogUseCase {
	if cacheRepo == nil {
		cacheRepo = noopCacheRepo{}
	}

	return &CatalogUseCase{
		api:       api,
		cacheRepo: cacheRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// Products возвращает каталог. Свежая копия отдаётся из памяти, иначе каталог
// читается из кэша (только при холодном старте) или запрашивается у API пекарни.
// Если API недоступно, но каталог уже загружался, возвращается устаревшая копия.
func (c *CatalogUseCase) Products(ctx context.Context) (domain.Catalog, error) {
	const op = "CatalogUseCase.Products"

	if catalog, ok := c.fresh(); ok {
		return catalog, nil
	}

	if catalog, ok := c.loadFromCache(ctx); ok {
		return catalog, nil
	}

	catalog, err := c.refresh(ctx)
	if err != nil {
		if stale := c.Peek(); stale != nil {
			c.logger.Warnf("Catalog refresh failed, serving stale copy: %v", e.Wrap(op, err))
			return stale, nil
		}

		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrCatalogUnavailable, err))
	}

	return catalog, nil
}

// Peek возвращает копию каталога из памяти или nil, если он ещё не загружен.
func (c *CatalogUseCase) Peek() domain.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return nil
	}

	return slices.Clone(c.catalog)
}

// Invalidate удаляет каталог из кэша и перезапрашивает его у API пекарни.
func (c *CatalogUseCase) Invalidate(ctx context.Context) error {
	const op = "CatalogUseCase.Invalidate"

	if err := c.cacheRepo.DeleteCatalog(ctx); err != nil {
		c.logger.Warnf("Failed to delete catalog from cache: %v", e.Wrap(op, err))
	}

	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()

	if _, err := c.refresh(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// PatchStock оптимистично уменьшает остатки заказанных товаров до ответа API.
func (c *CatalogUseCase) PatchStock(items []domain.OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	c.gen++
	c.patchGen = c.gen
	c.catalog = c.catalog.WithStockDecreased(items)
}

// StartRefresher запускает периодическое фоновое обновление каталога.
func (c *CatalogUseCase) StartRefresher(ctx context.Context) {
	const op = "CatalogUseCase.StartRefresher"

	if c.cfg.RefreshInterval <= 0 {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(c.cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.logger.Infof("Catalog refresher stopped by context cancellation")
				return
			case <-c.stop:
				return
			case <-ticker.C:
				if _, err := c.refresh(ctx); err != nil {
					c.logger.Warnf("Background catalog refresh failed: %v", e.Wrap(op, err))
				}
			}
		}
	}()
}

func (c *CatalogUseCase) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}

// fresh возвращает копию каталога, если он загружен и не устарел.
func (c *CatalogUseCase) fresh() (domain.Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.stale || c.now().Sub(c.fetchedAt) >= c.cfg.StaleTime {
		return nil, false
	}

	return slices.Clone(c.catalog), true
}

// loadFromCache читает каталог из кэша второго уровня при холодном старте.
func (c *CatalogUseCase) loadFromCache(ctx context.Context) (domain.Catalog, bool) {
	const op = "CatalogUseCase.loadFromCache"

	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil, false
	}

	startGen := c.beginRefresh()
	catalog, cachedAt, err := c.cacheRepo.GetCatalog(ctx)
	if err != nil {
		if !errors.Is(err, e.ErrCacheMiss) {
			c.logger.Warnf("Failed to read catalog from cache: %v", e.Wrap(op, err))
		}
		return nil, false
	}

	// Свежесть снимка считается от момента записи в кэш, а не от чтения
	now := c.now()
	if cachedAt.IsZero() || cachedAt.After(now) {
		cachedAt = now
	}

	c.apply(catalog, startGen, cachedAt)
	return c.Peek(), true
}

// refresh запрашивает каталог у API пекарни и применяет его, если результат не устарел.
func (c *CatalogUseCase) refresh(ctx context.Context) (domain.Catalog, error) {
	startGen := c.beginRefresh()

	catalog, err := c.api.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	if catalog == nil {
		catalog = domain.Catalog{}
	}

	if c.apply(catalog, startGen, c.now()) {
		c.storeInBackground(catalog)
	}

	return c.Peek(), nil
}

func (c *CatalogUseCase) beginRefresh() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	return c.gen
}

// apply заменяет каталог, если за время обновления не было патча или более нового обновления.
func (c *CatalogUseCase) apply(catalog domain.Catalog, startGen uint64, fetchedAt time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.patchGen > startGen || c.appliedGen > startGen {
		c.logger.Debugf("Discarding outdated catalog snapshot (generation %d)", startGen)
		return false
	}

	c.catalog = slices.Clone(catalog)
	c.loaded = true
	c.stale = false
	c.fetchedAt = fetchedAt
	c.appliedGen = startGen

	return true
}

// storeInBackground кладёт каталог в кэш второго уровня, не задерживая ответ.
func (c *CatalogUseCase) storeInBackground(catalog domain.Catalog) {
	const op = "CatalogUseCase.storeInBackground"

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, catalog); err != nil {
			c.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()
}
