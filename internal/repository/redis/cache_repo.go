package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

const catalogKey = "storefront:catalog"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный каталог и время его записи или e.ErrCacheMiss.
// Повреждённая запись удаляется и считается промахом.
func (r *CacheRepo) GetCatalog(ctx context.Context) (domain.Catalog, time.Time, error) {
	data, err := r.client.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, time.Time{}, e.ErrCacheMiss
		}

		r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, time.Time{}, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := r.unmarshalCatalogFromCache(data)
	if err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		r.dropCorrupted()
		return nil, time.Time{}, e.ErrCacheMiss
	}

	catalog, err := r.conv.ToArrDomain(model.Products)
	if err != nil {
		r.logger.Warnf("Cached catalog is invalid: %v", e.Wrap(whereami.WhereAmI(), err))
		r.dropCorrupted()
		return nil, time.Time{}, e.ErrCacheMiss
	}

	var cachedAt time.Time
	if model.CachedAt > 0 {
		cachedAt = time.Unix(model.CachedAt, 0)
	}

	return catalog, cachedAt, nil
}

// SetCatalog кэширует каталог целиком с TTL из конфигурации.
func (r *CacheRepo) SetCatalog(ctx context.Context, catalog domain.Catalog) error {
	model := converter.CatalogRedisModel{
		Products: r.conv.ToArrRedisModel(catalog),
		CachedAt: time.Now().Unix(),
	}

	data, err := r.marshalCatalogForCache(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, catalogKey, data, r.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteCatalog удаляет каталог из кэша
func (r *CacheRepo) DeleteCatalog(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *CacheRepo) dropCorrupted() {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := r.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func (r *CacheRepo) marshalCatalogForCache(model converter.CatalogRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}

	return data, nil
}

func (r *CacheRepo) unmarshalCatalogFromCache(data []byte) (*converter.CatalogRedisModel, error) {
	var model converter.CatalogRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}
