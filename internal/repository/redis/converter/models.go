package converter

// ProductRedisModel — товар в кэше. Цена хранится строкой, чтобы не терять точность.
type ProductRedisModel struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int64  `json:"stock"`
	Description string `json:"description,omitempty"`
}

// CatalogRedisModel — снимок каталога целиком.
type CatalogRedisModel struct {
	Products []ProductRedisModel `json:"products"`
	CachedAt int64               `json:"cached_at"`
}
