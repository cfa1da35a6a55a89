package bakery

import (
	"encoding/json"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// storageResponse — ответ GET /api/storage
type storageResponse struct {
	Storage json.RawMessage `json:"storage"`
}

// ProductModel — товар в формате API пекарни
type ProductModel struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description"`
}

// placeOrderRequest — тело POST /api/order
type placeOrderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

func (m *ProductModel) ToDomain() domain.Product {
	return *domain.NewProduct(m.Name, m.Price, m.Stock, m.Description)
}

func ToArrDomain(models []ProductModel) domain.Catalog {
	catalog := make(domain.Catalog, 0, len(models))
	for i := range models {
		catalog = append(catalog, models[i].ToDomain())
	}

	return catalog
}
