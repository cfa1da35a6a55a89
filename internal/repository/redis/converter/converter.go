package converter

import (
	"fmt"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToDomain(model *ProductRedisModel) (*domain.Product, error)
	ToArrRedisModel(entities domain.Catalog) []ProductRedisModel
	ToArrDomain(models []ProductRedisModel) (domain.Catalog, error)
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductRedisModel{
		Name:        entity.Name,
		Price:       entity.Price.String(),
		Stock:       entity.Stock,
		Description: entity.Description,
	}
}

func (productConverter) ToDomain(model *ProductRedisModel) (*domain.Product, error) {
	if model == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, fmt.Errorf("product %q: invalid price %q: %w", model.Name, model.Price, err)
	}

	return domain.NewProduct(model.Name, price, model.Stock, model.Description), nil
}

func (c productConverter) ToArrRedisModel(entities domain.Catalog) []ProductRedisModel {
	models := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}

	return models
}

func (c productConverter) ToArrDomain(models []ProductRedisModel) (domain.Catalog, error) {
	catalog := make(domain.Catalog, 0, len(models))
	for i := range models {
		p, err := c.ToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, *p)
	}

	return catalog, nil
}
