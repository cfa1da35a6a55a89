package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product описывает товар пекарни
type Product struct {
	Name        string
	Price       decimal.Decimal
	Stock       int64 // Остаток носит справочный характер и уменьшается локально только после успешного заказа
	Description string
}

func NewProduct(name string, price decimal.Decimal, stock int64, description string) *Product {
	return &Product{
		Name:        name,
		Price:       price,
		Stock:       stock,
		Description: description,
	}
}

// Catalog — список товаров, доступных для заказа.
// nil означает, что каталог ещё не загружен.
type Catalog []Product

// Find ищет товар по имени. Точное совпадение имеет приоритет,
// иначе возвращается первый товар, совпавший без учёта регистра.
func (c Catalog) Find(name string) (Product, bool) {
	idx := c.index(name)
	if idx < 0 {
		return Product{}, false
	}

	return c[idx], true
}

// WithStockDecreased возвращает копию каталога, в которой остаток каждого заказанного товара
// уменьшен на заказанное количество. Остаток не опускается ниже нуля.
func (c Catalog) WithStockDecreased(items []OrderItem) Catalog {
	if c == nil {
		return nil
	}

	patched := make(Catalog, len(c))
	copy(patched, c)

	for _, item := range items {
		idx := patched.index(item.Name)
		if idx < 0 {
			continue
		}

		patched[idx].Stock = max(0, patched[idx].Stock-item.Quantity)
	}

	return patched
}

func (c Catalog) index(name string) int {
	fold := -1
	for i := range c {
		if c[i].Name == name {
			return i
		}
		if fold < 0 && strings.EqualFold(c[i].Name, name) {
			fold = i
		}
	}

	return fold
}
