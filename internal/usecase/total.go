package usecase

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateTotal считает сумму заказа: Σ(quantity × price).
// Если каталог не загружен, не найденный товар или количество <= 0 дают вклад 0.
func CalculateTotal(order domain.Order, catalog domain.Catalog) decimal.Decimal {
	total := decimal.Zero
	if catalog == nil {
		return total
	}

	for name, qty := range order {
		if qty <= 0 {
			continue
		}

		product, ok := catalog.Find(name)
		if !ok {
			continue
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(qty)))
	}

	return total
}

// FormatTotal форматирует сумму с двумя знаками после запятой (округление от нуля).
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}

// Total возвращает отформатированную сумму заказа.
func Total(order domain.Order, catalog domain.Catalog) string {
	return FormatTotal(CalculateTotal(order, catalog))
}

// IsOrderEmpty сообщает, что в заказе нечего отправлять.
func IsOrderEmpty(order domain.Order) bool {
	return order.IsEmpty()
}
