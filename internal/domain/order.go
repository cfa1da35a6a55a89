package domain

import "sort"

// Order — заказ покупателя: имя товара -> запрошенное количество.
// Нулевое количество допустимо и не равно отсутствию записи.
type Order map[string]int64

// OrderItem — позиция заказа в формате, отправляемом в API пекарни
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

func NewOrderItem(name string, quantity int64) OrderItem {
	return OrderItem{
		Name:     name,
		Quantity: quantity,
	}
}

// Items проецирует заказ в список позиций, оставляя только количество > 0.
// Позиции отсортированы по имени, чтобы запрос был детерминированным.
func (o Order) Items() []OrderItem {
	items := make([]OrderItem, 0, len(o))
	for name, qty := range o {
		if qty > 0 {
			items = append(items, NewOrderItem(name, qty))
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items
}

// IsEmpty сообщает, пуст ли заказ: нет записей или все количества равны нулю.
func (o Order) IsEmpty() bool {
	for _, qty := range o {
		if qty != 0 {
			return false
		}
	}

	return true
}

// Clone возвращает независимую копию заказа. Для nil возвращает пустой заказ.
func (o Order) Clone() Order {
	clone := make(Order, len(o))
	for name, qty := range o {
		clone[name] = qty
	}

	return clone
}
