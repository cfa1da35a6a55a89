package usecase

import (
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// OrderState хранит заказ покупателя в рамках одной сессии.
// Значения не валидируются: проверка остатков и знака выполняется вызывающей стороной,
// кроме Increment/Decrement, которые сами охраняют границы.
type OrderState struct {
	mu    sync.RWMutex
	order domain.Order
}

func NewOrderState() *OrderState {
	return &OrderState{order: make(domain.Order)}
}

// SetQuantity безусловно записывает количество товара (последняя запись побеждает).
func (s *OrderState) SetQuantity(name string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order[name] = quantity
}

// Clear сбрасывает заказ в пустое состояние.
func (s *OrderState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = make(domain.Order)
}

// SetAll целиком заменяет заказ, например при восстановлении сохранённой корзины.
func (s *OrderState) SetAll(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order.Clone()
}

// Order возвращает копию текущего заказа.
func (s *OrderState) Order() domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Clone()
}

func (s *OrderState) Quantity(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order[name]
}

// Increment увеличивает количество на единицу, пока оно меньше остатка.
// Возвращает false, если увеличение не выполнено.
func (s *OrderState) Increment(name string, stock int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.order[name]
	if qty >= stock {
		return false
	}

	s.order[name] = qty + 1
	return true
}

// Decrement уменьшает количество на единицу, не опускаясь ниже нуля.
func (s *OrderState) Decrement(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.order[name]
	if qty <= 0 {
		return false
	}

	s.order[name] = qty - 1
	return true
}

func (s *OrderState) Items() []domain.OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Items()
}

func (s *OrderState) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.IsEmpty()
}
