package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{name: "nil order", order: nil, want: true},
		{name: "no entries", order: Order{}, want: true},
		{name: "only zero quantities", order: Order{"Croissant": 0}, want: true},
		{name: "zero and positive", order: Order{"Croissant": 0, "Pretzel": 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.IsEmpty())
		})
	}
}

func TestOrder_Items_FiltersNonPositive(t *testing.T) {
	order := Order{"A": 2, "B": 0, "C": -1}

	assert.Equal(t, []OrderItem{{Name: "A", Quantity: 2}}, order.Items())
}

func TestOrder_Items_SortedByName(t *testing.T) {
	order := Order{"Pretzel": 1, "Croissant": 2, "Bagel": 3}

	items := order.Items()

	assert.Equal(t, []OrderItem{
		{Name: "Bagel", Quantity: 3},
		{Name: "Croissant", Quantity: 2},
		{Name: "Pretzel", Quantity: 1},
	}, items)
}

func TestOrder_Items_EmptyIsNotNil(t *testing.T) {
	items := Order{"Croissant": 0}.Items()

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestOrder_Clone_IsIndependent(t *testing.T) {
	order := Order{"Croissant": 1}
	clone := order.Clone()
	clone["Croissant"] = 5

	assert.Equal(t, int64(1), order["Croissant"])
	assert.NotNil(t, Order(nil).Clone())
}
