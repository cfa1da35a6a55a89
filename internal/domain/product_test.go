package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		*NewProduct("Croissant", decimal.RequireFromString("2.99"), 10, "Buttery"),
		*NewProduct("Pretzel", decimal.RequireFromString("3.99"), 1, "Salty"),
	}
}

func TestCatalog_Find(t *testing.T) {
	catalog := testCatalog()

	p, ok := catalog.Find("Croissant")
	require.True(t, ok)
	assert.Equal(t, "Croissant", p.Name)

	p, ok = catalog.Find("pretzel")
	require.True(t, ok, "lookup falls back to case-insensitive match")
	assert.Equal(t, "Pretzel", p.Name)

	_, ok = catalog.Find("Baguette")
	assert.False(t, ok)
}

func TestCatalog_Find_ExactMatchWins(t *testing.T) {
	catalog := Catalog{
		{Name: "PIE", Price: decimal.NewFromInt(1)},
		{Name: "Pie", Price: decimal.NewFromInt(2)},
	}

	p, ok := catalog.Find("Pie")
	require.True(t, ok)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(2)))
}

func TestCatalog_WithStockDecreased(t *testing.T) {
	catalog := testCatalog()

	patched := catalog.WithStockDecreased([]OrderItem{
		{Name: "Croissant", Quantity: 2},
		{Name: "Pretzel", Quantity: 5},
		{Name: "Baguette", Quantity: 1},
	})

	assert.Equal(t, int64(8), patched[0].Stock)
	assert.Equal(t, int64(0), patched[1].Stock, "stock is floored at zero")
	assert.Equal(t, int64(10), catalog[0].Stock, "source catalog is untouched")
	assert.Len(t, patched, 2)
}

func TestCatalog_WithStockDecreased_Nil(t *testing.T) {
	var catalog Catalog

	assert.Nil(t, catalog.WithStockDecreased([]OrderItem{{Name: "Croissant", Quantity: 1}}))
}
