package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceItems(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, WholesalePrice: 10000, SellingPrice: 12500},
		{Quantity: 1, WholesalePrice: 7000.10, SellingPrice: 9000.20},
	}

	totals := PriceItems(items, 5000)
	assert.Equal(t, 34000.20, totals.CustomerPrice)
	assert.Equal(t, 27000.10, totals.WholesaleTotal)
	assert.Equal(t, 7000.10, totals.Profit)
	assert.Equal(t, 5000.0, totals.DeliveryFee)
	assert.Equal(t, 39000.20, totals.TotalWithDelivery)
}

func TestPriceItemsNeverNegativeProfit(t *testing.T) {
	totals := PriceItems([]OrderItem{{Quantity: 1, WholesalePrice: 100, SellingPrice: 80}}, 0)
	assert.Equal(t, 0.0, totals.Profit)
}

func TestSumProfit(t *testing.T) {
	orders := []*Order{{Profit: 0.1}, {Profit: 0.2}, {Profit: 5000}}
	assert.Equal(t, 5000.3, SumProfit(orders))
	assert.Equal(t, 0.3, AddMoney(0.1, 0.2))
}

func TestProductPriceRange(t *testing.T) {
	min, max := 100.0, 200.0
	p := &Product{Price: 90, MinPrice: &min, MaxPrice: &max}
	assert.True(t, p.PriceRangeValid())
	assert.True(t, p.AcceptsSellingPrice(150))
	assert.False(t, p.AcceptsSellingPrice(99))
	assert.False(t, p.AcceptsSellingPrice(201))

	p.MinPrice, p.MaxPrice = &max, &min
	assert.False(t, p.PriceRangeValid())

	p.MaxPrice = nil
	assert.True(t, p.PriceRangeValid())
}
