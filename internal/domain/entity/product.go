package entity

import (
	"time"
)

const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

type Product struct {
	ID               string    `json:"id" firestore:"id"`
	Name             string    `json:"name" firestore:"name"`
	Description      string    `json:"description" firestore:"description"`
	Price            float64   `json:"price" firestore:"price"`
	MinPrice         *float64  `json:"minPrice,omitempty" firestore:"minPrice,omitempty"`
	MaxPrice         *float64  `json:"maxPrice,omitempty" firestore:"maxPrice,omitempty"`
	Stock            int       `json:"stock" firestore:"stock"`
	SKU              string    `json:"sku,omitempty" firestore:"sku,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	AdditionalImages []string  `json:"additionalImages" firestore:"additionalImages"`
	Colors           []string  `json:"colors" firestore:"colors"`
	CategoryID       string    `json:"categoryId" firestore:"categoryId"`
	Status           string    `json:"status" firestore:"status"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// PriceRangeValid holds when minPrice <= maxPrice whenever both are present.
func (p *Product) PriceRangeValid() bool {
	if p.MinPrice == nil || p.MaxPrice == nil {
		return true
	}
	return *p.MinPrice <= *p.MaxPrice
}

// AcceptsSellingPrice reports whether a merchant may sell this product at price.
func (p *Product) AcceptsSellingPrice(price float64) bool {
	if p.MinPrice != nil && price < *p.MinPrice {
		return false
	}
	if p.MaxPrice != nil && price > *p.MaxPrice {
		return false
	}
	return true
}

// SetStock sets the count and flips between active and out_of_stock to match. Inactive
// products stay inactive.
func (p *Product) SetStock(stock int) {
	p.Stock = stock
	switch {
	case stock == 0 && p.Status == ProductStatusActive:
		p.Status = ProductStatusOutOfStock
	case stock > 0 && p.Status == ProductStatusOutOfStock:
		p.Status = ProductStatusActive
	}
}
