package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// CategoryAll is the filter sentinel meaning "every category". It is never a
// real product category.
const CategoryAll = "All"

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

// Product represents an inventory record on the dashboard.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       *int    `json:"stock,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StockOrZero returns the stock count, treating an absent value as zero.
func (p Product) StockOrZero() int {
	if p.Stock == nil {
		return 0
	}
	return *p.Stock
}

// Clone returns a deep copy so callers cannot mutate shared optional fields.
func (p Product) Clone() Product {
	c := p
	if p.Stock != nil {
		s := *p.Stock
		c.Stock = &s
	}
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	return c
}

// CloneProducts deep-copies a collection, preserving order.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}

// FormatPrice renders a price with two decimals, e.g. "$79.99".
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

// FormatStock renders a stock count, or "N/A" when it is absent.
func FormatStock(stock *int) string {
	if stock == nil {
		return "N/A"
	}
	return strconv.Itoa(*stock)
}
