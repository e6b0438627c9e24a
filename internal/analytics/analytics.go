// Package analytics derives inventory statistics from a product collection.
package analytics

import (
	"math"

	"product-dashboard/internal/model"
)

// StockStatus classifies a product's stock level.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out-of-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusInStock    StockStatus = "in-stock"
)

// Analyze computes totals over the whole collection. Absent stock counts as
// zero for totals and is never low.
func Analyze(products []model.Product) model.Summary {
	summary := model.Summary{TotalProducts: len(products)}

	for _, p := range products {
		stock := p.StockOrZero()
		summary.TotalStock += stock
		summary.TotalValue += p.Price * float64(stock)
		if IsLowStock(p) {
			summary.LowStockCount++
		}
	}

	// stored records skip form validation; keep the total encodable
	if math.IsInf(summary.TotalValue, 1) || math.IsNaN(summary.TotalValue) {
		summary.TotalValue = math.MaxFloat64
	}

	return summary
}

// IsLowStock reports whether 0 < stock < model.LowStockThreshold.
func IsLowStock(p model.Product) bool {
	return p.Stock != nil && *p.Stock > 0 && *p.Stock < model.LowStockThreshold
}

// StatusOf classifies p. Absent stock is reported as out of stock.
func StatusOf(p model.Product) StockStatus {
	switch {
	case p.StockOrZero() <= 0:
		return StatusOutOfStock
	case IsLowStock(p):
		return StatusLowStock
	default:
		return StatusInStock
	}
}
