package repository

import (
	"context"
	"errors"

	"product-dashboard/internal/model"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "product_dashboard_data"

// ErrCorruptData marks a stored blob that exists but cannot be decoded.
var ErrCorruptData = errors.New("stored product data is corrupt")

// ProductRepository persists the whole product collection as one blob.
type ProductRepository interface {
	// Load always returns a usable collection. When nothing usable is stored
	// it returns the seed set; the error is non-nil if that happened because
	// the stored data could not be read or decoded.
	Load(ctx context.Context) ([]model.Product, error)

	// Save overwrites the stored collection.
	Save(ctx context.Context, products []model.Product) error
}
