package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"product-dashboard/internal/model"
	"product-dashboard/internal/storage"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// blobVersion is written into every saved envelope.
const blobVersion = 1

type envelope struct {
	Version  int             `json:"version"`
	Products []model.Product `json:"products"`
}

// rawEnvelope defers decoding of each record so one ill-typed record does not
// take the rest of the collection down with it.
type rawEnvelope struct {
	Version  int               `json:"version"`
	Products []json.RawMessage `json:"products"`
}

// productRepository stores the collection in a key-value store.
type productRepository struct {
	store  storage.Store
	key    string
	logger zerolog.Logger
}

// NewProductRepository creates a repository storing under key.
func NewProductRepository(store storage.Store, key string, logger zerolog.Logger) ProductRepository {
	if key == "" {
		key = DefaultKey
	}
	return &productRepository{
		store:  store,
		key:    key,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Load reads the stored collection, substituting the seed set when the key
// is absent, unreadable, corrupt or holds an empty collection. Stored records
// are returned verbatim; records that break invariants are only counted.
func (r *productRepository) Load(ctx context.Context) ([]model.Product, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		r.logger.Info().Str("key", r.key).Msg("no stored products, using seed data")
		return SeedProducts(), nil
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("failed to read stored products, using seed data")
		return SeedProducts(), fmt.Errorf("failed to read products: %w", err)
	}

	products, skipped, err := decode(data)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("stored products are corrupt, using seed data")
		return SeedProducts(), err
	}
	if skipped > 0 {
		r.logger.Warn().
			Int("skipped", skipped).
			Int("kept", len(products)).
			Msg("dropped stored products that could not be decoded")
	}

	if len(products) == 0 {
		r.logger.Info().Str("key", r.key).Msg("stored collection is empty, using seed data")
		return SeedProducts(), nil
	}

	if invalid := countInvalid(products); invalid > 0 {
		r.logger.Warn().
			Int("invalid", invalid).
			Int("total", len(products)).
			Msg("loaded products that break invariants")
	}

	r.logger.Debug().Int("count", len(products)).Msg("loaded products")
	return products, nil
}

// Save writes the full collection inside a versioned envelope.
func (r *productRepository) Save(ctx context.Context, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}

	data, err := json.Marshal(envelope{Version: blobVersion, Products: products})
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Int("bytes", len(data)).Msg("saved products")
	return nil
}

// decode accepts the versioned envelope and the older bare array. Only a
// malformed sequence is corrupt; records of the wrong shape are skipped and
// counted. A sequence in which no record survives is corrupt as well.
func decode(data []byte) ([]model.Product, int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("%w: empty blob", ErrCorruptData)
	}

	var records []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
	case '{':
		var env rawEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		if env.Version != blobVersion {
			return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrCorruptData, env.Version)
		}
		records = env.Products
	default:
		return nil, 0, fmt.Errorf("%w: not a product collection", ErrCorruptData)
	}

	products := make([]model.Product, 0, len(records))
	skipped := 0
	for _, record := range records {
		var p model.Product
		if err := json.Unmarshal(record, &p); err != nil {
			skipped++
			continue
		}
		products = append(products, p)
	}

	if len(products) == 0 && skipped > 0 {
		return nil, skipped, fmt.Errorf("%w: none of %d records could be decoded", ErrCorruptData, skipped)
	}
	return products, skipped, nil
}

func countInvalid(products []model.Product) int {
	seen := make(map[string]struct{}, len(products))
	invalid := 0
	for _, p := range products {
		_, dup := seen[p.ID]
		seen[p.ID] = struct{}{}

		if p.ID == "" || dup || p.Price <= 0 || p.Category == model.CategoryAll ||
			(p.Stock != nil && *p.Stock < 0) {
			invalid++
		}
	}
	return invalid
}
