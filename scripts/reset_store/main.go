package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"product-dashboard/internal/config"
	"product-dashboard/internal/repository"
	"product-dashboard/internal/storage"
)

// Overwrites the stored product collection with the seed set, using the
// same configuration as the dashboard.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s storage: %v\n", cfg.Storage.Backend, err)
		os.Exit(1)
	}
	defer store.Close()

	seed := repository.SeedProducts()
	repo := repository.NewProductRepository(store, cfg.Storage.Key, logger)
	if err := repo.Save(ctx, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to write seed data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d products to %s storage under key %q\n", len(seed), cfg.Storage.Backend, cfg.Storage.Key)
}
