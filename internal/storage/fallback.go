package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// pendingSuffix names the marker kept next to a key in the secondary while
// the secondary holds a newer value than the primary.
const pendingSuffix = ".pending"

var (
	markPending = []byte("1")
	markSynced  = []byte("0")
)

// fallbackStore pairs a primary backend with a local secondary used when
// the primary is unavailable.
type fallbackStore struct {
	primary   Store
	secondary Store
	logger    zerolog.Logger

	mu sync.Mutex
}

// NewFallbackStore creates a store that writes through to both backends.
// A write the primary rejects lands in the secondary only and is marked
// pending there; reads serve the pending copy and replay it to the primary
// once the primary accepts writes again.
func NewFallbackStore(primary, secondary Store, logger zerolog.Logger) Store {
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("store", "fallback").Logger(),
	}
}

func (s *fallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending(ctx, key) {
		value, err := s.secondary.Get(ctx, key)
		if err == nil {
			s.replay(ctx, key, value)
			return value, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("pending value unreadable, trying primary")
	}

	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}

	s.logger.Warn().
		Err(err).
		Str("key", key).
		Msg("primary read failed, falling back to secondary")

	value, secondaryErr := s.secondary.Get(ctx, key)
	if secondaryErr == nil {
		return value, nil
	}

	if errors.Is(err, ErrKeyNotFound) && errors.Is(secondaryErr, ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return nil, fmt.Errorf("failed to read %s from any store: %w", key, errors.Join(err, secondaryErr))
}

func (s *fallbackStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.primary.Set(ctx, key, value)
	if err == nil {
		if secondaryErr := s.secondary.Set(ctx, key, value); secondaryErr != nil {
			s.logger.Warn().Err(secondaryErr).Str("key", key).Msg("failed to refresh local copy")
		}
		s.markSynced(ctx, key)
		return nil
	}

	s.logger.Warn().
		Err(err).
		Str("key", key).
		Msg("primary write failed, writing to secondary")

	if secondaryErr := s.secondary.Set(ctx, key, value); secondaryErr != nil {
		return fmt.Errorf("failed to write %s to any store: %w", key, errors.Join(err, secondaryErr))
	}
	if markErr := s.secondary.Set(ctx, key+pendingSuffix, markPending); markErr != nil {
		return fmt.Errorf("failed to mark %s pending: %w", key, errors.Join(err, markErr))
	}
	return nil
}

func (s *fallbackStore) Close() error {
	return errors.Join(s.primary.Close(), s.secondary.Close())
}

func (s *fallbackStore) pending(ctx context.Context, key string) bool {
	mark, err := s.secondary.Get(ctx, key+pendingSuffix)
	return err == nil && bytes.Equal(mark, markPending)
}

// replay pushes a pending secondary value to the primary; on failure the
// marker stays and the next read tries again.
func (s *fallbackStore) replay(ctx context.Context, key string, value []byte) {
	if err := s.primary.Set(ctx, key, value); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("primary still unavailable, keeping pending value")
		return
	}
	s.markSynced(ctx, key)
	s.logger.Info().Str("key", key).Msg("pending value replayed to primary")
}

func (s *fallbackStore) markSynced(ctx context.Context, key string) {
	if err := s.secondary.Set(ctx, key+pendingSuffix, markSynced); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to clear pending marker")
	}
}
