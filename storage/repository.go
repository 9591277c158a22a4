package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Repository reads and writes one JSON document of type T under a fixed key.
type Repository[T any] struct {
	store    KVStore
	key      string
	fallback func() T
}

// NewRepository binds key on store. fallback produces the value used when the key is
// absent or its content cannot be decoded.
func NewRepository[T any](store KVStore, key string, fallback func() T) *Repository[T] {
	return &Repository[T]{store: store, key: key, fallback: fallback}
}

func (r *Repository[T]) Key() string { return r.key }

// Load never fails: read and decode errors are logged and the fallback is returned.
func (r *Repository[T]) Load(ctx context.Context) T {
	b, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		log.Debug().Str("key", r.key).Msg("no stored value, using default")
		return r.fallback()
	}
	if err != nil {
		log.Error().Err(err).Str("key", r.key).Msg("failed to read stored value, using default")
		return r.fallback()
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		log.Error().Err(err).Str("key", r.key).Msg("failed to parse stored value, using default")
		return r.fallback()
	}
	return v
}

func (r *Repository[T]) Save(ctx context.Context, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, b); err != nil {
		return err
	}
	return nil
}
