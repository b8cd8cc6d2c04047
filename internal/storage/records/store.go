// Package records persists the whole hotel collection as one JSON blob under a
// fixed key. Nothing in here returns an error: substrate failures are logged
// and degrade to the seed collection (reads) or are dropped (writes).
package records

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"snowland_hotels/internal/adapters/observability"
	"snowland_hotels/internal/domain"
)

// StorageKey holds the serialized collection. Bump it when the record shape
// changes; values under older keys are abandoned, not migrated.
const StorageKey = "snowland_hotels_data"

type Store struct {
	kv  domain.BlobStore
	key string
}

func New(kv domain.BlobStore) *Store { return &Store{kv: kv, key: StorageKey} }

// Load returns the persisted collection, seeding the key when it is empty.
func (s *Store) Load(ctx context.Context) domain.Collection {
	observability.ObserveStore("load")
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("record store read failed; serving seed data")
		observability.ObserveStore("fallback")
		return Seed()
	}
	if !ok {
		log.Info().Str("key", s.key).Msg("record store empty; seeding")
		observability.ObserveStore("seed")
		c := Seed()
		s.Save(ctx, c)
		return c
	}
	c, normalized, err := decodeCollection(raw)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("persisted collection is corrupt; serving seed data")
		observability.ObserveStore("fallback")
		return Seed()
	}
	if normalized > 0 {
		log.Warn().Int("records", normalized).Msg("normalized missing or malformed tags")
		observability.ObserveStore("normalize")
	}
	return c
}

// Save overwrites the key with the full collection.
func (s *Store) Save(ctx context.Context, c domain.Collection) {
	if c == nil {
		c = domain.Collection{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		log.Error().Err(err).Msg("marshal collection failed")
		observability.ObserveStore("save_error")
		return
	}
	if err := s.kv.Set(ctx, s.key, b); err != nil {
		log.Error().Err(err).Str("key", s.key).Int("bytes", len(b)).Msg("record store write failed")
		observability.ObserveStore("save_error")
		return
	}
	observability.ObserveStore("save")
}
