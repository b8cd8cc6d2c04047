package app

import (
	"context"
	"time"

	"snowland_hotels/internal/adapters/observability"
	"snowland_hotels/internal/domain"
)

// Latency is the artificial round-trip delay applied before each call.
type Latency struct {
	FetchAll   time.Duration
	ByLocation time.Duration
	Mutation   time.Duration
}

// Repository is the CRUD surface over the record store. Every call waits out
// its simulated latency, then works on a fresh Load; nothing is cached between
// calls. Overlapping mutations each read-modify-write the whole collection, so
// the last writer wins and may drop the other's change.
//
// The only error returned is ctx.Err() when the caller gives up during the wait.
// Storage failures are absorbed by the record store.
type Repository struct {
	store domain.RecordStore
	lat   Latency
}

func NewRepository(s domain.RecordStore, lat Latency) *Repository {
	return &Repository{store: s, lat: lat}
}

func (r *Repository) FetchAll(ctx context.Context) (domain.Collection, error) {
	defer observe("fetch_all", time.Now())
	if !sleepCtx(ctx, r.lat.FetchAll) {
		return nil, ctx.Err()
	}
	return r.store.Load(ctx), nil
}

func (r *Repository) FetchByLocation(ctx context.Context, loc domain.Location) (domain.Collection, error) {
	defer observe("fetch_by_location", time.Now())
	if !sleepCtx(ctx, r.lat.ByLocation) {
		return nil, ctx.Err()
	}
	out := domain.Collection{}
	for _, h := range r.store.Load(ctx) {
		if h.Location == loc {
			out = append(out, h)
		}
	}
	return out, nil
}

// Create appends h. The caller assigns h.ID beforehand.
func (r *Repository) Create(ctx context.Context, h domain.Hotel) (domain.Collection, error) {
	return r.mutate(ctx, "create", func(c domain.Collection) domain.Collection {
		return append(c, normalize(h))
	})
}

// Update replaces the hotel with h.ID; an unknown id leaves the collection as is.
func (r *Repository) Update(ctx context.Context, h domain.Hotel) (domain.Collection, error) {
	return r.mutate(ctx, "update", func(c domain.Collection) domain.Collection {
		for i := range c {
			if c[i].ID == h.ID {
				c[i] = normalize(h)
			}
		}
		return c
	})
}

// Delete removes the hotel with id, if present.
func (r *Repository) Delete(ctx context.Context, id string) (domain.Collection, error) {
	return r.mutate(ctx, "delete", func(c domain.Collection) domain.Collection {
		out := make(domain.Collection, 0, len(c))
		for _, h := range c {
			if h.ID != id {
				out = append(out, h)
			}
		}
		return out
	})
}

func (r *Repository) mutate(ctx context.Context, op string, apply func(domain.Collection) domain.Collection) (domain.Collection, error) {
	defer observe(op, time.Now())
	if !sleepCtx(ctx, r.lat.Mutation) {
		return nil, ctx.Err()
	}
	updated := apply(r.store.Load(ctx))
	r.store.Save(ctx, updated)
	return updated.Clone(), nil
}

// normalize keeps tags a non-nil sequence so the stored form round-trips.
func normalize(h domain.Hotel) domain.Hotel {
	if h.Tags == nil {
		h.Tags = []string{}
	} else {
		h.Tags = append([]string{}, h.Tags...)
	}
	return h
}

func observe(op string, start time.Time) { observability.ObserveRepo(op, time.Since(start)) }

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
