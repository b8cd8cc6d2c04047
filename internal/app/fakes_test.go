package app_test

import (
	"context"
	"sync"

	"snowland_hotels/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu    sync.Mutex
	c     domain.Collection
	loads int
	saves int
}

func (f *fakeStore) Load(ctx context.Context) domain.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.c.Clone()
}

func (f *fakeStore) Save(ctx context.Context, c domain.Collection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.c = c.Clone()
}

type fakeCache struct {
	store map[string]any
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*string) = v.(string)
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.sets++
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeGen struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func ids(c domain.Collection) []string {
	out := make([]string, 0, len(c))
	for _, h := range c {
		out = append(out, h.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
