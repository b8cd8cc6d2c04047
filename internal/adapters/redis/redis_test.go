package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "snowland_hotels/internal/adapters/redis"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCache_SetGetDelAndTTL(t *testing.T) {
	mr, c := newClient(t)
	cache := redisad.NewFromClient(c)
	ctx := context.Background()

	var got string
	if ok, err := cache.Get(ctx, "tips:雪乡", &got); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, "tips:雪乡", "穿厚点", 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := cache.Get(ctx, "tips:雪乡", &got)
	if err != nil || !ok || got != "穿厚点" {
		t.Fatalf("expected hit, got ok=%v err=%v val=%q", ok, err, got)
	}

	mr.FastForward(61 * time.Second)
	if ok, _ := cache.Get(ctx, "tips:雪乡", &got); ok {
		t.Fatalf("expected entry to expire")
	}

	_ = cache.Set(ctx, "k", 1, 60)
	if err := cache.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var n int
	if ok, _ := cache.Get(ctx, "k", &n); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestBlobStore_GetSetNoExpiry(t *testing.T) {
	mr, c := newClient(t)
	bs := redisad.NewBlobStoreFromClient(c)
	ctx := context.Background()

	if _, ok, err := bs.Get(ctx, "snowland_hotels_data"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := bs.Set(ctx, "snowland_hotels_data", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("snowland_hotels_data"); ttl != 0 {
		t.Fatalf("expected no ttl, got %v", ttl)
	}
	v, ok, err := bs.Get(ctx, "snowland_hotels_data")
	if err != nil || !ok || string(v) != "[]" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", v, ok, err)
	}
}

func TestBlobStore_ErrorWhenServerDown(t *testing.T) {
	mr, c := newClient(t)
	bs := redisad.NewBlobStoreFromClient(c)
	mr.Close()

	if _, _, err := bs.Get(context.Background(), "x"); err == nil {
		t.Fatalf("expected error from closed server")
	}
}
