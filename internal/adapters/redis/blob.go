package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// BlobStore keeps record-store values as plain redis strings without expiry.
type BlobStore struct{ c *redis.Client }

func NewBlobStore(addr, pass string, db int) *BlobStore {
	return NewBlobStoreFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewBlobStoreFromClient(c *redis.Client) *BlobStore { return &BlobStore{c: c} }

func (b *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	return b.c.Set(ctx, key, value, 0).Err()
}

func (b *BlobStore) Close() error { return b.c.Close() }
