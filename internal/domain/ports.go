package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoCredential = errors.New("no credential configured")
)

// BlobStore is the key-value substrate the record store persists into.
// Get reports ok=false when the key has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// RecordStore persists the full collection. Implementations absorb their own
// failures: Load always yields a usable collection and Save never reports.
type RecordStore interface {
	Load(ctx context.Context) Collection
	Save(ctx context.Context, c Collection)
}

// TextGenerator sends a prompt to a generative-text service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
