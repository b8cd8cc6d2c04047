// Package badger is the default substrate: an embedded key-value database
// local to the process, the closest match to per-client browser storage.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Store struct {
	db *badger.DB
}

// zerologAdapter routes badger's internal logging through zerolog.
type zerologAdapter struct{ l zerolog.Logger }

var _ badger.Logger = (*zerologAdapter)(nil)

func (a *zerologAdapter) Errorf(msg string, items ...any) {
	a.l.Error().Msg(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}
func (a *zerologAdapter) Warningf(msg string, items ...any) {
	a.l.Warn().Msg(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}
func (a *zerologAdapter) Infof(msg string, items ...any) {
	a.l.Debug().Msg(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}
func (a *zerologAdapter) Debugf(msg string, items ...any) {
	a.l.Trace().Msg(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

// Open opens (creating if needed) a database in dir, or an in-memory one.
func Open(dir string, inMemory bool) (*Store, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &zerologAdapter{l: log.Logger.With().Str("component", "badger").Logger()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) Close() error { return s.db.Close() }
