package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "snowland_hotels/internal/adapters/redis"
	"snowland_hotels/internal/domain"
	"snowland_hotels/internal/shared"
	badgerkv "snowland_hotels/internal/storage/badger"
	mysqlrepo "snowland_hotels/internal/storage/mysql"
	"snowland_hotels/internal/storage/records"
)

// Open returns the substrate named by cfg.StoreBackend and a func releasing it.
func Open(cfg shared.Config) (domain.BlobStore, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.StoreBackend) {
	case "", "badger":
		s, err := badgerkv.Open(cfg.BadgerDir, false)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("dir", cfg.BadgerDir).Msg("record store on badger")
		return s, s.Close, nil
	case "memory":
		log.Warn().Msg("record store in memory; data is lost on exit")
		return records.NewMemory(), noop, nil
	case "redis":
		s := redisad.NewBlobStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("record store on redis")
		return s, s.Close, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("record store on mysql")
		return mysqlrepo.New(db), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
