// Package bootstrap wires config into the services shared by every binary.
package bootstrap

import (
	"errors"

	"github.com/rs/zerolog/log"

	"snowland_hotels/internal/adapters/advisor"
	redisad "snowland_hotels/internal/adapters/redis"
	"snowland_hotels/internal/app"
	"snowland_hotels/internal/domain"
	"snowland_hotels/internal/shared"
	"snowland_hotels/internal/storage"
	"snowland_hotels/internal/storage/records"
)

type Deps struct {
	Repo    *app.Repository
	Advice  *app.AdviceService
	closers []func() error
}

func Build(cfg shared.Config) (*Deps, error) {
	d := &Deps{}

	kv, closeKV, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, closeKV)
	d.Repo = app.NewRepository(records.New(kv), app.Latency{
		FetchAll:   cfg.FetchDelay,
		ByLocation: cfg.LocationDelay,
		Mutation:   cfg.MutationDelay,
	})

	var gen domain.TextGenerator
	client, err := advisor.New(advisor.Config{
		BaseURL: cfg.AdvisorBase,
		APIKey:  cfg.AdvisorKey,
		Model:   cfg.AdvisorModel,
		RPS:     cfg.AdvisorRPS,
	})
	switch {
	case err == nil:
		gen = client
	case errors.Is(err, domain.ErrNoCredential):
		log.Warn().Msg("advisor disabled: no API key")
	default:
		_ = d.Close()
		return nil, err
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		d.closers = append(d.closers, c.Close)
		cache = c
	}
	d.Advice = app.NewAdviceService(gen, cache, cfg.CacheTTL)
	return d, nil
}

// Close releases substrates and clients, returning the first error.
func (d *Deps) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
