package main

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"snowland_hotels/internal/adapters/observability"
	"snowland_hotels/internal/app"
	"snowland_hotels/internal/bootstrap"
	"snowland_hotels/internal/domain"
	"snowland_hotels/internal/shared"
)

// warmer fills the advice cache: tips for every destination and a summary
// for every hotel, a bounded number at a time.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(os.Stdout, cfg.AppEnv, cfg.LogLevel)

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required: nothing to warm without a cache")
	}
	log.Info().
		Str("store", cfg.StoreBackend).
		Int("workers", cfg.Workers).
		Msg("warmer starting")

	deps, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	defer deps.Close()

	ok, failed, err := warm(ctx, deps.Repo, deps.Advice, cfg.Workers)
	if err != nil {
		log.Error().Err(err).Msg("warming aborted")
		return
	}
	ev := log.Info()
	if failed > 0 {
		ev = log.Warn()
	}
	ev.Int64("cached", ok).Int64("failed", failed).Msg("warming completed")
}

// warm asks for every destination's tips and every hotel's summary with at
// most workers requests in flight. Fallback answers count as failures.
func warm(ctx context.Context, repo *app.Repository, adv *app.AdviceService, workers int) (ok, failed int64, err error) {
	if workers < 1 {
		workers = 1
	}
	// hotels load in the background while destination tips are warmed
	pending := app.Go(ctx, repo.FetchAll)

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	run := func(name string, fn func(context.Context) (string, bool)) error {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			text, generated := fn(ctx)
			if !generated {
				atomic.AddInt64(&failed, 1)
				log.Warn().Str("item", name).Str("fallback", text).Msg("warm failed")
				return
			}
			atomic.AddInt64(&ok, 1)
			log.Info().Str("item", name).Int("chars", len([]rune(text))).Msg("warm ok")
		}()
		return nil
	}

	for _, loc := range domain.Destinations {
		loc := loc
		if err := run("tips:"+string(loc), func(ctx context.Context) (string, bool) {
			return adv.LookupDestinationTips(ctx, loc)
		}); err != nil {
			wg.Wait()
			return ok, failed, err
		}
	}

	snap := <-pending
	if snap.Err != nil {
		wg.Wait()
		return ok, failed, snap.Err
	}
	for _, h := range snap.Hotels {
		h := h
		if err := run("summary:"+h.ID, func(ctx context.Context) (string, bool) {
			return adv.LookupHotelSummary(ctx, h)
		}); err != nil {
			wg.Wait()
			return ok, failed, err
		}
	}

	wg.Wait()
	return atomic.LoadInt64(&ok), atomic.LoadInt64(&failed), nil
}
