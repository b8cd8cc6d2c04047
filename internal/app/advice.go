package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"snowland_hotels/internal/domain"
)

// AdviceService asks the text generator for destination tips and hotel blurbs.
// It never fails: every error becomes a fixed user-readable string, and only
// real answers are cached.
type AdviceService struct {
	gen      domain.TextGenerator // nil when no credential is configured
	cache    domain.Cache         // optional
	cacheTTL time.Duration
}

func NewAdviceService(g domain.TextGenerator, c domain.Cache, ttl time.Duration) *AdviceService {
	return &AdviceService{gen: g, cache: c, cacheTTL: ttl}
}

func (s *AdviceService) DestinationTips(ctx context.Context, loc domain.Location) string {
	text, _ := s.LookupDestinationTips(ctx, loc)
	return text
}

func (s *AdviceService) HotelSummary(ctx context.Context, h domain.Hotel) string {
	text, _ := s.LookupHotelSummary(ctx, h)
	return text
}

// LookupDestinationTips is DestinationTips with ok reporting whether text is
// a generated answer rather than a fallback.
func (s *AdviceService) LookupDestinationTips(ctx context.Context, loc domain.Location) (text string, ok bool) {
	return s.ask(ctx, tipsKey(loc), tipsPrompt(loc), msgTipsEmpty, msgTipsFailed)
}

func (s *AdviceService) LookupHotelSummary(ctx context.Context, h domain.Hotel) (text string, ok bool) {
	return s.ask(ctx, summaryKey(h.ID), summaryPrompt(h), msgSummaryEmpty, msgSummaryFail)
}

// ForgetHotel evicts the cached summary of hotel id. Call it after the hotel
// is edited or removed.
func (s *AdviceService) ForgetHotel(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryKey(id)); err != nil {
		log.Warn().Err(err).Str("hotel_id", id).Msg("summary eviction failed")
	}
}

func tipsKey(loc domain.Location) string { return "tips:" + string(loc) }
func summaryKey(id string) string        { return "summary:" + id }

func (s *AdviceService) ask(ctx context.Context, key, prompt, empty, failed string) (string, bool) {
	if s.gen == nil {
		return msgNoCredential, false
	}
	var cached string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok && cached != "" {
			return cached, true
		}
	}

	text, err := s.gen.Generate(ctx, prompt)
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		return msgNoCredential, false
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("advisory request failed")
		return failed, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return empty, false
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, text, int(s.cacheTTL.Seconds()))
	}
	return text, true
}
