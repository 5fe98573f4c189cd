// Package actions wraps the detectors with the fallback behavior the web
// layer relies on: when the API quota is exhausted, serve the most recent
// cache entry even if it has expired, rather than failing the request.
package actions

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/trendpulse/viral-engine/cache"
	"github.com/trendpulse/viral-engine/detector"
	"github.com/trendpulse/viral-engine/model"
)

// Actions exposes the detector operations with quota fallback applied.
type Actions struct {
	detector *detector.Detector
	cache    *cache.Cache
}

// New creates the action layer over a detector and its cache.
func New(d *detector.Detector, c *cache.Cache) *Actions {
	return &Actions{detector: d, cache: c}
}

// GetRisingVideos runs rising-video detection for keyword. On quota
// exhaustion it falls back to the last cached result for the keyword, even
// an expired one. The fallback entry is snapshotted up front because the
// detector's own cache lookup evicts expired entries.
func (a *Actions) GetRisingVideos(ctx context.Context, keyword string) (model.TrendResult, error) {
	fallback, _, hasFallback := a.cache.GetStale(detector.RisingCacheKey(keyword))

	result, err := a.detector.DetectRising(ctx, keyword)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, model.ErrQuotaExceeded) && hasFallback {
		if cached, ok := fallback.(model.TrendResult); ok {
			log.Warn().Str("keyword", keyword).Msg("Quota exceeded, serving cached rising result")
			cached.Cached = true
			return cached, nil
		}
	}

	return model.TrendResult{}, err
}

// GetViralShorts runs viral-shorts detection. On quota exhaustion it falls
// back to the last cached result for the keyword, with tierFilter applied
// to the response. No fallback is possible when the keyword was left to
// the random default source, since the cache key is not known up front.
func (a *Actions) GetViralShorts(ctx context.Context, keyword string, tierFilter []model.ViralTier) (model.ViralShortsResult, error) {
	var (
		fallback    interface{}
		hasFallback bool
	)
	if keyword != "" {
		fallback, _, hasFallback = a.cache.GetStale(detector.ShortsCacheKey(keyword))
	}

	result, err := a.detector.DetectViralShorts(ctx, keyword, tierFilter)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, model.ErrQuotaExceeded) && hasFallback {
		if cached, ok := fallback.(model.ViralShortsResult); ok {
			log.Warn().Str("keyword", keyword).Msg("Quota exceeded, serving cached viral-shorts result")
			cached.Cached = true
			return detector.FilterByTier(cached, tierFilter), nil
		}
	}

	return model.ViralShortsResult{}, err
}

// GetTrendingVideos fetches the trending chart for a category. On quota
// exhaustion it falls back to the last cached chart.
func (a *Actions) GetTrendingVideos(ctx context.Context, categoryID string, maxResults int64) ([]model.Video, error) {
	if categoryID == "" {
		categoryID = "0"
	}
	fallback, _, hasFallback := a.cache.GetStale(detector.TrendingCacheKey(categoryID))

	videos, err := a.detector.Trending(ctx, categoryID, maxResults)
	if err == nil {
		return videos, nil
	}

	if errors.Is(err, model.ErrQuotaExceeded) && hasFallback {
		if cached, ok := fallback.([]model.Video); ok {
			log.Warn().Str("category_id", categoryID).Msg("Quota exceeded, serving cached trending chart")
			return cached, nil
		}
	}

	return nil, err
}
