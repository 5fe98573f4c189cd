// Package detector implements the rising-video and viral-shorts detection
// pipelines on top of the YouTube client, the scoring functions and the
// TTL cache.
package detector

import (
	"context"
	"strings"
	"time"

	"github.com/trendpulse/viral-engine/cache"
	"github.com/trendpulse/viral-engine/model"
	"github.com/trendpulse/viral-engine/scoring"
)

// YouTubeClient defines the methods needed for YouTube API operations.
type YouTubeClient interface {
	// SearchVideos returns IDs of videos matching keyword published after
	// the cutoff, ranked by view count.
	SearchVideos(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]string, error)

	// SearchShorts returns video/channel ID pairs of short-form videos
	// matching keyword published after the cutoff, ranked by view count.
	SearchShorts(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]model.ShortsRef, error)

	// ListVideoDetails resolves metadata and statistics for a batch of
	// video IDs.
	ListVideoDetails(ctx context.Context, videoIDs []string) (map[string]model.VideoDetails, error)

	// ListChannelStats resolves subscriber counts for a batch of channel
	// IDs, at most 50 per underlying call.
	ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelSubscriberInfo, error)

	// ListTrending returns the most-popular chart for a category.
	ListTrending(ctx context.Context, categoryID string, maxResults int64) ([]model.VideoSnapshot, error)
}

// Options tunes the detection pipelines. Zero values fall back to the
// production defaults.
type Options struct {
	RisingWindow     time.Duration // recency window for rising search
	RisingMaxResults int64
	RisingTTL        time.Duration

	ShortsWindow     time.Duration // recency window for shorts search
	ShortsMaxResults int64
	ShortsTTL        time.Duration

	TrendingTTL time.Duration

	TierRules []model.TierRule
	Keywords  KeywordSource
}

func (o *Options) applyDefaults() {
	if o.RisingWindow <= 0 {
		o.RisingWindow = 48 * time.Hour
	}
	if o.RisingMaxResults <= 0 {
		o.RisingMaxResults = 15
	}
	if o.RisingTTL <= 0 {
		o.RisingTTL = 30 * time.Minute
	}
	if o.ShortsWindow <= 0 {
		o.ShortsWindow = 15 * 24 * time.Hour
	}
	if o.ShortsMaxResults <= 0 {
		o.ShortsMaxResults = 50
	}
	if o.ShortsTTL <= 0 {
		o.ShortsTTL = 30 * time.Minute
	}
	if o.TrendingTTL <= 0 {
		o.TrendingTTL = 15 * time.Minute
	}
	if o.Keywords == nil {
		o.Keywords = NewRandomKeywordSource(DefaultKeywords())
	}
}

// Detector runs the detection pipelines. It holds no per-request state;
// the cache is the only shared mutable resource and is safe for concurrent
// use.
type Detector struct {
	client     YouTubeClient
	cache      *cache.Cache
	scorer     *scoring.TrendScorer
	classifier *scoring.ViralClassifier
	opts       Options
	now        func() time.Time
}

// New creates a detector over the given client and cache.
func New(client YouTubeClient, c *cache.Cache, opts Options) *Detector {
	opts.applyDefaults()
	return &Detector{
		client:     client,
		cache:      c,
		scorer:     scoring.NewTrendScorer(),
		classifier: scoring.NewViralClassifier(opts.TierRules),
		opts:       opts,
		now:        time.Now,
	}
}

// RisingCacheKey returns the cache key for a rising-video detection run.
func RisingCacheKey(keyword string) string {
	return "youtube:" + strings.ToLower(keyword)
}

// ShortsCacheKey returns the cache key for a viral-shorts detection run.
func ShortsCacheKey(keyword string) string {
	return "youtube:viral-shorts:" + strings.ToLower(keyword)
}

// TrendingCacheKey returns the cache key for a trending chart category.
func TrendingCacheKey(categoryID string) string {
	return "youtube:trending:" + categoryID
}
