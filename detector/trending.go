package detector

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/trendpulse/viral-engine/model"
	"github.com/trendpulse/viral-engine/scoring"
)

// Trending returns the most-popular chart for a category with trend
// metrics attached, preserving chart order. The chart churns faster than
// keyword searches, so it is cached with the shorter trending TTL.
func (d *Detector) Trending(ctx context.Context, categoryID string, maxResults int64) ([]model.Video, error) {
	if categoryID == "" {
		categoryID = "0"
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	key := TrendingCacheKey(categoryID)

	if v, ok := d.cache.Get(key); ok {
		if videos, ok := v.([]model.Video); ok {
			return videos, nil
		}
	}

	snapshots, err := d.client.ListTrending(ctx, categoryID, maxResults)
	if err != nil {
		return nil, err
	}

	now := d.now()
	videos := make([]model.Video, 0, len(snapshots))
	for _, snap := range snapshots {
		hoursAgo := now.Sub(snap.PublishedAt).Hours()
		if hoursAgo < 0 {
			hoursAgo = 0
		}

		metrics := d.scorer.Score(snap.ViewCount, snap.LikeCount, snap.CommentCount, hoursAgo)
		videos = append(videos, model.Video{
			ID:             snap.ID,
			Title:          snap.Title,
			ChannelID:      snap.ChannelID,
			ChannelTitle:   snap.ChannelTitle,
			PublishedAt:    snap.PublishedAt,
			ThumbnailURL:   snap.ThumbnailURL,
			Description:    snap.Description,
			ViewCount:      snap.ViewCount,
			LikeCount:      snap.LikeCount,
			CommentCount:   snap.CommentCount,
			HoursAgo:       scoring.RoundHours(hoursAgo),
			VelocityScore:  metrics.VelocityScore,
			EngagementRate: metrics.EngagementRate,
			TrendScore:     metrics.TrendScore,
		})
	}

	d.cache.Set(key, videos, d.opts.TrendingTTL)

	log.Info().
		Str("category_id", categoryID).
		Int64("max_results", maxResults).
		Int("video_count", len(videos)).
		Msg("Trending chart fetched")

	return videos, nil
}
