package detector

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trendpulse/viral-engine/model"
	"github.com/trendpulse/viral-engine/scoring"
)

// DetectRising finds videos matching keyword uploaded within the rising
// window and ranks them by trend score. Results are cached per lowercased
// keyword; a cache hit is returned as-is with the Cached flag set.
func (d *Detector) DetectRising(ctx context.Context, keyword string) (model.TrendResult, error) {
	key := RisingCacheKey(keyword)

	if v, ok := d.cache.Get(key); ok {
		if result, ok := v.(model.TrendResult); ok {
			result.Cached = true
			return result, nil
		}
	}

	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Str("keyword", keyword).Msg("Starting rising-video detection")

	publishedAfter := d.now().Add(-d.opts.RisingWindow)
	videoIDs, err := d.client.SearchVideos(ctx, keyword, publishedAfter, d.opts.RisingMaxResults)
	if err != nil {
		return model.TrendResult{}, err
	}

	details, err := d.client.ListVideoDetails(ctx, videoIDs)
	if err != nil {
		return model.TrendResult{}, err
	}

	now := d.now()
	videos := make([]model.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		det, ok := details[id]
		if !ok {
			continue
		}

		hoursAgo := now.Sub(det.PublishedAt).Hours()
		if hoursAgo < 0 {
			hoursAgo = 0
		}

		metrics := d.scorer.Score(det.ViewCount, det.LikeCount, det.CommentCount, hoursAgo)
		videos = append(videos, model.Video{
			ID:             id,
			Title:          det.Title,
			ChannelID:      det.ChannelID,
			ChannelTitle:   det.ChannelTitle,
			PublishedAt:    det.PublishedAt,
			ThumbnailURL:   det.ThumbnailURL,
			Description:    det.Description,
			ViewCount:      det.ViewCount,
			LikeCount:      det.LikeCount,
			CommentCount:   det.CommentCount,
			HoursAgo:       scoring.RoundHours(hoursAgo),
			VelocityScore:  metrics.VelocityScore,
			EngagementRate: metrics.EngagementRate,
			TrendScore:     metrics.TrendScore,
		})
	}

	// Stable sort keeps the search order (view count rank) as tie-break.
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].TrendScore > videos[j].TrendScore
	})

	result := model.TrendResult{
		Keyword:    keyword,
		Videos:     videos,
		AnalyzedAt: now,
	}
	d.cache.Set(key, result, d.opts.RisingTTL)

	log.Info().
		Str("run_id", runID).
		Str("keyword", keyword).
		Int("video_count", len(videos)).
		Msg("Rising-video detection finished")

	return result, nil
}
