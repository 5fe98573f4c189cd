package detector

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/trendpulse/viral-engine/model"
	"github.com/trendpulse/viral-engine/scoring"
)

// DetectViralShorts finds short-form videos whose view counts far exceed
// their channel's subscriber base. An empty keyword is replaced by one
// picked from the configured keyword source. The unfiltered result is
// cached per keyword; tierFilter only narrows the response, never what is
// stored.
func (d *Detector) DetectViralShorts(ctx context.Context, keyword string, tierFilter []model.ViralTier) (model.ViralShortsResult, error) {
	if keyword == "" {
		keyword = d.opts.Keywords.Pick()
	}
	key := ShortsCacheKey(keyword)

	if v, ok := d.cache.Get(key); ok {
		if result, ok := v.(model.ViralShortsResult); ok {
			result.Cached = true
			return FilterByTier(result, tierFilter), nil
		}
	}

	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Str("keyword", keyword).Msg("Starting viral-shorts detection")

	publishedAfter := d.now().Add(-d.opts.ShortsWindow)
	refs, err := d.client.SearchShorts(ctx, keyword, publishedAfter, d.opts.ShortsMaxResults)
	if err != nil {
		return model.ViralShortsResult{}, err
	}

	now := d.now()
	if len(refs) == 0 {
		// An empty search is a valid outcome, but not one worth pinning in
		// the cache for the full TTL.
		log.Info().Str("run_id", runID).Str("keyword", keyword).Msg("Shorts search returned no videos")
		return model.ViralShortsResult{
			Keyword:    keyword,
			Videos:     []model.ViralVideo{},
			AnalyzedAt: now,
		}, nil
	}

	videoIDs := make([]string, len(refs))
	channelIDs := make([]string, len(refs))
	for i, ref := range refs {
		videoIDs[i] = ref.VideoID
		channelIDs[i] = ref.ChannelID
	}

	// The two batch lookups are independent; fetch them concurrently.
	var (
		details map[string]model.VideoDetails
		subs    map[string]model.ChannelSubscriberInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = d.client.ListVideoDetails(gctx, videoIDs)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = d.client.ListChannelStats(gctx, channelIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ViralShortsResult{}, err
	}

	videos := make([]model.ViralVideo, 0, len(refs))
	for _, ref := range refs {
		det, ok := details[ref.VideoID]
		if !ok {
			continue
		}

		// Unresolved channels count as zero subscribers, which classifies
		// as no tier, same as the hidden sentinel.
		subscriberCount := subs[ref.ChannelID].SubscriberCount

		tier := d.classifier.Classify(subscriberCount, det.ViewCount)
		if tier == model.TierNone {
			continue
		}

		hoursAgo := now.Sub(det.PublishedAt).Hours()
		if hoursAgo < 0 {
			hoursAgo = 0
		}

		videos = append(videos, model.ViralVideo{
			ID:              ref.VideoID,
			Title:           det.Title,
			ChannelID:       ref.ChannelID,
			ChannelTitle:    det.ChannelTitle,
			PublishedAt:     det.PublishedAt,
			ThumbnailURL:    det.ThumbnailURL,
			SubscriberCount: subscriberCount,
			ViewCount:       det.ViewCount,
			LikeCount:       det.LikeCount,
			CommentCount:    det.CommentCount,
			ViralRatio:      scoring.ViralRatio(det.ViewCount, subscriberCount),
			ViralTier:       tier,
			HoursAgo:        scoring.RoundHours(hoursAgo),
			IsShorts:        true,
		})
	}

	// Stable sort keeps the search order (view count rank) as tie-break.
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ViralRatio > videos[j].ViralRatio
	})

	result := model.ViralShortsResult{
		Keyword:       keyword,
		Videos:        videos,
		AnalyzedAt:    now,
		TotalSearched: len(refs),
		ViralCount:    len(videos),
	}
	d.cache.Set(key, result, d.opts.ShortsTTL)

	log.Info().
		Str("run_id", runID).
		Str("keyword", keyword).
		Int("total_searched", result.TotalSearched).
		Int("viral_count", result.ViralCount).
		Msg("Viral-shorts detection finished")

	return FilterByTier(result, tierFilter), nil
}

// FilterByTier narrows a result to the requested tiers, recomputing
// ViralCount. An empty filter returns the result unchanged.
func FilterByTier(result model.ViralShortsResult, tiers []model.ViralTier) model.ViralShortsResult {
	if len(tiers) == 0 {
		return result
	}

	wanted := make(map[model.ViralTier]struct{}, len(tiers))
	for _, tier := range tiers {
		wanted[tier] = struct{}{}
	}

	filtered := make([]model.ViralVideo, 0, len(result.Videos))
	for _, video := range result.Videos {
		if _, ok := wanted[video.ViralTier]; ok {
			filtered = append(filtered, video)
		}
	}

	result.Videos = filtered
	result.ViralCount = len(filtered)
	return result
}
