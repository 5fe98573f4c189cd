// Package client implements the YouTube Data API v3 client used by the
// detection engine.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/trendpulse/viral-engine/model"
)

// channelBatchSize is the maximum number of IDs channels.list accepts per
// call; videos.list has the same limit.
const (
	channelBatchSize = 50
	videoBatchSize   = 50
)

// YouTubeDataClient implements the detector.YouTubeClient interface on top
// of the YouTube Data API.
type YouTubeDataClient struct {
	service  *ytapi.Service
	apiKey   string
	region   string
	language string
}

// NewYouTubeDataClient creates a new YouTube data client. The region and
// language hints scope search results (e.g. "KR"/"ko").
func NewYouTubeDataClient(apiKey, region, language string) (*YouTubeDataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	return &YouTubeDataClient{
		apiKey:   apiKey,
		region:   region,
		language: language,
	}, nil
}

// Connect establishes a connection to the YouTube API.
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Msg("Connecting to YouTube API")

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(c.apiKey), option.WithHTTPClient(httpClient))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect closes the connection to the YouTube API.
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	// No explicit disconnect needed for the YouTube API client
	c.service = nil
	return nil
}

// SearchVideos returns the IDs of videos matching keyword, published after
// the given cutoff, ranked by view count.
func (c *YouTubeDataClient) SearchVideos(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]string, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	log.Info().
		Str("keyword", keyword).
		Time("published_after", publishedAfter).
		Int64("max_results", maxResults).
		Msg("Searching recent videos")

	call := c.service.Search.List([]string{"id"}).
		Q(keyword).
		Type("video").
		Order("viewCount").
		PublishedAfter(publishedAfter.UTC().Format(time.RFC3339)).
		MaxResults(maxResults).
		RegionCode(c.region).
		RelevanceLanguage(c.language).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Msg("Video search failed")
		return nil, mapAPIError("video search failed", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videoIDs = append(videoIDs, item.Id.VideoId)
	}

	return videoIDs, nil
}

// SearchShorts returns video/channel ID pairs for short-form videos
// matching keyword, published after the given cutoff, ranked by view count.
func (c *YouTubeDataClient) SearchShorts(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]model.ShortsRef, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	log.Info().
		Str("keyword", keyword).
		Time("published_after", publishedAfter).
		Int64("max_results", maxResults).
		Msg("Searching short-form videos")

	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(keyword).
		Type("video").
		VideoDuration("short").
		Order("viewCount").
		PublishedAfter(publishedAfter.UTC().Format(time.RFC3339)).
		MaxResults(maxResults).
		RegionCode(c.region).
		RelevanceLanguage(c.language).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Msg("Shorts search failed")
		return nil, mapAPIError("shorts search failed", err)
	}

	refs := make([]model.ShortsRef, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil || item.Snippet.ChannelId == "" {
			continue
		}
		refs = append(refs, model.ShortsRef{
			VideoID:   item.Id.VideoId,
			ChannelID: item.Snippet.ChannelId,
		})
	}

	return refs, nil
}

// ListVideoDetails fetches metadata and statistics for the given video IDs,
// batching the lookups to respect the per-call ID limit. Missing or
// malformed fields default rather than fail; IDs the API does not return
// are absent from the map.
func (c *YouTubeDataClient) ListVideoDetails(ctx context.Context, videoIDs []string) (map[string]model.VideoDetails, error) {
	details := make(map[string]model.VideoDetails, len(videoIDs))
	if len(videoIDs) == 0 {
		return details, nil
	}

	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	for start := 0; start < len(videoIDs); start += videoBatchSize {
		end := min(start+videoBatchSize, len(videoIDs))
		batch := videoIDs[start:end]

		call := c.service.Videos.List([]string{"snippet", "statistics"}).
			Id(batch...).
			Context(ctx)

		response, err := call.Do()
		if err != nil {
			log.Error().Err(err).Strs("video_ids", batch).Msg("Failed to get video details")
			return nil, mapAPIError("video details lookup failed", err)
		}

		for _, item := range response.Items {
			if item.Id == "" {
				continue
			}
			details[item.Id] = parseVideoDetails(item, time.Now())
		}
	}

	log.Info().Int("requested", len(videoIDs)).Int("resolved", len(details)).Msg("Resolved video details")
	return details, nil
}

// ListChannelStats fetches subscriber counts for the given channel IDs,
// deduplicating the input and batching into groups of at most 50. Channels
// that hide their subscriber count are returned with the hidden sentinel.
func (c *YouTubeDataClient) ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelSubscriberInfo, error) {
	stats := make(map[string]model.ChannelSubscriberInfo, len(channelIDs))
	if len(channelIDs) == 0 {
		return stats, nil
	}

	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	unique := dedupe(channelIDs)

	for start := 0; start < len(unique); start += channelBatchSize {
		end := min(start+channelBatchSize, len(unique))
		batch := unique[start:end]

		call := c.service.Channels.List([]string{"statistics"}).
			Id(batch...).
			Context(ctx)

		response, err := call.Do()
		if err != nil {
			log.Error().Err(err).Strs("channel_ids", batch).Msg("Failed to get channel statistics")
			return nil, mapAPIError("channel statistics lookup failed", err)
		}

		for _, item := range response.Items {
			if item.Id == "" || item.Statistics == nil {
				continue
			}
			stats[item.Id] = parseChannelStats(item.Statistics)
		}
	}

	log.Info().Int("requested", len(unique)).Int("resolved", len(stats)).Msg("Resolved channel subscriber counts")
	return stats, nil
}

// ListTrending returns the most-popular chart for a video category, in
// chart order.
func (c *YouTubeDataClient) ListTrending(ctx context.Context, categoryID string, maxResults int64) ([]model.VideoSnapshot, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	log.Info().Str("category_id", categoryID).Int64("max_results", maxResults).Msg("Fetching trending chart")

	call := c.service.Videos.List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		RegionCode(c.region).
		VideoCategoryId(categoryID).
		MaxResults(maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("Failed to get trending chart")
		return nil, mapAPIError("trending chart lookup failed", err)
	}

	snapshots := make([]model.VideoSnapshot, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == "" {
			continue
		}
		snapshots = append(snapshots, model.VideoSnapshot{
			ID:           item.Id,
			VideoDetails: parseVideoDetails(item, time.Now()),
		})
	}

	return snapshots, nil
}

// dedupe returns ids with duplicates removed, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// Helper function to get the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
