package client

import (
	"time"

	ytapi "google.golang.org/api/youtube/v3"

	"github.com/trendpulse/viral-engine/model"
)

// descriptionLimit caps stored descriptions; the full text is UI noise.
const descriptionLimit = 200

// parseVideoDetails converts an API video item into the engine's details
// record. Absent snippets, statistics or counters default to zero values
// rather than failing the batch.
func parseVideoDetails(item *ytapi.Video, now time.Time) model.VideoDetails {
	details := model.VideoDetails{PublishedAt: now}

	if snippet := item.Snippet; snippet != nil {
		details.Title = snippet.Title
		details.ChannelID = snippet.ChannelId
		details.ChannelTitle = snippet.ChannelTitle
		details.ThumbnailURL = selectThumbnail(snippet.Thumbnails)
		details.Description = truncate(snippet.Description, descriptionLimit)

		if publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			details.PublishedAt = publishedAt
		}
	}

	if stats := item.Statistics; stats != nil {
		details.ViewCount = int64(stats.ViewCount)
		details.LikeCount = int64(stats.LikeCount)
		details.CommentCount = int64(stats.CommentCount)
	}

	return details
}

// parseChannelStats converts channel statistics into the engine's
// subscriber record. Hidden counts become the sentinel so downstream code
// never mistakes them for a real zero.
func parseChannelStats(stats *ytapi.ChannelStatistics) model.ChannelSubscriberInfo {
	if stats.HiddenSubscriberCount {
		return model.ChannelSubscriberInfo{
			SubscriberCount:       model.HiddenSubscribers,
			HiddenSubscriberCount: true,
		}
	}

	return model.ChannelSubscriberInfo{
		SubscriberCount: int64(stats.SubscriberCount),
	}
}

// selectThumbnail prefers the high-resolution variant, falling back to the
// default variant, then to an empty string.
func selectThumbnail(thumbnails *ytapi.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Default != nil && thumbnails.Default.Url != "" {
		return thumbnails.Default.Url
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
