// Package model contains the data types shared across the viral-engine packages.
package model

import "time"

// Video represents one fetched video's snapshot at query time, including
// the derived trend metrics computed by the scoring package.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Description  string    `json:"description"`

	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`

	// HoursAgo is the age of the video at fetch time, rounded to one decimal.
	HoursAgo float64 `json:"hours_ago"`

	VelocityScore  int64   `json:"velocity_score"`
	EngagementRate float64 `json:"engagement_rate"`
	TrendScore     int64   `json:"trend_score"`
}

// VideoDetails holds the raw metadata and statistics for a single video as
// returned by the video statistics service, before any scoring is applied.
type VideoDetails struct {
	Title        string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	ThumbnailURL string
	Description  string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// VideoSnapshot pairs a video ID with its resolved details, preserving the
// order the statistics service returned.
type VideoSnapshot struct {
	ID string
	VideoDetails
}

// HiddenSubscribers is the sentinel subscriber count for channels that do
// not expose their subscriber count publicly.
const HiddenSubscribers int64 = -1

// ChannelSubscriberInfo carries a channel's subscriber count. When the
// channel hides its count, SubscriberCount is HiddenSubscribers and
// HiddenSubscriberCount is true; no viral ratio or tier may be derived.
type ChannelSubscriberInfo struct {
	SubscriberCount       int64 `json:"subscriber_count"`
	HiddenSubscriberCount bool  `json:"hidden_subscriber_count"`
}

// ShortsRef pairs a video ID with its channel ID, as returned by a shorts
// search before details are resolved.
type ShortsRef struct {
	VideoID   string
	ChannelID string
}

// ViralVideo is a short-form video joined with its channel's subscriber
// count and the derived viral ratio and tier.
type ViralVideo struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	SubscriberCount int64     `json:"subscriber_count"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	ViralRatio      float64   `json:"viral_ratio"`
	ViralTier       ViralTier `json:"viral_tier"`
	HoursAgo        float64   `json:"hours_ago"`
	IsShorts        bool      `json:"is_shorts"`
}

// TrendResult is the outcome of one rising-video detection run.
type TrendResult struct {
	Keyword    string    `json:"keyword"`
	Videos     []Video   `json:"videos"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	Cached     bool      `json:"cached"`
}

// ViralShortsResult is the outcome of one viral-shorts detection run.
type ViralShortsResult struct {
	Keyword       string       `json:"keyword"`
	Videos        []ViralVideo `json:"videos"`
	AnalyzedAt    time.Time    `json:"analyzed_at"`
	Cached        bool         `json:"cached"`
	TotalSearched int          `json:"total_searched"`
	ViralCount    int          `json:"viral_count"`
}
