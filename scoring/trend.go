// Package scoring implements the pure numeric functions of the engine: the
// trend score used to rank rising videos and the viral tier classification
// used to rank short-form videos against their channel size.
package scoring

import (
	"math"

	"github.com/trendpulse/viral-engine/model"
)

// TrendMetrics is the output of one trend score computation.
type TrendMetrics struct {
	VelocityScore  int64
	EngagementRate float64
	TrendScore     int64
}

// TrendScorer computes trend metrics from raw video statistics. The weights
// and the engagement scale are tunable, but changing them breaks score
// comparability with previously cached results.
type TrendScorer struct {
	VelocityWeight   float64
	EngagementWeight float64
	// EngagementScale lifts the engagement rate (a small percentage) into
	// the same order of magnitude as the velocity score before weighting.
	EngagementScale float64
}

// NewTrendScorer returns a scorer with the production weighting: 60%
// velocity, 40% engagement scaled by 1000.
func NewTrendScorer() *TrendScorer {
	return &TrendScorer{
		VelocityWeight:   0.6,
		EngagementWeight: 0.4,
		EngagementScale:  1000,
	}
}

// Score computes the velocity score (views per hour), the engagement rate
// (percentage of viewers who liked or commented, two decimals) and the
// weighted composite trend score. The video age is floored at one hour so
// brand-new uploads do not divide by a near-zero age.
func (s *TrendScorer) Score(viewCount, likeCount, commentCount int64, hoursAgo float64) TrendMetrics {
	hours := math.Max(hoursAgo, 1)

	velocity := int64(math.Round(float64(viewCount) / hours))

	engagement := 0.0
	if viewCount > 0 {
		engagement = math.Round(float64(likeCount+commentCount)/float64(viewCount)*10000) / 100
	}

	trend := int64(math.Round(float64(velocity)*s.VelocityWeight + engagement*s.EngagementScale*s.EngagementWeight))

	return TrendMetrics{
		VelocityScore:  velocity,
		EngagementRate: engagement,
		TrendScore:     trend,
	}
}

// Trend level thresholds, exclusive lower bounds checked highest first.
const (
	trendLevelRisingMin   = 10000
	trendLevelWatchingMin = 5000
	trendLevelGrowingMin  = 1000
)

// TrendLevel maps a composite trend score to its badge level.
func TrendLevel(trendScore int64) model.TrendLevel {
	switch {
	case trendScore >= trendLevelRisingMin:
		return model.TrendLevelRising
	case trendScore >= trendLevelWatchingMin:
		return model.TrendLevelWatching
	case trendScore >= trendLevelGrowingMin:
		return model.TrendLevelGrowing
	default:
		return model.TrendLevelNormal
	}
}

// TrendLevelInfo returns the display metadata for a trend level badge.
func TrendLevelInfo(level model.TrendLevel) model.TrendLevelInfo {
	switch level {
	case model.TrendLevelRising:
		return model.TrendLevelInfo{Emoji: "🔥", Label: "급상승", Color: "text-red-500"}
	case model.TrendLevelWatching:
		return model.TrendLevelInfo{Emoji: "⚡", Label: "주목", Color: "text-yellow-500"}
	case model.TrendLevelGrowing:
		return model.TrendLevelInfo{Emoji: "📈", Label: "성장중", Color: "text-green-500"}
	default:
		return model.TrendLevelInfo{Emoji: "📊", Label: "일반", Color: "text-gray-500"}
	}
}

// RoundHours rounds a video age in hours to one decimal for display.
func RoundHours(hoursAgo float64) float64 {
	return math.Round(hoursAgo*10) / 10
}
