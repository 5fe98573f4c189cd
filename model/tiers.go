package model

// ViralTier classifies how far a short-form video has spread beyond its
// channel's existing audience.
type ViralTier string

const (
	TierMega   ViralTier = "mega"
	TierHigh   ViralTier = "high"
	TierRising ViralTier = "rising"
	TierNone   ViralTier = "none"
)

// TierRule is one row of the viral tier table. A video qualifies for the
// tier when all three thresholds hold: the channel has at most
// MaxSubscribers subscribers, the video has at least MinViews views, and
// the view/subscriber ratio is at least MinRatio.
type TierRule struct {
	Tier           ViralTier `json:"tier" yaml:"tier" mapstructure:"tier"`
	MaxSubscribers int64     `json:"max_subscribers" yaml:"max_subscribers" mapstructure:"max_subscribers"`
	MinViews       int64     `json:"min_views" yaml:"min_views" mapstructure:"min_views"`
	MinRatio       float64   `json:"min_ratio" yaml:"min_ratio" mapstructure:"min_ratio"`
	Label          string    `json:"label" yaml:"label" mapstructure:"label"`
	Emoji          string    `json:"emoji" yaml:"emoji" mapstructure:"emoji"`
	Color          string    `json:"color" yaml:"color" mapstructure:"color"`
}

// DefaultTierRules returns the tier table evaluated highest tier first.
// Thresholds are policy, not physics; deployments may override them in
// configuration.
func DefaultTierRules() []TierRule {
	return []TierRule{
		{
			Tier:           TierMega,
			MaxSubscribers: 10_000,
			MinViews:       100_000,
			MinRatio:       10,
			Label:          "메가 바이럴",
			Emoji:          "🔥🔥🔥",
			Color:          "text-red-600",
		},
		{
			Tier:           TierHigh,
			MaxSubscribers: 50_000,
			MinViews:       50_000,
			MinRatio:       5,
			Label:          "슈퍼 바이럴",
			Emoji:          "🔥🔥",
			Color:          "text-orange-500",
		},
		{
			Tier:           TierRising,
			MaxSubscribers: 100_000,
			MinViews:       10_000,
			MinRatio:       2,
			Label:          "바이럴",
			Emoji:          "🔥",
			Color:          "text-yellow-500",
		},
	}
}

// TrendLevel classifies a video's composite trend score for badge display.
type TrendLevel string

const (
	TrendLevelRising   TrendLevel = "rising"
	TrendLevelWatching TrendLevel = "watching"
	TrendLevelGrowing  TrendLevel = "growing"
	TrendLevelNormal   TrendLevel = "normal"
)

// TrendLevelInfo is the display metadata for a trend level badge.
type TrendLevelInfo struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Color string `json:"color"`
}
