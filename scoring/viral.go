package scoring

import (
	"math"

	"github.com/trendpulse/viral-engine/model"
)

// ViralClassifier assigns viral tiers from a configured tier table. Rules
// must be ordered highest tier first; Classify returns the first rule whose
// three thresholds all hold.
type ViralClassifier struct {
	rules []model.TierRule
}

// NewViralClassifier builds a classifier from the given tier table. A nil
// or empty table falls back to the default rules.
func NewViralClassifier(rules []model.TierRule) *ViralClassifier {
	if len(rules) == 0 {
		rules = model.DefaultTierRules()
	}
	return &ViralClassifier{rules: rules}
}

// Classify returns the viral tier for a video. Channels with an unknown or
// hidden subscriber count (subscriberCount <= 0, including the
// model.HiddenSubscribers sentinel) are never classified.
func (c *ViralClassifier) Classify(subscriberCount, viewCount int64) model.ViralTier {
	if subscriberCount <= 0 {
		return model.TierNone
	}

	ratio := float64(viewCount) / float64(subscriberCount)
	for _, rule := range c.rules {
		if subscriberCount <= rule.MaxSubscribers && viewCount >= rule.MinViews && ratio >= rule.MinRatio {
			return rule.Tier
		}
	}
	return model.TierNone
}

// Rule returns the display rule for a tier, or false for TierNone and
// unknown tiers.
func (c *ViralClassifier) Rule(tier model.ViralTier) (model.TierRule, bool) {
	for _, rule := range c.rules {
		if rule.Tier == tier {
			return rule, true
		}
	}
	return model.TierRule{}, false
}

// ViralRatio computes the display value of views per subscriber, rounded to
// one decimal. Unknown or hidden subscriber counts yield 0.
func ViralRatio(viewCount, subscriberCount int64) float64 {
	if subscriberCount <= 0 {
		return 0
	}
	return math.Round(float64(viewCount)/float64(subscriberCount)*10) / 10
}
