package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/viral-engine/model"
)

func TestClassify(t *testing.T) {
	classifier := NewViralClassifier(nil)

	tests := []struct {
		name            string
		subscriberCount int64
		viewCount       int64
		expected        model.ViralTier
	}{
		{"mega: tiny channel, huge reach", 5000, 100000, model.TierMega},
		{"mega at exact thresholds", 10000, 100000, model.TierMega},
		{"high: mid channel", 30000, 200000, model.TierHigh},
		{"rising: larger channel", 80000, 200000, model.TierRising},
		{"ratio too low for any tier", 100000, 150000, model.TierNone},
		{"views below every minimum", 500, 5000, model.TierNone},
		{"subscribers above every maximum", 500000, 10000000, model.TierNone},
		{"zero subscribers never classifies", 0, 1000000, model.TierNone},
		{"hidden sentinel never classifies", model.HiddenSubscribers, 1000000, model.TierNone},
		{"scenario: 5k subs, 100k views in 2h", 5000, 100000, model.TierMega},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.subscriberCount, tt.viewCount))
		})
	}
}

// A video satisfying the mega thresholds must classify mega, never a lower
// tier, even though the lower tiers' thresholds also hold.
func TestClassifyMegaDominates(t *testing.T) {
	classifier := NewViralClassifier(nil)

	subs, views := int64(9000), int64(120000)
	ratio := float64(views) / float64(subs)
	require.True(t, subs <= 10000 && views >= 100000 && ratio >= 10)
	require.True(t, subs <= 50000 && views >= 50000 && ratio >= 5)
	require.True(t, subs <= 100000 && views >= 10000 && ratio >= 2)

	assert.Equal(t, model.TierMega, classifier.Classify(subs, views))
}

func TestClassifyCustomRules(t *testing.T) {
	classifier := NewViralClassifier([]model.TierRule{
		{Tier: model.TierMega, MaxSubscribers: 1000, MinViews: 10000, MinRatio: 20},
	})

	assert.Equal(t, model.TierMega, classifier.Classify(500, 10000))
	assert.Equal(t, model.TierNone, classifier.Classify(5000, 100000))
}

func TestClassifierRule(t *testing.T) {
	classifier := NewViralClassifier(nil)

	rule, ok := classifier.Rule(model.TierHigh)
	require.True(t, ok)
	assert.Equal(t, int64(50000), rule.MaxSubscribers)
	assert.Equal(t, "슈퍼 바이럴", rule.Label)

	_, ok = classifier.Rule(model.TierNone)
	assert.False(t, ok)
}

func TestViralRatio(t *testing.T) {
	assert.Equal(t, 0.0, ViralRatio(0, 1000))
	assert.Equal(t, 10.0, ViralRatio(10000, 1000))
	assert.Equal(t, 20.0, ViralRatio(100000, 5000))
	assert.Equal(t, 0.0, ViralRatio(100000, 0))
	assert.Equal(t, 0.0, ViralRatio(100000, model.HiddenSubscribers))
	// Rounded to one decimal.
	assert.Equal(t, 3.3, ViralRatio(10000, 3000))
}
