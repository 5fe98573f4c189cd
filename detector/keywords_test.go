package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomKeywordSourcePicksFromList(t *testing.T) {
	keywords := []string{"a", "b", "c"}
	source := NewRandomKeywordSource(keywords)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		picked := source.Pick()
		assert.Contains(t, keywords, picked)
		seen[picked] = true
	}
	// 200 draws over 3 keywords should hit every one.
	assert.Len(t, seen, 3)
}

func TestRandomKeywordSourceEmptyList(t *testing.T) {
	source := NewRandomKeywordSource(nil)
	assert.Equal(t, "", source.Pick())
}

func TestFixedKeywordSource(t *testing.T) {
	assert.Equal(t, "먹방", FixedKeywordSource("먹방").Pick())
}
