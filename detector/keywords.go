package detector

import (
	"math/rand"
	"sync"
)

// KeywordSource supplies a keyword when a caller browses without one. The
// randomness lives behind this interface so tests can pin the choice.
type KeywordSource interface {
	Pick() string
}

// DefaultKeywords returns the browse keywords used when a caller supplies
// none. Skewed toward short-form content categories.
func DefaultKeywords() []string {
	return []string{"쇼츠", "먹방", "브이로그", "챌린지", "게임", "케이팝", "일상"}
}

// RandomKeywordSource picks uniformly at random on every call.
type RandomKeywordSource struct {
	mu       sync.Mutex
	rng      *rand.Rand
	keywords []string
}

// NewRandomKeywordSource creates a source over the given keyword list.
func NewRandomKeywordSource(keywords []string) *RandomKeywordSource {
	return &RandomKeywordSource{
		rng:      rand.New(rand.NewSource(rand.Int63())),
		keywords: keywords,
	}
}

// Pick returns one keyword chosen uniformly at random.
func (s *RandomKeywordSource) Pick() string {
	if len(s.keywords) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keywords[s.rng.Intn(len(s.keywords))]
}

// FixedKeywordSource always returns the same keyword.
type FixedKeywordSource string

// Pick returns the fixed keyword.
func (s FixedKeywordSource) Pick() string { return string(s) }
