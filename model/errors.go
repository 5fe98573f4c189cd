package model

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable indicates the search, video or channel service was
// unreachable, timed out or returned a transport-level error. The engine
// never retries; callers decide how to react.
var ErrServiceUnavailable = errors.New("youtube service unavailable")

// ErrQuotaExceeded is the sub-kind of ErrServiceUnavailable raised when the
// API rejects a request because the daily quota is exhausted. It matches
// errors.Is for both itself and ErrServiceUnavailable, so callers can fall
// back to a stale cache entry on quota exhaustion specifically.
var ErrQuotaExceeded = fmt.Errorf("api quota exceeded: %w", ErrServiceUnavailable)
