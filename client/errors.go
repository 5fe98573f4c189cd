package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/trendpulse/viral-engine/model"
)

// mapAPIError translates a YouTube API call failure into the engine's error
// taxonomy. HTTP 403 means the daily quota is exhausted; everything else
// (transport failures, timeouts, 5xx) is a generic service outage. The
// original error text is preserved for logs.
func mapAPIError(msg string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
		return fmt.Errorf("%s: %v: %w", msg, err, model.ErrQuotaExceeded)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: timed out: %w", msg, model.ErrServiceUnavailable)
	}

	return fmt.Errorf("%s: %v: %w", msg, err, model.ErrServiceUnavailable)
}
