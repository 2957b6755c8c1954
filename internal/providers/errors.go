package providers

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/api/googleapi"
)

// RateLimitError indicates the provider returned HTTP 429. It is retryable.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited (429)", e.Provider)
}

// classify maps a provider call error onto the retry taxonomy: 429 becomes a
// RateLimitError, other googleapi errors pass through as permanent.
func classify(provider string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return &RateLimitError{Provider: provider}
	}
	return err
}

// Retryable reports whether an error is worth retrying: rate limits and
// transient network failures, but not other API rejections.
func Retryable(err error) bool {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
