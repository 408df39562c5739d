package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrNotFound is returned when the owner, repository, branch, or path does
// not exist (or is not visible with the current credentials).
var ErrNotFound = errors.New("not found")

// RateLimitError is returned when the API refuses a request because the
// rate limit is exhausted. There is no automatic retry anywhere; callers
// decide whether and when to try again.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limited, retry later"
	}
	return fmt.Sprintf("rate limited, retry after %s", time.Until(e.ResetAt).Round(time.Second))
}

// checkResponse maps an API response to one of the downloader's error
// conditions. It returns nil for 200 OK.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return &RateLimitError{ResetAt: parseRateLimitReset(resp)}
	default:
		return fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}
}

// parseRateLimitReset reads the reset time from the Retry-After or
// X-RateLimit-Reset header. Returns the zero time when neither is usable.
func parseRateLimitReset(resp *http.Response) time.Time {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(ts, 0)
		}
	}
	return time.Time{}
}
