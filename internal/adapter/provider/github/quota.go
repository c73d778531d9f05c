package github

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// remainingQuota parses X-RateLimit-Remaining. ok is false when the header
// is absent or not a number; the caller then keeps paging.
func remainingQuota(resp *http.Response) (remaining int, ok bool) {
	if resp == nil {
		return 0, false
	}
	raw := strings.TrimSpace(resp.Header.Get(HeaderRateRemaining))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}
