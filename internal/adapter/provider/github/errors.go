package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

// APIError is a non-rate-limit error response from the search API. It fails
// the whole sync run.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// rateLimitSignal reports whether err means the quota is spent, and which
// kind of signal said so. A rate-limited search ends the fetch cleanly.
// Secondary limits count only when the response carries the same headers as
// any other 403 or 429.
func rateLimitSignal(err error) (string, bool) {
	var primary *gh.RateLimitError
	if errors.As(err, &primary) {
		return "primary", true
	}

	var secondary *gh.AbuseRateLimitError
	if errors.As(err, &secondary) {
		return limitedResponse(secondary.Response)
	}

	var resp *gh.ErrorResponse
	if errors.As(err, &resp) {
		return limitedResponse(resp.Response)
	}

	return "", false
}

func limitedResponse(resp *http.Response) (string, bool) {
	if resp == nil {
		return "", false
	}
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		if resp.Header.Get(HeaderRateRemaining) == "0" {
			return "remaining", true
		}
		if resp.Header.Get(HeaderRetryAfter) != "" {
			return "retry_after", true
		}
	}
	return "", false
}

func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return newAPIError(ghErr.Response, ghErr.Message)
	}

	var secondary *gh.AbuseRateLimitError
	if errors.As(err, &secondary) && secondary.Response != nil {
		return newAPIError(secondary.Response, secondary.Message)
	}

	return fmt.Errorf("github: %s: %w", operation, err)
}

func newAPIError(resp *http.Response, message string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: message}
	if resp.Request != nil {
		apiErr.URL = resp.Request.URL.String()
	}
	return apiErr
}
