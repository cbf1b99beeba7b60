// Package translate sends extracted text to the Gemini API in batches and
// manages rate limiting, retries, and error classification.
package translate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a translation failure for the retry controller.
type ErrorKind string

const (
	// KindRateLimited means the provider rejected the call for quota
	// reasons. Retryable, usually with a provider-suggested delay.
	KindRateLimited ErrorKind = "RATE_LIMITED"
	// KindTransient covers network problems and server-side errors.
	// Retryable with backoff.
	KindTransient ErrorKind = "TRANSIENT"
	// KindPermanent covers authentication, invalid requests, and content
	// filtering. Never retried.
	KindPermanent ErrorKind = "PERMANENT"
)

// Error is a classified translation error.
type Error struct {
	Kind    ErrorKind
	Message string
	// RetryAfter is the provider-suggested delay for rate limit errors,
	// zero when the provider gave no hint.
	RetryAfter time.Duration
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the retry controller may try again.
func (e *Error) Retryable() bool {
	return e.Kind != KindPermanent
}

// NewError creates a classified Error with the given kind and message
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

var retryDelayPattern = regexp.MustCompile(`retry_delay\s*{\s*seconds:\s*(\d+)\s*}`)

// extractRetryDelay pulls the provider retry hint out of an error message.
// Returns 60s when the message carries no hint, matching the provider's
// documented default for quota errors.
func extractRetryDelay(msg string) time.Duration {
	if m := retryDelayPattern.FindStringSubmatch(msg); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 60 * time.Second
}

// Classify maps an arbitrary error from the provider to a classified
// Error. Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}

	// HTTP status codes from the API transport are authoritative.
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 429:
			return &Error{
				Kind:       KindRateLimited,
				Message:    "rate limit exceeded",
				RetryAfter: extractRetryDelay(gerr.Message),
				Cause:      err,
			}
		case gerr.Code == 401 || gerr.Code == 403 || gerr.Code == 400:
			return NewError(KindPermanent, "request rejected by API", err)
		case gerr.Code >= 500:
			return NewError(KindTransient, "API server error", err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "too many requests"):
		return &Error{
			Kind:       KindRateLimited,
			Message:    "rate limit exceeded",
			RetryAfter: extractRetryDelay(msg),
			Cause:      err,
		}
	case strings.Contains(msg, "auth") || strings.Contains(msg, "api key") ||
		strings.Contains(msg, "permission") || strings.Contains(msg, "unauthorized"):
		return NewError(KindPermanent, "authentication failed", err)
	case strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "network"):
		return &Error{
			Kind:       KindTransient,
			Message:    "connection failed",
			RetryAfter: 5 * time.Second,
			Cause:      err,
		}
	case strings.Contains(msg, "content") &&
		(strings.Contains(msg, "filter") || strings.Contains(msg, "policy") ||
			strings.Contains(msg, "block")):
		return NewError(KindPermanent, "content rejected by safety filter", err)
	default:
		// Unknown provider errors are assumed retryable.
		return &Error{
			Kind:       KindTransient,
			Message:    "API request failed",
			RetryAfter: 2 * time.Second,
			Cause:      err,
		}
	}
}
