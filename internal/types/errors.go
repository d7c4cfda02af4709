package types

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ForbiddenOriginError indicates the request's Origin header did not match
// the allowed-origin policy.
type ForbiddenOriginError struct {
	Origin string
}

func (e *ForbiddenOriginError) Error() string {
	return fmt.Sprintf("origin %q is not allowed", e.Origin)
}

// RateLimitedError indicates the client identifier exhausted its request
// window. RetryAfter is in whole seconds.
type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfter)
}

// ValidationError carries every validation failure found in a submission,
// in the order the rules ran.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// SuspiciousContentError indicates the reclamation body tripped the spam
// heuristics after structural validation had already passed.
type SuspiciousContentError struct {
	Rule string
}

func (e *SuspiciousContentError) Error() string {
	return fmt.Sprintf("suspicious content detected (rule %s)", e.Rule)
}

// DuplicateSubmissionError indicates the same student submitted within the
// debounce window. RetryAfter is in whole seconds.
type DuplicateSubmissionError struct {
	RetryAfter int
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("duplicate submission, retry after %ds", e.RetryAfter)
}

// DeliveryError indicates the outbound notifier transport rejected the
// message. Reason is operator-facing and must not be shown to end users.
type DeliveryError struct {
	Reason string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification delivery failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("notification delivery failed: %s", e.Reason)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// MalformedRequestError indicates the request body could not be decoded.
type MalformedRequestError struct {
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Err)
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// HTTPStatus maps a pipeline error to the response status code. Unknown
// errors map to 500.
func HTTPStatus(err error) int {
	var (
		forbidden *ForbiddenOriginError
		limited   *RateLimitedError
		invalid   *ValidationError
		spam      *SuspiciousContentError
		dup       *DuplicateSubmissionError
		malformed *MalformedRequestError
	)
	switch {
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &limited), errors.As(err, &dup):
		return http.StatusTooManyRequests
	case errors.As(err, &invalid), errors.As(err, &spam), errors.As(err, &malformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RetryAfter extracts the retry hint from rate-limit and duplicate errors.
// Returns 0 for other errors.
func RetryAfter(err error) int {
	var limited *RateLimitedError
	if errors.As(err, &limited) {
		return limited.RetryAfter
	}
	var dup *DuplicateSubmissionError
	if errors.As(err, &dup) {
		return dup.RetryAfter
	}
	return 0
}
