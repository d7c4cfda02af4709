package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden origin", &ForbiddenOriginError{Origin: "http://evil.example"}, http.StatusForbidden},
		{"rate limited", &RateLimitedError{RetryAfter: 30}, http.StatusTooManyRequests},
		{"duplicate", &DuplicateSubmissionError{RetryAfter: 45}, http.StatusTooManyRequests},
		{"validation", &ValidationError{Errors: []string{"Student name is required"}}, http.StatusBadRequest},
		{"suspicious", &SuspiciousContentError{Rule: "script-tag"}, http.StatusBadRequest},
		{"malformed", &MalformedRequestError{Err: errors.New("unexpected EOF")}, http.StatusBadRequest},
		{"delivery", &DeliveryError{Reason: "telegram returned HTTP 502"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", &RateLimitedError{RetryAfter: 12})
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(err))
	assert.Equal(t, 12, RetryAfter(err))
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 30, RetryAfter(&RateLimitedError{RetryAfter: 30}))
	assert.Equal(t, 45, RetryAfter(&DuplicateSubmissionError{RetryAfter: 45}))
	assert.Equal(t, 0, RetryAfter(&SuspiciousContentError{Rule: "url-count"}))
}

func TestValidationError_JoinsMessages(t *testing.T) {
	err := &ValidationError{Errors: []string{
		"Student name is required",
		"Invalid category selected",
	}}
	assert.Contains(t, err.Error(), "Student name is required; Invalid category selected")
}

func TestDeliveryError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &DeliveryError{Reason: "post failed", Err: inner}
	assert.ErrorIs(t, err, inner)
}
