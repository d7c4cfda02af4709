package types

import "time"

// Submission is the raw reclamation payload as decoded from the request body.
// Fields are untrusted until they pass through the validation pipeline.
type Submission struct {
	StudentName string `json:"studentName"`
	Category    string `json:"category"`
	Reclamation string `json:"reclamation"`
	Email       string `json:"email,omitempty"`
}

// SanitizedSubmission is a Submission after allow-list validation and HTML
// escaping. Email is normalized to lowercase, or empty if not provided.
// It is safe to embed into an outbound notification message.
type SanitizedSubmission struct {
	StudentName string
	Category    string
	Reclamation string
	Email       string
}

// Record is an accepted submission enriched with delivery context: the
// identifier the rate limiter charged, a unique ID for log and audit
// correlation, and the time the pipeline accepted it.
type Record struct {
	ID         string
	Submission SanitizedSubmission
	ClientID   string
	ReceivedAt time.Time
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	// Zero when denied.
	Remaining int

	// RetryAfter is the suggested wait before retrying, in whole seconds,
	// rounded up. Positive only when denied.
	RetryAfter int
}
