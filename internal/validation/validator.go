// Package validation enforces structural and semantic correctness of
// submitted reclamations, collecting every failure before returning, and
// produces the sanitized record the rest of the pipeline works with.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/roster"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

const (
	// ReclamationMinLen and ReclamationMaxLen bound the trimmed
	// reclamation body, inclusive on both ends.
	ReclamationMinLen = 10
	ReclamationMaxLen = 1000
)

// Result carries the aggregated outcome of validating one submission.
// Sanitized is populated only when Valid is true. Reclamation is the
// trimmed, pre-escape body; downstream content heuristics must see URLs
// and punctuation as the student typed them, not their escaped forms.
type Result struct {
	Valid       bool
	Errors      []string
	Sanitized   types.SanitizedSubmission
	Reclamation string
}

// Validator checks submissions against the roster and category allow-lists.
type Validator struct {
	roster *roster.Roster
}

// New creates a Validator backed by the given roster.
func New(r *roster.Roster) *Validator {
	return &Validator{roster: r}
}

// Validate checks every rule and returns all failures in one pass, so a
// caller sees every problem in a single round trip. It never panics on bad
// input; a structurally broken submission simply fails validation.
func (v *Validator) Validate(raw types.Submission) Result {
	var errs []string

	name := strings.TrimSpace(raw.StudentName)
	switch {
	case name == "":
		errs = append(errs, "Student name is required")
	case !v.roster.ContainsStudent(name):
		errs = append(errs, "Invalid student name selected")
	}

	category := strings.TrimSpace(raw.Category)
	switch {
	case category == "":
		errs = append(errs, "Category is required")
	case !v.roster.ContainsCategory(category):
		errs = append(errs, "Invalid category selected")
	}

	reclamation := strings.TrimSpace(raw.Reclamation)
	if reclamation == "" {
		errs = append(errs, "Reclamation message is required")
	} else {
		if n := utf8.RuneCountInString(reclamation); n < ReclamationMinLen {
			errs = append(errs, "Reclamation must be at least 10 characters long")
		} else if n > ReclamationMaxLen {
			errs = append(errs, "Reclamation must not exceed 1000 characters")
		}
	}

	email := strings.TrimSpace(raw.Email)
	normalizedEmail := ""
	if email != "" {
		normalized, err := NormalizeEmail(email)
		if err != nil {
			errs = append(errs, "Invalid email address format")
		} else {
			normalizedEmail = normalized
		}
	}

	// The content scan runs on the raw text even when other fields already
	// failed, so the caller learns about injected markup in the same round
	// trip as the structural errors.
	if raw.Reclamation != "" && matchSuspicious(raw.Reclamation) != "" {
		errs = append(errs, "Suspicious content detected in reclamation")
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}

	return Result{
		Valid: true,
		Sanitized: types.SanitizedSubmission{
			StudentName: Escape(name),
			Category:    Escape(category),
			Reclamation: Escape(reclamation),
			Email:       normalizedEmail,
		},
		Reclamation: reclamation,
	}
}
