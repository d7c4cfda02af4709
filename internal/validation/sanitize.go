package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// escaper applies HTML entity escaping to every character that could change
// meaning when the value is embedded in an HTML notification message. The
// set deliberately covers backslash, backtick and slash on top of the usual
// four, matching what the submission form's consumers expect. Escaping is a
// single pass: running it twice re-encodes the ampersands it produced, so
// callers must escape exactly once.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape HTML-entity-escapes s.
func Escape(s string) string {
	return escaper.Replace(s)
}

// NormalizeEmail validates the address syntax and returns its canonical
// lowercase form. The address must be bare (no display name) and carry a
// dotted domain.
func NormalizeEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("parse address: %w", err)
	}
	if addr.Name != "" || addr.Address != s {
		return "", fmt.Errorf("address must be bare, got %q", s)
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") {
		return "", fmt.Errorf("domain %q has no dot", domain)
	}
	return strings.ToLower(addr.Address), nil
}
