package validation

import "regexp"

// suspiciousRule is one independent content predicate. Rules are evaluated
// in order and the first match wins; adding or removing a rule never touches
// control flow elsewhere.
type suspiciousRule struct {
	name    string
	pattern *regexp.Regexp
}

// suspiciousRules flags markup and code injection attempts in the raw
// reclamation text. All patterns are case-insensitive and run on the text
// as submitted, before any escaping.
var suspiciousRules = []suspiciousRule{
	{name: "script-tag", pattern: regexp.MustCompile(`(?i)<script`)},
	{name: "javascript-uri", pattern: regexp.MustCompile(`(?i)javascript:`)},
	{name: "event-handler", pattern: regexp.MustCompile(`(?i)on\w+\s*=`)},
	{name: "iframe-tag", pattern: regexp.MustCompile(`(?i)<iframe`)},
	{name: "eval-call", pattern: regexp.MustCompile(`(?i)eval\(`)},
}

// matchSuspicious returns the name of the first rule the text trips, or ""
// when the text is clean.
func matchSuspicious(text string) string {
	for _, rule := range suspiciousRules {
		if rule.pattern.MatchString(text) {
			return rule.name
		}
	}
	return ""
}
