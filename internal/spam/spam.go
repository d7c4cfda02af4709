// Package spam flags solicitation-style reclamation bodies via an ordered
// list of independent pattern rules. The filter is heuristic, not
// authoritative: false positives are expected and acceptable, and it runs
// only after structural validation has passed.
package spam

import (
	"regexp"

	"go.uber.org/zap"
)

// Rule is one independent spam predicate over the reclamation body.
type Rule struct {
	// Name identifies the rule in logs and metrics.
	Name string

	// Match reports whether the text trips this rule.
	Match func(text string) bool
}

var (
	urlPattern      = regexp.MustCompile(`(?i)https?://[^\s]+`)
	keywordPattern  = regexp.MustCompile(`(?i)\b(viagra|cialis|casino|lottery|winner|congratulations|claim.*prize|click here|buy now|limited time|act now)\b`)
	currencyPattern = regexp.MustCompile(`\${3,}`)
)

const (
	// maxURLs is the number of links tolerated before a body is
	// considered link spam.
	maxURLs = 2

	// maxRepeat is the longest run of one character tolerated.
	// RE2 has no backreferences, so runs are counted by hand.
	maxRepeat = 10
)

// hasLongRun reports whether any single character repeats more than
// maxRepeat times consecutively.
func hasLongRun(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run > maxRepeat {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// DefaultRules returns the production rule set, in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "url-count",
			Match: func(text string) bool {
				return len(urlPattern.FindAllStringIndex(text, maxURLs+1)) > maxURLs
			},
		},
		{
			Name:  "solicitation-keyword",
			Match: keywordPattern.MatchString,
		},
		{
			Name:  "currency-run",
			Match: currencyPattern.MatchString,
		},
		{
			Name:  "repeated-character",
			Match: hasLongRun,
		},
	}
}

// Detector evaluates the rule list against submission bodies.
type Detector struct {
	logger *zap.Logger
	rules  []Rule
}

// NewDetector creates a Detector. A nil rules slice uses DefaultRules.
func NewDetector(logger *zap.Logger, rules []Rule) *Detector {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Detector{
		logger: logger.Named("spam"),
		rules:  rules,
	}
}

// Detect returns the name of the first rule the text trips, or "" when the
// text looks legitimate.
func (d *Detector) Detect(text string) string {
	for _, rule := range d.rules {
		if rule.Match(text) {
			d.logger.Debug("Spam heuristic tripped", zap.String("rule", rule.Name))
			return rule.Name
		}
	}
	return ""
}

// IsSpam reports whether any rule matches.
func (d *Detector) IsSpam(text string) bool {
	return d.Detect(text) != ""
}
