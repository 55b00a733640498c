package email_filter

import (
	"regexp"

	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/models"
)

// Matcher evaluates cleanup rules against extracted message fields.
// Patterns are regular expressions applied as searches (no implicit anchors),
// case-insensitive, with "." matching newlines.
type Matcher struct {
	log logger.Logger
}

func NewMatcher(log logger.Logger) *Matcher {
	return &Matcher{log: log}
}

// Matches reports whether the rule applies to the message. Every non-empty
// pattern set must be fully satisfied by its field; the body set is satisfied
// by either the plain-text body or the HTML-derived text, each evaluated
// independently against the whole set. A rule without any patterns matches
// everything.
func (m *Matcher) Matches(rule models.Rule, fields models.MessageFields) bool {
	subjectPatterns := m.compile(rule.Subject)
	bodyPatterns := m.compile(rule.Body)
	fromPatterns := m.compile(rule.From)
	toPatterns := m.compile(rule.To)

	if len(subjectPatterns) > 0 && !matchAll(subjectPatterns, fields.Subject) {
		return false
	}
	if len(bodyPatterns) > 0 {
		textMatches := matchAll(bodyPatterns, fields.BodyText)
		htmlMatches := fields.HasHTML && matchAll(bodyPatterns, fields.BodyHTML)
		if !textMatches && !htmlMatches {
			return false
		}
	}
	if len(fromPatterns) > 0 && !matchAll(fromPatterns, fields.From) {
		return false
	}
	if len(toPatterns) > 0 && !matchAll(toPatterns, fields.To) {
		return false
	}
	return true
}

// compile drops malformed patterns with a warning instead of failing the
// rule; a dropped pattern does not count toward the all-must-match set.
func (m *Matcher) compile(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?is)" + pattern)
		if err != nil {
			m.log.Warnf("skipping invalid pattern %q: %v", pattern, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

func matchAll(patterns []*regexp.Regexp, value string) bool {
	for _, pattern := range patterns {
		if !pattern.MatchString(value) {
			return false
		}
	}
	return true
}
