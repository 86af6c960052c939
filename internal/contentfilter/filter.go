// Package contentfilter classifies candidate chat messages against local,
// deterministic content rules before they may consume quota or reach the
// downstream search service. Validation is pure: no I/O, no hidden state.
package contentfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Issue identifies one content rule violation.
type Issue string

const (
	IssueEmptyMessage      Issue = "empty_message"
	IssueEmojis            Issue = "emojis"
	IssueIllegalCharacters Issue = "illegal_characters"
	IssueInappropriate     Issue = "inappropriate_language"
	IssueExcessiveSpecial  Issue = "excessive_special_characters"
	IssueSuspiciousPattern Issue = "suspicious_patterns"
)

// Result is the outcome of a single validation call. It is constructed fresh
// per call and never mutated afterwards.
type Result struct {
	Valid          bool    `json:"valid"`
	Reason         string  `json:"reason,omitempty"`
	DetectedIssues []Issue `json:"detected_issues"`
}

const (
	reasonEmpty        = "Message cannot be empty"
	reasonPrefix       = "Your message contains content that is not allowed: "
	reasonSuffix       = ". Please revise your message."
	specialCharSet     = `!@#$%^&*()_+=-[]{}|;':",./<>?`
	maxSpecialRatio    = 0.3
	repeatedRunLength  = 6
	maxWordRepetitions = 3
)

// issueLabels maps issues to the human-readable category names used in the
// rejection reason, in the fixed reporting order.
var issueLabels = []struct {
	issue Issue
	label string
}{
	{IssueEmojis, "emojis"},
	{IssueIllegalCharacters, "illegal characters"},
	{IssueInappropriate, "inappropriate language"},
	{IssueExcessiveSpecial, "excessive special characters"},
	{IssueSuspiciousPattern, "suspicious patterns"},
}

// Filter validates messages against the rule taxonomy. The zero value is not
// usable; construct with New.
type Filter struct {
	denylist map[string]struct{}
}

// New creates a Filter with the given denylist. A nil or empty list falls
// back to DefaultDenylist.
func New(denylist []string) *Filter {
	if len(denylist) == 0 {
		denylist = DefaultDenylist
	}
	set := make(map[string]struct{}, len(denylist))
	for _, w := range denylist {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Filter{denylist: set}
}

// Validate runs every rule against text and reports all violations. Empty or
// whitespace-only input short-circuits: no other rule runs.
func (f *Filter) Validate(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Valid:          false,
			Reason:         reasonEmpty,
			DetectedIssues: []Issue{IssueEmptyMessage},
		}
	}

	var issues []Issue
	if containsAny(text, isEmoji) {
		issues = append(issues, IssueEmojis)
	}
	if containsAny(text, isIllegal) {
		issues = append(issues, IssueIllegalCharacters)
	}
	if f.containsDeniedWord(text) {
		issues = append(issues, IssueInappropriate)
	}
	if hasExcessiveSpecialChars(text) {
		issues = append(issues, IssueExcessiveSpecial)
	}
	if hasSuspiciousPatterns(text) {
		issues = append(issues, IssueSuspiciousPattern)
	}

	if len(issues) > 0 {
		return Result{
			Valid:          false,
			Reason:         buildReason(issues),
			DetectedIssues: issues,
		}
	}
	return Result{Valid: true, DetectedIssues: []Issue{}}
}

// Sanitize strips emoji and illegal control runes and collapses whitespace
// runs to a single space. It is a cosmetic cleanup, not a validator: it does
// not touch denylisted words or special-character density.
func (f *Filter) Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) || isIllegal(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsAny(text string, match func(rune) bool) bool {
	for _, r := range text {
		if match(r) {
			return true
		}
	}
	return false
}

// containsDeniedWord lower-cases the text, maps every non-alphanumeric rune
// to a space, and checks each resulting token against the denylist. Tokenizing
// after that normalization is exactly whole-word matching: "classic" never
// matches "ass".
func (f *Filter) containsDeniedWord(text string) bool {
	normalized := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	for _, word := range strings.Fields(normalized) {
		if _, ok := f.denylist[word]; ok {
			return true
		}
	}
	return false
}

func hasExcessiveSpecialChars(text string) bool {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return false
	}
	special := 0
	for _, r := range text {
		if strings.ContainsRune(specialCharSet, r) {
			special++
		}
	}
	return float64(special)/float64(total) > maxSpecialRatio
}

// hasSuspiciousPatterns detects spam-like input: a single rune repeated
// repeatedRunLength or more times consecutively, or any word appearing more
// than maxWordRepetitions times.
func hasSuspiciousPatterns(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= repeatedRunLength {
			return true
		}
	}

	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		counts[word]++
		if counts[word] > maxWordRepetitions {
			return true
		}
	}
	return false
}

func buildReason(issues []Issue) string {
	found := make(map[Issue]bool, len(issues))
	for _, is := range issues {
		found[is] = true
	}

	var parts []string
	for _, il := range issueLabels {
		if found[il.issue] {
			parts = append(parts, il.label)
		}
	}
	return reasonPrefix + strings.Join(parts, ", ") + reasonSuffix
}
