package text

import (
	"regexp"
	"strings"
)

// Mode selects how a rule matches and replaces
type Mode int

const (
	// ModeLiteral replaces every exact occurrence of a substring
	ModeLiteral Mode = iota
	// ModePattern replaces every match of a regular expression, expanding capture references
	ModePattern
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModePattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// ReplacementRule defines a single text replacement operation as written in configuration.
// Exactly one of Literal or Pattern must be set.
type ReplacementRule struct {
	// Name is a human label used in logs
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Literal is the exact substring to replace
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty" toml:"literal,omitempty"`

	// Pattern is a regular expression; it may span lines
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`

	// Replace is the replacement text. For pattern rules it is a template
	// where $1, ${1} or ${name} refer to capture groups and $$ is a literal $.
	Replace string `json:"replace" yaml:"replace" toml:"replace"`
}

// Rule is a compiled, immutable ReplacementRule
type Rule struct {
	order   int
	name    string
	mode    Mode
	literal string
	re      *regexp.Regexp
	replace string
}

// Order is the position of the rule in its sequence
func (r *Rule) Order() int { return r.order }

// Name returns the rule label, falling back to its position
func (r *Rule) Name() string { return r.name }

func (r *Rule) Mode() Mode { return r.mode }

// Matcher returns the literal or the pattern source as configured
func (r *Rule) Matcher() string {
	if r.mode == ModePattern {
		return strings.TrimPrefix(r.re.String(), patternFlags)
	}
	return r.literal
}

func (r *Rule) Replacement() string { return r.replace }

// Apply runs the rule over content and returns the result and the number of replacements.
// A rule that does not match returns content unchanged.
func (r *Rule) Apply(content string) (string, int) {
	switch r.mode {
	case ModePattern:
		matches := r.re.FindAllStringSubmatchIndex(content, -1)
		if len(matches) == 0 {
			return content, 0
		}
		buf := make([]byte, 0, len(content))
		last := 0
		for _, m := range matches {
			buf = append(buf, content[last:m[0]]...)
			buf = r.re.ExpandString(buf, r.replace, content, m)
			last = m[1]
		}
		buf = append(buf, content[last:]...)
		return string(buf), len(matches)
	default:
		n := strings.Count(content, r.literal)
		if n == 0 {
			return content, 0
		}
		return strings.ReplaceAll(content, r.literal, r.replace), n
	}
}

// RuleCount is the number of replacements one rule made
type RuleCount struct {
	Rule  *Rule
	Count int
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of replacements made across all rules
	ReplacementCount int

	// Counts holds per-rule replacement counts, in rule order
	Counts []RuleCount

	// OriginalContent is the content before replacements
	OriginalContent string

	// ModifiedContent is the content after replacements
	ModifiedContent string
}

// TextReplacer applies an ordered rule list to content
type TextReplacer interface {
	Apply(content string) *ReplacementResult
	Rules() []*Rule
}
