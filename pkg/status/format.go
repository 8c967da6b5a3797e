package status

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Greppable markers, one per outcome
const (
	MarkerOK    = "[OK]"
	MarkerSkip  = "[SKIP]"
	MarkerError = "[ERROR]"
	MarkerDry   = "[DRY]"
)

// FileFormatter defines how outcomes and the summary should be formatted
type FileFormatter interface {
	// Marker returns the status marker for an outcome
	Marker(o Outcome) string

	// FormatOutcome formats the message following the marker
	FormatOutcome(o Outcome) string

	// FormatProgress formats the line printed when a file starts
	FormatProgress(path string, current, total int) string

	// FormatSummary formats the aggregate line
	FormatSummary(s Summary) string
}

// DefaultFileFormatter reproduces the wording of the original migration script
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) Marker(o Outcome) string {
	switch {
	case o.Kind == OutcomeErrored:
		return MarkerError
	case o.Kind == OutcomeUpdated && o.DryRun:
		return MarkerDry
	case o.Kind == OutcomeUpdated:
		return MarkerOK
	default:
		return MarkerSkip
	}
}

func (f *DefaultFileFormatter) FormatOutcome(o Outcome) string {
	path := Printable(o.Path)
	switch {
	case o.Kind == OutcomeErrored:
		return fmt.Sprintf("Error processing %s: %s", path, Printable(fmt.Sprint(o.Err)))
	case o.Kind == OutcomeUpdated && o.DryRun:
		return fmt.Sprintf("Would update %s (%s)", path, plural(o.Replacements, "replacement"))
	case o.Kind == OutcomeUpdated:
		return fmt.Sprintf("Updated %s (%s)", path, plural(o.Replacements, "replacement"))
	default:
		return fmt.Sprintf("No changes needed for %s", path)
	}
}

func (f *DefaultFileFormatter) FormatProgress(path string, current, total int) string {
	return fmt.Sprintf("Processing %s... (%d/%d)", Printable(path), current, total)
}

func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	if s.WouldUpdate > 0 && s.Updated == 0 {
		return fmt.Sprintf("=== Summary: Would update %d/%d files ===", s.WouldUpdate, s.Total)
	}
	return fmt.Sprintf("=== Summary: Updated %d/%d files ===", s.Updated, s.Total)
}

// Printable decodes s permissively, replacing invalid UTF-8 with U+FFFD, for display
func Printable(s string) string {
	out, err := unicode.UTF8.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
