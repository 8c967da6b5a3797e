// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/status"
)

// 🎨 Display configuration
const (
	diffIndent = 4 // spaces to indent diff lines under a file entry
)

// 🎯 Reporter prints one line per file and a final summary to the console,
// and mirrors every event to the zerolog logger found in the context.
type Reporter struct {
	console   io.Writer
	formatter status.FileFormatter
}

// 🏭 New creates a new reporter
func New(console io.Writer, formatter status.FileFormatter) *Reporter {
	if formatter == nil {
		formatter = status.NewDefaultFileFormatter()
	}
	return &Reporter{
		console:   console,
		formatter: formatter,
	}
}

// 📝 markerColor picks the color for an outcome marker
func markerColor(o status.Outcome) *color.Color {
	switch {
	case o.Kind == status.OutcomeErrored:
		return color.New(color.FgRed, color.Bold)
	case o.Kind == status.OutcomeUpdated && o.DryRun:
		return color.New(color.FgCyan)
	case o.Kind == status.OutcomeUpdated:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgYellow)
	}
}

// 📝 Header prints the run header
func (r *Reporter) Header(ctx context.Context, msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("rewriterc")
	fmt.Fprintf(r.console, "%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	zerolog.Ctx(ctx).Info().Msg(msg)
}

// 📝 StartFile prints the progress line for a file about to be processed
func (r *Reporter) StartFile(ctx context.Context, path string, current, total int) {
	line := r.formatter.FormatProgress(path, current, total)
	fmt.Fprintln(r.console, color.New(color.Faint).Sprint(line))
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("current", current).
		Int("total", total).
		Msg("processing file")
}

// 📝 Report prints the status line for one file
func (r *Reporter) Report(ctx context.Context, o status.Outcome) {
	marker := markerColor(o).Sprint(r.formatter.Marker(o))
	fmt.Fprintf(r.console, "%s %s\n", marker, r.formatter.FormatOutcome(o))

	if o.Diff != "" {
		pad := strings.Repeat(" ", diffIndent)
		for _, line := range strings.Split(strings.TrimRight(o.Diff, "\n"), "\n") {
			fmt.Fprintf(r.console, "%s%s\n", pad, colorDiffLine(line))
		}
	}

	logger := zerolog.Ctx(ctx)
	var event *zerolog.Event
	if o.Kind == status.OutcomeErrored {
		event = logger.Error().Err(o.Err)
	} else {
		event = logger.Info()
	}
	event.
		Str("path", o.Path).
		Str("outcome", o.Kind.String()).
		Int("replacements", o.Replacements).
		Bool("dry_run", o.DryRun).
		Msg("file processed")
}

// 📝 Summarize prints the aggregate line. Dry-run files are tallied apart from
// written ones, so a dry run never claims to have updated anything.
func (r *Reporter) Summarize(ctx context.Context, summary status.Summary) {
	line := r.formatter.FormatSummary(summary)
	fmt.Fprintf(r.console, "\n%s\n", color.New(color.Bold).Sprint(line))
	zerolog.Ctx(ctx).Info().
		Int("total", summary.Total).
		Int("updated", summary.Updated).
		Int("would_update", summary.WouldUpdate).
		Int("skipped", summary.Skipped).
		Int("errored", summary.Errored).
		Msg("run complete")
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return color.New(color.FgCyan).Sprint(line)
	case strings.HasPrefix(line, "+"):
		return color.New(color.FgGreen).Sprint(line)
	case strings.HasPrefix(line, "-"):
		return color.New(color.FgRed).Sprint(line)
	default:
		return line
	}
}
