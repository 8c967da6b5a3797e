// Package operation provides the file processing loop: read, rewrite, compare, persist
package operation

import (
	"context"

	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📣 Reporter receives per-file events and the final tally
type Reporter interface {
	// StartFile is called before a file enters processing
	StartFile(ctx context.Context, path string, current, total int)
	// Report is called once per file with its terminal outcome
	Report(ctx context.Context, o status.Outcome)
	// Summarize is called once after every file has been reported
	Summarize(ctx context.Context, summary status.Summary)
}

// 🔧 Options contains configuration for the processor
type Options struct {
	// Replacer holds the compiled, ordered rule list
	Replacer text.TextReplacer
	// Files reads and writes file content
	Files status.FileManager
	// Backup copies each file to <path>.bak before overwriting it
	Backup bool
	// DryRun computes outcomes without writing anything
	DryRun bool
	// ShowDiff attaches a patch to every updated outcome
	ShowDiff bool
}

// 🏭 NewProcessor creates a processor with the given options
func NewProcessor(opts Options) (*Processor, error) {
	if opts.Replacer == nil {
		return nil, errors.Errorf("replacer is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	return &Processor{
		replacer: opts.Replacer,
		files:    opts.Files,
		backup:   opts.Backup,
		dryRun:   opts.DryRun,
		showDiff: opts.ShowDiff,
	}, nil
}
