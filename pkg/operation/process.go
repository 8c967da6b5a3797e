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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/diff"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
)

// 📄 Processor rewrites one file at a time
type Processor struct {
	replacer text.TextReplacer
	files    status.FileManager
	backup   bool
	dryRun   bool
	showDiff bool
}

// Process runs the rule list over one file and writes it back only if it changed.
// Errors never escape: they are returned as an OutcomeErrored.
func (p *Processor) Process(ctx context.Context, path string) status.Outcome {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	ctx = logger.WithContext(ctx)

	rec := status.NewFileRecord(path)
	advance := func(next status.Phase) {
		if err := rec.Advance(ctx, next); err != nil {
			logger.Error().Err(err).Msg("advancing file phase")
		}
	}

	advance(status.PhaseReading)
	content, err := p.files.ReadText(ctx, path)
	if err != nil {
		advance(status.PhaseErrored)
		return status.Outcome{Path: path, Kind: status.OutcomeErrored, Err: err}
	}
	rec.OriginalContent = content

	advance(status.PhaseTransforming)
	result := p.replacer.Apply(rec.OriginalContent)
	rec.FinalContent = result.ModifiedContent
	for _, c := range result.Counts {
		if c.Count > 0 {
			logger.Debug().Str("rule", c.Rule.Name()).Int("count", c.Count).Msg("rule applied")
		}
	}

	advance(status.PhaseComparing)
	if !rec.Changed() {
		advance(status.PhaseSkipped)
		return status.Outcome{Path: path, Kind: status.OutcomeSkipped, Replacements: result.ReplacementCount}
	}

	outcome := status.Outcome{
		Path:         path,
		Kind:         status.OutcomeUpdated,
		Replacements: result.ReplacementCount,
		DryRun:       p.dryRun,
	}
	if p.showDiff {
		outcome.Diff = diff.Unified(rec.OriginalContent, rec.FinalContent, diff.DefaultContext)
	}

	if p.dryRun {
		advance(status.PhaseUpdated)
		return outcome
	}

	if p.backup {
		if err := p.files.BackupFile(ctx, path); err != nil {
			advance(status.PhaseErrored)
			return status.Outcome{Path: path, Kind: status.OutcomeErrored, Err: err}
		}
	}

	if err := p.files.WriteFileAtomic(ctx, path, rec.FinalContent); err != nil {
		advance(status.PhaseErrored)
		return status.Outcome{Path: path, Kind: status.OutcomeErrored, Err: err}
	}

	advance(status.PhaseUpdated)
	return outcome
}
