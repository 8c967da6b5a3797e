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
	"github.com/walteh/rewriterc/pkg/status"
)

// 🏃 Runner drives a Processor over a list of paths, one file at a time
type Runner struct {
	processor *Processor
	reporter  Reporter
}

// 🏗️ NewRunner creates a new runner
func NewRunner(processor *Processor, reporter Reporter) *Runner {
	return &Runner{
		processor: processor,
		reporter:  reporter,
	}
}

// 🏃 Run processes every path in order, start to terminal state, before moving on.
// A failing file is reported and the loop continues.
func (r *Runner) Run(ctx context.Context, paths []string) status.Summary {
	summary := status.Summary{Total: len(paths)}
	zerolog.Ctx(ctx).Debug().Int("files", len(paths)).Msg("starting run")

	for i, path := range paths {
		r.reporter.StartFile(ctx, path, i+1, len(paths))
		outcome := r.processor.Process(ctx, path)
		summary.Add(outcome)
		r.reporter.Report(ctx, outcome)
	}

	r.reporter.Summarize(ctx, summary)
	return summary
}
