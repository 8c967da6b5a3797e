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

package status

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Phase is where a file is in its processing lifecycle
type Phase int

const (
	PhasePending      Phase = iota
	PhaseReading            // Loading content from disk
	PhaseTransforming       // Running the rule engine
	PhaseComparing          // Checking for changes, writing if needed
	PhaseUpdated            // Content changed and was written
	PhaseSkipped            // Content unchanged, nothing written
	PhaseErrored            // Read or write failed
)

// String returns a string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseReading:
		return "reading"
	case PhaseTransforming:
		return "transforming"
	case PhaseComparing:
		return "comparing"
	case PhaseUpdated:
		return "updated"
	case PhaseSkipped:
		return "skipped"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is allowed
func (p Phase) Terminal() bool {
	return p == PhaseUpdated || p == PhaseSkipped || p == PhaseErrored
}

var transitions = map[Phase][]Phase{
	PhasePending:      {PhaseReading},
	PhaseReading:      {PhaseTransforming, PhaseErrored},
	PhaseTransforming: {PhaseComparing},
	PhaseComparing:    {PhaseUpdated, PhaseSkipped, PhaseErrored},
}

// CanTransition reports whether p may move to next
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// 📄 FileRecord holds the state of one file while it is processed.
// It is created per path and discarded once the outcome is reported.
type FileRecord struct {
	Path            string
	OriginalContent string
	FinalContent    string

	phase Phase
}

// 🏭 NewFileRecord creates a pending record for path
func NewFileRecord(path string) *FileRecord {
	return &FileRecord{Path: path, phase: PhasePending}
}

func (r *FileRecord) Phase() Phase { return r.phase }

// Changed reports whether the rules altered the content
func (r *FileRecord) Changed() bool {
	return r.FinalContent != r.OriginalContent
}

// Advance moves the record to next, refusing transitions the lifecycle does not allow
func (r *FileRecord) Advance(ctx context.Context, next Phase) error {
	if !r.phase.CanTransition(next) {
		return errors.Errorf("invalid transition for %s: %s -> %s", r.Path, r.phase, next)
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", r.Path).
		Str("from", r.phase.String()).
		Str("to", next.String()).
		Msg("file phase")
	r.phase = next
	return nil
}

// 🎯 OutcomeKind is the terminal classification of one file
type OutcomeKind int

const (
	OutcomeSkipped OutcomeKind = iota
	OutcomeUpdated
	OutcomeErrored
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one file
type Outcome struct {
	Path         string
	Kind         OutcomeKind
	Err          error  // Set when Kind is OutcomeErrored
	Replacements int    // Total replacements across all rules
	DryRun       bool   // Updated but not written
	Diff         string // Patch from original to final content, when requested
}

// 📈 Summary is the aggregate tally of a run
type Summary struct {
	Total       int
	Updated     int
	WouldUpdate int // Dry-run files that would have been written
	Skipped     int
	Errored     int
}

// Add counts one outcome
func (s *Summary) Add(o Outcome) {
	switch o.Kind {
	case OutcomeUpdated:
		if o.DryRun {
			s.WouldUpdate++
			return
		}
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeErrored:
		s.Errored++
	}
}
