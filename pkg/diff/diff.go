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

// Package diff renders line-oriented patches between two versions of a file.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// Unified returns a unified-style patch from from to to, or "" when they are equal.
// File headers are omitted; each hunk starts with an @@ line.
func Unified(from, to string, context int) string {
	if from == to {
		return ""
	}
	if context < 0 {
		context = 0
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: d.Type, text: l})
		}
	}

	// line numbers (1-based) at the start of each op
	oldNo := make([]int, len(ops)+1)
	newNo := make([]int, len(ops)+1)
	oldNo[0], newNo[0] = 1, 1
	var changes []int
	for i, op := range ops {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			oldNo[i+1]++
			newNo[i+1]++
		case diffmatchpatch.DiffDelete:
			oldNo[i+1]++
			changes = append(changes, i)
		case diffmatchpatch.DiffInsert:
			newNo[i+1]++
			changes = append(changes, i)
		}
	}

	var buf strings.Builder
	if len(changes) == 0 {
		return ""
	}

	start := max(0, changes[0]-context)
	end := min(len(ops), changes[0]+1+context)
	for _, c := range changes[1:] {
		if c-context <= end {
			end = min(len(ops), c+1+context)
			continue
		}
		writeHunk(&buf, ops, oldNo, newNo, start, end)
		start = c - context
		end = min(len(ops), c+1+context)
	}
	writeHunk(&buf, ops, oldNo, newNo, start, end)

	return buf.String()
}

func writeHunk(buf *strings.Builder, ops []lineOp, oldNo, newNo []int, start, end int) {
	oldStart, newStart := oldNo[start], newNo[start]
	oldCount, newCount := oldNo[end]-oldStart, newNo[end]-newStart
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}

	fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, op := range ops[start:end] {
		prefix := " "
		switch op.kind {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		buf.WriteString(prefix)
		buf.WriteString(strings.TrimSuffix(op.text, "\n"))
		buf.WriteByte('\n')
	}
}

func splitLines(s string) []string {
	parts := strings.SplitAfter(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
