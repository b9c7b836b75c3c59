/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/
package wizard

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const DIFF_CONTEXT_LINES = 3

type diffLine struct {
	kind byte
	text string
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineOps(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []diffLine
	for _, diff := range diffs {
		kind := byte(' ')
		switch diff.Type {
		case diffpatch.DiffInsert:
			kind = '+'
		case diffpatch.DiffDelete:
			kind = '-'
		}
		for _, line := range splitLines(diff.Text) {
			ops = append(ops, diffLine{kind: kind, text: line})
		}
	}
	return ops
}

func hunkRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}

// UnifiedDiff renders the change from before to after the way diff -u
// does. Identical inputs give "".
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	ops := lineOps(before, after)

	oldPos := make([]int, len(ops)+1)
	newPos := make([]int, len(ops)+1)
	for i, op := range ops {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if op.kind != '+' {
			oldPos[i+1]++
		}
		if op.kind != '-' {
			newPos[i+1]++
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", name, name)
	for i := 0; i < len(ops); {
		if ops[i].kind == ' ' {
			i++
			continue
		}
		start := max(i-DIFF_CONTEXT_LINES, 0)
		end := i
		for end < len(ops) {
			if ops[end].kind != ' ' {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == ' ' {
				run++
			}
			if run == len(ops) || run-end > 2*DIFF_CONTEXT_LINES {
				end = min(end+DIFF_CONTEXT_LINES, len(ops))
				break
			}
			end = run
		}

		fmt.Fprintf(&out, "@@ -%s +%s @@\n",
			hunkRange(oldPos[start], oldPos[end]-oldPos[start]),
			hunkRange(newPos[start], newPos[end]-newPos[start]))
		for _, op := range ops[start:end] {
			out.WriteByte(op.kind)
			out.WriteString(op.text)
			if !strings.HasSuffix(op.text, "\n") {
				out.WriteString("\n")
			}
		}
		i = end
	}
	return out.String()
}
