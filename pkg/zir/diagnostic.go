// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package zir

import (
	"bufio"
	"fmt"
	"io"
)

// Diagnostic is a non-fatal error record: a byte offset into the source
// text plus a human-readable message.  Diagnostics never abort parsing;
// they accumulate into Module.Errors.
//
// Grounded on the teacher's source.SyntaxError (offset/span + message),
// simplified to a single offset since ZIR diagnostics always anchor to a
// single point (the start of the offending token), not a range.
type Diagnostic struct {
	Offset  int
	Message string
}

// Error implements the error interface, so a Diagnostic can be used
// anywhere a plain Go error is expected (e.g. wrapped by a caller).
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d: %s", d.Offset, d.Message)
}

// line returns the 1-based line number and 1-based column of offset
// within source, along with the full text of that line (without its
// trailing newline).
func line(source []byte, offset int) (lineNo, col int, text string) {
	lineNo, col = 1, 1
	start := 0

	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			lineNo++
			col = 1
			start = i + 1
		} else {
			col++
		}
	}

	end := start
	for end < len(source) && source[end] != '\n' {
		end++
	}

	return lineNo, col, string(source[start:end])
}

// FormatDiagnostics writes a human-readable rendering of every
// diagnostic in diags against the original source text: one
// "filename:line:col: error: message" header per diagnostic, followed by the offending
// source line and a caret pointing at the column.  When color is true,
// the header is emphasised with ANSI escapes (the CLI only sets this
// when its output is connected to a terminal; see internal/cli).
//
// This is CLI-facing presentation, not something the library calls on
// its own behalf: spec.md is explicit that there is no implicit logging,
// diagnostics are simply returned in Module.Errors.
func FormatDiagnostics(w io.Writer, filename string, source []byte, diags []Diagnostic, color bool) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	const (
		bold = "\x1b[1m"
		red  = "\x1b[31m"
		rst  = "\x1b[0m"
	)

	for _, d := range diags {
		lineNo, col, text := line(source, d.Offset)

		if color {
			fmt.Fprintf(bw, "%s%s:%d:%d:%s %s%serror:%s %s\n",
				bold, filename, lineNo, col, rst, bold, red, rst, d.Message)
		} else {
			fmt.Fprintf(bw, "%s:%d:%d: error: %s\n", filename, lineNo, col, d.Message)
		}

		fmt.Fprintf(bw, "    %s\n", text)
		fmt.Fprintf(bw, "    %*s^\n", col-1, "")
	}
}
