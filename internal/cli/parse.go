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
package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zirc-lang/zirc/pkg/zir"
	"github.com/zirc-lang/zirc/pkg/zir/zirtext"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a ZIR file and report diagnostics.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, m := mustParseFile(args[0])
		if m.HasErrors() {
			os.Exit(1)
		}

		fmt.Printf("%s: %d declaration(s), no errors\n", args[0], len(m.Decls))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// mustParseFile reads filename, parses it, reports any diagnostics to
// stderr (colored when stderr is a terminal), and returns the source
// text alongside the resulting Module. It exits the process on a read
// failure, since there is no Module to report through at that point.
func mustParseFile(filename string) ([]byte, *zir.Module) {
	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("reading %s: %v", filename, err)
	}

	m := zirtext.Parse(source)
	if m.HasErrors() {
		color := term.IsTerminal(int(os.Stderr.Fd()))
		zir.FormatDiagnostics(os.Stderr, filename, source, m.Errors, color)
	}

	return source, m
}
