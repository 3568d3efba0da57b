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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zirc-lang/zirc/pkg/zir/zirtext"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Parse a ZIR file and print its canonical rendering.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, m := mustParseFile(args[0])
		if m.HasErrors() {
			os.Exit(1)
		}

		if err := zirtext.Render(os.Stdout, m); err != nil {
			log.Fatalf("rendering %s: %v", args[0], err)
		}
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
