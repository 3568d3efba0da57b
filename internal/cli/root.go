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

// Package cli is the command-line front end for zirc: thin cobra
// commands wired straight into pkg/zir/zirtext, adding no semantics of
// their own.
//
// Grounded on pkg/cmd/root.go (a package-level rootCmd plus an Execute
// entry point) and pkg/cmd/util.go (the GetFlag helper that turns a
// cobra flag-lookup error into an exit code rather than a returned
// error, since a flag declared by this same package can never fail to
// parse at that point).
package cli

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd is the base command when zirc is invoked with no subcommand.
var rootCmd = &cobra.Command{
	Use:   "zirc",
	Short: "Parse, render and inspect ZIR textual intermediate representation.",
	Long:  "zirc is a small toolbox around the ZIR textual intermediate representation: parsing, canonical rendering, and diagnostic reporting.",
}

// Execute runs the root command. Called once from cmd/zirc/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	}
}

// GetFlag reads a declared boolean flag, exiting the process if it was
// never registered: that can only happen if this package's own command
// declarations are inconsistent, not from anything the user did.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Fatalf("internal error: flag %q: %v", name, err)
	}

	return v
}
