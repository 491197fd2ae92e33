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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/versync/cmd/versync/commands"
	"github.com/walteh/versync/cmd/versync/opts"
	"github.com/walteh/versync/pkg/status"
)

// newRootCmd builds the root command and its subcommands around a shared
// set of options populated once flags are parsed
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "versync <version>",
		Short: "Synchronize a release version across config and doc files",
		Long: `versync writes a single version string into every configured target file:
quoted key-value assignments, bare key-value assignments, and version-shaped
tokens embedded in documentation. Matching lines are replaced wholesale;
every other byte of each file is preserved.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return initRootOpts(cmd.Context(), o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunSync(cmd.Context(), o, args[0])
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewStatusCmd(o),
		commands.NewLatestCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

func main() {
	o := &opts.RootOpts{}
	rootCmd := newRootCmd(o)

	setupLogging()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		status.NewUserLogger(ctx, status.NewDefaultFileFormatter()).LogError("versync failed", err)
		os.Exit(1)
	}
}
