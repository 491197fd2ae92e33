package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/versync/cmd/versync/opts"
	"github.com/walteh/versync/pkg/remote/github"
	"gitlab.com/tozd/go/errors"
)

// NewLatestCmd creates the command that syncs to a repository's latest
// GitHub release tag instead of an explicit version argument
func NewLatestCmd(o *opts.RootOpts) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "latest <owner/repo>",
		Short: "Sync to the latest GitHub release of a repository",
		Long: `Latest resolves the version string from the latest published release of
the given GitHub repository (a leading "v" is stripped from the tag, the
rest is taken verbatim) and then applies it to every configured target.
Set GITHUB_TOKEN to authenticate against private repositories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolver := github.NewResolver()

			var version string
			var err error
			if tag != "" {
				version, err = resolver.VersionForTag(ctx, args[0], tag)
			} else {
				version, err = resolver.LatestVersion(ctx, args[0])
			}
			if err != nil {
				return errors.Errorf("resolving version: %w", err)
			}

			return RunSync(ctx, o, version)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "use this release tag instead of the latest release")

	return cmd
}
