package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/versync/cmd/versync/opts"
	"github.com/walteh/versync/pkg/operation"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates the command that previews a version bump
func NewStatusCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status <version>",
		Short: "Show which target files a version bump would change",
		Long: `Status applies every configured rule in memory and reports, per target
file, whether the given version would change it. No file is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.NewStatusOperation(operation.Options{
				Config:    o.Config,
				Version:   args[0],
				StatusMgr: o.StatusMgr,
			})
			if err != nil {
				return errors.Errorf("creating status operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("checking targets: %w", err)
			}

			counts := o.StatusMgr.Counts()
			o.UserLogger.LogSummary(
				statusSummary(counts[status.StatusPending], counts[status.StatusUnchanged]))
			return nil
		},
	}
}

func statusSummary(pending, unchanged int) string {
	if pending == 0 {
		return "all targets already current"
	}
	return fmt.Sprintf("%d file(s) would change, %d unchanged", pending, unchanged)
}
