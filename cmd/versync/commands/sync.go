package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/versync/cmd/versync/opts"
	"github.com/walteh/versync/pkg/operation"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RunSync applies version to every configured target file. With DryRun set
// it inspects the targets instead and reports what would change.
func RunSync(ctx context.Context, o *opts.RootOpts, version string) error {
	logger := zerolog.Ctx(ctx)

	options := operation.Options{
		Config:    o.Config,
		Version:   version,
		StatusMgr: o.StatusMgr,
		Logger:    logger,
	}

	var op operation.Operation
	var err error
	if o.DryRun {
		op, err = operation.NewStatusOperation(options)
	} else {
		op, err = operation.NewSyncOperation(options)
	}
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	runner := operation.NewRunner(logger)
	if err := runner.Run(ctx, op); err != nil {
		return err
	}

	counts := o.StatusMgr.Counts()
	if o.DryRun {
		o.UserLogger.LogSummary(fmt.Sprintf("%d file(s) would change for version %s", counts[status.StatusPending], version))
	} else {
		o.UserLogger.LogSummary(fmt.Sprintf("Updated version to %s", version))
	}

	return nil
}
