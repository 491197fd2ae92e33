package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/versync/cmd/versync/opts"
	"github.com/walteh/versync/pkg/config"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	dryRun     bool
)

// initRootOpts fills in the shared options once flags have been parsed
func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	cfg, err := config.LoadOrDefault(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	formatter := status.NewDefaultFileFormatter()
	userLogger := status.NewUserLogger(ctx, formatter)

	o.Config = cfg
	o.StatusMgr = status.NewManager(formatter, userLogger)
	o.UserLogger = userLogger
	o.DryRun = dryRun

	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".versync.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without writing")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
