package opts

import (
	"github.com/walteh/versync/pkg/config"
	"github.com/walteh/versync/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	StatusMgr  *status.Manager
	UserLogger *status.UserLogger
	DryRun     bool
}
