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

// Package operation provides the version-sync operations that drive the
// rewrite engine across the configured target files.
package operation

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/versync/pkg/config"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation defines the interface for versync operations
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error
	// Name returns the name of the operation
	Name() string
}

// 🔧 Options contains configuration for operations
type Options struct {
	// Config is the versync configuration
	Config *config.Config
	// Version is the new version string, taken verbatim from the invocation
	Version string
	// StatusMgr tracks per-file outcomes
	StatusMgr *status.Manager
	// Logger is the base logger
	Logger *zerolog.Logger
}

// Validate checks that the options are usable
func (o Options) Validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Version == "" {
		return errors.Errorf("version is required")
	}
	if o.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	return nil
}

// 📦 BaseOperation provides common functionality for operations
type BaseOperation struct {
	Config    *config.Config
	Version   string
	StatusMgr *status.Manager
	Logger    *zerolog.Logger
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Config:    opts.Config,
		Version:   opts.Version,
		StatusMgr: opts.StatusMgr,
		Logger:    opts.Logger,
	}
}

// 🎯 targetFile pairs a concrete file path with the target that produced it
type targetFile struct {
	path   string
	target config.Target
}

// expandTargets resolves each target path, expanding doublestar globs into
// the files they match. A literal path passes through untouched so that a
// missing file still surfaces as an I/O error at rewrite time. A glob that
// matches nothing is an error: a glob target that silently covers zero files
// is a misconfiguration, not a no-op.
func (op *BaseOperation) expandTargets() ([]targetFile, error) {
	var files []targetFile
	for _, target := range op.Config.Targets {
		if !strings.ContainsAny(target.Path, "*?[{") {
			files = append(files, targetFile{path: target.Path, target: target})
			continue
		}

		matches, err := doublestar.FilepathGlob(target.Path)
		if err != nil {
			return nil, errors.Errorf("expanding glob %s: %w", target.Path, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("glob %s matches no files", target.Path)
		}
		for _, match := range matches {
			files = append(files, targetFile{path: match, target: target})
		}
	}
	return files, nil
}
