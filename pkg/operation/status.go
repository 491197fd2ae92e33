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

package operation

import (
	"context"
	"os"

	"github.com/walteh/versync/pkg/rewrite"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewStatusOperation creates the dry-run operation: it applies every rule
// in memory and reports what would change, without writing anything
func NewStatusOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("invalid status options: %w", err)
	}
	return &statusOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// 🔍 statusOperation implements the dry-run operation
type statusOperation struct {
	BaseOperation
}

// Name implements Operation
func (op *statusOperation) Name() string {
	return "status"
}

// 🏃 Execute inspects each target file without modifying it
func (op *statusOperation) Execute(ctx context.Context) error {
	files, err := op.expandTargets()
	if err != nil {
		return errors.Errorf("expanding targets: %w", err)
	}

	if op.Logger != nil {
		op.Logger.Debug().Str("version", op.Version).Int("files", len(files)).Msg("checking targets")
	}

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	for i, tf := range files {
		if err := op.inspectFile(ctx, tf); err != nil {
			return err
		}
		op.StatusMgr.UpdateProgress(ctx, i+1)
	}

	return nil
}

// 🔍 inspectFile applies the target's rule in memory and records the outcome
func (op *statusOperation) inspectFile(ctx context.Context, tf targetFile) error {
	rule, err := tf.target.Rule(op.Version)
	if err != nil {
		return errors.Errorf("building rule for %s: %w", tf.path, err)
	}

	content, err := os.ReadFile(tf.path)
	if err != nil {
		op.StatusMgr.UpdateStatus(ctx, status.FileEntry{
			Path:   tf.path,
			Status: status.StatusError,
			Rule:   rule.Describe(),
			Err:    err,
		})
		return errors.Errorf("reading %s: %w", tf.path, err)
	}

	result, err := rewrite.Apply(content, rule)
	if err != nil {
		return errors.Errorf("inspecting %s: %w", tf.path, err)
	}

	fileStatus := status.StatusUnchanged
	if result.WasModified {
		fileStatus = status.StatusPending
	}
	op.StatusMgr.UpdateStatus(ctx, status.FileEntry{
		Path:         tf.path,
		Status:       fileStatus,
		Replacements: result.ReplacementCount,
		Rule:         rule.Describe(),
	})

	return nil
}
