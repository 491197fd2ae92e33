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

	"github.com/walteh/versync/pkg/rewrite"
	"github.com/walteh/versync/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 NewSyncOperation creates the operation that writes the new version into
// every configured target file
func NewSyncOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("invalid sync options: %w", err)
	}
	return &syncOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// 🔄 syncOperation implements the sync operation
type syncOperation struct {
	BaseOperation
}

// Name implements Operation
func (op *syncOperation) Name() string {
	return "sync"
}

// 🏃 Execute rewrites each target file in order. Targets are processed
// sequentially by default; a failure aborts immediately and files already
// rewritten stay rewritten, there is no rollback. With Async set targets are
// processed concurrently, which is safe because no two targets share a file.
func (op *syncOperation) Execute(ctx context.Context) error {
	files, err := op.expandTargets()
	if err != nil {
		return errors.Errorf("expanding targets: %w", err)
	}

	if op.Logger != nil {
		op.Logger.Debug().Str("version", op.Version).Int("files", len(files)).Msg("syncing version")
	}

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	if op.Config.Async {
		return op.executeAsync(ctx, files)
	}

	for i, tf := range files {
		if err := op.processFile(ctx, tf); err != nil {
			return err
		}
		op.StatusMgr.UpdateProgress(ctx, i+1)
	}

	return nil
}

// ⚡ executeAsync rewrites all target files concurrently
func (op *syncOperation) executeAsync(ctx context.Context, files []targetFile) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, tf := range files {
		tf := tf
		eg.Go(func() error {
			return op.processFile(ctx, tf)
		})
	}
	return eg.Wait()
}

// 📄 processFile applies the target's rule to one file and records the outcome
func (op *syncOperation) processFile(ctx context.Context, tf targetFile) error {
	rule, err := tf.target.Rule(op.Version)
	if err != nil {
		return errors.Errorf("building rule for %s: %w", tf.path, err)
	}

	result, err := rewrite.RewriteFile(ctx, tf.path, rule)
	if err != nil {
		op.StatusMgr.UpdateStatus(ctx, status.FileEntry{
			Path:   tf.path,
			Status: status.StatusError,
			Rule:   rule.Describe(),
			Err:    err,
		})
		return errors.Errorf("rewriting %s: %w", tf.path, err)
	}

	fileStatus := status.StatusUnchanged
	if result.WasModified {
		fileStatus = status.StatusModified
	}
	op.StatusMgr.UpdateStatus(ctx, status.FileEntry{
		Path:         tf.path,
		Status:       fileStatus,
		Replacements: result.ReplacementCount,
		Rule:         rule.Describe(),
	})

	return nil
}
