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

package rewrite

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RewriteFile reads path fully, applies rules in memory, and overwrites the
// file with the result. The file is rewritten even when no rule matched, so
// a zero-match run is a content no-op but still a write. The write goes
// through a temp file in the same directory followed by a rename, with the
// temp file removed on failure.
func RewriteFile(ctx context.Context, path string, rules ...Rule) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	result, err := Apply(content, rules...)
	if err != nil {
		return nil, errors.Errorf("rewriting %s: %w", path, err)
	}

	if err := writeFileAtomic(path, result.ModifiedContent, info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}

	logger.Debug().
		Str("path", path).
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("rewrote file")

	return result, nil
}

// writeFileAtomic writes content to a sibling temp file and renames it over
// path, so readers never observe a half-written file.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
