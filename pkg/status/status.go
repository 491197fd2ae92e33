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

// Package status tracks the outcome of version rewrites per target file and
// reports progress to the operator.
package status

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 FileStatus represents the outcome of rewriting a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // File was rewritten and its content changed
	StatusUnchanged            // File was rewritten but nothing matched
	StatusPending              // Dry run: file would change
	StatusError                // Rewrite failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusPending:
		return "pending"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 FileEntry contains the recorded outcome for one file
type FileEntry struct {
	Path         string     // Path of the target file
	Status       FileStatus // Outcome of the rewrite
	Replacements int        // Lines or tokens replaced
	Rule         string     // Short form of the rule that ran
	Err          error      // Failure, when Status is StatusError
}

// 🔧 Manager tracks per-file outcomes and overall progress
type Manager struct {
	formatter FileFormatter
	user      *UserLogger

	mu    sync.RWMutex
	files map[string]FileEntry

	total     int
	processed int
}

// 🏭 NewManager creates a new status manager
func NewManager(formatter FileFormatter, user *UserLogger) *Manager {
	return &Manager{
		formatter: formatter,
		user:      user,
		files:     make(map[string]FileEntry),
	}
}

// 🏁 StartOperation begins tracking an operation over total files
func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = total
	m.processed = 0

	zerolog.Ctx(ctx).Debug().Int("total", total).Msg("starting operation")
}

// 📈 UpdateProgress records that processed files have completed
func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	m.processed = processed
	total := m.total
	m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Msg(m.formatter.FormatProgress(processed, total))
}

// 📝 UpdateStatus records the outcome for one file and echoes it to the user
func (m *Manager) UpdateStatus(ctx context.Context, entry FileEntry) {
	m.mu.Lock()
	m.files[entry.Path] = entry
	m.mu.Unlock()

	if m.user != nil {
		m.user.LogFileChange(ctx, entry)
	}

	evt := zerolog.Ctx(ctx).Debug().
		Str("path", entry.Path).
		Stringer("status", entry.Status).
		Int("replacements", entry.Replacements)
	if entry.Err != nil {
		evt = evt.Err(entry.Err)
	}
	evt.Msg("file status updated")
}

// ✅ FinishOperation completes progress tracking
func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.RLock()
	processed, total := m.processed, m.total
	m.mu.RUnlock()

	zerolog.Ctx(ctx).Debug().Msg(m.formatter.FormatProgress(processed, total))
}

// 📋 Files returns the recorded entries sorted by path
func (m *Manager) Files() []FileEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]FileEntry, 0, len(m.files))
	for _, entry := range m.files {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// 🔢 Counts returns how many entries carry each status
func (m *Manager) Counts() map[FileStatus]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, entry := range m.files {
		counts[entry.Status]++
	}
	return counts
}
