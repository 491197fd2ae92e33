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

package status

import (
	"fmt"

	"github.com/fatih/color"
)

// FileFormatter defines how file outcomes and progress should be formatted
type FileFormatter interface {
	// FormatFileEntry formats the outcome of one file rewrite
	FormatFileEntry(entry FileEntry) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileEntry formats a file outcome with color by status
func (f *DefaultFileFormatter) FormatFileEntry(entry FileEntry) string {
	switch entry.Status {
	case StatusModified:
		return fmt.Sprintf("%s %s (%d replaced)", color.GreenString("✨ Updated"), entry.Path, entry.Replacements)
	case StatusPending:
		return fmt.Sprintf("%s %s (%d would be replaced)", color.YellowString("📝 Would update"), entry.Path, entry.Replacements)
	case StatusError:
		return fmt.Sprintf("%s %s", color.RedString("❌ Failed"), entry.Path)
	case StatusUnchanged:
		return fmt.Sprintf("%s %s", color.WhiteString("👍 Unchanged"), entry.Path)
	default:
		return fmt.Sprintf("❓ %s", entry.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %v", color.RedString("❌ Error:"), err)
}
