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
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about rewrite outcomes,
// mirrored to zerolog for debugging. All entry rendering goes through the
// FileFormatter so there is exactly one formatting path.
type UserLogger struct {
	log       zerolog.Logger
	formatter FileFormatter
}

// 🏭 NewUserLogger creates a new user logger from the context logger
func NewUserLogger(ctx context.Context, formatter FileFormatter) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		formatter: formatter,
	}
}

// 📄 LogFileChange prints the outcome for a single file
func (u *UserLogger) LogFileChange(ctx context.Context, entry FileEntry) {
	msg := u.formatter.FormatFileEntry(entry)
	if entry.Rule != "" {
		msg += " (" + entry.Rule + ")"
	}

	switch entry.Status {
	case StatusModified:
		pterm.Success.Println(msg)
		u.log.Info().Msg(msg)
	case StatusPending:
		pterm.Info.Println(msg)
		u.log.Info().Msg(msg)
	case StatusError:
		pterm.Error.Println(msg)
		if entry.Err != nil {
			pterm.Error.Println(u.formatter.FormatError(entry.Err))
		}
		u.log.Error().Err(entry.Err).Msg(msg)
	default:
		pterm.Debug.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📦 LogSummary prints an overall summary line
func (u *UserLogger) LogSummary(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	u.log.Info().Msg(description)
}

// ❌ LogError prints a failure with its cause
func (u *UserLogger) LogError(description string, err error) {
	pterm.Error.Println(description)
	if err != nil {
		pterm.Error.Println(u.formatter.FormatError(err))
	}
	u.log.Error().Err(err).Msg(description)
}
