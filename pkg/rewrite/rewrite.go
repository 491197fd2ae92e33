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

// Package rewrite implements the line-rewriting engine: rules that locate
// version-bearing lines or tokens in file content and replace them while
// leaving every other byte untouched.
package rewrite

import (
	"bytes"
	"fmt"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// DefaultVersionPattern matches version tokens of the form 0.<digit>.<1-3
// digits>. It deliberately only recognizes major version zero; whether to
// broaden it belongs to whoever owns the release policy, not this package.
const DefaultVersionPattern = `0\.\d\.\d{1,3}`

// 🔄 Rule rewrites version occurrences in file content
type Rule interface {
	// Rewrite applies the rule to content and returns the rewritten bytes
	// along with the number of lines or tokens that were replaced
	Rewrite(content []byte) ([]byte, int)

	// Validate checks that the rule is well formed
	Validate() error

	// Describe returns a short form of the rule for status output
	Describe() string
}

// 📊 Result holds the outcome of applying rules to one file
type Result struct {
	OriginalContent  []byte // Content before any rule ran
	ModifiedContent  []byte // Content after all rules ran
	WasModified      bool   // Whether the content changed at all
	ReplacementCount int    // Total lines/tokens replaced across all rules
}

// 🔑 KeyRule replaces whole lines that begin with a literal key prefix.
// A matching line is replaced wholesale by the key followed by the value
// (double-quoted when Quote is set) and a newline. Non-matching lines pass
// through byte-for-byte, including a final line with no terminator.
type KeyRule struct {
	Key   string // Literal line prefix, e.g. `version = `
	Value string // Replacement version text, inserted verbatim
	Quote bool   // Wrap the value in double quotes
}

// Rewrite implements Rule
func (r KeyRule) Rewrite(content []byte) ([]byte, int) {
	var buf bytes.Buffer
	buf.Grow(len(content))

	count := 0
	key := []byte(r.Key)
	for _, line := range splitAfterLines(content) {
		if !bytes.HasPrefix(line, key) {
			buf.Write(line)
			continue
		}
		buf.WriteString(r.Key)
		if r.Quote {
			buf.WriteByte('"')
			buf.WriteString(r.Value)
			buf.WriteByte('"')
		} else {
			buf.WriteString(r.Value)
		}
		buf.WriteByte('\n')
		count++
	}

	return buf.Bytes(), count
}

// Validate implements Rule
func (r KeyRule) Validate() error {
	if r.Key == "" {
		return errors.Errorf("key is required")
	}
	return nil
}

// Describe implements Rule
func (r KeyRule) Describe() string {
	if r.Quote {
		return fmt.Sprintf("key %q (quoted)", r.Key)
	}
	return fmt.Sprintf("key %q", r.Key)
}

// 🔍 PatternRule replaces every substring matching Pattern with Value.
// Matches never span lines, so surrounding text and line terminators are
// preserved exactly.
type PatternRule struct {
	Pattern *regexp.Regexp // Token pattern, e.g. the 0.x.y default
	Value   string         // Literal replacement text
}

// NewPatternRule compiles expr into a PatternRule
func NewPatternRule(expr, value string) (PatternRule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternRule{}, errors.Errorf("compiling pattern %q: %w", expr, err)
	}
	return PatternRule{Pattern: re, Value: value}, nil
}

// Rewrite implements Rule
func (r PatternRule) Rewrite(content []byte) ([]byte, int) {
	count := 0
	out := r.Pattern.ReplaceAllFunc(content, func([]byte) []byte {
		count++
		return []byte(r.Value)
	})
	return out, count
}

// Validate implements Rule
func (r PatternRule) Validate() error {
	if r.Pattern == nil {
		return errors.Errorf("pattern is required")
	}
	return nil
}

// Describe implements Rule
func (r PatternRule) Describe() string {
	return fmt.Sprintf("pattern %q", r.Pattern.String())
}

// Apply runs rules against content in order and reports the combined result.
// It never touches the file system.
func Apply(content []byte, rules ...Rule) (*Result, error) {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, errors.Errorf("invalid rule %s: %w", rule.Describe(), err)
		}
		next, n := rule.Rewrite(current)
		result.ReplacementCount += n
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = !bytes.Equal(content, current)
	return result, nil
}

// splitAfterLines splits content into lines with their terminators kept
// attached. A trailing line without a newline is returned as-is.
func splitAfterLines(content []byte) [][]byte {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines
}
