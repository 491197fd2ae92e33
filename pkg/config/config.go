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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/versync/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Target describes one file (or doublestar glob) and the rule that puts
// the new version into it. Exactly one of Key or Pattern must be set: Key
// means whole-line replacement of lines starting with that prefix, Pattern
// means token replacement of every regex match.
type Target struct {
	Path    string `json:"path" yaml:"path" hcl:"path,label"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty" hcl:"key,optional"`
	Quote   bool   `json:"quote,omitempty" yaml:"quote,omitempty" hcl:"quote,optional"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Targets []Target `json:"targets" yaml:"targets" hcl:"target,block"`
	Async   bool     `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
}

// 🏭 Default returns the built-in target set used when no config file
// exists: a quoted `version = ` line in Cargo.toml, a bare `version: ` line
// in snapcraft.yaml, and every 0.x.y token in README.md.
func Default() *Config {
	return &Config{
		Targets: []Target{
			{Path: "Cargo.toml", Key: "version = ", Quote: true},
			{Path: "snapcraft.yaml", Key: "version: "},
			{Path: "README.md", Pattern: rewrite.DefaultVersionPattern},
		},
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🗂️ DefaultConfigFiles are the config filenames probed, in order, when the
// requested path does not exist
var DefaultConfigFiles = []string{".versync.yaml", ".versync.yml", ".versync.hcl"}

// 🎯 LoadOrDefault loads the config file at path. When that file does not
// exist it probes the other default config filenames in the same directory,
// and only falls back to the built-in targets when none is present.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(ctx, path)
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("stating config file: %w", err)
	}

	dir := filepath.Dir(path)
	for _, name := range DefaultConfigFiles {
		candidate := filepath.Join(dir, name)
		if candidate == path {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			zerolog.Ctx(ctx).Debug().Str("path", candidate).Msg("discovered config file")
			return Load(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using built-in targets")
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}

	for i, target := range cfg.Targets {
		if err := target.Validate(); err != nil {
			return errors.Errorf("target %d: %w", i, err)
		}
	}

	return nil
}

// 🔍 Validate checks if the target is valid
func (t *Target) Validate() error {
	if t.Path == "" {
		return errors.Errorf("path is required")
	}
	if t.Key == "" && t.Pattern == "" {
		return errors.Errorf("%s: one of key or pattern is required", t.Path)
	}
	if t.Key != "" && t.Pattern != "" {
		return errors.Errorf("%s: key and pattern are mutually exclusive", t.Path)
	}
	if t.Pattern != "" {
		if _, err := regexp.Compile(t.Pattern); err != nil {
			return errors.Errorf("%s: invalid pattern: %w", t.Path, err)
		}
	}
	return nil
}

// 🔄 Rule builds the rewrite rule for this target with the given version
func (t *Target) Rule(version string) (rewrite.Rule, error) {
	if t.Key != "" {
		return rewrite.KeyRule{Key: t.Key, Value: version, Quote: t.Quote}, nil
	}
	return rewrite.NewPatternRule(t.Pattern, version)
}

// 📝 String returns a string representation of the target
func (t *Target) String() string {
	if t.Key != "" {
		mode := "bare"
		if t.Quote {
			mode = "quoted"
		}
		return fmt.Sprintf("%s: key %q (%s)", t.Path, t.Key, mode)
	}
	return fmt.Sprintf("%s: pattern %q", t.Path, t.Pattern)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
