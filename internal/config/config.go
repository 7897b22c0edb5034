// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines the optional .pkgrelease.yaml configuration shared
// by versionup and tagpush.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/googleapis/pkgrelease/internal/command"
	"github.com/googleapis/pkgrelease/internal/yaml"
)

const (
	// DefaultPath is the configuration file looked up in the working
	// directory when no path is given.
	DefaultPath = ".pkgrelease.yaml"

	// DefaultManifest is the manifest used when none is configured.
	DefaultManifest = "package.json"

	// DefaultTagFormat renders a tag as "v" followed by the version.
	DefaultTagFormat = "v{{version}}"

	versionPlaceholder = "{{version}}"
)

var (
	// ErrRead is returned when the configuration file exists but cannot be
	// read or decoded.
	ErrRead = errors.New("failed to read config")

	// ErrInvalidConfig is returned when the configuration is decoded but
	// fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings of both release tools. Every field is optional.
type Config struct {
	// Manifest is the path of the JSON manifest holding the version.
	Manifest string `yaml:"manifest,omitempty"`

	// TagFormat is a mustache template for the tag name. It is rendered with
	// "version" and "name" from the manifest.
	TagFormat string `yaml:"tag_format,omitempty"`

	// Remote is the git remote tags are pushed to. Empty means the default
	// remote of the current branch.
	Remote string `yaml:"remote,omitempty"`

	// Preinstalled maps tool names, such as "git", to executable paths.
	Preinstalled map[string]string `yaml:"preinstalled,omitempty"`
}

// Read reads the configuration at path. The file must exist. Defaults are
// not applied.
func Read(path string) (*Config, error) {
	cfg, err := yaml.Read[Config](path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	return cfg, nil
}

// Load is like [Read], except that a missing file is not an error and yields
// an empty configuration.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if c.TagFormat == "" {
		c.TagFormat = DefaultTagFormat
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest must not be empty"))
	}
	if !strings.Contains(c.TagFormat, versionPlaceholder) {
		errs = append(errs, fmt.Errorf("tag_format %q must contain %s", c.TagFormat, versionPlaceholder))
	}
	for name, path := range c.Preinstalled {
		if path == "" {
			errs = append(errs, fmt.Errorf("preinstalled path for %q must not be empty", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// GitExecutable returns the git executable to run, honoring Preinstalled.
func (c *Config) GitExecutable() string {
	return command.GetExecutablePath(c.Preinstalled, "git")
}
