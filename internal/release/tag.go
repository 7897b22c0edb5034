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

package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cbroglie/mustache"
	"github.com/googleapis/pkgrelease/internal/config"
	"github.com/googleapis/pkgrelease/internal/git"
	"github.com/googleapis/pkgrelease/internal/manifest"
	"github.com/googleapis/pkgrelease/internal/semver"
	"github.com/urfave/cli/v3"
)

var (
	// ErrTagExists is returned when the tag for the manifest version is
	// already present in the repository.
	ErrTagExists = errors.New("tag already exists")

	// ErrInvalidTagName is returned when the tag format does not render to a
	// valid git tag name.
	ErrInvalidTagName = errors.New("invalid tag name")
)

func newTagPushCommand() *cli.Command {
	return &cli.Command{
		Name:      "tagpush",
		Usage:     "tag the current manifest version in git and push all tags",
		UsageText: "tagpush [--manifest <file>] [--remote <name>] [--dry-run]",
		Description: `Tagpush reads the version of the package manifest, derives the tag name
from it ("v" followed by the version, unless tag_format is configured) and
fails if that tag already exists. Otherwise it creates the tag at HEAD and
pushes all local tags to the remote.

Examples:
  tagpush                            # tag package.json's version, push to the default remote
  tagpush --remote upstream
  tagpush --dry-run                  # resolve and check the tag only`,
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "remote",
				Usage: "git `remote` to push tags to (default: the current branch's remote)",
			},
		),
		Action: runTagPush,
	}
}

func runTagPush(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("dry-run") {
		tag, err := PlanTag(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.Root().Writer, "Tag %s would be created and pushed\n", tag)
		return nil
	}
	if _, err := PublishTag(ctx, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, "Tag on git done!")
	return nil
}

// PublishTag creates the tag for the manifest version configured in cfg and
// pushes all local tags to the configured remote. It returns the tag name.
// Nothing is created or pushed if the tag already exists.
func PublishTag(ctx context.Context, cfg *config.Config) (string, error) {
	tag, err := PlanTag(ctx, cfg)
	if err != nil {
		return "", err
	}
	gitExe := cfg.GitExecutable()
	if err := git.Tag(ctx, gitExe, tag); err != nil {
		return "", err
	}
	slog.Debug("created tag", "tag", tag)
	if err := git.PushTags(ctx, gitExe, cfg.Remote); err != nil {
		return "", err
	}
	slog.Debug("pushed tags", "remote", cfg.Remote)
	return tag, nil
}

// PlanTag resolves the tag name for the manifest configured in cfg and checks
// that the tag does not exist yet, without modifying the repository.
func PlanTag(ctx context.Context, cfg *config.Config) (string, error) {
	m, err := manifest.Read(cfg.Manifest)
	if err != nil {
		return "", err
	}
	if err := semver.Validate(m.Version); err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Manifest, err)
	}
	tag, err := TagName(cfg.TagFormat, m)
	if err != nil {
		return "", err
	}
	gitExe := cfg.GitExecutable()
	if err := git.CheckVersion(ctx, gitExe); err != nil {
		return "", fmt.Errorf("git is not available: %w", err)
	}
	exists, err := git.TagExists(ctx, gitExe, tag)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrTagExists, tag)
	}
	warnIfNotLatest(ctx, gitExe, tag)
	return tag, nil
}

// TagName renders format with the "version" and "name" of m, without HTML
// escaping, and checks that the result is a valid git tag name.
func TagName(format string, m *manifest.Manifest) (string, error) {
	if m.Version == "" {
		return "", fmt.Errorf("%w: manifest version is empty", ErrInvalidTagName)
	}
	tmpl, err := mustache.ParseStringRaw(format, true)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %q: %w", ErrInvalidTagName, format, err)
	}
	tag, err := tmpl.Render(map[string]string{
		"version": m.Version,
		"name":    m.Name,
	})
	if err != nil {
		return "", fmt.Errorf("%w: rendering %q: %w", ErrInvalidTagName, format, err)
	}
	if _, err := git.TagRef(tag); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTagName, err)
	}
	return tag, nil
}

// warnIfNotLatest logs a warning when tag is a semantic version that does not
// sort after the highest semantic version tag already in the repository.
func warnIfNotLatest(ctx context.Context, gitExe, tag string) {
	tags, err := git.ListTags(ctx, gitExe)
	if err != nil {
		slog.Warn("could not list existing tags", "error", err)
		return
	}
	latest := semver.Latest(tags)
	if latest == "" {
		return
	}
	if newer, ok := semver.Newer(tag, latest); ok && !newer {
		slog.Warn("new tag does not sort after the latest version tag", "tag", tag, "latest", latest)
	}
}
