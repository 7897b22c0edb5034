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
	"fmt"
	"log/slog"

	"github.com/googleapis/pkgrelease/internal/manifest"
	"github.com/googleapis/pkgrelease/internal/semver"
	"github.com/urfave/cli/v3"
)

func newVersionUpCommand() *cli.Command {
	return &cli.Command{
		Name:      "versionup",
		Usage:     "increment the patch version of a package manifest",
		UsageText: "versionup [--manifest <file>] [--dry-run]",
		Description: `Versionup reads the version field of the package manifest, increments its
last (patch) segment and rewrites the manifest in place with 4-space
indentation. All other fields are kept unchanged and in their original order.

Examples:
  versionup                          # bump package.json
  versionup --manifest web/package.json
  versionup --dry-run                # print the next version only`,
		Flags:  commonFlags(),
		Action: runVersionUp,
	}
}

func runVersionUp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("dry-run") {
		m, err := nextVersion(cfg.Manifest)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.Root().Writer, "Package version would be incremented to: %s\n", m.Version)
		return nil
	}
	m, err := Bump(cfg.Manifest)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Package version incremented to: %s\n", m.Version)
	return nil
}

// Bump reads the manifest at path, increments the patch segment of its
// version and overwrites the manifest with the result. The file is left
// untouched when reading or incrementing fails.
func Bump(path string) (*manifest.Manifest, error) {
	m, err := nextVersion(path)
	if err != nil {
		return nil, err
	}
	if err := manifest.Write(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

// nextVersion reads the manifest at path and returns it with its version
// incremented, without writing it.
func nextVersion(path string) (*manifest.Manifest, error) {
	m, err := manifest.Read(path)
	if err != nil {
		return nil, err
	}
	next, err := semver.IncrementPatch(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("incrementing version", "manifest", path, "from", m.Version, "to", next)
	m.Version = next
	return m, nil
}
