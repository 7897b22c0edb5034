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

// Package release implements the versionup and tagpush commands: bumping the
// patch version of a package manifest, and publishing a git tag for it.
package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/googleapis/pkgrelease/internal/command"
	"github.com/googleapis/pkgrelease/internal/config"
	"github.com/googleapis/pkgrelease/internal/yaml"
	"github.com/urfave/cli/v3"
)

var errUnexpectedArgs = errors.New("unexpected arguments")

// RunVersionUp executes the versionup CLI with the given command line
// arguments. The first argument is the program name.
func RunVersionUp(ctx context.Context, arg ...string) error {
	cmd := newVersionUpCommand()
	return cmd.Run(ctx, arg)
}

// RunTagPush executes the tagpush CLI with the given command line arguments.
// The first argument is the program name.
func RunTagPush(ctx context.Context, arg ...string) error {
	cmd := newTagPushCommand()
	return cmd.Run(ctx, arg)
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "manifest",
			Usage: "path of the package manifest `file` (default from config, then package.json)",
		},
		&cli.StringFlag{
			Name:  "config",
			Value: config.DefaultPath,
			Usage: "path of the optional configuration `file`",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "report what would change without modifying anything",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging and print executed commands",
		},
	}
}

// loadConfig sets up logging, then builds the effective configuration from
// the configuration file and the flags of cmd. Flags take precedence. The
// default configuration file may be absent; one named with --config may not.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if cmd.Args().Present() {
		return nil, fmt.Errorf("%w: %v", errUnexpectedArgs, cmd.Args().Slice())
	}
	verbose := cmd.Bool("verbose")
	setupLogger(verbose)
	command.Verbose = verbose

	load := config.Load
	if cmd.IsSet("config") {
		load = config.Read
	}
	cfg, err := load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("manifest") {
		cfg.Manifest = cmd.String("manifest")
	}
	if cmd.IsSet("remote") {
		cfg.Remote = cmd.String("remote")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data, err := yaml.Marshal(cfg); err == nil {
		slog.Debug("effective configuration", "config", string(data))
	}
	return cfg, nil
}
