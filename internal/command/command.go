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

// Package command provides helpers to execute external commands with logging.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

var (
	// ErrCommandFailed is included in any error returned when an external
	// command cannot be started or exits with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrNotStarted is additionally included when the command could not be
	// started at all, for example because the executable does not exist.
	ErrNotStarted = errors.New("command not started")
)

var (
	// Verbose controls whether commands are printed to [Stderr] before
	// execution.
	Verbose bool

	// Stdout and Stderr receive the output of commands started with [Run] and
	// [RunWithEnv] as it is produced.
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Run executes a program (with arguments), forwarding its output to [Stdout]
// and [Stderr]. It is a convenience wrapper around RunWithEnv.
func Run(ctx context.Context, command string, arg ...string) error {
	return RunWithEnv(ctx, nil, command, arg...)
}

// RunWithEnv executes a program (with arguments) and optional environment
// variables, forwarding its output to [Stdout] and [Stderr]. If env is nil or
// empty, the command inherits the environment of the calling process. The
// returned error only reports whether the command succeeded; the output is
// not retained.
func RunWithEnv(ctx context.Context, env map[string]string, command string, arg ...string) error {
	cmd := exec.CommandContext(ctx, command, arg...)
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	cmd.Stdout = Stdout
	cmd.Stderr = Stderr
	if Verbose {
		fmt.Fprintf(Stderr, "%s\n", cmd.String())
	}
	return wrap(cmd, cmd.Run())
}

// Output executes a program (with arguments) and returns what it wrote to
// stdout and stderr. Nothing is forwarded to the caller's streams.
func Output(ctx context.Context, command string, arg ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, command, arg...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if Verbose {
		fmt.Fprintf(Stderr, "%s\n", cmd.String())
	}
	err = wrap(cmd, cmd.Run())
	return outBuf.String(), errBuf.String(), err
}

// wrap converts the result of running cmd into an error that names the
// command. Exit codes are deliberately dropped.
func wrap(cmd *exec.Cmd, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s", ErrCommandFailed, cmd)
	}
	return fmt.Errorf("%w: %s: %w: %w", ErrCommandFailed, cmd, ErrNotStarted, err)
}

// GetExecutablePath finds the path for a given command, checking for an
// override in the provided commandOverrides map first.
func GetExecutablePath(commandOverrides map[string]string, commandName string) string {
	if exe, ok := commandOverrides[commandName]; ok {
		return exe
	}
	return commandName
}
