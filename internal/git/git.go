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

// Package git provides the git operations needed to publish release tags.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/googleapis/pkgrelease/internal/command"
)

// errTagLookup is included in any error returned by [TagExists].
var errTagLookup = errors.New("failed to look up tag")

// TagRef returns the fully qualified reference name for tag, for example
// "refs/tags/v1.2.3". It fails if the result is not a valid git reference
// name.
func TagRef(tag string) (plumbing.ReferenceName, error) {
	ref := plumbing.NewTagReferenceName(tag)
	if tag == "" || strings.HasPrefix(tag, "-") {
		return "", fmt.Errorf("%w: %q", plumbing.ErrInvalidReferenceName, tag)
	}
	if err := ref.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", err, tag)
	}
	return ref, nil
}

// TagExists reports whether a tag with exactly the given name exists in the
// local repository. Tags that merely share a prefix or match as a pattern do
// not count. A failure to run the query is returned as an error, never as
// false.
func TagExists(ctx context.Context, gitExe, tag string) (bool, error) {
	ref, err := TagRef(tag)
	if err != nil {
		return false, err
	}
	_, stderr, err := command.Output(ctx, gitExe, "show-ref", "--verify", "--quiet", ref.String())
	stderr = strings.TrimSpace(stderr)
	switch {
	case err == nil && stderr == "":
		return true, nil
	case err != nil && stderr == "" && !errors.Is(err, command.ErrNotStarted):
		// show-ref exits non-zero without diagnostics when the ref is missing.
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%w %s: %s", errTagLookup, tag, stderr)
	default:
		return false, fmt.Errorf("%w %s: %w\noutput: %s", errTagLookup, tag, err, stderr)
	}
}

// ListTags returns the names of all local tags.
func ListTags(ctx context.Context, gitExe string) ([]string, error) {
	stdout, stderr, err := command.Output(ctx, gitExe, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w\noutput: %s", err, stderr)
	}
	return strings.Fields(stdout), nil
}

// Tag creates a lightweight tag with the given name at HEAD.
func Tag(ctx context.Context, gitExe, tag string) error {
	if _, err := TagRef(tag); err != nil {
		return err
	}
	return command.Run(ctx, gitExe, "tag", tag)
}

// PushTags pushes all local tags to remote. An empty remote pushes to the
// default remote of the current branch.
func PushTags(ctx context.Context, gitExe, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
	}
	args = append(args, "--tags")
	return command.Run(ctx, gitExe, args...)
}

// CheckVersion checks that the git version command can run.
func CheckVersion(ctx context.Context, gitExe string) error {
	_, _, err := command.Output(ctx, gitExe, "--version")
	return err
}
