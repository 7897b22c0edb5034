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

// Package testhelper provides helper functions for tests.
// These are used across packages
package testhelper

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/googleapis/pkgrelease/internal/command"
)

const (
	// ManifestFile is the local file path of the manifest initialized in the
	// test repository.
	ManifestFile = "package.json"

	// ManifestContents is a typical package.json at version 2.1.5.
	ManifestContents = `{
  "name": "react-awesome",
  "version": "2.1.5",
  "main": "index.js",
  "scripts": {
    "test": "mocha && eslint ."
  },
  "license": "MIT"
}
`
)

// RequireCommand skips the test if the specified command is not found in PATH.
// Use this to skip tests that depend on external tools like git, so that
// `go test ./...` will always pass on a fresh clone of the repo.
func RequireCommand(t *testing.T, cmd string) {
	t.Helper()
	if _, err := exec.LookPath(cmd); err != nil {
		t.Skipf("skipping test because %s is not installed", cmd)
	}
}

// ContinueInNewGitRepository initializes a new git repository in a temporary directory
// and changes the current working directory to it.
func ContinueInNewGitRepository(t *testing.T, tmpDir string) {
	t.Helper()
	RequireCommand(t, "git")
	t.Chdir(tmpDir)
	run(t, "git", "init", "-b", "main")
	configNewGitRepository(t)
}

func configNewGitRepository(t *testing.T) {
	t.Helper()
	run(t, "git", "config", "user.email", "test@test-only.com")
	run(t, "git", "config", "user.name", "Test Account")
	run(t, "git", "config", "commit.gpgSign", "false")
	run(t, "git", "config", "tag.gpgSign", "false")
}

// SetupRepository creates a bare repository to act as the remote, and a clone
// of it containing a committed manifest with the given contents. The working
// directory is changed to the clone. It returns the path of the bare remote.
func SetupRepository(t *testing.T, manifestContents string) string {
	t.Helper()
	RequireCommand(t, "git")
	remoteDir := t.TempDir()
	run(t, "git", "init", "--bare", "-b", "main", remoteDir)

	ContinueInNewGitRepository(t, t.TempDir())
	if err := os.WriteFile(ManifestFile, []byte(manifestContents), 0644); err != nil {
		t.Fatal(err)
	}
	run(t, "git", "add", ManifestFile)
	run(t, "git", "commit", "-m", "chore: initial commit")
	run(t, "git", "remote", "add", "origin", remoteDir)
	run(t, "git", "push", "-u", "origin", "main")
	return remoteDir
}

// AddTag creates a lightweight tag at HEAD of the repository in the working
// directory.
func AddTag(t *testing.T, tag string) {
	t.Helper()
	run(t, "git", "tag", tag)
}

// LocalTags returns the tags of the repository in the working directory.
func LocalTags(t *testing.T) []string {
	t.Helper()
	return tags(t, "git", "tag", "--list")
}

// RemoteTags returns the tags of the bare repository at remoteDir.
func RemoteTags(t *testing.T, remoteDir string) []string {
	t.Helper()
	return tags(t, "git", "--git-dir", remoteDir, "tag", "--list")
}

func tags(t *testing.T, name string, arg ...string) []string {
	t.Helper()
	stdout, stderr, err := command.Output(t.Context(), name, arg...)
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	return strings.Fields(stdout)
}

func run(t *testing.T, name string, arg ...string) {
	t.Helper()
	if _, stderr, err := command.Output(t.Context(), name, arg...); err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
}
