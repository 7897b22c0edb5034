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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/googleapis/pkgrelease/internal/manifest"
	"github.com/googleapis/pkgrelease/internal/semver"
	"github.com/googleapis/pkgrelease/internal/testhelper"
)

const bumpedManifest = `{
    "name": "react-awesome",
    "version": "2.1.6",
    "main": "index.js",
    "scripts": {
        "test": "mocha && eslint ."
    },
    "license": "MIT"
}
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), testhelper.ManifestFile)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestBump(t *testing.T) {
	path := writeManifest(t, testhelper.ManifestContents)
	got, err := Bump(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("2.1.6", got.Version); diff != "" {
		t.Errorf("version mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bumpedManifest, readFile(t, path)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestBump_Twice(t *testing.T) {
	path := writeManifest(t, `{"version": "1.0.0"}`)
	var got []string
	for range 2 {
		m, err := Bump(path)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, m.Version)
	}
	if diff := cmp.Diff([]string{"1.0.1", "1.0.2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("{\n    \"version\": \"1.0.2\"\n}", readFile(t, path)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestBump_InvalidVersion(t *testing.T) {
	const contents = `{"name": "react-awesome", "version": "2.1.x"}`
	path := writeManifest(t, contents)
	if _, err := Bump(path); !errors.Is(err, semver.ErrInvalidVersion) {
		t.Fatalf("Bump() = %v, want %v", err, semver.ErrInvalidVersion)
	}
	if diff := cmp.Diff(contents, readFile(t, path)); diff != "" {
		t.Errorf("manifest should be unchanged (-want +got):\n%s", diff)
	}
}

func TestBump_MissingManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), testhelper.ManifestFile)
	if _, err := Bump(path); !errors.Is(err, manifest.ErrRead) {
		t.Fatalf("Bump() = %v, want %v", err, manifest.ErrRead)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Bump() should not create %s, stat error: %v", path, err)
	}
}

func TestVersionUpCommand(t *testing.T) {
	for _, test := range []struct {
		name         string
		args         []string
		wantOutput   string
		wantManifest string
	}{
		{
			name:         "default manifest",
			args:         []string{"versionup"},
			wantOutput:   "Package version incremented to: 2.1.6\n",
			wantManifest: bumpedManifest,
		},
		{
			name:         "dry run",
			args:         []string{"versionup", "--dry-run"},
			wantOutput:   "Package version would be incremented to: 2.1.6\n",
			wantManifest: testhelper.ManifestContents,
		},
		{
			name:         "verbose",
			args:         []string{"versionup", "-v"},
			wantOutput:   "Package version incremented to: 2.1.6\n",
			wantManifest: bumpedManifest,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			if err := os.WriteFile(testhelper.ManifestFile, []byte(testhelper.ManifestContents), 0644); err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			cmd := newVersionUpCommand()
			cmd.Writer = &out
			if err := cmd.Run(t.Context(), test.args); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.wantOutput, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantManifest, readFile(t, testhelper.ManifestFile)); diff != "" {
				t.Errorf("manifest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersionUpCommand_ManifestFromConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("web", 0755); err != nil {
		t.Fatal(err)
	}
	manifestPath := filepath.Join("web", testhelper.ManifestFile)
	if err := os.WriteFile(manifestPath, []byte(testhelper.ManifestContents), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(".pkgrelease.yaml", []byte("manifest: web/package.json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := RunVersionUp(t.Context(), "versionup"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bumpedManifest, readFile(t, manifestPath)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionUpCommand_ManifestFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(".pkgrelease.yaml", []byte("manifest: does-not-exist.json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path := writeManifest(t, testhelper.ManifestContents)
	if err := RunVersionUp(t.Context(), "versionup", "--manifest", path); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bumpedManifest, readFile(t, path)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionUpCommand_Errors(t *testing.T) {
	for _, test := range []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "missing manifest",
			args:    []string{"versionup", "--manifest", "missing.json"},
			wantErr: manifest.ErrRead,
		},
		{
			name:    "positional argument",
			args:    []string{"versionup", "package.json"},
			wantErr: errUnexpectedArgs,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			if err := RunVersionUp(t.Context(), test.args...); !errors.Is(err, test.wantErr) {
				t.Errorf("RunVersionUp() = %v, want %v", err, test.wantErr)
			}
		})
	}
}
