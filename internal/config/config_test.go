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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	for _, test := range []struct {
		name     string
		contents string
		want     *Config
	}{
		{
			name: "all fields",
			contents: `manifest: web/package.json
tag_format: "{{name}}-v{{version}}"
remote: upstream
preinstalled:
  git: /usr/local/bin/git
`,
			want: &Config{
				Manifest:     "web/package.json",
				TagFormat:    "{{name}}-v{{version}}",
				Remote:       "upstream",
				Preinstalled: map[string]string{"git": "/usr/local/bin/git"},
			},
		},
		{
			name:     "empty file",
			contents: "",
			want:     &Config{},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			if err := os.WriteFile(path, []byte(test.contents), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Config{}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() should not create %s, stat error: %v", path, err)
	}
}

func TestRead_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	_, err := Read(path)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("Read() = %v, want %v", err, ErrRead)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() = %v, want %v", err, os.ErrNotExist)
	}
}

func TestLoad_Error(t *testing.T) {
	for _, test := range []struct {
		name     string
		contents string
	}{
		{"invalid yaml", "manifest: [package.json"},
		{"unknown field", "tag-format: v{{version}}\n"},
		{"wrong type", "preinstalled: git\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			if err := os.WriteFile(path, []byte(test.contents), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrRead) {
				t.Errorf("Load() = %v, want %v", err, ErrRead)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	for _, test := range []struct {
		name string
		cfg  *Config
		want *Config
	}{
		{
			name: "empty",
			cfg:  &Config{},
			want: &Config{Manifest: DefaultManifest, TagFormat: DefaultTagFormat},
		},
		{
			name: "keeps configured values",
			cfg:  &Config{Manifest: "lib/package.json", TagFormat: "release-{{version}}", Remote: "upstream"},
			want: &Config{Manifest: "lib/package.json", TagFormat: "release-{{version}}", Remote: "upstream"},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			test.cfg.SetDefaults()
			if diff := cmp.Diff(test.want, test.cfg); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  &Config{Manifest: DefaultManifest, TagFormat: DefaultTagFormat},
		},
		{
			name: "name in tag format",
			cfg:  &Config{Manifest: DefaultManifest, TagFormat: "{{name}}@{{version}}"},
		},
		{
			name:    "tag format without version",
			cfg:     &Config{Manifest: DefaultManifest, TagFormat: "latest"},
			wantErr: true,
		},
		{
			name:    "empty manifest",
			cfg:     &Config{TagFormat: DefaultTagFormat},
			wantErr: true,
		},
		{
			name: "empty preinstalled path",
			cfg: &Config{
				Manifest:     DefaultManifest,
				TagFormat:    DefaultTagFormat,
				Preinstalled: map[string]string{"git": ""},
			},
			wantErr: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			if !test.wantErr {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestGitExecutable(t *testing.T) {
	for _, test := range []struct {
		name string
		cfg  *Config
		want string
	}{
		{"default", &Config{}, "git"},
		{"preinstalled", &Config{Preinstalled: map[string]string{"git": "/opt/git/bin/git"}}, "/opt/git/bin/git"},
	} {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, test.cfg.GitExecutable()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
