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

// Package semver provides the version arithmetic used when releasing a
// package: incrementing the patch segment of a dotted version and ordering
// version tags.
package semver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a version string is not a non-empty
// sequence of non-negative integers separated by ".".
var ErrInvalidVersion = errors.New("invalid version format")

// IncrementPatch adds one to the last dot-separated segment of version and
// leaves the preceding segments untouched, so "1.2.3" becomes "1.2.4" and
// "0.0.9" becomes "0.0.10".
func IncrementPatch(version string) (string, error) {
	segments, err := split(version)
	if err != nil {
		return "", err
	}
	last := len(segments) - 1
	patch, err := strconv.ParseUint(segments[last], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidVersion, version, err)
	}
	if patch == math.MaxUint64 {
		return "", fmt.Errorf("%w: %q: patch segment overflows", ErrInvalidVersion, version)
	}
	segments[last] = strconv.FormatUint(patch+1, 10)
	return strings.Join(segments, "."), nil
}

// Validate returns an error wrapping [ErrInvalidVersion] if version is not a
// dotted numeric version.
func Validate(version string) error {
	_, err := split(version)
	return err
}

func split(version string) ([]string, error) {
	if version == "" {
		return nil, fmt.Errorf("%w: empty version", ErrInvalidVersion)
	}
	segments := strings.Split(version, ".")
	for _, s := range segments {
		if s == "" || strings.TrimLeft(s, "0123456789") != "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
	}
	return segments, nil
}

// Latest returns the highest of the given tags that is a valid semantic
// version with a "v" prefix, as understood by [semver.Compare]. Tags that are
// not semantic versions are ignored. It returns "" if none qualify.
func Latest(tags []string) string {
	var latest string
	for _, tag := range tags {
		if !semver.IsValid(tag) {
			continue
		}
		if latest == "" || semver.Compare(tag, latest) > 0 {
			latest = tag
		}
	}
	return latest
}

// Newer reports whether tag sorts strictly after previous. Both must be valid
// semantic versions with a "v" prefix; otherwise the comparison is not
// meaningful and ok is false.
func Newer(tag, previous string) (newer, ok bool) {
	if !semver.IsValid(tag) || !semver.IsValid(previous) {
		return false, false
	}
	return semver.Compare(tag, previous) > 0, true
}
