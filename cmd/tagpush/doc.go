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

/*
Tagpush tags the current package version in git and pushes all tags.

Usage:

	tagpush [--manifest <file>] [--remote <name>] [--dry-run]

The tag name is "v" followed by the manifest version, or the rendering of
tag_format from .pkgrelease.yaml. Tagpush fails without creating or pushing
anything if the tag already exists. On success it prints:

	Tag on git done!

Configuration (.pkgrelease.yaml, all fields optional):

	manifest: package.json
	tag_format: v{{version}}
	remote: origin
	preinstalled:
	  git: /usr/bin/git

OPTIONS:

	--manifest file  path of the package manifest file
	--config file    path of the optional configuration file (default: .pkgrelease.yaml)
	--remote remote  git remote to push tags to (default: the current branch's remote)
	--dry-run        report what would change without modifying anything
	--verbose, -v    enable debug logging and print executed commands
	--help, -h       show help
*/
package main
