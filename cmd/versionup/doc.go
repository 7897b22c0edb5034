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
Versionup increments the patch version of a package manifest.

Usage:

	versionup [--manifest <file>] [--dry-run]

It reads the "version" field of the manifest (package.json by default),
increments the last dot-separated segment, and rewrites the manifest in place
with 4-space indentation. Other fields keep their values and order. On
success it prints:

	Package version incremented to: 2.1.6

OPTIONS:

	--manifest file  path of the package manifest file
	--config file    path of the optional configuration file (default: .pkgrelease.yaml)
	--dry-run        report what would change without modifying anything
	--verbose, -v    enable debug logging and print executed commands
	--help, -h       show help
*/
package main
