// Copyright 2026 Google LLC
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

// Package manifest reads and writes package manifests such as package.json.
//
// Only the top-level "version" field is interpreted. Every other field is
// carried through unchanged and in its original order, so rewriting a
// manifest only changes its version and its indentation.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
)

const (
	versionKey = "version"
	nameKey    = "name"

	// indent is the indentation used when writing manifests.
	indent = "    "
)

// utf8BOM is dropped from the start of a manifest when reading it.
var utf8BOM = []byte("\xef\xbb\xbf")

var (
	// ErrRead is included in any error returned by [Read].
	ErrRead = errors.New("failed to read manifest")

	// ErrWrite is included in any error returned by [Write].
	ErrWrite = errors.New("failed to write manifest")

	errNotObject      = errors.New("manifest is not a JSON object")
	errInvalidJSON    = errors.New("manifest is not valid JSON")
	errMissingVersion = errors.New(`manifest has no "version" field`)
	errVersionType    = errors.New(`manifest "version" field is not a string`)
)

// Manifest is a parsed package manifest.
type Manifest struct {
	// Name is the top-level "name" field, if present.
	Name string

	// Version is the top-level "version" field. Changing it changes what
	// [Write] persists.
	Version string

	doc             []byte
	trailingNewline bool
}

// Read parses the manifest at path. It fails if the file does not exist,
// is not a JSON object, or lacks a string "version" field. It never creates
// the file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return m, nil
}

func parse(data []byte) (*Manifest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !json.Valid(data) {
		return nil, errInvalidJSON
	}
	doc := bytes.TrimSpace(data)
	if len(doc) == 0 || doc[0] != '{' {
		return nil, errNotObject
	}
	if err := checkUniqueKeys(doc); err != nil {
		return nil, err
	}
	value, dataType, _, err := jsonparser.Get(doc, versionKey)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || dataType == jsonparser.NotExist {
		return nil, errMissingVersion
	}
	if err != nil {
		return nil, err
	}
	if dataType != jsonparser.String {
		return nil, errVersionType
	}
	version, err := jsonparser.ParseString(value)
	if err != nil {
		return nil, err
	}
	m := &Manifest{
		Version:         version,
		doc:             doc,
		trailingNewline: bytes.HasSuffix(data, []byte("\n")),
	}
	if name, err := jsonparser.GetString(doc, nameKey); err == nil {
		m.Name = name
	}
	return m, nil
}

// checkUniqueKeys fails if a top-level key appears more than once, since
// only the first occurrence would be read and rewritten.
func checkUniqueKeys(doc []byte) error {
	seen := map[string]bool{}
	return jsonparser.ObjectEach(doc, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate key %q", errInvalidJSON, k)
		}
		seen[k] = true
		return nil
	})
}

// Marshal serializes the manifest with its fields in their original order,
// indented with four spaces.
func (m *Manifest) Marshal() ([]byte, error) {
	var version bytes.Buffer
	enc := json.NewEncoder(&version)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m.Version); err != nil {
		return nil, err
	}
	doc, err := jsonparser.Set(m.doc, bytes.TrimSpace(version.Bytes()), versionKey)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", indent); err != nil {
		return nil, err
	}
	if m.trailingNewline {
		buf.WriteByte('\n')
	}
	m.doc = doc
	return buf.Bytes(), nil
}

// Write serializes m and overwrites the file at path with the result. The
// write is not atomic and no backup is kept.
func Write(path string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
