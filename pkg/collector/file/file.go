// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Option configures a Reader.
type Option func(*Reader)

// Reader reads small line-oriented files.
type Reader struct {
	root         string
	maxSize      int
	skipComments bool
}

// WithRoot prefixes every path with root.
// Default is no prefix.
func WithRoot(root string) Option {
	return func(r *Reader) {
		r.root = root
	}
}

// WithMaxSize sets the maximum size (in bytes) of a file.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(r *Reader) {
		r.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with "#" are dropped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(r *Reader) {
		r.skipComments = skip
	}
}

// NewReader creates a Reader with the provided options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxSize:      1 << 20,
		skipComments: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) resolve(path string) string {
	if r.root == "" {
		return path
	}
	return filepath.Join(r.root, path)
}

// GetLines returns the trimmed, non-empty lines of the file at path.
func (r *Reader) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	full := r.resolve(path)
	b, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", full, err)
	}

	if len(b) > r.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", full, r.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", full)
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		if r.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result, nil
}

// ReadValue returns the first non-empty line of the file at path.
func (r *Reader) ReadValue(path string) (string, error) {
	lines, err := r.GetLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("file %q is empty", r.resolve(path))
	}
	return lines[0], nil
}

// ReadUint parses the first line of the file at path as a decimal integer.
func (r *Reader) ReadUint(path string) (uint64, error) {
	v, err := r.ReadValue(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		slog.Debug("non-numeric file content", slog.String("path", path), slog.String("value", v))
		return 0, fmt.Errorf("failed to parse %q from %q: %w", v, r.resolve(path), err)
	}
	return n, nil
}
