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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name             string
		opts             []Option
		wantRoot         string
		wantMaxSize      int
		wantSkipComments bool
	}{
		{"defaults", nil, "", 1 << 20, true},
		{"root", []Option{WithRoot("/tmp/x")}, "/tmp/x", 1 << 20, true},
		{"max size", []Option{WithMaxSize(10)}, "", 10, true},
		{"keep comments", []Option{WithSkipComments(false)}, "", 1 << 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.opts...)
			assert.Equal(t, tt.wantRoot, r.root)
			assert.Equal(t, tt.wantMaxSize, r.maxSize)
			assert.Equal(t, tt.wantSkipComments, r.skipComments)
		})
	}
}

func TestGetLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/proc/sample", "# header\n\n  alpha  \nbeta\n\n")

	lines, err := NewReader(WithRoot(root)).GetLines("/proc/sample")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, lines)

	lines, err = NewReader(WithRoot(root), WithSkipComments(false)).GetLines("/proc/sample")
	require.NoError(t, err)
	assert.Equal(t, []string{"# header", "alpha", "beta"}, lines)
}

func TestGetLines_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big", strings.Repeat("x", 64))
	writeFile(t, root, "binary", "\xff\xfe\xfd")

	r := NewReader(WithRoot(root), WithMaxSize(16))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", "cannot be empty"},
		{"missing", "nope", "failed to read file"},
		{"too large", "big", "exceeds maximum size"},
		{"invalid utf8", "binary", "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.GetLines(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadUint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/sys/freq", "2904000\n")
	writeFile(t, root, "/sys/empty", "\n\n")
	writeFile(t, root, "/sys/text", "<unknown>\n")

	r := NewReader(WithRoot(root))

	n, err := r.ReadUint("/sys/freq")
	require.NoError(t, err)
	assert.Equal(t, uint64(2904000), n)

	_, err = r.ReadUint("/sys/empty")
	assert.ErrorContains(t, err, "is empty")

	_, err = r.ReadUint("/sys/text")
	assert.ErrorContains(t, err, "failed to parse")
}
