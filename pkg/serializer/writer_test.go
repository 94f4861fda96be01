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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/sysreport/pkg/errors"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type rendered struct{}

func (rendered) Render(w io.Writer) error {
	_, err := io.WriteString(w, "custom text\n")
	return err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "table", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("xml").IsUnknown())
}

func TestNewWriter_UnknownDefaultsToText(t *testing.T) {
	w := NewWriter(Format("xml"), io.Discard)
	assert.Equal(t, FormatText, w.Format())
}

func TestWriter_Serialize(t *testing.T) {
	ctx := context.Background()
	v := sample{Name: "node", Count: 2}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(ctx, v))
		assert.Equal(t, "{\n  \"name\": \"node\",\n  \"count\": 2\n}\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(ctx, v))
		var got sample
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, v, got)
	})

	t.Run("text renderer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatText, &buf).Serialize(ctx, rendered{}))
		assert.Equal(t, "custom text\n", buf.String())
	})

	t.Run("text fallback", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatText, &buf).Serialize(ctx, v))
		assert.Equal(t, "{node 2}\n", buf.String())
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		var buf bytes.Buffer
		require.ErrorIs(t, NewWriter(FormatJSON, &buf).Serialize(cctx, v), context.Canceled)
		assert.Empty(t, buf.String())
	})
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		for _, p := range []string{"", "-", "  "} {
			w, err := NewFileWriterOrStdout(FormatJSON, p)
			require.NoError(t, err)
			assert.Same(t, os.Stdout, w.output)
			assert.NoError(t, w.Close())
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		w, err := NewFileWriterOrStdout(FormatJSON, path)
		require.NoError(t, err)
		require.NoError(t, w.Serialize(context.Background(), sample{Name: "a"}))
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		var got sample
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, "a", got.Name)
	})

	t.Run("unwritable", func(t *testing.T) {
		_, err := NewFileWriterOrStdout(FormatText, filepath.Join(t.TempDir(), "missing", "out.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsFatal(err))
	})
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.conf"))
}

func TestNewReader_TextUnsupported(t *testing.T) {
	_, err := NewReader(FormatText, bytes.NewReader(nil))
	require.Error(t, err)
	_, err = NewFileReader(FormatText, "x.txt")
	require.Error(t, err)
}

func TestReader_Deserialize(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		r, err := NewReader(FormatYAML, bytes.NewBufferString("name: x\ncount: 3\n"))
		require.NoError(t, err)
		var got sample
		require.NoError(t, r.Deserialize(&got))
		assert.Equal(t, sample{Name: "x", Count: 3}, got)
	})

	t.Run("unknown field", func(t *testing.T) {
		r, err := NewReader(FormatYAML, bytes.NewBufferString("nmae: x\n"))
		require.NoError(t, err)
		var got sample
		assert.Error(t, r.Deserialize(&got))
	})

	t.Run("empty input keeps value", func(t *testing.T) {
		r, err := NewReader(FormatJSON, bytes.NewReader(nil))
		require.NoError(t, err)
		got := sample{Name: "keep"}
		require.NoError(t, r.Deserialize(&got))
		assert.Equal(t, "keep", got.Name)
	})

	t.Run("nil reader", func(t *testing.T) {
		var r *Reader
		assert.Error(t, r.Deserialize(&sample{}))
		assert.NoError(t, r.Close())
	})
}

func TestNewFileReaderAuto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"count":7}`), 0o600))

	r, err := NewFileReaderAuto(path)
	require.NoError(t, err)
	got := sample{Name: "kept"}
	require.NoError(t, r.Deserialize(&got))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, sample{Name: "kept", Count: 7}, got)

	_, err = NewFileReaderAuto(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatText, &buf)
	n, err := io.WriteString(w, "raw\n")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "raw\n", buf.String())
}
