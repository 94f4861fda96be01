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

package report

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/sysreport/pkg/collector"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
	"github.com/NVIDIA/sysreport/pkg/serializer"
)

type textPayload string

func (p textPayload) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(p))
	return err
}

type fakeCollector struct {
	typ   measurement.Type
	data  measurement.Payload
	err   error
	calls *[]measurement.Type
}

func (c *fakeCollector) Type() measurement.Type { return c.typ }

func (c *fakeCollector) Collect(context.Context) (*measurement.Measurement, error) {
	if c.calls != nil {
		*c.calls = append(*c.calls, c.typ)
	}
	if c.err != nil {
		return nil, c.err
	}
	return &measurement.Measurement{Type: c.typ, Data: c.data}, nil
}

type fakeFactory struct {
	errs  map[measurement.Type]error
	calls []measurement.Type
}

func (f *fakeFactory) get(t measurement.Type) collector.Collector {
	return &fakeCollector{
		typ:   t,
		data:  textPayload(t.String() + " body\n"),
		err:   f.errs[t],
		calls: &f.calls,
	}
}

func (f *fakeFactory) CreateSystemCollector() collector.Collector   { return f.get(measurement.TypeSystem) }
func (f *fakeFactory) CreateBootCollector() collector.Collector     { return f.get(measurement.TypeBoot) }
func (f *fakeFactory) CreateCPUCollector() collector.Collector      { return f.get(measurement.TypeCPU) }
func (f *fakeFactory) CreateGPUCollector() collector.Collector      { return f.get(measurement.TypeGPU) }
func (f *fakeFactory) CreateMemoryCollector() collector.Collector   { return f.get(measurement.TypeMemory) }
func (f *fakeFactory) CreateDiskCollector() collector.Collector     { return f.get(measurement.TypeDisk) }
func (f *fakeFactory) CreateNetworkCollector() collector.Collector  { return f.get(measurement.TypeNetwork) }
func (f *fakeFactory) CreateRegistryCollector() collector.Collector { return f.get(measurement.TypeRegistry) }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("disk full")
}

func TestHeader(t *testing.T) {
	rule := strings.Repeat("=", 40)
	assert.Equal(t, "\n"+rule+" CPU Info "+rule, Header(measurement.TypeCPU))
}

func TestRun_TextSectionOrder(t *testing.T) {
	f := &fakeFactory{}
	var buf bytes.Buffer
	a := NewAssembler(f, WithOutput(&buf, serializer.FormatText))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, measurement.Types, f.calls)

	out := buf.String()
	last := -1
	for _, typ := range measurement.Types {
		idx := strings.Index(out, Header(typ)+"\n"+typ.String()+" body\n")
		require.GreaterOrEqual(t, idx, 0, "section %q missing", typ)
		assert.Greater(t, idx, last, "section %q out of order", typ)
		last = idx
	}
}

func TestRun_DegradedSectionContinues(t *testing.T) {
	f := &fakeFactory{errs: map[measurement.Type]error{
		measurement.TypeGPU:      errors.New(errors.ErrCodeCommandFailure, "nvidia-smi failed"),
		measurement.TypeRegistry: errors.New(errors.ErrCodeStoreAccess, "registry is not available"),
	}}
	m := NewMetrics()
	var buf bytes.Buffer
	a := NewAssembler(f, WithOutput(&buf, serializer.FormatText), WithMetrics(m))

	require.NoError(t, a.Run(context.Background()))
	assert.Len(t, f.calls, len(measurement.Types))

	out := buf.String()
	assert.Contains(t, out, Header(measurement.TypeGPU)+"\nNot available: [COMMAND_FAILURE] nvidia-smi failed\n")
	assert.Contains(t, out, Header(measurement.TypeMemory)+"\nMemory Information body\n")
	assert.Contains(t, out, Header(measurement.TypeRegistry)+"\nNot available: [STORE_ACCESS] registry is not available\n")

	assert.InDelta(t, 1, testutil.ToFloat64(m.sectionTotal.WithLabelValues(measurement.TypeGPU.String(), string(StatusDegraded))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.sectionTotal.WithLabelValues(measurement.TypeCPU.String(), string(StatusOK))), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.degradedCount), 0)
}

func TestRun_FatalErrorAborts(t *testing.T) {
	f := &fakeFactory{errs: map[measurement.Type]error{
		measurement.TypeCPU: errors.New(errors.ErrCodeDependencyUnavailable, "no sampler"),
	}}
	var buf bytes.Buffer
	a := NewAssembler(f, WithOutput(&buf, serializer.FormatText))

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	assert.Equal(t, []measurement.Type{measurement.TypeSystem, measurement.TypeBoot, measurement.TypeCPU}, f.calls)
	assert.NotContains(t, buf.String(), Header(measurement.TypeGPU))
}

func TestRun_WriteError(t *testing.T) {
	a := NewAssembler(&fakeFactory{}, WithOutput(failingWriter{}, serializer.FormatText))

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func fixedAssembler(f collector.Factory, opts ...Option) *Assembler {
	a := NewAssembler(f, opts...)
	a.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	a.newID = func() string { return "0f0e0d0c-0b0a-4908-8706-050403020100" }
	return a
}

func TestSnapshot(t *testing.T) {
	f := &fakeFactory{errs: map[measurement.Type]error{
		measurement.TypeDisk: errors.New(errors.ErrCodeQueryFailure, "partitions unavailable"),
	}}
	a := fixedAssembler(f, WithVersion("v1.2.3"))

	snap, err := a.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0f0e0d0c-0b0a-4908-8706-050403020100", snap.ID)
	assert.Equal(t, "v1.2.3", snap.Version)
	assert.Equal(t, 2026, snap.Timestamp.Year())
	require.Len(t, snap.Sections, len(measurement.Types))
	for i, sec := range snap.Sections {
		assert.Equal(t, measurement.Types[i], sec.Type)
	}

	degraded := snap.Degraded()
	require.Len(t, degraded, 1)
	assert.Equal(t, measurement.TypeDisk, degraded[0].Type)
	assert.Nil(t, degraded[0].Data)
	assert.Contains(t, degraded[0].Error, "partitions unavailable")
}

func TestSnapshot_RenderMatchesRun(t *testing.T) {
	f := &fakeFactory{errs: map[measurement.Type]error{
		measurement.TypeNetwork: errors.New(errors.ErrCodeCommandFailure, "ipconfig failed"),
	}}

	var streamed bytes.Buffer
	require.NoError(t, NewAssembler(f, WithOutput(&streamed, serializer.FormatText)).Run(context.Background()))

	snap, err := NewAssembler(f).Snapshot(context.Background())
	require.NoError(t, err)
	var rendered bytes.Buffer
	require.NoError(t, snap.Render(&rendered))

	assert.Equal(t, streamed.String(), rendered.String())
}

func TestRun_JSON(t *testing.T) {
	f := &fakeFactory{errs: map[measurement.Type]error{
		measurement.TypeGPU: errors.New(errors.ErrCodeCommandFailure, "nvidia-smi failed"),
	}}
	var buf bytes.Buffer
	a := fixedAssembler(f, WithVersion("dev"), WithOutput(&buf, serializer.FormatJSON))

	require.NoError(t, a.Run(context.Background()))

	var got struct {
		ID       string `json:"id"`
		Version  string `json:"version"`
		Sections []struct {
			Type   string `json:"type"`
			Status string `json:"status"`
			Error  string `json:"error"`
			Data   string `json:"data"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "0f0e0d0c-0b0a-4908-8706-050403020100", got.ID)
	assert.Equal(t, "dev", got.Version)
	require.Len(t, got.Sections, len(measurement.Types))
	assert.Equal(t, "System Information", got.Sections[0].Type)
	assert.Equal(t, "ok", got.Sections[0].Status)
	assert.Equal(t, "System Information body\n", got.Sections[0].Data)
	assert.Equal(t, "GPU Information", got.Sections[3].Type)
	assert.Equal(t, "degraded", got.Sections[3].Status)
	assert.Contains(t, got.Sections[3].Error, "nvidia-smi failed")
}

func TestRun_YAML(t *testing.T) {
	var buf bytes.Buffer
	a := fixedAssembler(&fakeFactory{}, WithOutput(&buf, serializer.FormatYAML))

	require.NoError(t, a.Run(context.Background()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "0f0e0d0c-0b0a-4908-8706-050403020100", got["id"])
	sections, ok := got["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, len(measurement.Types))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	m := NewMetrics()
	a := NewAssembler(&fakeFactory{}, WithOutput(io.Discard, serializer.FormatText), WithMetrics(m))
	require.NoError(t, a.Run(context.Background()))

	path := filepath.Join(t.TempDir(), "sysreport.prom")
	require.NoError(t, m.WriteToTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, "sysreport_section_total")
	assert.Contains(t, text, `section="Boot Time",status="ok"`)
	assert.Contains(t, text, "sysreport_report_duration_seconds_count 1")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestMetrics_WriteToTextfile_BadDir(t *testing.T) {
	m := NewMetrics()
	err := m.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "sysreport.prom"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
	assert.False(t, errors.IsFatal(err))
}
