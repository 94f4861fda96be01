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
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/sysreport/pkg/collector"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/serializer"
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithVersion sets the tool version recorded in snapshots.
func WithVersion(v string) Option {
	return func(a *Assembler) {
		a.version = v
	}
}

// WithOutput sets the destination and format of the report.
func WithOutput(w io.Writer, f serializer.Format) Option {
	return func(a *Assembler) {
		a.out = w
		a.format = f
	}
}

// WithMetrics sets the metrics the assembler records to.
func WithMetrics(m *Metrics) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// Assembler runs collectors in report order and writes the result.
type Assembler struct {
	factory collector.Factory
	version string
	out     io.Writer
	format  serializer.Format
	metrics *Metrics

	now   func() time.Time
	newID func() string
}

// NewAssembler creates an Assembler over the collectors of f. A nil factory
// selects collector.NewDefaultFactory. Output defaults to text on stdout.
func NewAssembler(f collector.Factory, opts ...Option) *Assembler {
	if f == nil {
		f = collector.NewDefaultFactory()
	}
	a := &Assembler{
		factory: f,
		out:     os.Stdout,
		format:  serializer.FormatText,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run writes the report. Collector failures degrade their section and the
// run continues; only a fatal collector error or an output write error is
// returned.
func (a *Assembler) Run(ctx context.Context) error {
	if a.format != serializer.FormatText {
		snap, err := a.Snapshot(ctx)
		if err != nil {
			return err
		}
		return serializer.NewWriter(a.format, a.out).Serialize(ctx, snap)
	}

	return a.collect(ctx, func(sec *Section) error {
		return writeHeader(a.out, sec.Type)
	}, func(sec *Section) error {
		return sec.renderBody(a.out)
	})
}

// Snapshot collects every section without writing anything.
func (a *Assembler) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        a.newID(),
		Timestamp: a.now().UTC(),
		Version:   a.version,
	}
	err := a.collect(ctx, nil, func(sec *Section) error {
		snap.Sections = append(snap.Sections, sec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("snapshot collected",
		slog.String("id", snap.ID),
		slog.Int("degraded", len(snap.Degraded())))
	return snap, nil
}

// collect runs the collectors in order. before is called ahead of each
// collection and after with its result.
func (a *Assembler) collect(ctx context.Context, before, after func(*Section) error) error {
	slog.Debug("starting report", slog.String("format", string(a.format)))

	start := time.Now()
	degraded := 0
	defer func() {
		a.metrics.observeReport(degraded, time.Since(start))
	}()

	for _, c := range collector.All(a.factory) {
		sec := &Section{Type: c.Type()}
		if before != nil {
			if err := before(sec); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, "failed to write report", err)
			}
		}

		if err := a.collectSection(ctx, c, sec); err != nil {
			return err
		}
		if sec.Status == StatusDegraded {
			degraded++
		}

		if err := after(sec); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to write report", err)
		}
	}

	slog.Debug("report complete", slog.Int("degraded", degraded))
	return nil
}

func (a *Assembler) collectSection(ctx context.Context, c collector.Collector, sec *Section) error {
	sectionStart := time.Now()
	m, err := c.Collect(ctx)
	elapsed := time.Since(sectionStart)

	switch {
	case err != nil && errors.IsFatal(err):
		a.metrics.observeSection(sec.Type, StatusDegraded, elapsed)
		slog.Error("section dependency unavailable",
			slog.String("section", sec.Type.String()),
			slog.String("error", err.Error()))
		return err
	case err != nil:
		sec.Status = StatusDegraded
		sec.Error = err.Error()
		slog.Warn("section degraded",
			slog.String("section", sec.Type.String()),
			slog.String("code", string(errors.CodeOf(err))),
			slog.String("error", err.Error()))
	default:
		sec.Status = StatusOK
		if m != nil {
			sec.Data = m.Data
		}
	}

	a.metrics.observeSection(sec.Type, sec.Status, elapsed)
	slog.Debug("section collected",
		slog.String("section", sec.Type.String()),
		slog.String("status", string(sec.Status)),
		slog.Duration("duration", elapsed))
	return nil
}
