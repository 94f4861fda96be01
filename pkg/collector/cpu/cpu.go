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

package cpu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/NVIDIA/sysreport/pkg/collector/file"
	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

const (
	cpuMaxFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq"
	cpuMinFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_min_freq"
	cpuCurFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"

	khzPerMhz = 1000
)

var (
	infoWithContext    = cpu.InfoWithContext
	percentWithContext = cpu.PercentWithContext
)

// Info is the CPU section payload.
type Info struct {
	MaxMhz     float64   `json:"max_mhz" yaml:"max_mhz"`
	MinMhz     float64   `json:"min_mhz" yaml:"min_mhz"`
	CurrentMhz float64   `json:"current_mhz" yaml:"current_mhz"`
	PerCore    []float64 `json:"per_core_percent" yaml:"per_core_percent"`
	Total      float64   `json:"total_percent" yaml:"total_percent"`
}

// Render writes frequencies followed by per-core and total usage.
func (i *Info) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w,
		"Max Frequency: %.2fMhz\nMin Frequency: %.2fMhz\nCurrent Frequency: %.2fMhz\nCPU Usage Per Core:\n",
		i.MaxMhz, i.MinMhz, i.CurrentMhz); err != nil {
		return err
	}
	for n, pct := range i.PerCore {
		if _, err := fmt.Fprintf(w, "Core %d: %.1f%%\n", n, pct); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total CPU Usage: %.1f%%\n", i.Total)
	return err
}

// Collector reads CPU frequencies and utilization.
type Collector struct {
	SampleInterval time.Duration
	// Reader reads cpufreq entries. Nil uses the host filesystem.
	Reader *file.Reader
}

// Type returns measurement.TypeCPU.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeCPU
}

// Collect samples utilization for SampleInterval and reads frequencies.
// Frequencies that cannot be read are reported as zero.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interval := c.SampleInterval
	if interval <= 0 {
		interval = defaults.CPUSampleInterval
	}

	reader := c.Reader
	if reader == nil {
		reader = file.NewReader()
	}

	info := &Info{}

	var ratedMhz float64
	cpus, err := infoWithContext(ctx)
	switch {
	case err != nil:
		slog.Debug("failed to read cpu information", slog.String("error", err.Error()))
	case len(cpus) > 0:
		ratedMhz = cpus[0].Mhz
	}

	info.MaxMhz = readMhz(reader, cpuMaxFreqPath, ratedMhz)
	info.MinMhz = readMhz(reader, cpuMinFreqPath, 0)
	info.CurrentMhz = readMhz(reader, cpuCurFreqPath, ratedMhz)

	perCore, err := percentWithContext(ctx, interval, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to sample cpu usage", err)
	}
	info.PerCore = perCore
	info.Total = mean(perCore)

	slog.Debug("collected cpu information",
		slog.Int("cores", len(perCore)),
		slog.Float64("total", info.Total))

	return &measurement.Measurement{
		Type: measurement.TypeCPU,
		Data: info,
	}, nil
}

// readMhz reads a kHz cpufreq entry, or returns fallback when it is missing.
func readMhz(r *file.Reader, path string, fallback float64) float64 {
	khz, err := r.ReadUint(path)
	if err != nil {
		return fallback
	}
	return float64(khz) / khzPerMhz
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
