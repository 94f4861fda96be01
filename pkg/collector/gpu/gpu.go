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

package gpu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
	"github.com/NVIDIA/sysreport/pkg/runner"
)

// NoGPUNotice replaces the table when no GPU could be listed.
const NoGPUNotice = "No GPUs found or an error occurred while retrieving GPU information."

const fieldCount = 7

var headers = [fieldCount]string{"ID", "Name", "Load", "Total Memory", "Used Memory", "Free Memory", "Temperature"}

// Device is one row of the query output.
type Device struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Load        string `json:"load" yaml:"load"`
	TotalMemory string `json:"total_memory" yaml:"total_memory"`
	UsedMemory  string `json:"used_memory" yaml:"used_memory"`
	FreeMemory  string `json:"free_memory" yaml:"free_memory"`
	Temperature string `json:"temperature" yaml:"temperature"`
}

func (d Device) cells() [fieldCount]string {
	return [fieldCount]string{d.ID, d.Name, d.Load, d.TotalMemory, d.UsedMemory, d.FreeMemory, d.Temperature}
}

// Info is the GPU section payload.
type Info struct {
	Devices []Device `json:"devices" yaml:"devices"`
}

// Render writes the device table, or NoGPUNotice when there are no devices.
func (i *Info) Render(w io.Writer) error {
	if len(i.Devices) == 0 {
		_, err := fmt.Fprintln(w, NoGPUNotice)
		return err
	}

	var rule [fieldCount]string
	for c, h := range headers {
		rule[c] = strings.Repeat("-", len(h))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers[:], "\t"))
	fmt.Fprintln(tw, strings.Join(rule[:], "\t"))
	for _, d := range i.Devices {
		cells := d.cells()
		fmt.Fprintln(tw, strings.Join(cells[:], "\t"))
	}
	return tw.Flush()
}

// Parse reads CSV rows without a header. Rows with fewer than seven fields
// are skipped.
func Parse(out string) []Device {
	devices := make([]Device, 0)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		f := strings.Split(line, ",")
		if len(f) < fieldCount {
			slog.Debug("skipping malformed gpu row", slog.String("line", line))
			continue
		}
		for n := range f {
			f[n] = strings.TrimSpace(f[n])
		}
		devices = append(devices, Device{
			ID:          f[0],
			Name:        f[1],
			Load:        f[2],
			TotalMemory: f[3],
			UsedMemory:  f[4],
			FreeMemory:  f[5],
			Temperature: f[6],
		})
	}
	return devices
}

// Collector queries GPUs through Runner.
type Collector struct {
	Runner  runner.Runner
	Command string
}

// Type returns measurement.TypeGPU.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeGPU
}

// Collect runs the GPU query. A failing command yields an empty device list.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "gpu collector requires a runner")
	}

	cmd := c.Command
	if cmd == "" {
		cmd = defaults.GPUQueryCommand
	}

	info := &Info{Devices: []Device{}}

	out, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		slog.Debug("gpu query failed, reporting no gpus", slog.String("error", err.Error()))
		return &measurement.Measurement{Type: measurement.TypeGPU, Data: info}, nil
	}

	info.Devices = Parse(out)
	slog.Debug("collected gpu information", slog.Int("count", len(info.Devices)))

	return &measurement.Measurement{
		Type: measurement.TypeGPU,
		Data: info,
	}, nil
}
