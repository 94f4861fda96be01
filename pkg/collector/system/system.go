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

package system

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

var (
	hostInfoWithContext = host.InfoWithContext
	cpuInfoWithContext  = cpu.InfoWithContext

	titleCaser = cases.Title(language.English)
)

// Info is the system section payload.
type Info struct {
	System    string `json:"system" yaml:"system"`
	NodeName  string `json:"node_name" yaml:"node_name"`
	Release   string `json:"release" yaml:"release"`
	Version   string `json:"version" yaml:"version"`
	Machine   string `json:"machine" yaml:"machine"`
	Processor string `json:"processor" yaml:"processor"`
}

// Render writes one line per field.
func (i *Info) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"System: %s\nNode Name: %s\nRelease: %s\nVersion: %s\nMachine: %s\nProcessor: %s\n",
		i.System, i.NodeName, i.Release, i.Version, i.Machine, i.Processor)
	return err
}

// Collector reads the OS identity.
type Collector struct{}

// Type returns measurement.TypeSystem.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeSystem
}

// Collect returns the host identity. A failing processor lookup leaves
// Processor empty.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hi, err := hostInfoWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to read host information", err)
	}

	info := &Info{
		System:   titleCaser.String(hi.OS),
		NodeName: hi.Hostname,
		Release:  hi.KernelVersion,
		Version:  hi.PlatformVersion,
		Machine:  hi.KernelArch,
	}

	cpus, err := cpuInfoWithContext(ctx)
	switch {
	case err != nil:
		slog.Debug("failed to read processor information", slog.String("error", err.Error()))
	case len(cpus) > 0:
		info.Processor = cpus[0].ModelName
	}

	return &measurement.Measurement{
		Type: measurement.TypeSystem,
		Data: info,
	}, nil
}
