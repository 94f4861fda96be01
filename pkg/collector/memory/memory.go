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

package memory

import (
	"context"
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/NVIDIA/sysreport/pkg/bytesize"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

const swapSeparator = "==================== SWAP ===================="

var (
	virtualMemoryWithContext = mem.VirtualMemoryWithContext
	swapMemoryWithContext    = mem.SwapMemoryWithContext
)

// Virtual is the physical memory usage.
type Virtual struct {
	Total       uint64  `json:"total" yaml:"total"`
	Available   uint64  `json:"available" yaml:"available"`
	Used        uint64  `json:"used" yaml:"used"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
}

// Swap is the swap or page file usage.
type Swap struct {
	Total       uint64  `json:"total" yaml:"total"`
	Free        uint64  `json:"free" yaml:"free"`
	Used        uint64  `json:"used" yaml:"used"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
}

// Info is the memory section payload.
type Info struct {
	Virtual Virtual `json:"virtual" yaml:"virtual"`
	Swap    Swap    `json:"swap" yaml:"swap"`
}

// Render writes virtual memory usage, a separator and swap usage.
func (i *Info) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Total: %s\nAvailable: %s\nUsed: %s\nPercentage: %.1f%%\n%s\nTotal: %s\nFree: %s\nUsed: %s\nPercentage: %.1f%%\n",
		bytesize.Format(i.Virtual.Total),
		bytesize.Format(i.Virtual.Available),
		bytesize.Format(i.Virtual.Used),
		i.Virtual.UsedPercent,
		swapSeparator,
		bytesize.Format(i.Swap.Total),
		bytesize.Format(i.Swap.Free),
		bytesize.Format(i.Swap.Used),
		i.Swap.UsedPercent)
	return err
}

// Collector reads memory usage.
type Collector struct{}

// Type returns measurement.TypeMemory.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeMemory
}

// Collect returns virtual memory and swap usage.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm, err := virtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to read virtual memory", err)
	}

	sw, err := swapMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to read swap memory", err)
	}

	return &measurement.Measurement{
		Type: measurement.TypeMemory,
		Data: &Info{
			Virtual: Virtual{
				Total:       vm.Total,
				Available:   vm.Available,
				Used:        vm.Used,
				UsedPercent: vm.UsedPercent,
			},
			Swap: Swap{
				Total:       sw.Total,
				Free:        sw.Free,
				Used:        sw.Used,
				UsedPercent: sw.UsedPercent,
			},
		},
	}, nil
}
