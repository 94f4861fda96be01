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

package disk

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/NVIDIA/sysreport/pkg/bytesize"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

var (
	partitionsWithContext = disk.PartitionsWithContext
	usageWithContext      = disk.UsageWithContext
	ioCountersWithContext = disk.IOCountersWithContext
)

// Usage is the space usage of a mounted file system.
type Usage struct {
	Total       uint64  `json:"total" yaml:"total"`
	Used        uint64  `json:"used" yaml:"used"`
	Free        uint64  `json:"free" yaml:"free"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
}

// Partition is one mounted partition.
type Partition struct {
	Device     string `json:"device" yaml:"device"`
	Mountpoint string `json:"mountpoint" yaml:"mountpoint"`
	FSType     string `json:"fstype" yaml:"fstype"`
	Usage      *Usage `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// IOTotals are bytes read and written across all disks since boot.
type IOTotals struct {
	ReadBytes  uint64 `json:"read_bytes" yaml:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes" yaml:"write_bytes"`
}

// Info is the disk section payload.
type Info struct {
	Partitions []Partition `json:"partitions" yaml:"partitions"`
	IO         *IOTotals   `json:"io,omitempty" yaml:"io,omitempty"`
}

// Render writes one block per partition followed by the I/O totals.
func (i *Info) Render(w io.Writer) error {
	for _, p := range i.Partitions {
		if _, err := fmt.Fprintf(w, "=== Device: %s ===\n  Mountpoint: %s\n  File system type: %s\n",
			p.Device, p.Mountpoint, p.FSType); err != nil {
			return err
		}
		if p.Usage == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "  Total Size: %s\n  Used: %s\n  Free: %s\n  Percentage: %.1f%%\n",
			bytesize.Format(p.Usage.Total),
			bytesize.Format(p.Usage.Used),
			bytesize.Format(p.Usage.Free),
			p.Usage.UsedPercent); err != nil {
			return err
		}
	}

	if i.IO == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nTotal read: %s\nTotal write: %s\n",
		bytesize.Format(i.IO.ReadBytes), bytesize.Format(i.IO.WriteBytes))
	return err
}

// Collector reads partitions and disk I/O counters.
type Collector struct {
	// All includes pseudo and duplicate file systems.
	All bool
}

// Type returns measurement.TypeDisk.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeDisk
}

// Collect lists partitions with their usage and sums the I/O counters.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts, err := partitionsWithContext(ctx, c.All)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to list disk partitions", err)
	}

	info := &Info{Partitions: make([]Partition, 0, len(parts))}
	for _, p := range parts {
		part := Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			FSType:     p.Fstype,
		}

		u, err := usageWithContext(ctx, p.Mountpoint)
		if err != nil {
			slog.Debug("skipping partition usage",
				slog.String("mountpoint", p.Mountpoint),
				slog.String("error", err.Error()))
		} else {
			part.Usage = &Usage{Total: u.Total, Used: u.Used, Free: u.Free, UsedPercent: u.UsedPercent}
		}

		info.Partitions = append(info.Partitions, part)
	}

	counters, err := ioCountersWithContext(ctx)
	if err != nil {
		slog.Debug("disk io counters unavailable", slog.String("error", err.Error()))
	} else {
		totals := &IOTotals{}
		for _, ioc := range counters {
			totals.ReadBytes += ioc.ReadBytes
			totals.WriteBytes += ioc.WriteBytes
		}
		info.IO = totals
	}

	return &measurement.Measurement{
		Type: measurement.TypeDisk,
		Data: info,
	}, nil
}
