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

package network

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/NVIDIA/sysreport/pkg/bytesize"
	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/ipconfig"
	"github.com/NVIDIA/sysreport/pkg/measurement"
	"github.com/NVIDIA/sysreport/pkg/runner"
)

// CommandFailedNotice replaces the adapter list when the dump command fails.
const CommandFailedNotice = "Failed to run ipconfig command."

var ioCountersWithContext = net.IOCountersWithContext

// IOTotals are bytes sent and received across all interfaces since boot.
type IOTotals struct {
	BytesSent uint64 `json:"bytes_sent" yaml:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv" yaml:"bytes_recv"`
}

// Info is the network section payload.
type Info struct {
	CommandFailed bool               `json:"command_failed" yaml:"command_failed"`
	Adapters      []ipconfig.Adapter `json:"adapters" yaml:"adapters"`
	IO            *IOTotals          `json:"io,omitempty" yaml:"io,omitempty"`
}

// Render writes the live adapters followed by the I/O totals.
func (i *Info) Render(w io.Writer) error {
	if i.CommandFailed {
		if _, err := fmt.Fprintln(w, CommandFailedNotice); err != nil {
			return err
		}
	}
	for _, a := range i.Adapters {
		if err := ipconfig.Render(w, a); err != nil {
			return err
		}
	}

	if i.IO == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "Total Bytes Sent: %s\nTotal Bytes Received: %s\n",
		bytesize.Format(i.IO.BytesSent), bytesize.Format(i.IO.BytesRecv))
	return err
}

// Collector runs the adapter dump through Runner and reads I/O counters.
type Collector struct {
	Runner  runner.Runner
	Command string
}

// Type returns measurement.TypeNetwork.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeNetwork
}

// Collect returns live adapters and I/O totals. Neither a failing command
// nor unavailable counters fail the collection.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "network collector requires a runner")
	}

	cmd := c.Command
	if cmd == "" {
		cmd = defaults.IPConfigCommand
	}

	info := &Info{Adapters: []ipconfig.Adapter{}}

	out, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		slog.Debug("adapter dump failed", slog.String("command", cmd), slog.String("error", err.Error()))
		info.CommandFailed = true
	} else {
		info.Adapters = ipconfig.Parse(out)
		slog.Debug("collected network adapters", slog.Int("count", len(info.Adapters)))
	}

	counters, err := ioCountersWithContext(ctx, false)
	switch {
	case err != nil:
		slog.Debug("network io counters unavailable", slog.String("error", err.Error()))
	case len(counters) > 0:
		info.IO = &IOTotals{BytesSent: counters[0].BytesSent, BytesRecv: counters[0].BytesRecv}
	}

	return &measurement.Measurement{
		Type: measurement.TypeNetwork,
		Data: info,
	}, nil
}
