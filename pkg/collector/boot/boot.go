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

package boot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

var bootTimeWithContext = host.BootTimeWithContext

// Info is the boot section payload.
type Info struct {
	BootTime time.Time `json:"boot_time" yaml:"boot_time"`
}

// Render writes the boot time line.
func (i *Info) Render(w io.Writer) error {
	t := i.BootTime
	_, err := fmt.Fprintf(w, "Boot Time: %d/%d/%d %d:%d:%d\n",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return err
}

// Collector reads the boot timestamp.
type Collector struct{}

// Type returns measurement.TypeBoot.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeBoot
}

// Collect returns the boot time in local time.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secs, err := bootTimeWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailure, "failed to read boot time", err)
	}

	bt := time.Unix(int64(secs), 0).Local()
	slog.Debug("collected boot time", slog.Time("boot_time", bt))

	return &measurement.Measurement{
		Type: measurement.TypeBoot,
		Data: &Info{BootTime: bt},
	}, nil
}
