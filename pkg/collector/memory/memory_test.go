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
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

const gib = 1 << 30

func stub(t *testing.T, vm func(context.Context) (*mem.VirtualMemoryStat, error), sw func(context.Context) (*mem.SwapMemoryStat, error)) {
	t.Helper()
	origVM, origSwap := virtualMemoryWithContext, swapMemoryWithContext
	virtualMemoryWithContext, swapMemoryWithContext = vm, sw
	t.Cleanup(func() {
		virtualMemoryWithContext, swapMemoryWithContext = origVM, origSwap
	})
}

func TestCollector_Collect(t *testing.T) {
	stub(t,
		func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 16 * gib, Available: 6 * gib, Used: 10 * gib, UsedPercent: 62.5}, nil
		},
		func(context.Context) (*mem.SwapMemoryStat, error) {
			return &mem.SwapMemoryStat{Total: 2 * gib, Free: 1536 << 20, Used: 512 << 20, UsedPercent: 25}, nil
		},
	)

	c := &Collector{}
	assert.Equal(t, measurement.TypeMemory, c.Type())

	m, err := c.Collect(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	want := "Total: 16.00GB\n" +
		"Available: 6.00GB\n" +
		"Used: 10.00GB\n" +
		"Percentage: 62.5%\n" +
		"==================== SWAP ====================\n" +
		"Total: 2.00GB\n" +
		"Free: 1.50GB\n" +
		"Used: 512.00MB\n" +
		"Percentage: 25.0%\n"
	assert.Equal(t, want, buf.String())
}

func TestCollector_Errors(t *testing.T) {
	okVM := func(context.Context) (*mem.VirtualMemoryStat, error) { return &mem.VirtualMemoryStat{}, nil }
	okSwap := func(context.Context) (*mem.SwapMemoryStat, error) { return &mem.SwapMemoryStat{}, nil }
	failVM := func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, stderrors.New("boom") }
	failSwap := func(context.Context) (*mem.SwapMemoryStat, error) { return nil, stderrors.New("boom") }

	tests := []struct {
		name string
		vm   func(context.Context) (*mem.VirtualMemoryStat, error)
		sw   func(context.Context) (*mem.SwapMemoryStat, error)
		want string
	}{
		{"virtual", failVM, okSwap, "virtual memory"},
		{"swap", okVM, failSwap, "swap memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub(t, tt.vm, tt.sw)
			_, err := (&Collector{}).Collect(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeQueryFailure))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
