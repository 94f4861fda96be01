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

package collector

import (
	"context"
	"time"

	"github.com/NVIDIA/sysreport/pkg/collector/boot"
	"github.com/NVIDIA/sysreport/pkg/collector/cpu"
	"github.com/NVIDIA/sysreport/pkg/collector/disk"
	"github.com/NVIDIA/sysreport/pkg/collector/gpu"
	"github.com/NVIDIA/sysreport/pkg/collector/memory"
	"github.com/NVIDIA/sysreport/pkg/collector/network"
	"github.com/NVIDIA/sysreport/pkg/collector/registry"
	"github.com/NVIDIA/sysreport/pkg/collector/system"
	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/measurement"
	"github.com/NVIDIA/sysreport/pkg/regstore"
	"github.com/NVIDIA/sysreport/pkg/runner"
)

// Collector gathers the data of one report section.
type Collector interface {
	Type() measurement.Type
	Collect(ctx context.Context) (*measurement.Measurement, error)
}

// Factory creates collectors.
type Factory interface {
	CreateSystemCollector() Collector
	CreateBootCollector() Collector
	CreateCPUCollector() Collector
	CreateGPUCollector() Collector
	CreateMemoryCollector() Collector
	CreateDiskCollector() Collector
	CreateNetworkCollector() Collector
	CreateRegistryCollector() Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner sets the command runner used by the GPU and network collectors.
func WithRunner(r runner.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// WithCPUSampleInterval sets the per-core usage sampling window.
func WithCPUSampleInterval(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.CPUSampleInterval = d
	}
}

// WithIPConfigCommand overrides the adapter dump command.
func WithIPConfigCommand(cmd string) Option {
	return func(f *DefaultFactory) {
		f.IPConfigCommand = cmd
	}
}

// WithGPUCommand overrides the GPU query command.
func WithGPUCommand(cmd string) Option {
	return func(f *DefaultFactory) {
		f.GPUCommand = cmd
	}
}

// WithRegistryPaths overrides the installed-programs, CPU and BIOS paths.
// Empty arguments keep the current value.
func WithRegistryPaths(uninstall, cpu, bios string) Option {
	return func(f *DefaultFactory) {
		if uninstall != "" {
			f.UninstallPath = uninstall
		}
		if cpu != "" {
			f.CPUPath = cpu
		}
		if bios != "" {
			f.BIOSPath = bios
		}
	}
}

// WithStore sets the constructor of the registry store.
func WithStore(fn func() (regstore.Store, error)) Option {
	return func(f *DefaultFactory) {
		f.NewStore = fn
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Runner            runner.Runner
	CPUSampleInterval time.Duration
	IPConfigCommand   string
	GPUCommand        string
	UninstallPath     string
	CPUPath           string
	BIOSPath          string
	NewStore          func() (regstore.Store, error)
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Runner:            runner.NewLocalRunner(),
		CPUSampleInterval: defaults.CPUSampleInterval,
		IPConfigCommand:   defaults.IPConfigCommand,
		GPUCommand:        defaults.GPUQueryCommand,
		UninstallPath:     defaults.UninstallPath,
		CPUPath:           defaults.CPUPath,
		BIOSPath:          defaults.BIOSPath,
		NewStore:          regstore.NewSystemStore,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateSystemCollector creates the OS identity collector.
func (f *DefaultFactory) CreateSystemCollector() Collector {
	return &system.Collector{}
}

// CreateBootCollector creates the boot time collector.
func (f *DefaultFactory) CreateBootCollector() Collector {
	return &boot.Collector{}
}

// CreateCPUCollector creates the CPU frequency and usage collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	return &cpu.Collector{SampleInterval: f.CPUSampleInterval}
}

// CreateGPUCollector creates the nvidia-smi collector.
func (f *DefaultFactory) CreateGPUCollector() Collector {
	return &gpu.Collector{Runner: f.Runner, Command: f.GPUCommand}
}

// CreateMemoryCollector creates the virtual memory and swap collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector {
	return &memory.Collector{}
}

// CreateDiskCollector creates the partition and disk I/O collector.
func (f *DefaultFactory) CreateDiskCollector() Collector {
	return &disk.Collector{}
}

// CreateNetworkCollector creates the adapter and network I/O collector.
func (f *DefaultFactory) CreateNetworkCollector() Collector {
	return &network.Collector{Runner: f.Runner, Command: f.IPConfigCommand}
}

// CreateRegistryCollector creates the registry collector.
func (f *DefaultFactory) CreateRegistryCollector() Collector {
	return &registry.Collector{
		NewStore:      f.NewStore,
		UninstallPath: f.UninstallPath,
		CPUPath:       f.CPUPath,
		BIOSPath:      f.BIOSPath,
	}
}

// All returns the collectors of f in report order.
func All(f Factory) []Collector {
	return []Collector{
		f.CreateSystemCollector(),
		f.CreateBootCollector(),
		f.CreateCPUCollector(),
		f.CreateGPUCollector(),
		f.CreateMemoryCollector(),
		f.CreateDiskCollector(),
		f.CreateNetworkCollector(),
		f.CreateRegistryCollector(),
	}
}
