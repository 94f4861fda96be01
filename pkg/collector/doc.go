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

// Package collector provides the interfaces and production implementations
// that gather the facts of each host report section.
//
// # Core Interface
//
//	type Collector interface {
//	    Type() measurement.Type
//	    Collect(ctx context.Context) (*measurement.Measurement, error)
//	}
//
// Type names the section before collection starts, so a failing collector
// can still be reported under its heading. Collectors run one after another
// and never share state.
//
// # Factory Pattern
//
// Factory abstracts collector creation for dependency injection and testing.
// DefaultFactory wires the production sources:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithRunner(runner.NewLocalRunner()),
//	    collector.WithCPUSampleInterval(time.Second),
//	)
//
// # Available Collectors
//
//   - system: OS identity (system, node name, release, version, machine, processor)
//   - boot: boot timestamp
//   - cpu: frequencies and per-core usage
//   - gpu: per-GPU load, memory and temperature from nvidia-smi
//   - memory: virtual memory and swap
//   - disk: partitions, usage and I/O totals
//   - network: live adapters from "ipconfig /all" and I/O totals
//   - registry: installed programs, CPU and BIOS registry values
//
// Host facts come from github.com/shirou/gopsutil/v3; commands go through
// pkg/runner; registry access goes through pkg/regstore.
package collector
