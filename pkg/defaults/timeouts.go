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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CommandTimeout bounds a single external command invocation.
	CommandTimeout = 15 * time.Second

	// CPUSampleInterval is the window over which per-core CPU usage is measured.
	CPUSampleInterval = 1 * time.Second
)

// External commands and store paths used by the collectors.
const (
	// IPConfigCommand dumps verbose per-adapter network configuration.
	IPConfigCommand = "ipconfig /all"

	// GPUQueryCommand lists per-GPU load, memory and temperature as CSV rows.
	GPUQueryCommand = "nvidia-smi --query-gpu=index,name,utilization.gpu,memory.total,memory.used,memory.free,temperature.gpu --format=csv,noheader"

	// UninstallPath is the store path holding installed-program entries.
	UninstallPath = `Software\Microsoft\Windows\CurrentVersion\Uninstall`

	// CPUPath is the store path describing the first CPU.
	CPUPath = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`

	// BIOSPath is the store path describing the motherboard firmware.
	BIOSPath = `HARDWARE\DESCRIPTION\System\BIOS`
)
