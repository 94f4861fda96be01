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

// Package cpu collects CPU frequencies and per-core utilization.
//
// The maximum frequency comes from the processor description reported by the
// OS; minimum and current frequencies come from the cpufreq sysfs entries of
// the first CPU when they exist. Utilization is sampled per core over
// SampleInterval and the total is the mean of the per-core values.
package cpu
