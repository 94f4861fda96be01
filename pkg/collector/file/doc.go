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

// Package file reads small pseudo-files such as the sysfs and procfs entries
// that expose kernel-maintained host facts.
//
// # Usage
//
//	r := file.NewReader()
//	khz, err := r.ReadUint("/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq")
//	if err != nil {
//	    // entry missing on this platform
//	}
//
// WithRoot re-bases every absolute path, which lets tests point the reader at
// a fixture tree built under t.TempDir.
//
// Files larger than the configured maximum (1MB by default) or holding
// invalid UTF-8 are rejected.
package file
