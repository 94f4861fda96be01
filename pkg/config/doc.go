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

// Package config loads sysreport settings.
//
// Settings come from an optional YAML (or JSON) file layered over the
// built-in defaults from pkg/defaults. Keys that are absent keep their
// default; unknown keys are rejected.
//
//	command_timeout: 30s
//	cpu_sample_interval: 500ms
//	command_encoding: IBM850
//	gpu_command: nvidia-smi --query-gpu=index,name --format=csv,noheader
//	metrics_file: /var/lib/node_exporter/sysreport.prom
//
// A file that cannot be read or does not validate is reported as
// errors.ErrCodeDependencyUnavailable, which aborts the run before any
// section is collected.
package config
