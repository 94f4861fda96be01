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

// Package cli implements the sysreport command line.
//
// Running the binary with no arguments prints the full text report to
// stdout:
//
//	sysreport
//
// The sections are written in a fixed order: System Information, Boot Time,
// CPU Info, GPU Information, Memory Information, Disk Information, Network
// Information and Windows Registry Information. A section whose data source
// is unavailable is replaced by a "Not available" line; the command still
// exits 0.
//
// # Flags
//
//	--config         YAML or JSON settings file (env SYSREPORT_CONFIG)
//	--output, -o     Output file path, "-" for stdout (env SYSREPORT_OUTPUT)
//	--format, -t     Output format: text, json, yaml (env SYSREPORT_FORMAT)
//	--metrics-file   Write collection metrics in the Prometheus text format
//	--log-level      debug, info, warn, error (env LOG_LEVEL)
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Usage Examples
//
// Save a structured report:
//
//	sysreport --format yaml --output host.yaml
//
// Feed the node exporter textfile collector:
//
//	sysreport -o report.txt --metrics-file /var/lib/node_exporter/sysreport.prom
//
// # Exit Codes
//
// The command exits 1 only when something it needs cannot be prepared before
// collection starts: an unreadable or invalid config file, an unknown format
// or an output path that cannot be created.
package cli
