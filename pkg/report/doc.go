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

// Package report assembles the host inventory report.
//
// An Assembler runs the collectors of a collector.Factory one at a time in
// report order. In text format each section is written as soon as it is
// collected, preceded by a fixed header line:
//
//	======================================== CPU Info ========================================
//
// A collector that fails does not stop the run. Its section is replaced
// with a single "Not available: <reason>" line and the next section follows.
// Only errors classified as errors.ErrCodeDependencyUnavailable abort.
//
// In json and yaml format the sections are gathered into a Snapshot, tagged
// with a random ID, a timestamp and the tool version, and serialized in one
// piece.
//
// Usage:
//
//	a := report.NewAssembler(collector.NewDefaultFactory(),
//		report.WithVersion(version),
//		report.WithOutput(os.Stdout, serializer.FormatText))
//	if err := a.Run(ctx); err != nil {
//		return err
//	}
//
// Per-section durations and outcomes are recorded in a private Prometheus
// registry, see Metrics.
package report
