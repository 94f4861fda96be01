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

// Package measurement defines the sections of a host report and the payload
// each collector produces for one of them.
//
// # Core Types
//
//   - Type: the report section a measurement belongs to. Its value is the
//     section title printed in the text report.
//   - Payload: section data that can render itself as report text and is
//     tagged for JSON and YAML.
//   - Measurement: a Type and its Payload.
//
// Types lists every section in report order:
//
//	for _, t := range measurement.Types {
//	    fmt.Println(t)
//	}
package measurement
