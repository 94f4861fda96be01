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

// Package bytesize renders byte counts as human-readable magnitudes.
package bytesize

import "fmt"

const (
	factor = 1024
	suffix = "B"
)

var units = []string{"", "K", "M", "G", "T", "P"}

// Format renders n with two decimals and a binary unit, e.g. 1536 -> "1.50KB".
// Values beyond the petabyte range stay expressed in P.
func Format(n uint64) string {
	v := float64(n)
	for i, unit := range units {
		if v < factor || i == len(units)-1 {
			return fmt.Sprintf("%.2f%s%s", v, unit, suffix)
		}
		v /= factor
	}
	return "" // unreachable
}
