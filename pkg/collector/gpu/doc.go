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

// Package gpu collects per-GPU load, memory and temperature from nvidia-smi.
//
// The collector runs a CSV query through a runner.Runner:
//
//	nvidia-smi --query-gpu=index,name,utilization.gpu,memory.total,memory.used,memory.free,temperature.gpu --format=csv,noheader
//
// and renders the rows as an aligned table. Hosts without nvidia-smi, or where
// the query fails, are not an error: the section prints a single notice
// instead of the table.
package gpu
