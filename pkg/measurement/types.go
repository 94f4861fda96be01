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

package measurement

import (
	"io"
)

// Type represents the report section a measurement belongs to.
type Type string

// String returns the section title.
func (mt Type) String() string {
	return string(mt)
}

const (
	TypeSystem   Type = "System Information"
	TypeBoot     Type = "Boot Time"
	TypeCPU      Type = "CPU Info"
	TypeGPU      Type = "GPU Information"
	TypeMemory   Type = "Memory Information"
	TypeDisk     Type = "Disk Information"
	TypeNetwork  Type = "Network Information"
	TypeRegistry Type = "Windows Registry Information"
)

// Types is the list of all sections in report order.
var Types = []Type{
	TypeSystem,
	TypeBoot,
	TypeCPU,
	TypeGPU,
	TypeMemory,
	TypeDisk,
	TypeNetwork,
	TypeRegistry,
}

// Payload is section data that renders itself as report text.
type Payload interface {
	Render(w io.Writer) error
}

// Measurement is the collected data of one section.
type Measurement struct {
	Type Type    `json:"type" yaml:"type"`
	Data Payload `json:"data" yaml:"data"`
}

// Render writes the text form of m's payload to w.
func (m *Measurement) Render(w io.Writer) error {
	if m == nil || m.Data == nil {
		return nil
	}
	return m.Data.Render(w)
}
