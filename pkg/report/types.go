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

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NVIDIA/sysreport/pkg/measurement"
)

const headerRuleWidth = 40

// Status is the outcome of one section.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// Section is one collected report section.
type Section struct {
	Type   measurement.Type    `json:"type" yaml:"type"`
	Status Status              `json:"status" yaml:"status"`
	Error  string              `json:"error,omitempty" yaml:"error,omitempty"`
	Data   measurement.Payload `json:"data,omitempty" yaml:"data,omitempty"`
}

// Render writes the header of s followed by its data or its notice.
func (s *Section) Render(w io.Writer) error {
	if err := writeHeader(w, s.Type); err != nil {
		return err
	}
	return s.renderBody(w)
}

func (s *Section) renderBody(w io.Writer) error {
	if s.Status == StatusDegraded {
		_, err := fmt.Fprintf(w, "Not available: %s\n", s.Error)
		return err
	}
	if s.Data == nil {
		return nil
	}
	return s.Data.Render(w)
}

// Snapshot is the structured form of a full report.
type Snapshot struct {
	ID        string     `json:"id" yaml:"id"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Version   string     `json:"version,omitempty" yaml:"version,omitempty"`
	Sections  []*Section `json:"sections" yaml:"sections"`
}

// Render writes the text report of every section in order.
func (s *Snapshot) Render(w io.Writer) error {
	for _, sec := range s.Sections {
		if err := sec.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// Degraded returns the sections that did not collect.
func (s *Snapshot) Degraded() []*Section {
	var out []*Section
	for _, sec := range s.Sections {
		if sec.Status == StatusDegraded {
			out = append(out, sec)
		}
	}
	return out
}

// Header returns the separator line written before a section.
func Header(t measurement.Type) string {
	rule := strings.Repeat("=", headerRuleWidth)
	return "\n" + rule + " " + t.String() + " " + rule
}

func writeHeader(w io.Writer, t measurement.Type) error {
	_, err := fmt.Fprintln(w, Header(t))
	return err
}
