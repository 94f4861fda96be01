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

package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/measurement"
	"github.com/NVIDIA/sysreport/pkg/regstore"
)

const programRule = "------------------------------------"

// Entry is a decoded registry value.
type Entry struct {
	Name  string             `json:"name" yaml:"name"`
	Value string             `json:"value" yaml:"value"`
	Type  regstore.ValueType `json:"type" yaml:"type"`
}

// Info is the registry section payload. The *Error fields hold the reason a
// facility is missing.
type Info struct {
	Programs         []regstore.Program `json:"programs" yaml:"programs"`
	ProgramsError    string             `json:"programs_error,omitempty" yaml:"programs_error,omitempty"`
	CPU              []Entry            `json:"cpu" yaml:"cpu"`
	CPUError         string             `json:"cpu_error,omitempty" yaml:"cpu_error,omitempty"`
	Motherboard      []Entry            `json:"motherboard" yaml:"motherboard"`
	MotherboardError string             `json:"motherboard_error,omitempty" yaml:"motherboard_error,omitempty"`
}

// Render writes the three facilities in order.
func (i *Info) Render(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Installed Programs:\n-------------------\n"); err != nil {
		return err
	}
	if i.ProgramsError != "" {
		if err := notice(w, i.ProgramsError); err != nil {
			return err
		}
	}
	for _, p := range i.Programs {
		if _, err := fmt.Fprintf(w, "Name: %s\nPublisher: %s\nInstall Location: %s\n%s\n",
			p.Name, p.Publisher, p.InstallLocation, programRule); err != nil {
			return err
		}
	}

	if err := renderEntries(w, "\nCPU Information:\n----------------\n", i.CPU, i.CPUError); err != nil {
		return err
	}
	return renderEntries(w, "\nMotherboard Information:\n------------------------\n", i.Motherboard, i.MotherboardError)
}

func renderEntries(w io.Writer, heading string, entries []Entry, reason string) error {
	if _, err := fmt.Fprint(w, heading); err != nil {
		return err
	}
	if reason != "" {
		return notice(w, reason)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Name, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func notice(w io.Writer, reason string) error {
	_, err := fmt.Fprintf(w, "Not available: %s\n", reason)
	return err
}

// Collector reads registry facilities from a Store created by NewStore.
type Collector struct {
	NewStore      func() (regstore.Store, error)
	UninstallPath string
	CPUPath       string
	BIOSPath      string
}

// Type returns measurement.TypeRegistry.
func (c *Collector) Type() measurement.Type {
	return measurement.TypeRegistry
}

// Collect reads installed programs, CPU and BIOS values.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newStore := c.NewStore
	if newStore == nil {
		newStore = regstore.NewSystemStore
	}
	store, err := newStore()
	if err != nil {
		return nil, err
	}

	w := regstore.NewWalker(store)
	info := &Info{
		Programs:    []regstore.Program{},
		CPU:         []Entry{},
		Motherboard: []Entry{},
	}

	programs, err := w.InstalledPrograms(regstore.LocalMachine, pathOr(c.UninstallPath, defaults.UninstallPath))
	if err != nil {
		slog.Debug("installed programs unavailable", slog.String("error", err.Error()))
		info.ProgramsError = err.Error()
	} else {
		info.Programs = programs
	}

	info.CPU, info.CPUError = flat(w, pathOr(c.CPUPath, defaults.CPUPath))
	info.Motherboard, info.MotherboardError = flat(w, pathOr(c.BIOSPath, defaults.BIOSPath))

	if n := w.OpenHandles(); n != 0 {
		slog.Warn("registry handles left open", slog.Int("count", n))
	}

	return &measurement.Measurement{
		Type: measurement.TypeRegistry,
		Data: info,
	}, nil
}

func flat(w *regstore.Walker, path string) ([]Entry, string) {
	values, err := w.FlatValues(regstore.LocalMachine, path)
	if err != nil {
		slog.Debug("registry values unavailable", slog.String("path", path), slog.String("error", err.Error()))
		return []Entry{}, err.Error()
	}
	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		entries = append(entries, Entry{Name: v.Name, Value: regstore.Decode(v), Type: v.Type})
	}
	return entries, ""
}

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
