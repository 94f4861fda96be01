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

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/NVIDIA/sysreport/pkg/collector"
	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/runner"
	"github.com/NVIDIA/sysreport/pkg/serializer"
)

// Config holds the settings of one report run.
type Config struct {
	// CommandTimeout bounds each external command.
	CommandTimeout Duration `json:"command_timeout" yaml:"command_timeout"`

	// CPUSampleInterval is the per-core usage sampling window.
	CPUSampleInterval Duration `json:"cpu_sample_interval" yaml:"cpu_sample_interval"`

	// CommandEncoding is the IANA name of the code page used for command
	// output that is not UTF-8. Empty selects runner.DefaultEncoding.
	CommandEncoding string `json:"command_encoding,omitempty" yaml:"command_encoding,omitempty"`

	IPConfigCommand string `json:"ipconfig_command" yaml:"ipconfig_command"`
	GPUCommand      string `json:"gpu_command" yaml:"gpu_command"`

	UninstallPath string `json:"uninstall_path" yaml:"uninstall_path"`
	CPUPath       string `json:"cpu_path" yaml:"cpu_path"`
	BIOSPath      string `json:"bios_path" yaml:"bios_path"`

	// Format is the report format: text, json or yaml.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Output is the report destination. Empty or "-" writes to stdout.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// MetricsFile, when set, receives the collection metrics in the
	// Prometheus text format after the run.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CommandTimeout:    Duration(defaults.CommandTimeout),
		CPUSampleInterval: Duration(defaults.CPUSampleInterval),
		IPConfigCommand:   defaults.IPConfigCommand,
		GPUCommand:        defaults.GPUQueryCommand,
		UninstallPath:     defaults.UninstallPath,
		CPUPath:           defaults.CPUPath,
		BIOSPath:          defaults.BIOSPath,
		Format:            string(serializer.FormatText),
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	r, err := serializer.NewFileReaderAuto(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDependencyUnavailable, "failed to open config file", err,
			map[string]any{"path": path})
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			slog.Warn("failed to close config file", slog.String("path", path), slog.String("error", cerr.Error()))
		}
	}()

	if err := r.Deserialize(cfg); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDependencyUnavailable, "failed to parse config file", err,
			map[string]any{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDependencyUnavailable, "invalid config file", err,
			map[string]any{"path": path})
	}

	slog.Debug("loaded config", slog.String("path", path))
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	invalid := func(field, msg string) error {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, fmt.Sprintf("%s %s", field, msg),
			map[string]any{"field": field})
	}

	if c.CommandTimeout <= 0 {
		return invalid("command_timeout", "must be positive")
	}
	if c.CPUSampleInterval <= 0 {
		return invalid("cpu_sample_interval", "must be positive")
	}
	if strings.TrimSpace(c.IPConfigCommand) == "" {
		return invalid("ipconfig_command", "cannot be empty")
	}
	if strings.TrimSpace(c.GPUCommand) == "" {
		return invalid("gpu_command", "cannot be empty")
	}
	if strings.TrimSpace(c.UninstallPath) == "" {
		return invalid("uninstall_path", "cannot be empty")
	}
	if _, err := runner.LookupEncoding(c.CommandEncoding); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "command_encoding is not a known encoding", err,
			map[string]any{"field": "command_encoding"})
	}
	if _, err := serializer.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Encoding returns the code page named by CommandEncoding.
func (c *Config) Encoding() (encoding.Encoding, error) {
	return runner.LookupEncoding(c.CommandEncoding)
}

// OutputFormat returns the parsed report format.
func (c *Config) OutputFormat() (serializer.Format, error) {
	return serializer.ParseFormat(c.Format)
}

// FactoryOptions returns the collector options for c, including a local
// runner bounded by CommandTimeout.
func (c *Config) FactoryOptions() ([]collector.Option, error) {
	enc, err := c.Encoding()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid command encoding", err)
	}

	r := runner.NewLocalRunner(runner.WithTimeout(c.CommandTimeout.Duration()), runner.WithEncoding(enc))
	return []collector.Option{
		collector.WithRunner(r),
		collector.WithCPUSampleInterval(c.CPUSampleInterval.Duration()),
		collector.WithIPConfigCommand(c.IPConfigCommand),
		collector.WithGPUCommand(c.GPUCommand),
		collector.WithRegistryPaths(c.UninstallPath, c.CPUPath, c.BIOSPath),
	}, nil
}
