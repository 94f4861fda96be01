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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysreport/pkg/collector"
	"github.com/NVIDIA/sysreport/pkg/config"
	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/logging"
	"github.com/NVIDIA/sysreport/pkg/report"
	"github.com/NVIDIA/sysreport/pkg/serializer"
)

const (
	name           = "sysreport"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// newFactory builds the collector factory; replaced in tests.
var newFactory = func(opts ...collector.Option) collector.Factory {
	return collector.NewDefaultFactory(opts...)
}

const (
	flagConfig      = "config"
	flagOutput      = "output"
	flagFormat      = "format"
	flagMetricsFile = "metrics-file"
	flagLogLevel    = "log-level"
)

// rootFlags returns fresh flag values for each command instance.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "Path to a YAML or JSON settings file",
			Sources: cli.EnvVars("SYSREPORT_CONFIG"),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
			Sources: cli.EnvVars("SYSREPORT_OUTPUT"),
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Usage:   "Output format (text, json, yaml)",
			Value:   string(serializer.FormatText),
			Sources: cli.EnvVars("SYSREPORT_FORMAT"),
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "Write collection metrics in the Prometheus text format to this path",
			Sources: cli.EnvVars("SYSREPORT_METRICS_FILE"),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL", "SYSREPORT_LOG_LEVEL"),
		},
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Print a host inventory report",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Print a sectioned inventory of the local host: OS identity, boot time,
CPU frequency and usage, GPUs, memory, disks, network adapters and
Windows registry facts.

Sections whose data source is missing are degraded to a one-line notice;
the report always runs to the end.`,
		Flags:  rootFlags(),
		Before: initLogger,
		Action: runReport,
	}
}

// Execute runs the root command with the process arguments and exits 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// initLogger configures slog before the action so --log-level applies to
// config loading.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String(flagLogLevel))
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date)
	return ctx, nil
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDependencyUnavailable, "invalid output format", err)
	}

	opts, err := cfg.FactoryOptions()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDependencyUnavailable, "invalid collector settings", err)
	}

	w, err := serializer.NewFileWriterOrStdout(format, cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			slog.Warn("failed to close output", slog.String("error", cerr.Error()))
		}
	}()

	metrics := report.NewMetrics()
	a := report.NewAssembler(newFactory(opts...),
		report.WithVersion(version),
		report.WithOutput(w, format),
		report.WithMetrics(metrics))

	if err := a.Run(ctx); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteToTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("failed to write metrics file",
				slog.String("path", cfg.MetricsFile),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// loadConfig reads the config file and applies explicitly set flags over it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(flagOutput) {
		cfg.Output = cmd.String(flagOutput)
	}
	if cmd.IsSet(flagFormat) {
		cfg.Format = cmd.String(flagFormat)
	}
	if cmd.IsSet(flagMetricsFile) {
		cfg.MetricsFile = cmd.String(flagMetricsFile)
	}
	if !cmd.IsSet(flagLogLevel) && cfg.LogLevel != "" {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, "invalid settings", err)
	}
	return cfg, nil
}
