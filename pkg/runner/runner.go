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

package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/encoding"

	"github.com/NVIDIA/sysreport/pkg/defaults"
	"github.com/NVIDIA/sysreport/pkg/errors"
)

// Runner abstracts command execution so collectors can be tested with fakes.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// Func adapts an ordinary function to the Runner interface.
type Func func(ctx context.Context, command string) (string, error)

// Run calls f(ctx, command).
func (f Func) Run(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// Option configures a LocalRunner.
type Option func(*LocalRunner)

// WithTimeout bounds each command invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *LocalRunner) {
		r.timeout = d
	}
}

// WithEncoding sets the code page used for output that is not valid UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(r *LocalRunner) {
		r.encoding = enc
	}
}

// LocalRunner executes commands on the local host.
type LocalRunner struct {
	timeout  time.Duration
	encoding encoding.Encoding
}

// NewLocalRunner creates a LocalRunner with the default command timeout.
func NewLocalRunner(opts ...Option) *LocalRunner {
	r := &LocalRunner{
		timeout: defaults.CommandTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command and returns its decoded standard output.
// A start failure, a non-zero exit status or a timeout is reported as
// errors.ErrCodeCommandFailure.
func (r *LocalRunner) Run(ctx context.Context, command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.New(errors.ErrCodeInvalidRequest, "command cannot be empty")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	slog.Debug("command finished",
		slog.String("command", command),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil))

	if err != nil {
		errCtx := map[string]any{
			"command": command,
			"stderr":  strings.TrimSpace(stderr.String()),
		}
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			errCtx["timeout"] = r.timeout.String()
			return "", errors.WrapWithContext(errors.ErrCodeCommandFailure, "command timed out", ctx.Err(), errCtx)
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			errCtx["exit_code"] = exitErr.ExitCode()
		}
		return "", errors.WrapWithContext(errors.ErrCodeCommandFailure, "failed to run command", err, errCtx)
	}

	out, err := Decode(stdout.Bytes(), r.encoding)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeCommandFailure, "failed to decode command output", err,
			map[string]any{"command": command})
	}
	return out, nil
}
