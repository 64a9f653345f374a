// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checkouts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// A Runner runs external commands.
type Runner interface {
	// Output runs name with args in dir and returns its standard
	// output with surrounding white space removed.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs name with args in dir.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	// Logger receives the combined output of commands started by
	// Run at debug level. If nil, output is discarded.
	Logger *zap.Logger
}

func (r *ExecRunner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// A CommandError reports a failed command.
type CommandError struct {
	Dir    string
	Args   []string
	Output string // combined output, possibly truncated
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s (in %s): %v", strings.Join(e.Args, " "), e.Dir, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// maxErrorOutput bounds the output kept in a CommandError.
const maxErrorOutput = 4 << 10

func tail(b []byte) string {
	if len(b) > maxErrorOutput {
		b = b[len(b)-maxErrorOutput:]
	}
	return strings.TrimSpace(string(b))
}

func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", &CommandError{dir, append([]string{name}, args...), tail(stderr.Bytes()), err}
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	r.logger().Debug("command finished",
		zap.String("dir", dir),
		zap.Strings("args", cmd.Args),
		zap.ByteString("output", out))
	if err != nil {
		return &CommandError{dir, cmd.Args, tail(out), err}
	}
	return nil
}
