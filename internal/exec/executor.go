package exec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"spssrun/internal/errors"
)

// Executor defines the interface for command execution.
// All implementations must be safe for concurrent use.
type Executor interface {
	// Execute runs a command and captures its output.
	Execute(ctx context.Context, cmd string, args ...string) *Result

	// Stream runs a command and streams output to the given writers.
	Stream(ctx context.Context, stdout, stderr io.Writer, cmd string, args ...string) *Result
}

// Options configures the executor behavior.
// No timeout is applied: a hang in the wrapped application is expected to
// hang the launcher until the operator interrupts it.
type Options struct {
	WorkDir string   // Working directory for command execution
	Env     []string // Environment variables to set (nil inherits the parent environment)
}

// RealExecutor is the production implementation of Executor.
type RealExecutor struct {
	opts Options
}

// NewExecutor creates a new real executor with the given options.
func NewExecutor(opts Options) *RealExecutor {
	return &RealExecutor{opts: opts}
}

// Execute runs a command and captures its output.
func (e *RealExecutor) Execute(ctx context.Context, cmd string, args ...string) *Result {
	return e.run(ctx, nil, nil, cmd, args)
}

// Stream runs a command and streams output to the given writers.
func (e *RealExecutor) Stream(ctx context.Context, stdout, stderr io.Writer, cmd string, args ...string) *Result {
	return e.run(ctx, stdout, stderr, cmd, args)
}

func (e *RealExecutor) run(ctx context.Context, stdout, stderr io.Writer, cmd string, args []string) *Result {
	result := &Result{
		Command:   cmd,
		Args:      args,
		StartTime: time.Now(),
	}

	c := exec.CommandContext(ctx, cmd, args...)

	if e.opts.WorkDir != "" {
		c.Dir = e.opts.WorkDir
	}
	if e.opts.Env != nil {
		c.Env = e.opts.Env
	}

	// Capture output in buffers for the result; when writers are provided the
	// output is streamed to them directly instead.
	var stdoutBuf, stderrBuf bytes.Buffer
	if stdout != nil {
		c.Stdout = stdout
	} else {
		c.Stdout = &stdoutBuf
	}
	if stderr != nil {
		c.Stderr = stderr
	} else {
		c.Stderr = &stderrBuf
	}

	err := c.Run()

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.Stdout = stdoutBuf.Bytes()
	result.Stderr = stderrBuf.Bytes()

	if err != nil {
		if ctx.Err() == context.Canceled {
			result.Error = errors.Wrap(errors.Execution, "command cancelled", err)
			result.ExitCode = -1
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			// Process spawned but exited with a non-zero code. Not an
			// execution error: the code is reported verbatim.
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure, e.g. executable not found.
			result.Error = errors.Wrap(errors.Execution, "command execution failed", err)
			result.ExitCode = -1
		}
	}

	return result
}

// Options returns the current executor options.
func (e *RealExecutor) Options() Options {
	return e.opts
}

// Ensure RealExecutor implements Executor.
var _ Executor = (*RealExecutor)(nil)
