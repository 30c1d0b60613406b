// Package launcher spawns the assembled bottles-cli command and reports the
// child's exit status. One attempt per run: no retries, no timeout, no
// internal parallelism.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"spssrun/internal/errors"
	"spssrun/internal/exec"
	"spssrun/internal/logging"
	"spssrun/internal/ui"
)

// Request describes one launch of the external command.
type Request struct {
	// Argv is the full argument vector; Argv[0] is the binary to spawn.
	Argv []string
	// DryRun prints the command instead of executing it.
	DryRun bool
	// Verbose reports the log file path when redirection is active.
	Verbose bool
	// ShowOutput streams child output to the terminal instead of a log file.
	ShowOutput bool
}

// Options configures the runner.
type Options struct {
	// LogDir is where per-invocation log files are created.
	LogDir string
	// Stdout receives the dry-run command line and streamed child stdout.
	// Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives streamed child stderr. Defaults to os.Stderr.
	Stderr io.Writer
	// Now supplies log file timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Runner executes launch requests through an Executor.
type Runner struct {
	executor exec.Executor
	log      logging.Logger
	styles   ui.Styles
	opts     Options
}

// NewRunner creates a runner. Zero-value Options fields are filled with
// production defaults.
func NewRunner(executor exec.Executor, log logging.Logger, opts Options) *Runner {
	if log == nil {
		log = logging.NewNop()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		executor: executor,
		log:      log.WithPrefix("launcher"),
		styles:   ui.DefaultStyles(),
		opts:     opts,
	}
}

// Run executes the request and returns the exit code to report. In dry-run
// mode it prints the command and returns success before any process or log
// file side effect. A spawn failure returns a Launch error; a child that was
// spawned and exited non-zero is not an error, its code is returned verbatim.
func (r *Runner) Run(ctx context.Context, req Request) (int, error) {
	if len(req.Argv) == 0 {
		return 0, errors.New(errors.Launch, "empty command").WithOp("launcher.Run")
	}

	if req.DryRun {
		fmt.Fprintln(r.opts.Stdout, r.styles.RenderCommand(req.Argv))
		return 0, nil
	}

	name, args := req.Argv[0], req.Argv[1:]

	var result *exec.Result
	if req.ShowOutput {
		r.log.Debug("streaming child output to terminal")
		result = r.executor.Stream(ctx, r.opts.Stdout, r.opts.Stderr, name, args...)
	} else {
		logFile, path, err := r.openLogFile()
		if err != nil {
			return 0, err
		}
		defer logFile.Close()

		if req.Verbose {
			r.log.Info("redirecting child output", "log", path)
		} else {
			r.log.Debug("redirecting child output", "log", path)
		}
		result = r.executor.Stream(ctx, logFile, logFile, name, args...)
	}

	if result.Error != nil {
		return 0, errors.Wrapf(errors.Launch, result.Error, "failed to launch %s", name).
			WithOp("launcher.Run")
	}

	if result.ExitCode != 0 {
		r.log.Debug("child exited non-zero", "code", result.ExitCode)
	}
	return result.ExitCode, nil
}
