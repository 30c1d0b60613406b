package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spssrun/internal/constants"
	"spssrun/internal/errors"
)

// logFileName returns the per-invocation log file name, timestamped to
// second precision.
func logFileName(now time.Time) string {
	return fmt.Sprintf("%s-%s.log", constants.AppName, now.Format("20060102-150405"))
}

// openLogFile lazily creates the log directory and a fresh log file for this
// invocation. It is only called when output redirection is active, so a
// dry run never touches the filesystem.
func (r *Runner) openLogFile() (*os.File, string, error) {
	if err := os.MkdirAll(r.opts.LogDir, 0o755); err != nil {
		return nil, "", errors.Wrap(errors.Launch, "failed to create log directory", err).
			WithOp("launcher.openLogFile")
	}

	path := filepath.Join(r.opts.LogDir, logFileName(r.opts.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, "", errors.Wrapf(errors.Launch, err, "failed to create log file %s", path).
			WithOp("launcher.openLogFile")
	}
	return f, path, nil
}
