package bottles

import (
	"context"

	"spssrun/internal/config"
	"spssrun/internal/constants"
	"spssrun/internal/errors"
	"spssrun/internal/exec"
	"spssrun/internal/logging"
)

// Translator converts host paths to the Windows paths seen inside the
// configured bottle by invoking winepath through bottles-cli. Each path is
// translated independently with one helper invocation; no caching.
type Translator struct {
	executor exec.Executor
	cfg      *config.Config
	log      logging.Logger
}

// NewTranslator creates a translator for the given configuration.
func NewTranslator(executor exec.Executor, cfg *config.Config, log logging.Logger) *Translator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Translator{
		executor: executor,
		cfg:      cfg,
		log:      log.WithPrefix("bottles"),
	}
}

// ToWindows translates a single host path to its Windows form inside the
// bottle. A non-zero winepath exit or empty output is a PathTranslation
// error naming the offending path; the conservative "fail on either" rule is
// deliberate, since either condition leaves the launcher without a usable
// path.
func (t *Translator) ToWindows(ctx context.Context, hostPath string) (string, error) {
	args := translateArgs(t.cfg, hostPath)
	t.log.Debug("translating path", "path", hostPath)

	result := t.executor.Execute(ctx, constants.FlatpakCommand, args...)
	if result.Error != nil {
		return "", errors.Wrapf(errors.PathTranslation, result.Error,
			"failed to translate path %s", hostPath).WithOp("bottles.ToWindows")
	}
	if result.ExitCode != 0 {
		return "", errors.Newf(errors.PathTranslation,
			"failed to translate path %s: winepath exited with code %d in bottle %q: %s",
			hostPath, result.ExitCode, t.cfg.BottleName, result.StderrString()).
			WithOp("bottles.ToWindows")
	}

	windowsPath := result.TrimmedStdout()
	if windowsPath == "" {
		return "", errors.Newf(errors.PathTranslation,
			"winepath returned empty result for %s: the bottle %q may not be configured or the path is not accessible from within it",
			hostPath, t.cfg.BottleName).WithOp("bottles.ToWindows")
	}

	t.log.Debug("translated path", "path", hostPath, "windows", windowsPath)
	return windowsPath, nil
}

// TranslateAll maps each host path to its Windows form, preserving input
// order and failing fast on the first untranslatable path.
func (t *Translator) TranslateAll(ctx context.Context, hostPaths []string) ([]string, error) {
	if len(hostPaths) == 0 {
		return nil, nil
	}

	windowsPaths := make([]string, 0, len(hostPaths))
	for _, p := range hostPaths {
		wp, err := t.ToWindows(ctx, p)
		if err != nil {
			return nil, err
		}
		windowsPaths = append(windowsPaths, wp)
	}
	return windowsPaths, nil
}
