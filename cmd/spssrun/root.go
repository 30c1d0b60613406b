package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"spssrun/internal/bottles"
	"spssrun/internal/config"
	"spssrun/internal/constants"
	"spssrun/internal/errors"
	"spssrun/internal/exec"
	"spssrun/internal/launcher"
	"spssrun/internal/logging"
	"spssrun/internal/ui"
)

// app bundles the process-level dependencies of the CLI so tests can
// substitute the executor, environment, streams, and paths.
type app struct {
	executor   exec.Executor
	getenv     config.GetenvFunc
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	logDir     string
	now        func() time.Time

	// exitCode carries the forwarded child exit code out of cobra's RunE,
	// which only reports errors.
	exitCode int
}

// newApp wires the production dependencies.
func newApp() *app {
	return &app{
		executor:   exec.NewExecutor(exec.Options{}),
		getenv:     os.Getenv,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		configPath: config.DefaultConfigPath(),
		logDir:     config.DefaultStateDir(),
		now:        time.Now,
	}
}

// options holds the parsed command-line flags.
type options struct {
	bottle       string
	program      string
	flatpakAppID string
	verbose      bool
	dryRun       bool
	initConfig   bool
	force        bool
	showOutput   bool
}

// run executes the CLI with the given arguments and returns the process exit
// code: the forwarded child code on a normal launch, or a code derived from
// the error category otherwise.
func (a *app) run(args []string) int {
	if a.getenv("NO_COLOR") != "" {
		ui.DisableColor()
	}

	cmd := a.newRootCommand()
	if args == nil {
		// cobra substitutes os.Args for nil args.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitCodeFor(err).Int()
	}
	return a.exitCode
}

func (a *app) newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   constants.AppName + " [files...]",
		Short: constants.AppDescription,
		Long: constants.AppDescription + `.

Resolves the bottle and program to run from flags, environment variables
(` + constants.EnvBottleName + `, ` + constants.EnvProgramName + `, ` + constants.EnvFlatpakAppID + `), and the persisted
config file, translates any data file arguments to their Windows paths
inside the bottle, and launches the program through the Bottles Flatpak.`,
		Version:       versionString(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.initConfig {
				return a.runInitConfig(opts)
			}
			return a.runLaunch(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.bottle, "bottle", "b", "", "bottle containing the program (overrides environment and config file)")
	flags.StringVarP(&opts.program, "program", "p", "", "program name inside the bottle (overrides environment and config file)")
	flags.StringVar(&opts.flatpakAppID, "flatpak-app-id", "", "Flatpak application id of Bottles (default "+constants.DefaultFlatpakAppID+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show the resolved configuration and debug logging")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the launch command without executing it")
	flags.BoolVar(&opts.initConfig, "init-config", false, "write the resolved configuration to the config file and exit")
	flags.BoolVarP(&opts.force, "force", "f", false, "overwrite an existing config file with --init-config")
	flags.BoolVar(&opts.showOutput, "show-output", false, "stream program output to the terminal instead of a log file")

	return cmd
}

// overrides maps the flag values onto the resolver's flag layer.
func (a *app) overrides(opts *options) config.Overrides {
	return config.Overrides{
		BottleName:   opts.bottle,
		ProgramName:  opts.program,
		FlatpakAppID: opts.flatpakAppID,
	}
}

// logger builds the CLI logger; verbose lowers the threshold to debug.
func (a *app) logger(verbose bool) logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Options{
		Level:   level,
		Output:  a.stderr,
		NoColor: a.getenv("NO_COLOR") != "",
	})
}

// runInitConfig resolves the configuration from flags, environment, and
// defaults only, then persists it. The file layer is deliberately excluded so
// init never resolves against the file it is about to write.
func (a *app) runInitConfig(opts *options) error {
	cfg, err := config.Resolve(a.overrides(opts), a.getenv, nil)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, a.configPath, opts.force); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote configuration to %s\n", a.configPath)
	return nil
}

// runLaunch is the main flow: resolve configuration, validate and translate
// the input files, assemble the launch command, and run it.
func (a *app) runLaunch(ctx context.Context, opts *options, files []string) error {
	log := a.logger(opts.verbose)
	styles := ui.DefaultStyles()

	fileCfg, err := config.LoadFile(a.configPath)
	if err != nil {
		// An unreadable config file degrades to an empty layer so a stale or
		// corrupt file never blocks a launch that flags or environment can
		// satisfy.
		log.Warn("ignoring unreadable config file", "error", err)
		fileCfg = nil
	}

	cfg, err := config.Resolve(a.overrides(opts), a.getenv, fileCfg)
	if err != nil {
		return err
	}

	if opts.verbose {
		fmt.Fprintln(a.stdout, styles.RenderConfig(cfg))
	}

	inputs, err := resolveInputs(files)
	if err != nil {
		return err
	}

	translator := bottles.NewTranslator(a.executor, cfg, log)
	windowsPaths, err := translator.TranslateAll(ctx, inputs)
	if err != nil {
		return err
	}

	argv := bottles.LaunchCommand(cfg, windowsPaths)
	if opts.verbose && !opts.dryRun {
		fmt.Fprintln(a.stdout, styles.RenderCommand(argv))
	}

	runner := launcher.NewRunner(a.executor, log, launcher.Options{
		LogDir: a.logDir,
		Stdout: a.stdout,
		Stderr: a.stderr,
		Now:    a.now,
	})
	code, err := runner.Run(ctx, launcher.Request{
		Argv:       argv,
		DryRun:     opts.dryRun,
		Verbose:    opts.verbose,
		ShowOutput: opts.showOutput,
	})
	if err != nil {
		return err
	}
	a.exitCode = code
	return nil
}

// resolveInputs converts each input file to an absolute path and verifies it
// exists, before any translation work starts. Relative paths are resolved
// against the current working directory.
func resolveInputs(files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	resolved := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(errors.Validation, err, "invalid path %s", f).
				WithOp("main.resolveInputs")
		}
		if _, err := os.Stat(abs); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.Validation, "file does not exist: %s", abs).
					WithOp("main.resolveInputs")
			}
			return nil, errors.Wrapf(errors.Validation, err, "cannot access %s", abs).
				WithOp("main.resolveInputs")
		}
		resolved = append(resolved, abs)
	}
	return resolved, nil
}

// exitCodeFor maps an error's category to the process exit code.
func exitCodeFor(err error) constants.ExitCode {
	switch errors.GetCode(err) {
	case errors.Configuration, errors.AlreadyExists:
		return constants.ExitConfiguration
	case errors.Validation:
		return constants.ExitValidation
	case errors.PathTranslation:
		return constants.ExitTranslation
	case errors.Launch:
		return constants.ExitLaunch
	default:
		return constants.ExitError
	}
}
