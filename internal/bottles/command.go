// Package bottles builds and runs bottles-cli invocations: translating host
// paths to their Windows form inside a bottle, and assembling the launcher
// command line for the configured program.
package bottles

import (
	"fmt"

	"spssrun/internal/config"
	"spssrun/internal/constants"
)

// LaunchCommand assembles the argument vector that launches the configured
// program inside its bottle, appending the translated paths in their
// original input order. It performs no I/O and cannot fail.
func LaunchCommand(cfg *config.Config, windowsPaths []string) []string {
	argv := []string{
		constants.FlatpakCommand,
		"run",
		"--command=" + constants.BottlesCLI,
		cfg.FlatpakAppID,
		"run",
		"-b", cfg.BottleName,
		"-p", cfg.ProgramName,
	}
	return append(argv, windowsPaths...)
}

// translateArgs assembles the bottles-cli shell invocation that runs winepath
// for a single host path. The path is single-quoted inside the shell command
// so paths with spaces survive the inner shell.
func translateArgs(cfg *config.Config, hostPath string) []string {
	return []string{
		"run",
		"--command=" + constants.BottlesCLI,
		cfg.FlatpakAppID,
		"shell",
		"-b", cfg.BottleName,
		"-i", fmt.Sprintf("%s -w '%s'", constants.WinepathCommand, hostPath),
	}
}
