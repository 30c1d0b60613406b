// Package constants defines application-wide constants for the spssrun launcher.
// All constants are typed where it prevents accidental misuse.
package constants

// Application metadata
const (
	// AppName is the application name used in logs, configs, and user messages.
	AppName string = "spssrun"
	// AppDescription is a short description of the application.
	AppDescription string = "Launch IBM SPSS through Bottles on Linux"
)

// ExitCode represents process exit codes for different termination scenarios.
// On a normal launch the child's own exit code is forwarded instead.
type ExitCode int

const (
	// ExitSuccess indicates the application completed successfully.
	ExitSuccess ExitCode = iota
	// ExitError indicates a general error occurred.
	ExitError
	// ExitConfiguration indicates missing or invalid configuration.
	ExitConfiguration
	// ExitValidation indicates an input file failed validation.
	ExitValidation
	// ExitTranslation indicates a path could not be translated to Windows form.
	ExitTranslation
	// ExitLaunch indicates the external launcher process could not be spawned.
	ExitLaunch
)

// Int returns the exit code as an int for use with os.Exit().
func (e ExitCode) Int() int {
	return int(e)
}

// Environment variables consulted by the configuration resolver.
const (
	// EnvBottleName overrides the bottle name.
	EnvBottleName string = "SPSS_BOTTLE_NAME"
	// EnvProgramName overrides the program name inside the bottle.
	EnvProgramName string = "SPSS_PROGRAM_NAME"
	// EnvFlatpakAppID overrides the Bottles Flatpak application id.
	EnvFlatpakAppID string = "BOTTLES_FLATPAK_APP_ID"
)

// External collaborator command names.
const (
	// FlatpakCommand is the sandbox runner binary.
	FlatpakCommand string = "flatpak"
	// BottlesCLI is the Bottles command line interface invoked inside the sandbox.
	BottlesCLI string = "bottles-cli"
	// WinepathCommand is the Wine path translation utility run inside a bottle.
	WinepathCommand string = "winepath"
)

// Built-in defaults. Bottle and program names intentionally have no default:
// they must be resolved from flags, environment, or the persisted config.
const (
	// DefaultFlatpakAppID is the Flatpak id of the upstream Bottles package.
	DefaultFlatpakAppID string = "com.usebottles.bottles"
	// ConfigFileName is the persisted configuration file name.
	ConfigFileName string = "config.yaml"
)
