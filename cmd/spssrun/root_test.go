package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"spssrun/internal/constants"
	"spssrun/internal/errors"
	"spssrun/internal/exec"
	"spssrun/internal/ui"
)

func init() {
	// Force plain rendering so assertions are independent of the terminal
	// the tests happen to run in.
	ui.DisableColor()
}

// env is a test substitute for os.Getenv.
type env map[string]string

func (e env) getenv(key string) string { return e[key] }

// testApp wires an app against a mock executor, in-memory streams, and
// temp-dir paths.
type testApp struct {
	app    *app
	mock   *exec.MockExecutor
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logDir string
}

func newTestApp(t *testing.T, e env) *testApp {
	t.Helper()
	dir := t.TempDir()
	mock := exec.NewMockExecutor()
	var stdout, stderr bytes.Buffer
	logDir := filepath.Join(dir, "logs")
	return &testApp{
		app: &app{
			executor:   mock,
			getenv:     e.getenv,
			stdout:     &stdout,
			stderr:     &stderr,
			configPath: filepath.Join(dir, "config.yaml"),
			logDir:     logDir,
			now: func() time.Time {
				return time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)
			},
		},
		mock:   mock,
		stdout: &stdout,
		stderr: &stderr,
		logDir: logDir,
	}
}

func fullEnv() env {
	return env{
		constants.EnvBottleName:  "Research",
		constants.EnvProgramName: "SPSS",
	}
}

// tempDataFile creates an input file and returns its absolute path.
func tempDataFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	return path
}

func TestRun_MissingConfiguration(t *testing.T) {
	ta := newTestApp(t, env{})

	code := ta.app.run(nil)

	assert.Equal(t, constants.ExitConfiguration.Int(), code)
	assert.Contains(t, ta.stderr.String(), "bottle_name")
	assert.Equal(t, 0, ta.mock.CallCount())
}

func TestRun_MissingProgramNamesField(t *testing.T) {
	ta := newTestApp(t, env{constants.EnvBottleName: "Research"})

	code := ta.app.run(nil)

	assert.Equal(t, constants.ExitConfiguration.Int(), code)
	assert.Contains(t, ta.stderr.String(), "program_name")
	assert.NotContains(t, ta.stderr.String(), "bottle_name")
}

func TestRun_DryRunNoFiles(t *testing.T) {
	ta := newTestApp(t, fullEnv())

	code := ta.app.run([]string{"--dry-run"})

	assert.Equal(t, 0, code)
	want := "Command: flatpak run --command=bottles-cli com.usebottles.bottles run -b Research -p SPSS\n"
	assert.Equal(t, want, ta.stdout.String())
	assert.Equal(t, 0, ta.mock.CallCount())
}

func TestRun_DryRunTranslatesFiles(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.Enqueue(exec.SuccessResult("Z:\\data\\input.sav\n"))
	input := tempDataFile(t, "input.sav")

	code := ta.app.run([]string{"-n", input})

	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), `Z:\data\input.sav`)

	// Translation runs even in dry-run mode; only the launch is skipped.
	require.Equal(t, 1, ta.mock.CallCount())
	assert.Contains(t, ta.mock.LastCall().Args, "shell")
	assert.Contains(t, strings.Join(ta.mock.LastCall().Args, " "), input)
}

func TestRun_ForwardsChildExitCode(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.SetResponse("flatpak", exec.FailureResult(3, "spss crashed"))

	code := ta.app.run(nil)

	assert.Equal(t, 3, code)
}

func TestRun_LaunchRedirectsToLogFile(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.SetResponse("flatpak", &exec.Result{Stdout: []byte("spss output\n")})

	code := ta.app.run(nil)

	assert.Equal(t, 0, code)
	data, err := os.ReadFile(filepath.Join(ta.logDir, "spssrun-20240309-143005.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "spss output")
}

func TestRun_ShowOutputStreamsToTerminal(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.SetResponse("flatpak", &exec.Result{Stdout: []byte("live output\n")})

	code := ta.app.run([]string{"--show-output"})

	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), "live output")
	assert.True(t, ta.mock.LastCall().Streamed)
}

func TestRun_TranslationFailure(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.Enqueue(exec.SuccessResult("")) // winepath produced no output
	input := tempDataFile(t, "input.sav")

	code := ta.app.run([]string{input})

	assert.Equal(t, constants.ExitTranslation.Int(), code)
	assert.Contains(t, ta.stderr.String(), input)

	// The launch never happens and no log file is created.
	assert.Equal(t, 1, ta.mock.CallCount())
	_, statErr := os.Stat(ta.logDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingInputFile(t *testing.T) {
	ta := newTestApp(t, fullEnv())

	code := ta.app.run([]string{"/nonexistent/data.sav"})

	assert.Equal(t, constants.ExitValidation.Int(), code)
	assert.Contains(t, ta.stderr.String(), "/nonexistent/data.sav")
	assert.Equal(t, 0, ta.mock.CallCount())
}

func TestRun_SpawnFailure(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	ta.mock.SetResponse("flatpak", exec.ErrorResult(errors.New(errors.Execution, "executable not found")))

	code := ta.app.run(nil)

	assert.Equal(t, constants.ExitLaunch.Int(), code)
	assert.Contains(t, ta.stderr.String(), "flatpak")
}

func TestRun_InitConfigWritesFile(t *testing.T) {
	ta := newTestApp(t, env{})

	code := ta.app.run([]string{"--init-config", "-b", "Research", "-p", "SPSS"})

	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), "Wrote configuration to "+ta.app.configPath)
	assert.Equal(t, 0, ta.mock.CallCount())

	data, err := os.ReadFile(ta.app.configPath)
	require.NoError(t, err)
	var fc struct {
		BottleName   string `yaml:"bottle_name"`
		ProgramName  string `yaml:"program_name"`
		FlatpakAppID string `yaml:"flatpak_app_id"`
	}
	require.NoError(t, yaml.Unmarshal(data, &fc))
	assert.Equal(t, "Research", fc.BottleName)
	assert.Equal(t, "SPSS", fc.ProgramName)
	assert.Equal(t, constants.DefaultFlatpakAppID, fc.FlatpakAppID)
}

func TestRun_InitConfigRefusesOverwrite(t *testing.T) {
	ta := newTestApp(t, env{})
	require.Equal(t, 0, ta.app.run([]string{"--init-config", "-b", "Research", "-p", "SPSS"}))

	code := ta.app.run([]string{"--init-config", "-b", "Other", "-p", "SPSS"})

	assert.Equal(t, constants.ExitConfiguration.Int(), code)
	assert.Contains(t, ta.stderr.String(), "already exists")

	// --force overwrites.
	code = ta.app.run([]string{"--init-config", "--force", "-b", "Other", "-p", "SPSS"})
	assert.Equal(t, 0, code)
	data, err := os.ReadFile(ta.app.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Other")
}

func TestRun_InitConfigIgnoresExistingFileLayer(t *testing.T) {
	ta := newTestApp(t, env{constants.EnvProgramName: "SPSS"})
	require.NoError(t, os.WriteFile(ta.app.configPath, []byte("bottle_name: FileBottle\n"), 0o644))

	// The existing file cannot satisfy the bottle name during init.
	code := ta.app.run([]string{"--init-config", "--force"})

	assert.Equal(t, constants.ExitConfiguration.Int(), code)
	assert.Contains(t, ta.stderr.String(), "bottle_name")
}

func TestRun_ConfigFileSuppliesValues(t *testing.T) {
	ta := newTestApp(t, env{})
	require.NoError(t, os.WriteFile(ta.app.configPath,
		[]byte("bottle_name: FileBottle\nprogram_name: FileProgram\n"), 0o644))

	code := ta.app.run([]string{"--dry-run"})

	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), "-b FileBottle -p FileProgram")
}

func TestRun_FlagsOverrideEnvironment(t *testing.T) {
	ta := newTestApp(t, fullEnv())

	code := ta.app.run([]string{"--dry-run", "-b", "FlagBottle", "--flatpak-app-id", "org.example.bottles"})

	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stdout.String(), "org.example.bottles run -b FlagBottle -p SPSS")
}

func TestRun_CorruptConfigFileDegradesToWarning(t *testing.T) {
	ta := newTestApp(t, fullEnv())
	require.NoError(t, os.WriteFile(ta.app.configPath, []byte("{not yaml"), 0o644))

	code := ta.app.run([]string{"--dry-run"})

	// Flags and environment still satisfy resolution.
	assert.Equal(t, 0, code)
	assert.Contains(t, ta.stderr.String(), "ignoring unreadable config file")
}

func TestRun_VerbosePrintsResolvedConfig(t *testing.T) {
	ta := newTestApp(t, fullEnv())

	code := ta.app.run([]string{"--dry-run", "--verbose"})

	assert.Equal(t, 0, code)
	out := ta.stdout.String()
	assert.Contains(t, out, "Configuration:")
	assert.Contains(t, out, "(environment)")
	assert.Contains(t, out, "(default)")
}

func TestResolveInputs(t *testing.T) {
	input := tempDataFile(t, "data.sav")

	resolved, err := resolveInputs([]string{input})
	require.NoError(t, err)
	assert.Equal(t, []string{input}, resolved)

	resolved, err = resolveInputs(nil)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	_, err = resolveInputs([]string{"/nonexistent/data.sav"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.Validation))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want constants.ExitCode
	}{
		{"configuration", errors.New(errors.Configuration, "missing"), constants.ExitConfiguration},
		{"already exists", errors.New(errors.AlreadyExists, "exists"), constants.ExitConfiguration},
		{"validation", errors.New(errors.Validation, "bad file"), constants.ExitValidation},
		{"translation", errors.New(errors.PathTranslation, "no output"), constants.ExitTranslation},
		{"launch", errors.New(errors.Launch, "spawn failed"), constants.ExitLaunch},
		{"uncoded", os.ErrPermission, constants.ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}
