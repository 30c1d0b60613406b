package config

import (
	"os"

	"spssrun/internal/constants"
	"spssrun/internal/errors"
)

// Overrides carries configuration values supplied on the command line.
// Empty strings mean "not provided".
type Overrides struct {
	BottleName   string
	ProgramName  string
	FlatpakAppID string
}

// GetenvFunc looks up an environment variable, returning "" when unset.
// It matches the signature of os.Getenv so the real environment can be
// passed directly; tests substitute a map lookup.
type GetenvFunc func(string) string

// Resolve produces the effective configuration from the three layered
// sources. Precedence is evaluated per field: flag > environment > persisted
// file > built-in default. It is a pure function of its inputs.
//
// The file layer may be nil, which excludes it from resolution; init-config
// mode uses this to avoid resolving against the file it is about to write.
//
// Resolution fails with a Configuration error naming the field if the bottle
// or program name cannot be resolved from any layer.
func Resolve(ov Overrides, getenv GetenvFunc, file *FileConfig) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	bottle, bottleSrc := firstNonEmpty(ov.BottleName, getenv(constants.EnvBottleName), file.value(FieldBottleName), "")
	if bottle == "" {
		return nil, missingField(FieldBottleName)
	}

	program, programSrc := firstNonEmpty(ov.ProgramName, getenv(constants.EnvProgramName), file.value(FieldProgramName), "")
	if program == "" {
		return nil, missingField(FieldProgramName)
	}

	appID, appIDSrc := firstNonEmpty(ov.FlatpakAppID, getenv(constants.EnvFlatpakAppID), file.value(FieldFlatpakAppID), constants.DefaultFlatpakAppID)

	return &Config{
		BottleName:   bottle,
		ProgramName:  program,
		FlatpakAppID: appID,
		provenance: map[Field]Source{
			FieldBottleName:   bottleSrc,
			FieldProgramName:  programSrc,
			FieldFlatpakAppID: appIDSrc,
		},
	}, nil
}

// firstNonEmpty returns the first non-empty value in precedence order,
// together with the layer it came from.
func firstNonEmpty(flag, env, file, def string) (string, Source) {
	switch {
	case flag != "":
		return flag, SourceFlag
	case env != "":
		return env, SourceEnv
	case file != "":
		return file, SourceFile
	case def != "":
		return def, SourceDefault
	}
	return "", SourceNone
}

func missingField(f Field) error {
	return errors.Newf(errors.Configuration, "missing required configuration: %s", f).
		WithOp("config.Resolve")
}
