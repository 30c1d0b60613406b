// Package config provides configuration resolution for the spssrun launcher.
// Each field is resolved independently from three layered sources with strict
// precedence: command-line flags override environment variables, which
// override the persisted config file. Only the Flatpak app id has a built-in
// default; bottle and program names must come from one of the layers.
package config

// Field identifies a configuration field. The values double as the keys used
// in the persisted config file.
type Field string

const (
	// FieldBottleName is the name of the bottle hosting the program.
	FieldBottleName Field = "bottle_name"
	// FieldProgramName is the name of the program registered in the bottle.
	FieldProgramName Field = "program_name"
	// FieldFlatpakAppID is the Flatpak application id of Bottles.
	FieldFlatpakAppID Field = "flatpak_app_id"
)

// Source identifies which layer a resolved value came from.
type Source int

const (
	// SourceNone means no layer provided a value.
	SourceNone Source = iota
	// SourceDefault means the built-in default was used.
	SourceDefault
	// SourceFile means the persisted config file provided the value.
	SourceFile
	// SourceEnv means an environment variable provided the value.
	SourceEnv
	// SourceFlag means a command-line flag provided the value.
	SourceFlag
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFile:
		return "config file"
	case SourceEnv:
		return "environment"
	case SourceFlag:
		return "flag"
	default:
		return "unset"
	}
}

// Config is the effective configuration for one run. It is constructed once
// by Resolve and never mutated afterwards.
type Config struct {
	// BottleName is the bottle to run the program in.
	BottleName string

	// ProgramName is the program to launch inside the bottle.
	ProgramName string

	// FlatpakAppID is the Flatpak application id of Bottles.
	FlatpakAppID string

	// provenance records which layer supplied each field, for diagnostics.
	provenance map[Field]Source
}

// SourceOf reports which layer supplied the given field.
func (c *Config) SourceOf(f Field) Source {
	if c.provenance == nil {
		return SourceNone
	}
	return c.provenance[f]
}

// Value returns the resolved value of the given field.
func (c *Config) Value(f Field) string {
	switch f {
	case FieldBottleName:
		return c.BottleName
	case FieldProgramName:
		return c.ProgramName
	case FieldFlatpakAppID:
		return c.FlatpakAppID
	default:
		return ""
	}
}

// Fields lists all configuration fields in display order.
func Fields() []Field {
	return []Field{FieldBottleName, FieldProgramName, FieldFlatpakAppID}
}
