package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"spssrun/internal/errors"
)

// FileConfig is the on-disk representation of the persisted configuration.
type FileConfig struct {
	BottleName   string `yaml:"bottle_name,omitempty"`
	ProgramName  string `yaml:"program_name,omitempty"`
	FlatpakAppID string `yaml:"flatpak_app_id,omitempty"`
}

// value returns the file-layer value for a field. A nil receiver is a valid
// empty layer.
func (f *FileConfig) value(field Field) string {
	if f == nil {
		return ""
	}
	switch field {
	case FieldBottleName:
		return f.BottleName
	case FieldProgramName:
		return f.ProgramName
	case FieldFlatpakAppID:
		return f.FlatpakAppID
	default:
		return ""
	}
}

// LoadFile reads the persisted config from path. A missing file is not an
// error: it returns (nil, nil) so resolution proceeds with an empty file
// layer. A file that exists but cannot be read or parsed returns a
// Configuration error; callers may degrade it to a warning.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(errors.Configuration, err, "failed to read config file %s", path).
			WithOp("config.LoadFile")
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrapf(errors.Configuration, err, "failed to parse config file %s", path).
			WithOp("config.LoadFile")
	}

	return &fc, nil
}

// Save writes the effective configuration to path as the persisted config.
// Without force it refuses to overwrite an existing file with an
// AlreadyExists error and leaves the file untouched; with force it
// overwrites idempotently. Parent directories are created as needed, and the
// file is written via a temp file and rename so a failed write never leaves
// a partial config behind.
func Save(cfg *Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf(errors.AlreadyExists, "config file already exists: %s (use --force to overwrite)", path).
			WithOp("config.Save")
	}

	fc := FileConfig{
		BottleName:   cfg.BottleName,
		ProgramName:  cfg.ProgramName,
		FlatpakAppID: cfg.FlatpakAppID,
	}

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return errors.Wrap(errors.Configuration, "failed to marshal config", err).
			WithOp("config.Save")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.Configuration, "failed to create config directory", err).
			WithOp("config.Save")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(errors.Configuration, err, "failed to write config file %s", path).
			WithOp("config.Save")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(errors.Configuration, err, "failed to write config file %s", path).
			WithOp("config.Save")
	}

	return nil
}
