package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/matsim-eth/python-matsim/errors"
)

// Render encodes cfg as toml, yaml or json.
func Render(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "toml":
		data, err := toml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config as toml")
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as yaml")
		}
		return buf.Bytes(), nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as json")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.NewInvalidConfigError("unknown config format %q (want toml, yaml or json)", format)
	}
}

// WriteFile stores cfg as TOML at path, rotating up to three backups of
// any file already there.
func WriteFile(path string, cfg *Config) error {
	data, err := Render(cfg, "toml")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.NewIOFailure(err, filepath.Dir(path))
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOFailure(err, path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before
// modifying a config file.
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	back := func(n int) string { return fmt.Sprintf("%s.back%d", path, n) }

	if err := os.Remove(back(3)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back(3))
	}
	for n := 2; n >= 1; n-- {
		if _, err := os.Stat(back(n)); err == nil {
			if err := os.Rename(back(n), back(n+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate .back%d to .back%d", n, n+1)
			}
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back(1), content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
