package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"

	"github.com/matsim-eth/python-matsim/errors"
)

// Loader merges the configuration sources. Zero fields fall back to the
// standard locations; "-" disables a location.
type Loader struct {
	SystemPath string // default SystemConfigPath
	UserPath   string // default ~/.pyhints/config.toml
	WorkDir    string // start of the upward project search, default cwd
	File       string // explicit config file; replaces the project search
}

// Load reads the configuration from the standard locations.
func Load() (*Config, error) {
	cfg, _, err := Loader{}.Load()
	return cfg, err
}

// LoadFromFile loads defaults plus the single file at path.
func LoadFromFile(path string) (*Config, error) {
	cfg, _, err := Loader{SystemPath: "-", UserPath: "-", File: path}.Load()
	return cfg, err
}

// Load merges defaults < system < user < project < environment and reports
// where each setting came from.
func (l Loader) Load() (*Config, *Introspection, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	intro := newIntrospection(v)

	for _, f := range l.files() {
		if f.path == "" || f.path == "-" {
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			if f.source == SourceExplicit {
				return nil, nil, errors.Wrapf(err, "config file %s", f.path)
			}
			continue
		}
		if err := mergeFile(v, f.path, f.source, intro); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, nil, err
	}

	// a whitespace-separated list; quote paths containing spaces
	if raw, ok := os.LookupEnv(EnvPrefix + "_DISCOVERY_MANIFESTS"); ok {
		manifests, err := shellquote.Split(raw)
		if err != nil {
			return nil, nil, errors.NewInvalidConfigError("%s_DISCOVERY_MANIFESTS: %v", EnvPrefix, err)
		}
		cfg.Discovery.Manifests = manifests
	}
	intro.trackEnvironment()

	return cfg, intro, nil
}

type configFile struct {
	path   string
	source Source
}

func (l Loader) files() []configFile {
	system := l.SystemPath
	if system == "" {
		system = SystemConfigPath
	}
	user := l.UserPath
	if user == "" {
		if home, err := os.UserHomeDir(); err == nil {
			user = filepath.Join(home, UserConfigDir, UserConfigFile)
		}
	}

	files := []configFile{
		{system, SourceSystem},
		{user, SourceUser},
	}
	if l.File != "" {
		return append(files, configFile{l.File, SourceExplicit})
	}
	return append(files, configFile{findProjectConfig(l.WorkDir), SourceProject})
}

func mergeFile(v *viper.Viper, path string, source Source, intro *Introspection) error {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType(configType(path))
	if err := file.ReadInConfig(); err != nil {
		return errors.NewInvalidConfigError("read config file %s: %v", path, err)
	}
	settings := file.AllSettings()
	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrapf(err, "merge config file %s", path)
	}
	intro.trackFile(settings, source, path)
	return nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "toml"
	}
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// findProjectConfig searches for pyhints.toml by walking up from dir.
// Returns the path to the first file found, or empty string if none found.
func findProjectConfig(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}

	for {
		path := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
