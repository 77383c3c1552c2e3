package config

import (
	"github.com/spf13/viper"

	"github.com/matsim-eth/python-matsim/naming"
)

// File locations, lowest precedence first.
const (
	SystemConfigPath = "/etc/pyhints/config.toml"
	UserConfigDir    = ".pyhints"
	UserConfigFile   = "config.toml"
	ProjectFile      = "pyhints.toml"
	EnvPrefix        = "PYHINTS"
)

// DefaultDirPermissions is used for directories created on behalf of the user.
const DefaultDirPermissions = 0o750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.root", ".")
	v.SetDefault("output.namespace", "")

	v.SetDefault("discovery.manifests", []string{})
	v.SetDefault("discovery.snapshot", "")
	v.SetDefault("discovery.snapshot_id", "")
	v.SetDefault("discovery.http_timeout", "60s")
	v.SetDefault("discovery.max_redirects", 10)
	v.SetDefault("discovery.block_private_hosts", false)

	v.SetDefault("binding.runtime_version", naming.DefaultRuntimeVersion)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		panic(err)
	}
	return cfg
}
