// Package config loads the pyhints configuration from defaults, config
// files, PYHINTS_* environment variables and command-line overrides.
package config

import (
	"time"

	"github.com/matsim-eth/python-matsim/emit"
	"github.com/matsim-eth/python-matsim/internal/httpclient"
)

// Config represents the pyhints configuration
type Config struct {
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Discovery DiscoveryConfig `mapstructure:"discovery" toml:"discovery" yaml:"discovery" json:"discovery"`
	Binding   BindingConfig   `mapstructure:"binding" toml:"binding" yaml:"binding" json:"binding"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// OutputConfig selects where generated documents go
type OutputConfig struct {
	Root      string `mapstructure:"root" toml:"root" yaml:"root" json:"root"`                // target root directory
	Namespace string `mapstructure:"namespace" toml:"namespace" yaml:"namespace" json:"namespace"` // root namespace prefix, "" for none
}

// DiscoveryConfig selects the type universe
type DiscoveryConfig struct {
	Manifests  []string `mapstructure:"manifests" toml:"manifests" yaml:"manifests" json:"manifests"`             // local paths or go-getter URLs
	Snapshot   string   `mapstructure:"snapshot" toml:"snapshot" yaml:"snapshot" json:"snapshot"`                // snapshot database path, "" to disable
	SnapshotID string   `mapstructure:"snapshot_id" toml:"snapshot_id" yaml:"snapshot_id" json:"snapshot_id"` // "" selects the latest snapshot

	HTTPTimeout  time.Duration `mapstructure:"http_timeout" toml:"http_timeout" yaml:"http_timeout" json:"http_timeout"`
	MaxRedirects int           `mapstructure:"max_redirects" toml:"max_redirects" yaml:"max_redirects" json:"max_redirects"`
	BlockPrivate bool          `mapstructure:"block_private_hosts" toml:"block_private_hosts" yaml:"block_private_hosts" json:"block_private_hosts"`
}

// BindingConfig describes the runtime binding layer the output targets
type BindingConfig struct {
	RuntimeVersion string `mapstructure:"runtime_version" toml:"runtime_version" yaml:"runtime_version" json:"runtime_version"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"`
}

// HTTPOptions are the download client settings for remote manifests.
func (c *Config) HTTPOptions() httpclient.Options {
	return httpclient.Options{
		Timeout:      c.Discovery.HTTPTimeout,
		MaxRedirects: c.Discovery.MaxRedirects,
		BlockPrivate: c.Discovery.BlockPrivate,
	}
}

// Layout is the output layout the emission core sees.
func (c *Config) Layout() emit.Layout {
	return emit.Layout{Root: c.Output.Root, Namespace: c.Output.Namespace}
}
