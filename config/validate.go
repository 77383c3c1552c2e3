package config

import (
	"strings"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/naming"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Root) == "" {
		return errors.NewInvalidConfigError("output.root cannot be empty")
	}

	// namespace prefix: empty, or a dotted path of identifiers
	if c.Output.Namespace != "" {
		for _, segment := range strings.Split(c.Output.Namespace, ".") {
			if !naming.IsIdentifier(segment) {
				return errors.NewInvalidConfigError("output.namespace %q: segment %q is not an identifier", c.Output.Namespace, segment)
			}
		}
	}

	if _, err := naming.KeywordsFor(c.Binding.RuntimeVersion); err != nil {
		return errors.Mark(errors.Wrap(err, "binding.runtime_version"), errors.ErrInvalidConfig)
	}

	for i, m := range c.Discovery.Manifests {
		if strings.TrimSpace(m) == "" {
			return errors.NewInvalidConfigError("discovery.manifests[%d] is empty", i)
		}
	}
	if c.Discovery.SnapshotID != "" && c.Discovery.Snapshot == "" {
		return errors.NewInvalidConfigError("discovery.snapshot_id requires discovery.snapshot")
	}

	if c.Discovery.HTTPTimeout < 0 {
		return errors.NewInvalidConfigError("discovery.http_timeout must be >= 0, got %s", c.Discovery.HTTPTimeout)
	}
	if c.Discovery.MaxRedirects < 0 {
		return errors.NewInvalidConfigError("discovery.max_redirects must be >= 0, got %d", c.Discovery.MaxRedirects)
	}

	if c.Log.Verbosity < 0 {
		return errors.NewInvalidConfigError("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	return nil
}
