// Package commands holds the pyhints subcommands.
package commands

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/matsim-eth/python-matsim/config"
	"github.com/matsim-eth/python-matsim/db"
	"github.com/matsim-eth/python-matsim/discovery/manifest"
	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/generate"
	"github.com/matsim-eth/python-matsim/internal/httpclient"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/snapshot"
)

// Effective configuration of the running command.
var (
	activeConfig *config.Config
	activeIntro  *config.Introspection
)

// Prepare loads the configuration, applies the global flags and installs
// the logger. It runs before every command.
func Prepare(cmd *cobra.Command) error {
	// version must work even when the configuration is broken
	if cmd == VersionCmd {
		return logger.Initialize(false, logger.VerbosityUser)
	}

	file, _ := cmd.Flags().GetString("config")
	cfg, intro, err := config.Loader{File: file}.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbosity, _ = flags.GetCount("verbose")
		intro.TrackFlag("log.verbosity", "verbose", cfg.Log.Verbosity)
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON, _ = flags.GetBool("json-logs")
		intro.TrackFlag("log.json", "json-logs", cfg.Log.JSON)
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	activeConfig, activeIntro = cfg, intro
	return nil
}

// addGenerationFlags registers the flags shared by generate and check.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", "", "Target root directory (output.root)")
	cmd.Flags().StringP("namespace", "n", "", "Root namespace prefix (output.namespace)")
	cmd.Flags().String("runtime-version", "", "Binding runtime version (binding.runtime_version)")
	cmd.Flags().String("snapshot", "", "Snapshot database to read types from (discovery.snapshot)")
	cmd.Flags().String("snapshot-id", "", "Snapshot to use; latest when empty (discovery.snapshot_id)")
}

// applyGenerationFlags overrides cfg with changed flags and manifest args.
func applyGenerationFlags(cmd *cobra.Command, args []string, cfg *config.Config) error {
	overrides := []struct {
		flag, key string
		target    *string
	}{
		{"root", "output.root", &cfg.Output.Root},
		{"namespace", "output.namespace", &cfg.Output.Namespace},
		{"runtime-version", "binding.runtime_version", &cfg.Binding.RuntimeVersion},
		{"snapshot", "discovery.snapshot", &cfg.Discovery.Snapshot},
		{"snapshot-id", "discovery.snapshot_id", &cfg.Discovery.SnapshotID},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		*o.target, _ = cmd.Flags().GetString(o.flag)
		activeIntro.TrackFlag(o.key, o.flag, *o.target)
	}
	if len(args) > 0 {
		cfg.Discovery.Manifests = args
	}
	return cfg.Validate()
}

// generationOptions builds the run options. The returned closer releases
// the snapshot database, if one was opened.
func generationOptions(cfg *config.Config) (generate.Options, func(), error) {
	opts := generate.Options{
		Layout:         cfg.Layout(),
		RuntimeVersion: cfg.Binding.RuntimeVersion,
	}
	closer := func() {}

	for _, location := range cfg.Discovery.Manifests {
		opts.Sources = append(opts.Sources, manifestSource(cfg, location))
	}

	if cfg.Discovery.Snapshot != "" {
		conn, err := db.OpenWithMigrations(cfg.Discovery.Snapshot, logger.ComponentLogger("db"))
		if err != nil {
			return opts, closer, err
		}
		closer = func() { conn.Close() }
		store := snapshot.NewStore(conn, logger.ComponentLogger("snapshot"))
		opts.Sources = append(opts.Sources, store.Source(cfg.Discovery.SnapshotID))
	}

	if len(opts.Sources) == 0 {
		closer()
		return opts, func() {}, errors.WithHint(
			errors.New("no type universe to generate from"),
			"pass manifest locations, set discovery.manifests, or point discovery.snapshot at a snapshot database",
		)
	}
	return opts, closer, nil
}

// manifestSource downloads remote locations with the configured client.
func manifestSource(cfg *config.Config, location string) *manifest.Source {
	return manifest.NewSource(location, logger.ComponentLogger("manifest"),
		manifest.WithHTTPClient(httpclient.New(cfg.HTTPOptions())))
}

// openStore opens the snapshot database named by --db or discovery.snapshot.
func openStore(cmd *cobra.Command) (*snapshot.Store, *sql.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = activeConfig.Discovery.Snapshot
	}
	if path == "" {
		return nil, nil, errors.WithHint(errors.New("no snapshot database"), "pass --db or set discovery.snapshot")
	}
	conn, err := db.OpenWithMigrations(path, logger.ComponentLogger("db"))
	if err != nil {
		return nil, nil, err
	}
	return snapshot.NewStore(conn, logger.ComponentLogger("snapshot")), conn, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
