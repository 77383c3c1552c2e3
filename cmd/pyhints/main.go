package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsim-eth/python-matsim/cmd/pyhints/commands"
	"github.com/matsim-eth/python-matsim/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pyhints",
	Short: "pyhints - Python type stubs and bindings for a Java type universe",
	Long: `pyhints - Python type stubs and runtime bindings for a Java type universe.

pyhints reads a type manifest, registers every public type by namespace, and
writes one declaration stub (.pyi) and one binding module (.py) per
namespace, plus package initializers, under the output root.

Available commands:
  generate - Generate stubs, bindings and initializers
  check    - Report whether the generated tree is up to date
  snapshot - Store manifests in a snapshot database
  config   - Show and validate configuration
  version  - Show version information

Examples:
  pyhints generate universe.yaml -r build/python -n matsim
  pyhints generate --watch universe.yaml
  pyhints check universe.yaml
  pyhints snapshot import universe.yaml --db pyhints.db
  pyhints config show --format yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Prepare(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: pyhints.toml searched upward from the working directory)")

	// Add commands
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.SnapshotCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
