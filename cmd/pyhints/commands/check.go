package commands

import (
	"github.com/spf13/cobra"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/generate"
	"github.com/matsim-eth/python-matsim/logger"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [manifest...]",
	Short: "Report whether the generated tree is up to date",
	Long: `Generate into a temporary directory and compare the result with the tree
under the output root. Nothing under the output root is modified.

Exits non-zero when any generated document differs, is missing, or is
stale (present on disk but no longer generated).

Examples:
  pyhints check universe.yaml -r build/python -n matsim`,
	RunE: runCheck,
}

func init() {
	addGenerationFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := activeConfig
	if err := applyGenerationFlags(cmd, args, cfg); err != nil {
		return err
	}
	opts, closeStore, err := generationOptions(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := generate.Check(commandContext(cmd), opts, logger.ComponentLogger("check"))
	if err != nil {
		return err
	}
	printCheck(result)
	if !result.UpToDate {
		return errors.WithHint(errors.New("generated tree is out of date"), "run pyhints generate with the same arguments")
	}
	return nil
}
