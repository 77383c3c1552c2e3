package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/generate"
	"github.com/matsim-eth/python-matsim/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [manifest...]",
	Short: "Generate stubs, bindings and initializers",
	Long: `Generate one declaration stub and one binding module per namespace of the
type universe, then refresh the package initializers under the output root.

Manifest locations may be local paths or any go-getter URL. Without
arguments the locations in discovery.manifests are used. Files whose
content is already current are not rewritten.

Examples:
  pyhints generate universe.yaml
  pyhints generate -r build/python -n matsim universe.yaml
  pyhints generate --snapshot pyhints.db
  pyhints generate --watch universe.yaml`,
	RunE: runGenerate,
}

func init() {
	addGenerationFlags(GenerateCmd)
	GenerateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever a local manifest changes")
	GenerateCmd.Flags().Duration("debounce", generate.DefaultDebounce, "Quiet period before regenerating in watch mode")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := activeConfig
	if err := applyGenerationFlags(cmd, args, cfg); err != nil {
		return err
	}
	opts, closeStore, err := generationOptions(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := commandContext(cmd)
	log := logger.ComponentLogger("generate")

	summary, err := generate.Run(ctx, opts, log)
	if summary != nil {
		printSummary(summary)
	}
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	var local []string
	for _, location := range cfg.Discovery.Manifests {
		if _, err := os.Stat(location); err == nil {
			local = append(local, location)
		} else {
			pterm.Warning.Printfln("Not watching %s (not a local file)", location)
		}
	}
	if len(local) == 0 {
		return errors.New("watch mode needs at least one local manifest")
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	watcher, err := generate.NewWatcher(local, debounce, logger.ComponentLogger("watch"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Watching %d manifest(s), press Ctrl+C to stop", len(local))
	return watcher.Run(ctx, func(ctx context.Context) error {
		started := time.Now()
		summary, err := generate.Run(ctx, opts, log)
		if summary != nil {
			printSummary(summary)
		}
		if err == nil {
			pterm.Success.Printfln("Regenerated in %s", time.Since(started).Round(time.Millisecond))
		}
		return err
	})
}
