package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/matsim-eth/python-matsim/config"
	"github.com/matsim-eth/python-matsim/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate configuration",
	Long: `Display and manage the pyhints configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (PYHINTS_* prefix)
3. Project config (pyhints.toml, searched upward from the working directory)
4. User config (~/.pyhints/config.toml)
5. System config (/etc/pyhints/config.toml)
6. Default values

Examples:
  pyhints config show                  # Show effective configuration
  pyhints config show --format json    # Show it as JSON
  pyhints config show --sources        # Show where each setting came from
  pyhints config validate              # Validate configuration
  pyhints config init                  # Write pyhints.toml with defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, yaml, json")
	configShowCmd.Flags().Bool("sources", false, "Show the source of each setting")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if sources, _ := cmd.Flags().GetBool("sources"); sources {
		data := pterm.TableData{{"Key", "Value", "Source", "From"}}
		for _, s := range activeIntro.Settings() {
			data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	format, _ := cmd.Flags().GetString("format")
	data, err := config.Render(activeConfig, format)
	if err != nil {
		return err
	}
	if format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# pyhints configuration")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := activeConfig.Validate(); err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectFile
	if len(args) == 1 {
		path = args[0]
	}
	if err := activeConfig.Validate(); err != nil {
		return errors.Wrap(err, "refusing to write an invalid configuration")
	}
	if err := config.WriteFile(path, activeConfig); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	pterm.Success.Printfln("Wrote %s", abs)
	return nil
}
