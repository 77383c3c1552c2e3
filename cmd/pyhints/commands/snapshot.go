package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SnapshotCmd represents the snapshot command
var SnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store manifests in a snapshot database",
	Long: `Import type manifests into a SQLite snapshot database so generation can be
repeated against a fixed type universe.

Examples:
  pyhints snapshot import universe.yaml --db pyhints.db
  pyhints snapshot ls --db pyhints.db
  pyhints snapshot rm <id> --db pyhints.db
  pyhints generate --snapshot pyhints.db`,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <manifest...>",
	Short: "Import manifests as new snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSnapshotImport,
}

var snapshotLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List snapshots, newest first",
	RunE:  runSnapshotLs,
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRm,
}

func init() {
	SnapshotCmd.PersistentFlags().String("db", "", "Snapshot database (default: discovery.snapshot)")
	SnapshotCmd.AddCommand(snapshotImportCmd)
	SnapshotCmd.AddCommand(snapshotLsCmd)
	SnapshotCmd.AddCommand(snapshotRmCmd)
}

func runSnapshotImport(cmd *cobra.Command, args []string) error {
	store, conn, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := commandContext(cmd)
	for _, location := range args {
		m, err := manifestSource(activeConfig, location).Manifest(ctx)
		if err != nil {
			return err
		}
		snap, err := store.Import(ctx, m)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Imported %s as %s (%d types)", location, snap.ID, snap.Types)
	}
	return nil
}

func runSnapshotLs(cmd *cobra.Command, args []string) error {
	store, conn, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	snaps, err := store.List(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		pterm.Info.Println("No snapshots")
		return nil
	}

	data := pterm.TableData{{"ID", "Scope", "Types", "Created"}}
	for _, s := range snaps {
		data = append(data, []string{s.ID, s.Scope, fmt.Sprint(s.Types), s.CreatedAt.Local().Format(time.RFC3339)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runSnapshotRm(cmd *cobra.Command, args []string) error {
	store, conn, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := store.Delete(commandContext(cmd), args[0]); err != nil {
		return err
	}
	pterm.Success.Printfln("Deleted snapshot %s", args[0])
	return nil
}
