package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsim-eth/python-matsim/config"
	"github.com/matsim-eth/python-matsim/emit"
)

var (
	rootOnce sync.Once
	testRoot *cobra.Command
)

// root mirrors the pyhints binary. Commands are package globals, so it is
// assembled once per test binary.
func root() *cobra.Command {
	rootOnce.Do(func() {
		testRoot = &cobra.Command{
			Use:           "pyhints",
			SilenceUsage:  true,
			SilenceErrors: true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return Prepare(cmd)
			},
		}
		testRoot.PersistentFlags().CountP("verbose", "v", "")
		testRoot.PersistentFlags().Bool("json-logs", false, "")
		testRoot.PersistentFlags().String("config", "", "")
		testRoot.AddCommand(GenerateCmd, CheckCmd, SnapshotCmd, ConfigCmd, VersionCmd)
	})
	return testRoot
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`format: 1
scope: cli
types:
  - name: pkg.Foo
    methods:
      - name: wait
        returns: pkg.Bar
  - name: pkg.Bar
`), 0o644))
	return path
}

// One sequence, because cobra keeps flag state between executions.
func TestCLI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	universe := writeManifest(t, dir)
	out := filepath.Join(dir, "out")
	layout := emit.Layout{Root: out, Namespace: "matsim"}

	_, err := execute(t, "check", "-r", out, "-n", "matsim", universe)
	require.Error(t, err, "nothing generated yet")

	_, err = execute(t, "generate", "-r", out, "-n", "matsim", universe)
	require.NoError(t, err)
	assert.FileExists(t, layout.StubPath("pkg"))
	assert.FileExists(t, layout.BindingPath("pkg"))
	assert.FileExists(t, filepath.Join(layout.PackageDir(), emit.InitFile))

	_, err = execute(t, "check", "-r", out, "-n", "matsim", universe)
	require.NoError(t, err)

	_, err = execute(t, "generate", "-r", out, "-n", "bad.class", universe)
	require.Error(t, err)

	text, err := execute(t, "config", "show", "--format", "json")
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(text), &shown))
	assert.Equal(t, ".", shown.Output.Root)

	text, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, text, `"default_binding_runtime"`)

	dbPath := filepath.Join(dir, "pyhints.db")
	_, err = execute(t, "snapshot", "import", "--db", dbPath, universe)
	require.NoError(t, err)
	_, err = execute(t, "snapshot", "ls", "--db", dbPath)
	require.NoError(t, err)

	snapOut := filepath.Join(dir, "from-snapshot")
	_, err = execute(t, "generate", "-r", snapOut, "-n", "matsim", "--snapshot", dbPath)
	require.NoError(t, err)
	stub, err := os.ReadFile(emit.Layout{Root: snapOut, Namespace: "matsim"}.StubPath("pkg"))
	require.NoError(t, err)
	assert.Contains(t, string(stub), "def wait_(self) -> Bar: ...")
}

func TestGenerationOptionsRequireSources(t *testing.T) {
	_, _, err := generationOptions(config.Default())
	assert.Error(t, err)
}
