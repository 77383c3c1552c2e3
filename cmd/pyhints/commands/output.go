package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/matsim-eth/python-matsim/generate"
)

// printSummary renders the outcome of one generation run.
func printSummary(s *generate.Summary) {
	if len(s.Results) > 0 {
		data := pterm.TableData{{"Namespace", "Classes", "Bindings", "Stub"}}
		for _, r := range s.Results {
			data = append(data, []string{
				r.Namespace,
				fmt.Sprint(r.Classes),
				fmt.Sprint(r.Bindings),
				r.StubPath,
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		pterm.Println()
	}

	pterm.Info.Printfln("Namespaces: %d  Classes: %d  Bindings: %d  Initializers: %d",
		s.Namespaces, s.Classes, s.Bindings, s.Inits)
	pterm.Info.Printfln("Files written: %d  unchanged: %d  (%s, run %s)",
		s.Written, s.Unchanged, s.Duration.Round(time.Millisecond), s.RunID)

	if len(s.Dropped) > 0 {
		pterm.Warning.Printfln("%d type(s) dropped (run with -vv for reasons)", len(s.Dropped))
	}
	if s.Namespaces == 0 {
		pterm.Warning.Println("No nameable classes found; nothing was written")
	}
}

// printCheck renders an up-to-date check.
func printCheck(r *generate.CheckResult) {
	if r.UpToDate {
		pterm.Success.Println("Generated tree is up to date")
		return
	}
	for _, group := range []struct {
		label string
		paths []string
	}{
		{"changed", r.Changed},
		{"missing", r.Missing},
		{"stale", r.Stale},
	} {
		for _, p := range group.paths {
			pterm.Printfln("  %-8s %s", group.label, p)
		}
	}
	pterm.Error.Printfln("Generated tree is out of date (%d changed, %d missing, %d stale)",
		len(r.Changed), len(r.Missing), len(r.Stale))
}
