package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/dataset"
	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/troubleshoot"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the grinder, recipe and troubleshooting tables",
		Long: `Validate the grinder, recipe and troubleshooting tables.

Checks the built-in data, or the files in --data-dir, for unknown enum
values, missing fields, grinder references, and a well-formed
troubleshooting tree (root present, no dangling answers, no cycles).
Exits 2 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := display.NewPrinter(cmd.OutOrStdout())

			dataDir := ""
			if a.cfg != nil {
				dataDir = a.cfg.DataDir
			}
			ds, err := dataset.LoadDir(dataDir)
			if err != nil {
				p.PrintUrgent("Data tables failed validation:")
				p.Println(err.Error())
				return &exitError{code: exitSysError}
			}

			tree := troubleshoot.NewTree(ds.Nodes, a.log)
			failed := false
			for _, problem := range tree.Check() {
				if problem.Warning {
					p.PrintHint(problem.String())
					continue
				}
				failed = true
				p.PrintUrgent(problem.String())
			}
			if failed {
				return &exitError{code: exitSysError}
			}

			p.PrintStep(fmt.Sprintf("OK: %d grinders, %d recipes, %d troubleshooting nodes (%d with solutions)",
				len(ds.Grinders), len(ds.Recipes), len(ds.Nodes), len(tree.Leaves())))
			return nil
		},
	}
}
