package main

import (
	"github.com/atotto/clipboard"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
)

// recipeOutput is the --json shape of a lookup.
type recipeOutput struct {
	Match        string               `json:"match"`
	Grinder      *domain.Grinder      `json:"grinder,omitempty"`
	GrindSetting *domain.GrindSetting `json:"grindSetting,omitempty"`
	Recipe       *domain.BrewRecipe   `json:"recipe,omitempty"`
}

func newRecipeCmd(a *app) *cobra.Command {
	var (
		method    string
		roast     string
		grinderID string
		asJSON    bool
		copyCard  bool
	)

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Look up the recipe for a brew method, roast and grinder",
		Example: `  ottobrew recipe --method espresso --roast dark --grinder sage-barista-pro
  ottobrew recipe --method v60 --roast light --grinder fellow-ode-gen2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseBrewMethod(method)
			if err != nil {
				return userError("--method: %v", err)
			}
			r, err := domain.ParseRoastLevel(roast)
			if err != nil {
				return userError("--roast: %v", err)
			}
			if err := a.loadData(); err != nil {
				return err
			}
			g, ok := a.catalog.ByID(grinderID)
			if !ok {
				return userError("unknown grinder %q (see: ottobrew grinders)", grinderID)
			}

			eng := engine.New(a.catalog, a.recipes, nil, a.log)
			res := eng.Result(domain.WizardState{BrewMethod: m, RoastLevel: r, Grinder: &g, CurrentStep: domain.StepResults})

			out := cmd.OutOrStdout()
			if asJSON {
				payload := recipeOutput{Match: res.Match.Kind.String(), Grinder: res.Grinder}
				if res.Match.Found() {
					rec := res.Match.Recipe
					payload.Recipe = &rec
				}
				if gs, ok := res.Match.GrindSetting(); ok {
					payload.GrindSetting = &gs
				}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return sysError(err)
				}
				out.Write(append(data, '\n'))
			} else {
				md := display.RecipeMarkdown(res)
				out.Write([]byte(display.RenderMarkdown(md, display.TermWidth())))
				if copyCard {
					if err := clipboard.WriteAll(md); err != nil {
						a.log.Warn("copy to clipboard: %v", err)
						display.NewPrinter(cmd.ErrOrStderr()).PrintHint("Could not copy to the clipboard.")
					} else {
						display.NewPrinter(out).PrintHint("Recipe copied to the clipboard.")
					}
				}
			}

			if !res.Match.Found() {
				return &exitError{code: exitUserError}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "brew method: espresso, v60, chemex, aeropress, moka")
	cmd.Flags().StringVar(&roast, "roast", "", "roast level: light, medium, dark")
	cmd.Flags().StringVar(&grinderID, "grinder", "", "grinder ID (see: ottobrew grinders)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&copyCard, "copy", false, "also copy the recipe card (Markdown) to the clipboard")
	cmd.MarkFlagRequired("method")
	cmd.MarkFlagRequired("roast")
	cmd.MarkFlagRequired("grinder")
	return cmd
}
