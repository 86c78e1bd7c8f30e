package main

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
)

func newGrindersCmd(a *app) *cobra.Command {
	var (
		typ    string
		brand  string
		search string
		method string
		roast  string
		asJSON bool
		brands bool
	)

	cmd := &cobra.Command{
		Use:   "grinders",
		Short: "List grinders in the catalog",
		Example: `  ottobrew grinders --type manual
  ottobrew grinders --search ode
  ottobrew grinders --method v60 --roast light`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if typ != "" && !domain.GrinderType(typ).Valid() {
				return userError("--type must be manual or electric, got %q", typ)
			}
			if err := a.loadData(); err != nil {
				return err
			}

			if brands {
				return printBrands(cmd.OutOrStdout(), a.catalog.Brands(), asJSON)
			}

			var list []domain.Grinder
			switch {
			case method != "" || roast != "":
				m, err := domain.ParseBrewMethod(method)
				if err != nil {
					return userError("--method: %v", err)
				}
				r, err := domain.ParseRoastLevel(roast)
				if err != nil {
					return userError("--roast: %v", err)
				}
				eng := engine.New(a.catalog, a.recipes, nil, a.log)
				list = eng.AvailableGrinders(domain.WizardState{BrewMethod: m, RoastLevel: r})
			case search != "":
				list = a.catalog.Search(search)
			case typ != "":
				list = a.catalog.ByType(domain.GrinderType(typ))
			case brand != "":
				list = a.catalog.ByBrand(brand)
			default:
				list = a.catalog.List()
			}

			list = filterGrinders(list, domain.GrinderType(typ), brand)

			if asJSON {
				data, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return sysError(err)
				}
				cmd.OutOrStdout().Write(append(data, '\n'))
				return nil
			}
			display.NewPrinter(cmd.OutOrStdout()).PrintGrinders(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "only manual or electric grinders")
	cmd.Flags().StringVar(&brand, "brand", "", "only grinders of this brand (exact match)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive search over brand and name")
	cmd.Flags().StringVar(&method, "method", "", "only grinders with a recipe for this method (needs --roast)")
	cmd.Flags().StringVar(&roast, "roast", "", "only grinders with a recipe for this roast (needs --method)")
	cmd.Flags().BoolVar(&brands, "brands", false, "list the brands in the catalog instead of grinders")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func filterGrinders(list []domain.Grinder, typ domain.GrinderType, brand string) []domain.Grinder {
	out := make([]domain.Grinder, 0, len(list))
	for _, g := range list {
		if typ != "" && g.Type != typ {
			continue
		}
		if brand != "" && g.Brand != brand {
			continue
		}
		out = append(out, g)
	}
	return out
}

func printBrands(w io.Writer, brands []string, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(brands, "", "  ")
		if err != nil {
			return sysError(err)
		}
		w.Write(append(data, '\n'))
		return nil
	}
	p := display.NewPrinter(w)
	for _, b := range brands {
		p.PrintInstruction(b)
	}
	return nil
}
