package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hammamikhairi/ottobrew/internal/engine"
)

// NoRecipeMessage is shown when no recipe exists for the selections.
const NoRecipeMessage = "No recipe found for this combination"

// RecipeMarkdown renders a result as a Markdown card. Grind numbers are
// shown only for an exact match; a fallback keeps ratio, temperature, time
// and steps but replaces the grind setting with a caveat.
func RecipeMarkdown(res engine.Result) string {
	var b strings.Builder

	if !res.Match.Found() {
		b.WriteString("# " + NoRecipeMessage + "\n")
		if res.Grinder != nil {
			fmt.Fprintf(&b, "\nNothing is dialed in for the **%s** with this method and roast.\n", res.Grinder.DisplayName())
		}
		return b.String()
	}

	r := res.Match.Recipe
	fmt.Fprintf(&b, "# %s · %s roast\n\n", r.BrewMethod.Label(), r.RoastLevel.Label())
	if res.Grinder != nil {
		fmt.Fprintf(&b, "**Grinder:** %s\n\n", res.Grinder.DisplayName())
	}

	b.WriteString("| Ratio | Temperature | Time |\n")
	b.WriteString("|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n", r.Ratio, r.Temperature, r.Time)

	if gs, ok := res.Match.GrindSetting(); ok {
		fmt.Fprintf(&b, "**Grind setting:** %s %s\n", gs.Value, gs.Unit)
		if gs.Notes != "" {
			fmt.Fprintf(&b, "\n_%s_\n", gs.Notes)
		}
	} else {
		b.WriteString("> No grind setting is recorded for your grinder. ")
		b.WriteString("Ratio, temperature, time and steps still apply; start at a medium setting for this method and adjust by taste.\n")
	}

	b.WriteString("\n## Steps\n\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

// RenderMarkdown renders md for a terminal of the given width. If glamour
// cannot build a renderer the raw Markdown is returned.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
