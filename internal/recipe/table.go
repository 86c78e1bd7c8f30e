// Package recipe provides the brew recipe table and its matching rules.
package recipe

import (
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeTable = (*Table)(nil)

// Table holds recipes in load order. Order matters: the first matching row
// wins a lookup. The table is immutable after construction and every
// accessor returns copies.
type Table struct {
	recipes []domain.BrewRecipe
	log     *logger.Logger
}

// NewTable builds a table from recipes.
func NewTable(recipes []domain.BrewRecipe, log *logger.Logger) *Table {
	t := &Table{
		recipes: make([]domain.BrewRecipe, 0, len(recipes)),
		log:     log.With("recipes"),
	}
	for _, r := range recipes {
		t.recipes = append(t.recipes, r.Clone())
	}
	t.log.Debug("table loaded, count=%d", len(t.recipes))
	return t
}

// List returns every recipe in table order.
func (t *Table) List() []domain.BrewRecipe {
	out := make([]domain.BrewRecipe, 0, len(t.recipes))
	for _, r := range t.recipes {
		out = append(out, r.Clone())
	}
	return out
}

// RecipesByBrewMethod returns all recipes for method in table order.
func (t *Table) RecipesByBrewMethod(method domain.BrewMethod) []domain.BrewRecipe {
	out := make([]domain.BrewRecipe, 0)
	for _, r := range t.recipes {
		if r.BrewMethod == method {
			out = append(out, r.Clone())
		}
	}
	return out
}

// AvailableGrinderIDs returns the grinder IDs that have a setting in any
// recipe for (method, roast), de-duplicated in first-seen order.
func (t *Table) AvailableGrinderIDs(method domain.BrewMethod, roast domain.RoastLevel) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range t.recipes {
		if r.BrewMethod != method || r.RoastLevel != roast {
			continue
		}
		for _, gs := range r.GrindSettings {
			if seen[gs.GrinderID] {
				continue
			}
			seen[gs.GrinderID] = true
			out = append(out, gs.GrinderID)
		}
	}
	return out
}

// Resolve looks up the recipe for (method, roast, grinderID) in two phases.
// The first recipe matching method and roast that carries a setting for the
// grinder is an exact match. Failing that, the first recipe matching method
// and roast is a fallback match, whose grind settings belong to other
// grinders.
func (t *Table) Resolve(method domain.BrewMethod, roast domain.RoastLevel, grinderID string) domain.Match {
	fallback := -1
	for i, r := range t.recipes {
		if r.BrewMethod != method || r.RoastLevel != roast {
			continue
		}
		if _, ok := r.SettingFor(grinderID); ok {
			return domain.Match{Kind: domain.MatchExact, Recipe: r.Clone(), GrinderID: grinderID}
		}
		if fallback < 0 {
			fallback = i
		}
	}

	if fallback >= 0 {
		t.log.Debug("no exact recipe for %s/%s/%s, falling back", method, roast, grinderID)
		return domain.Match{Kind: domain.MatchFallback, Recipe: t.recipes[fallback].Clone(), GrinderID: grinderID}
	}

	t.log.Debug("no recipe for %s/%s", method, roast)
	return domain.Match{Kind: domain.MatchNone, GrinderID: grinderID}
}

// GetRecipe returns the exact or fallback recipe for the combination, or
// false when no recipe matches method and roast.
func (t *Table) GetRecipe(method domain.BrewMethod, roast domain.RoastLevel, grinderID string) (domain.BrewRecipe, bool) {
	m := t.Resolve(method, roast, grinderID)
	if !m.Found() {
		return domain.BrewRecipe{}, false
	}
	return m.Recipe, true
}
