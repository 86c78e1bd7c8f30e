package domain

import "context"

// GrinderCatalog provides read access to the grinder list.
type GrinderCatalog interface {
	ByID(id string) (Grinder, bool)
	ByType(t GrinderType) []Grinder
	ByBrand(brand string) []Grinder
	ByIDs(ids []string) []Grinder
}

// RecipeTable resolves brew recipes.
type RecipeTable interface {
	Resolve(method BrewMethod, roast RoastLevel, grinderID string) Match
	RecipesByBrewMethod(method BrewMethod) []BrewRecipe
	AvailableGrinderIDs(method BrewMethod, roast RoastLevel) []string
}

// StateStore is the session-scoped persistence slot for wizard state.
// Implementations can be in-memory, SQLite, or anything else that can hold
// an opaque value per session ID.
type StateStore interface {
	Save(ctx context.Context, sessionID string, state WizardState) error
	Load(ctx context.Context, sessionID string) (WizardState, error)
	Delete(ctx context.Context, sessionID string) error
}

// IntentParser turns a line of user input into an Intent.
type IntentParser interface {
	Parse(input string) Intent
}
