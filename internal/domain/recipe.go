// Package domain defines the core types and interfaces for the brew guide.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// BrewMethod is the brewing device the recipe targets.
type BrewMethod string

const (
	MethodEspresso  BrewMethod = "espresso"
	MethodV60       BrewMethod = "v60"
	MethodChemex    BrewMethod = "chemex"
	MethodAeroPress BrewMethod = "aeropress"
	MethodMoka      BrewMethod = "moka"
)

// BrewMethods lists every method in wizard display order.
func BrewMethods() []BrewMethod {
	return []BrewMethod{MethodEspresso, MethodV60, MethodChemex, MethodAeroPress, MethodMoka}
}

// Valid reports whether m is one of the known methods.
func (m BrewMethod) Valid() bool {
	for _, known := range BrewMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable method name.
func (m BrewMethod) Label() string {
	switch m {
	case MethodEspresso:
		return "Espresso"
	case MethodV60:
		return "V60"
	case MethodChemex:
		return "Chemex"
	case MethodAeroPress:
		return "AeroPress"
	case MethodMoka:
		return "Moka Pot"
	default:
		return string(m)
	}
}

// ParseBrewMethod converts user input into a BrewMethod.
func ParseBrewMethod(s string) (BrewMethod, error) {
	m := BrewMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("brew method %q: %w", s, ErrInvalidSelection)
	}
	return m, nil
}

// RoastLevel is the roast degree of the beans.
type RoastLevel string

const (
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

// RoastLevels lists every roast level in wizard display order.
func RoastLevels() []RoastLevel {
	return []RoastLevel{RoastLight, RoastMedium, RoastDark}
}

// Valid reports whether r is one of the known roast levels.
func (r RoastLevel) Valid() bool {
	return r == RoastLight || r == RoastMedium || r == RoastDark
}

// Label returns the human-readable roast name.
func (r RoastLevel) Label() string {
	switch r {
	case RoastLight:
		return "Light"
	case RoastMedium:
		return "Medium"
	case RoastDark:
		return "Dark"
	default:
		return string(r)
	}
}

// ParseRoastLevel converts user input into a RoastLevel.
func ParseRoastLevel(s string) (RoastLevel, error) {
	r := RoastLevel(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("roast level %q: %w", s, ErrInvalidSelection)
	}
	return r, nil
}

// GrindUnit is how a grinder expresses its setting.
type GrindUnit string

const (
	UnitClicks  GrindUnit = "clicks"
	UnitSetting GrindUnit = "setting"
	UnitMicrons GrindUnit = "microns"
)

// Valid reports whether u is one of the known units.
func (u GrindUnit) Valid() bool {
	return u == UnitClicks || u == UnitSetting || u == UnitMicrons
}

// GrindSetting is a grinder-specific instruction. Value is a display string
// such as "0.6-1.4" and is never parsed.
type GrindSetting struct {
	GrinderID string    `json:"grinderId"`
	Value     string    `json:"value"`
	Unit      GrindUnit `json:"unit"`
	Notes     string    `json:"notes,omitempty"`
}

// BrewRecipe is one row of the recipe table, identified by
// (BrewMethod, RoastLevel, GrinderID within GrindSettings).
type BrewRecipe struct {
	BrewMethod    BrewMethod     `json:"brewMethod"`
	RoastLevel    RoastLevel     `json:"roastLevel"`
	GrindSettings []GrindSetting `json:"grindSetting"`
	Ratio         string         `json:"ratio"`
	Temperature   string         `json:"temperature"`
	Time          string         `json:"time"`
	Steps         []string       `json:"steps"`
}

// SettingFor returns the grind setting for the given grinder, if present.
func (r BrewRecipe) SettingFor(grinderID string) (GrindSetting, bool) {
	for _, gs := range r.GrindSettings {
		if gs.GrinderID == grinderID {
			return gs, true
		}
	}
	return GrindSetting{}, false
}

// Clone returns a deep copy of the recipe.
func (r BrewRecipe) Clone() BrewRecipe {
	r.GrindSettings = append([]GrindSetting(nil), r.GrindSettings...)
	r.Steps = append([]string(nil), r.Steps...)
	return r
}

// MatchKind tags how a recipe lookup was satisfied.
type MatchKind int

const (
	// MatchNone means no recipe exists for the method and roast pair.
	MatchNone MatchKind = iota
	// MatchExact means the recipe carries a setting for the requested grinder.
	MatchExact
	// MatchFallback means the recipe matches method and roast only; its grind
	// settings belong to a different grinder.
	MatchFallback
)

// String returns a human-readable match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "none"
	case MatchExact:
		return "exact"
	case MatchFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Match is the tagged result of a recipe lookup.
type Match struct {
	Kind      MatchKind
	Recipe    BrewRecipe
	GrinderID string // the grinder that was requested
}

// Found reports whether any recipe was returned.
func (m Match) Found() bool { return m.Kind != MatchNone }

// GrindSetting returns the requested grinder's setting. It is only ever
// present for exact matches.
func (m Match) GrindSetting() (GrindSetting, bool) {
	if m.Kind != MatchExact {
		return GrindSetting{}, false
	}
	return m.Recipe.SettingFor(m.GrinderID)
}
