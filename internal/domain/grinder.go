package domain

// GrinderType classifies a grinder as hand-cranked or motorised.
type GrinderType string

const (
	GrinderManual   GrinderType = "manual"
	GrinderElectric GrinderType = "electric"
)

// Valid reports whether t is one of the known grinder types.
func (t GrinderType) Valid() bool {
	return t == GrinderManual || t == GrinderElectric
}

// Grinder is a catalog entry. Grinders are loaded once and never mutated.
type Grinder struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Brand    string      `json:"brand"`
	Type     GrinderType `json:"type"`
	Variants []string    `json:"variants,omitempty"`
}

// DisplayName returns "Brand Name", with the variant appended when there is one.
func (g Grinder) DisplayName() string {
	name := g.Brand + " " + g.Name
	if len(g.Variants) > 0 {
		name += " (" + g.Variants[0] + ")"
	}
	return name
}

// Clone returns a deep copy so callers cannot reach the catalog's slices.
func (g Grinder) Clone() Grinder {
	if g.Variants != nil {
		g.Variants = append([]string(nil), g.Variants...)
	}
	return g
}
