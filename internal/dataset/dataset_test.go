package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

func TestDefaultLoads(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Grinders, 14)
	assert.Len(t, ds.Recipes, 42)
	assert.NotEmpty(t, ds.Nodes)
	assert.Equal(t, domain.RootNodeID, ds.Nodes[0].ID)
}

func TestDefaultGrinderFields(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	first := ds.Grinders[0]
	assert.Equal(t, "timemore-078s", first.ID)
	assert.Equal(t, "Timemore", first.Brand)
	assert.Equal(t, domain.GrinderElectric, first.Type)
}

func TestDefaultRecipesReferenceKnownGrinders(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	known := map[string]bool{}
	for _, g := range ds.Grinders {
		known[g.ID] = true
	}
	for _, r := range ds.Recipes {
		require.NotEmpty(t, r.GrindSettings)
		for _, gs := range r.GrindSettings {
			assert.True(t, known[gs.GrinderID], "unknown grinder %s", gs.GrinderID)
		}
	}
}

const validGrinders = `
grinders:
  - id: g1
    name: One
    brand: Acme
    type: manual
`

const validRecipes = `
recipes:
  - brew_method: v60
    roast_level: light
    grind_settings:
      - grinder_id: g1
        value: "20"
        unit: clicks
    ratio: "1:16"
    temperature: 96°C
    time: 3:00
    steps: [Bloom, Pour]
`

const validNodes = `
nodes:
  - id: root
    question: How does it taste?
    answers:
      - label: Sour
        solution: Grind finer
        adjustment: grind_finer
`

func TestParseValid(t *testing.T) {
	ds, err := Parse([]byte(validGrinders), []byte(validRecipes), []byte(validNodes))
	require.NoError(t, err)

	require.Len(t, ds.Recipes, 1)
	r := ds.Recipes[0]
	assert.Equal(t, domain.MethodV60, r.BrewMethod)
	assert.Equal(t, "1:16", r.Ratio)
	assert.Equal(t, "3:00", r.Time)
	assert.Equal(t, domain.UnitClicks, r.GrindSettings[0].Unit)
	assert.Equal(t, domain.AdjustGrindFiner, ds.Nodes[0].Answers[0].Adjustment)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name     string
		grinders string
		recipes  string
		nodes    string
		want     string
	}{
		{
			name:     "unknown grinder type",
			grinders: strings.Replace(validGrinders, "manual", "steam", 1),
			recipes:  validRecipes,
			nodes:    validNodes,
			want:     "grinders[0].type",
		},
		{
			name:     "duplicate grinder",
			grinders: validGrinders + "  - id: g1\n    name: Two\n    brand: Acme\n    type: electric\n",
			recipes:  validRecipes,
			nodes:    validNodes,
			want:     `duplicate id "g1"`,
		},
		{
			name:     "unknown brew method",
			grinders: validGrinders,
			recipes:  strings.Replace(validRecipes, "v60", "siphon", 1),
			nodes:    validNodes,
			want:     "recipes[0].brew_method",
		},
		{
			name:     "unknown grinder reference",
			grinders: validGrinders,
			recipes:  strings.Replace(validRecipes, "grinder_id: g1", "grinder_id: g9", 1),
			nodes:    validNodes,
			want:     `unknown grinder "g9"`,
		},
		{
			name:     "answer with next and solution",
			grinders: validGrinders,
			recipes:  validRecipes,
			nodes:    strings.Replace(validNodes, "solution: Grind finer", "solution: Grind finer\n        next: root", 1),
			want:     "both next and solution",
		},
		{
			name:     "unknown adjustment",
			grinders: validGrinders,
			recipes:  validRecipes,
			nodes:    strings.Replace(validNodes, "grind_finer", "pray", 1),
			want:     `unknown adjustment "pray"`,
		},
		{
			name:     "malformed yaml",
			grinders: "grinders: [",
			recipes:  validRecipes,
			nodes:    validNodes,
			want:     "grinders.yaml: yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.grinders), []byte(tt.recipes), []byte(tt.nodes))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrIntegrity))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDirOverridesSingleFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TroubleshootingFile), []byte(validNodes), 0o644))

	ds, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Len(t, ds.Nodes, 1)
	assert.Len(t, ds.Grinders, 14, "grinders fall back to embedded copy")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
