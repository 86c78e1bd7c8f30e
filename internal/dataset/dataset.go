// Package dataset loads the grinder catalog, recipe table and troubleshooting
// tree from YAML. The built-in tables are embedded in the binary; a data
// directory may override any of the three files.
package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// File names, both embedded and in an override directory.
const (
	GrindersFile        = "grinders.yaml"
	RecipesFile         = "recipes.yaml"
	TroubleshootingFile = "troubleshooting.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Dataset holds the three static tables in file order.
type Dataset struct {
	Grinders []domain.Grinder
	Recipes  []domain.BrewRecipe
	Nodes    []domain.Node
}

// Default parses the embedded tables.
func Default() (*Dataset, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded data: %w", err)
	}
	return Load(sub)
}

// Load reads and validates the three files from fsys.
func Load(fsys fs.FS) (*Dataset, error) {
	read := func(name string) ([]byte, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}

	g, err := read(GrindersFile)
	if err != nil {
		return nil, err
	}
	r, err := read(RecipesFile)
	if err != nil {
		return nil, err
	}
	t, err := read(TroubleshootingFile)
	if err != nil {
		return nil, err
	}
	return Parse(g, r, t)
}

// LoadDir loads tables from dir, falling back to the embedded copy for any
// file the directory does not contain. An empty dir means Default.
func LoadDir(dir string) (*Dataset, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded data: %w", err)
	}
	return Load(overlayFS{dir: dir, base: sub})
}

// overlayFS prefers files in dir and falls back to base.
type overlayFS struct {
	dir  string
	base fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := os.Open(filepath.Join(o.dir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.base.Open(name)
}

// Parse decodes and validates the three YAML documents. Cross-file checks
// (recipe grinder IDs must exist in the catalog) run only when every file
// parsed cleanly.
func Parse(grindersYAML, recipesYAML, nodesYAML []byte) (*Dataset, error) {
	var errs ValidationErrors

	grinders, gErrs := parseGrinders(grindersYAML, GrindersFile)
	errs = append(errs, gErrs...)

	recipes, rErrs := parseRecipes(recipesYAML, RecipesFile)
	errs = append(errs, rErrs...)

	nodes, nErrs := parseNodes(nodesYAML, TroubleshootingFile)
	errs = append(errs, nErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	if refErrs := checkGrinderRefs(grinders, recipes, RecipesFile); len(refErrs) > 0 {
		return nil, refErrs
	}

	return &Dataset{Grinders: grinders, Recipes: recipes, Nodes: nodes}, nil
}

func checkGrinderRefs(grinders []domain.Grinder, recipes []domain.BrewRecipe, source string) ValidationErrors {
	known := make(map[string]bool, len(grinders))
	for _, g := range grinders {
		known[g.ID] = true
	}

	var errs ValidationErrors
	for i, r := range recipes {
		for j, gs := range r.GrindSettings {
			if !known[gs.GrinderID] {
				errs = append(errs, ValidationError{
					File:    source,
					Field:   fmt.Sprintf("recipes[%d].grind_settings[%d].grinder_id", i, j),
					Message: fmt.Sprintf("unknown grinder %q", gs.GrinderID),
				})
			}
		}
	}
	return errs
}
