package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

type rawGrinderDoc struct {
	Grinders []rawGrinder `yaml:"grinders"`
}

type rawGrinder struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Brand    string   `yaml:"brand"`
	Type     string   `yaml:"type"`
	Variants []string `yaml:"variants"`
}

type rawRecipeDoc struct {
	Recipes []rawRecipe `yaml:"recipes"`
}

type rawRecipe struct {
	BrewMethod    string            `yaml:"brew_method"`
	RoastLevel    string            `yaml:"roast_level"`
	GrindSettings []rawGrindSetting `yaml:"grind_settings"`
	Ratio         string            `yaml:"ratio"`
	Temperature   string            `yaml:"temperature"`
	Time          string            `yaml:"time"`
	Steps         []string          `yaml:"steps"`
}

type rawGrindSetting struct {
	GrinderID string `yaml:"grinder_id"`
	Value     string `yaml:"value"`
	Unit      string `yaml:"unit"`
	Notes     string `yaml:"notes"`
}

type rawTreeDoc struct {
	Nodes []rawNode `yaml:"nodes"`
}

type rawNode struct {
	ID       string      `yaml:"id"`
	Question string      `yaml:"question"`
	Answers  []rawAnswer `yaml:"answers"`
}

type rawAnswer struct {
	Label      string `yaml:"label"`
	Next       string `yaml:"next"`
	Solution   string `yaml:"solution"`
	Adjustment string `yaml:"adjustment"`
}

func yamlError(source string, err error) ValidationErrors {
	return ValidationErrors{{File: source, Field: "yaml", Message: err.Error()}}
}

func parseGrinders(data []byte, source string) ([]domain.Grinder, ValidationErrors) {
	var doc rawGrinderDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlError(source, err)
	}

	var errs ValidationErrors
	if len(doc.Grinders) == 0 {
		errs = append(errs, ValidationError{File: source, Field: "grinders", Message: "no grinders defined"})
	}

	seen := make(map[string]bool, len(doc.Grinders))
	out := make([]domain.Grinder, 0, len(doc.Grinders))
	for i, raw := range doc.Grinders {
		field := func(name string) string { return fmt.Sprintf("grinders[%d].%s", i, name) }

		if raw.ID == "" {
			errs = append(errs, ValidationError{File: source, Field: field("id"), Message: "required"})
		} else if seen[raw.ID] {
			errs = append(errs, ValidationError{File: source, Field: field("id"), Message: fmt.Sprintf("duplicate id %q", raw.ID)})
		}
		seen[raw.ID] = true

		if raw.Name == "" {
			errs = append(errs, ValidationError{File: source, Field: field("name"), Message: "required"})
		}
		if raw.Brand == "" {
			errs = append(errs, ValidationError{File: source, Field: field("brand"), Message: "required"})
		}
		typ := domain.GrinderType(raw.Type)
		if !typ.Valid() {
			errs = append(errs, ValidationError{File: source, Field: field("type"), Message: fmt.Sprintf("must be manual or electric, got %q", raw.Type)})
		}

		out = append(out, domain.Grinder{
			ID:       raw.ID,
			Name:     raw.Name,
			Brand:    raw.Brand,
			Type:     typ,
			Variants: raw.Variants,
		})
	}
	return out, errs
}

func parseRecipes(data []byte, source string) ([]domain.BrewRecipe, ValidationErrors) {
	var doc rawRecipeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlError(source, err)
	}

	var errs ValidationErrors
	out := make([]domain.BrewRecipe, 0, len(doc.Recipes))
	for i, raw := range doc.Recipes {
		field := func(name string) string { return fmt.Sprintf("recipes[%d].%s", i, name) }

		method := domain.BrewMethod(raw.BrewMethod)
		if !method.Valid() {
			errs = append(errs, ValidationError{File: source, Field: field("brew_method"), Message: fmt.Sprintf("unknown brew method %q", raw.BrewMethod)})
		}
		roast := domain.RoastLevel(raw.RoastLevel)
		if !roast.Valid() {
			errs = append(errs, ValidationError{File: source, Field: field("roast_level"), Message: fmt.Sprintf("unknown roast level %q", raw.RoastLevel)})
		}
		if len(raw.GrindSettings) == 0 {
			errs = append(errs, ValidationError{File: source, Field: field("grind_settings"), Message: "at least one grind setting required"})
		}
		for _, req := range []struct{ name, value string }{
			{"ratio", raw.Ratio},
			{"temperature", raw.Temperature},
			{"time", raw.Time},
		} {
			if req.value == "" {
				errs = append(errs, ValidationError{File: source, Field: field(req.name), Message: "required"})
			}
		}
		if len(raw.Steps) == 0 {
			errs = append(errs, ValidationError{File: source, Field: field("steps"), Message: "at least one step required"})
		}

		settings := make([]domain.GrindSetting, 0, len(raw.GrindSettings))
		for j, gs := range raw.GrindSettings {
			gsField := fmt.Sprintf("recipes[%d].grind_settings[%d]", i, j)
			if gs.GrinderID == "" {
				errs = append(errs, ValidationError{File: source, Field: gsField + ".grinder_id", Message: "required"})
			}
			if gs.Value == "" {
				errs = append(errs, ValidationError{File: source, Field: gsField + ".value", Message: "required"})
			}
			unit := domain.GrindUnit(gs.Unit)
			if !unit.Valid() {
				errs = append(errs, ValidationError{File: source, Field: gsField + ".unit", Message: fmt.Sprintf("unknown unit %q", gs.Unit)})
			}
			settings = append(settings, domain.GrindSetting{
				GrinderID: gs.GrinderID,
				Value:     gs.Value,
				Unit:      unit,
				Notes:     gs.Notes,
			})
		}

		out = append(out, domain.BrewRecipe{
			BrewMethod:    method,
			RoastLevel:    roast,
			GrindSettings: settings,
			Ratio:         raw.Ratio,
			Temperature:   raw.Temperature,
			Time:          raw.Time,
			Steps:         raw.Steps,
		})
	}
	return out, errs
}

// parseNodes checks node-local structure only. Graph-level checks (root,
// dangling references, cycles) belong to troubleshoot.Tree.Validate.
func parseNodes(data []byte, source string) ([]domain.Node, ValidationErrors) {
	var doc rawTreeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlError(source, err)
	}

	var errs ValidationErrors
	seen := make(map[string]bool, len(doc.Nodes))
	out := make([]domain.Node, 0, len(doc.Nodes))
	for i, raw := range doc.Nodes {
		field := func(name string) string { return fmt.Sprintf("nodes[%d].%s", i, name) }

		if raw.ID == "" {
			errs = append(errs, ValidationError{File: source, Field: field("id"), Message: "required"})
		} else if seen[raw.ID] {
			errs = append(errs, ValidationError{File: source, Field: field("id"), Message: fmt.Sprintf("duplicate id %q", raw.ID)})
		}
		seen[raw.ID] = true

		if raw.Question == "" {
			errs = append(errs, ValidationError{File: source, Field: field("question"), Message: "required"})
		}
		if len(raw.Answers) == 0 {
			errs = append(errs, ValidationError{File: source, Field: field("answers"), Message: "at least one answer required"})
		}

		answers := make([]domain.Answer, 0, len(raw.Answers))
		for j, ra := range raw.Answers {
			a := domain.Answer{
				Label:      ra.Label,
				Next:       ra.Next,
				Solution:   ra.Solution,
				Adjustment: domain.Adjustment(ra.Adjustment),
			}
			aField := fmt.Sprintf("nodes[%d].answers[%d]", i, j)
			if a.Label == "" {
				errs = append(errs, ValidationError{File: source, Field: aField + ".label", Message: "required"})
			}
			if a.Kind() == domain.AnswerInvalid {
				errs = append(errs, ValidationError{File: source, Field: aField, Message: "answer cannot have both next and solution"})
			}
			if a.Adjustment != "" {
				if a.Kind() != domain.AnswerLeaf {
					errs = append(errs, ValidationError{File: source, Field: aField + ".adjustment", Message: "adjustment is only valid on a solution"})
				} else if !a.Adjustment.Valid() {
					errs = append(errs, ValidationError{File: source, Field: aField + ".adjustment", Message: fmt.Sprintf("unknown adjustment %q", ra.Adjustment)})
				}
			}
			answers = append(answers, a)
		}

		out = append(out, domain.Node{ID: raw.ID, Question: raw.Question, Answers: answers})
	}
	return out, errs
}
