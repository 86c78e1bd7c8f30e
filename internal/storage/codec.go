package storage

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// stateRecord is the persisted layout of a WizardState. Unset selections
// are written as JSON null.
type stateRecord struct {
	BrewMethod  *domain.BrewMethod `json:"brewMethod"`
	RoastLevel  *domain.RoastLevel `json:"roastLevel"`
	Grinder     *domain.Grinder    `json:"grinder"`
	CurrentStep int                `json:"currentStep"`
}

// EncodeState serializes state as
// {"brewMethod","roastLevel","grinder","currentStep"}.
func EncodeState(state domain.WizardState) ([]byte, error) {
	rec := stateRecord{
		Grinder:     state.Grinder,
		CurrentStep: int(state.CurrentStep),
	}
	if state.BrewMethod != "" {
		m := state.BrewMethod
		rec.BrewMethod = &m
	}
	if state.RoastLevel != "" {
		r := state.RoastLevel
		rec.RoastLevel = &r
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode wizard state: %w", err)
	}
	return data, nil
}

// DecodeState parses data written by EncodeState. The step is clamped into
// range; unknown enum values are kept and simply never match a recipe.
func DecodeState(data []byte) (domain.WizardState, error) {
	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.WizardState{}, fmt.Errorf("decode wizard state: %w", err)
	}

	state := domain.WizardState{
		Grinder:     rec.Grinder,
		CurrentStep: domain.Step(rec.CurrentStep).Clamp(),
	}
	if rec.BrewMethod != nil {
		state.BrewMethod = *rec.BrewMethod
	}
	if rec.RoastLevel != nil {
		state.RoastLevel = *rec.RoastLevel
	}
	return state, nil
}
