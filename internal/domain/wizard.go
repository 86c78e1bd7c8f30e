package domain

// Step is a position in the linear guide wizard.
type Step int

const (
	StepMethod Step = iota
	StepRoast
	StepGrinder
	StepResults
)

// StepCount is the number of wizard steps.
const StepCount = int(StepResults) + 1

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepMethod:
		return "method"
	case StepRoast:
		return "roast"
	case StepGrinder:
		return "grinder"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// Clamp forces s into the StepMethod..StepResults range.
func (s Step) Clamp() Step {
	if s < StepMethod {
		return StepMethod
	}
	if s > StepResults {
		return StepResults
	}
	return s
}

// WizardState is the wizard's full state. Empty BrewMethod/RoastLevel and a
// nil Grinder mean "not chosen yet".
type WizardState struct {
	BrewMethod  BrewMethod
	RoastLevel  RoastLevel
	Grinder     *Grinder
	CurrentStep Step
}

// Complete reports whether all three selections are made.
func (s WizardState) Complete() bool {
	return s.BrewMethod != "" && s.RoastLevel != "" && s.Grinder != nil
}

// Clone returns a deep copy of the state.
func (s WizardState) Clone() WizardState {
	if s.Grinder != nil {
		g := s.Grinder.Clone()
		s.Grinder = &g
	}
	return s
}
