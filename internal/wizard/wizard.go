// Package wizard implements the three-step guide state machine: brew
// method, roast level, grinder, then results.
package wizard

import (
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Listener receives a snapshot after every mutation.
type Listener func(domain.WizardState)

type subscription struct {
	id int
	fn Listener
}

// Wizard holds the current selections and step. All operations are total
// and synchronous; a read after a mutator returns sees the new state.
type Wizard struct {
	mu    sync.RWMutex
	state domain.WizardState

	subMu  sync.Mutex
	nextID int
	subs   []subscription

	log *logger.Logger
}

// New returns a wizard at StepMethod with nothing selected.
func New(log *logger.Logger) *Wizard {
	return &Wizard{
		state: domain.WizardState{CurrentStep: domain.StepMethod},
		log:   log.With("wizard"),
	}
}

// State returns a snapshot of the current state.
func (w *Wizard) State() domain.WizardState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// SetBrewMethod records the method and moves to the roast step.
func (w *Wizard) SetBrewMethod(m domain.BrewMethod) {
	w.mutate(func(s *domain.WizardState) {
		s.BrewMethod = m
		s.CurrentStep = domain.StepRoast
	})
	w.log.Debug("brew method=%s", m)
}

// SetRoastLevel records the roast and moves to the grinder step.
func (w *Wizard) SetRoastLevel(r domain.RoastLevel) {
	w.mutate(func(s *domain.WizardState) {
		s.RoastLevel = r
		s.CurrentStep = domain.StepGrinder
	})
	w.log.Debug("roast level=%s", r)
}

// SetGrinder records the grinder and moves to the results step.
func (w *Wizard) SetGrinder(g domain.Grinder) {
	w.mutate(func(s *domain.WizardState) {
		c := g.Clone()
		s.Grinder = &c
		s.CurrentStep = domain.StepResults
	})
	w.log.Debug("grinder=%s", g.ID)
}

// NextStep advances one step, staying at StepResults.
func (w *Wizard) NextStep() {
	w.mutate(func(s *domain.WizardState) {
		s.CurrentStep = (s.CurrentStep + 1).Clamp()
	})
}

// PrevStep goes back one step, staying at StepMethod.
func (w *Wizard) PrevStep() {
	w.mutate(func(s *domain.WizardState) {
		s.CurrentStep = (s.CurrentStep - 1).Clamp()
	})
}

// Reset clears every selection and returns to StepMethod.
func (w *Wizard) Reset() {
	w.mutate(func(s *domain.WizardState) {
		*s = domain.WizardState{CurrentStep: domain.StepMethod}
	})
	w.log.Debug("reset")
}

// Restore replaces the state wholesale, clamping an out-of-range step.
// Used when resuming a persisted session.
func (w *Wizard) Restore(state domain.WizardState) {
	w.mutate(func(s *domain.WizardState) {
		*s = state.Clone()
		s.CurrentStep = s.CurrentStep.Clamp()
	})
}

// Subscribe registers fn to be called synchronously after every mutation.
// The returned func removes the subscription.
func (w *Wizard) Subscribe(fn Listener) (cancel func()) {
	w.subMu.Lock()
	id := w.nextID
	w.nextID++
	w.subs = append(w.subs, subscription{id: id, fn: fn})
	w.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.subMu.Lock()
			for i, sub := range w.subs {
				if sub.id == id {
					w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
					break
				}
			}
			w.subMu.Unlock()
		})
	}
}

func (w *Wizard) mutate(fn func(*domain.WizardState)) {
	w.mu.Lock()
	fn(&w.state)
	snapshot := w.state.Clone()
	w.mu.Unlock()

	w.subMu.Lock()
	subs := append([]subscription(nil), w.subs...)
	w.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
