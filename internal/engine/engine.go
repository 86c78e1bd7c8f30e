// Package engine ties the wizard to the catalog, the recipe table and the
// session slot.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/wizard"
)

// Option configures the engine.
type Option func(*Engine)

// WithSessionID sets the session used when Open is called without one.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.defaultSession = id
	}
}

// Engine runs guide sessions. It depends only on interfaces and is fully
// testable with in-memory implementations.
type Engine struct {
	grinders       domain.GrinderCatalog
	recipes        domain.RecipeTable
	store          domain.StateStore
	log            *logger.Logger
	defaultSession string
}

// New creates a guide engine. store may be nil, in which case sessions are
// never persisted.
func New(grinders domain.GrinderCatalog, recipes domain.RecipeTable, store domain.StateStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		grinders: grinders,
		recipes:  recipes,
		store:    store,
		log:      log.With("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session is one run of the wizard, mirrored to the slot under ID.
type Session struct {
	id     string
	wiz    *wizard.Wizard
	cancel context.CancelFunc
	unsub  func()
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Wizard returns the session's state machine.
func (s *Session) Wizard() *wizard.Wizard { return s.wiz }

// Close stops mirroring the wizard to the slot.
func (s *Session) Close() {
	s.unsub()
	s.cancel()
}

// Open starts a session. An empty id falls back to the configured session
// and then to a fresh ID. A persisted state for the ID is restored; slot
// failures are logged and the session starts fresh, since the guide works
// without persistence.
func (e *Engine) Open(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	if id == "" {
		id = e.defaultSession
	}
	if id == "" {
		id = generateID()
	}

	wiz := wizard.New(e.log)
	if e.store != nil {
		state, err := e.store.Load(ctx, id)
		switch {
		case err == nil:
			wiz.Restore(state)
			e.log.Info("resumed session %s at step %s", id, wiz.State().CurrentStep)
		case errors.Is(err, domain.ErrNotFound):
			e.log.Debug("no saved state for session %s", id)
		default:
			e.log.Warn("loading session %s: %v (starting fresh)", id, err)
		}
	}

	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess := &Session{id: id, wiz: wiz, cancel: cancel, unsub: func() {}}
	if e.store != nil {
		sess.unsub = wiz.Subscribe(func(state domain.WizardState) {
			if sctx.Err() != nil {
				return
			}
			if err := e.store.Save(sctx, id, state); err != nil {
				e.log.Warn("saving session %s: %v", id, err)
			}
		})
	}

	e.log.Info("opened session %s", id)
	return sess, nil
}

// Discard deletes the persisted state for id. A missing slot is not an
// error.
func (e *Engine) Discard(ctx context.Context, id string) error {
	if id == "" {
		id = e.defaultSession
	}
	if e.store == nil || id == "" {
		return nil
	}
	if err := e.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("discarding session %s: %w", id, err)
	}
	e.log.Info("discarded session %s", id)
	return nil
}

// AvailableGrinders returns the grinders that have a recipe for the state's
// method and roast, or nothing until both are chosen.
func (e *Engine) AvailableGrinders(state domain.WizardState) []domain.Grinder {
	if state.BrewMethod == "" || state.RoastLevel == "" {
		return []domain.Grinder{}
	}
	ids := e.recipes.AvailableGrinderIDs(state.BrewMethod, state.RoastLevel)
	return e.grinders.ByIDs(ids)
}

// Result is what the results step shows.
type Result struct {
	Match domain.Match
	// Grinder is the selected grinder, if any.
	Grinder *domain.Grinder
	// GrindMatches is true when the recipe carries a setting for Grinder.
	GrindMatches bool
}

// Result resolves the recipe for a complete state. An incomplete state
// yields MatchNone.
func (e *Engine) Result(state domain.WizardState) Result {
	if !state.Complete() {
		return Result{Match: domain.Match{Kind: domain.MatchNone}, Grinder: state.Clone().Grinder}
	}
	g := state.Grinder.Clone()
	m := e.recipes.Resolve(state.BrewMethod, state.RoastLevel, g.ID)
	if m.Kind == domain.MatchFallback {
		e.log.Info("no %s setting for %s/%s, showing closest recipe", g.ID, state.BrewMethod, state.RoastLevel)
	}
	return Result{
		Match:        m,
		Grinder:      &g,
		GrindMatches: m.Kind == domain.MatchExact,
	}
}
