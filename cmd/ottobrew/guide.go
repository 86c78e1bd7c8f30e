package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/grinder"
)

const optBack = "\x00back"

func newGuideCmd(a *app) *cobra.Command {
	var (
		plain   bool
		session string
		fresh   bool
	)

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Walk through brew method, roast and grinder to a recipe",
		Long: `Walk through brew method, roast and grinder to a recipe.

Progress is kept in the configured session slot, so an interrupted guide
resumes where it stopped. Use --new to start over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := a.engine(ctx)
			if err != nil {
				return err
			}
			if fresh {
				if err := eng.Discard(ctx, session); err != nil {
					a.log.Warn("%v", err)
				}
			}

			sess, err := eng.Open(ctx, session)
			if err != nil {
				return sysError(err)
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			p := display.NewPrinter(out)
			interactive := !plain && display.IsInteractive()
			if interactive {
				p.Println(display.RenderBanner())
			}
			if st := sess.Wizard().State(); st.CurrentStep != domain.StepMethod {
				p.PrintHint(fmt.Sprintf("Resuming session %s at the %s step. Use --new to start over.", sess.ID(), st.CurrentStep))
			}

			if !interactive {
				g := &lineGuide{
					eng:    eng,
					sess:   sess,
					parser: conversation.NewKeywordParser(a.log),
					p:      p,
				}
				return g.run(cmd.InOrStdin())
			}
			return runFormGuide(eng, sess, a.catalog, out)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "line mode: numbered options instead of interactive forms")
	cmd.Flags().StringVar(&session, "session", "", "session slot to use (default from config)")
	cmd.Flags().BoolVar(&fresh, "new", false, "discard saved progress and start over")
	return cmd
}

// newForm creates a form with the guide's theme.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeCharm())
	if !display.IsInteractive() {
		form = form.WithAccessible(true)
	}
	return form
}

// runFormGuide drives the wizard with huh selects until the user is done
// or aborts.
func runFormGuide(eng *engine.Engine, sess *engine.Session, catalog *grinder.Catalog, out io.Writer) error {
	wiz := sess.Wizard()

	for {
		state := wiz.State()
		var err error
		done := false

		switch state.CurrentStep {
		case domain.StepMethod:
			err = selectMethod(state, wiz.SetBrewMethod)
		case domain.StepRoast:
			err = selectRoast(state, wiz.SetRoastLevel, wiz.PrevStep)
		case domain.StepGrinder:
			err = selectGrinder(eng, catalog, state, wiz.SetGrinder, wiz.PrevStep)
		default:
			md := display.RecipeMarkdown(eng.Result(state))
			fmt.Fprint(out, display.RenderMarkdown(md, display.TermWidth()))
			done, err = selectNext(wiz.Reset, wiz.PrevStep)
		}

		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return sysError(err)
		}
		if done {
			return nil
		}
	}
}

func selectMethod(state domain.WizardState, set func(domain.BrewMethod)) error {
	value := string(state.BrewMethod)
	opts := make([]huh.Option[string], 0, len(domain.BrewMethods()))
	for _, m := range domain.BrewMethods() {
		opts = append(opts, huh.NewOption(m.Label(), string(m)))
	}

	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Step 1/3: How are you brewing?").
			Options(opts...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return err
	}
	set(domain.BrewMethod(value))
	return nil
}

func selectRoast(state domain.WizardState, set func(domain.RoastLevel), back func()) error {
	value := string(state.RoastLevel)
	opts := make([]huh.Option[string], 0, len(domain.RoastLevels())+1)
	for _, r := range domain.RoastLevels() {
		opts = append(opts, huh.NewOption(r.Label(), string(r)))
	}
	opts = append(opts, huh.NewOption("← Back", optBack))

	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Step 2/3: Roast level").
			Description(state.BrewMethod.Label()).
			Options(opts...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if value == optBack {
		back()
		return nil
	}
	set(domain.RoastLevel(value))
	return nil
}

func selectGrinder(eng *engine.Engine, catalog *grinder.Catalog, state domain.WizardState, set func(domain.Grinder), back func()) error {
	value := ""
	if state.Grinder != nil {
		value = state.Grinder.ID
	}

	available := eng.AvailableGrinders(state)
	opts := make([]huh.Option[string], 0, len(available)+1)
	for _, g := range available {
		opts = append(opts, huh.NewOption(g.DisplayName(), g.ID))
	}
	opts = append(opts, huh.NewOption("← Back", optBack))

	desc := fmt.Sprintf("%s · %s roast. Type / to filter.", state.BrewMethod.Label(), state.RoastLevel.Label())
	if len(available) == 0 {
		desc = noGrindersHint
	}

	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Step 3/3: Grinder").
			Description(desc).
			Options(opts...).
			Filtering(true).
			Height(12).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if value == optBack {
		back()
		return nil
	}
	g, ok := catalog.ByID(value)
	if !ok {
		return fmt.Errorf("grinder %q: %w", value, domain.ErrNotFound)
	}
	set(g)
	return nil
}

func selectNext(reset, back func()) (done bool, err error) {
	value := "done"
	form := newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("What next?").
			Options(
				huh.NewOption("Done", "done"),
				huh.NewOption("Change grinder", "grinder"),
				huh.NewOption("Start over", "reset"),
			).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	switch value {
	case "grinder":
		back()
	case "reset":
		reset()
	default:
		return true, nil
	}
	return false, nil
}
