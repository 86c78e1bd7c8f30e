package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
)

// noGrindersHint is shown when no grinder has a recipe for the chosen
// method and roast.
const noGrindersHint = "No grinders have a recipe for this combination. Type back to change your choices."

// guideOption is one numbered choice on a wizard screen. apply returns
// true when the guide should end.
type guideOption struct {
	label string
	apply func() (done bool)
}

// lineGuide runs the wizard over plain text lines, for pipes and
// terminals that cannot host the interactive forms.
type lineGuide struct {
	eng    *engine.Engine
	sess   *engine.Session
	parser domain.IntentParser
	p      *display.Printer
}

func (g *lineGuide) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	wiz := g.sess.Wizard()

	for {
		state := wiz.State()
		options := g.screen(state)

		g.p.Printf("> ")
		if !scanner.Scan() {
			g.p.Println()
			return scanner.Err()
		}

		intent := g.parser.Parse(scanner.Text())
		switch intent.Type {
		case domain.IntentQuit:
			return nil
		case domain.IntentHelp:
			g.help()
		case domain.IntentBack:
			wiz.PrevStep()
		case domain.IntentReset:
			wiz.Reset()
		case domain.IntentNext:
			if !selectionMade(state) {
				g.p.PrintHint("Pick an option first.")
				continue
			}
			wiz.NextStep()
		case domain.IntentChoose:
			if intent.Choice > len(options) {
				g.p.PrintUrgent(fmt.Sprintf("There is no option %d.", intent.Choice))
				continue
			}
			if options[intent.Choice-1].apply() {
				return nil
			}
		default:
			g.p.PrintHint("Type a number to choose, or 'help'.")
		}
	}
}

// screen prints the current step and returns its options.
func (g *lineGuide) screen(state domain.WizardState) []guideOption {
	wiz := g.sess.Wizard()
	g.p.Println()

	switch state.CurrentStep {
	case domain.StepMethod:
		g.p.PrintStep("Step 1/3: Brew method")
		g.p.PrintChat("How are you brewing?")
		var opts []guideOption
		for _, m := range domain.BrewMethods() {
			m := m
			opts = append(opts, guideOption{label: m.Label(), apply: func() bool { wiz.SetBrewMethod(m); return false }})
		}
		g.printOptions(opts)
		return opts

	case domain.StepRoast:
		g.p.PrintStep("Step 2/3: Roast level")
		g.p.PrintChat(fmt.Sprintf("What roast are you brewing on the %s?", state.BrewMethod.Label()))
		var opts []guideOption
		for _, r := range domain.RoastLevels() {
			r := r
			opts = append(opts, guideOption{label: r.Label(), apply: func() bool { wiz.SetRoastLevel(r); return false }})
		}
		g.printOptions(opts)
		return opts

	case domain.StepGrinder:
		g.p.PrintStep("Step 3/3: Grinder")
		available := g.eng.AvailableGrinders(state)
		if len(available) == 0 {
			g.p.PrintHint(noGrindersHint)
			return nil
		}
		g.p.PrintChat("Which grinder do you use?")
		var opts []guideOption
		for _, gr := range available {
			gr := gr
			opts = append(opts, guideOption{label: gr.DisplayName(), apply: func() bool { wiz.SetGrinder(gr); return false }})
		}
		g.printOptions(opts)
		return opts

	default:
		res := g.eng.Result(state)
		g.p.PrintStep("Your recipe")
		g.p.Println(display.RecipeMarkdown(res))
		opts := []guideOption{
			{label: "Start over", apply: func() bool { wiz.Reset(); return false }},
			{label: "Change grinder", apply: func() bool { wiz.PrevStep(); return false }},
			{label: "Done", apply: func() bool { return true }},
		}
		g.printOptions(opts)
		return opts
	}
}

func (g *lineGuide) printOptions(opts []guideOption) {
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.label)
	}
	g.p.PrintOptions(labels)
}

func (g *lineGuide) help() {
	g.p.PrintHint("Commands: a number to choose, back, next, reset, quit.")
}

func selectionMade(s domain.WizardState) bool {
	switch s.CurrentStep {
	case domain.StepMethod:
		return s.BrewMethod != ""
	case domain.StepRoast:
		return s.RoastLevel != ""
	case domain.StepGrinder:
		return s.Grinder != nil
	default:
		return false
	}
}
