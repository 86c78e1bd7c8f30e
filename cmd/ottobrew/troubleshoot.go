package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/troubleshoot"
)

func newTroubleshootCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "troubleshoot",
		Aliases: []string{"taste"},
		Short:   "Find out what to change when your coffee tastes off",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadData(); err != nil {
				return err
			}
			nav, err := troubleshoot.NewNavigator(a.tree)
			if err != nil {
				return sysError(err)
			}

			if plain || !display.IsInteractive() {
				lt := &lineTroubleshooter{
					nav:    nav,
					parser: conversation.NewKeywordParser(a.log),
					p:      display.NewPrinter(cmd.OutOrStdout()),
				}
				return lt.run(cmd.InOrStdin())
			}

			final, err := tea.NewProgram(display.NewTroubleshootModel(nav)).Run()
			if err != nil {
				return sysError(fmt.Errorf("troubleshooting dialog: %w", err))
			}
			if m, ok := final.(display.TroubleshootModel); ok && m.Err() != nil && errors.Is(m.Err(), domain.ErrIntegrity) {
				return sysError(m.Err())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "line mode: numbered answers instead of the interactive dialog")
	return cmd
}

// lineTroubleshooter runs the dialog over plain text lines.
type lineTroubleshooter struct {
	nav    *troubleshoot.Navigator
	parser domain.IntentParser
	p      *display.Printer
}

func (lt *lineTroubleshooter) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		lt.screen()

		lt.p.Printf("> ")
		if !scanner.Scan() {
			lt.p.Println()
			return scanner.Err()
		}

		intent := lt.parser.Parse(scanner.Text())
		switch intent.Type {
		case domain.IntentQuit:
			return nil
		case domain.IntentHelp:
			lt.p.PrintHint("Commands: a number to answer, back, reset (try another issue), quit.")
		case domain.IntentBack:
			if !lt.nav.Back() {
				lt.p.PrintHint("Already at the first question.")
			}
		case domain.IntentReset:
			lt.nav.Reset()
		case domain.IntentChoose:
			out, err := lt.nav.Choose(intent.Choice - 1)
			switch {
			case err == nil && out.Kind == troubleshoot.OutcomeNone:
				lt.p.PrintHint("There is no advice for this answer yet.")
			case errors.Is(err, domain.ErrInvalidAnswer):
				lt.p.PrintUrgent(fmt.Sprintf("There is no answer %d.", intent.Choice))
			case errors.Is(err, domain.ErrNotFound):
				lt.p.PrintUrgent("This answer leads nowhere yet. Type reset to start over.")
			case err != nil:
				return sysError(err)
			}
		default:
			lt.p.PrintHint("Type a number to answer, or 'help'.")
		}
	}
}

func (lt *lineTroubleshooter) screen() {
	node := lt.nav.Current()
	lt.p.Println()
	lt.p.PrintChat(node.Question)
	labels := make([]string, 0, len(node.Answers))
	for _, a := range node.Answers {
		labels = append(labels, a.Label)
	}
	lt.p.PrintOptions(labels)

	if sol, ok := lt.nav.Solution(); ok {
		lt.p.PrintSolution(sol)
		lt.p.PrintHint("Type reset to try another issue, or quit.")
	}
}
