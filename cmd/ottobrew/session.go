package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/storage"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the saved guide progress",
	}
	cmd.AddCommand(newSessionShowCmd(a), newSessionResetCmd(a))
	return cmd
}

func sessionID(a *app, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Session
}

func newSessionShowCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the saved state of a session slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			id := sessionID(a, args)
			state, err := store.Load(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				return userError("no saved progress for session %q", id)
			}
			if err != nil {
				return sysError(err)
			}

			if raw {
				data, err := storage.EncodeState(state)
				if err != nil {
					return sysError(err)
				}
				cmd.OutOrStdout().Write(append(data, '\n'))
				return nil
			}

			p := display.NewPrinter(cmd.OutOrStdout())
			p.PrintStep(fmt.Sprintf("Session %s: %s step", id, state.CurrentStep))
			p.PrintInstruction("Method:  " + orDash(state.BrewMethod.Label()))
			p.PrintInstruction("Roast:   " + orDash(state.RoastLevel.Label()))
			grinderName := ""
			if state.Grinder != nil {
				grinderName = state.Grinder.DisplayName()
			}
			p.PrintInstruction("Grinder: " + orDash(grinderName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "json", false, "print the stored JSON")
	return cmd
}

func newSessionResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [id]",
		Short: "Discard the saved state of a session slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := a.engine(ctx)
			if err != nil {
				return err
			}
			id := sessionID(a, args)
			if err := eng.Discard(ctx, id); err != nil {
				return sysError(err)
			}
			display.NewPrinter(cmd.OutOrStdout()).PrintHint(fmt.Sprintf("Session %s cleared.", id))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
