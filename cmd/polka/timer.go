package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/format"
	"github.com/polka-dots/polka/pkg/state"
	"github.com/polka-dots/polka/pkg/timer"
	"github.com/spf13/cobra"
)

// promptTimeout bounds how long the duration dialog may stay open
const promptTimeout = 5 * time.Minute

func newTimerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timer",
		Short:   MsgTimerShort,
		Long:    MsgTimerLong,
		Example: MsgTimerExample,
		GroupID: "status",
	}

	service := func() *timer.Service {
		cfg := a.cfg.Timer
		store := state.New[timer.State](a.fs, a.statePath(cfg.StateFile), nil)
		return timer.NewService(store, a.notifierFor(cfg.App), cfg)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start <duration>",
		Short: "Start a countdown, replacing any running one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := service().Start(cmd.Context(), format.ParseDuration(strings.Join(args, " ")))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prompt",
		Short: "Ask for a duration in a dialog and start it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ok := execx.Query(cmd.Context(), a.runner, promptTimeout,
				"zenity", "--entry", "--width=450", "--title", a.cfg.Timer.App, "--text", MsgTimerPromptText)
			if !ok || text == "" {
				return errors.New(errors.ErrCancelled, MsgErrNoDuration)
			}
			_, err := service().Start(cmd.Context(), format.ParseDuration(text))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := service().Pause(cmd.Context())
			return quiet(err, errors.ErrNotRunning)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume the paused timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := service().Resume(cmd.Context())
			return quiet(err, errors.ErrNotPaused)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Pause a running timer or resume a paused one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := service().Toggle(cmd.Context())
			return quiet(err, errors.ErrNoTimer, errors.ErrNotRunning, errors.ErrNotPaused)
		},
	})

	step := func(use, short string, direction int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [amount]",
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount := ""
				if len(args) == 1 {
					amount = args[0]
				}
				_, err := service().Step(cmd.Context(), direction, amount)
				return err
			},
		}
	}
	cmd.AddCommand(step("up", "Add time (5m, 30s, or a count of the current unit)", 1))
	cmd.AddCommand(step("down", "Remove time, never below one second", -1))

	cmd.AddCommand(&cobra.Command{
		Use:       "unit [h|m|s]",
		Short:     "Set the adjust unit, or cycle it when no unit is given",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"h", "m", "s", "hours", "minutes", "seconds"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				st  timer.State
				err error
			)
			if len(args) == 0 {
				st, err = service().CycleUnit()
			} else {
				st, err = service().SetUnit(timer.ParseUnit(args[0]))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.CurrentUnit())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Clear the timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return service().Stop()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print RUN mm:ss, PAUSE mm:ss or None",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), service().StatusLine())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Feed the bar, notifying once when the countdown ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := service().Watch(ctx, cmd.OutOrStdout())
			if interrupted(ctx, err) {
				return nil
			}
			return err
		},
	})

	return cmd
}
