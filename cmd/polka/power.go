package main

import (
	"fmt"

	"github.com/polka-dots/polka/pkg/modules/power"
	"github.com/spf13/cobra"
)

func newPowerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "power",
		Short:   MsgPowerShort,
		GroupID: "chores",
	}

	validModes := make([]string, 0, len(power.Modes))
	for _, m := range power.Modes {
		validModes = append(validModes, string(m))
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "tlp <mode>",
		Short:     MsgTLPShort,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validModes,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := power.ParseMode(args[0])
			if err != nil {
				return err
			}
			changes, err := power.NewTLP(a.cfg.Power.TLP, a.fs, a.runner).Apply(cmd.Context(), mode)
			for _, c := range changes {
				fmt.Fprintf(cmd.OutOrStdout(), MsgTLPChange, c.Action, c.Path)
			}
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "gamemode",
		Short: MsgGamemodeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := power.NewGamemode(a.cfg.Power.Gamemode, a.fs, a.runner).Toggle(cmd.Context())
			if err != nil {
				return err
			}
			msg := MsgGamemodeOff
			if on {
				msg = MsgGamemodeOn
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			a.notifierFor("").Notify(cmd.Context(), "", msg)
			return nil
		},
	})

	return cmd
}
