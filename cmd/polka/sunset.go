package main

import (
	"fmt"

	"github.com/polka-dots/polka/pkg/modules/sunset"
	"github.com/polka-dots/polka/pkg/state"
	"github.com/spf13/cobra"
)

func newSunsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "sunset",
		Short:   MsgSunsetShort,
		GroupID: "chores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Sunset
			index := state.NewScalar(a.fs, a.statePath(cfg.StateFile))
			name, err := sunset.New(cfg, a.fs, a.runner, index).Next(cmd.Context())
			if name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), MsgSunsetApplied, name)
			}
			return err
		},
	}
}
