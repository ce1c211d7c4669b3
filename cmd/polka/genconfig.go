package main

import (
	"fmt"

	"github.com/polka-dots/polka/pkg/config"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(a *app) *cobra.Command {
	var commented, effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content string
				err     error
			)
			if effective {
				content, err = config.GenerateEffective(a.opts)
			} else {
				content, err = config.Generate(commented)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVarP(&commented, "commented", "c", false, MsgFlagCommented)
	cmd.Flags().BoolVarP(&effective, "effective", "e", false, MsgFlagEffective)
	cmd.MarkFlagsMutuallyExclusive("commented", "effective")

	return cmd
}
