package main

import (
	"github.com/spf13/cobra"
)

func newFoldersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Short:   MsgFolderCmdShort,
		GroupID: "chores",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Select the next entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.folders().Up()
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Select the previous entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.folders().Down()
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Hide or show the label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.folders().Toggle()
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "exec",
		Short: "Open the selected entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.folders().Exec(cmd.Context())
		},
	})

	return cmd
}
