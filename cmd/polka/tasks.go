package main

import (
	"fmt"

	"github.com/polka-dots/polka/pkg/modules/tasks"
	"github.com/spf13/cobra"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Short:   "Task list chores",
		GroupID: "chores",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schedule",
		Short: MsgScheduleShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := tasks.NewScheduler(a.cfg.Tasks, a.runner).Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, desc := range added {
				fmt.Fprintf(out, MsgTaskAdded, desc)
			}
			if err == nil && len(added) == 0 {
				fmt.Fprintln(out, MsgNoTasksDue)
			}
			return err
		},
	})

	return cmd
}
