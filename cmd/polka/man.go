package main

import (
	"github.com/polka-dots/polka/internal/version"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "POLKA",
				Section: "1",
				Source:  "polka " + version.Version,
				Manual:  "polka manual",
			}
			if len(args) == 0 {
				return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
			}
			if err := doc.GenManTree(cmd.Root(), header, args[0]); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to write man pages to %s", args[0])
			}
			return nil
		},
	}
}
