package main

import (
	"context"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/linker"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/paths"
	"github.com/polka-dots/polka/pkg/ui"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		prune  bool
		all    bool
		output string
	)

	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		GroupID: "chores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(output)
			if err != nil {
				return err
			}

			opts := a.linkOptions(dryRun)
			opts.Prune = prune
			res, runErr := linker.New(a.fs).Run(opts)
			if res != nil {
				view := ui.LinkView{DryRun: dryRun, Verbose: all}
				if err := ui.RenderLink(cmd.OutOrStdout(), format, res, view); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}

			if !dryRun {
				a.runPostHooks(cmd.Context())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVarP(&prune, "prune", "p", false, MsgFlagPrune)
	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagLinkVerb)
	cmd.Flags().StringVarP(&output, "format", "f", string(ui.FormatAuto), MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (a *app) linkOptions(dryRun bool) linker.Options {
	cfg := a.cfg.Link
	individual := make([]linker.Mapping, 0, len(cfg.Individual))
	for _, m := range cfg.Individual {
		individual = append(individual, linker.Mapping{
			Source: paths.ExpandHome(m.Source),
			Target: paths.ExpandHome(m.Target),
		})
	}
	return linker.Options{
		SourceRoot:  paths.ExpandHome(cfg.SourceRoot),
		TargetRoot:  paths.ExpandHome(cfg.TargetRoot),
		Exclude:     cfg.Exclude,
		Directories: cfg.Directories,
		Individual:  individual,
		DryRun:      dryRun,
	}
}

// runPostHooks runs each configured hook whose binary is installed.
// Failures are logged; the links are already in place.
func (a *app) runPostHooks(ctx context.Context) {
	logger := logging.GetLogger("link")
	for _, hook := range a.cfg.Link.PostHooks {
		if len(hook) == 0 {
			continue
		}
		if !execx.LookPath(hook[0]) {
			logger.Info().Msgf(MsgHookSkipped, hook[0])
			continue
		}
		res := a.runner.Run(ctx, execx.Command{Name: hook[0], Args: hook[1:]})
		if !res.Available() {
			logger.Warn().
				Err(res.Err).
				Int("exit", res.ExitCode).
				Strs("hook", hook).
				Msg("Post hook failed")
		}
	}
}
