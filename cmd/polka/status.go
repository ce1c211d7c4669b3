package main

import (
	"time"

	"github.com/polka-dots/polka/pkg/modules/folders"
	"github.com/polka-dots/polka/pkg/modules/player"
	"github.com/polka-dots/polka/pkg/modules/procwatch"
	"github.com/polka-dots/polka/pkg/modules/tasks"
	"github.com/polka-dots/polka/pkg/modules/torrent"
	"github.com/polka-dots/polka/pkg/modules/weather"
	"github.com/polka-dots/polka/pkg/poll"
	"github.com/polka-dots/polka/pkg/state"
	"github.com/spf13/cobra"
)

// foldersInterval is how often a watching folders module rereads its state
const foldersInterval = time.Second

func newStatusCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "status",
	}
	cmd.PersistentFlags().BoolVarP(&watch, "watch", "w", false, MsgFlagWatch)

	module := func(use, short string, args cobra.PositionalArgs, build func(args []string) (time.Duration, poll.RenderFunc, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, argv []string) error {
				interval, render, err := build(argv)
				if err != nil {
					return err
				}
				return a.emit(cmd, watch, interval, render)
			},
		}
	}

	cmd.AddCommand(module("torrent", MsgTorrentShort, cobra.NoArgs, func([]string) (time.Duration, poll.RenderFunc, error) {
		m := torrent.New(a.cfg.Torrent, a.runner, a.scanner)
		return a.cfg.Torrent.Interval, m.Render, nil
	}))

	cmd.AddCommand(module("player", MsgPlayerShort, cobra.NoArgs, func([]string) (time.Duration, poll.RenderFunc, error) {
		store := state.New[player.Scroll](a.fs, a.statePath(a.cfg.Player.StateFile), nil)
		m := player.New(a.cfg.Player, a.runner, store)
		return a.cfg.Player.Interval, m.Render, nil
	}))

	cmd.AddCommand(module("tasks", MsgTasksShort, cobra.NoArgs, func([]string) (time.Duration, poll.RenderFunc, error) {
		m := tasks.New(a.cfg.Tasks, a.runner)
		return a.cfg.Tasks.Interval, m.Render, nil
	}))

	cmd.AddCommand(module("weather", MsgWeatherShort, cobra.NoArgs, func([]string) (time.Duration, poll.RenderFunc, error) {
		cfg := a.cfg.Weather
		cache := state.New[weather.Cache](a.fs, a.statePath(cfg.CacheFile), nil)
		m := weather.New(cfg, weather.NewClient(cfg.Endpoint, cfg.Timeout), cache)
		return cfg.Interval, m.Render, nil
	}))

	proc := module("proc <name>", MsgProcShort, cobra.ExactArgs(1), func(args []string) (time.Duration, poll.RenderFunc, error) {
		w, err := a.cfg.Proc.Find(args[0])
		if err != nil {
			return 0, nil, err
		}
		return a.cfg.Proc.Interval, procwatch.New(w, a.scanner).Render, nil
	})
	proc.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || a.cfg == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := make([]string, 0, len(a.cfg.Proc.Watchers))
		for _, w := range a.cfg.Proc.Watchers {
			names = append(names, w.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	cmd.AddCommand(proc)

	cmd.AddCommand(module("folders", MsgFoldersShort, cobra.NoArgs, func([]string) (time.Duration, poll.RenderFunc, error) {
		return foldersInterval, a.folders().Render, nil
	}))

	return cmd
}

// emit prints one payload, or keeps printing changed payloads until the
// command's context is cancelled
func (a *app) emit(cmd *cobra.Command, watch bool, interval time.Duration, render poll.RenderFunc) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if !watch {
		return poll.Once(ctx, out, render)
	}

	loop := &poll.Loop{Interval: interval, Render: render, Emitter: poll.NewEmitter(out)}
	err := loop.Run(ctx)
	if interrupted(ctx, err) {
		return nil
	}
	return err
}

func (a *app) folders() *folders.Module {
	store := state.New[folders.State](a.fs, a.statePath(a.cfg.Folders.StateFile), nil)
	return folders.New(a.cfg.Folders, store, a.launcher)
}
