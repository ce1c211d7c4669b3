package main

import (
	"context"
	stderrors "errors"
	"embed"
	"io/fs"
	"strings"

	"github.com/polka-dots/polka/internal/version"
	"github.com/polka-dots/polka/pkg/cobrax/topics"
	"github.com/polka-dots/polka/pkg/config"
	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/notify"
	"github.com/polka-dots/polka/pkg/paths"
	"github.com/polka-dots/polka/pkg/procscan"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// app carries the collaborators shared by every command. Fields left nil
// are filled with the real implementations once the configuration is
// loaded; tests preset them.
type app struct {
	verbosity  int
	configFile string
	sets       []string

	opts     config.Options
	cfg      *config.Config
	paths    paths.Paths
	closeLog func() error

	fs       filesystem.FS
	runner   execx.Runner
	notifier notify.Notifier
	launcher execx.Launcher
	scanner  procscan.Scanner
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "polka",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, MsgErrInitPaths)
			}
			a.paths = p

			closeLog, err := logging.Setup(logging.Options{Verbosity: a.verbosity, File: p.LogFilePath()})
			a.closeLog = closeLog
			if err != nil {
				log.Warn().Err(err).Msg("Logging to the console only")
			}
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringArrayVar(&a.sets, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "status", Title: "STATUS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "chores", Title: "CHORES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newTimerCmd(a))
	rootCmd.AddCommand(newFoldersCmd(a))
	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newNetCmd(a))
	rootCmd.AddCommand(newPowerCmd(a))
	rootCmd.AddCommand(newSunsetCmd(a))
	rootCmd.AddCommand(newTasksCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())

	render := topics.Plain
	if stdoutIsTerminal() {
		render = topics.Glamour("auto", 0)
	}
	docs, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.Install(rootCmd, docs, render)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// setup loads the layered configuration and fills in any collaborator
// not preset
func (a *app) setup() error {
	overrides, err := parseSets(a.sets)
	if err != nil {
		return err
	}
	a.opts = config.Options{File: a.configFile, Overrides: overrides}
	if a.opts.File == "" {
		a.opts.File = a.paths.ConfigFilePath()
	}

	cfg, err := config.Load(a.opts)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.fs == nil {
		a.fs = filesystem.NewOS()
	}
	if a.runner == nil {
		a.runner = execx.New(cfg.Exec.Timeout)
	}
	if a.launcher == nil {
		a.launcher = execx.Detached{}
	}
	if a.scanner == nil {
		a.scanner = procscan.NewSystem()
	}
	return nil
}

// notifierFor returns the desktop notifier tagged with appName, or the
// preset notifier
func (a *app) notifierFor(appName string) notify.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	if appName == "" {
		appName = a.cfg.Notify.App
	}
	return &notify.Desktop{
		Runner:  a.runner,
		Command: a.cfg.Notify.Command,
		App:     appName,
		Timeout: a.cfg.Notify.Timeout,
	}
}

// statePath resolves a module's state file inside the cache dir
func (a *app) statePath(name string) string {
	return a.paths.StatePath(name)
}

func parseSets(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadSet, s)
		}
		out[key] = value
	}
	return out, nil
}

// quiet drops errors whose code only reports that there was nothing to do
func quiet(err error, codes ...errors.ErrorCode) error {
	for _, c := range codes {
		if errors.IsErrorCode(err, c) {
			log.Debug().Err(err).Msg("Nothing to do")
			return nil
		}
	}
	return err
}

// interrupted reports whether err only says the command was stopped
func interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && stderrors.Is(err, ctx.Err())
}
