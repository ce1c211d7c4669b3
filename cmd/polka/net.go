package main

import (
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/modules/network"
	"github.com/spf13/cobra"
)

func newNetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "net",
		Short:   MsgNetShort,
		Long:    MsgNetLong,
		GroupID: "chores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Network

			// VPN switching works without iwd, so a missing bus is not fatal
			var wireless network.Wireless
			if iwd, err := network.ConnectIWD(); err == nil {
				wireless = iwd
			} else {
				logger := logging.GetLogger("net")
				logger.Warn().Err(err).Msg("Wi-Fi unavailable")
			}

			menu := network.Fuzzel{Runner: a.runner, Binary: cfg.Menu, Config: cfg.MenuConfig}
			prompt := network.Zenity{Runner: a.runner}
			m := network.New(cfg, a.runner, menu, prompt, wireless, a.fs, a.notifierFor(""))
			return m.Run(cmd.Context())
		},
	}
}
