package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Desktop automation toolkit and status bar feeder"
	MsgStatusShort    = "Print a status bar payload"
	MsgTorrentShort   = "Torrent download progress"
	MsgPlayerShort    = "Now playing, scrolled to fit the bar"
	MsgTasksShort     = "Pending task summary"
	MsgWeatherShort   = "Current weather with an hourly and daily tooltip"
	MsgProcShort      = "Show an icon while a named process runs"
	MsgFoldersShort   = "Folder launcher entry"
	MsgTimerShort     = "Countdown timer"
	MsgFolderCmdShort = "Cycle and open the folder launcher"
	MsgLinkShort      = "Link dotfiles into the home directory"
	MsgNetShort       = "Wi-Fi and WireGuard menu"
	MsgPowerShort     = "Switch power profiles"
	MsgTLPShort       = "Apply a TLP profile (batmode, default, none)"
	MsgGamemodeShort  = "Toggle the compositor game mode"
	MsgSunsetShort    = "Apply the next screen temperature profile"
	MsgScheduleShort  = "Add due recurring and dated tasks"
	MsgGenConfigShort = "Print the configuration as TOML"
	MsgVersionShort   = "Print version information"
	MsgManShort       = "Generate man pages, to stdout or one file per command in dir"

	// Report messages
	MsgVersionFormat   = "polka version %s\n  commit: %s\n  built:  %s\n"
	MsgTaskAdded       = "added: %s\n"
	MsgNoTasksDue      = "No tasks due"
	MsgTLPChange       = "%s %s\n"
	MsgGamemodeOn      = "game mode on"
	MsgGamemodeOff     = "game mode off"
	MsgSunsetApplied   = "applied %s\n"
	MsgHookSkipped     = "post hook %s not installed, skipping"
	MsgTimerPromptText = "Duration (25m, 1h30m, 90, 01:30:00)"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths"
	MsgErrBadSet     = "--set expects key=value, got %q"
	MsgErrNoDuration = "no duration given"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Configuration file (default $XDG_CONFIG_HOME/polka/config.toml)"
	MsgFlagSet       = "Override a configuration key, e.g. --set weather.celsius=true"
	MsgFlagWatch     = "Keep running and print a new line whenever the payload changes"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagLinkVerb  = "Also list links that were already in place"
	MsgFlagPrune     = "Remove links whose source file is gone"
	MsgFlagFormat    = "Output format: auto, terminal, text or json"
	MsgFlagCommented = "Comment out every value"
	MsgFlagEffective = "Print the merged configuration instead of the defaults"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/timer-long.txt
	msgTimerLongRaw string
	MsgTimerLong    = strings.TrimSpace(msgTimerLongRaw)

	//go:embed msgs/timer-example.txt
	msgTimerExampleRaw string
	MsgTimerExample    = strings.TrimSpace(msgTimerExampleRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/net-long.txt
	msgNetLongRaw string
	MsgNetLong    = strings.TrimSpace(msgNetLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
