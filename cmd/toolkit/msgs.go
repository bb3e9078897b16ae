package toolkit

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Link packages of dotfiles into your home directory"
	MsgBuildShort      = "Reconcile the mount with the active packages"
	MsgListShort       = "List packages and their selection"
	MsgListLong        = "List shows every package found under the package root, whether it is active by default, any override, and whether the last build installed it."
	MsgStatusShort     = "Show what a build would change"
	MsgEnableShort     = "Force packages on"
	MsgDisableShort    = "Force packages off"
	MsgResetShort      = "Return packages to their default selection"
	MsgGenConfigShort  = "Print or write a configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgNoPackagesFound  = "No packages found."
	MsgSelectionFormat  = "%s: %s -> %s\n"
	MsgSelectionNoop    = "%s: already %s\n"
	MsgSelectionHint    = "Run 'toolkit build' to apply."
	MsgConfigWritten    = "Configuration written to %s\n"
	MsgVersionFormat    = "toolkit version %s\n  commit: %s\n  built:  %s\n"
	MsgOverrideUnset    = "default"
	MsgOverrideEnabled  = "enabled"
	MsgOverrideDisabled = "disabled"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagColor     = "Color output: auto, always, never"
	MsgFlagFormat    = "Output format: auto, term, text, json"
	MsgFlagRoot      = "Package root (default $TOOLKIT_ROOT or ~/.toolkit/packages)"
	MsgFlagMount     = "Directory links are created in (default $HOME)"
	MsgFlagState     = "State file location"
	MsgFlagConfig    = "Configuration file location"
	MsgFlagWrite     = "Write the file instead of printing it"
	MsgFlagEffective = "Print the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/select-long.txt
	msgSelectLongRaw string
	MsgSelectLong    = strings.TrimSpace(msgSelectLongRaw)

	//go:embed msgs/select-example.txt
	msgSelectExampleRaw string
	MsgSelectExample    = strings.TrimRight(msgSelectExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
