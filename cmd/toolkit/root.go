package toolkit

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/toolkit/internal/version"
	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/display"
	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/paths"
	"github.com/arthur-debert/toolkit/pkg/topics"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	color      string
	format     string
	root       string
	mount      string
	stateFile  string
	configFile string
}

// env is what a command needs once flags and configuration are merged
type env struct {
	config    *config.Config
	paths     paths.Paths
	workspace workspace.Options
	printer   *display.Printer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "toolkit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&flags.color, "color", "", MsgFlagColor)
	pf.StringVar(&flags.format, "format", "", MsgFlagFormat)
	pf.StringVar(&flags.root, "root", "", MsgFlagRoot)
	pf.StringVar(&flags.mount, "mount", "", MsgFlagMount)
	pf.StringVar(&flags.stateFile, "state", "", MsgFlagState)
	pf.StringVar(&flags.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "selection", Title: "SELECTION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd(flags))
	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newSelectCmd(flags, selectEnable))
	rootCmd.AddCommand(newSelectCmd(flags, selectDisable))
	rootCmd.AddCommand(newSelectCmd(flags, selectReset))
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	tm, err := topics.Load(topics.Embedded(), topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err == nil {
		tm.Install(rootCmd)
		rootCmd.SetHelpCommandGroupID("misc")
	}

	return rootCmd
}

// configPath returns the configuration file to read
func (f *globalFlags) configPath() string {
	if f.configFile != "" {
		return paths.ExpandHome(f.configFile)
	}
	return paths.ConfigFile()
}

// loadConfig reads the configuration and applies flag overrides
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	if f.color != "" {
		mode, err := config.ParseColorMode(f.color)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --color")
		}
		cfg.Output.Color = mode
	}
	if f.format != "" {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
		}
		cfg.Output.Format = format
	}
	return cfg, nil
}

// setup merges flags, configuration and environment for cmd
func (f *globalFlags) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	opts := paths.Options{
		PackageRoot: cfg.Paths.PackageRoot,
		Mount:       cfg.Paths.Mount,
		StateFile:   cfg.Paths.StateFile,
	}
	if f.root != "" {
		opts.PackageRoot = f.root
	}
	if f.mount != "" {
		opts.Mount = f.mount
	}
	if f.stateFile != "" {
		opts.StateFile = f.stateFile
	}
	p, err := paths.New(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	printer := display.New(cmd.OutOrStdout(), display.OptionsFromConfig(cfg))
	if printer.Format() != config.FormatTerm {
		pterm.DisableStyling()
	}

	log.Debug().
		Str("root", p.PackageRoot()).
		Str("mount", p.Mount()).
		Str("state", p.StateFile()).
		Msg("Resolved paths")

	return &env{
		config:    cfg,
		paths:     p,
		workspace: workspace.FromConfig(cfg, p),
		printer:   printer,
	}, nil
}
