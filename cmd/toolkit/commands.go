package toolkit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/toolkit/internal/version"
	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/commands/build"
	"github.com/arthur-debert/toolkit/pkg/commands/genconfig"
	"github.com/arthur-debert/toolkit/pkg/commands/list"
	"github.com/arthur-debert/toolkit/pkg/commands/selection"
	"github.com/arthur-debert/toolkit/pkg/commands/status"
	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/display"
	"github.com/arthur-debert/toolkit/pkg/errors"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			result, err := build.Build(build.Options{
				Workspace: e.workspace,
				Sink:      e.printer,
				OnWarning: warningPrinter(e.printer),
			})
			if result != nil {
				e.printer.Summary(result.Result)
			}
			return err
		},
	}
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			result, err := list.List(e.workspace)
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				e.printer.Warning(w.String())
			}

			out := cmd.OutOrStdout()
			if e.printer.Format() == config.FormatJSON {
				return json.NewEncoder(out).Encode(result)
			}
			if len(result.Packages) == 0 {
				fmt.Fprintln(out, MsgNoPackagesFound)
				return nil
			}

			table, err := renderPackageTable(result.Packages)
			if err != nil {
				return err
			}
			fmt.Fprint(out, table)
			return nil
		},
	}
}

// renderPackageTable formats packages as a pterm table
func renderPackageTable(pkgs []list.PackageInfo) (string, error) {
	data := pterm.TableData{{"PACKAGE", "DEFAULT", "OVERRIDE", "ACTIVE", "INSTALLED", "PATHS"}}
	for _, p := range pkgs {
		override := MsgOverrideUnset
		if p.Override != nil {
			override = MsgOverrideDisabled
			if *p.Override {
				override = MsgOverrideEnabled
			}
		}
		data = append(data, []string{
			p.Name,
			yesNo(p.Default),
			override,
			yesNo(p.Active),
			yesNo(p.Installed),
			fmt.Sprint(p.Paths),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			result, err := status.Status(e.workspace)
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				e.printer.Warning(w.String())
			}
			e.printer.LastBuild(result.LastBuild)
			e.printer.Status(result.Inspection)
			return nil
		},
	}
}

type selectKind struct {
	use   string
	short string
	mode  selection.Mode
}

var (
	selectEnable  = selectKind{"enable", MsgEnableShort, selection.Enable}
	selectDisable = selectKind{"disable", MsgDisableShort, selection.Disable}
	selectReset   = selectKind{"reset", MsgResetShort, selection.Reset}
)

func newSelectCmd(flags *globalFlags, kind selectKind) *cobra.Command {
	return &cobra.Command{
		Use:               kind.use + " <package>...",
		Short:             kind.short,
		Long:              MsgSelectLong,
		Example:           MsgSelectExample,
		Args:              cobra.MinimumNArgs(1),
		GroupID:           "selection",
		ValidArgsFunction: packageNamesCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			result, err := selection.Select(selection.Options{
				Workspace: e.workspace,
				Mode:      kind.mode,
				Names:     args,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if e.printer.Format() == config.FormatJSON {
				return json.NewEncoder(out).Encode(result.Changes)
			}
			for _, c := range result.Changes {
				if c.Changed() {
					fmt.Fprintf(out, MsgSelectionFormat, c.Name, overrideName(c.Before), overrideName(c.After))
				} else {
					fmt.Fprintf(out, MsgSelectionNoop, c.Name, overrideName(c.After))
				}
			}
			fmt.Fprintln(out, MsgSelectionHint)
			return nil
		},
	}
}

func overrideName(v *bool) string {
	switch {
	case v == nil:
		return MsgOverrideUnset
	case *v:
		return MsgOverrideEnabled
	default:
		return MsgOverrideDisabled
	}
}

// packageNamesCompletion completes package names that are not yet on the
// command line
func packageNamesCompletion(flags *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		e, err := flags.setup(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		result, err := list.List(e.workspace)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, a := range args {
			given[a] = true
		}
		var names []string
		for _, p := range result.Packages {
			if !given[p.Name] && strings.HasPrefix(p.Name, toComplete) {
				names = append(names, p.Name)
			}
		}
		sort.Strings(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	var write, effective bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := genconfig.Options{Path: flags.configPath(), Write: write}
			if effective {
				cfg, err := flags.loadConfig()
				if err != nil {
					return err
				}
				opts.Effective = cfg
			}

			result, err := genconfig.GenConfig(opts)
			if err != nil {
				return err
			}
			if result.Written != "" {
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, result.Written)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Content)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Run != nil {
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

// warningPrinter forwards catalog warnings to the printer
func warningPrinter(p *display.Printer) func(catalog.Warning) {
	return func(w catalog.Warning) {
		p.Warning(w.String())
	}
}

// ExitCode maps an error to a process exit status: 0 on success, 2 for
// usage errors and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetErrorCode(err) {
	case errors.ErrInvalidInput, errors.ErrPackageNotFound:
		return 2
	}
	return 1
}
