package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/rigup/internal/version"
	"github.com/arthur-debert/rigup/pkg/commands"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	verbosity   int
	configsRoot string
	format      string

	rootCmd = &cobra.Command{
		Use:   "rigup",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called by main.main().
func Execute() error {
	initTemplateFormatting()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorIndicator, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configsRoot, "configs-root", "", MsgFlagRoot)

	listCmd.Flags().StringVar(&format, "format", "text", MsgFlagFormat)
	statusCmd.Flags().StringVar(&format, "format", "text", MsgFlagFormat)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func newApp() (*commands.App, error) {
	return commands.NewApp(configsRoot)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: MsgListShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		infos := app.List()

		if format == "yaml" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(infos)
		}
		fmt.Fprintln(cmd.OutOrStdout(), style.SubtitleStyle.Render("Components"))
		for _, info := range infos {
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderComponent(info.Name, info.Description, info.Installed))
		}
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install [component]",
	Short: MsgInstallShort,
	Long: `Install a single component by name, or every component in order
when no name (or "all") is given. A failing component does not stop
the remaining ones; the exit status reflects any failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		name := commands.All
		if len(args) > 0 {
			name = args[0]
		}
		return reportResults(cmd, app.Install(name))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <component>",
	Short: MsgUpdateShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return reportResults(cmd, []commands.Result{app.Update(args[0])})
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <component>",
	Short: MsgUninstallShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return reportResults(cmd, []commands.Result{app.Uninstall(args[0])})
	},
}

// reportResults prints one line per component result and returns an
// error when any of them failed, so the process exits non-zero.
func reportResults(cmd *cobra.Command, results []commands.Result) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", style.ErrorIndicator, r.Component, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n", style.SuccessIndicator, r.Component, pastTense(r.Action))
	}
	if failed > 0 {
		return errors.Newf(errors.ErrInternal, "%d of %d component(s) failed", failed, len(results))
	}
	return nil
}

func pastTense(action string) string {
	if strings.HasSuffix(action, "e") {
		return action + "d"
	}
	return action + "ed"
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: MsgStatusShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		report := app.Status()

		if format == "yaml" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(report)
		}
		fmt.Fprintln(cmd.OutOrStdout(), style.RenderReport(report))
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: MsgDiffShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		diff, err := app.Diff(args[0])
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No differences.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), diff)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rigup version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(rigup completion bash)

Zsh:
  $ rigup completion zsh > "${fpath[1]}/_rigup"

Fish:
  $ rigup completion fish | source

PowerShell:
  PS> rigup completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
