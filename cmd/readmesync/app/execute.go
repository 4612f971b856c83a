package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/readmesync/internal/cmd/output"
	"github.com/agentstation/readmesync/internal/config"
	"github.com/agentstation/readmesync/pkg/logging"
)

// Execute runs the readmesync CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)

	defer func() {
		if a.cancel != nil {
			a.cancel()
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "readmesync",
		Short:   "Regenerate marker sections of a profile README",
		Version: a.version,
		Long: `readmesync pulls data from GitHub, a blog feed and a TIL endpoint and
splices it into marker regions of your README:

  <!-- blog starts -->
  ...regenerated...
  <!-- blog ends -->

Everything outside the markers is left untouched. Files are only written
when every section was fetched and every marker was found.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "config file (default is ./.readmesync.yaml or $HOME/.readmesync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().DurationVar(&a.flags.Timeout, "timeout", a.flags.Timeout, "timeout for the whole command")

	rootCmd.SetVersionTemplate("readmesync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if _, err := output.ParseFormat(a.flags.Format); err != nil {
		return err
	}

	if a.flags.ConfigFile != "" {
		cfg, err := config.Load(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = cfg
	}

	logger := NewLogger(a.flags, a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	ctx := logging.WithLogger(cmd.Context(), a.logger)
	if a.flags.Timeout > 0 {
		ctx, a.cancel = context.WithTimeout(ctx, a.flags.Timeout)
	}
	cmd.SetContext(ctx)

	if a.config.ConfigFile != "" {
		a.logger.Debug().Str("file", a.config.ConfigFile).Msg("Loaded config file")
	}
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateUpdateCommand())
	rootCmd.AddCommand(a.CreateFetchCommand())
	rootCmd.AddCommand(a.CreateReplaceCommand())

	// Management commands
	rootCmd.AddCommand(a.CreateConfigCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
