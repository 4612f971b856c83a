package app

import (
	"github.com/spf13/cobra"

	configcmd "github.com/agentstation/readmesync/cmd/readmesync/cmd/config"
	"github.com/agentstation/readmesync/cmd/readmesync/cmd/fetch"
	"github.com/agentstation/readmesync/cmd/readmesync/cmd/replace"
	"github.com/agentstation/readmesync/cmd/readmesync/cmd/update"
)

// CreateUpdateCommand creates the update command with app dependencies.
func (a *App) CreateUpdateCommand() *cobra.Command {
	return update.NewCommand(a)
}

// CreateFetchCommand creates the fetch command with app dependencies.
func (a *App) CreateFetchCommand() *cobra.Command {
	return fetch.NewCommand(a)
}

// CreateReplaceCommand creates the replace command.
func (a *App) CreateReplaceCommand() *cobra.Command {
	return replace.NewCommand(a)
}

// CreateConfigCommand creates the config command.
func (a *App) CreateConfigCommand() *cobra.Command {
	return configcmd.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("readmesync %s\n", a.version)
			if a.flags.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
