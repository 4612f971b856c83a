// Package config implements the config command.
package config

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/internal/cmd/output"
)

// NewCommand creates the config command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		GroupID: "management",
		Short:   "Inspect configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.FormatYAML
			if f := output.Format(app.OutputFormat()); f == output.FormatJSON {
				format = f
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), app.Config().Redacted())
		},
	})

	return cmd
}
