// Package fetch implements the fetch command, which prints source records
// without touching any file.
package fetch

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/internal/cmd/output"
)

// NewCommand creates the fetch command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch",
		GroupID: "core",
		Short:   "Print records from a source",
		Long: `Fetch retrieves records from one source and prints them as a table,
JSON or YAML. It never writes files.

GitHub sources need a token (READMESYNC_TOKEN or GITHUB_TOKEN).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newContribsCommand(app))
	cmd.AddCommand(newReleasesCommand(app))
	cmd.AddCommand(newBlogCommand(app))
	cmd.AddCommand(newTILsCommand(app))

	return cmd
}

func newContribsCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "contribs",
		Aliases: []string{"contributions"},
		Short:   "Repositories you contributed to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, err := app.Fetcher()
			if err != nil {
				return err
			}
			contribs, err := fetcher.Contributions(cmd.Context())
			if err != nil {
				return err
			}
			return output.Records(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				contribs, output.ContributionsToTableData(contribs))
		},
	}
}

func newReleasesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "releases",
		Short: "Latest release of each of your public repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, err := app.Fetcher()
			if err != nil {
				return err
			}
			releases, err := fetcher.Releases(cmd.Context())
			if err != nil {
				return err
			}
			return output.Records(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				releases, output.ReleasesToTableData(releases))
		},
	}
}

func newBlogCommand(app appcontext.Interface) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Latest blog entries from the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, err := app.Fetcher()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = app.Config().BlogLimit
			}
			entries, err := fetcher.Blog(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return output.Records(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				entries, output.BlogToTableData(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.Config().BlogLimit, "maximum number of entries (0 for all)")
	return cmd
}

func newTILsCommand(app appcontext.Interface) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "tils",
		Short: "Latest TIL entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, err := app.Fetcher()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = app.Config().TILLimit
			}
			entries, err := fetcher.TILs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return output.Records(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				entries, output.TILsToTableData(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.Config().TILLimit, "maximum number of entries (0 for all)")
	return cmd
}
