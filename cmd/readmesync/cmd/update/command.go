// Package update implements the update command, which regenerates every
// configured target.
package update

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/internal/cmd/emoji"
	"github.com/agentstation/readmesync/internal/cmd/output"
	"github.com/agentstation/readmesync/internal/readme"
)

// Flags holds the update command flags.
type Flags struct {
	DryRun   bool
	Sections []string
	Readme   string
	Releases string
	Contribs string
}

// NewCommand creates the update command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Regenerate README sections from all sources",
		Long: `Update fetches every enabled section and rewrites the marker regions
of the README, the releases page and the standalone contributions file.

Sections:
  blog      latest blog entries        (marker: blog)
  contribs  repositories contributed to (marker: contribs, plus contrib.md)
  releases  latest release per repo     (markers: recent_releases, release_count)
  tils      latest TIL entries          (marker: tils)

When no section is selected, every section whose source is configured runs.
Nothing is written unless every section succeeds.`,
		Example: `  readmesync update                       # Regenerate everything configured
  readmesync update --dry-run             # Show the result without writing
  readmesync update --section blog        # Only the blog section
  readmesync update --releases ""         # Skip the releases page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app, flags)
		},
	}

	cfg := app.Config()
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "render without writing files")
	cmd.Flags().StringSliceVarP(&flags.Sections, "section", "s", nil, "sections to regenerate: "+strings.Join(readme.Sections(), ", "))
	cmd.Flags().StringVar(&flags.Readme, "readme", cfg.ReadmePath, "README path (empty to skip)")
	cmd.Flags().StringVar(&flags.Releases, "releases", cfg.ReleasesPath, "releases page path (empty to skip)")
	cmd.Flags().StringVar(&flags.Contribs, "contribs", cfg.ContribsPath, "standalone contributions file (empty to skip)")

	return cmd
}

// Run executes the update.
func Run(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	ctx := cmd.Context()
	cfg := app.Config()
	logger := app.Logger()

	fetcher, err := app.Fetcher()
	if err != nil {
		return err
	}

	sections := flags.Sections
	if len(sections) == 0 {
		sections = cfg.EffectiveSections()
	}
	if len(sections) == 0 {
		return fmt.Errorf("no sections to update: configure a token, feed_url or til_url, or pass --section")
	}

	// --config may have replaced the configuration after flag defaults were set.
	path := func(name, flagValue, configured string) string {
		if cmd.Flags().Changed(name) {
			return flagValue
		}
		return configured
	}

	gen, err := readme.New(fetcher,
		readme.WithReadme(path("readme", flags.Readme, cfg.ReadmePath)),
		readme.WithReleasesFile(path("releases", flags.Releases, cfg.ReleasesPath)),
		readme.WithContribsFile(path("contribs", flags.Contribs, cfg.ContribsPath)),
		readme.WithSections(sections...),
		readme.WithLimits(cfg.BlogLimit, cfg.ReleaseLimit, cfg.TILLimit),
		readme.WithDryRun(flags.DryRun),
	)
	if err != nil {
		return err
	}

	logger.Info().Strs("sections", sections).Bool("dry_run", flags.DryRun).Msg("Updating")

	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	format := output.Format(strings.ToLower(app.OutputFormat()))
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
	}
	printResult(cmd.OutOrStdout(), result, flags.DryRun)
	return nil
}

func printResult(w io.Writer, result *readme.Result, dryRun bool) {
	for _, f := range result.Files {
		detail := ""
		if len(f.Markers) > 0 {
			detail = " (" + strings.Join(f.Markers, ", ") + ")"
		}
		fmt.Fprintf(w, "%s %s%s\n", emoji.Status(f.Changed, f.Written, dryRun), f.Path, detail)
	}

	if !dryRun {
		return
	}
	for _, f := range result.Files {
		if !f.Changed {
			continue
		}
		fmt.Fprintf(w, "\n--- %s\n%s", f.Path, f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			fmt.Fprintln(w)
		}
	}
}
