// Package replace implements the replace command, a direct front end to
// the marker replacer.
package replace

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/internal/readme"
	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/markers"
)

// Flags holds the replace command flags.
type Flags struct {
	Inline   bool
	Fragment string
	From     string
	Write    bool
}

// NewCommand creates the replace command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "replace <file> <marker>",
		GroupID: "core",
		Short:   "Replace a marker region in a file",
		Long: `Replace rewrites every region delimited by

  <!-- {marker} starts --> ... <!-- {marker} ends -->

with the given fragment. Without --write the result is printed to stdout.`,
		Example: `  readmesync replace README.md blog --fragment "* [Post](https://example.com)"
  readmesync replace README.md blog --from posts.md --write
  echo 42 | readmesync replace releases.md release_count --from - --inline --write`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, app, flags, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&flags.Inline, "inline", false, "insert the fragment without surrounding newlines")
	cmd.Flags().StringVar(&flags.Fragment, "fragment", "", "fragment text")
	cmd.Flags().StringVar(&flags.From, "from", "", "read the fragment from a file ('-' for stdin)")
	cmd.Flags().BoolVarP(&flags.Write, "write", "w", false, "write the result back to the file")
	cmd.MarkFlagsMutuallyExclusive("fragment", "from")

	return cmd
}

// Run performs the replacement.
func Run(cmd *cobra.Command, app appcontext.Interface, flags *Flags, path, marker string) error {
	fragment, err := readFragment(cmd.InOrStdin(), flags)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	out, err := markers.Replace(string(data), marker, fragment, flags.Inline)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}

	if !flags.Write {
		_, err := io.WriteString(cmd.OutOrStdout(), out)
		return err
	}

	if out == string(data) {
		app.Logger().Info().Str("file", path).Str("marker", marker).Msg("Unchanged")
		return nil
	}
	if err := readme.WriteFileAtomic(path, []byte(out), constants.FilePermissions); err != nil {
		return err
	}
	app.Logger().Info().
		Str("file", path).
		Str("marker", marker).
		Int("regions", markers.Count(out, marker)).
		Msg("Replaced marker")
	return nil
}

func readFragment(stdin io.Reader, flags *Flags) (string, error) {
	switch flags.From {
	case "":
		return flags.Fragment, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.WrapIO("read", "stdin", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(flags.From)
		if err != nil {
			return "", errors.WrapIO("read", flags.From, err)
		}
		return string(data), nil
	}
}
