package replace_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/readmesync/cmd/readmesync/cmd/replace"
	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/pkg/errors"
)

const doc = "Count: <!-- count starts -->0<!-- count ends -->\n\n<!-- list starts -->\nold\n<!-- list ends -->\n"

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := replace.NewCommand(&appcontext.Mock{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return out.String(), err
}

func TestReplacePrintsResult(t *testing.T) {
	path := writeDoc(t)

	out, err := execute(t, "", path, "list", "--fragment", "new")
	require.NoError(t, err)
	assert.Equal(t, "Count: <!-- count starts -->0<!-- count ends -->\n\n<!-- list starts -->\nnew\n<!-- list ends -->\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data), "file untouched without --write")
}

func TestReplaceInlineFromStdinWrite(t *testing.T) {
	path := writeDoc(t)

	_, err := execute(t, "42", path, "count", "--from", "-", "--inline", "--write")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Count: <!-- count starts -->42<!-- count ends -->")
}

func TestReplaceFromFile(t *testing.T) {
	path := writeDoc(t)
	fragment := filepath.Join(t.TempDir(), "fragment.md")
	require.NoError(t, os.WriteFile(fragment, []byte("* one\n* two"), 0o644))

	out, err := execute(t, "", path, "list", "--from", fragment)
	require.NoError(t, err)
	assert.Contains(t, out, "<!-- list starts -->\n* one\n* two\n<!-- list ends -->")
}

func TestReplaceMissingMarker(t *testing.T) {
	path := writeDoc(t)

	_, err := execute(t, "", path, "absent", "--fragment", "x", "--write")
	require.Error(t, err)
	assert.True(t, errors.IsMarkerNotFound(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestReplaceArgs(t *testing.T) {
	_, err := execute(t, "", "README.md")
	require.Error(t, err)

	_, err = execute(t, "", filepath.Join(t.TempDir(), "missing.md"), "list", "--fragment", "x")
	require.Error(t, err)
}
