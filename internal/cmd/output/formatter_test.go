package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/readmesync/internal/sources/github"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "", want: ""},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, []github.Release{{Repo: "alpha", Release: "1.0"}}))
	assert.Contains(t, buf.String(), `"repo": "alpha"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, []github.Release{{Repo: "alpha", Release: "1.0"}}))
	assert.Contains(t, buf.String(), "- repo: alpha")
	assert.Contains(t, buf.String(), "  release:")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := ContributionsToTableData([]github.Contribution{
		{Name: "cobra", NameWithOwner: "spf13/cobra", URL: "https://github.com/spf13/cobra", Stars: 38000, Language: "Go"},
	})
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "REPOSITORY")
	assert.Contains(t, out, "spf13/cobra")
	assert.Contains(t, out, "38,000")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []github.Release{{Repo: "alpha", PublishedAt: "2024-01-01"}}))
	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "PUBLISHED AT")
	assert.Contains(t, buf.String(), "alpha")
}

func TestRecords(t *testing.T) {
	releases := []github.Release{
		{Repo: "old", Release: "1", PublishedAt: "2020-01-01"},
		{Repo: "new", Release: "2", PublishedAt: "2024-01-01"},
	}

	var table bytes.Buffer
	require.NoError(t, Records(&table, FormatTable, releases, ReleasesToTableData(releases)))
	assert.Less(t, strings.Index(table.String(), "new"), strings.Index(table.String(), "old"))

	var js bytes.Buffer
	require.NoError(t, Records(&js, FormatJSON, releases, ReleasesToTableData(releases)))
	assert.Contains(t, js.String(), `"published_at": "2020-01-01"`)
}
