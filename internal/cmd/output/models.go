package output

import (
	"io"
	"strconv"

	"github.com/agentstation/readmesync/internal/render"
	"github.com/agentstation/readmesync/internal/sources/feed"
	"github.com/agentstation/readmesync/internal/sources/github"
	"github.com/agentstation/readmesync/internal/sources/til"
)

// ContributionsToTableData builds the contributions table.
func ContributionsToTableData(contribs []github.Contribution) Data {
	rows := make([][]string, 0, len(contribs))
	for _, c := range contribs {
		archived := ""
		if c.Archived {
			archived = "yes"
		}
		rows = append(rows, []string{c.NameWithOwner, render.Stars(c.Stars), strconv.Itoa(c.Forks), c.Language, archived, c.Link()})
	}
	return Data{
		Headers:         []string{"Repository", "Stars", "Forks", "Language", "Archived", "Link"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignCenter, AlignLeft},
	}
}

// ReleasesToTableData builds the releases table, newest first.
func ReleasesToTableData(releases []github.Release) Data {
	sorted := render.SortReleases(releases)
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{r.Repo, r.Release, r.PublishedAt, r.URL})
	}
	return Data{
		Headers: []string{"Repository", "Release", "Published", "URL"},
		Rows:    rows,
	}
}

// BlogToTableData builds the blog entries table.
func BlogToTableData(entries []feed.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Title, e.Published, e.URL})
	}
	return Data{
		Headers: []string{"Title", "Published", "URL"},
		Rows:    rows,
	}
}

// TILsToTableData builds the TIL table.
func TILsToTableData(entries []til.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Title, e.Date(), e.URL})
	}
	return Data{
		Headers: []string{"Title", "Created", "URL"},
		Rows:    rows,
	}
}

// Records writes records in format; tableData is used for table output.
func Records(w io.Writer, format Format, records any, tableData Data) error {
	if format == FormatTable || format == "" {
		return NewFormatter(FormatTable).Format(w, tableData)
	}
	return NewFormatter(format).Format(w, records)
}
