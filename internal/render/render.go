// Package render turns source records into markdown fragments.
package render

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	md "github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/readmesync/internal/sources/feed"
	"github.com/agentstation/readmesync/internal/sources/github"
	"github.com/agentstation/readmesync/internal/sources/til"
)

var printer = message.NewPrinter(language.English)

// Blog renders one bullet per blog entry.
func Blog(entries []feed.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("* %s - %s", md.Link(e.Title, e.URL), e.Published))
	}
	return strings.Join(lines, "\n")
}

// Contributions renders each contribution as a two-line entry. HTML
// descriptions are converted to markdown.
func Contributions(contribs []github.Contribution) (string, error) {
	lines := make([]string, 0, len(contribs))
	for _, c := range contribs {
		desc, err := Description(c.Description)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", c.NameWithOwner, err)
		}
		lines = append(lines, fmt.Sprintf("* %s stars [%s(%s)]: %s\n<br>%s",
			Stars(c.Stars), c.Name, c.NameWithOwner, desc, md.Link(c.Name, c.Link())))
	}
	return strings.Join(lines, "\n"), nil
}

// RecentReleases renders the newest limit releases, one per line.
// A non-positive limit renders all of them.
func RecentReleases(releases []github.Release, limit int) string {
	sorted := SortReleases(releases)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("* %s - %s", md.Link(r.Repo+" "+r.Release, r.URL), r.PublishedAt))
	}
	return strings.Join(lines, "\n")
}

// ReleaseList renders every release with its repository description.
func ReleaseList(releases []github.Release) string {
	sorted := SortReleases(releases)

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("* %s: %s - %s\n<br>%s",
			md.Bold(md.Link(r.Repo, r.RepoURL)), md.Link(r.Release, r.URL), r.PublishedAt, r.Description))
	}
	return strings.Join(lines, "\n")
}

// ReleaseCount renders the number of releases.
func ReleaseCount(releases []github.Release) string {
	return strconv.Itoa(len(releases))
}

// TILs renders one bullet per TIL with the date part of its timestamp.
func TILs(entries []til.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("* %s - %s", md.Link(e.Title, e.URL), e.Date()))
	}
	return strings.Join(lines, "\n")
}

// SortReleases returns a copy of releases ordered newest first. Releases
// published on the same day keep their relative order.
func SortReleases(releases []github.Release) []github.Release {
	sorted := slices.Clone(releases)
	slices.SortStableFunc(sorted, func(a, b github.Release) int {
		return cmp.Compare(b.PublishedAt, a.PublishedAt)
	})
	return sorted
}

// Description converts an HTML description to single-line markdown.
func Description(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	out, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(out), " "), nil
}

// Stars formats a star count with thousands separators.
func Stars(n int) string {
	return printer.Sprintf("%d", n)
}
