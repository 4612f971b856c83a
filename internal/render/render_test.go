package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/readmesync/internal/render"
	"github.com/agentstation/readmesync/internal/sources/feed"
	"github.com/agentstation/readmesync/internal/sources/github"
	"github.com/agentstation/readmesync/internal/sources/til"
)

var releases = []github.Release{
	{Repo: "alpha", RepoURL: "https://github.com/me/alpha", Description: "First", Release: "1.0", PublishedAt: "2023-01-05", URL: "https://github.com/me/alpha/releases/1.0"},
	{Repo: "beta", RepoURL: "https://github.com/me/beta", Description: "Second", Release: "0.2", PublishedAt: "2024-02-10", URL: "https://github.com/me/beta/releases/0.2"},
	{Repo: "gamma", RepoURL: "https://github.com/me/gamma", Description: "", Release: "v3", PublishedAt: "2023-07-01", URL: "https://github.com/me/gamma/releases/v3"},
}

func TestBlog(t *testing.T) {
	got := render.Blog([]feed.Entry{
		{Title: "Post", URL: "http://x", Published: "2024-01-01"},
		{Title: "Other", URL: "http://y", Published: "2023-12-31"},
	})
	assert.Equal(t, "* [Post](http://x) - 2024-01-01\n* [Other](http://y) - 2023-12-31", got)
	assert.Empty(t, render.Blog(nil))
}

func TestContributions(t *testing.T) {
	got, err := render.Contributions([]github.Contribution{
		{
			Name:          "cobra",
			NameWithOwner: "spf13/cobra",
			Description:   "A Commander for modern Go <b>CLI</b> interactions",
			URL:           "https://github.com/spf13/cobra",
			Stars:         38000,
		},
		{
			Name:          "datasette",
			NameWithOwner: "simonw/datasette",
			HomepageURL:   "https://datasette.io",
			URL:           "https://github.com/simonw/datasette",
			Stars:         7,
		},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"* 38,000 stars [cobra(spf13/cobra)]: A Commander for modern Go **CLI** interactions\n"+
			"<br>[cobra](https://github.com/spf13/cobra)\n"+
			"* 7 stars [datasette(simonw/datasette)]: \n"+
			"<br>[datasette](https://datasette.io)",
		got)
}

func TestRecentReleases(t *testing.T) {
	got := render.RecentReleases(releases, 2)
	assert.Equal(t,
		"* [beta 0.2](https://github.com/me/beta/releases/0.2) - 2024-02-10\n"+
			"* [gamma v3](https://github.com/me/gamma/releases/v3) - 2023-07-01",
		got)

	assert.Len(t, render.SortReleases(releases), 3)
	assert.Equal(t, "alpha", releases[0].Repo, "input is not reordered")
}

func TestReleaseList(t *testing.T) {
	got := render.ReleaseList(releases[:2])
	assert.Equal(t,
		"* **[beta](https://github.com/me/beta)**: [0.2](https://github.com/me/beta/releases/0.2) - 2024-02-10\n<br>Second\n"+
			"* **[alpha](https://github.com/me/alpha)**: [1.0](https://github.com/me/alpha/releases/1.0) - 2023-01-05\n<br>First",
		got)
}

func TestReleaseCount(t *testing.T) {
	assert.Equal(t, "3", render.ReleaseCount(releases))
	assert.Equal(t, "0", render.ReleaseCount(nil))
}

func TestTILs(t *testing.T) {
	got := render.TILs([]til.Entry{{Title: "jq", URL: "https://til/jq", Created: "2024-04-01T10:00:00+00:00"}})
	assert.Equal(t, "* [jq](https://til/jq) - 2024-04-01", got)
}

func TestSortReleasesStable(t *testing.T) {
	same := []github.Release{
		{Repo: "a", PublishedAt: "2024-01-01"},
		{Repo: "b", PublishedAt: "2024-01-01"},
		{Repo: "c", PublishedAt: "2024-01-02"},
	}
	sorted := render.SortReleases(same)
	assert.Equal(t, []string{"c", "a", "b"}, []string{sorted[0].Repo, sorted[1].Repo, sorted[2].Repo})
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "empty", html: "", want: ""},
		{name: "plain", html: "Just text", want: "Just text"},
		{name: "emphasis", html: "A <em>tiny</em> server", want: "A *tiny* server"},
		{name: "collapses whitespace", html: "<p>one</p><p>two</p>", want: "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render.Description(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStars(t *testing.T) {
	assert.Equal(t, "0", render.Stars(0))
	assert.Equal(t, "999", render.Stars(999))
	assert.Equal(t, "1,234,567", render.Stars(1234567))
}
