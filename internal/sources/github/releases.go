package github

import (
	"context"
	"strings"

	"github.com/agentstation/readmesync/pkg/logging"
	"github.com/agentstation/readmesync/pkg/paging"
)

// Release is the latest release of one of the viewer's public repositories.
type Release struct {
	Repo        string `json:"repo" yaml:"repo"`
	RepoURL     string `json:"repo_url" yaml:"repo_url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Release     string `json:"release" yaml:"release"`
	PublishedAt string `json:"published_at" yaml:"published_at"` // YYYY-MM-DD
	URL         string `json:"url" yaml:"url"`
}

// Identity implements paging.Identifiable.
func (r Release) Identity() string {
	return r.Repo
}

type releaseNode struct {
	Name        string `graphql:"name"`
	PublishedAt string `graphql:"publishedAt"`
	URL         string `graphql:"url"`
}

type repositoryNode struct {
	Name        string `graphql:"name"`
	Description string `graphql:"description"`
	URL         string `graphql:"url"`
	Releases    struct {
		TotalCount int           `graphql:"totalCount"`
		Nodes      []releaseNode `graphql:"nodes"`
	} `graphql:"releases(last: 1)"`
}

type releasesQuery struct {
	Viewer struct {
		Login string `graphql:"login"`
		Repositories struct {
			PageInfo pageInfo         `graphql:"pageInfo"`
			Nodes    []repositoryNode `graphql:"nodes"`
		} `graphql:"repositories(first: $first, after: $after, privacy: PUBLIC)"`
	} `graphql:"viewer"`
}

// ReleasesPage fetches one page of repositories starting at cursor and
// returns the latest release of each repository that has one.
func (c *Client) ReleasesPage(ctx context.Context, cursor *string) (*paging.Page[Release], error) {
	var q releasesQuery
	if err := c.query(ctx, &q, c.pageVars(cursor), func() string { return q.Viewer.Login }); err != nil {
		return nil, err
	}

	conn := q.Viewer.Repositories
	records := make([]Release, 0, len(conn.Nodes))
	for _, n := range conn.Nodes {
		if r, ok := n.toRelease(); ok {
			records = append(records, r)
		}
	}

	return &paging.Page[Release]{
		Records: records,
		Cursor:  paging.Cursor(conn.PageInfo.EndCursor),
		HasMore: conn.PageInfo.HasNextPage,
	}, nil
}

// Releases returns the latest release of every public repository of the
// viewer, in repository order.
func (c *Client) Releases(ctx context.Context) ([]Release, error) {
	ctx = logging.WithSource(ctx, "releases")
	releases, err := paging.Aggregate(ctx, c.ReleasesPage,
		paging.WithSource("github releases"),
		paging.WithMaxPages(c.cfg.MaxPages),
	)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Int("count", len(releases)).Msg("Aggregated releases")
	return releases, nil
}

func (n repositoryNode) toRelease() (Release, bool) {
	if n.Releases.TotalCount == 0 || len(n.Releases.Nodes) == 0 {
		return Release{}, false
	}
	latest := n.Releases.Nodes[0]

	published, _, _ := strings.Cut(latest.PublishedAt, "T")

	return Release{
		Repo:        n.Name,
		RepoURL:     n.URL,
		Description: n.Description,
		Release:     strings.TrimSpace(strings.ReplaceAll(latest.Name, n.Name, "")),
		PublishedAt: published,
		URL:         latest.URL,
	}, true
}
