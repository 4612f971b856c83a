package github

import (
	"context"

	"github.com/agentstation/readmesync/pkg/logging"
	"github.com/agentstation/readmesync/pkg/paging"
)

// Contribution is a repository the viewer contributed to.
type Contribution struct {
	Name          string `json:"name" yaml:"name"`
	NameWithOwner string `json:"name_with_owner" yaml:"name_with_owner"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"` // HTML
	HomepageURL   string `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	URL           string `json:"url" yaml:"url"`
	Stars         int    `json:"stars" yaml:"stars"`
	Forks         int    `json:"forks" yaml:"forks"`
	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	Archived      bool   `json:"archived" yaml:"archived"`
}

// Identity implements paging.Identifiable.
func (c Contribution) Identity() string {
	return c.NameWithOwner
}

// Link returns the homepage, falling back to the repository URL.
func (c Contribution) Link() string {
	if c.HomepageURL != "" {
		return c.HomepageURL
	}
	return c.URL
}

type contributionNode struct {
	Name                 string `graphql:"name"`
	NameWithOwner        string `graphql:"nameWithOwner"`
	ShortDescriptionHTML string `graphql:"shortDescriptionHTML"`
	HomepageURL          string `graphql:"homepageUrl"`
	URL                  string `graphql:"url"`
	IsArchived           bool   `graphql:"isArchived"`
	ForkCount            int    `graphql:"forkCount"`
	PrimaryLanguage      struct {
		Name string `graphql:"name"`
	} `graphql:"primaryLanguage"`
	Stargazers struct {
		TotalCount int `graphql:"totalCount"`
	} `graphql:"stargazers"`
}

type contributionsQuery struct {
	Viewer struct {
		Login string `graphql:"login"`
		RepositoriesContributedTo struct {
			TotalCount int                `graphql:"totalCount"`
			PageInfo   pageInfo           `graphql:"pageInfo"`
			Nodes      []contributionNode `graphql:"nodes"`
		} `graphql:"repositoriesContributedTo(first: $first, after: $after, orderBy: {field: STARGAZERS, direction: DESC})"`
	} `graphql:"viewer"`
}

// ContributionsPage fetches one page of contributions starting at cursor.
func (c *Client) ContributionsPage(ctx context.Context, cursor *string) (*paging.Page[Contribution], error) {
	var q contributionsQuery
	if err := c.query(ctx, &q, c.pageVars(cursor), func() string { return q.Viewer.Login }); err != nil {
		return nil, err
	}

	conn := q.Viewer.RepositoriesContributedTo
	records := make([]Contribution, 0, len(conn.Nodes))
	for _, n := range conn.Nodes {
		records = append(records, n.toContribution())
	}

	return &paging.Page[Contribution]{
		Records: records,
		Cursor:  paging.Cursor(conn.PageInfo.EndCursor),
		HasMore: conn.PageInfo.HasNextPage,
	}, nil
}

// Contributions returns every repository the viewer contributed to, most
// starred first.
func (c *Client) Contributions(ctx context.Context) ([]Contribution, error) {
	ctx = logging.WithSource(ctx, "contributions")
	contribs, err := paging.Aggregate(ctx, c.ContributionsPage,
		paging.WithSource("github contributions"),
		paging.WithMaxPages(c.cfg.MaxPages),
	)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Int("count", len(contribs)).Msg("Aggregated contributions")
	return contribs, nil
}

func (n contributionNode) toContribution() Contribution {
	return Contribution{
		Name:          n.Name,
		NameWithOwner: n.NameWithOwner,
		Description:   n.ShortDescriptionHTML,
		HomepageURL:   n.HomepageURL,
		URL:           n.URL,
		Stars:         n.Stargazers.TotalCount,
		Forks:         n.ForkCount,
		Language:      n.PrimaryLanguage.Name,
		Archived:      n.IsArchived,
	}
}
