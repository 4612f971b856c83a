// Package github reads the viewer's contributions and releases from the
// GitHub GraphQL API.
package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shurcooL/githubv4"

	"github.com/agentstation/readmesync/internal/transport"
	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
)

const providerName = "github"

// Config holds everything the client needs. It is passed in explicitly;
// there is no package-level client.
type Config struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string

	// Token is the bearer token used for every request.
	Token string

	// PageSize is the number of nodes requested per page (1-100).
	PageSize int

	// MaxPages caps how many pages one query may walk; 0 means no cap.
	MaxPages int
}

// Client queries the GitHub GraphQL API.
type Client struct {
	cfg Config
	gql *githubv4.Client
}

// New creates a client. The transport is expected to carry bearer auth for
// cfg.Token; when it is nil a default one is built.
func New(cfg Config, tc *transport.Client) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.NewAuthenticationError(providerName, "bearer", "a GitHub token is required", errors.ErrAPIKeyRequired)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = constants.GitHubGraphQLEndpoint
	}
	if cfg.PageSize <= 0 || cfg.PageSize > constants.DefaultPageSize {
		cfg.PageSize = constants.DefaultPageSize
	}
	if tc == nil {
		tc = transport.New(
			transport.WithName(providerName),
			transport.WithAuth(&transport.BearerAuth{}, cfg.Token),
		)
	}
	return &Client{cfg: cfg, gql: githubv4.NewEnterpriseClient(cfg.Endpoint, tc.HTTPClient())}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// query runs q and maps failures onto the package error types. Every query
// selects viewer.login; an empty login means the response carried no data.
func (c *Client) query(ctx context.Context, q any, variables map[string]any, login func() string) error {
	if err := c.gql.Query(ctx, q, variables); err != nil {
		return c.classify(ctx, err)
	}
	if login() == "" {
		return errors.NewAPIError(providerName, 200, "response carried no data")
	}
	return nil
}

// classify unwraps transport failures, which already carry typed errors,
// and reports everything else as a GraphQL error.
func (c *Client) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	logging.FromContext(ctx).Debug().Err(err).Msg("GraphQL query failed")
	apiErr := errors.NewAPIError(providerName, 200, err.Error())
	apiErr.Endpoint = c.cfg.Endpoint
	apiErr.Err = err
	return apiErr
}

// pageInfo is the GraphQL connection PageInfo object.
type pageInfo struct {
	HasNextPage bool   `graphql:"hasNextPage"`
	EndCursor   string `graphql:"endCursor"`
}

// pageVars builds the variables shared by the paged queries.
func (c *Client) pageVars(cursor *string) map[string]any {
	return map[string]any{
		"first": githubv4.Int(c.cfg.PageSize),
		"after": (*githubv4.String)(cursor),
	}
}
