package app

import (
	"github.com/agentstation/readmesync/internal/readme"
	"github.com/agentstation/readmesync/internal/sources/feed"
	"github.com/agentstation/readmesync/internal/sources/github"
	"github.com/agentstation/readmesync/internal/sources/til"
	"github.com/agentstation/readmesync/internal/transport"
	"github.com/agentstation/readmesync/pkg/constants"
)

// Fetcher builds the live sources from the configuration. Sources that are
// not configured are left nil and fail when used.
func (a *App) Fetcher() (readme.Fetcher, error) {
	cfg := a.config
	remote := &readme.Remote{}

	if cfg.Token != "" {
		client, err := github.New(github.Config{
			Endpoint: cfg.GraphQLEndpoint,
			Token:    cfg.Token,
			PageSize: cfg.PageSize,
			MaxPages: cfg.MaxPages,
		}, a.transport("github", &transport.BearerAuth{}, cfg.Token))
		if err != nil {
			return nil, err
		}
		remote.GitHub = client
	}

	if cfg.FeedURL != "" {
		src, err := feed.New(cfg.FeedURL, a.transport("feed", &transport.NoAuth{}, ""))
		if err != nil {
			return nil, err
		}
		remote.Feed = src
	}

	if cfg.TILURL != "" {
		src, err := til.New(cfg.TILURL, a.transport("til", &transport.NoAuth{}, ""))
		if err != nil {
			return nil, err
		}
		remote.TIL = src
	}

	return remote, nil
}

func (a *App) transport(name string, auth transport.Authenticator, token string) *transport.Client {
	return transport.New(
		transport.WithName(name),
		transport.WithAuth(auth, token),
		transport.WithTimeout(a.config.HTTPTimeout),
		transport.WithUserAgent(a.config.UserAgent),
		transport.WithRateLimit(a.config.RequestsPerSecond, constants.BurstSize),
	)
}
