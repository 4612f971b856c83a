package readme

import (
	"context"

	"github.com/agentstation/readmesync/internal/sources/feed"
	"github.com/agentstation/readmesync/internal/sources/github"
	"github.com/agentstation/readmesync/internal/sources/til"
	"github.com/agentstation/readmesync/pkg/errors"
)

// Fetcher provides the records every section is rendered from.
type Fetcher interface {
	Contributions(ctx context.Context) ([]github.Contribution, error)
	Releases(ctx context.Context) ([]github.Release, error)
	Blog(ctx context.Context, limit int) ([]feed.Entry, error)
	TILs(ctx context.Context, limit int) ([]til.Entry, error)
}

// Remote is the Fetcher backed by the live sources. Any nil source fails
// when its records are requested.
type Remote struct {
	GitHub *github.Client
	Feed   *feed.Source
	TIL    *til.Source
}

// Contributions implements Fetcher.
func (r *Remote) Contributions(ctx context.Context) ([]github.Contribution, error) {
	if r.GitHub == nil {
		return nil, errors.NewConfigError("github", "GitHub source is not configured", errors.ErrAPIKeyRequired)
	}
	return r.GitHub.Contributions(ctx)
}

// Releases implements Fetcher.
func (r *Remote) Releases(ctx context.Context) ([]github.Release, error) {
	if r.GitHub == nil {
		return nil, errors.NewConfigError("github", "GitHub source is not configured", errors.ErrAPIKeyRequired)
	}
	return r.GitHub.Releases(ctx)
}

// Blog implements Fetcher.
func (r *Remote) Blog(ctx context.Context, limit int) ([]feed.Entry, error) {
	if r.Feed == nil {
		return nil, errors.NewConfigError("feed_url", "feed source is not configured", nil)
	}
	return r.Feed.Entries(ctx, limit)
}

// TILs implements Fetcher.
func (r *Remote) TILs(ctx context.Context, limit int) ([]til.Entry, error) {
	if r.TIL == nil {
		return nil, errors.NewConfigError("til_url", "TIL source is not configured", nil)
	}
	return r.TIL.Entries(ctx, limit)
}

// memo caches each source for one run so a source feeding several markers
// is fetched once.
type memo struct {
	fetcher Fetcher

	contribs     []github.Contribution
	contribsDone bool
	releaseList  []github.Release
	releasesDone bool
}

func (m *memo) contributions(ctx context.Context) ([]github.Contribution, error) {
	if m.contribsDone {
		return m.contribs, nil
	}
	contribs, err := m.fetcher.Contributions(ctx)
	if err != nil {
		return nil, err
	}
	m.contribs, m.contribsDone = contribs, true
	return contribs, nil
}

func (m *memo) releases(ctx context.Context) ([]github.Release, error) {
	if m.releasesDone {
		return m.releaseList, nil
	}
	releases, err := m.fetcher.Releases(ctx)
	if err != nil {
		return nil, err
	}
	m.releaseList, m.releasesDone = releases, true
	return releases, nil
}
