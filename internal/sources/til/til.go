// Package til reads "today I learned" entries from a datasette JSON endpoint.
package til

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/readmesync/internal/transport"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
)

// Entry is one TIL.
type Entry struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Created string `json:"created_utc" yaml:"created_utc"`
}

// Date returns the date part of the creation timestamp.
func (e Entry) Date() string {
	date, _, _ := strings.Cut(e.Created, "T")
	return date
}

// Source queries a datasette table exposing title, url and created_utc.
type Source struct {
	endpoint  string
	transport *transport.Client
}

// New creates a TIL source for endpoint, e.g. https://til.simonwillison.net/til.json.
func New(endpoint string, tc *transport.Client) (*Source, error) {
	if endpoint == "" {
		return nil, errors.NewConfigError("til_url", "TIL endpoint is empty", nil)
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, errors.NewConfigError("til_url", "invalid TIL endpoint", err)
	}
	if tc == nil {
		tc = transport.New(transport.WithName("til"))
	}
	return &Source{endpoint: endpoint, transport: tc}, nil
}

// Query returns the SQL sent for limit entries.
func Query(limit int) string {
	if limit <= 0 {
		return "select title, url, created_utc from til order by created_utc desc"
	}
	return fmt.Sprintf("select title, url, created_utc from til order by created_utc desc limit %d", limit)
}

// Entries returns the newest limit entries.
func (s *Source) Entries(ctx context.Context, limit int) ([]Entry, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, errors.NewConfigError("til_url", "invalid TIL endpoint", err)
	}
	q := u.Query()
	q.Set("sql", Query(limit))
	q.Set("_shape", "array")
	u.RawQuery = q.Encode()

	var entries []Entry
	if err := s.transport.GetJSON(ctx, u.String(), &entries); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("source", "til").
		Int("entries", len(entries)).
		Msg("Fetched TIL entries")

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
