// Package feed reads blog entries from an RSS, Atom or JSON feed.
package feed

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/agentstation/readmesync/internal/transport"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
)

// DateLayout is how publication dates are rendered.
const DateLayout = "2006-01-02"

// Entry is one blog post.
type Entry struct {
	Title     string `json:"title" yaml:"title"`
	URL       string `json:"url" yaml:"url"`
	Published string `json:"published" yaml:"published"`

	published *time.Time
}

// Source fetches a syndication feed over HTTP.
type Source struct {
	url       string
	transport *transport.Client
}

// Accept lists the media types requested from the feed host.
const Accept = "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8"

// New creates a feed source for url.
func New(url string, tc *transport.Client) (*Source, error) {
	if url == "" {
		return nil, errors.NewConfigError("feed_url", "feed URL is empty", nil)
	}
	if tc == nil {
		tc = transport.New(transport.WithName("feed"))
	}
	return &Source{url: url, transport: tc}, nil
}

// Entries returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (s *Source) Entries(ctx context.Context, limit int) ([]Entry, error) {
	logger := logging.FromContext(logging.WithSource(ctx, "feed"))

	resp, err := s.transport.GetAccept(ctx, s.url, Accept)
	if err != nil {
		return nil, err
	}
	body, err := s.transport.ReadBody(ctx, resp)
	if err != nil {
		return nil, err
	}

	entries, err := Parse(body)
	if err != nil {
		return nil, errors.NewParseError("feed", s.url, err.Error(), err)
	}

	logger.Debug().Int("entries", len(entries)).Str("url", s.url).Msg("Parsed feed")

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Parse parses a raw feed document into entries sorted newest first.
// Entries without a parseable date keep their feed position relative to
// each other and sort after dated ones.
func Parse(data []byte) ([]Entry, error) {
	f, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(f.Items))
	for _, item := range f.Items {
		if item == nil {
			continue
		}
		entries = append(entries, fromItem(item))
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.published == nil && b.published == nil:
			return 0
		case a.published == nil:
			return 1
		case b.published == nil:
			return -1
		default:
			return b.published.Compare(*a.published)
		}
	})

	return entries, nil
}

func fromItem(item *gofeed.Item) Entry {
	e := Entry{
		Title: strings.TrimSpace(item.Title),
		URL:   item.Link,
	}

	switch {
	case item.PublishedParsed != nil:
		e.published = item.PublishedParsed
		e.Published = item.PublishedParsed.Format(DateLayout)
	case item.UpdatedParsed != nil:
		e.published = item.UpdatedParsed
		e.Published = item.UpdatedParsed.Format(DateLayout)
	case item.Published != "":
		e.Published = item.Published
	default:
		e.Published = item.Updated
	}

	if e.URL == "" && len(item.Links) > 0 {
		e.URL = item.Links[0]
	}
	return e
}
