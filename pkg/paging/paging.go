// Package paging walks cursor-paginated collections.
//
// Aggregate calls a page-fetch function repeatedly, threading the opaque
// continuation cursor from one page into the next request, and folds every
// page into one ordered, deduplicated slice. Pages are fetched strictly one
// after another because each request depends on the previous cursor.
package paging

import (
	"context"
	"fmt"

	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
)

// Identifiable is implemented by records that carry a stable identity key.
// Two records with the same identity are the same record.
type Identifiable interface {
	Identity() string
}

// Page is one fetch result from a paged source.
type Page[T any] struct {
	// Records holds the records of this page in source order.
	Records []T

	// Cursor is the continuation token for the next page; nil when absent.
	Cursor *string

	// HasMore reports whether the source has further pages.
	HasMore bool
}

// FetchFunc fetches the page that starts at cursor. The first call receives
// a nil cursor.
type FetchFunc[T any] func(ctx context.Context, cursor *string) (*Page[T], error)

// Option configures Aggregate.
type Option func(*options)

type options struct {
	source   string
	maxPages int
}

// WithSource names the source in errors and log lines.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// WithMaxPages aborts aggregation once more than n pages would be fetched.
// Zero or a negative value means no limit.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// Aggregate fetches every page from fetch and returns the concatenation of
// their records, in the order they were returned. Records whose identity was
// already seen earlier in this run are dropped, so the first occurrence wins.
//
// Any failure while paging is returned as an *errors.AggregationError, which
// matches errors.ErrAggregationFailed. No partial result is returned and no
// page is retried.
func Aggregate[T Identifiable](ctx context.Context, fetch FetchFunc[T], opts ...Option) ([]T, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.FromContext(ctx)

	var (
		records []T
		seen    = make(map[string]struct{})
		cursor  *string
	)

	for page := 1; ; page++ {
		if o.maxPages > 0 && page > o.maxPages {
			return nil, errors.NewAggregationError(o.source, page,
				fmt.Errorf("%w: more than %d pages", errors.ErrPageLimit, o.maxPages))
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.NewAggregationError(o.source, page, fmt.Errorf("%w: %w", errors.ErrCanceled, err))
		}

		p, err := fetch(ctx, cursor)
		if err != nil {
			return nil, errors.NewAggregationError(o.source, page, err)
		}
		if p == nil {
			return nil, errors.NewAggregationError(o.source, page, errors.New("source returned no page"))
		}

		added := 0
		for _, r := range p.Records {
			id := r.Identity()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			records = append(records, r)
			added++
		}

		logger.Debug().
			Str("source", o.source).
			Int("page", page).
			Int("records", len(p.Records)).
			Int("added", added).
			Bool("has_more", p.HasMore).
			Msg("Fetched page")

		if !p.HasMore {
			break
		}
		if p.Cursor == nil || *p.Cursor == "" {
			return nil, errors.NewAggregationError(o.source, page,
				errors.New("source reported more pages without a continuation cursor"))
		}
		cursor = p.Cursor
	}

	return records, nil
}

// Cursor returns a pointer to c, or nil when c is empty.
func Cursor(c string) *string {
	if c == "" {
		return nil
	}
	return &c
}
