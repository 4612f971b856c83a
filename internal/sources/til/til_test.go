package til_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/readmesync/internal/sources/til"
	"github.com/agentstation/readmesync/internal/transport"
	"github.com/agentstation/readmesync/pkg/errors"
)

func TestEntries(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`[
			{"title": "Using jq", "url": "https://til.example.com/jq", "created_utc": "2024-04-01T10:00:00+00:00"},
			{"title": "Go generics", "url": "https://til.example.com/go", "created_utc": "2024-03-01T09:00:00+00:00"}
		]`))
	}))
	defer server.Close()

	src, err := til.New(server.URL+"/til.json", transport.New(transport.WithRateLimit(0, 0)))
	require.NoError(t, err)

	entries, err := src.Entries(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Using jq", entries[0].Title)
	assert.Equal(t, "2024-04-01", entries[0].Date())
	assert.Equal(t, "array", query.Get("_shape"))
	assert.Equal(t, "select title, url, created_utc from til order by created_utc desc limit 5", query.Get("sql"))
}

func TestEntriesTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"a"},{"title":"b"},{"title":"c"}]`))
	}))
	defer server.Close()

	src, err := til.New(server.URL, nil)
	require.NoError(t, err)

	entries, err := src.Entries(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEntriesErrors(t *testing.T) {
	_, err := til.New("", nil)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "error": "no such table"}`))
	}))
	defer server.Close()

	src, err := til.New(server.URL, nil)
	require.NoError(t, err)
	_, err = src.Entries(context.Background(), 5)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2024-01-02", til.Entry{Created: "2024-01-02T03:04:05"}.Date())
	assert.Equal(t, "2024-01-02", til.Entry{Created: "2024-01-02"}.Date())
	assert.Empty(t, til.Entry{}.Date())
}

func TestQuery(t *testing.T) {
	assert.NotContains(t, til.Query(0), "limit")
}
