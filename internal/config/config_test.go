package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/readmesync/internal/config"
	"github.com/agentstation/readmesync/pkg/errors"
)

// isolate runs the test in an empty directory with a clean environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"GITHUB_TOKEN", "READMESYNC_TOKEN", "READMESYNC_FEED_URL", "READMESYNC_SECTIONS", "READMESYNC_PAGE_SIZE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com/graphql", cfg.GraphQLEndpoint)
	assert.Equal(t, "README.md", cfg.ReadmePath)
	assert.Equal(t, "releases.md", cfg.ReleasesPath)
	assert.Equal(t, "contrib.md", cfg.ContribsPath)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 1000, cfg.MaxPages)
	assert.Equal(t, 8, cfg.ReleaseLimit)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.Sections)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
feed_url: https://blog.example.com/index.xml
sections: [blog, tils]
blog_limit: 3
http_timeout: 10s
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com/index.xml", cfg.FeedURL)
	assert.Equal(t, []string{"blog", "tils"}, cfg.Sections)
	assert.Equal(t, 3, cfg.BlogLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".readmesync.yaml"), []byte("readme_path: PROFILE.md\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "PROFILE.md", cfg.ReadmePath)
}

func TestLoadEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".readmesync.yaml"), []byte("feed_url: https://file.example.com/feed\n"), 0o644))

	t.Setenv("GITHUB_TOKEN", "ghp_env")
	t.Setenv("READMESYNC_FEED_URL", "https://env.example.com/feed")
	t.Setenv("READMESYNC_SECTIONS", "blog, contribs")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "ghp_env", cfg.Token)
	assert.Equal(t, "https://env.example.com/feed", cfg.FeedURL, "environment wins over file")
	assert.Equal(t, []string{"blog", "contribs"}, cfg.Sections)
}

func TestLoadPrefixedTokenWins(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "ghp_generic")
	t.Setenv("READMESYNC_TOKEN", "ghp_specific")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "ghp_specific", cfg.Token)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("READMESYNC_PAGE_SIZE=50\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("READMESYNC_PAGE_SIZE") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("page_size: 500\n"), 0o644))
		_, err := config.Load(path)
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "page_size", cfgErr.Component)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		field  string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "zero page size", mutate: func(c *config.Config) { c.PageSize = 0 }, field: "page_size"},
		{name: "negative limit", mutate: func(c *config.Config) { c.BlogLimit = -1 }, field: "blog_limit"},
		{name: "zero timeout", mutate: func(c *config.Config) { c.HTTPTimeout = 0 }, field: "http_timeout"},
		{name: "negative rate", mutate: func(c *config.Config) { c.RequestsPerSecond = -1 }, field: "requests_per_second"},
		{name: "relative feed url", mutate: func(c *config.Config) { c.FeedURL = "index.xml" }, field: "feed_url"},
		{name: "unknown section", mutate: func(c *config.Config) { c.Sections = []string{"weather"} }, field: "sections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Component)
		})
	}
}

func TestEffectiveSections(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, cfg.EffectiveSections())

	cfg.FeedURL = "https://blog.example.com/feed"
	cfg.Token = "x"
	assert.Equal(t, []string{"blog", "contribs", "releases"}, cfg.EffectiveSections())

	cfg.TILURL = "https://til.example.com/til.json"
	assert.Equal(t, []string{"blog", "contribs", "releases", "tils"}, cfg.EffectiveSections())

	cfg.Sections = []string{"tils"}
	assert.Equal(t, []string{"tils"}, cfg.EffectiveSections())
}

func TestRedacted(t *testing.T) {
	cfg := config.Default()
	cfg.Token = "ghp_secret"

	red := cfg.Redacted()
	assert.Equal(t, "[redacted]", red.Token)
	assert.Equal(t, "ghp_secret", cfg.Token, "original untouched")

	assert.Empty(t, config.Default().Redacted().Token)
}
