package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/readmesync/internal/config"
	"github.com/agentstation/readmesync/internal/readme"
	"github.com/agentstation/readmesync/pkg/logging"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithConfig(cfg), WithLogger(&logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t, config.Default())

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_WithNilConfig verifies that a nil configuration is rejected.
func TestApp_WithNilConfig(t *testing.T) {
	if _, err := New("1.0.0", "", "", "", WithConfig(nil)); err == nil {
		t.Error("New() with nil config should fail")
	}
}

// TestApp_Fetcher verifies sources are built only when configured.
func TestApp_Fetcher(t *testing.T) {
	cfg := config.Default()
	cfg.FeedURL = "https://example.com/index.xml"

	fetcher, err := newTestApp(t, cfg).Fetcher()
	if err != nil {
		t.Fatalf("Fetcher() failed: %v", err)
	}

	remote, ok := fetcher.(*readme.Remote)
	if !ok {
		t.Fatalf("Fetcher() = %T, want *readme.Remote", fetcher)
	}
	if remote.Feed == nil {
		t.Error("feed source not configured")
	}
	if remote.GitHub != nil {
		t.Error("github source configured without a token")
	}
	if remote.TIL != nil {
		t.Error("til source configured without a URL")
	}

	if _, err := fetcher.Contributions(context.Background()); err == nil {
		t.Error("Contributions() without a token should fail")
	}
}

// TestApp_FetcherWithToken verifies the GitHub source uses the token.
func TestApp_FetcherWithToken(t *testing.T) {
	cfg := config.Default()
	cfg.Token = "ghp_test"

	fetcher, err := newTestApp(t, cfg).Fetcher()
	if err != nil {
		t.Fatalf("Fetcher() failed: %v", err)
	}
	if remote := fetcher.(*readme.Remote); remote.GitHub == nil {
		t.Error("github source not configured")
	}
}

// TestApp_VersionCommand verifies the version output.
func TestApp_VersionCommand(t *testing.T) {
	app := newTestApp(t, config.Default())
	cmd := app.CreateVersionCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "readmesync 1.0.0") {
		t.Errorf("version output = %q", out.String())
	}
}

// TestApp_RootCommand verifies command registration.
func TestApp_RootCommand(t *testing.T) {
	root := newTestApp(t, config.Default()).createRootCommand()

	for _, name := range []string{"update", "fetch", "replace", "config", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

// TestApp_ExecuteSetsDefaultLogger verifies the configured logger also
// backs contexts that carry none.
func TestApp_ExecuteSetsDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	app := newTestApp(t, config.Default())
	if err := app.Execute(context.Background(), []string{"version", "--log-level", "error"}); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if got := logging.FromContext(context.Background()).GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("default logger level = %v, want %v", got, zerolog.ErrorLevel)
	}
}
