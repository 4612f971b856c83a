// Package app provides the application context and dependency management
// for the readmesync CLI.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/readmesync/internal/appcontext"
	"github.com/agentstation/readmesync/internal/config"
	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
)

// App represents the readmesync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Global flags
	flags Flags

	// Configuration
	config *config.Config

	// Logger
	logger *zerolog.Logger

	// cancel releases the command timeout context
	cancel context.CancelFunc
}

var _ appcontext.Interface = (*App)(nil)

// Flags holds the global command-line flags.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
	Timeout    time.Duration
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   Flags{Timeout: constants.CommandTimeout},
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		cfg, err := config.Load("")
		if err != nil {
			return nil, err
		}
		app.config = cfg
	}

	if app.logger == nil {
		logger := NewLogger(app.flags, app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format flag value.
func (a *App) OutputFormat() string {
	return a.flags.Format
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		if cfg == nil {
			return errors.NewConfigError("app", "nil configuration", nil)
		}
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
