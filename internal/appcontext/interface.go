// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/readmesync/internal/config"
	"github.com/agentstation/readmesync/internal/readme"
)

// Interface defines what commands need from the application. The App
// struct from cmd/readmesync/app implements it; tests use Mock.
type Interface interface {
	// Config returns the effective configuration.
	Config() *config.Config

	// Fetcher returns the record sources built from the configuration.
	Fetcher() (readme.Fetcher, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
