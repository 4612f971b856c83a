// Package config loads readmesync settings from flags, environment
// variables, .env files and an optional YAML config file.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
)

// Section names, mirrored from the generator so config stays free of
// domain imports.
var knownSections = []string{"blog", "contribs", "releases", "tils"}

// Config holds the effective application configuration.
type Config struct {
	// Sources
	Token           string `yaml:"token,omitempty"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	FeedURL         string `yaml:"feed_url,omitempty"`
	TILURL          string `yaml:"til_url,omitempty"`

	// Targets
	ReadmePath   string   `yaml:"readme_path"`
	ReleasesPath string   `yaml:"releases_path,omitempty"`
	ContribsPath string   `yaml:"contribs_path,omitempty"`
	Sections     []string `yaml:"sections,omitempty"`

	// Limits
	BlogLimit    int `yaml:"blog_limit"`
	ReleaseLimit int `yaml:"release_limit"`
	TILLimit     int `yaml:"til_limit"`
	PageSize     int `yaml:"page_size"`
	MaxPages     int `yaml:"max_pages"`

	// HTTP
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	UserAgent         string        `yaml:"user_agent"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `yaml:"config_file,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		GraphQLEndpoint:   constants.GitHubGraphQLEndpoint,
		ReadmePath:        constants.DefaultReadmePath,
		ReleasesPath:      constants.DefaultReleasesPath,
		ContribsPath:      constants.DefaultContribsPath,
		BlogLimit:         constants.DefaultBlogLimit,
		ReleaseLimit:      constants.DefaultReleaseLimit,
		TILLimit:          constants.DefaultTILLimit,
		PageSize:          constants.DefaultPageSize,
		MaxPages:          constants.DefaultMaxPages,
		HTTPTimeout:       constants.DefaultHTTPTimeout,
		RequestsPerSecond: constants.DefaultRequestsPerSecond,
		UserAgent:         constants.DefaultUserAgent,
		LogLevel:          "info",
		LogFormat:         "auto",
		LogOutput:         "stderr",
	}
}

// Validate checks value ranges and URLs.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > constants.DefaultPageSize {
		return errors.NewConfigError("page_size", fmt.Sprintf("must be between 1 and %d, got %d", constants.DefaultPageSize, c.PageSize), nil)
	}
	for key, v := range map[string]int{
		"blog_limit":    c.BlogLimit,
		"release_limit": c.ReleaseLimit,
		"til_limit":     c.TILLimit,
		"max_pages":     c.MaxPages,
	} {
		if v < 0 {
			return errors.NewConfigError(key, fmt.Sprintf("must not be negative, got %d", v), nil)
		}
	}
	if c.HTTPTimeout <= 0 {
		return errors.NewConfigError("http_timeout", "must be positive", nil)
	}
	if c.RequestsPerSecond < 0 {
		return errors.NewConfigError("requests_per_second", "must not be negative", nil)
	}
	for key, raw := range map[string]string{
		"graphql_endpoint": c.GraphQLEndpoint,
		"feed_url":         c.FeedURL,
		"til_url":          c.TILURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.NewConfigError(key, fmt.Sprintf("invalid URL %q", raw), err)
		}
	}
	for _, s := range c.Sections {
		if !slices.Contains(knownSections, s) {
			return errors.NewConfigError("sections", fmt.Sprintf("unknown section %q", s), nil)
		}
	}
	return nil
}

// EffectiveSections returns the configured sections, or when none are
// configured every section whose source is available.
func (c *Config) EffectiveSections() []string {
	if len(c.Sections) > 0 {
		return c.Sections
	}
	var sections []string
	if c.FeedURL != "" {
		sections = append(sections, "blog")
	}
	if c.Token != "" {
		sections = append(sections, "contribs", "releases")
	}
	if c.TILURL != "" {
		sections = append(sections, "tils")
	}
	return sections
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	out.Sections = slices.Clone(c.Sections)
	if out.Token != "" {
		out.Token = "[redacted]"
	}
	return &out
}
