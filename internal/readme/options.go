package readme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
)

type config struct {
	readmePath   string
	releasesPath string
	contribsPath string
	sections     []string
	blogLimit    int
	releaseLimit int
	tilLimit     int
	dryRun       bool
}

func defaultConfig() config {
	return config{
		readmePath:   constants.DefaultReadmePath,
		releasesPath: constants.DefaultReleasesPath,
		contribsPath: constants.DefaultContribsPath,
		sections:     Sections(),
		blogLimit:    constants.DefaultBlogLimit,
		releaseLimit: constants.DefaultReleaseLimit,
		tilLimit:     constants.DefaultTILLimit,
	}
}

// Option configures a Generator.
type Option func(*config) error

// WithReadme sets the README path. An empty path skips the README.
func WithReadme(path string) Option {
	return func(c *config) error {
		c.readmePath = path
		return nil
	}
}

// WithReleasesFile sets the releases page path. An empty path skips it.
func WithReleasesFile(path string) Option {
	return func(c *config) error {
		c.releasesPath = path
		return nil
	}
}

// WithContribsFile sets the standalone contributions file. An empty path skips it.
func WithContribsFile(path string) Option {
	return func(c *config) error {
		c.contribsPath = path
		return nil
	}
}

// WithSections restricts the run to the named sections.
func WithSections(sections ...string) Option {
	return func(c *config) error {
		if len(sections) == 0 {
			return nil
		}
		known := Sections()
		selected := make([]string, 0, len(sections))
		for _, s := range sections {
			s = strings.ToLower(strings.TrimSpace(s))
			if !slices.Contains(known, s) {
				return errors.NewConfigError("sections",
					fmt.Sprintf("unknown section %q (valid: %s)", s, strings.Join(known, ", ")), nil)
			}
			if !slices.Contains(selected, s) {
				selected = append(selected, s)
			}
		}
		c.sections = selected
		return nil
	}
}

// WithLimits sets how many blog entries, releases and TILs reach the
// README. Non-positive values keep the defaults.
func WithLimits(blog, releases, tils int) Option {
	return func(c *config) error {
		if blog > 0 {
			c.blogLimit = blog
		}
		if releases > 0 {
			c.releaseLimit = releases
		}
		if tils > 0 {
			c.tilLimit = tils
		}
		return nil
	}
}

// WithDryRun renders everything without writing files.
func WithDryRun(dryRun bool) Option {
	return func(c *config) error {
		c.dryRun = dryRun
		return nil
	}
}
