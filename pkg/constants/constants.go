// Package constants provides shared constants used throughout readmesync.
// This includes timeouts, limits, file permissions and the default endpoints
// that should be consistent across the application.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for a single HTTP request
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for a complete CLI run
	CommandTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// DefaultPageSize is the number of records requested per GraphQL page.
	// GitHub caps connections at 100 nodes.
	DefaultPageSize = 100

	// DefaultMaxPages caps how many pages a single source may return in one run
	DefaultMaxPages = 1000

	// DefaultBlogLimit is the number of blog entries rendered into the README
	DefaultBlogLimit = 5

	// DefaultReleaseLimit is the number of releases rendered into the README
	DefaultReleaseLimit = 8

	// DefaultTILLimit is the number of TIL entries rendered into the README
	DefaultTILLimit = 5

	// MaxResponseBytes bounds how much of a response body is read
	MaxResponseBytes = 10 << 20
)

// Rate limiting constants
const (
	// DefaultRequestsPerSecond is the default request rate per host
	DefaultRequestsPerSecond = 5.0

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 5
)

// Endpoint defaults
const (
	// GitHubGraphQLEndpoint is the public GitHub GraphQL API
	GitHubGraphQLEndpoint = "https://api.github.com/graphql"

	// DefaultUserAgent identifies readmesync to remote servers
	DefaultUserAgent = "readmesync (+https://github.com/agentstation/readmesync)"
)

// Default file targets
const (
	DefaultReadmePath   = "README.md"
	DefaultReleasesPath = "releases.md"
	DefaultContribsPath = "contrib.md"
)
