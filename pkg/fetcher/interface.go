package fetcher

import (
	"context"
	"time"
)

// Fetcher retrieves the raw HTML of a source
type Fetcher interface {
	// Fetch returns the page content, from the cache when an entry exists
	Fetch(ctx context.Context, source string) (string, error)
}

// Options contains configuration for the HTTP fetcher
type Options struct {
	UserAgent         string        // User agent string
	Timeout           time.Duration // Request timeout
	RespectRobots     bool          // Check robots.txt before fetching
	RequestsPerSecond float64       // Rate limit for outbound requests
	Refresh           bool          // Ignore an existing cache entry
}
