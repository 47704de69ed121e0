// Package cache stores loaded rosters and rendered seating artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the API server
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys are built by a [Keyer] so that CLI and API agree on the layout of the
// key space. Allocation results are never cached: every run consumes queues.
package cache

import (
	"context"
	"time"
)

// Cache TTLs.
const (
	// TTLRoster is how long a parsed roster is kept, keyed by file content.
	TTLRoster = 24 * time.Hour

	// TTLArtifact is how long a rendered report is kept, keyed by report content.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RosterKey returns the key for a roster parsed from content with the given hash.
	RosterKey(contentHash, format string) string

	// ArtifactKey returns the key for one rendered format of a report.
	ArtifactKey(reportHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format        string `json:"format"`
	LogoHash      string `json:"logo_hash,omitempty"`
	SectionColors bool   `json:"section_colors,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RosterKey implements Keyer.
func (DefaultKeyer) RosterKey(contentHash, format string) string {
	return hashKey("roster", contentHash, format)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", reportHash, opts)
}
