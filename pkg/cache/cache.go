// Package cache provides pluggable byte caches and key generation for egoview.
//
// The cache stores serialized layout computations (positions, community
// partitions) and rendered artifacts. Backends include an in-process memory
// cache, a file cache for CLI usage, a Redis cache for server deployments,
// and a null cache that disables caching entirely.
//
// Keys are generated through the Keyer interface so that all components agree
// on how graph fingerprints and options map to cache keys.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key kinds. Every key starts with its kind so backends and tooling can
// group or clear entries per kind.
const (
	KindLayout   = "layout"   // embeddings and community partitions
	KindArtifact = "artifact" // rendered view outputs (json, html, svg, ...)
)

// TTLs per cached value kind. Layout results are pure functions of the
// graph fingerprint, so expiry only bounds storage growth.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// LayoutKeyOpts captures the options that distinguish layout cache entries.
type LayoutKeyOpts struct {
	Algorithm string `json:"algorithm"`
}

// ArtifactKeyOpts captures the options that distinguish rendered artifacts.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the different cached value kinds.
type Keyer interface {
	// LayoutKey generates a key for a layout computation
	// (positions or community partition) on a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of a view graph.
	ArtifactKey(viewHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, viewHash, opts)
}

// hashKey derives a "<kind>:<digest>" key from a content hash and the options
// that distinguish variants of the same content. The digest covers both, so
// any option change produces a distinct key.
func hashKey(kind, contentHash string, opts any) string {
	enc, _ := json.Marshal(opts)
	sum := sha256.Sum256(append([]byte(contentHash+"\x00"), enc...))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. Used for graph fingerprints
// and view hashes feeding into key derivation.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in shared deployments where different users or data sources
// need separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(viewHash, opts)
}

// NullCache discards every write and misses every read. It backs --no-cache
// runs and the off backend.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
