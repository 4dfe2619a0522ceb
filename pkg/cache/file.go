package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache persists entries on disk for CLI runs, one file per entry,
// grouped into a subdirectory per key kind (layout/, artifact/). The
// grouping lets `egoview cache clear` drop one kind without touching the
// other. Expiry travels inside the entry, so stale files are detected and
// removed on the next read rather than by a sweeper.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// fileEntry is the on-disk envelope around a cached value.
type fileEntry struct {
	// Expires is a unix timestamp in nanoseconds; zero keeps the entry forever.
	Expires int64 `json:"expires,omitempty"`

	Payload []byte `json:"payload"`
}

// Get reads an entry, dropping it if the envelope is unreadable or expired.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Unreadable envelope, likely a partial write. Treat as a miss.
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.Expires != 0 && time.Now().UnixNano() > entry.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Set writes an entry under its kind directory.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Delete removes an entry; a missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op; every operation already leaves the files consistent.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key to <root>/<kind>/<digest>.cache. The digest covers
// the whole key, so keys without a kind prefix still store safely under the
// catch-all directory.
func (c *FileCache) entryPath(key string) string {
	kind, _, ok := strings.Cut(key, ":")
	if !ok || kind == "" {
		kind = "misc"
	}
	return filepath.Join(c.root, kind, Hash([]byte(key))+".cache")
}

var _ Cache = (*FileCache)(nil)
