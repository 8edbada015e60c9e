// Package cache stores formatted documents on disk so unchanged inputs can
// skip the pretty-printer on repeated runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tptpfmt/internal/format"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Key identifies one cached document.
type Key [sha256.Size]byte

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyFor derives a cache key from the formatter version, the config
// fingerprint and the raw document content.
func KeyFor(version, fingerprint string, content []byte) Key {
	h := sha256.New()
	h.Write([]byte(version))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(content)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Payload is the cached result of formatting one document.
type Payload struct {
	Schema    uint16
	Formatted string
	External  bool // produced by the external tool

	Comments    int
	Statements  int
	Passthrough int
}

// NewPayload builds a payload from a formatting result.
func NewPayload(formatted string, rep format.Report, external bool) *Payload {
	return &Payload{
		Schema:      schemaVersion,
		Formatted:   formatted,
		External:    external,
		Comments:    rep.Comments,
		Statements:  rep.Statements,
		Passthrough: rep.Passthrough,
	}
}

// Report restores the formatting report stored in the payload.
func (p *Payload) Report() format.Report {
	return format.Report{
		Comments:    p.Comments,
		Statements:  p.Statements,
		Formatted:   p.Statements - p.Passthrough,
		Passthrough: p.Passthrough,
	}
}

// DiskCache keeps payloads under one directory, one file per key.
// Thread-safe for concurrent access; a nil *DiskCache is a valid no-op cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open creates dir if needed and returns a cache rooted there. An empty dir
// selects DefaultDir("tptpfmt").
func Open(dir string) (*DiskCache, error) {
	if dir == "" {
		d, err := DefaultDir("tptpfmt")
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	// двухсимвольный префикс, чтобы не складывать всё в один каталог
	return filepath.Join(c.dir, "docs", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload.
func (c *DiskCache) Put(key Key, payload *Payload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	payload.Schema = schemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload. Missing entries, undecodable files and entries
// written with another schema version are all reported as misses.
func (c *DiskCache) Get(key Key) (*Payload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var out Payload
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	if out.Schema != schemaVersion {
		return nil, false
	}
	return &out, true
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "docs"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
