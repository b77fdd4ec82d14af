package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tenure/internal/identity"
	"tenure/internal/normalize"
	"tenure/internal/table"
)

// Bump when the payload format changes so stale entries self-invalidate.
const cacheSchemaVersion uint16 = 1

const cacheAppName = "tenure"

// Digest keys a cache entry: sha256 over the ingested rows.
type Digest [sha256.Size]byte

// HashTable digests the identity-relevant cells of every row, in row order.
// Two ingests with equal digests normalize identically.
func HashTable(t *table.Table) Digest {
	h := sha256.New()
	for _, row := range t.Rows() {
		for _, cell := range []string{row.Name, row.Position, row.Organization} {
			h.Write([]byte(cell))
			h.Write([]byte{0})
		}
		h.Write([]byte{0xff})
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// CachePayload stores the normalized identity fields of one ingest. Empty
// strings stand for the missing marker; normalize.Of maps them back.
type CachePayload struct {
	Schema uint16
	Rules  uint16

	Names     []string
	Positions []string
	Orgs      []string
}

// DiskCache persists normalization results between runs. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "norm", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload, writing through a temp file and renaming so
// readers never see a torn entry.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The first result is false on a clean miss.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "norm"))
}

func cacheFromRecords(records []identity.Record) *CachePayload {
	p := &CachePayload{
		Schema:    cacheSchemaVersion,
		Rules:     normalize.RulesVersion,
		Names:     make([]string, len(records)),
		Positions: make([]string, len(records)),
		Orgs:      make([]string, len(records)),
	}
	for i, rec := range records {
		p.Names[i] = rec.Name.Text()
		p.Positions[i] = rec.Position.Text()
		p.Orgs[i] = rec.Org.Text()
	}
	return p
}

// recordsFromCache rebuilds records from a payload. It refuses payloads from
// another schema or rule-set version, or with a row-count mismatch.
func recordsFromCache(t *table.Table, p *CachePayload) ([]identity.Record, bool) {
	rows := t.Rows()
	if p.Schema != cacheSchemaVersion || p.Rules != normalize.RulesVersion {
		return nil, false
	}
	if len(p.Names) != len(rows) || len(p.Positions) != len(rows) || len(p.Orgs) != len(rows) {
		return nil, false
	}
	records := make([]identity.Record, len(rows))
	for i, row := range rows {
		records[i] = identity.Record{
			Row:      row,
			Name:     normalize.Of(p.Names[i]),
			Position: normalize.Of(p.Positions[i]),
			Org:      normalize.Of(p.Orgs[i]),
		}
	}
	return records, true
}
