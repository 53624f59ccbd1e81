// Package cache keeps the workflows and runs fetched for a repository on
// disk so the palette opens without waiting on the network. Actions are
// derived from the snapshot on every load, never cached themselves.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/altinukshini/gha-palette/internal/model"
)

type SnapshotCache struct {
	dir     string
	maxSize int64         // max total cache size in bytes
	ttl     time.Duration // cache entry TTL
}

// Snapshot is the repository state the GitHub actions are built from.
type Snapshot struct {
	Workflows []model.Workflow `json:"workflows"`
	Runs      []model.Run      `json:"runs"`
}

// Entry is one cached snapshot together with when it was stored.
type Entry struct {
	Key      string    `json:"key"`
	StoredAt time.Time `json:"stored_at"`
	Snapshot Snapshot  `json:"snapshot"`
}

// EntryInfo describes a cache file without loading its snapshot.
type EntryInfo struct {
	Key          string
	Path         string
	Size         int64
	LastModified time.Time
}

func NewSnapshotCache(dir string, maxSizeMB int, ttl time.Duration) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot cache dir: %w", err)
	}
	return &SnapshotCache{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
	}, nil
}

// entryPath maps a key such as "octocat/hello-world" to a flat file name.
func (sc *SnapshotCache) entryPath(key string) string {
	name := strings.NewReplacer("/", "__", string(os.PathSeparator), "__", ":", "_").Replace(key)
	return filepath.Join(sc.dir, name+".json")
}

func keyFromFile(name string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ".json"), "__", "/")
}

// Has reports whether key has an entry younger than the TTL.
func (sc *SnapshotCache) Has(key string) bool {
	info, err := os.Stat(sc.entryPath(key))
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < sc.ttl
}

// Load returns the cached snapshot for key. Expired entries are reported as
// missing.
func (sc *SnapshotCache) Load(key string) (Snapshot, bool, error) {
	if !sc.Has(key) {
		return Snapshot{}, false, nil
	}
	data, err := os.ReadFile(sc.entryPath(key))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return entry.Snapshot, true, nil
}

func (sc *SnapshotCache) Store(key string, snap Snapshot) error {
	entry := Entry{Key: key, StoredAt: time.Now(), Snapshot: snap}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	path := sc.entryPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return os.Rename(tmp, path)
}

// Evict removes expired and oversized cache entries.
func (sc *SnapshotCache) Evict() error {
	entries, err := sc.ListEntries()
	if err != nil {
		return err
	}

	var totalSize int64
	for _, e := range entries {
		totalSize += e.Size
	}

	// Evict expired entries
	now := time.Now()
	remaining := entries[:0]
	for _, e := range entries {
		if now.Sub(e.LastModified) > sc.ttl {
			os.Remove(e.Path)
			totalSize -= e.Size
		} else {
			remaining = append(remaining, e)
		}
	}
	entries = remaining

	// Evict oldest entries if over size cap
	if totalSize > sc.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].LastModified.Before(entries[j].LastModified)
		})
		for _, e := range entries {
			if totalSize <= sc.maxSize {
				break
			}
			os.Remove(e.Path)
			totalSize -= e.Size
		}
	}
	return nil
}

// ListEntries scans the cache directory and returns all entries.
func (sc *SnapshotCache) ListEntries() ([]EntryInfo, error) {
	files, err := os.ReadDir(sc.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var result []EntryInfo
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		result = append(result, EntryInfo{
			Key:          keyFromFile(f.Name()),
			Path:         filepath.Join(sc.dir, f.Name()),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return result, nil
}

func (sc *SnapshotCache) DeleteEntry(key string) error {
	err := os.Remove(sc.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (sc *SnapshotCache) DeleteAll() error {
	entries, err := sc.ListEntries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		os.Remove(e.Path)
	}
	return nil
}

// TotalSize returns total cache size in bytes.
func (sc *SnapshotCache) TotalSize() (int64, error) {
	entries, err := sc.ListEntries()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total, nil
}
