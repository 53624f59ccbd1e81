// Package history keeps the actions the user ran from the palette, ranked
// by how often and how recently they were used. Entries live in a single
// bbolt bucket keyed by action name with JSON values.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const DefaultSize = 100

// RepeatLast is the action that re-runs the most recent history entry. It
// is never recorded itself but stays searchable.
const RepeatLast = "repeat-last"

var bucketHistory = []byte("history")

type Entry struct {
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}

type Store struct {
	db   *bolt.DB
	size int
}

// Open opens (or creates) the history database at path. size caps the
// number of entries kept; zero or less means DefaultSize.
func Open(path string, size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init history: %w", err)
	}
	return &Store{db: db, size: size}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Size() int {
	return s.size
}

// Excluded reports actions that are meaningless to log: menus, popups,
// context switches, the search action itself and repeat-last.
func Excluded(name string) bool {
	switch {
	case strings.HasSuffix(name, "-menu"),
		strings.HasSuffix(name, "-popup"),
		strings.HasPrefix(name, "context-"),
		name == "palette-search",
		name == RepeatLast:
		return true
	}
	return false
}

// Hidden reports excluded actions that must not show up in search results
// either. repeat-last is excluded from history but still worth finding.
func Hidden(name string) bool {
	return Excluded(name) && name != RepeatLast
}

// Record bumps the use count of name. Excluded actions are ignored.
func (s *Store) Record(name string, now time.Time) error {
	if name == "" || Excluded(name) {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)

		entry := Entry{Name: name}
		if v := b.Get([]byte(name)); v != nil {
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decode history entry %q: %w", name, err)
			}
		}
		entry.Count++
		entry.LastUsed = now

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(name), data); err != nil {
			return err
		}
		return s.prune(b, name)
	})
}

// prune drops the lowest ranked entries beyond the size cap. The entry named
// keep was just recorded and always survives.
func (s *Store) prune(b *bolt.Bucket, keep string) error {
	entries, err := readAll(b)
	if err != nil {
		return err
	}
	if len(entries) <= s.size {
		return nil
	}
	room := s.size - 1
	for _, e := range entries {
		if e.Name == keep {
			continue
		}
		if room > 0 {
			room--
			continue
		}
		if err := b.Delete([]byte(e.Name)); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns the history ranked by count, then recency, then name.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		entries, err = readAll(tx.Bucket(bucketHistory))
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(entries) > s.size {
		entries = entries[:s.size]
	}
	return entries, nil
}

func (s *Store) Names() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// ErrEmpty is returned by Last when nothing has been recorded yet.
var ErrEmpty = errors.New("history is empty")

// Last returns the most recently used entry.
func (s *Store) Last() (Entry, error) {
	entries, err := s.Entries()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrEmpty
	}
	last := entries[0]
	for _, e := range entries[1:] {
		if e.LastUsed.After(last.LastUsed) {
			last = e
		}
	}
	return last, nil
}

func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		var keys [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func readAll(b *bolt.Bucket) ([]Entry, error) {
	var entries []Entry
	err := b.ForEach(func(k, v []byte) error {
		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("decode history entry %q: %w", k, err)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return a.Name < b.Name
	})
	return entries, nil
}
