// Package keywords maintains the process-wide set of facet/filter terms
// observed across crawled pages. The set only grows: once a keyword is seen
// it widens the crawl scope for every subsequent page in the run, and it is
// persisted after every merge so a restart resumes with full history.
package keywords

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("keywords")

// Store is a union-only keyword set with durable storage.
type Store struct {
	mu  sync.RWMutex
	set map[string]struct{}
	db  *bolt.DB
}

// Open loads (or creates) a store at path and reads any previously persisted
// keywords into memory.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create keyword store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword store: %w", err)
	}

	s := &Store{
		set: make(map[string]struct{}),
		db:  db,
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			s.set[string(k)] = struct{}{}
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}

	return s, nil
}

// Merge unions the given keywords into the set and persists any additions.
// Keywords are normalized to lowercase; empty strings are ignored.
func (s *Store) Merge(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := s.set[w]; !ok {
			s.set[w] = struct{}{}
			added = append(added, w)
		}
	}
	if len(added) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, w := range added {
			if err := b.Put([]byte(w), []byte("1")); err != nil {
				return err
			}
		}
		return nil
	})
}

// Snapshot returns the current keyword set, sorted for deterministic use.
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.set))
	for w := range s.set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of stored keywords.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.set)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
