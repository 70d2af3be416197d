package internal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRecentLimit caps the recent-sessions index
const DefaultRecentLimit = 20

// RecentEntry is one session in the recent index. Distance and duration are
// cached so listing does not reload every table.
type RecentEntry struct {
	ID         string    `yaml:"id"`
	ImportedAt time.Time `yaml:"imported_at"`
	Distance   float64   `yaml:"distance_m"`
	Duration   float64   `yaml:"duration_s"`
}

// RecentIndex is the ordered most-recent-first list of sessions
type RecentIndex struct {
	Sessions []RecentEntry `yaml:"sessions"`

	limit int
}

// NewRecentIndex creates an empty index capped at limit entries
func NewRecentIndex(limit int) *RecentIndex {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &RecentIndex{Sessions: make([]RecentEntry, 0), limit: limit}
}

// LoadRecentIndex reads the index file. A missing file yields an empty index.
func LoadRecentIndex(path string, limit int) (*RecentIndex, error) {
	index := NewRecentIndex(limit)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	if err := yaml.Unmarshal(data, index); err != nil {
		return nil, &ParseError{Source: "recent", Key: path, Err: err}
	}
	index.dedupe()
	index.truncate()
	return index, nil
}

// Save writes the index atomically
func (ri *RecentIndex) Save(path string) error {
	data, err := yaml.Marshal(ri)
	if err != nil {
		return fmt.Errorf("failed to marshal recent index: %w", err)
	}
	return WriteFileAtomic(path, data, 0644)
}

// Insert puts e at the front. Inserting an id already present is a no-op.
func (ri *RecentIndex) Insert(e RecentEntry) bool {
	if ri.Contains(e.ID) {
		return false
	}
	ri.Sessions = append([]RecentEntry{e}, ri.Sessions...)
	ri.truncate()
	return true
}

// Remove drops the entry for id and reports whether it was present
func (ri *RecentIndex) Remove(id string) bool {
	for i, e := range ri.Sessions {
		if e.ID == id {
			ri.Sessions = append(ri.Sessions[:i], ri.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is indexed
func (ri *RecentIndex) Contains(id string) bool {
	_, ok := ri.Get(id)
	return ok
}

// Get returns the entry for id
func (ri *RecentIndex) Get(id string) (RecentEntry, bool) {
	for _, e := range ri.Sessions {
		if e.ID == id {
			return e, true
		}
	}
	return RecentEntry{}, false
}

// IDs returns the indexed ids, most recent first
func (ri *RecentIndex) IDs() []string {
	ids := make([]string, len(ri.Sessions))
	for i, e := range ri.Sessions {
		ids[i] = e.ID
	}
	return ids
}

// Entries returns a copy of the entries, most recent first
func (ri *RecentIndex) Entries() []RecentEntry {
	out := make([]RecentEntry, len(ri.Sessions))
	copy(out, ri.Sessions)
	return out
}

func (ri *RecentIndex) truncate() {
	if len(ri.Sessions) > ri.limit {
		ri.Sessions = ri.Sessions[:ri.limit]
	}
}

func (ri *RecentIndex) dedupe() {
	seen := make(map[string]bool, len(ri.Sessions))
	kept := ri.Sessions[:0]
	for _, e := range ri.Sessions {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		kept = append(kept, e)
	}
	ri.Sessions = kept
}
