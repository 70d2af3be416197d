package internal

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Store is the set of imported sessions together with the recent index,
// the aggregate record and the comments. It is the single source of truth
// for which sessions exist. A Store is not safe for concurrent use.
type Store struct {
	paths  DataPaths
	loc    *time.Location
	rules  CleanRules
	limit  int
	now    func() time.Time
	stats  *AggregateStats
	recent *RecentIndex
}

// StoreOption customizes OpenStore
type StoreOption func(*Store)

// WithClock sets the clock used for fallback session ids and timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// OpenStore loads the persisted state of the configured data directory,
// creating the directory layout when missing. A corrupt aggregate record is
// rebuilt from the sessions on disk.
func OpenStore(cfg Config, opts ...StoreOption) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Store{
		paths: cfg.Paths(),
		loc:   loc,
		rules: cfg.Cleaning,
		limit: cfg.RecentLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(s.paths.Sessions, 0755); err != nil {
		return nil, &StorageError{Path: s.paths.Sessions, Op: "mkdir", Err: err}
	}

	s.recent, err = LoadRecentIndex(s.paths.RecentPath(), s.limit)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return nil, err
		}
		LogWarn("Recent index unreadable, starting empty: %v", err)
		s.recent = NewRecentIndex(s.limit)
	}

	s.stats, err = LoadStats(s.paths.StatsPath())
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return nil, err
		}
		LogWarn("Aggregate record unreadable, recomputing: %v", err)
		s.stats = &AggregateStats{}
		if _, err := s.RecomputeStats(); err != nil {
			return nil, err
		}
	}

	LogDebug("Opened store at %s (%d recent sessions, %d trips)", s.paths.BasePath, len(s.recent.Sessions), s.stats.TotalTrips)
	return s, nil
}

// Paths returns the on-disk layout of the store
func (s *Store) Paths() DataPaths {
	return s.paths
}

// Location returns the local zone session ids are expressed in
func (s *Store) Location() *time.Location {
	return s.loc
}

// ImportFile reads a delimited recorder export and imports it
func (s *Store) ImportFile(path string) (string, bool, error) {
	raw, err := ReadTableFile(path)
	if err != nil {
		return "", false, err
	}
	return s.Import(raw)
}

// Import stores a raw recorder table as a new session and returns its id.
// When a session with the same id already exists nothing is changed and
// imported is false. The table write, the aggregate update and the index
// update either all persist or none do.
func (s *Store) Import(raw *Table) (id string, imported bool, err error) {
	start, _ := RecordingStart(raw, s.loc, s.now())
	id = SessionID(start)
	if s.paths.SessionExists(id) {
		LogInfo("Session %s already imported", id)
		return id, false, nil
	}

	table := DeriveDistance(CleanWith(raw, s.rules))
	data, err := EncodeTable(table)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode session %s: %w", id, err)
	}

	path := s.paths.SessionPath(id)
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return "", false, err
	}

	metrics := MetricsOf(table)
	prevStats := *s.stats
	s.stats.Add(metrics)
	s.stats.LastUpdated = s.now()
	if err := SaveStats(s.paths.StatsPath(), s.stats); err != nil {
		*s.stats = prevStats
		s.removeFile(path)
		return "", false, err
	}

	prevRecent := s.recent.Entries()
	s.recent.Insert(RecentEntry{
		ID:         id,
		ImportedAt: s.now(),
		Distance:   metrics.Distance,
		Duration:   metrics.Duration,
	})
	if err := s.recent.Save(s.paths.RecentPath()); err != nil {
		s.recent.Sessions = prevRecent
		*s.stats = prevStats
		if rerr := SaveStats(s.paths.StatsPath(), s.stats); rerr != nil {
			LogWarn("Failed to roll back aggregate record: %v", rerr)
		}
		s.removeFile(path)
		return "", false, err
	}

	LogInfo("Imported %s (%d samples)", id, table.Len())
	return id, true, nil
}

// List returns the recent session ids, most recent first
func (s *Store) List() []string {
	return s.recent.IDs()
}

// Entries returns the recent index entries, most recent first
func (s *Store) Entries() []RecentEntry {
	return s.recent.Entries()
}

// AllSessions returns every session id known to the store: the recent index
// first, then tables on disk the index no longer lists.
func (s *Store) AllSessions() ([]string, error) {
	onDisk, err := s.paths.FindSessionFiles()
	if err != nil {
		return nil, err
	}
	ids := s.recent.IDs()
	for _, id := range onDisk {
		if !s.recent.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Load reads a stored session. The error wraps ErrSessionNotFound when the
// id is unknown.
func (s *Store) Load(id string) (*Session, error) {
	if !s.paths.SessionExists(id) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	table, err := ReadTableFile(s.paths.SessionPath(id))
	if err != nil {
		return nil, err
	}
	start, err := ParseSessionID(id, s.loc)
	if err != nil {
		return nil, &ParseError{Source: "session", Key: id, Err: err}
	}
	return &Session{ID: id, Start: start, Table: table}, nil
}

// Delete removes a session and takes its metrics, recomputed from the stored
// table, out of the aggregate. It reports false when the id is not present.
func (s *Store) Delete(id string) (bool, error) {
	if !s.paths.SessionExists(id) {
		if s.recent.Remove(id) {
			LogWarn("Dropping dangling index entry %s", id)
			if err := s.recent.Save(s.paths.RecentPath()); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	var metrics Metrics
	session, err := s.Load(id)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return false, err
		}
		LogWarn("Session %s unreadable, removing without its metrics: %v", id, err)
	} else {
		metrics = session.Metrics()
	}

	prevStats := *s.stats
	s.stats.Remove(metrics)
	s.stats.LastUpdated = s.now()
	if err := SaveStats(s.paths.StatsPath(), s.stats); err != nil {
		*s.stats = prevStats
		return false, err
	}

	path := s.paths.SessionPath(id)
	if err := os.Remove(path); err != nil {
		*s.stats = prevStats
		if rerr := SaveStats(s.paths.StatsPath(), s.stats); rerr != nil {
			LogWarn("Failed to roll back aggregate record: %v", rerr)
		}
		return false, &StorageError{Path: path, Op: "remove", Err: err}
	}

	if s.recent.Remove(id) {
		if err := s.recent.Save(s.paths.RecentPath()); err != nil {
			return true, err
		}
	}
	if err := s.dropComment(id); err != nil {
		LogWarn("Failed to remove comment of %s: %v", id, err)
	}

	LogInfo("Deleted %s", id)
	return true, nil
}

// Stats returns a snapshot of the aggregate record
func (s *Store) Stats() AggregateStats {
	return *s.stats
}

// ComputeStats folds the metrics of every known session without touching
// the persisted record. Sessions that fail to load are skipped and returned.
func (s *Store) ComputeStats() (AggregateStats, []string, error) {
	ids, err := s.AllSessions()
	if err != nil {
		return AggregateStats{}, nil, err
	}

	var total AggregateStats
	var skipped []string
	for _, id := range ids {
		session, err := s.Load(id)
		if err != nil {
			LogWarn("Skipping %s: %v", id, err)
			skipped = append(skipped, id)
			continue
		}
		total.Add(session.Metrics())
	}
	return total, skipped, nil
}

// RecomputeStats rebuilds the aggregate record from scratch and persists it
func (s *Store) RecomputeStats() (AggregateStats, error) {
	total, skipped, err := s.ComputeStats()
	if err != nil {
		return AggregateStats{}, err
	}
	total.LastUpdated = s.now()
	if err := SaveStats(s.paths.StatsPath(), &total); err != nil {
		return AggregateStats{}, err
	}
	*s.stats = total
	LogInfo("Recomputed aggregate over %d trips (%d skipped)", total.TotalTrips, len(skipped))
	return total, nil
}

// Comment returns the comment attached to a session, if any
func (s *Store) Comment(id string) (string, error) {
	comments, err := LoadComments(s.paths.CommentsPath())
	if err != nil {
		return "", err
	}
	return comments[id], nil
}

// SetComment attaches text to a session. Empty text removes the comment.
func (s *Store) SetComment(id, text string) error {
	if !s.paths.SessionExists(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	comments, err := LoadComments(s.paths.CommentsPath())
	if err != nil {
		return err
	}
	if text == "" {
		delete(comments, id)
	} else {
		comments[id] = text
	}
	return SaveComments(s.paths.CommentsPath(), comments)
}

func (s *Store) dropComment(id string) error {
	comments, err := LoadComments(s.paths.CommentsPath())
	if err != nil {
		return err
	}
	if _, ok := comments[id]; !ok {
		return nil
	}
	delete(comments, id)
	return SaveComments(s.paths.CommentsPath(), comments)
}

func (s *Store) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		LogWarn("Failed to remove %s: %v", path, err)
	}
}
