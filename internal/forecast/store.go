package forecast

import (
	"sync"
	"time"

	"energyforecast/internal/dataset"
	"energyforecast/internal/regression"
)

// Snapshot is an immutable pairing of a dataset and the model fitted on it
type Snapshot struct {
	Dataset    *dataset.Dataset
	Model      *regression.Model
	Filename   string
	Dropped    int
	IngestedAt time.Time
}

// Store holds the most recent successful ingest. The zero value is empty and
// ready to use.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	version uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Commit replaces the dataset and model together
func (s *Store) Commit(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.version++
}

// Snapshot returns the current state, or nil when nothing has been ingested
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Ready reports whether a dataset and model are available
func (s *Store) Ready() bool {
	snap := s.Snapshot()
	return snap != nil && snap.Dataset != nil && snap.Model != nil
}

// Version counts successful commits
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
