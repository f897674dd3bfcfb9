package deploy

import (
	"sort"
	"sync"
	"time"
)

// Status is the canonical deployment status. Remote synonym handling happens
// at the backend boundary; nothing downstream compares raw strings.
type Status string

// Canonical statuses. StatusUnknown is local only: it marks an attempt where
// the poller could not reach or parse the remote, never a remote value.
const (
	StatusDeploying Status = "deploying"
	StatusReady     Status = "ready"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// Record tracks one deployment for the lifetime of the process.
type Record struct {
	ID        string
	Name      string
	Endpoint  string
	Status    Status
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store holds deployment records by name. It is owned by the Service and
// guarded for concurrent use; it also enforces at most one active poll loop
// per name.
type Store struct {
	mu      sync.Mutex
	records map[string]*Record
	polling map[string]bool
}

// NewStore returns an empty record store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
		polling: make(map[string]bool),
	}
}

func (s *Store) insert(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.Name]; exists {
		return ErrDuplicateModel
	}
	s.records[rec.Name] = rec
	return nil
}

// Get returns a copy of the record for name.
func (s *Store) Get(name string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[name]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// List returns copies of all records ordered by name.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Remove drops the record for name.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	delete(s.polling, name)
}

func (s *Store) update(name string, status Status, endpoint, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[name]
	if !ok {
		return
	}
	rec.Status = status
	if endpoint != "" {
		rec.Endpoint = endpoint
	}
	rec.Error = errMsg
	rec.UpdatedAt = time.Now().UTC()
}

// beginPoll marks name as owned by a poll loop. A second loop on the same
// name fails fast instead of racing the first one's record updates.
func (s *Store) beginPoll(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		return ErrNotDeployed
	}
	if s.polling[name] {
		return ErrPollInProgress
	}
	s.polling[name] = true
	return nil
}

func (s *Store) isPolling(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polling[name]
}

// adopt inserts the record, or refreshes the existing one for the same name.
func (s *Store) adopt(rec *Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.records[rec.Name]
	if !ok {
		s.records[rec.Name] = rec
		return *rec
	}
	existing.Status = rec.Status
	if rec.Endpoint != "" {
		existing.Endpoint = rec.Endpoint
	}
	existing.Error = rec.Error
	existing.UpdatedAt = rec.UpdatedAt
	return *existing
}

func (s *Store) endPoll(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.polling, name)
}
