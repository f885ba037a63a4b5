package dotcraft

import (
	"fmt"
	"sort"
	"sync"
)

// RecordKey identifies a board configuration.
type RecordKey struct {
	Size    int
	Targets int
}

// String formats the key as "size-targets", the suffix used by persisted keys.
func (k RecordKey) String() string {
	return fmt.Sprintf("%d-%d", k.Size, k.Targets)
}

// RecordEntry is the best result for one configuration.
type RecordEntry struct {
	Solved      bool
	BestSeconds float64
	HasBest     bool
}

// Record pairs an entry with its key.
type Record struct {
	Key   RecordKey
	Entry RecordEntry
}

// RecordPersister is the durable side of a RecordStore.
type RecordPersister interface {
	LoadRecords() (map[RecordKey]RecordEntry, error)
	SaveRecord(key RecordKey, entry RecordEntry) error
}

// RecordStore tracks solved flags and best times per configuration.
// The in-memory entry is updated before the persister is called, so reads
// always observe the latest completion. Safe for concurrent use.
type RecordStore struct {
	mu        sync.RWMutex
	entries   map[RecordKey]RecordEntry
	persister RecordPersister

	// saveMu orders persister writes; each write re-reads the entry under
	// it, so the last write carries the newest entry.
	saveMu sync.Mutex
}

// NewRecordStore creates an in-memory store.
func NewRecordStore() *RecordStore {
	return &RecordStore{entries: make(map[RecordKey]RecordEntry)}
}

// OpenRecordStore creates a store backed by p and loads its existing records.
// On a load error the returned store is still usable: it starts empty and
// keeps saving through p.
func OpenRecordStore(p RecordPersister) (*RecordStore, error) {
	s := NewRecordStore()
	s.persister = p
	if p == nil {
		return s, nil
	}

	loaded, err := p.LoadRecords()
	if err != nil {
		return s, fmt.Errorf("dotcraft: cannot load records: %w", err)
	}
	for k, e := range loaded {
		s.entries[k] = e
	}
	return s, nil
}

// RecordCompletion registers a solve of (size, targets) that took elapsed
// seconds. It reports whether the best time improved. The returned error
// comes only from persistence; the in-memory entry is updated regardless.
func (s *RecordStore) RecordCompletion(size, targets int, elapsed float64) (RecordEntry, bool, error) {
	key := RecordKey{Size: size, Targets: targets}

	s.mu.Lock()
	entry := s.entries[key]
	entry.Solved = true
	improved := !entry.HasBest || elapsed < entry.BestSeconds
	if improved {
		entry.BestSeconds = elapsed
		entry.HasBest = true
	}
	s.entries[key] = entry
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persist(key); err != nil {
			return entry, improved, fmt.Errorf("dotcraft: cannot persist record %s: %w", key, err)
		}
	}
	return entry, improved, nil
}

// persist writes the current entry for key. A caller holding an older
// snapshot must not overwrite a newer one that was saved first.
func (s *RecordStore) persist(key RecordKey) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	latest := s.entries[key]
	s.mu.RUnlock()
	return s.persister.SaveRecord(key, latest)
}

// Query returns the entry for (size, targets); the zero entry if never solved.
func (s *RecordStore) Query(size, targets int) RecordEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[RecordKey{Size: size, Targets: targets}]
}

// All returns every recorded configuration sorted by size, then targets.
func (s *RecordStore) All() []Record {
	s.mu.RLock()
	out := make([]Record, 0, len(s.entries))
	for k, e := range s.entries {
		out = append(out, Record{Key: k, Entry: e})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Size != out[j].Key.Size {
			return out[i].Key.Size < out[j].Key.Size
		}
		return out[i].Key.Targets < out[j].Key.Targets
	})
	return out
}
