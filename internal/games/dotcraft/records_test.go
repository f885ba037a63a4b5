package dotcraft

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

type memPersister struct {
	saved   map[RecordKey]RecordEntry
	loadErr error
	saveErr error
}

func newMemPersister() *memPersister {
	return &memPersister{saved: make(map[RecordKey]RecordEntry)}
}

func (p *memPersister) LoadRecords() (map[RecordKey]RecordEntry, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	out := make(map[RecordKey]RecordEntry, len(p.saved))
	for k, e := range p.saved {
		out[k] = e
	}
	return out, nil
}

func (p *memPersister) SaveRecord(key RecordKey, entry RecordEntry) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved[key] = entry
	return nil
}

func TestRecordStoreQueryUnknown(t *testing.T) {
	s := NewRecordStore()
	e := s.Query(3, 3)
	if e.Solved || e.HasBest {
		t.Errorf("Query on empty store = %+v, want zero entry", e)
	}
}

func TestRecordStoreMonotonic(t *testing.T) {
	s := NewRecordStore()
	times := []float64{12.5, 15.0, 9.75, 9.75, 30, 10}

	best := times[0]
	for n, elapsed := range times {
		entry, improved, err := s.RecordCompletion(4, 6, elapsed)
		if err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
		wantImproved := n == 0 || elapsed < best
		if elapsed < best {
			best = elapsed
		}
		if improved != wantImproved {
			t.Errorf("call %d (%v): improved = %v, want %v", n, elapsed, improved, wantImproved)
		}
		if !entry.Solved || !entry.HasBest || entry.BestSeconds != best {
			t.Errorf("call %d: entry = %+v, want solved with best %v", n, entry, best)
		}
	}

	if got := s.Query(4, 6); got.BestSeconds != 9.75 {
		t.Errorf("best = %v, want min 9.75", got.BestSeconds)
	}
	if s.Query(4, 5).Solved {
		t.Error("other configurations must stay unsolved")
	}
}

func TestRecordStorePersistence(t *testing.T) {
	p := newMemPersister()
	p.saved[RecordKey{Size: 3, Targets: 4}] = RecordEntry{Solved: true, BestSeconds: 20, HasBest: true}

	s, err := OpenRecordStore(p)
	if err != nil {
		t.Fatalf("OpenRecordStore() failed: %v", err)
	}
	if got := s.Query(3, 4); got.BestSeconds != 20 {
		t.Errorf("loaded best = %v, want 20", got.BestSeconds)
	}

	if _, _, err := s.RecordCompletion(3, 4, 18.5); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if p.saved[RecordKey{Size: 3, Targets: 4}].BestSeconds != 18.5 {
		t.Errorf("persisted best = %v, want 18.5", p.saved[RecordKey{Size: 3, Targets: 4}].BestSeconds)
	}
}

func TestRecordStoreReadYourWritesOnSaveFailure(t *testing.T) {
	p := newMemPersister()
	p.saveErr = errors.New("disk full")

	s, err := OpenRecordStore(p)
	if err != nil {
		t.Fatalf("OpenRecordStore() failed: %v", err)
	}

	_, _, err = s.RecordCompletion(3, 3, 7)
	if !errors.Is(err, p.saveErr) {
		t.Errorf("RecordCompletion() error = %v, want wrapped save error", err)
	}
	if got := s.Query(3, 3); !got.Solved || got.BestSeconds != 7 {
		t.Errorf("in-memory entry = %+v, want solved in 7s despite save failure", got)
	}
}

func TestOpenRecordStoreLoadError(t *testing.T) {
	p := newMemPersister()
	p.loadErr = errors.New("corrupt")

	s, err := OpenRecordStore(p)
	if !errors.Is(err, p.loadErr) {
		t.Errorf("OpenRecordStore() error = %v, want wrapped load error", err)
	}
	if s == nil {
		t.Fatal("OpenRecordStore() returned no store on a load error")
	}

	// The empty store still saves through the persister.
	if _, _, err := s.RecordCompletion(3, 4, 21); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if e := p.saved[RecordKey{Size: 3, Targets: 4}]; e.BestSeconds != 21 {
		t.Errorf("persisted entry = %+v, want best 21", e)
	}
}

// gatedPersister blocks the first save until release is closed.
type gatedPersister struct {
	*memPersister
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (p *gatedPersister) SaveRecord(key RecordKey, entry RecordEntry) error {
	p.once.Do(func() {
		close(p.entered)
		<-p.release
	})
	return p.memPersister.SaveRecord(key, entry)
}

func TestRecordStoreSlowSaveKeepsBest(t *testing.T) {
	p := &gatedPersister{
		memPersister: newMemPersister(),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	s, err := OpenRecordStore(p)
	if err != nil {
		t.Fatalf("OpenRecordStore() failed: %v", err)
	}

	slow := make(chan struct{})
	go func() {
		defer close(slow)
		s.RecordCompletion(3, 3, 10)
	}()
	<-p.entered

	// A faster solve lands while the first save is still in flight.
	fast := make(chan struct{})
	go func() {
		defer close(fast)
		s.RecordCompletion(3, 3, 5)
	}()
	for s.Query(3, 3).BestSeconds != 5 {
		runtime.Gosched()
	}
	close(p.release)
	<-slow
	<-fast

	reopened, err := OpenRecordStore(p.memPersister)
	if err != nil {
		t.Fatalf("OpenRecordStore() failed: %v", err)
	}
	if got := reopened.Query(3, 3).BestSeconds; got != 5 {
		t.Errorf("durable best after reopen = %v, want 5", got)
	}
}

func TestRecordStoreAllSorted(t *testing.T) {
	s := NewRecordStore()
	s.RecordCompletion(4, 8, 50)
	s.RecordCompletion(3, 5, 30)
	s.RecordCompletion(4, 5, 40)
	s.RecordCompletion(3, 3, 10)

	all := s.All()
	want := []RecordKey{{3, 3}, {3, 5}, {4, 5}, {4, 8}}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d records, want %d", len(all), len(want))
	}
	for i, r := range all {
		if r.Key != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, r.Key, want[i])
		}
	}
}

func TestRecordStoreConcurrentSessions(t *testing.T) {
	p := newMemPersister()
	s, err := OpenRecordStore(p)
	if err != nil {
		t.Fatalf("OpenRecordStore() failed: %v", err)
	}

	var wg sync.WaitGroup
	for n := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for k := range 100 {
				s.RecordCompletion(4, 6, float64(1000-n*100-k))
				s.Query(4, 6)
			}
		}(n)
	}
	wg.Wait()

	if got := s.Query(4, 6).BestSeconds; got != 201 {
		t.Errorf("best = %v, want 201", got)
	}
	if got := p.saved[RecordKey{Size: 4, Targets: 6}].BestSeconds; got != 201 {
		t.Errorf("persisted best = %v, want 201", got)
	}
}

func TestRecordKeyString(t *testing.T) {
	if got := (RecordKey{Size: 4, Targets: 7}).String(); got != "4-7" {
		t.Errorf("String() = %q, want 4-7", got)
	}
}
