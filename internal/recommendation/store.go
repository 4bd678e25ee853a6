package recommendation

import "sync"

// Store is the single owner of the recommendation collection. All mutation
// goes through its methods; readers receive copies.
type Store struct {
	mu      sync.RWMutex
	recs    []Recommendation
	loading int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the whole collection, keeping the given order.
func (s *Store) Replace(recs []Recommendation) {
	cp := make([]Recommendation, len(recs))
	copy(cp, recs)

	s.mu.Lock()
	s.recs = cp
	s.mu.Unlock()
}

// ReplaceIfEmpty installs recs only when the store holds no records, so a
// slow initial load never overwrites a list that arrived first. It reports
// whether recs were installed.
func (s *Store) ReplaceIfEmpty(recs []Recommendation) bool {
	cp := make([]Recommendation, len(recs))
	copy(cp, recs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.recs) > 0 {
		return false
	}
	s.recs = cp
	return true
}

// All returns a copy of the collection in store order.
func (s *Store) All() []Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Recommendation, len(s.recs))
	copy(out, s.recs)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Recommendation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recs {
		if r.ID == id {
			return r, true
		}
	}
	return Recommendation{}, false
}

// UpdateStatus sets the status of the record with the given id and leaves
// every other record and field untouched. An unknown id is a no-op and
// reports false. Transitions are not restricted.
func (s *Store) UpdateStatus(id string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recs {
		if s.recs[i].ID == id {
			s.recs[i].Status = status
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs)
}

// SetLoading(true) starts a bulk load and SetLoading(false) ends one.
// Calls must be paired; overlapping loads keep the flag set until the
// last one ends.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loading {
		s.loading++
	} else if s.loading > 0 {
		s.loading--
	}
}

// Loading reports whether any bulk load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}
