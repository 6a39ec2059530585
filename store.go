package payscope

import (
	"maps"
	"sync"
)

// Store persists the full ledger snapshot.
//
// Load restores every known balance. Save overwrites the persisted copy with
// the given snapshot, it is never incremental.
type Store interface {
	Load() (map[AccountID]Balance, error)
	Save(map[AccountID]Balance) error
}

// MemoryStore is an in-memory Store.
//
// It is handy for tests and for hosts that do not need durability. SaveErr,
// when set, is returned by every Save without touching the stored snapshot.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[AccountID]Balance
	saves    int

	SaveErr error
}

// NewMemoryStore returns a store holding a copy of the initial balances.
func NewMemoryStore(initial map[AccountID]Balance) *MemoryStore {
	s := &MemoryStore{balances: make(map[AccountID]Balance)}
	maps.Copy(s.balances, initial)
	return s
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load() (map[AccountID]Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.balances), nil
}

// Save replaces the stored snapshot with a copy of balances.
func (s *MemoryStore) Save(balances map[AccountID]Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.balances = maps.Clone(balances)
	return nil
}

// Saves returns how many times Save was called, successful or not.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Compile-time check: ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
