package quota

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps quota records in memory. Guest identities are initialized
// with a zeroed record on first touch; any other unknown ID gets
// ErrUserNotFound, the same contract as the Postgres store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]Snapshot
}

func isGuestID(userID string) bool {
	return strings.HasPrefix(userID, "guest:")
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Snapshot)}
}

// Seed installs a quota record, overwriting any existing one. Test helper
// and dev tooling.
func (s *MemoryStore) Seed(userID string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = snap
}

// Provision ensures a zeroed record exists without touching an existing one.
// Mirrors the side effect of a users-table insert in Postgres, where the
// quota columns start at their defaults.
func (s *MemoryStore) Provision(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[userID]; !ok {
		s.data[userID] = Snapshot{}
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data[userID]
	if !ok {
		if !isGuestID(userID) {
			return Snapshot{}, ErrUserNotFound
		}
		snap = Snapshot{}
		s.data[userID] = snap
	}
	return snap, nil
}

func (s *MemoryStore) Increment(ctx context.Context, userID string, limit int) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data[userID]
	if !ok {
		if !isGuestID(userID) {
			return Snapshot{}, ErrUserNotFound
		}
		snap = Snapshot{}
	}
	if snap.UnlimitedAnalysis {
		s.data[userID] = snap
		return snap, nil
	}
	if snap.AnalysisCount >= limit {
		return snap, ErrLimitReached
	}
	snap.AnalysisCount++
	s.data[userID] = snap
	return snap, nil
}

func (s *MemoryStore) Reset(ctx context.Context, userID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data[userID]
	if !ok && !isGuestID(userID) {
		return Snapshot{}, ErrUserNotFound
	}
	snap.AnalysisCount = 0
	s.data[userID] = snap
	return snap, nil
}
