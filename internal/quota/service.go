package quota

import "context"

type store interface {
	Get(ctx context.Context, userID string) (Snapshot, error)
	// Increment adds one to the analysis count iff the account is not
	// unlimited and the count is below limit, as a single atomic step.
	Increment(ctx context.Context, userID string, limit int) (Snapshot, error)
	Reset(ctx context.Context, userID string) (Snapshot, error)
}

// Service is the gate wrapped around every paid AI operation.
type Service struct {
	store store
	limit int
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: NewMemoryStore(), limit: DefaultLimit}
}

// NewPostgresService constructs a Service backed by the given store.
func NewPostgresService(st store) *Service {
	return &Service{store: st, limit: DefaultLimit}
}

// Limit returns the configured per-user limit.
func (s *Service) Limit() int {
	return s.limit
}

// Check reports whether the user may start an AI operation. It never
// mutates state: rejected and failed requests are not charged.
func (s *Service) Check(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := s.store.Get(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Limit = s.limit
	if snap.UnlimitedAnalysis {
		return snap, nil
	}
	if snap.AnalysisCount >= s.limit {
		return snap, ErrLimitReached
	}
	return snap, nil
}

// Commit charges one quota unit after a successful AI operation. Unlimited
// accounts are never incremented. The increment is conditional at the store,
// so two racing requests cannot push the count past the limit; the loser
// gets ErrLimitReached.
func (s *Service) Commit(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := s.store.Increment(ctx, userID, s.limit)
	if err != nil {
		return snap, err
	}
	snap.Limit = s.limit
	return snap, nil
}

// Get returns the current quota snapshot without mutating it.
func (s *Service) Get(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := s.store.Get(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Limit = s.limit
	return snap, nil
}

// Reset zeroes the counter. Dev tooling only.
func (s *Service) Reset(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := s.store.Reset(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Limit = s.limit
	return snap, nil
}
