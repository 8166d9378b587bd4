package quota

import (
	"context"
	"database/sql"
	"errors"
)

// pgStore reads and increments the quota columns on the users table.
type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed quota store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Snapshot, error) {
	const query = `
SELECT analysis_count, unlimited_analysis FROM users WHERE id = $1`
	var snap Snapshot
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&snap.AnalysisCount, &snap.UnlimitedAnalysis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrUserNotFound
		}
		return Snapshot{}, err
	}
	return snap, nil
}

// Increment is a single conditional UPDATE: the count only moves when the
// account is metered and still under the limit, so concurrent commits for
// the same user cannot overshoot.
func (s *pgStore) Increment(ctx context.Context, userID string, limit int) (Snapshot, error) {
	const query = `
UPDATE users
SET analysis_count = analysis_count + 1, updated_at = now()
WHERE id = $1 AND NOT unlimited_analysis AND analysis_count < $2
RETURNING analysis_count, unlimited_analysis`
	var snap Snapshot
	err := s.DB.QueryRowContext(ctx, query, userID, limit).Scan(&snap.AnalysisCount, &snap.UnlimitedAnalysis)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, err
	}

	// No row moved: missing user, unlimited account, or a lost race.
	snap, gerr := s.Get(ctx, userID)
	if gerr != nil {
		return Snapshot{}, gerr
	}
	if snap.UnlimitedAnalysis {
		return snap, nil
	}
	return snap, ErrLimitReached
}

func (s *pgStore) Reset(ctx context.Context, userID string) (Snapshot, error) {
	const query = `
UPDATE users
SET analysis_count = 0, updated_at = now()
WHERE id = $1
RETURNING analysis_count, unlimited_analysis`
	var snap Snapshot
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&snap.AnalysisCount, &snap.UnlimitedAnalysis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrUserNotFound
		}
		return Snapshot{}, err
	}
	return snap, nil
}
