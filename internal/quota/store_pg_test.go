package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreIncrementConditionalUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("UPDATE users").
		WithArgs("u1", 3).
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}).AddRow(3, false))

	st := NewPGStore(db)
	snap, err := st.Increment(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if snap.AnalysisCount != 3 {
		t.Fatalf("expected count 3, got %d", snap.AnalysisCount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreIncrementLimitReached(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Conditional update matches no row; the follow-up read shows a metered
	// account at the limit.
	mock.ExpectQuery("UPDATE users").
		WithArgs("u1", 3).
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}))
	mock.ExpectQuery("SELECT analysis_count").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}).AddRow(3, false))

	st := NewPGStore(db)
	_, err = st.Increment(context.Background(), "u1", 3)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestPGStoreIncrementUnlimitedPassThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("UPDATE users").
		WithArgs("u1", 3).
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}))
	mock.ExpectQuery("SELECT analysis_count").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}).AddRow(999, true))

	st := NewPGStore(db)
	snap, err := st.Increment(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if !snap.UnlimitedAnalysis || snap.AnalysisCount != 999 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestPGStoreGetUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT analysis_count").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"analysis_count", "unlimited_analysis"}))

	st := NewPGStore(db)
	_, err = st.Get(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
