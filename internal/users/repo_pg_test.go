package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByIDMapsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "email", "full_name", "resume_key", "analysis_count", "unlimited_analysis", "created_at", "updated_at",
	}).AddRow("user-1", "a@b.c", "Ada Lovelace", "key/resume.pdf", 2, false, now, now)

	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	user, err := repo.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.FullName != "Ada Lovelace" || user.AnalysisCount != 2 || user.UnlimitedAnalysis {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSetResumeNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE users SET resume_key").
		WithArgs("key", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	err = repo.SetResume(context.Background(), "missing", "key")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoUpsertPreservesQuotaFields(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "u1", Email: "a@b.c"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	// Simulate quota state accumulated out of band.
	repo.mu.Lock()
	u := repo.users["u1"]
	u.AnalysisCount = 2
	u.UnlimitedAnalysis = true
	repo.users["u1"] = u
	repo.mu.Unlock()

	if err := repo.Upsert(ctx, User{ID: "u1", Email: "new@b.c", FullName: "Ada"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AnalysisCount != 2 || !got.UnlimitedAnalysis {
		t.Fatalf("quota fields lost on upsert: %+v", got)
	}
	if got.Email != "new@b.c" {
		t.Fatalf("profile fields not updated: %+v", got)
	}
}
