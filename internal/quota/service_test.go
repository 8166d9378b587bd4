package quota

import (
	"context"
	"errors"
	"testing"
)

func TestCheckAllowsUnderLimit(t *testing.T) {
	st := NewMemoryStore()
	st.Seed("u1", Snapshot{AnalysisCount: 2})
	svc := NewPostgresService(st)

	snap, err := svc.Check(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if snap.Remaining() != 1 {
		t.Fatalf("expected 1 remaining, got %d", snap.Remaining())
	}
}

func TestCheckRejectsAtLimit(t *testing.T) {
	st := NewMemoryStore()
	st.Seed("u1", Snapshot{AnalysisCount: 3})
	svc := NewPostgresService(st)

	_, err := svc.Check(context.Background(), "u1")
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestQuotaMonotonicity(t *testing.T) {
	// A metered user at 2 gets exactly one more analysis, then is rejected
	// with the count pinned at 3.
	st := NewMemoryStore()
	st.Seed("u1", Snapshot{AnalysisCount: 2})
	svc := NewPostgresService(st)
	ctx := context.Background()

	if _, err := svc.Check(ctx, "u1"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	snap, err := svc.Commit(ctx, "u1")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.AnalysisCount != 3 {
		t.Fatalf("expected count 3, got %d", snap.AnalysisCount)
	}
	if snap.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", snap.Remaining())
	}

	if _, err := svc.Check(ctx, "u1"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AnalysisCount != 3 {
		t.Fatalf("count moved after rejection: %d", got.AnalysisCount)
	}
}

func TestUnlimitedOverrideNeverIncrements(t *testing.T) {
	st := NewMemoryStore()
	st.Seed("u1", Snapshot{AnalysisCount: 999, UnlimitedAnalysis: true})
	svc := NewPostgresService(st)
	ctx := context.Background()

	if _, err := svc.Check(ctx, "u1"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	snap, err := svc.Commit(ctx, "u1")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.AnalysisCount != 999 {
		t.Fatalf("unlimited account was incremented: %d", snap.AnalysisCount)
	}
	if snap.RemainingValue() != "unlimited" {
		t.Fatalf("expected unlimited sentinel, got %v", snap.RemainingValue())
	}
}

func TestCommitClosesRaceWindow(t *testing.T) {
	// Both requests passed Check at count 2; only one Commit may land.
	st := NewMemoryStore()
	st.Seed("u1", Snapshot{AnalysisCount: 2})
	svc := NewPostgresService(st)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, "u1"); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	if _, err := svc.Commit(ctx, "u1"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached on second commit, got %v", err)
	}
	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AnalysisCount != 3 {
		t.Fatalf("count overshot the limit: %d", got.AnalysisCount)
	}
}

func TestMemoryStoreProvisionsGuests(t *testing.T) {
	svc := NewService()
	snap, err := svc.Get(context.Background(), "guest:fresh")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap.AnalysisCount != 0 || snap.UnlimitedAnalysis {
		t.Fatalf("unexpected default snapshot: %+v", snap)
	}

	snap, err = svc.Commit(context.Background(), "guest:fresh")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.AnalysisCount != 1 {
		t.Fatalf("expected count 1, got %d", snap.AnalysisCount)
	}
}

func TestMemoryStoreProvisionPreservesExisting(t *testing.T) {
	st := NewMemoryStore()
	svc := NewPostgresService(st)
	ctx := context.Background()

	st.Provision("u1")
	snap, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get after Provision: %v", err)
	}
	if snap.AnalysisCount != 0 || snap.UnlimitedAnalysis {
		t.Fatalf("unexpected provisioned snapshot: %+v", snap)
	}

	st.Seed("u1", Snapshot{AnalysisCount: 2})
	st.Provision("u1")
	snap, err = svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get after re-Provision: %v", err)
	}
	if snap.AnalysisCount != 2 {
		t.Fatalf("Provision clobbered existing record: %+v", snap)
	}
}

func TestMemoryStoreUnknownUserNotFound(t *testing.T) {
	// Non-guest identities must exist before they can be metered, the same
	// contract the Postgres store enforces.
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, "fresh"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Get: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Check(ctx, "fresh"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Check: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Commit(ctx, "fresh"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Commit: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Reset(ctx, "fresh"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Reset: expected ErrUserNotFound, got %v", err)
	}
}
