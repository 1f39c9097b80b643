package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/polgraph/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewStore(database)
}

func TestStoreRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := t.Context()
	want := Default()

	var calls, lastDone, lastTotal int
	err := s.Save(ctx, "iran", want, func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rows := len(want.Groups) + len(want.Nodes) + len(want.Edges) + len(want.Markets)
	if calls != rows || lastDone != rows || lastTotal != rows {
		t.Errorf("progress: calls=%d done=%d total=%d, want %d", calls, lastDone, lastTotal, rows)
	}

	got, err := s.Load(ctx, "iran")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	s := setupStore(t)
	ctx := t.Context()

	if err := s.Save(ctx, "iran", Default(), nil); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	smaller := Default()
	smaller.Title = "Trimmed"
	smaller.Edges = smaller.Edges[:3]
	if err := s.Save(ctx, "iran", smaller, nil); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(list))
	}
	if list[0].Title != "Trimmed" || list[0].Edges != 3 || list[0].Nodes != 15 || list[0].Markets != 8 {
		t.Errorf("unexpected summary: %+v", list[0])
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	s := setupStore(t)

	bad := Default()
	bad.Nodes[0].Group = "nowhere"
	if err := s.Save(t.Context(), "bad", bad, nil); err == nil {
		t.Fatal("expected validation error")
	}
	if err := s.Save(t.Context(), "", Default(), nil); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.Load(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := setupStore(t)
	ctx := t.Context()

	if err := s.Save(ctx, "iran", Default(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "iran"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "iran"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "iran"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dataset_nodes`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected node rows removed, %d remain", n)
	}
}
