package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testArchive(t *testing.T) *SqliteArchive {
	t.Helper()

	a := Open(filepath.Join(t.TempDir(), "capture.sqlite"))
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Failed to close archive: %v", err)
		}
	})
	return a
}

func TestSqliteArchive_RoundTrip(t *testing.T) {
	ctx := context.Background()
	a := testArchive(t)

	stored := &Series{
		Times:  []float64{1000, 1001, 1002, 1003},
		Values: []float64{0.1, -0.2, 0.3, -0.4},
	}
	if err := a.StoreSeries(ctx, "mpi66m067d", 176053, stored); err != nil {
		t.Fatalf("StoreSeries failed: %v", err)
	}

	got, err := a.Query(ctx, "mpi66m067d", 176053)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if got.Len() != stored.Len() {
		t.Fatalf("Expected %d samples, got %d", stored.Len(), got.Len())
	}
	for i := range stored.Times {
		if got.Times[i] != stored.Times[i] || got.Values[i] != stored.Values[i] {
			t.Errorf("Sample %d: expected (%v, %v), got (%v, %v)",
				i, stored.Times[i], stored.Values[i], got.Times[i], got.Values[i])
		}
	}
}

func TestSqliteArchive_TimeBounds(t *testing.T) {
	ctx := context.Background()
	a := testArchive(t)

	stored := &Series{
		Times:  []float64{1000, 1001, 1002, 1003, 1004},
		Values: []float64{0, 1, 2, 3, 4},
	}
	if err := a.StoreSeries(ctx, "mpi66m067d", 1, stored); err != nil {
		t.Fatalf("StoreSeries failed: %v", err)
	}

	got, err := a.Query(ctx, "mpi66m067d", 1, WithTimeBounds(1001, 1003))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("Expected 3 samples in window, got %d", got.Len())
	}
	if got.Times[0] != 1001 || got.Times[2] != 1003 {
		t.Errorf("Unexpected window edges: %v", got.Times)
	}

	got, err = a.Query(ctx, "mpi66m067d", 1, WithMinTime(1003))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("Expected 2 samples from lower bound, got %d", got.Len())
	}

	got, err = a.Query(ctx, "mpi66m067d", 1, WithMaxTime(1000))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Expected 1 sample up to upper bound, got %d", got.Len())
	}
}

func TestSqliteArchive_NoData(t *testing.T) {
	ctx := context.Background()
	a := testArchive(t)

	if err := a.StoreSeries(ctx, "mpi66m067d", 1, &Series{Times: []float64{1000}, Values: []float64{0}}); err != nil {
		t.Fatalf("StoreSeries failed: %v", err)
	}

	if _, err := a.Query(ctx, "mpi66m097d", 1); !errors.Is(err, ErrNoData) {
		t.Errorf("Unknown point: expected ErrNoData, got %v", err)
	}
	if _, err := a.Query(ctx, "mpi66m067d", 2); !errors.Is(err, ErrNoData) {
		t.Errorf("Unknown shot: expected ErrNoData, got %v", err)
	}
	if _, err := a.Query(ctx, "mpi66m067d", 1, WithMinTime(9000)); !errors.Is(err, ErrNoData) {
		t.Errorf("Empty window: expected ErrNoData, got %v", err)
	}
}

func TestSqliteArchive_LengthMismatch(t *testing.T) {
	a := testArchive(t)

	err := a.StoreSeries(context.Background(), "mpi66m067d", 1,
		&Series{Times: []float64{1000, 1001}, Values: []float64{0}})
	if err == nil {
		t.Error("Expected error for mismatched series lengths")
	}
}

func TestSqliteArchive_Shots(t *testing.T) {
	ctx := context.Background()
	a := testArchive(t)

	if err := a.CreateShot(ctx, 176053, "toroidal array capture"); err != nil {
		t.Fatalf("CreateShot failed: %v", err)
	}
	if err := a.CreateShot(ctx, 176050, ""); err != nil {
		t.Fatalf("CreateShot failed: %v", err)
	}

	// Re-registering is a no-op
	if err := a.CreateShot(ctx, 176053, "duplicate"); err != nil {
		t.Fatalf("CreateShot failed on duplicate: %v", err)
	}

	shots, err := a.Shots(ctx)
	if err != nil {
		t.Fatalf("Shots failed: %v", err)
	}

	if len(shots) != 2 {
		t.Fatalf("Expected 2 shots, got %d", len(shots))
	}
	if shots[0].Shot != 176050 || shots[1].Shot != 176053 {
		t.Errorf("Expected shots ordered by number, got %d, %d", shots[0].Shot, shots[1].Shot)
	}
	if shots[0].Description != nil {
		t.Errorf("Expected nil description, got %q", *shots[0].Description)
	}
	if shots[1].Description == nil || *shots[1].Description != "toroidal array capture" {
		t.Errorf("Unexpected description for shot %d", shots[1].Shot)
	}
}
