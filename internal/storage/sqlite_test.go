//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"mutagen/internal/model"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "mutagen.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	records := []model.ApplyRecord{
		{Step: 0, Operator: "crossover", OperatorID: "op-1"},
		{Step: 1, Operator: "tuned_translation", OperatorID: "op-2", Shift: 4},
	}
	for _, rec := range records {
		if err := store.AppendApplyRecord(ctx, "run-1", rec); err != nil {
			t.Fatalf("append record: %v", err)
		}
	}

	loaded, ok, err := store.GetApplyRecords(ctx, "run-1")
	if err != nil {
		t.Fatalf("get records: %v", err)
	}
	if !ok {
		t.Fatal("expected records for run-1")
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Fatalf("records mismatch\nactual=%+v\nexpected=%+v", loaded, records)
	}

	snap := model.WeightSnapshot{OperatorID: "op-2", Step: 1, Weights: []float64{0.25, 0.75}}
	if err := store.AppendWeightSnapshot(ctx, "run-1", snap); err != nil {
		t.Fatalf("append snapshot: %v", err)
	}
	snaps, ok, err := store.GetWeightSnapshots(ctx, "run-1")
	if err != nil {
		t.Fatalf("get snapshots: %v", err)
	}
	if !ok || len(snaps) != 1 || !reflect.DeepEqual(snaps[0], snap) {
		t.Fatalf("snapshot mismatch: %+v", snaps)
	}

	if _, ok, err := store.GetApplyRecords(ctx, "other-run"); err != nil || ok {
		t.Fatalf("expected no records for other run, got ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
