package storage

import (
	"context"

	"mutagen/internal/model"
)

// Store persists per-run operator adaptation history: the sequence of applied
// operators and the evolving weight vectors of tuned operators.
type Store interface {
	Init(ctx context.Context) error
	AppendApplyRecord(ctx context.Context, runID string, rec model.ApplyRecord) error
	GetApplyRecords(ctx context.Context, runID string) ([]model.ApplyRecord, bool, error)
	AppendWeightSnapshot(ctx context.Context, runID string, snap model.WeightSnapshot) error
	GetWeightSnapshots(ctx context.Context, runID string) ([]model.WeightSnapshot, bool, error)
}
