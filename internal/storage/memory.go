package storage

import (
	"context"
	"sync"

	"mutagen/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	records     map[string][]model.ApplyRecord
	snapshots   map[string][]model.WeightSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.records = make(map[string][]model.ApplyRecord)
	s.snapshots = make(map[string][]model.WeightSnapshot)
	return nil
}

func (s *MemoryStore) AppendApplyRecord(_ context.Context, runID string, rec model.ApplyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[runID] = append(s.records[runID], rec)
	return nil
}

func (s *MemoryStore) GetApplyRecords(_ context.Context, runID string) ([]model.ApplyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.records[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.ApplyRecord(nil), records...), true, nil
}

func (s *MemoryStore) AppendWeightSnapshot(_ context.Context, runID string, snap model.WeightSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[runID] = append(s.snapshots[runID], snap)
	return nil
}

func (s *MemoryStore) GetWeightSnapshots(_ context.Context, runID string) ([]model.WeightSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots, ok := s.snapshots[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.WeightSnapshot(nil), snapshots...), true, nil
}
