package storage

import (
	"encoding/json"

	"mutagen/internal/model"
)

func EncodeApplyRecord(rec model.ApplyRecord) ([]byte, error) {
	return json.Marshal(rec)
}

func DecodeApplyRecord(data []byte) (model.ApplyRecord, error) {
	var rec model.ApplyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.ApplyRecord{}, err
	}
	return rec, nil
}

func EncodeWeightSnapshot(snap model.WeightSnapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func DecodeWeightSnapshot(data []byte) (model.WeightSnapshot, error) {
	var snap model.WeightSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.WeightSnapshot{}, err
	}
	return snap, nil
}
