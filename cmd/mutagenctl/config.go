package main

import (
	"encoding/json"
	"fmt"
	"os"

	mutapi "mutagen/pkg/mutagen"
)

func loadRunRequestFromConfig(path string) (mutapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mutapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return mutapi.RunRequest{}, err
	}

	var req mutapi.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asIntSlice(raw["shape"]); ok {
		req.Shape = v
	}
	if v, ok := asInt(raw["steps"]); ok {
		req.Steps = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asFloat64(raw["lower"]); ok {
		req.Lower = &v
	}
	if v, ok := asFloat64(raw["upper"]); ok {
		req.Upper = &v
	}

	rawOps, ok := raw["operators"].([]any)
	if !ok {
		return mutapi.RunRequest{}, fmt.Errorf("config %s: operators list is required", path)
	}
	for i, rawOp := range rawOps {
		fields, ok := rawOp.(map[string]any)
		if !ok {
			return mutapi.RunRequest{}, fmt.Errorf("config %s: operator %d is not an object", path, i)
		}
		var op mutapi.OperatorRequest
		if v, ok := asString(fields["name"]); ok {
			op.Name = v
		}
		if op.Name == "" {
			return mutapi.RunRequest{}, fmt.Errorf("config %s: operator %d has no name", path, i)
		}
		if v, ok := asIntSlice(fields["axes"]); ok {
			op.Axes = v
		}
		if v, ok := asInt(fields["max_size"]); ok {
			op.MaxSize = v
		}
		if v, ok := asInt(fields["size"]); ok {
			op.Size = v
		}
		if v, ok := asBool(fields["spectral"]); ok {
			op.Spectral = v
		}
		if v, ok := asInt(fields["axis"]); ok {
			op.Axis = v
		}
		req.Operators = append(req.Operators, op)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asIntSlice(v any) ([]int, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := asInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
