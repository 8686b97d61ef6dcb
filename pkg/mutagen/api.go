// Package mutagen exposes a session runner around the structured mutation
// operators: it builds array parameters, applies a configured operator
// sequence, and persists the resulting adaptation history.
package mutagen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"mutagen/internal/model"
	"mutagen/internal/mutation"
	"mutagen/internal/param"
	"mutagen/internal/storage"
	"mutagen/internal/tensor"
)

const defaultDBPath = "mutagen.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

func New(ctx context.Context, opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Store() storage.Store { return c.store }

// OperatorRequest selects and configures one operator by registry name.
type OperatorRequest struct {
	Name     string `json:"name"`
	Axes     []int  `json:"axes,omitempty"`
	MaxSize  int    `json:"max_size,omitempty"`
	Size     int    `json:"size,omitempty"`
	Spectral bool   `json:"spectral,omitempty"`
	Axis     int    `json:"axis,omitempty"`
}

// RunRequest describes one mutation session: two array parameters of the
// given shape are created, and every configured operator is applied once per
// step. Lower/Upper, when both set, declare uniform value bounds.
type RunRequest struct {
	RunID     string
	Shape     []int
	Steps     int
	Seed      int64
	Lower     *float64
	Upper     *float64
	Operators []OperatorRequest
}

type RunSummary struct {
	RunID      string
	Steps      int
	Applies    int
	Operators  []string
	FinalValue []float64
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if tensor.SizeOf(req.Shape) <= 0 {
		return RunSummary{}, fmt.Errorf("invalid shape: %v", req.Shape)
	}
	if req.Steps <= 0 {
		return RunSummary{}, fmt.Errorf("steps must be positive, got %d", req.Steps)
	}
	if len(req.Operators) == 0 {
		return RunSummary{}, errors.New("at least one operator is required")
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	target, err := newSessionArray(req, rng)
	if err != nil {
		return RunSummary{}, err
	}
	donor, err := newSessionArray(req, rng)
	if err != nil {
		return RunSummary{}, err
	}

	type sessionOperator struct {
		id string
		op mutation.Operator
	}
	operators := make([]sessionOperator, 0, len(req.Operators))
	names := make([]string, 0, len(req.Operators))
	for _, opReq := range req.Operators {
		cfg := mutation.OperatorConfig{
			Name:     opReq.Name,
			Axes:     opReq.Axes,
			MaxSize:  opReq.MaxSize,
			Size:     opReq.Size,
			Spectral: opReq.Spectral,
			Axis:     opReq.Axis,
		}
		op, err := mutation.BuildOperator(cfg, req.Shape, rng)
		if err != nil {
			return RunSummary{}, fmt.Errorf("build operator %q: %w", opReq.Name, err)
		}
		operators = append(operators, sessionOperator{id: uuid.NewString(), op: op})
		names = append(names, op.Name())
	}

	applies := 0
	for step := 0; step < req.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}
		for _, so := range operators {
			arrays := []*param.Array{target}
			if so.op.Arity() == 2 {
				arrays = append(arrays, donor)
			}
			if err := so.op.Apply(arrays); err != nil {
				return RunSummary{}, fmt.Errorf("apply %s at step %d: %w", so.op.Name(), step, err)
			}
			applies++

			rec := model.ApplyRecord{Step: step, Operator: so.op.Name(), OperatorID: so.id}
			if tuned, ok := so.op.(*mutation.TunedTranslation); ok {
				rec.Shift = tuned.LastShift()
				snap := model.WeightSnapshot{
					OperatorID: so.id,
					Step:       step,
					Weights:    tuned.Shift().Weights().Value().Data(),
				}
				if err := c.store.AppendWeightSnapshot(ctx, runID, snap); err != nil {
					return RunSummary{}, fmt.Errorf("persist weight snapshot: %w", err)
				}
			}
			if err := c.store.AppendApplyRecord(ctx, runID, rec); err != nil {
				return RunSummary{}, fmt.Errorf("persist apply record: %w", err)
			}
		}
	}

	return RunSummary{
		RunID:      runID,
		Steps:      req.Steps,
		Applies:    applies,
		Operators:  names,
		FinalValue: target.Value().Data(),
	}, nil
}

// OperatorNames lists every operator the registry can build.
func OperatorNames() []string {
	return mutation.OperatorNames()
}

func newSessionArray(req RunRequest, rng *rand.Rand) (*param.Array, error) {
	a, err := param.NewArray(req.Shape)
	if err != nil {
		return nil, err
	}
	if req.Lower != nil || req.Upper != nil {
		var lower, upper *tensor.Dense
		if req.Lower != nil {
			lower = tensor.Zeros(req.Shape)
			fill(lower, *req.Lower)
		}
		if req.Upper != nil {
			upper = tensor.Zeros(req.Shape)
			fill(upper, *req.Upper)
		}
		if err := a.SetBounds(lower, upper); err != nil {
			return nil, err
		}
	}
	initial := tensor.Zeros(req.Shape)
	for i := range initial.Data() {
		initial.Data()[i] = rng.NormFloat64()
	}
	if err := a.SetValue(initial); err != nil {
		return nil, err
	}
	return a, nil
}

func fill(d *tensor.Dense, v float64) {
	data := d.Data()
	for i := range data {
		data[i] = v
	}
}
