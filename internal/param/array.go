package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"mutagen/internal/tensor"
)

var (
	ErrBadBounds     = errors.New("invalid bounds")
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Array is a bounded, shape-typed numeric parameter. The standardized
// (unconstrained) representation is the source of truth; the bounded value is
// derived from it by clipping into the declared bounds, so the two stay
// consistent after any mutation.
type Array struct {
	uid          string
	shape        []int
	standardized *tensor.Dense
	lower        *tensor.Dense
	upper        *tensor.Dense
}

// NewArray returns a zero-valued unbounded array parameter.
func NewArray(shape []int) (*Array, error) {
	if tensor.SizeOf(shape) <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, shape)
	}
	return &Array{
		uid:          uuid.NewString(),
		shape:        append([]int(nil), shape...),
		standardized: tensor.Zeros(shape),
	}, nil
}

// SetBounds declares per-element lower/upper bounds. Either side may be nil.
func (a *Array) SetBounds(lower, upper *tensor.Dense) error {
	if lower != nil && !tensor.ShapeEqual(lower.Shape(), a.shape) {
		return fmt.Errorf("%w: lower bound shape %v for array shape %v", ErrBadBounds, lower.Shape(), a.shape)
	}
	if upper != nil && !tensor.ShapeEqual(upper.Shape(), a.shape) {
		return fmt.Errorf("%w: upper bound shape %v for array shape %v", ErrBadBounds, upper.Shape(), a.shape)
	}
	if lower != nil && upper != nil {
		lo, up := lower.Data(), upper.Data()
		for i := range lo {
			if lo[i] > up[i] {
				return fmt.Errorf("%w: lower %v above upper %v at element %d", ErrBadBounds, lo[i], up[i], i)
			}
		}
	}
	if lower != nil {
		lower = lower.Clone()
	}
	if upper != nil {
		upper = upper.Clone()
	}
	a.lower, a.upper = lower, upper
	return nil
}

func (a *Array) UID() string { return a.uid }

func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

func (a *Array) Size() int { return tensor.SizeOf(a.shape) }

func (a *Array) Dim() int { return len(a.shape) }

// Bounds returns the declared bounds; either may be nil.
func (a *Array) Bounds() (lower, upper *tensor.Dense) { return a.lower, a.upper }

// Value returns the bounded value derived from the standardized data.
func (a *Array) Value() *tensor.Dense {
	return a.Clip(a.standardized)
}

// SetValue stores v as the new parameter data. If v violates the bounds the
// derived value is clipped; the standardized representation keeps the raw
// data.
func (a *Array) SetValue(v *tensor.Dense) error {
	if !tensor.ShapeEqual(v.Shape(), a.shape) {
		return fmt.Errorf("%w: %v for array shape %v", ErrShapeMismatch, v.Shape(), a.shape)
	}
	a.standardized = v.Clone()
	return nil
}

// StandardizedData returns a copy of the unconstrained representation.
func (a *Array) StandardizedData() *tensor.Dense {
	return a.standardized.Clone()
}

// SetStandardizedData replaces the unconstrained representation; the bounded
// value is re-derived on the next Value call.
func (a *Array) SetStandardizedData(d *tensor.Dense) error {
	if !tensor.ShapeEqual(d.Shape(), a.shape) {
		return fmt.Errorf("%w: %v for array shape %v", ErrShapeMismatch, d.Shape(), a.shape)
	}
	a.standardized = d.Clone()
	return nil
}

// Clip returns a copy of v clipped element-wise into the declared bounds.
func (a *Array) Clip(v *tensor.Dense) *tensor.Dense {
	out := v.Clone()
	data := out.Data()
	if a.lower != nil {
		lo := a.lower.Data()
		for i := range data {
			data[i] = math.Max(data[i], lo[i])
		}
	}
	if a.upper != nil {
		up := a.upper.Data()
		for i := range data {
			data[i] = math.Min(data[i], up[i])
		}
	}
	return out
}

// SpawnChild deep-copies the parameter under a fresh uid.
func (a *Array) SpawnChild() *Array {
	child := &Array{
		uid:          uuid.NewString(),
		shape:        append([]int(nil), a.shape...),
		standardized: a.standardized.Clone(),
	}
	if a.lower != nil {
		child.lower = a.lower.Clone()
	}
	if a.upper != nil {
		child.upper = a.upper.Clone()
	}
	return child
}
