package mutation

import (
	"errors"
	"fmt"
	"math/rand"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

// TunedTranslation cyclically shifts an array along one fixed axis. The shift
// amount is drawn from a categorical distribution over 1..extent-1 whose
// weight vector is rotated by the sampled shift after every use, biasing
// future draws toward shifts that keep getting reinforced from outside.
type TunedTranslation struct {
	rand      *rand.Rand
	axis      int
	shape     []int
	shift     *param.Choice
	lastShift int
}

// NewTunedTranslation builds the operator for a fixed axis and target shape.
// The axis must have extent at least 2.
func NewTunedTranslation(axis int, shape []int, rng *rand.Rand) (*TunedTranslation, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if tensor.SizeOf(shape) <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, shape)
	}
	if axis < 0 || axis >= len(shape) {
		return nil, tensorAxisError(axis, len(shape))
	}
	if shape[axis] <= 1 {
		return nil, fmt.Errorf("%w: axis %d has extent %d", tensor.ErrInvalidAxis, axis, shape[axis])
	}
	shift, err := param.NewChoiceRange(1, shape[axis], rng)
	if err != nil {
		return nil, err
	}
	return &TunedTranslation{
		rand:  rng,
		axis:  axis,
		shape: append([]int(nil), shape...),
		shift: shift,
	}, nil
}

func (t *TunedTranslation) Name() string { return "tuned_translation" }

func (t *TunedTranslation) Arity() int { return 1 }

func (t *TunedTranslation) Axis() int { return t.axis }

func (t *TunedTranslation) Shape() []int { return append([]int(nil), t.shape...) }

// Shift exposes the adaptive shift distribution.
func (t *TunedTranslation) Shift() *param.Choice { return t.shift }

// LastShift returns the shift sampled by the most recent Apply.
func (t *TunedTranslation) LastShift() int { return t.lastShift }

func (t *TunedTranslation) Apply(arrays []*param.Array) error {
	if err := checkArity(t.Name(), len(arrays), 1); err != nil {
		return err
	}
	result, err := t.computeResult(arrays[0].Value())
	if err != nil {
		return err
	}
	return arrays[0].SetValue(result)
}

func (t *TunedTranslation) computeResult(data *tensor.Dense) (*tensor.Dense, error) {
	if !tensor.ShapeEqual(data.Shape(), t.shape) {
		return nil, fmt.Errorf("%w: %v for configured shape %v", ErrShapeMismatch, data.Shape(), t.shape)
	}
	shift := t.shift.Sample()
	if err := t.shift.RotateWeights(shift); err != nil {
		return nil, err
	}
	t.lastShift = shift
	return data.Roll([]int{t.axis}, []int{shift})
}

// SpawnChild produces an offspring operator with the same axis/shape
// configuration, its own weight vector, and a random stream derived from the
// parent's.
func (t *TunedTranslation) SpawnChild() *TunedTranslation {
	return &TunedTranslation{
		rand:  rand.New(rand.NewSource(t.rand.Int63())),
		axis:  t.axis,
		shape: append([]int(nil), t.shape...),
		shift: t.shift.SpawnChild(),
	}
}
