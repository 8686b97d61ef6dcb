package mutation

import (
	"math/rand"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

// Translation cyclically shifts an array along the resolved axes by
// independent uniform random offsets.
type Translation struct {
	Rand *rand.Rand
	// Axes to shift along; empty means all axes.
	Axes []int
}

func (t *Translation) Name() string { return "translation" }

func (t *Translation) Arity() int { return 1 }

func (t *Translation) Apply(arrays []*param.Array) error {
	if err := checkArity(t.Name(), len(arrays), 1); err != nil {
		return err
	}
	result, err := t.computeResult(arrays[0].Value())
	if err != nil {
		return err
	}
	return arrays[0].SetValue(result)
}

func (t *Translation) computeResult(data *tensor.Dense) (*tensor.Dense, error) {
	axes := resolveAxes(t.Axes, data.Dim())
	shape := data.Shape()
	shifts := make([]int, len(axes))
	for i, a := range axes {
		if a < 0 || a >= len(shape) {
			return nil, tensorAxisError(a, len(shape))
		}
		shifts[i] = t.Rand.Intn(shape[a])
	}
	return data.Roll(axes, shifts)
}
