package mutation

import (
	"math/rand"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

// LocalGaussian adds standard-normal noise inside a randomly placed window.
// It writes into the unconstrained representation of the target, so any
// bound-enforcing transform is re-applied when the value is next derived.
type LocalGaussian struct {
	Rand *rand.Rand
	// Axes to window over; empty means all axes.
	Axes []int
	// Size is the window extent on every targeted axis.
	Size int
}

func (l *LocalGaussian) Name() string { return "local_gaussian" }

func (l *LocalGaussian) Arity() int { return 1 }

func (l *LocalGaussian) Apply(arrays []*param.Array) error {
	if err := checkArity(l.Name(), len(arrays), 1); err != nil {
		return err
	}
	shape := arrays[0].Shape()
	axes := resolveAxes(l.Axes, len(shape))
	window, err := tensor.BuildWindow(shape, axes, l.Size, l.Rand)
	if err != nil {
		return err
	}
	data := tensor.Zeros(shape)
	if err := data.ApplyWindow(window, func(v float64) float64 {
		return v + l.Rand.NormFloat64()
	}); err != nil {
		return err
	}
	return arrays[0].SetStandardizedData(data)
}
