package mutation

import (
	"math"
	"math/rand"

	"mutagen/internal/param"
	"mutagen/internal/spectral"
	"mutagen/internal/tensor"
)

// Crossover copies a randomly placed window from the second array into a copy
// of the first. With Spectral set, both arrays are moved into the Fourier
// domain along the resolved axes first, so the window blends frequency bands
// instead of spatial regions.
type Crossover struct {
	Rand *rand.Rand
	// Axes to window over; empty means all axes.
	Axes []int
	// MaxSize caps the window extent per axis. Zero derives the cap from the
	// element count: floor(((size+1)/2)^(1/numAxes)).
	MaxSize  int
	Spectral bool
}

func (c *Crossover) Name() string { return "crossover" }

func (c *Crossover) Arity() int { return 2 }

func (c *Crossover) Apply(arrays []*param.Array) error {
	if err := checkArity(c.Name(), len(arrays), 2); err != nil {
		return err
	}
	result, err := c.computeResult([]*tensor.Dense{arrays[0].Value(), arrays[1].Value()})
	if err != nil {
		return err
	}
	if c.Spectral {
		// the inverse transform may step outside the declared bounds
		lower, upper := arrays[0].Bounds()
		if lower != nil || upper != nil {
			result = arrays[0].Clip(result)
		}
	}
	return arrays[0].SetValue(result)
}

func (c *Crossover) computeResult(values []*tensor.Dense) (*tensor.Dense, error) {
	if err := checkArity(c.Name(), len(values), 2); err != nil {
		return nil, err
	}
	a, b := values[0], values[1]
	if !tensor.ShapeEqual(a.Shape(), b.Shape()) {
		return nil, ErrShapeMismatch
	}
	axes := resolveAxes(c.Axes, a.Dim())
	shape := a.Shape()
	size, err := c.drawSize(shape, axes, a.Size())
	if err != nil {
		return nil, err
	}

	if !c.Spectral {
		window, err := tensor.BuildWindow(shape, axes, size, c.Rand)
		if err != nil {
			return nil, err
		}
		result := a.Clone()
		if err := result.CopyWindow(b, window); err != nil {
			return nil, err
		}
		return result, nil
	}

	transf, err := spectral.New(axes)
	if err != nil {
		return nil, err
	}
	ca, err := transf.Forward(a)
	if err != nil {
		return nil, err
	}
	cb, err := transf.Forward(b)
	if err != nil {
		return nil, err
	}
	window, err := tensor.BuildWindow(ca.Shape(), axes, size, c.Rand)
	if err != nil {
		return nil, err
	}
	result := ca.Clone()
	if err := result.CopyWindow(cb, window); err != nil {
		return nil, err
	}
	return transf.Backward(result)
}

// drawSize resolves the window extent: the configured (or derived) cap is
// clamped by the smallest targeted axis, then the actual size is drawn
// uniformly from [1, cap).
func (c *Crossover) drawSize(shape []int, axes []int, total int) (int, error) {
	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = int(math.Pow(float64(total+1)/2, 1/float64(len(axes))))
	}
	for _, a := range axes {
		if a < 0 || a >= len(shape) {
			return 0, tensorAxisError(a, len(shape))
		}
		if shape[a]-1 < maxSize {
			maxSize = shape[a] - 1
		}
	}
	if maxSize <= 1 {
		return 1, nil
	}
	return 1 + c.Rand.Intn(maxSize-1), nil
}
