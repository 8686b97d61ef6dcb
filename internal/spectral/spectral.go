package spectral

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"mutagen/internal/tensor"
)

var ErrBadAxis = errors.New("invalid transform axis")

// Transform computes an unnormalized discrete Fourier transform along a fixed
// set of axes, so windowed operators can act on frequency bands instead of
// spatial regions. Backward inverts Forward exactly (up to rounding) and
// returns the real parts.
type Transform struct {
	axes  []int
	plans map[int]*fourier.CmplxFFT
}

// New builds a transform over the given distinct axis indices.
func New(axes []int) (*Transform, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: at least one axis is required", ErrBadAxis)
	}
	seen := make(map[int]bool, len(axes))
	for _, a := range axes {
		if a < 0 {
			return nil, fmt.Errorf("%w: %d", ErrBadAxis, a)
		}
		if seen[a] {
			return nil, fmt.Errorf("%w: duplicate axis %d", ErrBadAxis, a)
		}
		seen[a] = true
	}
	return &Transform{
		axes:  append([]int(nil), axes...),
		plans: make(map[int]*fourier.CmplxFFT),
	}, nil
}

func (t *Transform) plan(n int) *fourier.CmplxFFT {
	p, ok := t.plans[n]
	if !ok {
		p = fourier.NewCmplxFFT(n)
		t.plans[n] = p
	}
	return p
}

// Forward transforms d into the spectral domain along the configured axes.
func (t *Transform) Forward(d *tensor.Dense) (*tensor.CDense, error) {
	out := d.Complex()
	for _, a := range t.axes {
		if a >= out.Dim() {
			return nil, fmt.Errorf("%w: axis %d for %d-d tensor", ErrBadAxis, a, out.Dim())
		}
		t.transformAxis(out, a, false)
	}
	return out, nil
}

// Backward inverts Forward, normalizing by the transformed extents, and drops
// imaginary parts.
func (t *Transform) Backward(c *tensor.CDense) (*tensor.Dense, error) {
	out := c.Clone()
	scale := 1.0
	for _, a := range t.axes {
		if a >= out.Dim() {
			return nil, fmt.Errorf("%w: axis %d for %d-d tensor", ErrBadAxis, a, out.Dim())
		}
		t.transformAxis(out, a, true)
		scale *= float64(out.Shape()[a])
	}
	data := out.Data()
	for i := range data {
		data[i] /= complex(scale, 0)
	}
	return out.Real(), nil
}

// transformAxis runs the 1-D transform over every line of c along the axis,
// in place.
func (t *Transform) transformAxis(c *tensor.CDense, axis int, inverse bool) {
	shape := c.Shape()
	extent := shape[axis]
	inner := 1
	for _, s := range shape[axis+1:] {
		inner *= s
	}
	outer := c.Size() / (extent * inner)

	plan := t.plan(extent)
	src := make([]complex128, extent)
	dst := make([]complex128, extent)
	data := c.Data()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*extent*inner + i
			for k := 0; k < extent; k++ {
				src[k] = data[base+k*inner]
			}
			if inverse {
				plan.Sequence(dst, src)
			} else {
				plan.Coefficients(dst, src)
			}
			for k := 0; k < extent; k++ {
				data[base+k*inner] = dst[k]
			}
		}
	}
}
