package tensor

import (
	"fmt"
	"math/rand"
)

// Range is a half-open [Start, Stop) interval along one axis.
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.Stop - r.Start }

// BuildWindow draws a random contiguous window over shape: every axis listed
// in axes gets a random [start, start+size) range, every other axis spans its
// full extent. Targeted axes must have extent at least 2 and at least size+1,
// so the window never covers a whole targeted axis.
func BuildWindow(shape []int, axes []int, size int, rng *rand.Rand) ([]Range, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrWindowSize, size)
	}
	targeted := make(map[int]bool, len(axes))
	for _, a := range axes {
		if a < 0 || a >= len(shape) {
			return nil, fmt.Errorf("%w: axis %d out of range for %d-d shape", ErrInvalidAxis, a, len(shape))
		}
		targeted[a] = true
	}
	window := make([]Range, len(shape))
	for a, s := range shape {
		if !targeted[a] {
			window[a] = Range{Start: 0, Stop: s}
			continue
		}
		if s <= 1 {
			return nil, fmt.Errorf("%w: axis %d has extent %d", ErrInvalidAxis, a, s)
		}
		if size > s-1 {
			return nil, fmt.Errorf("%w: size %d on axis %d with extent %d", ErrWindowSize, size, a, s)
		}
		start := rng.Intn(s - size)
		window[a] = Range{Start: start, Stop: start + size}
	}
	return window, nil
}

func (d *Dense) checkWindow(window []Range) error {
	if len(window) != len(d.shape) {
		return fmt.Errorf("%w: window has %d ranges for %d-d tensor", ErrWindowSize, len(window), len(d.shape))
	}
	for a, r := range window {
		if r.Start < 0 || r.Stop > d.shape[a] || r.Len() < 1 {
			return fmt.Errorf("%w: range [%d,%d) on axis %d with extent %d", ErrWindowSize, r.Start, r.Stop, a, d.shape[a])
		}
	}
	return nil
}

// windowOffsets calls fn with the flat offset of every element inside the
// window, in row-major order.
func windowOffsets(stride []int, window []Range, fn func(offset int)) {
	idx := make([]int, len(window))
	offset := 0
	for a, r := range window {
		idx[a] = r.Start
		offset += r.Start * stride[a]
	}
	for {
		fn(offset)
		a := len(window) - 1
		for ; a >= 0; a-- {
			idx[a]++
			offset += stride[a]
			if idx[a] < window[a].Stop {
				break
			}
			offset -= (idx[a] - window[a].Start) * stride[a]
			idx[a] = window[a].Start
		}
		if a < 0 {
			return
		}
	}
}

// CopyWindow overwrites the window region of d with the same region of src.
// Both tensors must share a shape.
func (d *Dense) CopyWindow(src *Dense, window []Range) error {
	if !ShapeEqual(d.shape, src.shape) {
		return fmt.Errorf("%w: %v vs %v", ErrBadShape, d.shape, src.shape)
	}
	if err := d.checkWindow(window); err != nil {
		return err
	}
	windowOffsets(d.stride, window, func(offset int) {
		d.data[offset] = src.data[offset]
	})
	return nil
}

// ApplyWindow replaces every element inside the window with fn(element).
func (d *Dense) ApplyWindow(window []Range, fn func(v float64) float64) error {
	if err := d.checkWindow(window); err != nil {
		return err
	}
	windowOffsets(d.stride, window, func(offset int) {
		d.data[offset] = fn(d.data[offset])
	})
	return nil
}

// CopyWindow overwrites the window region of c with the same region of src.
func (c *CDense) CopyWindow(src *CDense, window []Range) error {
	if !ShapeEqual(c.shape, src.shape) {
		return fmt.Errorf("%w: %v vs %v", ErrBadShape, c.shape, src.shape)
	}
	if len(window) != len(c.shape) {
		return fmt.Errorf("%w: window has %d ranges for %d-d tensor", ErrWindowSize, len(window), len(c.shape))
	}
	for a, r := range window {
		if r.Start < 0 || r.Stop > c.shape[a] || r.Len() < 1 {
			return fmt.Errorf("%w: range [%d,%d) on axis %d with extent %d", ErrWindowSize, r.Start, r.Stop, a, c.shape[a])
		}
	}
	windowOffsets(c.stride, window, func(offset int) {
		c.data[offset] = src.data[offset]
	})
	return nil
}
