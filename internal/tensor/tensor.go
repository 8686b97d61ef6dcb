package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidAxis = errors.New("axis cannot be windowed")
	ErrWindowSize  = errors.New("invalid window size")
	ErrBadShape    = errors.New("invalid shape")
)

// SizeOf returns the number of elements in a shape, or 0 for an empty shape.
func SizeOf(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	size := 1
	for _, s := range shape {
		size *= s
	}
	return size
}

// ShapeEqual reports whether two shapes have identical rank and extents.
func ShapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: shape must have at least one dimension", ErrBadShape)
	}
	for i, s := range shape {
		if s <= 0 {
			return fmt.Errorf("%w: extent %d on axis %d", ErrBadShape, s, i)
		}
	}
	return nil
}

func newStrides(shape []int) []int {
	stride := make([]int, len(shape))
	acc := 1
	for a := len(shape) - 1; a >= 0; a-- {
		stride[a] = acc
		acc *= shape[a]
	}
	return stride
}

// Dense is a row-major n-dimensional float64 array with owned backing storage.
type Dense struct {
	shape  []int
	stride []int
	data   []float64
}

// NewDense wraps data (copied) into a tensor of the given shape.
func NewDense(shape []int, data []float64) (*Dense, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if len(data) != SizeOf(shape) {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrBadShape, len(data), shape)
	}
	return &Dense{
		shape:  append([]int(nil), shape...),
		stride: newStrides(shape),
		data:   append([]float64(nil), data...),
	}, nil
}

// Zeros returns a zero-filled tensor. It panics on an invalid shape; callers
// pass shapes taken from existing tensors.
func Zeros(shape []int) *Dense {
	if err := checkShape(shape); err != nil {
		panic(err)
	}
	return &Dense{
		shape:  append([]int(nil), shape...),
		stride: newStrides(shape),
		data:   make([]float64, SizeOf(shape)),
	}
}

func (d *Dense) Shape() []int { return append([]int(nil), d.shape...) }

func (d *Dense) Dim() int { return len(d.shape) }

func (d *Dense) Size() int { return len(d.data) }

// Data exposes the backing slice in row-major order. Mutating it mutates the
// tensor.
func (d *Dense) Data() []float64 { return d.data }

func (d *Dense) Clone() *Dense {
	return &Dense{
		shape:  append([]int(nil), d.shape...),
		stride: append([]int(nil), d.stride...),
		data:   append([]float64(nil), d.data...),
	}
}

func (d *Dense) offsetOf(idx []int) int {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d-d tensor", len(idx), len(d.shape)))
	}
	offset := 0
	for a, i := range idx {
		if i < 0 || i >= d.shape[a] {
			panic(fmt.Sprintf("tensor: index %d out of range on axis %d", i, a))
		}
		offset += i * d.stride[a]
	}
	return offset
}

func (d *Dense) At(idx ...int) float64 { return d.data[d.offsetOf(idx)] }

func (d *Dense) Set(v float64, idx ...int) { d.data[d.offsetOf(idx)] = v }

func (d *Dense) Equal(other *Dense) bool {
	if !ShapeEqual(d.shape, other.shape) {
		return false
	}
	for i, v := range d.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// EqualApprox compares element-wise within an absolute tolerance.
func (d *Dense) EqualApprox(other *Dense, tol float64) bool {
	if !ShapeEqual(d.shape, other.shape) {
		return false
	}
	return floats.EqualApprox(d.data, other.data, tol)
}

// Complex widens the tensor to a complex-valued one with zero imaginary parts.
func (d *Dense) Complex() *CDense {
	out := CZeros(d.shape)
	for i, v := range d.data {
		out.data[i] = complex(v, 0)
	}
	return out
}

// CDense is the complex128 counterpart of Dense, used for spectral-domain
// windowing.
type CDense struct {
	shape  []int
	stride []int
	data   []complex128
}

// CZeros returns a zero-filled complex tensor.
func CZeros(shape []int) *CDense {
	if err := checkShape(shape); err != nil {
		panic(err)
	}
	return &CDense{
		shape:  append([]int(nil), shape...),
		stride: newStrides(shape),
		data:   make([]complex128, SizeOf(shape)),
	}
}

func (c *CDense) Shape() []int { return append([]int(nil), c.shape...) }

func (c *CDense) Dim() int { return len(c.shape) }

func (c *CDense) Size() int { return len(c.data) }

func (c *CDense) Data() []complex128 { return c.data }

func (c *CDense) Clone() *CDense {
	return &CDense{
		shape:  append([]int(nil), c.shape...),
		stride: append([]int(nil), c.stride...),
		data:   append([]complex128(nil), c.data...),
	}
}

// Real narrows back to a float64 tensor, dropping imaginary parts.
func (c *CDense) Real() *Dense {
	out := Zeros(c.shape)
	for i, v := range c.data {
		out.data[i] = real(v)
	}
	return out
}
