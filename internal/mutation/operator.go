package mutation

import (
	"errors"
	"fmt"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

var (
	ErrArity         = errors.New("wrong number of input arrays")
	ErrShapeMismatch = errors.New("input shapes do not match")
)

// Operator perturbs one or two array parameters in place. Apply validates its
// inputs fully before writing anything back, so a failed call leaves the
// target untouched.
type Operator interface {
	Name() string
	// Arity is the exact number of arrays Apply expects.
	Arity() int
	Apply(arrays []*param.Array) error
}

func checkArity(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s needs exactly %d, got %d", ErrArity, name, want, got)
	}
	return nil
}

func tensorAxisError(axis, dim int) error {
	return fmt.Errorf("%w: axis %d out of range for %d-d shape", tensor.ErrInvalidAxis, axis, dim)
}

// resolveAxes returns the configured axes, or every axis of a dim-d array
// when none are configured.
func resolveAxes(axes []int, dim int) []int {
	if len(axes) > 0 {
		return append([]int(nil), axes...)
	}
	all := make([]int, dim)
	for i := range all {
		all[i] = i
	}
	return all
}
