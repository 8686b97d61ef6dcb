package tensor

import "fmt"

// Roll returns a copy of d cyclically shifted along the given axes by the
// matching shift amounts. An element at index i on a shifted axis with extent
// n moves to (i+shift) mod n. Shifts may be negative; other axes are
// untouched.
func (d *Dense) Roll(axes []int, shifts []int) (*Dense, error) {
	if len(axes) != len(shifts) {
		return nil, fmt.Errorf("%w: %d axes with %d shifts", ErrInvalidAxis, len(axes), len(shifts))
	}
	shiftFor := make([]int, len(d.shape))
	for k, a := range axes {
		if a < 0 || a >= len(d.shape) {
			return nil, fmt.Errorf("%w: axis %d out of range for %d-d shape", ErrInvalidAxis, a, len(d.shape))
		}
		n := d.shape[a]
		shiftFor[a] = ((shifts[k] % n) + n) % n
	}

	out := Zeros(d.shape)
	idx := make([]int, len(d.shape))
	for src := range d.data {
		dst := 0
		for a, i := range idx {
			dst += ((i + shiftFor[a]) % d.shape[a]) * d.stride[a]
		}
		out.data[dst] = d.data[src]
		for a := len(idx) - 1; a >= 0; a-- {
			idx[a]++
			if idx[a] < d.shape[a] {
				break
			}
			idx[a] = 0
		}
	}
	return out, nil
}
