package tensor

import (
	"errors"
	"testing"
)

func TestNewDenseValidatesShapeAndLength(t *testing.T) {
	cases := []struct {
		name  string
		shape []int
		data  []float64
	}{
		{name: "empty shape", shape: nil, data: []float64{1}},
		{name: "zero extent", shape: []int{2, 0}, data: nil},
		{name: "negative extent", shape: []int{-1}, data: []float64{1}},
		{name: "length mismatch", shape: []int{2, 2}, data: []float64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDense(tc.shape, tc.data); !errors.Is(err, ErrBadShape) {
				t.Fatalf("expected ErrBadShape, got %v", err)
			}
		})
	}
}

func TestDenseAtSetRowMajor(t *testing.T) {
	d, err := NewDense([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	if got := d.At(1, 2); got != 5 {
		t.Fatalf("At(1,2) = %v, want 5", got)
	}
	d.Set(9, 0, 1)
	if got := d.Data()[1]; got != 9 {
		t.Fatalf("flat element 1 = %v, want 9", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d, err := NewDense([]int{2, 2}, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	c := d.Clone()
	c.Set(42, 0, 0)
	if d.At(0, 0) != 1 {
		t.Fatalf("clone mutation leaked into original: %v", d.At(0, 0))
	}
	if !d.Equal(d.Clone()) {
		t.Fatal("clone should equal original before mutation")
	}
}

func TestComplexRealRoundTrip(t *testing.T) {
	d, err := NewDense([]int{3}, []float64{1.5, -2, 0})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	back := d.Complex().Real()
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %v vs %v", back.Data(), d.Data())
	}
}

func TestSizeOf(t *testing.T) {
	if got := SizeOf([]int{2, 3, 4}); got != 24 {
		t.Fatalf("SizeOf = %d, want 24", got)
	}
	if got := SizeOf(nil); got != 0 {
		t.Fatalf("SizeOf(nil) = %d, want 0", got)
	}
}
