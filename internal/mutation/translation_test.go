package mutation

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

func TestTranslationIsCyclicRotation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	op := &Translation{Rand: rng}

	src, err := tensor.NewDense([]int{5}, []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	for trial := 0; trial < 30; trial++ {
		a, err := param.NewArray([]int{5})
		if err != nil {
			t.Fatalf("new array: %v", err)
		}
		if err := a.SetValue(src); err != nil {
			t.Fatalf("set value: %v", err)
		}
		if err := op.Apply([]*param.Array{a}); err != nil {
			t.Fatalf("apply: %v", err)
		}
		got := a.Value()
		matched := false
		for shift := 0; shift < 5; shift++ {
			want, err := src.Roll([]int{0}, []int{shift})
			if err != nil {
				t.Fatalf("roll: %v", err)
			}
			if got.Equal(want) {
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("result %v is not a rotation of %v", got.Data(), src.Data())
		}
	}
}

func TestTranslationRestrictedAxisKeepsRowsAligned(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	op := &Translation{Rand: rng, Axes: []int{1}}

	src := tensor.Zeros([]int{3, 4})
	for i := range src.Data() {
		src.Data()[i] = float64(i)
	}
	a, err := param.NewArray([]int{3, 4})
	if err != nil {
		t.Fatalf("new array: %v", err)
	}
	if err := a.SetValue(src); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := op.Apply([]*param.Array{a}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got := a.Value()
	matched := false
	for shift := 0; shift < 4; shift++ {
		want, err := src.Roll([]int{1}, []int{shift})
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if got.Equal(want) {
			matched = true
			break
		}
	}
	if !matched {
		t.Fatal("every row must shift by the same amount, leaving axis 0 untouched")
	}
}

func TestTranslationPreservesElements(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	op := &Translation{Rand: rng}

	src := tensor.Zeros([]int{4, 3})
	for i := range src.Data() {
		src.Data()[i] = rng.NormFloat64()
	}
	a, err := param.NewArray([]int{4, 3})
	if err != nil {
		t.Fatalf("new array: %v", err)
	}
	if err := a.SetValue(src); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := op.Apply([]*param.Array{a}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	before := append([]float64(nil), src.Data()...)
	after := append([]float64(nil), a.Value().Data()...)
	sort.Float64s(before)
	sort.Float64s(after)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("translation must permute elements, not change them")
		}
	}
}

func TestTranslationArity(t *testing.T) {
	op := &Translation{Rand: rand.New(rand.NewSource(4))}
	a := newTestArray(t, []int{4}, 0)
	if err := op.Apply([]*param.Array{a, a}); !errors.Is(err, ErrArity) {
		t.Fatalf("expected ErrArity, got %v", err)
	}
}

func TestTranslationAxisOutOfRange(t *testing.T) {
	op := &Translation{Rand: rand.New(rand.NewSource(5)), Axes: []int{3}}
	a := newTestArray(t, []int{4}, 1)
	if err := op.Apply([]*param.Array{a}); !errors.Is(err, tensor.ErrInvalidAxis) {
		t.Fatalf("expected ErrInvalidAxis, got %v", err)
	}
	for _, v := range a.Value().Data() {
		if v != 1 {
			t.Fatal("target mutated by failed translation")
		}
	}
}
