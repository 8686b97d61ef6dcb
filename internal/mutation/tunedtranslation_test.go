package mutation

import (
	"errors"
	"math/rand"
	"testing"

	"mutagen/internal/param"
	"mutagen/internal/tensor"
)

func TestTunedTranslationShiftAndShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	op, err := NewTunedTranslation(0, []int{6}, rng)
	if err != nil {
		t.Fatalf("new operator: %v", err)
	}
	src, err := tensor.NewDense([]int{6}, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}

	for trial := 0; trial < 50; trial++ {
		a, err := param.NewArray([]int{6})
		if err != nil {
			t.Fatalf("new array: %v", err)
		}
		if err := a.SetValue(src); err != nil {
			t.Fatalf("set value: %v", err)
		}
		if err := op.Apply([]*param.Array{a}); err != nil {
			t.Fatalf("apply: %v", err)
		}

		shift := op.LastShift()
		if shift < 1 || shift > 5 {
			t.Fatalf("sampled shift %d outside [1,5]", shift)
		}
		want, err := src.Roll([]int{0}, []int{shift})
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if !a.Value().Equal(want) {
			t.Fatalf("result %v is not the input rolled by %d", a.Value().Data(), shift)
		}
	}
}

func TestTunedTranslationRotatesWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	op, err := NewTunedTranslation(0, []int{6}, rng)
	if err != nil {
		t.Fatalf("new operator: %v", err)
	}

	start, err := tensor.NewDense([]int{5}, []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	if err := op.Shift().Weights().SetValue(start); err != nil {
		t.Fatalf("set weights: %v", err)
	}

	a := newTestArray(t, []int{6}, 0)
	if err := op.Apply([]*param.Array{a}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	want, err := start.Roll([]int{0}, []int{op.LastShift()})
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if !op.Shift().Weights().Value().Equal(want) {
		t.Fatalf("weights %v are not the pre-call weights rotated by %d",
			op.Shift().Weights().Value().Data(), op.LastShift())
	}
}

func TestTunedTranslationShapeMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	op, err := NewTunedTranslation(0, []int{5}, rng)
	if err != nil {
		t.Fatalf("new operator: %v", err)
	}
	a := newTestArray(t, []int{4}, 0)
	if err := op.Apply([]*param.Array{a}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestTunedTranslationConstructorErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	if _, err := NewTunedTranslation(2, []int{4}, rng); !errors.Is(err, tensor.ErrInvalidAxis) {
		t.Fatalf("axis out of range: expected ErrInvalidAxis, got %v", err)
	}
	if _, err := NewTunedTranslation(0, []int{1, 4}, rng); !errors.Is(err, tensor.ErrInvalidAxis) {
		t.Fatalf("degenerate axis: expected ErrInvalidAxis, got %v", err)
	}
	if _, err := NewTunedTranslation(0, []int{4}, nil); err == nil {
		t.Fatal("expected error for nil random source")
	}
}

func TestTunedTranslationSpawnChild(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	parent, err := NewTunedTranslation(1, []int{2, 5}, rng)
	if err != nil {
		t.Fatalf("new operator: %v", err)
	}
	child := parent.SpawnChild()

	if child.Axis() != parent.Axis() || !tensor.ShapeEqual(child.Shape(), parent.Shape()) {
		t.Fatal("child must share the parent's axis/shape configuration")
	}

	parentWeights := parent.Shift().Weights().Value().Clone()
	a := newTestArray(t, []int{2, 5}, 0)
	for i := 0; i < 10; i++ {
		if err := child.Apply([]*param.Array{a}); err != nil {
			t.Fatalf("child apply: %v", err)
		}
	}
	if !parent.Shift().Weights().Value().Equal(parentWeights) {
		t.Fatal("child applies mutated the parent's weight vector")
	}
}
