package param

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

var ErrEmptyChoice = errors.New("choice needs at least one category")

// Choice is a categorical distribution over integer categories with a mutable
// weight vector. Weights are raw logits; sampling applies a softmax.
type Choice struct {
	categories []int
	weights    *Array
	rng        *rand.Rand
}

// NewChoiceRange builds a Choice over the integers [lo, hi) with uniform
// initial weights.
func NewChoiceRange(lo, hi int, rng *rand.Rand) (*Choice, error) {
	if hi <= lo {
		return nil, fmt.Errorf("%w: range [%d,%d)", ErrEmptyChoice, lo, hi)
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	categories := make([]int, 0, hi-lo)
	for v := lo; v < hi; v++ {
		categories = append(categories, v)
	}
	weights, err := NewArray([]int{len(categories)})
	if err != nil {
		return nil, err
	}
	return &Choice{categories: categories, weights: weights, rng: rng}, nil
}

func (c *Choice) Categories() []int { return append([]int(nil), c.categories...) }

// Weights exposes the raw weight vector parameter (a 1-D array of logits).
func (c *Choice) Weights() *Array { return c.weights }

// Sample draws one category according to the softmax of the current weights.
// Each call advances the random stream.
func (c *Choice) Sample() int {
	logits := c.weights.Value().Data()
	max := floats.Max(logits)
	probs := make([]float64, len(logits))
	for i, w := range logits {
		probs[i] = math.Exp(w - max)
	}
	total := floats.Sum(probs)
	r := c.rng.Float64() * total
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return c.categories[i]
		}
	}
	return c.categories[len(c.categories)-1]
}

// RotateWeights cyclically permutes the weight vector by the given amount.
func (c *Choice) RotateWeights(shift int) error {
	rolled, err := c.weights.Value().Roll([]int{0}, []int{shift})
	if err != nil {
		return err
	}
	return c.weights.SetValue(rolled)
}

// SpawnChild deep-copies the distribution, giving the child an independent
// weight vector and a random stream derived from the parent's.
func (c *Choice) SpawnChild() *Choice {
	return &Choice{
		categories: append([]int(nil), c.categories...),
		weights:    c.weights.SpawnChild(),
		rng:        rand.New(rand.NewSource(c.rng.Int63())),
	}
}
