package mutation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

var (
	ErrOperatorExists   = errors.New("operator already registered")
	ErrOperatorNotFound = errors.New("operator not found")
)

// OperatorConfig is the typed configuration record shared by all operator
// builders. Fields irrelevant to a given variant are ignored by its builder.
type OperatorConfig struct {
	Name string `json:"name"`
	// Axes selects the axes a windowed/shifting operator acts on; empty means
	// all axes.
	Axes []int `json:"axes,omitempty"`
	// MaxSize caps the crossover window extent; zero derives it.
	MaxSize int `json:"max_size,omitempty"`
	// Size is the LocalGaussian window extent.
	Size int `json:"size,omitempty"`
	// Spectral switches crossover windowing into the Fourier domain.
	Spectral bool `json:"spectral,omitempty"`
	// Axis is the fixed TunedTranslation axis.
	Axis int `json:"axis,omitempty"`
}

// BuilderFn constructs an operator for a target array shape.
type BuilderFn func(cfg OperatorConfig, shape []int, rng *rand.Rand) (Operator, error)

var operatorRegistry = struct {
	mu sync.RWMutex
	m  map[string]BuilderFn
}{
	m: make(map[string]BuilderFn),
}

// RegisterOperator registers a named operator builder.
func RegisterOperator(name string, fn BuilderFn) error {
	if name == "" {
		return errors.New("operator name is required")
	}
	if fn == nil {
		return errors.New("operator builder is required")
	}

	operatorRegistry.mu.Lock()
	defer operatorRegistry.mu.Unlock()

	if _, exists := operatorRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrOperatorExists, name)
	}
	operatorRegistry.m[name] = fn
	return nil
}

// BuildOperator resolves cfg.Name and constructs the operator for the shape.
func BuildOperator(cfg OperatorConfig, shape []int, rng *rand.Rand) (Operator, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}

	operatorRegistry.mu.RLock()
	fn, ok := operatorRegistry.m[cfg.Name]
	operatorRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOperatorNotFound, cfg.Name)
	}
	return fn(cfg, shape, rng)
}

// OperatorNames lists the registered operator names in sorted order.
func OperatorNames() []string {
	operatorRegistry.mu.RLock()
	defer operatorRegistry.mu.RUnlock()

	names := make([]string, 0, len(operatorRegistry.m))
	for name := range operatorRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	builtins := map[string]BuilderFn{
		"crossover": func(cfg OperatorConfig, _ []int, rng *rand.Rand) (Operator, error) {
			return &Crossover{Rand: rng, Axes: cfg.Axes, MaxSize: cfg.MaxSize, Spectral: cfg.Spectral}, nil
		},
		"translation": func(cfg OperatorConfig, _ []int, rng *rand.Rand) (Operator, error) {
			return &Translation{Rand: rng, Axes: cfg.Axes}, nil
		},
		"local_gaussian": func(cfg OperatorConfig, _ []int, rng *rand.Rand) (Operator, error) {
			size := cfg.Size
			if size <= 0 {
				size = 1
			}
			return &LocalGaussian{Rand: rng, Axes: cfg.Axes, Size: size}, nil
		},
		"tuned_translation": func(cfg OperatorConfig, shape []int, rng *rand.Rand) (Operator, error) {
			return NewTunedTranslation(cfg.Axis, shape, rng)
		},
	}
	for name, fn := range builtins {
		if err := RegisterOperator(name, fn); err != nil {
			panic(err)
		}
	}
}
