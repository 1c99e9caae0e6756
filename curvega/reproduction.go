package curvega

import (
	"fmt"
	"math/rand"
)

// Reproduction creates offspring: two parents from a picker, crossover, mutation,
// then immediate scoring of the child.
type Reproduction struct {
	Selector  Selector
	Crossover Crossover
	Mutator   Mutator
	MixRate   float64
	Evaluator *Evaluator
}

// NewReproduction resolves the configured strategies by name.
func NewReproduction(config *Config, evaluator *Evaluator) (*Reproduction, error) {
	selector, err := NewSelector(config.Selection.Strategy)
	if err != nil {
		return nil, err
	}
	crossover, err := NewCrossover(config.Crossover.Strategy)
	if err != nil {
		return nil, err
	}
	mutator, err := NewMutator(config.Mutation)
	if err != nil {
		return nil, err
	}
	return &Reproduction{
		Selector:  selector,
		Crossover: crossover,
		Mutator:   mutator,
		MixRate:   config.Crossover.MixRate,
		Evaluator: evaluator,
	}, nil
}

// Spawn produces exactly n scored children for generation childGen. Every child is
// offered to best as soon as it is scored.
func (r *Reproduction) Spawn(picker Picker, n, childGen int, rng *rand.Rand, best *BestTracker) ([]*Curve, error) {
	if n <= 0 {
		return nil, configErrorf("run.population_size", "must be positive, got %d", n)
	}
	children := make([]*Curve, 0, n)
	for i := 0; i < n; i++ {
		// Self-crossover is allowed: both draws may return the same curve.
		parent1 := picker.Pick(rng)
		parent2 := picker.Pick(rng)

		child, err := r.Crossover.Cross(parent1, parent2, r.MixRate, rng)
		if err != nil {
			return nil, fmt.Errorf("crossover failed for child %d: %w", i, err)
		}
		r.Mutator.Mutate(child, rng)

		if _, err := r.Evaluator.Score(child); err != nil {
			return nil, fmt.Errorf("fitness evaluation failed for child %d: %w", i, err)
		}
		if best != nil {
			best.Observe(child, childGen)
		}
		children = append(children, child)
	}
	return children, nil
}
