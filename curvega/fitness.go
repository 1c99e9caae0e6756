package curvega

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// Score classifies every labeled point against the curve and caches the fraction
// classified correctly. A positive point is correct when it lies on or above the
// curve (y >= f(x)); a negative point when it lies strictly below (y < f(x)).
func Score(c *Curve, positive, negative *PointSet) (float64, error) {
	total := setLen(positive) + setLen(negative)
	if total == 0 {
		return 0, configErrorf("points", "fitness is undefined for two empty point sets")
	}

	correct := 0
	if positive != nil {
		for _, p := range positive.points {
			if p.Y >= c.Evaluate(p.X) {
				correct++
			}
		}
	}
	if negative != nil {
		for _, p := range negative.points {
			if p.Y < c.Evaluate(p.X) {
				correct++
			}
		}
	}

	fitness := float64(correct) / float64(total)
	c.SetFitness(fitness)
	return fitness, nil
}

func setLen(ps *PointSet) int {
	if ps == nil {
		return 0
	}
	return ps.Len()
}

// Evaluator scores curves against two fixed point sets.
type Evaluator struct {
	Positive *PointSet
	Negative *PointSet
	// Workers bounds the goroutines used by EvaluatePopulation; <= 1 means sequential.
	Workers int
}

// NewEvaluator checks that at least one point is available and returns an evaluator.
func NewEvaluator(positive, negative *PointSet, workers int) (*Evaluator, error) {
	if setLen(positive)+setLen(negative) == 0 {
		return nil, configErrorf("points", "fitness is undefined for two empty point sets")
	}
	return &Evaluator{Positive: positive, Negative: negative, Workers: workers}, nil
}

// Score scores one curve.
func (e *Evaluator) Score(c *Curve) (float64, error) {
	return Score(c, e.Positive, e.Negative)
}

// EvaluatePopulation scores every curve that has no cached fitness yet. Each
// goroutine writes only to the curve it was handed, so no ordering is required.
func (e *Evaluator) EvaluatePopulation(pop *Population) error {
	if e.Workers <= 1 {
		for i, c := range pop.curves {
			if _, scored := c.Fitness(); scored {
				continue
			}
			if _, err := e.Score(c); err != nil {
				return fmt.Errorf("fitness evaluation failed for curve %d: %w", i, err)
			}
		}
		return nil
	}

	p := pool.New().WithErrors().WithMaxGoroutines(e.Workers)
	for i, c := range pop.curves {
		if _, scored := c.Fitness(); scored {
			continue
		}
		i, c := i, c
		p.Go(func() error {
			if _, err := e.Score(c); err != nil {
				return fmt.Errorf("fitness evaluation failed for curve %d: %w", i, err)
			}
			return nil
		})
	}
	return p.Wait()
}
