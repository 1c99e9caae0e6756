package curvega

import (
	"fmt"
	"math/rand"
)

// Population is one generation: a fixed number of curves of equal degree and the
// generation number they belong to.
type Population struct {
	curves     []*Curve
	generation int
}

// NewRandomPopulation creates an initial generation, drawing each curve gene by gene.
func NewRandomPopulation(size, degree, minVal, maxVal int, rng *rand.Rand) (*Population, error) {
	if size <= 0 {
		return nil, configErrorf("run.population_size", "must be positive, got %d", size)
	}
	curves := make([]*Curve, size)
	for i := range curves {
		c, err := NewRandomCurve(degree, minVal, maxVal, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create curve %d: %w", i, err)
		}
		curves[i] = c
	}
	return &Population{curves: curves, generation: 0}, nil
}

// NewPopulation builds a generation from already-constructed curves (typically the
// offspring of the previous generation). The population takes ownership of the curves.
func NewPopulation(curves []*Curve, generation int) (*Population, error) {
	if len(curves) == 0 {
		return nil, configErrorf("run.population_size", "must be positive, got 0")
	}
	if generation < 0 {
		return nil, configErrorf("generation", "cannot be negative, got %d", generation)
	}
	degree := curves[0].Degree()
	for i, c := range curves {
		if c == nil {
			return nil, configErrorf("population", "curve %d is nil", i)
		}
		if c.Degree() != degree {
			return nil, configErrorf("curve.degree", "curve %d has degree %d, population has degree %d", i, c.Degree(), degree)
		}
	}
	owned := make([]*Curve, len(curves))
	copy(owned, curves)
	return &Population{curves: owned, generation: generation}, nil
}

// Size returns the number of curves.
func (p *Population) Size() int { return len(p.curves) }

// Generation returns the generation number.
func (p *Population) Generation() int { return p.generation }

// Degree returns the degree shared by every curve.
func (p *Population) Degree() int { return p.curves[0].Degree() }

// Curve returns the i-th curve.
func (p *Population) Curve(i int) *Curve { return p.curves[i] }

// Curves returns the curves. The slice is a copy; the curves are not.
func (p *Population) Curves() []*Curve {
	out := make([]*Curve, len(p.curves))
	copy(out, p.curves)
	return out
}

// Fitnesses returns the cached fitness of every curve (0 for unscored curves).
func (p *Population) Fitnesses() []float64 {
	out := make([]float64, len(p.curves))
	for i, c := range p.curves {
		out[i], _ = c.Fitness()
	}
	return out
}

// TotalFitness sums the cached fitness values.
func (p *Population) TotalFitness() float64 {
	total := 0.0
	for _, c := range p.curves {
		f, _ := c.Fitness()
		total += f
	}
	return total
}

// findBestCurve finds the curve with the highest fitness; ties keep the earliest.
func (p *Population) findBestCurve() *Curve {
	var best *Curve
	for _, c := range p.curves {
		if best == nil {
			best = c
			continue
		}
		f, _ := c.Fitness()
		bf, _ := best.Fitness()
		if f > bf {
			best = c
		}
	}
	return best
}
