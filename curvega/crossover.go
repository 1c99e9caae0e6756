package curvega

import (
	"math"
	"math/rand"
	"strings"
)

// Crossover combines two parents of equal degree into a new, unscored child.
type Crossover interface {
	Name() string
	Cross(parent1, parent2 *Curve, mixRate float64, rng *rand.Rand) (*Curve, error)
}

var crossovers = map[string]func() Crossover{}

func init() {
	RegisterCrossover("single_point", func() Crossover { return SinglePointCrossover{} })
	RegisterCrossover("uniform", func() Crossover { return UniformCrossover{} })
}

// RegisterCrossover adds a crossover constructor to the registry.
func RegisterCrossover(name string, constructor func() Crossover) {
	crossovers[strings.ToLower(name)] = constructor
}

// NewCrossover returns a crossover policy by name.
func NewCrossover(name string) (Crossover, error) {
	ctor, ok := crossovers[strings.ToLower(name)]
	if !ok {
		return nil, configErrorf("crossover.strategy", "unknown strategy %q (available: %v)", name, CrossoverNames())
	}
	return ctor(), nil
}

// CrossoverNames returns all registered crossover names, sorted.
func CrossoverNames() []string {
	return sortedKeys(crossovers)
}

// SinglePointCrossover cuts both parents at round(mixRate * (degree+1)): genes before
// the cut come from parent1, genes at or after it from parent2.
type SinglePointCrossover struct{}

func (SinglePointCrossover) Name() string { return "single_point" }

func (SinglePointCrossover) Cross(parent1, parent2 *Curve, mixRate float64, _ *rand.Rand) (*Curve, error) {
	if err := checkParents(parent1, parent2); err != nil {
		return nil, err
	}
	n := parent1.Len()
	cut := clampInt(int(math.Round(mixRate*float64(n))), 0, n)

	child := &Curve{coefficients: make([]Coefficient, n)}
	copy(child.coefficients[:cut], parent1.coefficients[:cut])
	copy(child.coefficients[cut:], parent2.coefficients[cut:])
	return child, nil
}

// UniformCrossover takes each gene from parent2 with probability mixRate, otherwise
// from parent1.
type UniformCrossover struct{}

func (UniformCrossover) Name() string { return "uniform" }

func (UniformCrossover) Cross(parent1, parent2 *Curve, mixRate float64, rng *rand.Rand) (*Curve, error) {
	if err := checkParents(parent1, parent2); err != nil {
		return nil, err
	}
	child := &Curve{coefficients: make([]Coefficient, parent1.Len())}
	for i := range child.coefficients {
		if rng.Float64() < mixRate {
			child.coefficients[i] = parent2.coefficients[i]
		} else {
			child.coefficients[i] = parent1.coefficients[i]
		}
	}
	return child, nil
}

func checkParents(parent1, parent2 *Curve) error {
	if parent1 == nil || parent2 == nil {
		return configErrorf("crossover", "both parents are required")
	}
	if parent1.Degree() != parent2.Degree() {
		return configErrorf("curve.degree", "cannot cross degree %d with degree %d", parent1.Degree(), parent2.Degree())
	}
	return nil
}
