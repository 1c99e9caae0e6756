package curvega

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Selector builds a per-generation parent picker from an evaluated population.
type Selector interface {
	Name() string
	Prepare(pop *Population) (Picker, error)
}

// Picker draws one parent. It is only valid for the generation it was prepared from.
type Picker interface {
	Pick(rng *rand.Rand) *Curve
}

var selectors = map[string]func() Selector{}

func init() {
	RegisterSelector("cumulative", func() Selector { return CumulativeSelector{} })
	RegisterSelector("mating_pool", func() Selector { return MatingPoolSelector{} })
}

// RegisterSelector adds a selector constructor to the registry.
func RegisterSelector(name string, constructor func() Selector) {
	selectors[strings.ToLower(name)] = constructor
}

// NewSelector returns a selector by name.
func NewSelector(name string) (Selector, error) {
	ctor, ok := selectors[strings.ToLower(name)]
	if !ok {
		return nil, configErrorf("selection.strategy", "unknown strategy %q (available: %v)", name, SelectorNames())
	}
	return ctor(), nil
}

// SelectorNames returns all registered selector names, sorted.
func SelectorNames() []string {
	return sortedKeys(selectors)
}

// CumulativeSelector draws r uniformly from [0, total fitness) and walks the running
// sum of fitness until it exceeds r. No pool is materialized.
type CumulativeSelector struct{}

func (CumulativeSelector) Name() string { return "cumulative" }

func (CumulativeSelector) Prepare(pop *Population) (Picker, error) {
	if pop == nil || pop.Size() == 0 {
		return nil, configErrorf("run.population_size", "cannot select from an empty population")
	}
	cumulative := make([]float64, pop.Size())
	total := 0.0
	fallback := -1
	for i, c := range pop.curves {
		f, _ := c.Fitness()
		if f > 0 {
			total += f
			fallback = i
		}
		cumulative[i] = total
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return uniformPicker{curves: pop.curves}, nil
	}
	return &cumulativePicker{
		curves:     pop.curves,
		cumulative: cumulative,
		total:      total,
		fallback:   fallback,
	}, nil
}

type cumulativePicker struct {
	curves     []*Curve
	cumulative []float64
	total      float64
	fallback   int // last curve with positive fitness
}

func (p *cumulativePicker) Pick(rng *rand.Rand) *Curve {
	r := rng.Float64() * p.total
	// Strictly greater: a zero-fitness curve never raises the running sum, so it can
	// never be the first index to pass r.
	idx := sort.Search(len(p.cumulative), func(i int) bool { return p.cumulative[i] > r })
	if idx == len(p.cumulative) {
		return p.curves[p.fallback]
	}
	return p.curves[idx]
}

// MatingPoolSelector materializes a pool of approximately the population's size in
// which every curve appears round(fitness / total * poolSize) times; parents are drawn
// uniformly from the pool. Zero-fitness curves are excluded by construction.
type MatingPoolSelector struct{}

func (MatingPoolSelector) Name() string { return "mating_pool" }

func (MatingPoolSelector) Prepare(pop *Population) (Picker, error) {
	if pop == nil || pop.Size() == 0 {
		return nil, configErrorf("run.population_size", "cannot select from an empty population")
	}
	total := pop.TotalFitness()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return uniformPicker{curves: pop.curves}, nil
	}

	poolSize := pop.Size()
	matingPool := make([]*Curve, 0, poolSize)
	for _, c := range pop.curves {
		f, _ := c.Fitness()
		copies := int(math.Round(f / total * float64(poolSize)))
		for j := 0; j < copies; j++ {
			matingPool = append(matingPool, c)
		}
	}
	if len(matingPool) == 0 {
		return uniformPicker{curves: pop.curves}, nil
	}
	return uniformPicker{curves: matingPool}, nil
}

// uniformPicker picks uniformly at random. It also serves as the fallback when the
// population's total fitness is zero.
type uniformPicker struct {
	curves []*Curve
}

func (p uniformPicker) Pick(rng *rand.Rand) *Curve {
	return p.curves[rng.Intn(len(p.curves))]
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
