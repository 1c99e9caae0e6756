package curvega

import (
	"math/rand"
	"strings"
)

// Mutator perturbs a freshly created child in place. Implementations keep every
// coefficient inside its bounds and never change the degree or bit width.
type Mutator interface {
	Name() string
	Mutate(c *Curve, rng *rand.Rand)
}

var mutators = map[string]func(MutationConfig) (Mutator, error){}

func init() {
	RegisterMutator("bitflip", func(mc MutationConfig) (Mutator, error) {
		return BitFlipMutator{Rate: mc.Rate}, nil
	})
	RegisterMutator("bitmask", func(mc MutationConfig) (Mutator, error) {
		mask, err := mc.BitMask()
		if err != nil {
			return nil, err
		}
		return BitmaskMutator{Rate: mc.Rate, Mask: mask}, nil
	})
}

// RegisterMutator adds a mutator constructor to the registry.
func RegisterMutator(name string, constructor func(MutationConfig) (Mutator, error)) {
	mutators[strings.ToLower(name)] = constructor
}

// NewMutator builds the mutator named by mc.Strategy.
func NewMutator(mc MutationConfig) (Mutator, error) {
	ctor, ok := mutators[strings.ToLower(mc.Strategy)]
	if !ok {
		return nil, configErrorf("mutation.strategy", "unknown strategy %q (available: %v)", mc.Strategy, MutatorNames())
	}
	return ctor(mc)
}

// MutatorNames returns all registered mutator names, sorted.
func MutatorNames() []string {
	return sortedKeys(mutators)
}

// BitFlipMutator flips one uniformly chosen bit of each gene it selects.
type BitFlipMutator struct {
	Rate float64
}

func (BitFlipMutator) Name() string { return "bitflip" }

func (m BitFlipMutator) Mutate(c *Curve, rng *rand.Rand) {
	changed := false
	for i := range c.coefficients {
		if rng.Float64() >= m.Rate {
			continue
		}
		coef := &c.coefficients[i]
		coef.FlipBit(uint(rng.Intn(int(coef.bitWidth))))
		changed = true
	}
	if changed {
		c.invalidate()
	}
}

// BitmaskMutator flips the bits selected by Mask in each gene it selects.
// A zero mask flips every bit of the encoding.
type BitmaskMutator struct {
	Rate float64
	Mask uint64
}

func (BitmaskMutator) Name() string { return "bitmask" }

func (m BitmaskMutator) Mutate(c *Curve, rng *rand.Rand) {
	changed := false
	for i := range c.coefficients {
		if rng.Float64() >= m.Rate {
			continue
		}
		c.coefficients[i].Flip(m.Mask)
		changed = true
	}
	if changed {
		c.invalidate()
	}
}
