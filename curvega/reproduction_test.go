package curvega

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReproductionResolvesStrategies(t *testing.T) {
	config := DefaultConfig()
	config.Selection.Strategy = "mating_pool"
	config.Crossover.Strategy = "uniform"
	config.Mutation.Strategy = "bitmask"

	r, err := NewReproduction(config, nil)
	require.NoError(t, err)
	assert.Equal(t, "mating_pool", r.Selector.Name())
	assert.Equal(t, "uniform", r.Crossover.Name())
	assert.Equal(t, "bitmask", r.Mutator.Name())

	config.Mutation.Strategy = "nope"
	_, err = NewReproduction(config, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	positive, err := NewRandomPointSet(20, true, testBounds, rng)
	require.NoError(t, err)
	negative, err := NewRandomPointSet(20, false, testBounds, rng)
	require.NoError(t, err)
	evaluator, err := NewEvaluator(positive, negative, 1)
	require.NoError(t, err)

	config := DefaultConfig()
	r, err := NewReproduction(config, evaluator)
	require.NoError(t, err)

	pop, err := NewRandomPopulation(10, 2, -127, 127, rng)
	require.NoError(t, err)
	require.NoError(t, evaluator.EvaluatePopulation(pop))
	picker, err := r.Selector.Prepare(pop)
	require.NoError(t, err)

	var best BestTracker
	children, err := r.Spawn(picker, 10, 1, rng, &best)
	require.NoError(t, err)
	require.Len(t, children, 10)

	top := 0.0
	for _, c := range children {
		assert.Equal(t, 2, c.Degree())
		f, scored := c.Fitness()
		require.True(t, scored)
		top = max(top, f)
	}
	require.True(t, best.Found())
	assert.Equal(t, 1, best.Generation)
	assert.Equal(t, top, best.Fitness)

	_, err = r.Spawn(picker, 0, 1, rng, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}
