package curvega

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	flat, err := NewCurveFromValues([]int{0, 0}, -5, 5)
	require.NoError(t, err)

	positive := NewPointSet([]Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, true)
	negative := NewPointSet([]Point{{X: 0, Y: -1}, {X: 2, Y: 5}}, false)

	f, err := Score(flat, positive, negative)
	require.NoError(t, err)
	assert.Equal(t, 0.75, f)

	cached, scored := flat.Fitness()
	assert.True(t, scored)
	assert.Equal(t, 0.75, cached)
}

func TestScoreBoundaryPoints(t *testing.T) {
	line, err := NewCurveFromValues([]int{1, 0}, -5, 5)
	require.NoError(t, err)

	// On the curve counts as above: correct for positive, wrong for negative.
	on := []Point{{X: 2, Y: 2}}
	f, err := Score(line, NewPointSet(on, true), nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)

	f, err = Score(line, nil, NewPointSet(on, false))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)
}

func TestScoreEmptySets(t *testing.T) {
	c, err := NewCurveFromValues([]int{1, 1}, -5, 5)
	require.NoError(t, err)

	_, err = Score(c, NewPointSet(nil, true), NewPointSet(nil, false))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewEvaluator(nil, nil, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestScoreIsInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	positive, err := NewRandomPointSet(50, true, testBounds, rng)
	require.NoError(t, err)
	negative, err := NewRandomPointSet(30, false, testBounds, rng)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		c, err := NewRandomCurve(3, -127, 127, rng)
		require.NoError(t, err)
		f, err := Score(c, positive, negative)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestEvaluatePopulationParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	positive, err := NewRandomPointSet(100, true, testBounds, rng)
	require.NoError(t, err)
	negative, err := NewRandomPointSet(100, false, testBounds, rng)
	require.NoError(t, err)

	pop, err := NewRandomPopulation(64, 2, -127, 127, rng)
	require.NoError(t, err)
	clones := make([]*Curve, pop.Size())
	for i, c := range pop.Curves() {
		clones[i] = c.Clone()
	}
	sequentialPop, err := NewPopulation(clones, 0)
	require.NoError(t, err)

	parallel, err := NewEvaluator(positive, negative, 8)
	require.NoError(t, err)
	sequential, err := NewEvaluator(positive, negative, 1)
	require.NoError(t, err)

	require.NoError(t, parallel.EvaluatePopulation(pop))
	require.NoError(t, sequential.EvaluatePopulation(sequentialPop))

	assert.Equal(t, sequentialPop.Fitnesses(), pop.Fitnesses())
	for _, c := range pop.Curves() {
		_, scored := c.Fitness()
		assert.True(t, scored)
	}
}

func TestEvaluatePopulationSkipsScoredCurves(t *testing.T) {
	c, err := NewCurveFromValues([]int{0, 0}, -5, 5)
	require.NoError(t, err)
	c.SetFitness(0.123)
	pop, err := NewPopulation([]*Curve{c}, 0)
	require.NoError(t, err)

	e, err := NewEvaluator(NewPointSet([]Point{{X: 0, Y: 1}}, true), nil, 1)
	require.NoError(t, err)
	require.NoError(t, e.EvaluatePopulation(pop))

	f, _ := c.Fitness()
	assert.Equal(t, 0.123, f)
}
