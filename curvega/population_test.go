package curvega

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomPopulation(t *testing.T) {
	pop, err := NewRandomPopulation(25, 3, -10, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 25, pop.Size())
	assert.Equal(t, 0, pop.Generation())
	assert.Equal(t, 3, pop.Degree())
	for _, c := range pop.Curves() {
		assert.Equal(t, 3, c.Degree())
	}

	_, err = NewRandomPopulation(0, 3, -10, 10, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewPopulationValidates(t *testing.T) {
	line, err := NewCurveFromValues([]int{1, 1}, -5, 5)
	require.NoError(t, err)
	quad, err := NewCurveFromValues([]int{1, 1, 1}, -5, 5)
	require.NoError(t, err)

	_, err = NewPopulation(nil, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewPopulation([]*Curve{line, quad}, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewPopulation([]*Curve{line, nil}, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewPopulation([]*Curve{line}, -1)
	assert.ErrorIs(t, err, ErrConfiguration)

	curves := []*Curve{line, line.Clone()}
	pop, err := NewPopulation(curves, 4)
	require.NoError(t, err)
	curves[0] = quad
	assert.Equal(t, 1, pop.Degree())
	assert.Equal(t, 4, pop.Generation())
}

func TestPopulationFitness(t *testing.T) {
	pop := scoredPopulation(t, 0.25, 0.75, 0.75, 0)

	assert.Equal(t, []float64{0.25, 0.75, 0.75, 0}, pop.Fitnesses())
	assert.InDelta(t, 1.75, pop.TotalFitness(), 1e-12)
	assert.Same(t, pop.Curve(1), pop.findBestCurve())
}
