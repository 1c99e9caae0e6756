package curvega

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize(3, []float64{0.5, 1, 0})
	assert.Equal(t, 3, s.Generation)
	assert.Equal(t, 1.0, s.Best)
	assert.Equal(t, 0.0, s.Worst)
	assert.InDelta(t, 0.5, s.Average, 1e-12)
	assert.InDelta(t, math.Sqrt(0.25), s.Stdev, 1e-12)

	single := Summarize(0, []float64{0.7})
	assert.Equal(t, 0.7, single.Best)
	assert.Equal(t, 0.7, single.Worst)
	assert.Zero(t, single.Stdev)

	assert.Equal(t, GenerationStats{Generation: 2}, Summarize(2, nil))
}

func TestHistorySeries(t *testing.T) {
	var h History
	_, ok := h.Last()
	assert.False(t, ok)

	h.Append(Summarize(0, []float64{0.2, 0.4}))
	h.Append(Summarize(1, []float64{0.6, 1}))

	assert.Equal(t, 2, h.Len())
	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, 1, last.Generation)

	assert.Equal(t, []SeriesPoint{{0, 0.4}, {1, 1}}, h.BestSeries())
	assert.Equal(t, []SeriesPoint{{0, 0.2}, {1, 0.6}}, h.WorstSeries())
	avg := h.AverageSeries()
	assert.InDelta(t, 0.3, avg[0].Value, 1e-12)
	assert.InDelta(t, 0.8, avg[1].Value, 1e-12)

	gens := h.Generations()
	gens[0].Best = 99
	assert.Equal(t, 0.4, h.BestSeries()[0].Value)
}
