package curvega

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes the fitness distribution of one generation.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Worst      float64 `json:"worst"`
	Average    float64 `json:"average"`
	Stdev      float64 `json:"stdev"`
}

// SeriesPoint is one (index, value) sample of a per-generation series.
type SeriesPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Summarize computes best/worst/average/stdev of a generation's fitness values.
// An empty slice yields zero statistics.
func Summarize(generation int, fitnesses []float64) GenerationStats {
	s := GenerationStats{Generation: generation}
	if len(fitnesses) == 0 {
		return s
	}
	s.Best = floats.Max(fitnesses)
	s.Worst = floats.Min(fitnesses)
	s.Average = stat.Mean(fitnesses, nil)
	if len(fitnesses) > 1 {
		s.Stdev = stat.StdDev(fitnesses, nil)
	}
	return s
}

// History is the ordered list of per-generation statistics of a run.
type History struct {
	generations []GenerationStats
}

// Append adds the statistics of the next generation.
func (h *History) Append(s GenerationStats) {
	h.generations = append(h.generations, s)
}

// Len returns the number of recorded generations.
func (h *History) Len() int { return len(h.generations) }

// Generations returns a copy of the recorded statistics.
func (h *History) Generations() []GenerationStats {
	out := make([]GenerationStats, len(h.generations))
	copy(out, h.generations)
	return out
}

// Last returns the most recent statistics.
func (h *History) Last() (GenerationStats, bool) {
	if len(h.generations) == 0 {
		return GenerationStats{}, false
	}
	return h.generations[len(h.generations)-1], true
}

// BestSeries returns the best fitness per generation.
func (h *History) BestSeries() []SeriesPoint {
	return h.series(func(s GenerationStats) float64 { return s.Best })
}

// WorstSeries returns the worst fitness per generation.
func (h *History) WorstSeries() []SeriesPoint {
	return h.series(func(s GenerationStats) float64 { return s.Worst })
}

// AverageSeries returns the average fitness per generation.
func (h *History) AverageSeries() []SeriesPoint {
	return h.series(func(s GenerationStats) float64 { return s.Average })
}

func (h *History) series(value func(GenerationStats) float64) []SeriesPoint {
	out := make([]SeriesPoint, len(h.generations))
	for i, s := range h.generations {
		out[i] = SeriesPoint{Index: s.Generation, Value: value(s)}
	}
	return out
}
