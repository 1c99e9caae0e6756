package curvega

// BestTracker records the best curve seen so far in a run: the generation it
// belonged to, its fitness and a copy of its coefficients.
type BestTracker struct {
	Generation   int     `json:"generation"`
	Fitness      float64 `json:"fitness"`
	Coefficients []int   `json:"coefficients"`
	found        bool
}

// Observe records c if it is the first scored curve seen or strictly fitter than the
// recorded best. Ties keep the earlier record. Reports whether the record changed.
func (t *BestTracker) Observe(c *Curve, generation int) bool {
	f, scored := c.Fitness()
	if !scored {
		return false
	}
	if t.found && f <= t.Fitness {
		return false
	}
	t.Generation = generation
	t.Fitness = f
	t.Coefficients = c.Coefficients()
	t.found = true
	return true
}

// Found reports whether any curve has been recorded.
func (t *BestTracker) Found() bool { return t.found }

// Snapshot returns an independent copy.
func (t *BestTracker) Snapshot() BestTracker {
	s := *t
	s.Coefficients = append([]int(nil), t.Coefficients...)
	return s
}
