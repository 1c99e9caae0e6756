package curvega

import (
	"math/rand"
)

// maxSampleAttempts bounds rejection sampling against a reference curve.
const maxSampleAttempts = 10000

// Point is an immutable 2-D coordinate. Its class label comes from the PointSet holding it.
type Point struct {
	X float64
	Y float64
}

// XYPair is the (x, y) export shape of a point.
type XYPair struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the rectangle random points are sampled from (inclusive).
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// PointSet is a fixed-size, read-only collection of points sharing one label.
type PointSet struct {
	points   []Point
	positive bool
}

// NewPointSet builds a set from an explicit list. The list is copied.
func NewPointSet(points []Point, positive bool) *PointSet {
	ps := &PointSet{
		points:   make([]Point, len(points)),
		positive: positive,
	}
	copy(ps.points, points)
	return ps
}

// NewRandomPointSet samples n points uniformly inside bounds.
func NewRandomPointSet(n int, positive bool, bounds Bounds, rng *rand.Rand) (*PointSet, error) {
	if n < 0 {
		return nil, configErrorf("points", "point count cannot be negative, got %d", n)
	}
	if bounds.MaxX < bounds.MinX || bounds.MaxY < bounds.MinY {
		return nil, configErrorf("points", "max bounds cannot be less than min bounds")
	}
	ps := &PointSet{points: make([]Point, n), positive: positive}
	for i := range ps.points {
		ps.points[i] = Point{
			X: uniform(rng, bounds.MinX, bounds.MaxX),
			Y: uniform(rng, bounds.MinY, bounds.MaxY),
		}
	}
	return ps, nil
}

// NewReferencePointSet samples n points inside bounds that lie on the set's side of the
// reference polynomial: on or above it for a positive set, strictly below for a negative one.
func NewReferencePointSet(n int, positive bool, bounds Bounds, reference []int, rng *rand.Rand) (*PointSet, error) {
	if len(reference) < 2 {
		return nil, configErrorf("points.reference", "needs at least two coefficients")
	}
	if n < 0 {
		return nil, configErrorf("points", "point count cannot be negative, got %d", n)
	}
	if bounds.MaxX < bounds.MinX || bounds.MaxY < bounds.MinY {
		return nil, configErrorf("points", "max bounds cannot be less than min bounds")
	}

	ps := &PointSet{points: make([]Point, 0, n), positive: positive}
	for attempts := 0; len(ps.points) < n; attempts++ {
		if attempts >= maxSampleAttempts*max(n, 1) {
			return nil, configErrorf("points.reference", "reference curve leaves no room for %s points inside the bounds", labelName(positive))
		}
		x := uniform(rng, bounds.MinX, bounds.MaxX)
		fx := EvaluatePolynomial(reference, x)

		lo, hi := bounds.MinY, bounds.MaxY
		if positive {
			lo = max(lo, fx)
			if lo > hi {
				continue
			}
		} else {
			hi = min(hi, fx)
			if hi <= lo {
				continue
			}
		}
		y := uniform(rng, lo, hi)
		if positive && y < fx || !positive && y >= fx {
			continue
		}
		ps.points = append(ps.points, Point{X: x, Y: y})
	}
	return ps, nil
}

// Len returns the number of points.
func (ps *PointSet) Len() int { return len(ps.points) }

// At returns the i-th point.
func (ps *PointSet) At(i int) Point { return ps.points[i] }

// IsPositive reports the label carried by this set.
func (ps *PointSet) IsPositive() bool { return ps.positive }

// Points returns a copy of the points.
func (ps *PointSet) Points() []Point {
	out := make([]Point, len(ps.points))
	copy(out, ps.points)
	return out
}

// XY returns the points in export order as (x, y) pairs.
func (ps *PointSet) XY() []XYPair {
	out := make([]XYPair, len(ps.points))
	for i, p := range ps.points {
		out[i] = XYPair{X: p.X, Y: p.Y}
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func labelName(positive bool) string {
	if positive {
		return "positive"
	}
	return "negative"
}
