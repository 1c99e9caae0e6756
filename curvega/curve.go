package curvega

import (
	"fmt"
	"math/rand"
	"strings"
)

// Curve is the genome: the coefficients of a polynomial, highest-order term first,
// plus a cached fitness score. A Curve exclusively owns its coefficients.
type Curve struct {
	coefficients []Coefficient
	fitness      float64
	scored       bool
}

// NewCurve creates an unscored curve from explicit coefficients (copied).
// At least two coefficients are required (degree >= 1), each created by NewCoefficient.
func NewCurve(coefficients []Coefficient) (*Curve, error) {
	if len(coefficients) < 2 {
		return nil, configErrorf("curve.degree", "must be at least 1, got %d", len(coefficients)-1)
	}
	for i := range coefficients {
		coef := &coefficients[i]
		if coef.bitWidth == 0 || coef.bitWidth > maxBitWidth || coef.bitWidth != BitWidthFor(coef.min, coef.max) {
			return nil, configErrorf("coefficient", "coefficient %d was not built with NewCoefficient", i)
		}
	}
	c := &Curve{coefficients: make([]Coefficient, len(coefficients))}
	copy(c.coefficients, coefficients)
	return c, nil
}

// NewCurveFromValues builds a curve whose coefficients all share the bounds [minVal, maxVal].
func NewCurveFromValues(values []int, minVal, maxVal int) (*Curve, error) {
	coefficients := make([]Coefficient, len(values))
	for i, v := range values {
		coef, err := NewCoefficient(v, minVal, maxVal)
		if err != nil {
			return nil, err
		}
		coefficients[i] = coef
	}
	return NewCurve(coefficients)
}

// NewRandomCurve draws every coefficient uniformly from [minVal, maxVal].
func NewRandomCurve(degree, minVal, maxVal int, rng *rand.Rand) (*Curve, error) {
	if degree < 1 {
		return nil, configErrorf("curve.degree", "must be at least 1, got %d", degree)
	}
	if maxVal < minVal {
		return nil, configErrorf("curve.coefficient_max", "cannot be less than coefficient_min")
	}
	if BitWidthFor(minVal, maxVal) > maxBitWidth {
		return nil, configErrorf("curve.coefficient_min", "bounds need more than %d bits", maxBitWidth)
	}
	c := &Curve{coefficients: make([]Coefficient, degree+1)}
	for i := range c.coefficients {
		c.coefficients[i] = randomCoefficient(minVal, maxVal, rng)
	}
	return c, nil
}

// Degree returns the polynomial degree (number of coefficients minus one).
func (c *Curve) Degree() int { return len(c.coefficients) - 1 }

// Len returns the number of genes.
func (c *Curve) Len() int { return len(c.coefficients) }

// Coefficient returns a pointer to gene i so operators can mutate it in place.
func (c *Curve) Coefficient(i int) *Coefficient { return &c.coefficients[i] }

// Coefficients returns a snapshot of the coefficient values, highest order first.
func (c *Curve) Coefficients() []int {
	values := make([]int, len(c.coefficients))
	for i := range c.coefficients {
		values[i] = c.coefficients[i].value
	}
	return values
}

// Evaluate returns the polynomial's value at x (Horner's method).
func (c *Curve) Evaluate(x float64) float64 {
	y := 0.0
	for i := range c.coefficients {
		y = y*x + float64(c.coefficients[i].value)
	}
	return y
}

// Fitness returns the cached score and whether the curve has been scored since its
// last change.
func (c *Curve) Fitness() (float64, bool) { return c.fitness, c.scored }

// SetFitness caches a fitness score.
func (c *Curve) SetFitness(f float64) {
	c.fitness = f
	c.scored = true
}

// invalidate drops the cached score after the genome changed.
func (c *Curve) invalidate() {
	c.fitness = 0
	c.scored = false
}

// Clone creates a deep copy, including the cached score.
func (c *Curve) Clone() *Curve {
	clone := &Curve{
		coefficients: make([]Coefficient, len(c.coefficients)),
		fitness:      c.fitness,
		scored:       c.scored,
	}
	copy(clone.coefficients, c.coefficients)
	return clone
}

// String renders the polynomial, e.g. "3x^2 - x + 7".
func (c *Curve) String() string {
	return FormatPolynomial(c.Coefficients())
}

// FormatPolynomial renders coefficients (highest order first) in conventional notation.
func FormatPolynomial(coefficients []int) string {
	var b strings.Builder
	degree := len(coefficients) - 1
	for i, a := range coefficients {
		power := degree - i
		if a == 0 {
			continue
		}
		switch {
		case b.Len() == 0 && a < 0:
			b.WriteString("-")
		case b.Len() > 0 && a < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		abs := a
		if abs < 0 {
			abs = -abs
		}
		if abs != 1 || power == 0 {
			fmt.Fprintf(&b, "%d", abs)
		}
		switch power {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			fmt.Fprintf(&b, "x^%d", power)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// EvaluatePolynomial evaluates integer coefficients (highest order first) at x with
// Horner's method.
func EvaluatePolynomial(coefficients []int, x float64) float64 {
	y := 0.0
	for _, a := range coefficients {
		y = y*x + float64(a)
	}
	return y
}
