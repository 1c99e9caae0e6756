package curvega

import (
	"fmt"
	"math"
	"math/rand"
)

// maxBitWidth is the widest two's-complement encoding a coefficient may use.
const maxBitWidth = 63

// Coefficient is one gene: a bounded integer stored with an exact two's-complement
// bit width so mutation can flip individual bits of its encoding.
// Invariant: min <= value <= max.
type Coefficient struct {
	value    int
	bitWidth uint
	min      int
	max      int
}

// BitWidthFor returns the smallest two's-complement width able to represent both bounds.
func BitWidthFor(minVal, maxVal int) uint {
	lo, hi := int64(minVal), int64(maxVal)
	for w := uint(1); w < 64; w++ {
		limit := int64(1) << (w - 1)
		if lo >= -limit && hi <= limit-1 {
			return w
		}
	}
	return 64
}

// NewCoefficient creates a gene bounded to [minVal, maxVal]; value is clamped into range.
func NewCoefficient(value, minVal, maxVal int) (Coefficient, error) {
	if maxVal < minVal {
		return Coefficient{}, configErrorf("coefficient", "max %d is less than min %d", maxVal, minVal)
	}
	width := BitWidthFor(minVal, maxVal)
	if width > maxBitWidth {
		return Coefficient{}, configErrorf("coefficient", "bounds [%d, %d] need %d bits", minVal, maxVal, width)
	}
	c := Coefficient{bitWidth: width, min: minVal, max: maxVal}
	c.Set(value)
	return c, nil
}

// randomCoefficient draws a value uniformly from [minVal, maxVal]. Bounds must already be
// valid, so the span fits in 63 bits.
func randomCoefficient(minVal, maxVal int, rng *rand.Rand) Coefficient {
	span := uint64(int64(maxVal)) - uint64(int64(minVal))
	var offset int64
	if span >= math.MaxInt64 {
		offset = rng.Int63()
	} else {
		offset = rng.Int63n(int64(span) + 1)
	}
	return Coefficient{
		value:    int(int64(minVal) + offset),
		bitWidth: BitWidthFor(minVal, maxVal),
		min:      minVal,
		max:      maxVal,
	}
}

// Value returns the gene's integer value.
func (c *Coefficient) Value() int { return c.value }

// Min returns the lower bound.
func (c *Coefficient) Min() int { return c.min }

// Max returns the upper bound.
func (c *Coefficient) Max() int { return c.max }

// BitWidth returns the width of the encoding.
func (c *Coefficient) BitWidth() uint { return c.bitWidth }

// Set stores v clamped into [min, max].
func (c *Coefficient) Set(v int) {
	c.value = clampInt(v, c.min, c.max)
}

// Bits returns the two's-complement encoding of the value, masked to the bit width.
func (c *Coefficient) Bits() uint64 {
	return uint64(int64(c.value)) & c.widthMask()
}

// Flip XORs the encoding with mask (restricted to the bit width), decodes the result
// and clamps it back into [min, max]. A zero mask flips every bit.
func (c *Coefficient) Flip(mask uint64) {
	wm := c.widthMask()
	mask &= wm
	if mask == 0 {
		mask = wm
	}
	c.Set(c.decode(c.Bits() ^ mask))
}

// FlipBit flips bit i of the encoding (0 = least significant) and clamps.
func (c *Coefficient) FlipBit(i uint) {
	if i >= c.bitWidth {
		return
	}
	c.Set(c.decode(c.Bits() ^ (uint64(1) << i)))
}

func (c *Coefficient) String() string {
	return fmt.Sprintf("Coefficient(%d in [%d, %d], %d bits)", c.value, c.min, c.max, c.bitWidth)
}

func (c *Coefficient) widthMask() uint64 {
	return (uint64(1) << c.bitWidth) - 1
}

// decode sign-extends a bitWidth-wide encoding.
func (c *Coefficient) decode(bits uint64) int {
	bits &= c.widthMask()
	if bits&(uint64(1)<<(c.bitWidth-1)) != 0 {
		return int(int64(bits) - int64(uint64(1)<<c.bitWidth))
	}
	return int(bits)
}

// clampInt restricts a value to a given range [minVal, maxVal].
func clampInt(value, minVal, maxVal int) int {
	return max(minVal, min(value, maxVal))
}
