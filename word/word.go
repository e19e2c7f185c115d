package word

import (
	"fmt"
)

const (
	// HALF_SIGN is the sign bit of a half.
	HALF_SIGN = uint16(0x8000)
	// HALF_MAX is the largest half magnitude (one's complement).
	HALF_MAX = 0x7fff
	// HALF_SCALE converts between a fraction and its fixed-point magnitude.
	HALF_SCALE = 32768

	// ZERO_PLUS and ZERO_MINUS are the two representations of zero.
	ZERO_PLUS  = Half(0x0000)
	ZERO_MINUS = Half(0xffff)
)

// Half is the raw one's-complement bit pattern of a 16-bit word half.
type Half uint16

// Word is a 32-bit machine word. The left half occupies bits 31..16,
// the right half bits 15..0.
type Word uint32

// HalfFromInt encodes a signed magnitude in [-HALF_MAX, HALF_MAX] as a half.
func HalfFromInt(value int) (h Half, err error) {
	if value > HALF_MAX || value < -HALF_MAX {
		err = ErrRange(value)
		return
	}

	h = halfFromInt(value)
	return
}

// halfFromInt encodes without a range check. Negative values are the
// bitwise complement of their magnitude.
func halfFromInt(value int) (h Half) {
	if value < 0 {
		h = Half(^uint16(-value))
	} else {
		h = Half(value)
	}
	return
}

// HalfFromFraction quantizes a fraction in (-1, +1) to a half, rounding
// toward zero.
func HalfFromFraction(fraction float64) (h Half, err error) {
	if fraction >= 1.0 || fraction <= -1.0 {
		err = ErrRange(fraction)
		return
	}

	h = halfFromInt(int(fraction * HALF_SCALE))
	return
}

// Int decodes the half to its signed magnitude. Both zero patterns
// decode to 0.
func (h Half) Int() (value int) {
	if h.IsNegative() {
		value = -int(^uint16(h))
	} else {
		value = int(uint16(h))
	}
	return
}

// Fraction decodes the half to its fractional value.
func (h Half) Fraction() float64 {
	return float64(h.Int()) / HALF_SCALE
}

// IsNegative reports whether the sign bit is set. Note that -0 is
// negative by this test, matching the hardware sign comparator.
func (h Half) IsNegative() bool {
	return (uint16(h) & HALF_SIGN) != 0
}

// Negate returns the one's complement of the half.
func (h Half) Negate() Half {
	return Half(^uint16(h))
}

// Equal compares two halves numerically. +0 and -0 are equal here but
// remain distinct bit patterns.
func (h Half) Equal(o Half) bool {
	return h.Int() == o.Int()
}

// AddHalf adds two halves under one's-complement rules: a carry out of
// the high bit is shifted back around into the low bit.
func AddHalf(a, b Half) (sum Half) {
	total := uint32(uint16(a)) + uint32(uint16(b))
	if total > 0xffff {
		total = (total & 0xffff) + 1
		total &= 0xffff
	}
	sum = Half(uint16(total))
	return
}

// SubHalf subtracts b from a by adding the complement of b.
func SubHalf(a, b Half) Half {
	return AddHalf(a, b.Negate())
}

// MulHalf multiplies two fractional halves, truncating the product
// toward zero back into half precision.
func MulHalf(a, b Half) Half {
	product := a.Int() * b.Int()
	return halfFromInt(product / HALF_SCALE)
}

// Join packs two halves into a word. Total; every pattern is valid.
func Join(left, right Half) Word {
	return Word(uint32(uint16(left))<<16 | uint32(uint16(right)))
}

// FromInts builds a word from two signed half magnitudes.
func FromInts(left, right int) (w Word, err error) {
	lh, err := HalfFromInt(left)
	if err != nil {
		return
	}
	rh, err := HalfFromInt(right)
	if err != nil {
		return
	}

	w = Join(lh, rh)
	return
}

// FromFractions builds a word from two fractions in (-1, +1).
func FromFractions(left, right float64) (w Word, err error) {
	lh, err := HalfFromFraction(left)
	if err != nil {
		return
	}
	rh, err := HalfFromFraction(right)
	if err != nil {
		return
	}

	w = Join(lh, rh)
	return
}

// Split returns the two halves of the word. Inverse of Join.
func (w Word) Split() (left, right Half) {
	return w.Left(), w.Right()
}

// Left returns the left (bits 31..16) half.
func (w Word) Left() Half {
	return Half(uint32(w) >> 16)
}

// Right returns the right (bits 15..0) half.
func (w Word) Right() Half {
	return Half(uint32(w) & 0xffff)
}

// Bits exposes the raw 32-bit pattern, distinguishing +0 and -0 halves.
func (w Word) Bits() uint32 {
	return uint32(w)
}

// Equal compares two words numerically, half by half.
func (w Word) Equal(o Word) bool {
	return w.Left().Equal(o.Left()) && w.Right().Equal(o.Right())
}

// Add returns the parallel one's-complement sum of both half pairs.
func (w Word) Add(o Word) Word {
	return Join(AddHalf(w.Left(), o.Left()), AddHalf(w.Right(), o.Right()))
}

// Sub returns the parallel one's-complement difference of both half pairs.
func (w Word) Sub(o Word) Word {
	return Join(SubHalf(w.Left(), o.Left()), SubHalf(w.Right(), o.Right()))
}

// Mul returns the elementwise fractional product of both half pairs.
func (w Word) Mul(o Word) Word {
	return Join(MulHalf(w.Left(), o.Left()), MulHalf(w.Right(), o.Right()))
}

// Negate complements both halves.
func (w Word) Negate() Word {
	return Join(w.Left().Negate(), w.Right().Negate())
}

// String formats the word as its two raw half patterns.
func (w Word) String() string {
	return fmt.Sprintf("%04X_%04X", uint16(w.Left()), uint16(w.Right()))
}
