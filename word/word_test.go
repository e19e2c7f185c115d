package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfFromInt(t *testing.T) {
	assert := assert.New(t)

	h, err := HalfFromInt(275)
	assert.NoError(err)
	assert.Equal(Half(275), h)
	assert.Equal(275, h.Int())

	h, err = HalfFromInt(-275)
	assert.NoError(err)
	assert.Equal(Half(^uint16(275)), h)
	assert.Equal(-275, h.Int())

	_, err = HalfFromInt(HALF_MAX + 1)
	assert.ErrorIs(err, ErrRange(0))

	_, err = HalfFromInt(-HALF_MAX - 1)
	assert.ErrorIs(err, ErrRange(0))
}

func TestHalfFromFraction(t *testing.T) {
	assert := assert.New(t)

	step := 1.0 / HALF_SCALE

	for _, fraction := range []float64{0, 0.5, -0.5, 0.25, -0.75, 0.999, -0.999} {
		h, err := HalfFromFraction(fraction)
		assert.NoError(err)
		assert.InDelta(fraction, h.Fraction(), step, "fraction %v", fraction)
	}

	// Rounds toward zero.
	h, err := HalfFromFraction(0.75)
	assert.NoError(err)
	assert.Equal(24576, h.Int())
	h, err = HalfFromFraction(-0.75)
	assert.NoError(err)
	assert.Equal(-24576, h.Int())

	_, err = HalfFromFraction(1.0)
	assert.ErrorIs(err, ErrRange(0))
	_, err = HalfFromFraction(-1.0)
	assert.ErrorIs(err, ErrRange(0))
}

func TestHalfZeros(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, ZERO_PLUS.Int())
	assert.Equal(0, ZERO_MINUS.Int())
	assert.True(ZERO_PLUS.Equal(ZERO_MINUS))
	assert.NotEqual(uint16(ZERO_PLUS), uint16(ZERO_MINUS))

	// -0 carries the sign bit; the hardware sign test sees it as minus.
	assert.False(ZERO_PLUS.IsNegative())
	assert.True(ZERO_MINUS.IsNegative())
}

func TestAddHalf(t *testing.T) {
	assert := assert.New(t)

	a := halfFromInt(5)
	b := halfFromInt(10)
	assert.Equal(15, AddHalf(a, b).Int())

	// End-around carry: (-1) + 2 == 1
	m1 := halfFromInt(-1)
	p2 := halfFromInt(2)
	assert.Equal(1, AddHalf(m1, p2).Int())

	// x + (-x) yields a zero representation for all x.
	for _, v := range []int{0, 1, 275, 16384, HALF_MAX} {
		h := halfFromInt(v)
		sum := AddHalf(h, h.Negate())
		assert.True(sum.Equal(ZERO_PLUS), "value %v -> %04x", v, uint16(sum))
	}
}

func TestSubHalf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(7, SubHalf(halfFromInt(12), halfFromInt(5)).Int())
	assert.Equal(-7, SubHalf(halfFromInt(5), halfFromInt(12)).Int())
}

func TestMulHalf(t *testing.T) {
	assert := assert.New(t)

	half, _ := HalfFromFraction(0.5)
	quarter, _ := HalfFromFraction(0.25)
	neg, _ := HalfFromFraction(-0.5)

	assert.InDelta(0.25, MulHalf(half, half).Fraction(), 1.0/HALF_SCALE)
	assert.InDelta(0.125, MulHalf(half, quarter).Fraction(), 1.0/HALF_SCALE)
	assert.InDelta(-0.25, MulHalf(neg, half).Fraction(), 1.0/HALF_SCALE)
	assert.InDelta(0.25, MulHalf(neg, neg).Fraction(), 1.0/HALF_SCALE)
}

func TestJoinSplit(t *testing.T) {
	assert := assert.New(t)

	for _, pair := range [][2]Half{
		{0x0000, 0x0000},
		{0xffff, 0x0000},
		{0x8000, 0x7fff},
		{0x1234, 0xcdef},
	} {
		w := Join(pair[0], pair[1])
		l, r := w.Split()
		assert.Equal(pair[0], l)
		assert.Equal(pair[1], r)
	}

	w, err := FromInts(100, -200)
	assert.NoError(err)
	assert.Equal(100, w.Left().Int())
	assert.Equal(-200, w.Right().Int())

	_, err = FromInts(0x8000, 0)
	assert.ErrorIs(err, ErrRange(0))
}

func TestWordParallelArithmetic(t *testing.T) {
	assert := assert.New(t)

	a, _ := FromInts(5, -5)
	b, _ := FromInts(10, 10)

	sum := a.Add(b)
	assert.Equal(15, sum.Left().Int())
	assert.Equal(5, sum.Right().Int())

	diff := a.Sub(b)
	assert.Equal(-5, diff.Left().Int())
	assert.Equal(-15, diff.Right().Int())

	x, _ := FromFractions(0.5, -0.5)
	y, _ := FromFractions(0.5, 0.5)
	prod := x.Mul(y)
	assert.InDelta(0.25, prod.Left().Fraction(), 1.0/HALF_SCALE)
	assert.InDelta(-0.25, prod.Right().Fraction(), 1.0/HALF_SCALE)
}

func TestWordZeroEquality(t *testing.T) {
	assert := assert.New(t)

	plus := Join(ZERO_PLUS, ZERO_PLUS)
	minus := Join(ZERO_MINUS, ZERO_MINUS)

	assert.True(plus.Equal(minus))
	assert.NotEqual(plus.Bits(), minus.Bits())
}

func TestWordString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1234_CDEF", Join(0x1234, 0xcdef).String())
}
