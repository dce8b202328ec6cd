package fpdec

import "math/bits"

// u128 is an unsigned 128-bit integer, the arithmetic substrate shared by
// the shifted-int and digit-array variants. It intentionally mirrors the
// split-halves layout of raw128 in the source this package is built from,
// rather than leaning on a three-limb or big.Int representation.
type u128 struct {
	Hi, Lo uint64
}

var u128Zero = u128{0, 0}

// u128Max is the overflow sentinel written by mulU64Overflow: all 128 bits
// set. Callers that can't distinguish "the true result" from "the
// sentinel" must check for overflow some other way before relying on the
// value; see spec §7 and §9 on the U128 multiply overflow sentinel.
var u128Max = u128{^uint64(0), ^uint64(0)}

func (a u128) isZero() bool {
	return a.Hi == 0 && a.Lo == 0
}

func cmp128(a, b u128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}

func add128(a, b u128) (sum u128, carry uint64) {
	sum.Lo, carry = bits.Add64(a.Lo, b.Lo, 0)
	sum.Hi, carry = bits.Add64(a.Hi, b.Hi, carry)
	return
}

// sub128 is the negate-less subtraction from spec §4.1: callers must
// ensure a >= b; it does not detect or signal a borrow out of the top bit.
func sub128(a, b u128) (diff u128) {
	var borrow uint64
	diff.Lo, borrow = bits.Sub64(a.Lo, b.Lo, 0)
	diff.Hi, _ = bits.Sub64(a.Hi, b.Hi, borrow)
	return
}

func mul64(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

// mul128By64 computes the full 192-bit product of a 128-bit value and a
// 64-bit value, returned as a 64-bit overflow limb (hi) and a 128-bit low
// part (lo): the product equals hi*2^128 + lo.
func mul128By64(a u128, b uint64) (hi uint64, lo u128) {
	var w, z, carry uint64
	w, lo.Lo = bits.Mul64(a.Lo, b)
	hi, z = bits.Mul64(a.Hi, b)
	lo.Hi, carry = bits.Add64(w, z, 0)
	hi += carry
	return
}

// mulU64Overflow is the 128x64 in-place multiply from spec §4.1/§7: on
// overflow (the product does not fit in 128 bits) it signals by returning
// the all-ones sentinel, exactly as the source's u128_imul_u64 does.
func mulU64Overflow(a u128, b uint64) u128 {
	hi, lo := mul128By64(a, b)
	if hi != 0 {
		return u128Max
	}
	return lo
}

// mul128 computes the full 256-bit product of two 128-bit values, split
// into a high 128 bits and a low 128 bits. Grounded on raw128.go's mul128.
func mul128(a, b u128) (hi, lo u128) {
	if a.Hi == 0 {
		h, l := mul128By64(b, a.Lo)
		return u128{Lo: h}, l
	}
	if b.Hi == 0 {
		h, l := mul128By64(a, b.Lo)
		return u128{Lo: h}, l
	}

	// a = aH*2^64 + aL, b = bH*2^64 + bL
	// a*b = (aH*bH)*2^128 + (aH*bL + aL*bH)*2^64 + aL*bL
	var u, v1, v2 u128
	var wHi uint64
	u.Hi, u.Lo = bits.Mul64(a.Hi, b.Hi)
	v1.Hi, v1.Lo = bits.Mul64(a.Hi, b.Lo)
	v2.Hi, v2.Lo = bits.Mul64(a.Lo, b.Hi)
	v, vCarry := add128(v1, v2)
	wHi, lo.Lo = bits.Mul64(a.Lo, b.Lo)

	var midCarry, hiCarry uint64
	lo.Hi, midCarry = bits.Add64(v.Lo, wHi, 0)
	hi.Lo, hiCarry = bits.Add64(u.Lo, v.Hi, midCarry)
	hi.Hi, _ = bits.Add64(u.Hi, vCarry, hiCarry)
	return
}

func leadingZeros64(x uint64) uint { return uint(bits.LeadingZeros64(x)) }

// divU128ByU32 divides a 128-bit value by a 32-bit divisor, producing a
// 128-bit quotient and a 32-bit remainder. Processes the dividend as four
// 32-bit digits, the way basemath.c's u128_idiv_u32 does.
func divU128ByU32(x u128, y uint32) (quo u128, rem uint32) {
	if y == 0 {
		panic("fpdec: divU128ByU32: division by zero")
	}
	yy := uint64(y)

	th := x.Hi >> 32
	r := th % yy
	tl := (r << 32) | (x.Hi & 0xFFFFFFFF)
	quo.Hi = ((th / yy) << 32) | (tl / yy)
	r = tl % yy

	th = (r << 32) | (x.Lo >> 32)
	r = th % yy
	tl = (r << 32) | (x.Lo & 0xFFFFFFFF)
	quo.Lo = ((th / yy) << 32) | (tl / yy)
	r = tl % yy

	return quo, uint32(r)
}

// divU128ByU64Special is the Knuth-D special case for a 128-bit dividend
// by a 64-bit divisor whose high 32 bits are nonzero, valid only when hi < y — the
// precondition callers establish per spec §4.1. Grounded on
// original_source/src/libfpdec/basemath.c's u128_idiv_u64_special, itself
// adapted from Hacker's Delight / Knuth TAOCP Vol.2 Algorithm D.
func divU128ByU64Special(hi, lo, y uint64) (quo, rem uint64) {
	const b = uint64(1) << 32
	n := leadingZeros64(y)
	y <<= n
	yn1 := y >> 32
	yn0 := y & 0xFFFFFFFF

	var xn32 uint64
	if n == 0 {
		xn32 = hi
	} else {
		xn32 = (hi << n) | (lo >> (64 - n))
	}
	xn10 := lo << n
	xn1 := xn10 >> 32
	xn0 := xn10 & 0xFFFFFFFF

	qhat := xn32 / yn1
	rhat := xn32 % yn1
	for qhat >= b || qhat*yn0 > (rhat<<32)+xn1 {
		qhat--
		rhat += yn1
		if rhat >= b {
			break
		}
	}

	t := (xn32 << 32) + xn1 - qhat*y

	qlo := t / yn1
	rhat = t % yn1
	for qlo >= b || qlo*yn0 > (rhat<<32)+xn0 {
		qlo--
		rhat += yn1
		if rhat >= b {
			break
		}
	}

	quo = (qhat << 32) | qlo
	rem = ((t << 32) + xn0 - qlo*y) >> n
	return
}

// divU128ByU64 divides a 128-bit value by a 64-bit divisor. It reduces the
// dividend's high half modulo the divisor first (preserving the
// divU128ByU64Special precondition) whenever that half is not already
// smaller than the divisor, per spec §4.1.
func divU128ByU64(x u128, y uint64) (quo, rem u128) {
	if y == 0 {
		panic("fpdec: divU128ByU64: division by zero")
	}
	if y>>32 == 0 {
		q, r := divU128ByU32(x, uint32(y))
		return q, u128{Lo: uint64(r)}
	}

	if x.Hi < y {
		q, r := divU128ByU64Special(x.Hi, x.Lo, y)
		return u128{Lo: q}, u128{Lo: r}
	}

	qHi := x.Hi / y
	rHi := x.Hi % y
	qLo, rLo := divU128ByU64Special(rHi, x.Lo, y)
	return u128{Hi: qHi, Lo: qLo}, u128{Lo: rLo}
}

