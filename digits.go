package fpdec

import "math/bits"

// base1e19 is the digit base for the Dynamic variant: each digit holds a
// value in [0, 10^19), the largest power of ten that still fits a uint64
// (10^19 < 2^64 < 2*10^19).
const base1e19 uint64 = 10000000000000000000

// decDigitsPerDigit is the number of decimal digits one base-1e19 digit
// carries (log10(10^19)).
const decDigitsPerDigit = 19

// dynamic is the arbitrary-precision magnitude representation from spec
// §3/§4.3: a little-endian sequence of base-10^19 digits plus a signed
// exponent in units of 10^19. |value| = (sum d[i]*(1e19)^i) * (1e19)^exp.
// A normalized dynamic (the only form a public operation ever returns)
// has digits[0] != 0 and digits[len-1] != 0, and is never used to
// represent zero (invariant 1: zero is always Shifted).
type dynamic struct {
	exp    int32
	digits []uint64
}

func sigLen(d []uint64) int {
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	return n
}

func trimDigits(d []uint64) []uint64 {
	return d[:sigLen(d)]
}

// normalize strips low-order all-zero digits into the exponent (spec
// §4.3's trailing-zero elimination) and shrinks away high-order zero
// digits, maintaining the representation invariant that digits[0] != 0
// and digits[len-1] != 0.
func (d *dynamic) normalize() *dynamic {
	digits := d.digits
	lead := 0
	for lead < len(digits)-1 && digits[lead] == 0 {
		lead++
	}
	if lead > 0 {
		digits = digits[lead:]
		d.exp += int32(lead)
	}
	digits = trimDigits(digits)
	if len(digits) == 0 {
		digits = []uint64{0}
	}
	d.digits = digits
	return d
}

func (d *dynamic) isZero() bool {
	return len(d.digits) == 1 && d.digits[0] == 0
}

// cmpMag compares two (not necessarily equal-length) little-endian
// magnitude digit arrays: the longer significant length wins, otherwise
// lexicographic comparison from the most significant digit down, per
// spec §4.3's digits_cmp.
func cmpMag(a, b []uint64) int {
	na, nb := sigLen(a), sigLen(b)
	if na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	for i := na - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// cmpDynamic compares two normalized Dynamic magnitudes after aligning
// their exponents via pure digit shifts (no arithmetic needed, since the
// exponent is in units of whole base-1e19 digits).
func cmpDynamic(a, b *dynamic) int {
	if a.exp == b.exp {
		return cmpMag(a.digits, b.digits)
	}
	commonExp := a.exp
	if b.exp < commonExp {
		commonExp = b.exp
	}
	aa := shiftUpDigits(a.digits, a.exp-commonExp)
	bb := shiftUpDigits(b.digits, b.exp-commonExp)
	return cmpMag(aa, bb)
}

// shiftUpDigits multiplies a base-1e19 magnitude by (1e19)^k by prepending
// k zero digits (a pure reshape, since the base is exactly the exponent's
// unit).
func shiftUpDigits(d []uint64, k int32) []uint64 {
	if k <= 0 {
		out := make([]uint64, len(d))
		copy(out, d)
		return out
	}
	out := make([]uint64, int(k)+len(d))
	copy(out[k:], d)
	return out
}

// addDigits adds two base-1e19 digits plus an incoming carry (0 or 1),
// returning the result digit and the outgoing carry. Uses the u128 kernel
// to sidestep the fact that two digits summed can exceed a uint64's
// range (2*(1e19-1)+1 > 2^64-1).
func addDigits(av, bv, carryIn uint64) (digit, carryOut uint64) {
	s, _ := add128(u128{Lo: av}, u128{Lo: bv})
	s, _ = add128(s, u128{Lo: carryIn})
	q, r := divU128ByU64(s, base1e19)
	return r.Lo, q.Lo
}

// subDigits computes av - bv - borrowIn in base 1e19, returning the
// result digit and the outgoing borrow (0 or 1). The digit-plus-base
// wraparound trick relies on regular uint64 (mod 2^64) arithmetic: when a
// borrow occurs, the wrapped difference plus base1e19 lands exactly on
// the correct base-1e19 complement.
func subDigits(av, bv, borrowIn uint64) (digit, borrowOut uint64) {
	d1, b1 := bits.Sub64(av, bv, 0)
	d2, b2 := bits.Sub64(d1, borrowIn, 0)
	borrowOut = b1 | b2
	if borrowOut != 0 {
		d2 += base1e19
	}
	return d2, borrowOut
}

// addMag adds two magnitude digit arrays of possibly unequal length,
// reserving one extra digit for the final carry, per spec §4.3.
func addMag(a, b []uint64) []uint64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]uint64, n+1)
	var carry uint64
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i], carry = addDigits(av, bv, carry)
	}
	out[n] = carry
	return out
}

// subMag subtracts b from a (magnitude, requires a >= b) producing a
// result the same length as a.
func subMag(a, b []uint64) []uint64 {
	out := make([]uint64, len(a))
	var borrow uint64
	for i := range a {
		var bv uint64
		if i < len(b) {
			bv = b[i]
		}
		out[i], borrow = subDigits(a[i], bv, borrow)
	}
	return out
}

// addDynamic adds two normalized Dynamic magnitudes (same sign handled by
// the caller), aligning exponents with a pure digit shift first.
func addDynamic(a, b *dynamic) *dynamic {
	commonExp := a.exp
	if b.exp < commonExp {
		commonExp = b.exp
	}
	aa := shiftUpDigits(a.digits, a.exp-commonExp)
	bb := shiftUpDigits(b.digits, b.exp-commonExp)
	sum := addMag(aa, bb)
	return (&dynamic{exp: commonExp, digits: sum}).normalize()
}

// subDynamic subtracts the smaller-magnitude Dynamic from the
// larger-magnitude one (the caller determines which via cmpDynamic) and
// returns the (always non-negative) magnitude difference.
func subDynamic(larger, smaller *dynamic) *dynamic {
	commonExp := larger.exp
	if smaller.exp < commonExp {
		commonExp = smaller.exp
	}
	ll := shiftUpDigits(larger.digits, larger.exp-commonExp)
	ss := shiftUpDigits(smaller.digits, smaller.exp-commonExp)
	diff := subMag(ll, ss)
	return (&dynamic{exp: commonExp, digits: diff}).normalize()
}

// mulMagSmall multiplies a magnitude digit array by a single base-1e19
// digit (mult < 1e19), propagating carry through the u128 kernel.
func mulMagSmall(d []uint64, mult uint64) []uint64 {
	if mult == 0 {
		return []uint64{0}
	}
	out := make([]uint64, len(d)+1)
	var carry uint64
	for i, v := range d {
		hi, lo := mul64(v, mult)
		s := u128{Hi: hi, Lo: lo}
		s, _ = add128(s, u128{Lo: carry})
		q, r := divU128ByU64(s, base1e19)
		out[i] = r.Lo
		carry = q.Lo
	}
	out[len(d)] = carry
	return out
}

// mulMag is Algorithm M (Knuth TAOCP Vol.2 §4.3.1) specialized to base
// 1e19: each single-digit product uses the U128 kernel's 64x64->128
// primitive, and carries propagate via 128/64 division by the base.
// Grounded on original_source/src/libfpdec/digit_array.c's multiply path.
func mulMag(a, b []uint64) []uint64 {
	m, n := len(a), len(b)
	out := make([]uint64, m+n)
	for i := 0; i < m; i++ {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := mul64(a[i], b[j])
			s, _ := add128(u128{Hi: hi, Lo: lo}, u128{Lo: out[i+j]})
			s, _ = add128(s, u128{Lo: carry})
			q, r := divU128ByU64(s, base1e19)
			out[i+j] = r.Lo
			carry = q.Lo
		}
		k := i + n
		for carry != 0 {
			s, _ := add128(u128{Lo: out[k]}, u128{Lo: carry})
			q, r := divU128ByU64(s, base1e19)
			out[k] = r.Lo
			carry = q.Lo
			k++
		}
	}
	return out
}

// mulDynamic multiplies two Dynamic magnitudes. The combined exponent is
// computed in 64-bit arithmetic first so a genuine overflow can never
// silently wrap around the int32 exponent field; ok is false when the
// combined exponent (before normalization may shift it further) falls
// outside [MinExp, MaxExp], in which case the caller should report
// ErrExpLimitExceeded rather than use d.
func mulDynamic(a, b *dynamic) (d *dynamic, ok bool) {
	product := mulMag(a.digits, b.digits)
	exp64 := int64(a.exp) + int64(b.exp)
	if exp64 < MinExp || exp64 > MaxExp {
		return nil, false
	}
	d = (&dynamic{exp: int32(exp64), digits: product}).normalize()
	if int64(d.exp) < MinExp || int64(d.exp) > MaxExp {
		return nil, false
	}
	return d, true
}

// subMagPadded subtracts b (possibly shorter) from a (requires a >= b in
// magnitude), producing a result the same length as a.
func subMagPadded(a, b []uint64) []uint64 {
	out := make([]uint64, len(a))
	var borrow uint64
	for i := range a {
		var bv uint64
		if i < len(b) {
			bv = b[i]
		}
		out[i], borrow = subDigits(a[i], bv, borrow)
	}
	return out
}

// divMagSmallExact divides a magnitude digit array by a divisor known to
// divide it exactly (used to undo the scale factor long division applies
// for normalization), discarding any (zero) remainder.
func divMagSmallExact(d []uint64, divisor uint64) []uint64 {
	n := len(d)
	q := make([]uint64, n)
	var r uint64
	for i := n - 1; i >= 0; i-- {
		hi, lo := mul64(r, base1e19)
		full := u128{Hi: hi, Lo: lo}
		full, _ = add128(full, u128{Lo: d[i]})
		qd, rd := divU128ByU64(full, divisor)
		q[i] = qd.Lo
		r = rd.Lo
	}
	return trimDigits(q)
}

// divModMag performs integer long division of two base-1e19 magnitude
// digit arrays, x = quo*y + rem, 0 <= rem < y. Single-digit divisors take
// a fast path; multi-digit divisors use a Knuth-style normalize /
// estimate / correct-down long division, maintaining a growing remainder
// accumulator rather than an in-place sliding window, trading a little
// efficiency for a simpler, easier-to-verify implementation. Grounded on
// original_source/src/libfpdec/digit_array.c's division path and
// basemath.c's normalization technique.
func divModMag(x, y []uint64) (quo, rem []uint64) {
	xs := trimDigits(x)
	ys := trimDigits(y)
	if len(ys) == 0 {
		panic("fpdec: divModMag: division by zero")
	}
	if cmpMag(xs, ys) < 0 {
		r := append([]uint64(nil), xs...)
		if len(r) == 0 {
			r = []uint64{0}
		}
		return []uint64{0}, r
	}
	if len(ys) == 1 {
		q := make([]uint64, len(xs))
		var r uint64
		for i := len(xs) - 1; i >= 0; i-- {
			hi, lo := mul64(r, base1e19)
			full := u128{Hi: hi, Lo: lo}
			full, _ = add128(full, u128{Lo: xs[i]})
			qd, rd := divU128ByU64(full, ys[0])
			q[i] = qd.Lo
			r = rd.Lo
		}
		return trimDigits(q), []uint64{r}
	}

	topY := ys[len(ys)-1]
	f := base1e19 / (topY + 1)
	if f == 0 {
		f = 1
	}
	yn := trimDigits(mulMagSmall(ys, f))
	xn := trimDigits(mulMagSmall(xs, f))
	ynlen := len(yn)

	quotient := make([]uint64, len(xn))
	var r []uint64
	for i := len(xn) - 1; i >= 0; i-- {
		r = shiftUpDigits(r, 1)
		r[0] = xn[i]
		r = trimDigits(r)

		if cmpMag(r, yn) < 0 {
			quotient[i] = 0
			continue
		}

		var top2Hi, top2Lo uint64
		rl := len(r)
		if rl == ynlen {
			top2Lo = r[rl-1]
		} else {
			top2Hi = r[rl-1]
			top2Lo = r[rl-2]
		}
		hi, lo := mul64(top2Hi, base1e19)
		num := u128{Hi: hi, Lo: lo}
		num, _ = add128(num, u128{Lo: top2Lo})
		qd, _ := divU128ByU64(num, yn[ynlen-1])
		qhat := qd.Lo
		if qd.Hi != 0 {
			qhat = base1e19 - 1
		}

		for qhat > 0 {
			prod := trimDigits(mulMagSmall(yn, qhat))
			if cmpMag(prod, r) <= 0 {
				break
			}
			qhat--
		}
		prod := trimDigits(mulMagSmall(yn, qhat))
		r = trimDigits(subMagPadded(padTo(r, len(prod)), prod))
		quotient[i] = qhat
	}

	rem = divMagSmallExact(padTo(r, len(yn)), f)
	if len(rem) == 0 {
		rem = []uint64{0}
	}
	quo = trimDigits(quotient)
	if len(quo) == 0 {
		quo = []uint64{0}
	}
	return quo, rem
}

// packMagAtDecPrec takes a plain base-10^19 integer magnitude and a target
// dec_prec and builds the Dynamic whose value is exactly mag * 10^(-decPrec)
// — the same fold used by dynamicFromCoeff (construction from decimal
// exponent), here driven directly by a dec_prec rather than a literal's
// exponent. Used by Div/Quantize/Adjusted, whose natural output is "an
// integer coefficient at a known scale" rather than a pre-aligned Dynamic.
func packMagAtDecPrec(mag []uint64, decPrec uint16) *dynamic {
	q, r := floorDivMod19(-int64(decPrec))
	digits := mag
	if r != 0 {
		digits = mulMagSmall(digits, pow10[r])
	}
	return (&dynamic{exp: q, digits: digits}).normalize()
}

func padTo(d []uint64, n int) []uint64 {
	if len(d) >= n {
		return d
	}
	out := make([]uint64, n)
	copy(out, d)
	return out
}

// divDynamic performs exact integer division of two Dynamic magnitudes
// (their base-10^19-unit exponents folded in), returning a Dynamic
// quotient and a Dynamic remainder, both normalized. It aligns exponents
// first (again a pure digit shift) so divModMag operates on plain
// integers.
func divDynamic(a, b *dynamic) (quo, rem *dynamic) {
	commonExp := a.exp
	if b.exp < commonExp {
		commonExp = b.exp
	}
	aa := shiftUpDigits(a.digits, a.exp-commonExp)
	bb := shiftUpDigits(b.digits, b.exp-commonExp)
	q, r := divModMag(aa, bb)
	return (&dynamic{exp: 0, digits: q}).normalize(), (&dynamic{exp: commonExp, digits: r}).normalize()
}

// leadingDigitDecimalWidth returns the number of decimal digits (1..19)
// in a single base-1e19 digit, i.e. the most significant chunk of a
// Dynamic magnitude. Used by Magnitude to locate the decimal exponent of
// the leading nonzero digit.
func leadingDigitDecimalWidth(digit uint64) int {
	if digit == 0 {
		return 0
	}
	n := 1
	for digit >= 10 {
		digit /= 10
		n++
	}
	return n
}


