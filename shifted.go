package fpdec

// shifted96 is the compact Shifted-int magnitude representation from spec
// §3/§4.2: a 96-bit unsigned coefficient C such that |value| = C *
// 10^(-dec_prec), valid only while dec_prec <= 9. It is built directly on
// top of the U128 kernel: every operation loads it into a u128{Hi:
// uint64(hi), Lo: lo} and checks afterwards whether the result's Hi
// exceeds 32 bits. Adapted from the source's Fix64/Fix128 Add/Sub/Mul
// method bodies, generalized from a fixed scale to an arbitrary
// dec_prec <= 9.
type shifted96 struct {
	hi uint32
	lo uint64
}

var shiftedZero = shifted96{}

func (s shifted96) u128() u128 {
	return u128{Hi: uint64(s.hi), Lo: s.lo}
}

func shiftedFromU128(v u128) (shifted96, bool) {
	if v.Hi > 0xFFFFFFFF {
		return shifted96{}, false
	}
	return shifted96{hi: uint32(v.Hi), lo: v.Lo}, true
}

func (s shifted96) isZero() bool {
	return s.hi == 0 && s.lo == 0
}

func cmpShifted(a, b shifted96) int {
	return cmp128(a.u128(), b.u128())
}

// scaleUpShifted multiplies a shifted96 coefficient by 10^delta,
// reporting false if the product overflows the U128 kernel's multiply
// (and is therefore definitely too big for the 96-bit envelope too).
func scaleUpShifted(s shifted96, delta uint16) (shifted96, bool) {
	v := s.u128()
	for delta > 0 {
		step := delta
		if step > 19 {
			step = 19
		}
		v = mulU64Overflow(v, pow10[step])
		if v == u128Max {
			return shifted96{}, false
		}
		delta -= step
	}
	return shiftedFromU128(v)
}

// alignShifted brings a and b to a common dec_prec (the larger of the
// two), scaling up whichever operand has the smaller one. Returns false
// if the scale-up overflows the 96-bit envelope — the caller then
// promotes both operands to Dynamic.
func alignShifted(a shifted96, aPrec uint16, b shifted96, bPrec uint16) (aa, bb shifted96, commonPrec uint16, ok bool) {
	if aPrec == bPrec {
		return a, b, aPrec, true
	}
	if aPrec > bPrec {
		scaled, ok := scaleUpShifted(b, aPrec-bPrec)
		return a, scaled, aPrec, ok
	}
	scaled, ok := scaleUpShifted(a, bPrec-aPrec)
	return scaled, b, bPrec, ok
}

// addShiftedMag adds two aligned shifted96 magnitudes, reporting false if
// the sum needs more than 96 bits.
func addShiftedMag(a, b shifted96) (shifted96, bool) {
	sum, carry := add128(a.u128(), b.u128())
	if carry != 0 {
		return shifted96{}, false
	}
	return shiftedFromU128(sum)
}

// subShiftedMag subtracts the smaller aligned shifted96 magnitude from
// the larger one (the caller determines order via cmpShifted); the
// result always fits within 96 bits since it is no larger than the
// minuend.
func subShiftedMag(larger, smaller shifted96) shifted96 {
	diff := sub128(larger.u128(), smaller.u128())
	result, _ := shiftedFromU128(diff)
	return result
}

// mulShiftedMag multiplies two shifted96 coefficients, reporting false if
// the full product doesn't fit in 96 bits (i.e. the high u128 limb is
// non-zero, or the low limb's own high bits spill past bit 95).
func mulShiftedMag(a, b shifted96) (shifted96, bool) {
	// Full 96x96 -> up to 192-bit product: compute via the general
	// 128x128 multiply and require the top 128 bits (hi) to be zero and
	// the low 128 bits to fit in 96 bits.
	pHi, pLo := mul128(a.u128(), b.u128())
	if !pHi.isZero() {
		return shifted96{}, false
	}
	return shiftedFromU128(pLo)
}

// shiftedToDigits converts a shifted96 coefficient plus its dec_prec into
// a normalized Dynamic magnitude (used when an operation's result
// overflows the 96-bit envelope and must be promoted).
func shiftedToDigits(s shifted96, decPrec uint16) *dynamic {
	digits, exp := u128ToDigits(s.u128())
	exp -= int32(decPrec) / decDigitsPerDigit
	rem := int32(decPrec) % decDigitsPerDigit
	d := &dynamic{exp: exp, digits: digits}
	if rem != 0 {
		// The dec_prec cut doesn't land on a digit boundary: rescale by
		// 10^(19-rem) so the boundary does, then adjust the exponent.
		digits = mulMagSmall(d.digits, pow10[decDigitsPerDigit-rem])
		d = &dynamic{exp: exp - 1, digits: digits}
	}
	return d.normalize()
}

// u128ToDigits packs a U128 magnitude into a base-10^19 digit array
// (exponent 0), by repeated division.
func u128ToDigits(v u128) (digits []uint64, exp int32) {
	if v.isZero() {
		return []uint64{0}, 0
	}
	var out []uint64
	for !v.isZero() {
		q, r := divU128ByU64(v, base1e19)
		out = append(out, r.Lo)
		v = q
	}
	return out, 0
}

// digitsToShifted attempts to pack a normalized Dynamic magnitude plus a
// target dec_prec back into a shifted96 coefficient; reports false if it
// doesn't fit (too many significant digits, or dec_prec > 9).
func digitsToShifted(d *dynamic, decPrec uint16) (shifted96, bool) {
	if decPrec > maxShiftedDecPrec {
		return shifted96{}, false
	}
	// value = digits * (1e19)^exp; shifted coefficient = value * 10^decPrec
	totalExp10 := int64(d.exp)*decDigitsPerDigit + int64(decPrec)
	v := u128Zero
	for i := len(d.digits) - 1; i >= 0; i-- {
		v = mulU64Overflow(v, base1e19)
		if v == u128Max {
			return shifted96{}, false
		}
		sum, carry := add128(v, u128{Lo: d.digits[i]})
		if carry != 0 {
			return shifted96{}, false
		}
		v = sum
	}
	if totalExp10 >= 0 {
		for totalExp10 > 0 {
			step := totalExp10
			if step > 19 {
				step = 19
			}
			v = mulU64Overflow(v, pow10[step])
			if v == u128Max {
				return shifted96{}, false
			}
			totalExp10 -= step
		}
		return shiftedFromU128(v)
	}
	// totalExp10 < 0: the digit array carries more trailing (zero) decimal
	// digits than decPrec needs — e.g. a Div/Quantize result whose dec_prec
	// fold landed inside the lowest digit (see digits.go's
	// packMagAtDecPrec). Divide them back off; if they aren't exactly
	// zero, the value genuinely needs more precision than Shifted allows.
	k := -totalExp10
	for k > 0 {
		step := k
		if step > 19 {
			step = 19
		}
		q, r := divU128ByU64(v, pow10[step])
		if !r.isZero() {
			return shifted96{}, false
		}
		v = q
		k -= step
	}
	return shiftedFromU128(v)
}
