package fpdec

// addSub implements both Add and Sub (spec §4.5), unified since subtraction
// is addition of a sign-flipped y. When both operands are Shifted and
// alignment and the magnitude op stay within the 96-bit envelope, the whole
// computation runs in the U128 kernel; otherwise it promotes both operands
// to Dynamic and falls back to the digit-array path. dec_prec is always
// max(x.dec_prec, y.dec_prec), independent of which path is taken.
func addSub(x, y Decimal, yNeg bool) Decimal {
	ySign := y.sign
	if yNeg {
		ySign = -ySign
	}
	decPrec := x.decPrec
	if y.decPrec > decPrec {
		decPrec = y.decPrec
	}
	// Same effective sign (or either operand zero): magnitudes add.
	// Different signs: the larger magnitude's sign wins and the smaller
	// magnitude is subtracted from it.
	sameSign := x.sign == ySign || x.sign == 0 || ySign == 0

	if x.dyn == nil && y.dyn == nil {
		ax, bx, commonPrec, ok := alignShifted(x.shifted, x.decPrec, y.shifted, y.decPrec)
		if ok {
			if sameSign {
				sign := x.sign
				if sign == 0 {
					sign = ySign
				}
				if sum, ok2 := addShiftedMag(ax, bx); ok2 {
					return newShiftedDecimal(sign, commonPrec, sum)
				}
			} else {
				switch c := cmpShifted(ax, bx); {
				case c == 0:
					return Decimal{sign: 0, decPrec: commonPrec}
				case c > 0:
					return newShiftedDecimal(x.sign, commonPrec, subShiftedMag(ax, bx))
				default:
					return newShiftedDecimal(ySign, commonPrec, subShiftedMag(bx, ax))
				}
			}
		}
	}

	xd := x.toDynamicValue()
	yd := y.toDynamicValue()
	if sameSign {
		sign := x.sign
		if sign == 0 {
			sign = ySign
		}
		return newDynamicDecimal(sign, decPrec, addDynamic(xd, yd))
	}
	switch c := cmpDynamic(xd, yd); {
	case c == 0:
		return Decimal{sign: 0, decPrec: decPrec}
	case c > 0:
		return newDynamicDecimal(x.sign, decPrec, subDynamic(xd, yd))
	default:
		return newDynamicDecimal(ySign, decPrec, subDynamic(yd, xd))
	}
}

// Add returns x + y.
func Add(x, y Decimal) Decimal { return addSub(x, y, false) }

// Sub returns x - y.
func Sub(x, y Decimal) Decimal { return addSub(x, y, true) }

// Neg returns -x.
func Neg(x Decimal) Decimal {
	x.sign = -x.sign
	return x
}

// Mul returns x * y (spec §4.5). dec_prec is the sum of the operands'
// dec_prec, checked against MaxDecPrec before the multiply is attempted
// (scenario: two values each with dec_prec 32775 whose product would need
// 65550 must fail with ErrPrecLimitExceeded, never attempt the multiply and
// fail on the exponent side instead).
func Mul(x, y Decimal) (Decimal, error) {
	decPrecSum := uint32(x.decPrec) + uint32(y.decPrec)
	if decPrecSum > MaxDecPrec {
		return Decimal{}, ErrPrecLimitExceeded
	}
	decPrec := uint16(decPrecSum)
	sign := int8(x.Sign() * y.Sign())
	if sign == 0 {
		return Decimal{sign: 0, decPrec: decPrec}, nil
	}

	if x.dyn == nil && y.dyn == nil {
		if prod, ok := mulShiftedMag(x.shifted, y.shifted); ok {
			return newShiftedDecimal(sign, decPrec, prod), nil
		}
	}
	prod, ok := mulDynamic(x.toDynamicValue(), y.toDynamicValue())
	if !ok {
		return Decimal{}, ErrExpLimitExceeded
	}
	return newDynamicDecimal(sign, decPrec, prod), nil
}

// mulByPow10 scales a base-1e19 magnitude up by 10^k (k >= 0), via a whole-
// digit shift for the 19-chunk part of k and a single small multiply for
// the remainder.
func mulByPow10(digits []uint64, k int64) []uint64 {
	if k <= 0 {
		return append([]uint64(nil), digits...)
	}
	whole := k / decDigitsPerDigit
	rem := int(k % decDigitsPerDigit)
	out := shiftUpDigits(digits, int32(whole))
	if rem != 0 {
		out = mulMagSmall(out, pow10[rem])
	}
	return out
}

// lastDecimalDigit returns mag's value mod 10, used by roundQRBig's parity
// and mod-5 tie-break predicates: for a multi-digit base-1e19 integer,
// value mod 2 and value mod 5 both equal the value's last decimal digit mod
// 2/5 (since 10 is divisible by both), so there is no need to reduce the
// whole magnitude.
func lastDecimalDigit(mag []uint64) uint64 {
	if len(mag) == 0 {
		return 0
	}
	return mag[0] % 10
}

// incrementMag adds 1 to a base-1e19 magnitude.
func incrementMag(d []uint64) []uint64 {
	return trimDigits(addMag(d, []uint64{1}))
}

// roundQRBig is roundQR (spec §4.4) generalized to multi-digit quot/rem/den.
// When rem and den each fit in one base-1e19 digit it delegates to roundQR
// directly, passing quot's low digit (which has the same residues mod 2 and
// mod 5 as the whole quotient, since 10 | 1e19); the general case mirrors roundQR's mode switch, computing the
// same tie := den>>1 (floor(den/2)) that roundQR gets from a uint64 shift
// via divModMag(den, 2), and comparing rem against it directly — not
// 2*rem against den, which disagrees with roundQR at rem == floor(den/2)
// for odd den. It uses lastDecimalDigit(quot) in place of quot%5 / quot%2
// (equivalent, since 10 | both moduli).
func roundQRBig(sign int, quot, rem, den []uint64, mode RoundingMode) bool {
	if sigLen(rem) <= 1 && sigLen(den) <= 1 {
		var q, r, d uint64
		if len(quot) > 0 {
			q = quot[0]
		}
		if len(rem) > 0 {
			r = rem[0]
		}
		if len(den) > 0 {
			d = den[0]
		}
		return roundQR(sign, q, r, d, mode)
	}
	mode = resolveMode(mode)
	remZero := sigLen(rem) == 0
	switch mode {
	case Round05Up:
		return lastDecimalDigit(quot)%5 == 0 && !remZero
	case RoundCeiling:
		return sign >= 0 && !remZero
	case RoundDown:
		return false
	case RoundFloor:
		return sign < 0 && !remZero
	case RoundUp:
		return !remZero
	case RoundHalfDown, RoundHalfEven, RoundHalfUp:
		tie, _ := divModMag(den, []uint64{2})
		c := cmpMag(rem, trimDigits(tie))
		switch mode {
		case RoundHalfDown:
			return c > 0
		case RoundHalfUp:
			return c >= 0
		default: // RoundHalfEven
			return c > 0 || (c == 0 && lastDecimalDigit(quot)%2 != 0)
		}
	default:
		return false
	}
}

// quotientAtScale computes floor(|xd|/|yd| * 10^s) and its remainder (the
// remainder sharing |yd|'s scale), by aligning the two Dynamic magnitudes'
// combined base-10 exponent spread to a literal digit shift before calling
// divModMag. expDiff is guarded against divExpGuard to reject a shift that
// would require materializing an impossible amount of digits.
func quotientAtScale(xd, yd *dynamic, s int64) (quo, rem, den []uint64, ok bool) {
	expDiff := (int64(xd.exp)-int64(yd.exp))*decDigitsPerDigit + s
	if expDiff > divExpGuard || expDiff < -divExpGuard {
		return nil, nil, nil, false
	}
	var num, dn []uint64
	if expDiff >= 0 {
		num = mulByPow10(xd.digits, expDiff)
		dn = yd.digits
	} else {
		num = xd.digits
		dn = mulByPow10(yd.digits, -expDiff)
	}
	quo, rem = divModMag(num, dn)
	return quo, rem, dn, true
}

// buildDivResult packs an integer quotient magnitude at scale s into a
// Decimal, applying rounding first when the division didn't terminate
// exactly.
func buildDivResult(sign int, s int64, q, r, den []uint64, mode RoundingMode) (Decimal, error) {
	if sigLen(r) != 0 && roundQRBig(sign, q, r, den, mode) {
		q = incrementMag(q)
	}
	if s < 0 || uint32(s) > MaxDecPrec {
		return Decimal{}, ErrPrecLimitExceeded
	}
	mag := packMagAtDecPrec(q, uint16(s))
	if int64(mag.exp) < MinExp || int64(mag.exp) > MaxExp {
		return Decimal{}, ErrExpLimitExceeded
	}
	return newDynamicDecimal(int8(sign), uint16(s), mag), nil
}

// Div returns x / y (spec §4.6). precisionLimit is the caller's requested
// dec_prec for the quotient, or -1 to mean "terminate exactly if possible,
// otherwise fall back to the process default (defaultPrecisionLimit) and
// round with mode".
func Div(x, y Decimal, precisionLimit int32, mode RoundingMode) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, ErrDivideByZero
	}
	sign := x.Sign() * y.Sign()
	if x.IsZero() {
		s := precisionLimit
		if s < 0 {
			s = int32(x.decPrec) - int32(y.decPrec)
			if s < 0 {
				s = 0
			}
		}
		if uint32(s) > MaxDecPrec {
			return Decimal{}, ErrPrecLimitExceeded
		}
		return Decimal{sign: 0, decPrec: uint16(s)}, nil
	}

	xd := x.toDynamicValue()
	yd := y.toDynamicValue()

	if precisionLimit >= 0 {
		if uint32(precisionLimit) > MaxDecPrec {
			return Decimal{}, ErrPrecLimitExceeded
		}
		q, r, den, ok := quotientAtScale(xd, yd, int64(precisionLimit))
		if !ok {
			return Decimal{}, ErrExpLimitExceeded
		}
		return buildDivResult(sign, int64(precisionLimit), q, r, den, mode)
	}

	start := int64(x.decPrec) - int64(y.decPrec)
	if start < 0 {
		start = 0
	}
	for s := start; s <= defaultPrecisionLimit; s++ {
		q, r, _, ok := quotientAtScale(xd, yd, s)
		if !ok {
			return Decimal{}, ErrExpLimitExceeded
		}
		if sigLen(r) == 0 {
			mag := packMagAtDecPrec(q, uint16(s))
			if int64(mag.exp) < MinExp || int64(mag.exp) > MaxExp {
				return Decimal{}, ErrExpLimitExceeded
			}
			return newDynamicDecimal(int8(sign), uint16(s), mag), nil
		}
	}
	q, r, den, ok := quotientAtScale(xd, yd, defaultPrecisionLimit)
	if !ok {
		return Decimal{}, ErrExpLimitExceeded
	}
	return buildDivResult(sign, defaultPrecisionLimit, q, r, den, mode)
}

// DivMod returns the floor-division quotient and remainder of x/y (spec
// §4.6): quotient = trunc_toward_-inf(x/y) with dec_prec 0, remainder = x -
// quotient*y with dec_prec max(x.dec_prec, y.dec_prec) and the same sign as
// y (per the resolved convention that the remainder always carries the
// divisor's sign).
func DivMod(x, y Decimal) (quotient, remainder Decimal, err error) {
	if y.IsZero() {
		return Decimal{}, Decimal{}, ErrDivideByZero
	}
	commonPrec := x.decPrec
	if y.decPrec > commonPrec {
		commonPrec = y.decPrec
	}
	if x.IsZero() {
		return Decimal{sign: 0, decPrec: 0}, Decimal{sign: 0, decPrec: commonPrec}, nil
	}

	xd := x.toDynamicValue()
	yd := y.toDynamicValue()
	q, r := divDynamic(xd, yd)

	sign := x.Sign() * y.Sign()
	remZero := r.isZero()
	if sign < 0 && !remZero {
		// Truncating division rounded toward zero; floor needs one more
		// and the remainder brought back up to the divisor's magnitude
		// (0 <= r < |y| always, so |y| - r is never negative).
		q = addDynamic(q, &dynamic{exp: 0, digits: []uint64{1}})
		r = subDynamic(yd, r)
	}

	qDec := newDynamicDecimal(int8(sign), 0, q)
	if remZero {
		return qDec, Decimal{sign: 0, decPrec: commonPrec}, nil
	}
	remDec := newDynamicDecimal(int8(y.Sign()), commonPrec, r)
	return qDec, remDec, nil
}

// Quantize returns the multiple of |quantum| nearest to x under mode, with
// dec_prec fixed to quantum's (spec §4.6). It reuses the Div machinery:
// quantizing x to quantum is computing round(x/quantum) and re-scaling that
// integer by quantum's coefficient.
func Quantize(x, quantum Decimal, mode RoundingMode) (Decimal, error) {
	if quantum.IsZero() {
		return Decimal{}, ErrDivideByZero
	}
	targetPrec := quantum.decPrec
	if x.IsZero() {
		return Decimal{sign: 0, decPrec: targetPrec}, nil
	}

	xd := x.toDynamicValue()
	qd := quantum.toDynamicValue()
	quo, rem, den, ok := quotientAtScale(xd, qd, 0)
	if !ok {
		return Decimal{}, ErrExpLimitExceeded
	}
	sign := x.Sign()
	if sigLen(rem) != 0 && roundQRBig(sign, quo, rem, den, mode) {
		quo = incrementMag(quo)
	}
	if sigLen(quo) == 0 {
		return Decimal{sign: 0, decPrec: targetPrec}, nil
	}

	// value = quo * |quantum| = quo * qCoeff * 10^-targetPrec, so the
	// result's integer coefficient at targetPrec is simply quo*qCoeff.
	qCoeff := coefficientMagnitudeDigits(quantum)
	resultCoeff := trimDigits(mulMag(trimDigits(quo), qCoeff))
	result := packMagAtDecPrec(resultCoeff, targetPrec)
	if int64(result.exp) < MinExp || int64(result.exp) > MaxExp {
		return Decimal{}, ErrExpLimitExceeded
	}
	return newDynamicDecimal(int8(x.Sign()), targetPrec, result), nil
}

// coefficientMagnitudeDigits returns |x|'s integer coefficient C (such that
// value = C * 10^-x.dec_prec) as a base-1e19 magnitude — the inverse of
// packMagAtDecPrec, at base-1e19 granularity rather than
// coefficientDigitsAllVariants's decimal-digit-byte granularity. When the
// fold lands inside the Dynamic digit array's low digit (as happens when x
// was itself produced by Div/Quantize), those trailing digits are zero by
// construction and are divided back off exactly.
func coefficientMagnitudeDigits(x Decimal) []uint64 {
	xd := x.toDynamicValue()
	totalShift := int64(xd.exp)*decDigitsPerDigit + int64(x.decPrec)
	if totalShift >= 0 {
		return trimDigits(mulByPow10(xd.digits, totalShift))
	}
	k := -totalShift
	digits := xd.digits
	whole := k / decDigitsPerDigit
	rem := k % decDigitsPerDigit
	if int(whole) >= len(digits) {
		return []uint64{0}
	}
	digits = digits[whole:]
	if rem != 0 {
		digits = divMagSmallExact(digits, pow10[rem])
	}
	return trimDigits(digits)
}

// Adjusted returns x rescaled to exactly p significant fractional decimal
// digits (spec §4.6): rounds off digits if p is smaller than x's current
// dec_prec, appends zero digits if p is larger.
func Adjusted(x Decimal, p uint16, mode RoundingMode) (Decimal, error) {
	if uint32(p) > MaxDecPrec {
		return Decimal{}, ErrPrecLimitExceeded
	}
	if x.IsZero() {
		return Decimal{sign: 0, decPrec: p}, nil
	}
	if p == x.decPrec {
		return x, nil
	}

	coeff := coefficientMagnitudeDigits(x)
	if p > x.decPrec {
		mag := packMagAtDecPrec(mulByPow10(coeff, int64(p-x.decPrec)), p)
		if int64(mag.exp) < MinExp || int64(mag.exp) > MaxExp {
			return Decimal{}, ErrExpLimitExceeded
		}
		return newDynamicDecimal(x.sign, p, mag), nil
	}

	drop := int64(x.decPrec - p)
	divisorMag := mulByPow10([]uint64{1}, drop)
	q, r := divModMag(coeff, divisorMag)
	if sigLen(r) != 0 && roundQRBig(x.Sign(), q, r, divisorMag, mode) {
		q = incrementMag(q)
	}
	mag := packMagAtDecPrec(q, p)
	return newDynamicDecimal(x.sign, p, mag), nil
}
