package fpdec

// Decimal is the tagged value from spec §3: a sign, a dec_prec (number of
// significant fractional decimal digits), and a magnitude held in
// whichever of the two variants is narrowest. The zero value is the
// decimal zero (sign 0, dec_prec 0, Shifted coefficient 0), matching
// invariant 1 that zero is always represented as Shifted.
//
// dyn == nil selects the Shifted-int variant (the coefficient lives in
// shifted); dyn != nil selects the Dynamic/digit-array variant and
// shifted is unused. Exactly one of the two is ever live, mirroring the
// discriminated union from spec §9's design notes.
type Decimal struct {
	sign    int8
	decPrec uint16
	shifted shifted96
	dyn     *dynamic
}

// Zero is the canonical zero value, equal to the Decimal zero value.
var Zero = Decimal{}

// IsDynamic reports which variant currently backs the value. Exposed for
// the external Digits() iterator contract (spec §6) and tests; it is
// never something a caller needs to branch on to get correct arithmetic.
func (d Decimal) IsDynamic() bool { return d.dyn != nil }

// IsZero reports whether the value is the decimal zero.
func (d Decimal) IsZero() bool { return d.sign == 0 }

// Sign returns -1, 0, or 1.
func (d Decimal) Sign() int { return int(d.sign) }

// DecPrec returns the number of significant fractional decimal digits
// (spec's dec_prec).
func (d Decimal) DecPrec() uint16 { return d.decPrec }

func newShiftedDecimal(sign int8, decPrec uint16, mag shifted96) Decimal {
	if mag.isZero() {
		sign = 0
	}
	return Decimal{sign: sign, decPrec: decPrec, shifted: mag}
}

// newDynamicDecimal builds a Decimal from a sign, dec_prec, and Dynamic
// magnitude, applying the representation policy from spec §4.5: after
// normalizing, it downgrades to Shifted whenever the magnitude and
// dec_prec both fit the 96-bit/<=9 envelope.
func newDynamicDecimal(sign int8, decPrec uint16, mag *dynamic) Decimal {
	mag.normalize()
	if mag.isZero() {
		return Decimal{sign: 0, decPrec: decPrec}
	}
	if s, ok := digitsToShifted(mag, decPrec); ok {
		return newShiftedDecimal(sign, decPrec, s)
	}
	return Decimal{sign: sign, decPrec: decPrec, dyn: mag}
}

// toDynamicValue returns the value's magnitude as a Dynamic digit array
// regardless of which variant actually backs it, for code paths (cross-
// variant comparison, promotion on overflow) that need a single common
// shape to operate on.
func (d Decimal) toDynamicValue() *dynamic {
	if d.dyn != nil {
		return d.dyn
	}
	if d.shifted.isZero() {
		return &dynamic{exp: 0, digits: []uint64{0}}
	}
	return shiftedToDigits(d.shifted, d.decPrec)
}

// compareAbs compares two values' magnitudes, ignoring sign. When both
// operands are Shifted it aligns their dec_prec and compares coefficients
// directly; otherwise it falls back to a Dynamic comparison (a pure digit
// shift, no precision loss).
func compareAbs(x, y Decimal) int {
	if x.dyn == nil && y.dyn == nil {
		ax, bx, _, ok := alignShifted(x.shifted, x.decPrec, y.shifted, y.decPrec)
		if ok {
			return cmpShifted(ax, bx)
		}
	}
	return cmpDynamic(x.toDynamicValue(), y.toDynamicValue())
}

// Compare orders x and y. With ignoreSign false it is the ordinary
// signed numeric order; with ignoreSign true it compares |x| to |y|.
func Compare(x, y Decimal, ignoreSign bool) int {
	if !ignoreSign {
		if x.sign != y.sign {
			if x.sign < y.sign {
				return -1
			}
			return 1
		}
		if x.sign == 0 {
			return 0
		}
		c := compareAbs(x, y)
		if x.sign < 0 {
			return -c
		}
		return c
	}
	return compareAbs(x, y)
}

// Magnitude returns the base-10 exponent of x's most significant nonzero
// decimal digit (spec §4.7/§6's magnitude(x); magnitude(0.007) == -3,
// magnitude(9) == 0). Undefined on zero, matching fpdecimal.cpp's
// magnitude() raising ERANGE there: callers get a sentinel 0 and
// ErrMagnitudeUndefined.
//
// toDynamicValue already folds dec_prec into the Dynamic exponent for
// both variants (spec §4.5's axiom that value == digits*(1e19)^exp). The
// top base-1e19 digit sits decDigitsPerDigit*(len(digits)-1) decimal
// places above the units digit of the whole array, which itself is
// scaled up by decDigitsPerDigit*exp; within that top digit, the leading
// nonzero decimal digit is at position leadingDigitDecimalWidth(top)-1.
func Magnitude(x Decimal) (int, error) {
	if x.IsZero() {
		return 0, ErrMagnitudeUndefined
	}
	dyn := x.toDynamicValue()
	top := dyn.digits[len(dyn.digits)-1]
	chunkShift := decDigitsPerDigit * (len(dyn.digits) - 1 + int(dyn.exp))
	return chunkShift + leadingDigitDecimalWidth(top) - 1, nil
}

// Sign returns -1, 0, or 1, same as x.Sign().
func Sign(x Decimal) int { return x.Sign() }

// Precision returns x's dec_prec, same as x.DecPrec().
func Precision(x Decimal) uint16 { return x.decPrec }
