package fpdec

import "strings"

// FromParts is the producer interface from spec §6: it builds a Decimal
// from a sign, a coefficient given as raw decimal digit values (0-9, most
// significant first), and a base-10 exponent, such that
// value = sign * coeffDigits * 10^exp. dec_prec is derived from exp alone
// (max(0, -exp)), independent of how many significant digits the
// coefficient has after normalization — so "0.10" (coeffDigits [1,0],
// exp -2) keeps dec_prec 2 and renders with its trailing zero
// (invariant 2).
func FromParts(sign int, coeffDigits []byte, exp int64) (Decimal, error) {
	switch {
	case sign > 0:
		sign = 1
	case sign < 0:
		sign = -1
	default:
		sign = 0
	}
	for _, dg := range coeffDigits {
		if dg > 9 {
			return Decimal{}, ErrInvalidDecimalLiteral
		}
	}

	start := 0
	for start < len(coeffDigits)-1 && coeffDigits[start] == 0 {
		start++
	}
	coeffDigits = coeffDigits[start:]

	allZero := true
	for _, dg := range coeffDigits {
		if dg != 0 {
			allZero = false
			break
		}
	}

	var decPrec uint16
	if exp < 0 {
		neg := -exp
		if neg > MaxDecPrec {
			return Decimal{}, ErrPrecLimitExceeded
		}
		decPrec = uint16(neg)
	}

	if allZero || sign == 0 {
		return Decimal{sign: 0, decPrec: decPrec}, nil
	}

	if shifted, ok := shiftedFromDigits(coeffDigits, exp, decPrec); ok {
		return newShiftedDecimal(int8(sign), decPrec, shifted), nil
	}

	dyn, err := dynamicFromCoeff(coeffDigits, exp)
	if err != nil {
		return Decimal{}, err
	}
	return newDynamicDecimal(int8(sign), decPrec, dyn), nil
}

// shiftedFromDigits attempts to build the Shifted-int coefficient
// directly from the literal's digits, without going through a Dynamic
// intermediate. Since dec_prec = max(0, -exp), the Shifted coefficient is
// exactly the coefficient digits with max(exp, 0) zero digits appended
// (multiplying by 10^exp when exp >= 0 is just appending zeros; when
// exp < 0, exp + dec_prec == 0, so the Shifted coefficient is simply the
// literal coefficient unchanged).
func shiftedFromDigits(coeffDigits []byte, exp int64, decPrec uint16) (shifted96, bool) {
	if decPrec > maxShiftedDecPrec {
		return shifted96{}, false
	}
	extraZeros := 0
	if exp > 0 {
		if exp > maxShiftedDigits {
			return shifted96{}, false
		}
		extraZeros = int(exp)
	}
	if len(coeffDigits)+extraZeros > maxShiftedDigits {
		return shifted96{}, false
	}
	acc := u128Zero
	for _, dg := range coeffDigits {
		var overflow bool
		acc, overflow = mulAddDigit(acc, 10, uint64(dg))
		if overflow {
			return shifted96{}, false
		}
	}
	for i := 0; i < extraZeros; i++ {
		var overflow bool
		acc, overflow = mulAddDigit(acc, 10, 0)
		if overflow {
			return shifted96{}, false
		}
	}
	return shiftedFromU128(acc)
}

func mulAddDigit(acc u128, base uint64, d uint64) (u128, bool) {
	hi, lo := mul128By64(acc, base)
	if hi != 0 {
		return u128{}, true
	}
	sum, carry := add128(lo, u128{Lo: d})
	if carry != 0 {
		return u128{}, true
	}
	return sum, false
}

// dynamicFromCoeff packs literal decimal digits into a base-10^19
// Dynamic magnitude, chunking 19 decimal digits at a time from the least
// significant end, then folds in the exp%19 remainder via a single
// small-constant multiply — spec §4.3's construction-from-coefficient
// path.
func dynamicFromCoeff(coeffDigits []byte, exp int64) (*dynamic, error) {
	n := len(coeffDigits)
	nChunks := (n + decDigitsPerDigit - 1) / decDigitsPerDigit
	digits := make([]uint64, nChunks)
	for i := 0; i < nChunks; i++ {
		end := n - decDigitsPerDigit*i
		start := end - decDigitsPerDigit
		if start < 0 {
			start = 0
		}
		var v uint64
		for _, ch := range coeffDigits[start:end] {
			v = v*10 + uint64(ch)
		}
		digits[i] = v
	}

	q64, r := floorDivMod19Wide(exp)
	if q64 < MinExp || q64 > MaxExp {
		return nil, ErrExpLimitExceeded
	}
	if r != 0 {
		digits = mulMagSmall(digits, pow10[r])
	}

	d := (&dynamic{exp: int32(q64), digits: digits}).normalize()
	if int64(d.exp) < MinExp || int64(d.exp) > MaxExp {
		return nil, ErrExpLimitExceeded
	}
	return d, nil
}

// floorDivMod19 is floorDivMod19Wide narrowed to int32, valid only when the
// caller already knows e/19 fits (e.g. packMagAtDecPrec's e is bounded by
// +/-MaxDecPrec, far inside int32 range).
func floorDivMod19(e int64) (q int32, r int) {
	q64, rr := floorDivMod19Wide(e)
	return int32(q64), rr
}

// floorDivMod19Wide is floorDivMod19 without narrowing the quotient to
// int32: dynamicFromCoeff's exp comes straight from a decimal literal and
// can span the full [MinExp*19, MaxExp*19] range, which overflows int32
// well before it overflows MinExp/MaxExp themselves.
func floorDivMod19Wide(e int64) (q int64, r int) {
	qq := e / decDigitsPerDigit
	rr := e % decDigitsPerDigit
	if rr < 0 {
		rr += decDigitsPerDigit
		qq--
	}
	return qq, int(rr)
}

// DigitIterator walks a Decimal's native-base coefficient, polymorphic
// over which variant backs the value (spec §6's consumer interface): for
// the Shifted variant it yields the two base-2^64 halves {low64, high32};
// for the Dynamic variant it yields the base-10^19 digit array itself,
// borrowed directly from the value's own backing slice. Either way the
// order is the array's own storage order, least-significant first.
type DigitIterator struct {
	vals []uint64
	pos  int
}

// Digits returns an iterator over x's native coefficient digits plus the
// exponent to apply in the iterator's own base (spec §6's consumer
// interface list: sign, dec_prec, magnitude, compare, this digit
// iterator, and IsDynamic()).
//
// For Shifted, exp is -dec_prec and value = sign * (lo + hi<<64) * 10^exp.
// For Dynamic, exp is dyn.exp itself and
// value = sign * (sum digits[i]*(1e19)^i) * (10^19)^exp, matching the
// dec_prec/exponent axiom that a Dynamic's own digits satisfy
// value = digits*(1e19)^exp with no further scaling.
func (d Decimal) Digits() (*DigitIterator, int64) {
	if d.dyn == nil {
		if d.shifted.hi == 0 {
			return &DigitIterator{vals: []uint64{d.shifted.lo}}, -int64(d.decPrec)
		}
		return &DigitIterator{vals: []uint64{d.shifted.lo, uint64(d.shifted.hi)}}, -int64(d.decPrec)
	}
	return &DigitIterator{vals: d.dyn.digits}, int64(d.dyn.exp)
}

// Next returns the next digit (least-significant first) and true, or
// (0, false) once exhausted.
func (it *DigitIterator) Next() (uint64, bool) {
	if it.pos >= len(it.vals) {
		return 0, false
	}
	v := it.vals[it.pos]
	it.pos++
	return v, true
}

func coefficientDecimalDigits(v u128) []byte {
	if v.isZero() {
		return []byte{0}
	}
	var rev []byte
	for !v.isZero() {
		q, r := divU128ByU64(v, 10)
		rev = append(rev, byte(r.Lo))
		v = q
	}
	out := make([]byte, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}

func digitToDecimalDigits(digit uint64) []byte {
	rev := make([]byte, 0, decDigitsPerDigit)
	for digit > 0 {
		rev = append(rev, byte(digit%10))
		digit /= 10
	}
	if len(rev) == 0 {
		rev = []byte{0}
	}
	out := make([]byte, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}

func paddedDecimalDigits(digit uint64) []byte {
	out := make([]byte, decDigitsPerDigit)
	for i := decDigitsPerDigit - 1; i >= 0; i-- {
		out[i] = byte(digit % 10)
		digit /= 10
	}
	return out
}

// Parse reads an ASCII decimal literal matching
// [+|-](int[.frac]|.frac)([eE][+|-]exp)?, hand-scanned rather than via
// regexp, grounded on original_source/src/libfpdec/parser.c's scanner.
func Parse(s string) (Decimal, error) {
	i := 0
	n := len(s)
	sign := 1
	if i < n && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}

	var intDigits, fracDigits []byte
	for i < n && isASCIIDigit(s[i]) {
		intDigits = append(intDigits, s[i]-'0')
		i++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && isASCIIDigit(s[i]) {
			fracDigits = append(fracDigits, s[i]-'0')
			i++
		}
	}
	if len(intDigits) == 0 && len(fracDigits) == 0 {
		return Decimal{}, ErrInvalidDecimalLiteral
	}

	var exp10 int64
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		expSign := int64(1)
		if i < n && (s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				expSign = -1
			}
			i++
		}
		start := i
		var expDigits []byte
		for i < n && isASCIIDigit(s[i]) {
			expDigits = append(expDigits, s[i]-'0')
			i++
		}
		if i == start {
			return Decimal{}, ErrInvalidDecimalLiteral
		}
		v, ok := parseSmallInt(expDigits)
		if !ok {
			v = 1 << 62
		}
		exp10 = expSign * v
	}

	if i != n {
		return Decimal{}, ErrInvalidDecimalLiteral
	}

	coeff := append(intDigits, fracDigits...)
	if len(coeff) == 0 {
		coeff = []byte{0}
	}
	totalExp := exp10 - int64(len(fracDigits))
	if totalExp > MaxExp*decDigitsPerDigit || totalExp < MinExp*decDigitsPerDigit {
		if totalExp > 0 {
			return Decimal{}, ErrExpLimitExceeded
		}
		return Decimal{}, ErrPrecLimitExceeded
	}
	return FromParts(sign, coeff, totalExp)
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseSmallInt(digits []byte) (int64, bool) {
	var v int64
	for _, d := range digits {
		if v > (1<<62)/10 {
			return 0, false
		}
		v = v*10 + int64(d)
	}
	return v, true
}

// String renders x in plain decimal notation (no exponent form),
// matching dec_prec exactly: an integer value with dec_prec 0 prints with
// no decimal point, and trailing fractional zeros implied by dec_prec are
// always shown.
func (d Decimal) String() string {
	if d.sign == 0 && d.decPrec == 0 {
		return "0"
	}
	digits := coefficientDigitsAllVariants(d)
	var b strings.Builder
	if d.sign < 0 {
		b.WriteByte('-')
	}
	dp := int(d.decPrec)
	if dp == 0 {
		writeDigits(&b, digits)
		return b.String()
	}
	if len(digits) <= dp {
		pad := dp - len(digits) + 1
		padded := make([]byte, pad)
		digits = append(padded, digits...)
	}
	intPart := digits[:len(digits)-dp]
	fracPart := digits[len(digits)-dp:]
	writeDigits(&b, intPart)
	b.WriteByte('.')
	writeDigits(&b, fracPart)
	return b.String()
}

func writeDigits(b *strings.Builder, digits []byte) {
	for _, dg := range digits {
		b.WriteByte('0' + dg)
	}
}

// coefficientDigitsAllVariants renders the full decimal-digit coefficient
// C such that value = sign * C * 10^(-dec_prec). The Dynamic variant's own
// digit array M always satisfies value = M * (10^19)^dyn.exp exactly
// (dec_prec never enters that formula); reconciling the two means
// C = M * 10^(19*dyn.exp + dec_prec). When that exponent is >= 0, C is M's
// decimal expansion with trailing zeros appended. When it is negative
// (dec_prec's fold landed inside M, as happens after division/quantize —
// see digits.go's packMagAtDecPrec), the low digits of M's expansion are
// zero by construction and are trimmed back off instead.
func coefficientDigitsAllVariants(d Decimal) []byte {
	if d.dyn == nil {
		return coefficientDecimalDigits(d.shifted.u128())
	}
	digits := dynamicMDigits(d.dyn)
	totalShift := int64(d.dyn.exp)*decDigitsPerDigit + int64(d.decPrec)
	switch {
	case totalShift > 0:
		digits = append(digits, make([]byte, totalShift)...)
	case totalShift < 0:
		k := int(-totalShift)
		if k >= len(digits) {
			digits = []byte{0}
		} else {
			digits = digits[:len(digits)-k]
		}
	}
	return digits
}

func dynamicMDigits(d *dynamic) []byte {
	var out []byte
	for i := len(d.digits) - 1; i >= 0; i-- {
		if i == len(d.digits)-1 {
			out = append(out, digitToDecimalDigits(d.digits[i])...)
		} else {
			out = append(out, paddedDecimalDigits(d.digits[i])...)
		}
	}
	return out
}
