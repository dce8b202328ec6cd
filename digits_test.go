package fpdec

import (
	"reflect"
	"testing"
)

func dyn(exp int32, digits ...uint64) *dynamic {
	return &dynamic{exp: exp, digits: digits}
}

func TestNormalizeStripsZeros(t *testing.T) {
	t.Parallel()

	d := dyn(0, 0, 5, 0)
	got := d.clone2()
	got.normalize()
	if got.exp != 1 || !reflect.DeepEqual(got.digits, []uint64{5}) {
		t.Errorf("normalize: exp=%d digits=%v, want exp=1 digits=[5]", got.exp, got.digits)
	}
}

// clone2 is a tiny local copy helper so normalize's in-place mutation
// works on a copy rather than on the dynamic built by dyn above.
func (d *dynamic) clone2() *dynamic {
	cp := append([]uint64(nil), d.digits...)
	return &dynamic{exp: d.exp, digits: cp}
}

func TestNormalizeAllZero(t *testing.T) {
	t.Parallel()

	d := (&dynamic{exp: 5, digits: []uint64{0, 0}}).normalize()
	if !d.isZero() {
		t.Errorf("expected all-zero digits to normalize to zero, got %+v", d)
	}
}

func TestCmpMag(t *testing.T) {
	t.Parallel()

	if cmpMag([]uint64{1, 2}, []uint64{5}) <= 0 {
		t.Error("expected longer significant length to win")
	}
	if cmpMag([]uint64{5}, []uint64{1, 2}) >= 0 {
		t.Error("expected shorter significant length to lose")
	}
	if cmpMag([]uint64{1, 2, 0}, []uint64{1, 2}) != 0 {
		t.Error("expected trailing zero digits to be ignored")
	}
	if cmpMag([]uint64{3, 1}, []uint64{4, 1}) >= 0 {
		t.Error("expected lexicographic compare from most significant digit")
	}
}

func TestCmpDynamic(t *testing.T) {
	t.Parallel()

	// 5 * (1e19)^1 == 5*1e19 * (1e19)^0... expressed as equal values at
	// different exponents.
	a := dyn(1, 5)
	b := dyn(0, 0, 5)
	if cmpDynamic(a, b) != 0 {
		t.Errorf("expected equal values at different exponents to compare equal")
	}
	if cmpDynamic(dyn(1, 6), b) <= 0 {
		t.Error("expected 6*(1e19) > 5*(1e19)")
	}
}

func TestAddDynamic(t *testing.T) {
	t.Parallel()

	a := dyn(0, base1e19-1)
	b := dyn(0, 2)
	got := addDynamic(a, b)
	// (1e19-1) + 2 = 1e19+1, which overflows one base-1e19 digit into a
	// second.
	want := dyn(0, 1, 1)
	if got.exp != want.exp || !reflect.DeepEqual(got.digits, want.digits) {
		t.Errorf("addDynamic = exp=%d digits=%v, want exp=%d digits=%v", got.exp, got.digits, want.exp, want.digits)
	}
}

func TestSubDynamic(t *testing.T) {
	t.Parallel()

	larger := dyn(0, 1, 1) // 1e19 + 1
	smaller := dyn(0, 2)
	got := subDynamic(larger, smaller)
	want := dyn(0, base1e19-1)
	if got.exp != want.exp || !reflect.DeepEqual(got.digits, want.digits) {
		t.Errorf("subDynamic = exp=%d digits=%v, want exp=%d digits=%v", got.exp, got.digits, want.exp, want.digits)
	}
}

func TestMulMagAndMulDynamic(t *testing.T) {
	t.Parallel()

	a := dyn(0, 1000000000000000000) // 1e18
	b := dyn(0, 10)
	prod, ok := mulDynamic(a, b)
	if !ok {
		t.Fatal("unexpected overflow")
	}
	// 1e18 * 10 = 1e19, which normalizes to digit 0 at exponent 1... no:
	// value = 1e19 exactly = 1*(1e19)^1, so digits become [0,1] -> strip
	// leading zero digit via normalize to {exp:1, digits:[1]}? normalize
	// strips low-order ALL-ZERO digits (whole digit is zero), here the
	// low digit is exactly 0 (1e19 mod 1e19 == 0) so it folds into exp.
	if prod.exp != 1 || !reflect.DeepEqual(prod.digits, []uint64{1}) {
		t.Errorf("mulDynamic(1e18, 10) = exp=%d digits=%v, want exp=1 digits=[1]", prod.exp, prod.digits)
	}
}

func TestMulDynamicExpOverflow(t *testing.T) {
	t.Parallel()

	a := dyn(MaxExp, 1)
	b := dyn(1, 1)
	if _, ok := mulDynamic(a, b); ok {
		t.Error("expected exponent sum beyond MaxExp to report overflow")
	}
}

func TestDivModMagSingleDigitDivisor(t *testing.T) {
	t.Parallel()

	x := []uint64{100}
	y := []uint64{7}
	q, r := divModMag(x, y)
	if !reflect.DeepEqual(q, []uint64{14}) || !reflect.DeepEqual(r, []uint64{2}) {
		t.Errorf("divModMag(100,7) = q=%v r=%v, want q=[14] r=[2]", q, r)
	}
}

func TestDivModMagMultiDigitDivisor(t *testing.T) {
	t.Parallel()

	// x = 3*1e19+5, y = 1e19+1 (both base-1e19 digit arrays, low digit
	// first). y*3 = 3e19+3 <= x < y*4 = 4e19+4, so q=3, r=x-3y=2.
	x := []uint64{5, 3}
	y := []uint64{1, 1}
	q, r := divModMag(x, y)
	wantQ := []uint64{3}
	wantR := []uint64{2}
	if !reflect.DeepEqual(trimDigits(q), wantQ) || !reflect.DeepEqual(trimDigits(r), wantR) {
		t.Errorf("divModMag multi-digit = q=%v r=%v, want q=%v r=%v", q, r, wantQ, wantR)
	}
}

func TestPackMagAtDecPrecRoundTrip(t *testing.T) {
	t.Parallel()

	// An integer coefficient 123 at dec_prec 5 means value = 0.00123;
	// packMagAtDecPrec should fold that into an axiom-compliant Dynamic
	// whose rendered coefficient (via coefficientDigitsAllVariants, given
	// dec_prec 5) reproduces 123 padded to fill the fractional width.
	mag := packMagAtDecPrec([]uint64{123}, 5)
	dec := newDynamicDecimal(1, 5, mag)
	if got := dec.String(); got != "0.00123" {
		t.Errorf("packMagAtDecPrec(123, 5) -> %q, want 0.00123", got)
	}
}

func TestPackMagAtDecPrecLargeDecPrec(t *testing.T) {
	t.Parallel()

	// dec_prec larger than 19 forces the fold to land inside a carried
	// digit (r != 0 branch), exercising the packMagAtDecPrec ->
	// coefficientDigitsAllVariants trim path end to end.
	mag := packMagAtDecPrec([]uint64{7}, 25)
	dec := newDynamicDecimal(1, 25, mag)
	want := "0.0000000000000000000000007"
	if got := dec.String(); got != want {
		t.Errorf("packMagAtDecPrec(7, 25) -> %q, want %q", got, want)
	}
}
