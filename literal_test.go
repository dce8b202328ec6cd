package fpdec

import "testing"

func TestFromPartsBasic(t *testing.T) {
	t.Parallel()

	d, err := FromParts(1, []byte{1, 2, 3}, -2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.String(); got != "1.23" {
		t.Errorf("got %q, want 1.23", got)
	}
}

func TestFromPartsNegativeSign(t *testing.T) {
	t.Parallel()

	d, err := FromParts(-1, []byte{5}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "-5" {
		t.Errorf("got %q, want -5", d.String())
	}
}

func TestFromPartsZeroCoefficientForcesSignZero(t *testing.T) {
	t.Parallel()

	d, err := FromParts(-1, []byte{0, 0}, -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Sign() != 0 {
		t.Errorf("expected all-zero coefficient to force sign 0, got %d", d.Sign())
	}
	// dec_prec is still derived from exp alone, independent of the
	// zero-valued coefficient (invariant 2).
	if d.DecPrec() != 3 {
		t.Errorf("DecPrec = %d, want 3", d.DecPrec())
	}
}

func TestFromPartsRejectsInvalidDigit(t *testing.T) {
	t.Parallel()

	if _, err := FromParts(1, []byte{1, 10}, 0); err != ErrInvalidDecimalLiteral {
		t.Errorf("expected ErrInvalidDecimalLiteral, got %v", err)
	}
}

func TestFromPartsLargeExpTrailingZeros(t *testing.T) {
	t.Parallel()

	// coeffDigits [1,0] with exp -2 keeps dec_prec 2, so the trailing
	// zero is kept in the rendering (invariant 2).
	d, err := FromParts(1, []byte{1, 0}, -2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DecPrec() != 2 {
		t.Errorf("DecPrec = %d, want 2", d.DecPrec())
	}
	if d.String() != "0.10" {
		t.Errorf("got %q, want 0.10", d.String())
	}
}

func TestFromPartsPromotesToDynamic(t *testing.T) {
	t.Parallel()

	digits := make([]byte, 40)
	for i := range digits {
		digits[i] = 9
	}
	d, err := FromParts(1, digits, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsDynamic() {
		t.Error("expected a 40-digit coefficient to require the Dynamic variant")
	}
	want := ""
	for i := 0; i < 40; i++ {
		want += "9"
	}
	if d.String() != want {
		t.Errorf("got %q, want %q", d.String(), want)
	}
}

func TestParseBasicForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"5", "5"},
		{"-5", "-5"},
		{"5.00", "5.00"},
		{".5", "0.5"},
		{"-.25", "-0.25"},
		{"1.5e2", "150"},
		{"1.5e-2", "0.015"},
		{"+3", "3"},
		{"0", "0"},
	}
	for _, tc := range cases {
		d, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got := d.String(); got != tc.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{"", "abc", "1.2.3", "1e", "--1", "1-", ".", "e5"}
	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected an error, got nil", in)
		}
	}
}

func TestParseRejectsHugeExponent(t *testing.T) {
	t.Parallel()

	if _, err := Parse("1e999999999999999999"); err == nil {
		t.Error("expected an exponent-limit error for an enormous exponent")
	}
}

// For the Shifted variant, Digits() yields the coefficient's base-2^64
// halves {low64, high32} (spec §6's consumer interface), not decimal
// digits.
func TestDigitIteratorShiftedVariant(t *testing.T) {
	t.Parallel()

	d, _ := Parse("123.45")
	it, exp := d.Digits()
	want := []uint64{12345}
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v halves, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("half %d = %d, want %d", i, got[i], want[i])
		}
	}
	if exp != -2 {
		t.Errorf("exp = %d, want -2", exp)
	}
}

// A coefficient wide enough to need both the high32 and low64 halves.
func TestDigitIteratorShiftedVariantBothHalves(t *testing.T) {
	t.Parallel()

	d, _ := FromParts(1, []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}, 0)
	if d.IsDynamic() {
		t.Fatal("expected a 28-nines coefficient to still fit Shifted")
	}
	it, exp := d.Digits()
	if exp != 0 {
		t.Errorf("exp = %d, want 0", exp)
	}
	lo, ok := it.Next()
	if !ok || lo != d.shifted.lo {
		t.Errorf("low64 = %d, ok=%v, want %d", lo, ok, d.shifted.lo)
	}
	hi, ok := it.Next()
	if !ok || hi != uint64(d.shifted.hi) {
		t.Errorf("high32 = %d, ok=%v, want %d", hi, ok, d.shifted.hi)
	}
	if _, ok := it.Next(); ok {
		t.Error("expected exactly two halves once high32 is nonzero")
	}
}

// For the Dynamic variant, Digits() borrows the base-10^19 digit array
// itself (least-significant first) together with its own exponent, per
// spec §6's consumer interface and the dec_prec/exponent axiom that a
// Dynamic's value is always digits*(1e19)^exp.
func TestDigitIteratorDynamicVariant(t *testing.T) {
	t.Parallel()

	digits := make([]byte, 30)
	for i := range digits {
		digits[i] = byte(i%9 + 1)
	}
	d, err := FromParts(1, digits, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsDynamic() {
		t.Fatal("expected a 30-digit coefficient to require the Dynamic variant")
	}

	it, exp := d.Digits()
	if exp != int64(d.dyn.exp) {
		t.Errorf("exp = %d, want %d", exp, d.dyn.exp)
	}
	var got []uint64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != len(d.dyn.digits) {
		t.Fatalf("got %d digits, want %d", len(got), len(d.dyn.digits))
	}
	for i := range d.dyn.digits {
		if got[i] != d.dyn.digits[i] {
			t.Errorf("digit %d = %d, want %d", i, got[i], d.dyn.digits[i])
		}
	}

	want := "123456789123456789123456789123"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringIntegerHasNoDecimalPoint(t *testing.T) {
	t.Parallel()

	d, _ := Parse("42")
	if got := d.String(); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestStringZeroDecPrecZero(t *testing.T) {
	t.Parallel()

	if Zero.String() != "0" {
		t.Errorf("got %q, want 0", Zero.String())
	}
}
