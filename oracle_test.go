package fpdec

import (
	"testing"

	"github.com/ericlagergren/decimal"
)

// oracleValue builds an independent *decimal.Big from a mantissa and a
// decimal scale (value = mantissa * 10^-scale), mirroring the teacher's own
// deci/decf helpers in fix64_testdata.go — used here to cross-check this
// package's hand-rolled arithmetic against a battle-tested decimal library
// instead of hand-computed expected strings.
func oracleValue(mantissa int64, scale int) *decimal.Big {
	return decimal.WithPrecision(60).SetMantScale(mantissa, scale)
}

func crossCheck(t *testing.T, got Decimal, want *decimal.Big) {
	t.Helper()
	reparsed, err := Parse(want.String())
	if err != nil {
		t.Fatalf("oracle value %q failed to parse back: %v", want.String(), err)
	}
	if Compare(got, reparsed, false) != 0 {
		t.Errorf("got %q, oracle wants %q", got.String(), want.String())
	}
}

func TestAddAgainstOracle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		aMant  int64
		aScale int
		bMant  int64
		bScale int
	}{
		{123456, 3, 789012, 3},
		{-456789, 3, 123456, 3},
		{987654321, 5, 123456789, 4},
		{1, 0, -1, 0},
		{99999999, 8, 1, 8},
		{0, 0, 123, 2},
	}
	for _, tc := range cases {
		a := mustParse(t, oracleValue(tc.aMant, tc.aScale).String())
		b := mustParse(t, oracleValue(tc.bMant, tc.bScale).String())
		got := Add(a, b)
		want := decimal.WithPrecision(60).Add(oracleValue(tc.aMant, tc.aScale), oracleValue(tc.bMant, tc.bScale))
		crossCheck(t, got, want)
	}
}

func TestSubAgainstOracle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		aMant  int64
		aScale int
		bMant  int64
		bScale int
	}{
		{123456, 3, 789012, 3},
		{456789, 3, 123456, 3},
		{1, 0, 1, 0},
		{100000, 5, 1, 5},
		{-1, 0, -1, 0},
	}
	for _, tc := range cases {
		a := mustParse(t, oracleValue(tc.aMant, tc.aScale).String())
		b := mustParse(t, oracleValue(tc.bMant, tc.bScale).String())
		got := Sub(a, b)
		want := decimal.WithPrecision(60).Sub(oracleValue(tc.aMant, tc.aScale), oracleValue(tc.bMant, tc.bScale))
		crossCheck(t, got, want)
	}
}

func TestMulAgainstOracle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		aMant  int64
		aScale int
		bMant  int64
		bScale int
	}{
		{123, 2, 456, 2},
		{-25, 1, 4, 0},
		{111111, 3, 9, 0},
		{98765, 4, 12345, 4},
	}
	for _, tc := range cases {
		a := mustParse(t, oracleValue(tc.aMant, tc.aScale).String())
		b := mustParse(t, oracleValue(tc.bMant, tc.bScale).String())
		got, err := Mul(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.WithPrecision(60).Mul(oracleValue(tc.aMant, tc.aScale), oracleValue(tc.bMant, tc.bScale))
		crossCheck(t, got, want)
	}
}

// TestDivAgainstOracleExactCases sticks to divisions that terminate exactly
// in base 10, so both this package's default-precision search and the
// oracle's fixed-precision Quo land on the same value without either side's
// rounding-mode choice coming into play.
func TestDivAgainstOracleExactCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		aMant  int64
		aScale int
		bMant  int64
		bScale int
	}{
		{10, 0, 4, 0},
		{1, 0, 8, 0},
		{5, 1, 2, 0},
		{100, 0, 25, 0},
	}
	for _, tc := range cases {
		a := mustParse(t, oracleValue(tc.aMant, tc.aScale).String())
		b := mustParse(t, oracleValue(tc.bMant, tc.bScale).String())
		got, err := Div(a, b, -1, RoundDefault)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.WithPrecision(60).Quo(oracleValue(tc.aMant, tc.aScale), oracleValue(tc.bMant, tc.bScale))
		crossCheck(t, got, want)
	}
}
