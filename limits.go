package fpdec

// Limits from spec §6.
const (
	// MaxDecPrec is the largest number of fractional decimal digits any
	// Decimal value can carry.
	MaxDecPrec = 65535
	// MinExp and MaxExp bound a Dynamic value's base-10^19 exponent, per
	// spec §6: MIN_EXP ~= -floor(MAX_DEC_PREC/19)+1 (how far negative the
	// exponent can go is capped by the fractional precision limit), while
	// MAX_EXP is the full int32 range (large positive exponents represent
	// huge integers, unrelated to dec_prec).
	MinExp = -(MaxDecPrec / 19) + 1
	MaxExp = (1 << 31) - 1

	// divExpGuard bounds the decimal-digit shift quotientAtScale (used by
	// Div and Quantize) will attempt to materialize as a literal
	// multiplication by a power of ten, to avoid treating an impossible
	// allocation as ordinary work.
	divExpGuard = 1 << 31
	// maxShiftedDecPrec is the largest dec_prec a Shifted-int value can
	// carry (spec §3 invariant: Shifted is only valid when dec_prec <= 9).
	maxShiftedDecPrec = 9
	// maxShiftedDigits is the largest decimal digit count a 96-bit
	// coefficient can hold (2^96-1 has 29 decimal digits).
	maxShiftedDigits = 29

	// defaultPrecisionLimit is the scale Divide searches up to, in decimal
	// digits, before giving up on finding a terminating quotient and
	// falling back to rounding at this scale (spec §4.6's "process
	// default" for precision_limit == -1).
	defaultPrecisionLimit = 28
)

// pow10 holds 10^0 .. 10^19, the largest run of powers of ten that still
// fit in a uint64 (10^19 < 2^64 < 2*10^19).
var pow10 = [20]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}
