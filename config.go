package fpdec

// defaultRoundingMode is the process-wide rounding mode RoundDefault
// resolves to. Spec §5/§9: reading it is a plain load, writing it is an
// explicit operation performed at initialization or by the caller, never
// expected to race with arithmetic. It starts out at HalfEven, matching
// the source's dflt_rounding_mode.
var defaultRoundingMode = RoundHalfEven

// DefaultRoundingMode returns the process-wide default rounding mode that
// RoundDefault resolves to.
func DefaultRoundingMode() RoundingMode {
	return defaultRoundingMode
}

// SetDefaultRoundingMode sets the process-wide default rounding mode,
// returning the previous value. Passing RoundDefault is rejected: the
// default can't resolve to itself.
func SetDefaultRoundingMode(mode RoundingMode) (previous RoundingMode, err error) {
	if mode == RoundDefault {
		return defaultRoundingMode, ErrInvalidRoundingMode
	}
	previous = defaultRoundingMode
	defaultRoundingMode = mode
	return previous, nil
}

func resolveMode(mode RoundingMode) RoundingMode {
	if mode == RoundDefault {
		return defaultRoundingMode
	}
	return mode
}
