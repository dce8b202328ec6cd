/*
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fpdec

// Sentinel errors for the taxonomy in spec §7 (invalid-input,
// resource-exhaustion, limit-exceeded, math), one per error code listed
// in spec §6. On any of these the operation's output is left as the zero
// value: no partial updates are observable.
var (
	// ErrPrecLimitExceeded is PREC_LIMIT_EXCEEDED: the result's dec_prec
	// would exceed MaxDecPrec.
	ErrPrecLimitExceeded error = PrecLimitExceededError{}
	// ErrExpLimitExceeded is EXP_LIMIT_EXCEEDED: the result's base-10^19
	// exponent falls outside [MinExp, MaxExp].
	ErrExpLimitExceeded error = ExpLimitExceededError{}
	// ErrNDigitsLimitExceeded is N_DIGITS_LIMIT_EXCEEDED: a coefficient
	// carries more decimal digits than the operation can accept.
	ErrNDigitsLimitExceeded error = NDigitsLimitExceededError{}
	// ErrInvalidDecimalLiteral is INVALID_DECIMAL_LITERAL: the ASCII
	// literal does not match the grammar in spec §6.
	ErrInvalidDecimalLiteral error = InvalidDecimalLiteralError{}
	// ErrDivideByZero is DIVIDE_BY_ZERO.
	ErrDivideByZero error = DivideByZeroError{}
	// ErrInvalidRoundingMode is raised when a caller tries to configure
	// the default rounding mode to RoundDefault itself.
	ErrInvalidRoundingMode error = InvalidRoundingModeError{}
	// ErrMagnitudeUndefined is raised by Magnitude on the zero value,
	// mirroring fpdecimal.cpp's magnitude() raising ERANGE there.
	ErrMagnitudeUndefined error = MagnitudeUndefinedError{}
)

// PrecLimitExceededError indicates an operation's result would need more
// fractional digits than MaxDecPrec allows.
type PrecLimitExceededError struct{}

var _ error = PrecLimitExceededError{}

func (PrecLimitExceededError) Error() string { return "precision limit exceeded" }

// ExpLimitExceededError indicates a Dynamic value's base-10^19 exponent
// would fall outside [MinExp, MaxExp].
type ExpLimitExceededError struct{}

var _ error = ExpLimitExceededError{}

func (ExpLimitExceededError) Error() string { return "exponent limit exceeded" }

// NDigitsLimitExceededError indicates a coefficient has more decimal
// digits than the constructor can accept.
type NDigitsLimitExceededError struct{}

var _ error = NDigitsLimitExceededError{}

func (NDigitsLimitExceededError) Error() string { return "number of digits limit exceeded" }

// InvalidDecimalLiteralError indicates an ASCII literal did not match the
// grammar `[+|-](int[.frac]|.frac)([eE][+|-]exp)?`.
type InvalidDecimalLiteralError struct{}

var _ error = InvalidDecimalLiteralError{}

func (InvalidDecimalLiteralError) Error() string { return "invalid decimal literal" }

// DivideByZeroError indicates an attempt to divide, or take the modulus,
// by a zero value.
type DivideByZeroError struct{}

var _ error = DivideByZeroError{}

func (DivideByZeroError) Error() string { return "division by zero" }

// InvalidRoundingModeError indicates an attempt to set the process-wide
// default rounding mode to RoundDefault.
type InvalidRoundingModeError struct{}

var _ error = InvalidRoundingModeError{}

func (InvalidRoundingModeError) Error() string { return "invalid rounding mode" }

// MagnitudeUndefinedError indicates Magnitude was called on the zero
// value, which has no leading nonzero decimal digit.
type MagnitudeUndefinedError struct{}

var _ error = MagnitudeUndefinedError{}

func (MagnitudeUndefinedError) Error() string { return "magnitude undefined for zero" }
