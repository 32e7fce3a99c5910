// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package lexer

import (
	"strconv"

	"github.com/jonnycoombes/chisel"
)

// A Convert function turns the text of a numeric literal into its value. A
// converter must be a pure function: no side effects and no retries. The
// text it receives has already matched the grammar's number production, so
// only range and precision concerns remain.
type Convert func(text string) (float64, error)

// DefaultConvert is the conversion function used unless [Lexer.SetConvert]
// installs another: strconv.ParseFloat at 64-bit precision, which reports
// out-of-range values as errors rather than saturating.
func DefaultConvert(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

// A Numeric is the payload of a numeric token: the raw literal text plus a
// convert-on-first-read cache. In eager mode the lexer forces conversion
// when the token is produced; in lazy mode conversion waits for the first
// read, so documents whose values are never consumed never pay for it.
// Either way conversion runs exactly once, and the value or the fault is
// cached.
type Numeric struct {
	raw      string
	integral bool
	conv     Convert
	at       chisel.Coords

	fdone bool
	fval  float64
	ferr  error

	idone bool
	ival  int64
	ierr  error
}

// Raw returns the raw text of the literal.
func (n *Numeric) Raw() string { return n.raw }

// Integral reports whether the literal had neither fractional part nor
// exponent.
func (n *Numeric) Integral() bool { return n.integral }

// Float64 converts the literal through the conversion function. A failed
// conversion is reported as a lexical fault at the literal's coordinates.
func (n *Numeric) Float64() (float64, error) {
	if !n.fdone {
		n.fdone = true
		v, err := n.conv(n.raw)
		if err != nil {
			n.ferr = chisel.Faultf(chisel.LexFault, n.at, "invalid number %q: %w", n.raw, err)
		} else {
			n.fval = v
		}
	}
	return n.fval, n.ferr
}

// Int64 converts an integral literal to an int64. It reports a lexical
// fault for a non-integral literal or an out-of-range value.
func (n *Numeric) Int64() (int64, error) {
	if !n.idone {
		n.idone = true
		if !n.integral {
			n.ierr = chisel.Faultf(chisel.LexFault, n.at, "%q is not an integer", n.raw)
		} else if v, err := strconv.ParseInt(n.raw, 10, 64); err != nil {
			n.ierr = chisel.Faultf(chisel.LexFault, n.at, "invalid integer %q: %w", n.raw, err)
		} else {
			n.ival = v
		}
	}
	return n.ival, n.ierr
}
