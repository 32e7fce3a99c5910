// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package chisel

import (
	"errors"
	"fmt"
)

// A FaultKind identifies which pipeline stage detected a fault.
type FaultKind byte

// Constants defining the valid FaultKind values, one per stage.
const (
	DecodeFault FaultKind = 1 + iota // malformed or unsupported byte sequence
	ScanFault                        // scanner primitive misuse or source exhaustion
	LexFault                         // malformed lexeme
	SyntaxFault                      // token stream violates the grammar
)

var faultStr = [...]string{
	DecodeFault: "decode fault",
	ScanFault:   "scan fault",
	LexFault:    "lexical fault",
	SyntaxFault: "syntax fault",
}

func (k FaultKind) String() string {
	if int(k) < len(faultStr) && faultStr[k] != "" {
		return faultStr[k]
	}
	return "unknown fault"
}

// A Fault is an error detected by a pipeline stage. Every fault records the
// stage that produced it and the coordinates at which it was detected. A
// fault terminates further production from its stage, and stages above pass
// it upward unchanged.
type Fault struct {
	Kind    FaultKind
	Coords  Coords
	Message string

	err error
}

// Error satisfies the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Coords, f.Message)
}

// Unwrap supports error wrapping.
func (f *Fault) Unwrap() error { return f.err }

// Faultf constructs a Fault of the given kind at the given coordinates.
// Arguments are formatted as by fmt.Errorf; a %w verb records the wrapped
// error so that errors.Is and errors.As see through the fault.
func Faultf(kind FaultKind, at Coords, msg string, args ...any) *Fault {
	err := fmt.Errorf(msg, args...)
	return &Fault{Kind: kind, Coords: at, Message: err.Error(), err: errors.Unwrap(err)}
}
