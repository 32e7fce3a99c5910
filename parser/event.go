// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package parser

import (
	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/lexer"
)

// An EventKind classifies a structural parse event.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	ObjectStart  EventKind = 1 + iota // entered an object
	ObjectEnd                         // left the current object
	ArrayStart                        // entered an array
	ArrayEnd                          // left the current array
	Key                               // object member key
	StringValue                       // string scalar
	IntegerValue                      // integer scalar
	NumberValue                       // floating-point scalar
	BoolValue                         // boolean scalar
	NullValue                         // null scalar
)

var eventStr = [...]string{
	ObjectStart:  "ObjectStart",
	ObjectEnd:    "ObjectEnd",
	ArrayStart:   "ArrayStart",
	ArrayEnd:     "ArrayEnd",
	Key:          "Key",
	StringValue:  "String",
	IntegerValue: "Integer",
	NumberValue:  "Number",
	BoolValue:    "Bool",
	NullValue:    "Null",
}

func (k EventKind) String() string {
	if k == 0 || int(k) >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[k]
}

// An Event is a single structural step of a parse: entering or leaving a
// container, an object member key, or a scalar value. Events carry parse
// meaning, not lexical form; the token that produced the event is retained
// for its payload and position. Events are not accumulated by the parser;
// any retention is the consumer's.
type Event struct {
	Kind EventKind
	Span chisel.Span
	Tok  lexer.Token
}

// Str returns the decoded string payload of a Key or StringValue event.
func (e Event) Str() string { return e.Tok.Str() }

// Int64 returns the value of an IntegerValue event.
func (e Event) Int64() (int64, error) { return e.Tok.Int64() }

// Float64 returns the value of an IntegerValue or NumberValue event.
func (e Event) Float64() (float64, error) { return e.Tok.Float64() }

// Bool returns the value of a BoolValue event.
func (e Event) Bool() bool { return e.Tok.Bool() }
