// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package lexer

import (
	"fmt"

	"github.com/jonnycoombes/chisel"
)

// A Kind classifies a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid token
	ObjectStart             // left brace "{"
	ObjectEnd               // right brace "}"
	ArrayStart              // left square bracket "["
	ArrayEnd                // right square bracket "]"
	Colon                   // colon ":"
	Comma                   // comma ","
	String                  // quoted string
	Integer                 // number with no fraction or exponent
	Number                  // number with fraction and/or exponent
	True                    // constant: true
	False                   // constant: false
	Null                    // constant: null
	EndOfInput              // explicit terminal marker, not a fault
)

var kindStr = [...]string{
	Invalid:     "invalid token",
	ObjectStart: `"{"`,
	ObjectEnd:   `"}"`,
	ArrayStart:  `"["`,
	ArrayEnd:    `"]"`,
	Colon:       `":"`,
	Comma:       `","`,
	String:      "string",
	Integer:     "integer",
	Number:      "number",
	True:        "true",
	False:       "false",
	Null:        "null",
	EndOfInput:  "end of input",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// IsValue reports whether k can begin a value.
func (k Kind) IsValue() bool {
	switch k {
	case ObjectStart, ArrayStart, String, Integer, Number, True, False, Null:
		return true
	}
	return false
}

// A Token is a single positioned lexeme of the input. String tokens carry
// their decoded payload and numeric tokens their conversion state, so no
// consumer ever re-scans raw text.
type Token struct {
	Kind Kind
	Span chisel.Span

	text string   // raw text as scanned
	str  string   // decoded payload, String tokens only
	num  *Numeric // numeric payload, Integer and Number tokens only
}

// Text returns the raw text of the token as it appeared in the input.
func (t Token) Text() string { return t.text }

// Str returns the decoded payload of a String token: quotation marks
// removed and escape sequences undone. It panics if the token is not a
// String.
func (t Token) Str() string {
	if t.Kind != String {
		panic(fmt.Sprintf("Str on %v token", t.Kind))
	}
	return t.str
}

// Num returns the numeric payload of an Integer or Number token. It panics
// for any other kind.
func (t Token) Num() *Numeric {
	if t.num == nil {
		panic(fmt.Sprintf("Num on %v token", t.Kind))
	}
	return t.num
}

// Int64 returns the value of an Integer token. The error is the lexical
// fault from conversion, if any.
func (t Token) Int64() (int64, error) { return t.Num().Int64() }

// Float64 returns the value of an Integer or Number token. The error is the
// lexical fault from conversion, if any.
func (t Token) Float64() (float64, error) { return t.Num().Float64() }

// Bool returns the value of a True or False token. It panics for any other
// kind.
func (t Token) Bool() bool {
	switch t.Kind {
	case True:
		return true
	case False:
		return false
	}
	panic(fmt.Sprintf("Bool on %v token", t.Kind))
}
