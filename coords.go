// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package chisel

import "fmt"

// Coords identifies a single character position within a source input.
// The zero value denotes the start of input, before any character has been
// consumed.
type Coords struct {
	Line   int // line number, 1-based
	Column int // column of the character within its line, 1-based
	Offset int // absolute character offset, 0-based
}

// String renders c in "line:column" form. Positions reported below the
// scanner carry only an offset, and render as "offset n".
func (c Coords) String() string {
	if c.Line == 0 {
		return fmt.Sprintf("offset %d", c.Offset)
	}
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// Before reports whether c is strictly before o in the input.
func (c Coords) Before(o Coords) bool { return c.Offset < o.Offset }

// After reports whether c is strictly after o in the input.
func (c Coords) After(o Coords) bool { return c.Offset > o.Offset }

// A Span describes a contiguous range of source text, from the coordinates
// of the first character of a lexeme to those of its last.
type Span struct {
	Start, End Coords
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
