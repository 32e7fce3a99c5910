// Copyright (C) 2023 J. Coombes. All Rights Reserved.

// Package scanner provides character-level navigation primitives over a
// decoded input: advance, pushback, lookahead and take, with per-character
// source coordinates.
//
// A Scanner keeps two explicit buffers. The scan buffer holds characters
// that have been advanced but not yet surrendered by Take; its concatenated
// text is always exactly the lexeme currently being assembled. The pushback
// buffer holds characters returned to the front of the input, and is always
// drained before a fresh character is pulled from the decoder. A single
// lookahead slot caches at most one character peeked but not yet committed
// to either buffer.
package scanner

import (
	"io"

	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/decoder"
)

// A Char is a single decoded character together with its source coordinates.
type Char struct {
	Ch     rune
	Coords chisel.Coords
}

// A Scanner buffers characters pulled from a decoder and tracks the line,
// column and absolute offset of each. A Scanner wraps exactly one decoder
// and is consumed to exhaustion or first fault.
type Scanner struct {
	dec *decoder.Decoder

	buf    []Char // scan buffer: advanced but not yet taken
	back   []Char // pushback buffer: returned to the front of the input
	la     rune   // cached lookahead character
	haveLA bool

	cur  position // position of the most recently advanced character
	base position // value of cur when the scan buffer was last empty
}

type position struct {
	at      chisel.Coords
	nl      bool // the character at this position was a newline
	started bool // any character has been advanced
}

// New constructs a Scanner that consumes characters from dec.
func New(dec *decoder.Decoder) *Scanner { return &Scanner{dec: dec} }

// Location returns the coordinates of the most recently advanced character,
// or the start-of-input coordinates if none has been advanced yet.
func (s *Scanner) Location() chisel.Coords { return s.cur.at }

// Advance pulls one character into the scan buffer and returns it. The
// character comes from the pushback buffer if that is non-empty, from a
// pending lookahead otherwise, or failing both from the decoder. Advance
// fails with a ScanFault wrapping io.EOF when the input is exhausted; decode
// and I/O faults pass through unchanged.
func (s *Scanner) Advance() (Char, error) {
	if n := len(s.back); n > 0 {
		c := s.back[n-1]
		s.back = s.back[:n-1]
		s.push(c)
		return c, nil
	}

	var ch rune
	if s.haveLA {
		ch, s.haveLA = s.la, false
	} else {
		var err error
		ch, err = s.dec.Next()
		if err == io.EOF {
			return Char{}, chisel.Faultf(chisel.ScanFault, s.cur.at, "input exhausted: %w", err)
		} else if err != nil {
			return Char{}, err
		}
	}
	c := Char{Ch: ch, Coords: s.nextCoords()}
	s.push(c)
	return c, nil
}

// Pushback removes the most recently advanced character from the scan buffer
// and returns it to the front of the input. It fails with a ScanFault if the
// scan buffer is empty. Advance followed by Pushback restores the buffer and
// coordinate state exactly.
func (s *Scanner) Pushback() error {
	n := len(s.buf)
	if n == 0 {
		return chisel.Faultf(chisel.ScanFault, s.cur.at, "pushback on empty scan buffer")
	}
	s.back = append(s.back, s.buf[n-1])
	s.buf = s.buf[:n-1]
	if n > 1 {
		s.setPos(s.buf[n-2])
	} else {
		s.cur = s.base
	}
	return nil
}

// Lookahead peeks at the next character of the input without consuming it.
// Repeated calls without an intervening Advance return the same character
// and move no coordinate. At the end of input Lookahead returns io.EOF.
func (s *Scanner) Lookahead() (rune, error) {
	if n := len(s.back); n > 0 {
		return s.back[n-1].Ch, nil
	}
	if s.haveLA {
		return s.la, nil
	}
	ch, err := s.dec.Next()
	if err != nil {
		return 0, err
	}
	s.la, s.haveLA = ch, true
	return ch, nil
}

// Take returns the text of the scan buffer together with its span, and
// clears the buffer. This is the token-boundary reset: after Take the
// scanner is ready to assemble the next lexeme.
func (s *Scanner) Take() (string, chisel.Span) {
	if len(s.buf) == 0 {
		return "", chisel.Span{Start: s.cur.at, End: s.cur.at}
	}
	rs := make([]rune, len(s.buf))
	for i, c := range s.buf {
		rs[i] = c.Ch
	}
	span := chisel.Span{Start: s.buf[0].Coords, End: s.buf[len(s.buf)-1].Coords}
	s.buf = s.buf[:0]
	s.base = s.cur
	return string(rs), span
}

// Text returns the text of the scan buffer without clearing it.
func (s *Scanner) Text() string {
	rs := make([]rune, len(s.buf))
	for i, c := range s.buf {
		rs[i] = c.Ch
	}
	return string(rs)
}

// Reset discards the scan buffer without producing text. Characters already
// advanced stay consumed and keep their effect on coordinates; only the
// buffered text is dropped.
func (s *Scanner) Reset() {
	s.buf = s.buf[:0]
	s.base = s.cur
}

func (s *Scanner) push(c Char) {
	s.buf = append(s.buf, c)
	s.setPos(c)
}

func (s *Scanner) setPos(c Char) {
	s.cur = position{at: c.Coords, nl: c.Ch == '\n', started: true}
}

// nextCoords computes the coordinates of the next fresh character: offset
// advances unconditionally, and a newline moves the following character to
// column 1 of the next line.
func (s *Scanner) nextCoords() chisel.Coords {
	if !s.cur.started {
		return chisel.Coords{Line: 1, Column: 1, Offset: 0}
	}
	c := s.cur.at
	c.Offset++
	if s.cur.nl {
		c.Line++
		c.Column = 1
	} else {
		c.Column++
	}
	return c
}
