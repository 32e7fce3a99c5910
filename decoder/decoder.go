// Copyright (C) 2023 J. Coombes. All Rights Reserved.

// Package decoder converts raw bytes into a lazy, finite sequence of
// characters.
//
// A Decoder pulls bytes from an io.Reader one character's worth at a time
// and assembles each character by bit-pattern extraction on the raw byte
// values: the leading byte's high-order bits select the sequence length, and
// the payload bits of each continuation byte are shifted and masked into the
// accumulated code point. No conversion tables are consulted and no buffers
// are allocated per character.
//
// Two encodings are supported: UTF-8, and a strict 7-bit ASCII subset in
// which any byte with the high bit set is a fault.
package decoder

import (
	"bufio"
	"io"

	"github.com/jonnycoombes/chisel"
)

// Encoding selects the byte-to-character conversion scheme for a Decoder.
type Encoding byte

// Constants defining the supported encodings.
const (
	UTF8  Encoding = iota // UTF-8, the default
	ASCII                 // strict 7-bit ASCII
)

// A Decoder converts bytes from an underlying reader into characters, one
// per call to Next. A Decoder is lazy, finite and non-restartable: once Next
// has reported io.EOF or a fault, every subsequent call reports the same
// result, and the underlying reader is never advanced again.
type Decoder struct {
	r   *bufio.Reader
	enc Encoding
	off int   // byte offset of the next unread byte
	err error // sticky: io.EOF or the first fault
}

// New constructs a Decoder that consumes input from r using enc.
func New(r io.Reader, enc Encoding) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br, enc: enc}
}

// NewUTF8 constructs a UTF-8 Decoder that consumes input from r.
func NewUTF8(r io.Reader) *Decoder { return New(r, UTF8) }

// NewASCII constructs a strict ASCII Decoder that consumes input from r.
func NewASCII(r io.Reader) *Decoder { return New(r, ASCII) }

// Offset reports the byte offset of the next unread byte of the input.
func (d *Decoder) Offset() int { return d.off }

// Next decodes and returns the next character of the input. It returns
// io.EOF when the input is exhausted at a character boundary, or a
// [*chisel.Fault] of kind [chisel.DecodeFault] whose coordinates carry the
// byte offset of the offending byte if the input is not valid in the
// decoder's encoding. Any other error is an I/O fault from the underlying
// reader, passed through unchanged.
func (d *Decoder) Next() (rune, error) {
	if d.err != nil {
		return 0, d.err
	}
	ch, err := d.decode()
	if err != nil {
		d.err = err
		return 0, err
	}
	return ch, nil
}

func (d *Decoder) decode() (rune, error) {
	start := d.off
	b0, err := d.readByte()
	if err != nil {
		return 0, err
	}

	if d.enc == ASCII {
		if b0 >= 0x80 {
			return 0, d.fail(start, "non-ASCII byte 0x%02x", b0)
		}
		return rune(b0), nil
	}

	var ch rune
	var cont int
	switch {
	case b0&0x80 == 0x00: // 0xxxxxxx
		return rune(b0), nil
	case b0&0xE0 == 0xC0: // 110xxxxx
		ch, cont = rune(b0&0x1F), 1
	case b0&0xF0 == 0xE0: // 1110xxxx
		ch, cont = rune(b0&0x0F), 2
	case b0&0xF8 == 0xF0: // 11110xxx
		ch, cont = rune(b0&0x07), 3
	case b0&0xC0 == 0x80:
		return 0, d.fail(start, "unexpected continuation byte 0x%02x", b0)
	default:
		return 0, d.fail(start, "invalid leading byte 0x%02x", b0)
	}

	for i := 0; i < cont; i++ {
		b, err := d.readByte()
		if err == io.EOF {
			return 0, d.fail(start, "truncated sequence at end of input")
		} else if err != nil {
			return 0, err
		}
		if b&0xC0 != 0x80 { // continuation bytes are 10xxxxxx
			return 0, d.fail(d.off-1, "malformed continuation byte 0x%02x", b)
		}
		ch = ch<<6 | rune(b&0x3F)
	}
	return ch, nil
}

func (d *Decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == nil {
		d.off++
	}
	return b, err
}

func (d *Decoder) fail(off int, msg string, args ...any) error {
	return chisel.Faultf(chisel.DecodeFault, chisel.Coords{Offset: off}, msg, args...)
}
