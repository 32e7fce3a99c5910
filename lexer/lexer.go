// Copyright (C) 2023 J. Coombes. All Rights Reserved.

// Package lexer produces positioned JSON tokens from a character scanner.
//
// A Lexer recognizes the lexical classes of the JSON grammar: structural
// punctuation, string literals with escape processing, numeric literals,
// and the keyword constants. Tokens are produced lazily, one per call to
// Next, with one token of lookahead available through Peek. End of input is
// an explicit EndOfInput token rather than an error, so consumers can
// distinguish a finished input from a broken one.
package lexer

import (
	"errors"
	"io"

	"go4.org/mem"

	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/internal/escape"
	"github.com/jonnycoombes/chisel/scanner"
)

// A Lexer consumes scanner primitives to recognize JSON lexemes. A Lexer
// wraps exactly one scanner for its lifetime. After a fault, or after the
// EndOfInput token, every subsequent call returns the same result.
type Lexer struct {
	sc   *scanner.Scanner
	conv Convert
	lazy bool

	peeked bool
	tok    Token
	err    error
	done   bool
}

// New constructs a Lexer that consumes characters from sc.
func New(sc *scanner.Scanner) *Lexer {
	return &Lexer{sc: sc, conv: DefaultConvert}
}

// LazyNumerics configures deferred numeric conversion. When enabled, numeric
// tokens carry only their raw text and conversion runs on the first read of
// the value; a conversion fault then surfaces at that read instead of at lex
// time.
func (lx *Lexer) LazyNumerics(ok bool) { lx.lazy = ok }

// SetConvert replaces the numeric conversion function. Passing nil restores
// DefaultConvert.
func (lx *Lexer) SetConvert(fn Convert) {
	if fn == nil {
		fn = DefaultConvert
	}
	lx.conv = fn
}

// Peek returns the token Next would return, without consuming it. Repeated
// calls without an intervening Next return the same token.
func (lx *Lexer) Peek() (Token, error) {
	if !lx.peeked {
		lx.tok, lx.err = lx.scan()
		lx.peeked = true
		if lx.err != nil || lx.tok.Kind == EndOfInput {
			lx.done = true
		}
	}
	return lx.tok, lx.err
}

// Next returns the next token of the input. At the end of the input it
// returns the EndOfInput token; faults from lower stages pass through
// unchanged, and lexical faults are reported as a *chisel.Fault of kind
// chisel.LexFault.
func (lx *Lexer) Next() (Token, error) {
	tok, err := lx.Peek()
	if !lx.done {
		lx.peeked = false
	}
	return tok, err
}

func (lx *Lexer) scan() (Token, error) {
	if err := lx.skipSpace(); err != nil {
		if err == io.EOF {
			loc := lx.sc.Location()
			return Token{Kind: EndOfInput, Span: chisel.Span{Start: loc, End: loc}}, nil
		}
		return Token{}, err
	}

	ch, err := lx.sc.Advance()
	if err != nil {
		return Token{}, err
	}
	switch {
	case ch.Ch == '{':
		return lx.emit(ObjectStart)
	case ch.Ch == '}':
		return lx.emit(ObjectEnd)
	case ch.Ch == '[':
		return lx.emit(ArrayStart)
	case ch.Ch == ']':
		return lx.emit(ArrayEnd)
	case ch.Ch == ':':
		return lx.emit(Colon)
	case ch.Ch == ',':
		return lx.emit(Comma)
	case ch.Ch == '"':
		return lx.scanString(ch)
	case ch.Ch == '-' || isDigit(ch.Ch):
		return lx.scanNumber(ch)
	case ch.Ch == 't':
		return lx.scanKeyword(memTrue, True)
	case ch.Ch == 'f':
		return lx.scanKeyword(memFalse, False)
	case ch.Ch == 'n':
		return lx.scanKeyword(memNull, Null)
	default:
		return Token{}, lx.failf(ch.Coords, "unexpected %q", ch.Ch)
	}
}

// skipSpace discards whitespace up to the start of the next lexeme. It
// returns io.EOF, not a fault, when the input ends cleanly.
func (lx *Lexer) skipSpace() error {
	for {
		ch, err := lx.sc.Lookahead()
		if err != nil {
			return err
		}
		if !isSpace(ch) {
			lx.sc.Reset()
			return nil
		}
		if _, err := lx.sc.Advance(); err != nil {
			return err
		}
	}
}

func (lx *Lexer) emit(kind Kind) (Token, error) {
	text, span := lx.sc.Take()
	return Token{Kind: kind, Span: span, text: text}, nil
}

// scanString consumes a string token; the opening quote has already been
// advanced. The payload is the unescaped value, and the raw text, quotes
// included, is kept as the token text. An unterminated string faults at the
// opening quote's coordinates.
func (lx *Lexer) scanString(open scanner.Char) (Token, error) {
	for {
		ch, err := lx.sc.Advance()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{}, lx.failf(open.Coords, "unterminated string")
			}
			return Token{}, err
		}
		switch {
		case ch.Ch == '"':
			text, span := lx.sc.Take()
			dec, err := escape.Unquote(mem.S(text[1 : len(text)-1]))
			if err != nil {
				return Token{}, lx.failf(open.Coords, "invalid string: %w", err)
			}
			return Token{Kind: String, Span: span, text: text, str: string(dec)}, nil
		case ch.Ch == '\\':
			if err := lx.scanEscape(); err != nil {
				if errors.Is(err, io.EOF) {
					return Token{}, lx.failf(open.Coords, "unterminated string")
				}
				return Token{}, err
			}
		case ch.Ch < ' ':
			return Token{}, lx.failf(ch.Coords, "unescaped control %q in string", ch.Ch)
		}
	}
}

// scanEscape consumes the remainder of a \-escape, validating it without
// decoding; decoding happens in one pass when the string closes.
func (lx *Lexer) scanEscape() error {
	ch, err := lx.sc.Advance()
	if err != nil {
		return err
	}
	switch ch.Ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		for i := 0; i < 4; i++ {
			h, err := lx.sc.Advance()
			if err != nil {
				return err
			}
			if !isHexDigit(h.Ch) {
				return lx.failf(h.Coords, "invalid %q in Unicode escape", h.Ch)
			}
		}
		return nil
	default:
		return lx.failf(ch.Coords, "invalid %q after escape", ch.Ch)
	}
}

// scanNumber consumes the maximal run matching the grammar's number
// production, then hands the text to the conversion function. The shape of
// the run, not the converted value, decides between Integer and Number.
func (lx *Lexer) scanNumber(first scanner.Char) (Token, error) {
	integral := true
	if first.Ch == '-' {
		if _, err := lx.require(isDigit, "digit"); err != nil {
			return Token{}, err
		}
	}
	if err := lx.readWhile(isDigit); err != nil {
		return Token{}, err
	}
	if hasExtraLeadingZeroes(lx.sc.Text()) {
		return Token{}, lx.failf(first.Coords, "extra leading zeroes in %q", lx.sc.Text())
	}

	// If a decimal point follows, consume a fractional part.
	if ok, err := lx.accept("."); err != nil {
		return Token{}, err
	} else if ok {
		integral = false
		if _, err := lx.require(isDigit, "digit"); err != nil {
			return Token{}, err
		}
		if err := lx.readWhile(isDigit); err != nil {
			return Token{}, err
		}
	}

	// If an exponent follows, consume it.
	if ok, err := lx.accept("eE"); err != nil {
		return Token{}, err
	} else if ok {
		integral = false
		if _, err := lx.accept("+-"); err != nil {
			return Token{}, err
		}
		if _, err := lx.require(isDigit, "digit"); err != nil {
			return Token{}, err
		}
		if err := lx.readWhile(isDigit); err != nil {
			return Token{}, err
		}
	}

	text, span := lx.sc.Take()
	num := &Numeric{raw: text, integral: integral, conv: lx.conv, at: span.Start}
	if !lx.lazy {
		if _, err := num.Float64(); err != nil {
			return Token{}, err
		}
	}
	kind := Number
	if integral {
		kind = Integer
	}
	return Token{Kind: kind, Span: span, text: text, num: num}, nil
}

// scanKeyword consumes the fixed run for a literal constant; the first
// character has already been advanced and matched.
func (lx *Lexer) scanKeyword(want mem.RO, kind Kind) (Token, error) {
	for i := 1; i < want.Len(); i++ {
		ch, err := lx.sc.Advance()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{}, lx.failf(lx.sc.Location(), "truncated constant %q", lx.sc.Text())
			}
			return Token{}, err
		}
		if ch.Ch != rune(want.At(i)) {
			return Token{}, lx.failf(ch.Coords, "unexpected %q in constant", ch.Ch)
		}
	}
	text, span := lx.sc.Take()
	return Token{Kind: kind, Span: span, text: text}, nil
}

var (
	memTrue  = mem.S("true")
	memFalse = mem.S("false")
	memNull  = mem.S("null")
)

// accept consumes the next character if it is one of chars, reporting
// whether it did. A character that does not match is pushed back; end of
// input is not an error here, the decision falls to the caller's next read.
func (lx *Lexer) accept(chars string) (bool, error) {
	ch, err := lx.sc.Advance()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if ch.Ch < 0x80 && mem.IndexByte(mem.S(chars), byte(ch.Ch)) >= 0 {
		return true, nil
	}
	return false, lx.sc.Pushback()
}

// require advances one character matching f, or fails with a lexical fault
// naming the desired label.
func (lx *Lexer) require(f func(rune) bool, label string) (scanner.Char, error) {
	ch, err := lx.sc.Advance()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return scanner.Char{}, lx.failf(lx.sc.Location(), "want %s, got end of input", label)
		}
		return scanner.Char{}, err
	}
	if !f(ch.Ch) {
		return scanner.Char{}, lx.failf(ch.Coords, "got %q, want %s", ch.Ch, label)
	}
	return ch, nil
}

// readWhile consumes characters matching f until the first that does not,
// which is pushed back onto the input.
func (lx *Lexer) readWhile(f func(rune) bool) error {
	for {
		ch, err := lx.sc.Advance()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !f(ch.Ch) {
			return lx.sc.Pushback()
		}
	}
}

func (lx *Lexer) failf(at chisel.Coords, msg string, args ...any) error {
	return chisel.Faultf(chisel.LexFault, at, msg, args...)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the integer part in text has
// redundant leading zeroes, disallowed by the grammar: 0 and 0.1 are fine,
// 01 and -00.1 are not.
func hasExtraLeadingZeroes(text string) bool {
	if len(text) > 0 && text[0] == '-' {
		text = text[1:]
	}
	return len(text) > 1 && text[0] == '0'
}
