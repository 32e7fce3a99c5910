// Copyright (C) 2023 J. Coombes. All Rights Reserved.

// Package parser checks JSON structure over a token stream and exposes the
// result through two front ends: a pull iterator of structural events, and a
// document tree assembled from those same events.
//
// Both front ends run the one grammar. The event iterator is the parser;
// the tree is a Handler wired to it. Anything expressible over the events,
// the tree sees identically, fault for fault and span for span.
package parser

import (
	"io"
	"strings"

	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/decoder"
	"github.com/jonnycoombes/chisel/lexer"
	"github.com/jonnycoombes/chisel/scanner"
)

// A Handler receives the structural events of a parse in document order.
// Returning an error from any method stops the parse and surfaces that error
// to the caller.
type Handler interface {
	// ObjectStart is invoked when an object begins.
	ObjectStart(e Event) error

	// ObjectEnd is invoked when the current object closes.
	ObjectEnd(e Event) error

	// ArrayStart is invoked when an array begins.
	ArrayStart(e Event) error

	// ArrayEnd is invoked when the current array closes.
	ArrayEnd(e Event) error

	// Key is invoked for each object member key, before the member's value.
	Key(e Event) error

	// Value is invoked for each scalar value.
	Value(e Event) error
}

// Parse states. The state names the token class the grammar expects next.
type state byte

const (
	sValue    state = iota // a value
	sKeyFirst              // first member key, or an immediate close
	sKey                   // a member key
	sColon                 // the colon of a member
	sObject                // a comma before the next member, or a close
	sArrFirst              // first element value, or an immediate close
	sArray                 // a comma before the next element, or a close
	sEnd                   // nothing: the root value is complete
)

var stateStr = [...]string{
	sValue:    "a value",
	sKeyFirst: `a member key or "}"`,
	sKey:      "a member key",
	sColon:    `":"`,
	sObject:   `"," or "}"`,
	sArrFirst: `a value or "]"`,
	sArray:    `"," or "]"`,
	sEnd:      "end of input",
}

// A Parser validates the token stream of one JSON document against the
// grammar and yields structural events. A Parser wraps exactly one lexer.
// After a fault every subsequent call returns the same fault.
type Parser struct {
	lx    *lexer.Lexer
	state state
	stack []bool // true for an open object, false for an open array
	err   error
}

// New constructs a Parser that consumes tokens from lx.
func New(lx *lexer.Lexer) *Parser { return &Parser{lx: lx} }

// NewReader constructs a Parser over a full pipeline reading UTF-8 text
// from r.
func NewReader(r io.Reader) *Parser {
	return New(lexer.New(scanner.New(decoder.NewUTF8(r))))
}

// Next returns the next structural event of the document. After the final
// event of a complete document Next returns io.EOF. A structural error is
// reported as a *chisel.Fault of kind chisel.SyntaxFault at the offending
// token's coordinates; faults from lower stages pass through unchanged.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	ev, err := p.next()
	if err != nil {
		p.err = err
	}
	return ev, err
}

func (p *Parser) next() (Event, error) {
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return Event{}, err
		}
		switch p.state {
		case sValue, sArrFirst:
			if p.state == sArrFirst && tok.Kind == lexer.ArrayEnd {
				return p.close(tok)
			}
			if !tok.Kind.IsValue() {
				return Event{}, p.failf(tok, p.state)
			}
			return p.value(tok)

		case sKeyFirst, sKey:
			if p.state == sKeyFirst && tok.Kind == lexer.ObjectEnd {
				return p.close(tok)
			}
			if tok.Kind != lexer.String {
				return Event{}, p.failf(tok, p.state)
			}
			p.state = sColon
			return Event{Kind: Key, Span: tok.Span, Tok: tok}, nil

		case sColon:
			if tok.Kind != lexer.Colon {
				return Event{}, p.failf(tok, sColon)
			}
			p.state = sValue

		case sObject:
			switch tok.Kind {
			case lexer.Comma:
				p.state = sKey
			case lexer.ObjectEnd:
				return p.close(tok)
			default:
				return Event{}, p.failf(tok, sObject)
			}

		case sArray:
			switch tok.Kind {
			case lexer.Comma:
				p.state = sValue
			case lexer.ArrayEnd:
				return p.close(tok)
			default:
				return Event{}, p.failf(tok, sArray)
			}

		case sEnd:
			if tok.Kind == lexer.EndOfInput {
				return Event{}, io.EOF
			}
			return Event{}, chisel.Faultf(chisel.SyntaxFault, tok.Span.Start,
				"trailing %v after the root value", tok.Kind)
		}
	}
}

// value handles a value token: scalars yield their event directly, and an
// open brace or bracket pushes a frame and yields the corresponding start
// event.
func (p *Parser) value(tok lexer.Token) (Event, error) {
	switch tok.Kind {
	case lexer.ObjectStart:
		p.stack = append(p.stack, true)
		p.state = sKeyFirst
		return Event{Kind: ObjectStart, Span: tok.Span, Tok: tok}, nil
	case lexer.ArrayStart:
		p.stack = append(p.stack, false)
		p.state = sArrFirst
		return Event{Kind: ArrayStart, Span: tok.Span, Tok: tok}, nil
	case lexer.String:
		return p.scalar(StringValue, tok)
	case lexer.Integer:
		return p.scalar(IntegerValue, tok)
	case lexer.Number:
		return p.scalar(NumberValue, tok)
	case lexer.True, lexer.False:
		return p.scalar(BoolValue, tok)
	case lexer.Null:
		return p.scalar(NullValue, tok)
	}
	return Event{}, p.failf(tok, sValue)
}

func (p *Parser) scalar(kind EventKind, tok lexer.Token) (Event, error) {
	p.after()
	return Event{Kind: kind, Span: tok.Span, Tok: tok}, nil
}

// close pops the innermost open container and yields its end event.
func (p *Parser) close(tok lexer.Token) (Event, error) {
	kind := ArrayEnd
	if p.stack[len(p.stack)-1] {
		kind = ObjectEnd
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.after()
	return Event{Kind: kind, Span: tok.Span, Tok: tok}, nil
}

// after moves the state past a completed value, per the enclosing container.
func (p *Parser) after() {
	if n := len(p.stack); n == 0 {
		p.state = sEnd
	} else if p.stack[n-1] {
		p.state = sObject
	} else {
		p.state = sArray
	}
}

func (p *Parser) failf(tok lexer.Token, want state) error {
	return chisel.Faultf(chisel.SyntaxFault, tok.Span.Start,
		"expected %s, got %v", stateStr[want], tok.Kind)
}

// Each drives h with the events of the document, in order, until the
// document completes or an error occurs. A handler error stops the parse
// immediately and is returned as given.
func (p *Parser) Each(h Handler) error {
	for {
		ev, err := p.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		switch ev.Kind {
		case ObjectStart:
			err = h.ObjectStart(ev)
		case ObjectEnd:
			err = h.ObjectEnd(ev)
		case ArrayStart:
			err = h.ArrayStart(ev)
		case ArrayEnd:
			err = h.ArrayEnd(ev)
		case Key:
			err = h.Key(ev)
		default:
			err = h.Value(ev)
		}
		if err != nil {
			return err
		}
	}
}

// Parse reads a complete JSON document from r and returns its tree.
func Parse(r io.Reader) (Value, error) { return ParseTree(NewReader(r).lx) }

// ParseString parses a complete JSON document from s and returns its tree.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }
