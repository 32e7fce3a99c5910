// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package parser

import (
	"strings"

	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/lexer"
)

// A Value is a single node of a parsed document tree.
type Value interface {
	// Span returns the source coordinates the node covers, from its first
	// character to its last.
	Span() chisel.Span

	// JSON renders the node as JSON text.
	JSON() string
}

// An Object is a sequence of members. Members keep the order the input gave
// them, and a key repeated in the input is repeated in the sequence.
type Object struct {
	span    chisel.Span
	Members []*Member
}

func (o *Object) Span() chisel.Span { return o.span }

// Len returns the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key.Text == key {
			return m
		}
	}
	return nil
}

// Get returns the value of the given key, or nil if no member has it. When
// the input repeated the key, the value is the last one given, as if each
// member had been written into a map in order.
func (o *Object) Get(key string) Value {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key.Text == key {
			return o.Members[i].Value
		}
	}
	return nil
}

func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair of an object. A Member is itself a
// Value whose span runs from the first character of its key to the last
// character of its value.
type Member struct {
	span  chisel.Span
	Key   *String
	Value Value
}

func (m *Member) Span() chisel.Span { return m.span }

func (m *Member) JSON() string { return m.Key.JSON() + ":" + m.Value.JSON() }

// An Array is a sequence of values in input order.
type Array struct {
	span   chisel.Span
	Values []Value
}

func (a *Array) Span() chisel.Span { return a.span }

// Len returns the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

func (a *Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a string value or a member key, fully decoded.
type String struct {
	span chisel.Span
	Text string
}

func (s *String) Span() chisel.Span { return s.span }

func (s *String) JSON() string { return chisel.Quote(s.Text) }

// An Integer is a numeric value whose literal had neither fractional part
// nor exponent.
type Integer struct {
	span chisel.Span
	num  *lexer.Numeric
}

func (z *Integer) Span() chisel.Span { return z.span }

// Int64 returns the value of z.
func (z *Integer) Int64() (int64, error) { return z.num.Int64() }

// Float64 returns the value of z as a float64.
func (z *Integer) Float64() (float64, error) { return z.num.Float64() }

func (z *Integer) JSON() string { return z.num.Raw() }

// A Number is a numeric value whose literal had a fractional part or an
// exponent.
type Number struct {
	span chisel.Span
	num  *lexer.Numeric
}

func (n *Number) Span() chisel.Span { return n.span }

// Float64 returns the value of n.
func (n *Number) Float64() (float64, error) { return n.num.Float64() }

func (n *Number) JSON() string { return n.num.Raw() }

// A Bool is a true or false value.
type Bool struct {
	span chisel.Span
	val  bool
}

func (b *Bool) Span() chisel.Span { return b.span }

// Value returns the truth value of b.
func (b *Bool) Value() bool { return b.val }

func (b *Bool) JSON() string {
	if b.val {
		return "true"
	}
	return "false"
}

// A Null is a null value.
type Null struct {
	span chisel.Span
}

func (Null) JSON() string { return "null" }

func (n Null) Span() chisel.Span { return n.span }

// A treeBuilder is a Handler that assembles a document tree from the event
// stream. The stack holds the open containers, plus a pending member on top
// of its object while the member's value is being built.
type treeBuilder struct {
	stack []Value
	root  Value
}

func (tb *treeBuilder) ObjectStart(e Event) error {
	tb.stack = append(tb.stack, &Object{span: e.Span})
	return nil
}

func (tb *treeBuilder) ArrayStart(e Event) error {
	tb.stack = append(tb.stack, &Array{span: e.Span})
	return nil
}

func (tb *treeBuilder) Key(e Event) error {
	key := &String{span: e.Span, Text: e.Str()}
	tb.stack = append(tb.stack, &Member{span: e.Span, Key: key})
	return nil
}

func (tb *treeBuilder) ObjectEnd(e Event) error {
	o := tb.pop().(*Object)
	o.span.End = e.Span.End
	tb.reduce(o)
	return nil
}

func (tb *treeBuilder) ArrayEnd(e Event) error {
	a := tb.pop().(*Array)
	a.span.End = e.Span.End
	tb.reduce(a)
	return nil
}

func (tb *treeBuilder) Value(e Event) error {
	var v Value
	switch e.Kind {
	case StringValue:
		v = &String{span: e.Span, Text: e.Str()}
	case IntegerValue:
		v = &Integer{span: e.Span, num: e.Tok.Num()}
	case NumberValue:
		v = &Number{span: e.Span, num: e.Tok.Num()}
	case BoolValue:
		v = &Bool{span: e.Span, val: e.Bool()}
	default:
		v = Null{span: e.Span}
	}
	tb.reduce(v)
	return nil
}

func (tb *treeBuilder) pop() Value {
	v := tb.stack[len(tb.stack)-1]
	tb.stack = tb.stack[:len(tb.stack)-1]
	return v
}

// reduce attaches a completed value to the structure under construction: to
// the pending member if one is open, to the innermost array, or as the root
// when nothing remains open.
func (tb *treeBuilder) reduce(v Value) {
	if len(tb.stack) == 0 {
		tb.root = v
		return
	}
	switch top := tb.stack[len(tb.stack)-1].(type) {
	case *Member:
		top.Value = v
		top.span.End = v.Span().End
		tb.pop()
		o := tb.stack[len(tb.stack)-1].(*Object)
		o.Members = append(o.Members, top)
	case *Array:
		top.Values = append(top.Values, v)
	}
}

// ParseTree consumes the tokens of lx through a Parser and returns the
// document tree of the root value.
func ParseTree(lx *lexer.Lexer) (Value, error) {
	var tb treeBuilder
	if err := New(lx).Each(&tb); err != nil {
		return nil, err
	}
	return tb.root, nil
}
