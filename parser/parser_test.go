// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package parser_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/jonnycoombes/chisel"
	"github.com/jonnycoombes/chisel/parser"
)

func TestEvents(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`true`, `Value true <true>`},
		{`null`, `Value null <null>`},
		{`-15.5`, `Value number <-15.5>`},
		{`"hi"`, `Value string <"hi">`},

		{`{}`, "ObjectStart\nObjectEnd"},
		{`[]`, "ArrayStart\nArrayEnd"},

		{`{"a":15}`, `
ObjectStart
Key <a>
Value integer <15>
ObjectEnd`},

		{`{"a": 1, "b": [true, null]}`, `
ObjectStart
Key <a>
Value integer <1>
Key <b>
ArrayStart
Value true <true>
Value null <null>
ArrayEnd
ObjectEnd`},

		{`[[1,2],{"x":[]},"end"]`, `
ArrayStart
ArrayStart
Value integer <1>
Value integer <2>
ArrayEnd
ObjectStart
Key <x>
ArrayStart
ArrayEnd
ObjectEnd
Value string <"end">
ArrayEnd`},
	}

	for _, test := range tests {
		th := new(traceHandler)
		p := parser.NewReader(strings.NewReader(test.input))
		if err := p.Each(th); err != nil {
			t.Errorf("Input %#q: Each failed: %v", test.input, err)
			continue
		}
		want := strings.TrimSpace(test.want)
		if got := th.output(); got != want {
			t.Errorf("Input: %#q\nEvents: (-got, +want)\n%s",
				test.input, diff.LineDiff(got, want))
		}
	}
}

func TestSyntaxFaults(t *testing.T) {
	tests := []struct {
		input string
		want  string // trace before the fault
		estr  string
	}{
		{``, ``, `syntax fault at offset 0: expected a value, got end of input`},
		{`   `, ``, `syntax fault at 1:3: expected a value, got end of input`},

		// Unbalanced object bits.
		{`{`, `ObjectStart`,
			`syntax fault at 1:1: expected a member key or "}", got end of input`},
		{`}`, ``, `syntax fault at 1:1: expected a value, got "}"`},
		{`{false:1}`, `ObjectStart`,
			`syntax fault at 1:2: expected a member key or "}", got false`},
		{`{"a":}`, "ObjectStart\nKey <a>",
			`syntax fault at 1:6: expected a value, got "}"`},
		{`{"a":1,`, "ObjectStart\nKey <a>\nValue integer <1>",
			`syntax fault at 1:7: expected a member key, got end of input`},
		{`{"a":1,}`, "ObjectStart\nKey <a>\nValue integer <1>",
			`syntax fault at 1:8: expected a member key, got "}"`},
		{`{"a" 1}`, "ObjectStart\nKey <a>",
			`syntax fault at 1:6: expected ":", got integer`},
		{`{"a":1 "b":2}`, "ObjectStart\nKey <a>\nValue integer <1>",
			`syntax fault at 1:8: expected "," or "}", got string`},

		// Unbalanced array bits.
		{`[`, `ArrayStart`,
			`syntax fault at 1:1: expected a value or "]", got end of input`},
		{`]`, ``, `syntax fault at 1:1: expected a value, got "]"`},
		{`[15,`, "ArrayStart\nValue integer <15>",
			`syntax fault at 1:4: expected a value, got end of input`},
		{`[15,]`, "ArrayStart\nValue integer <15>",
			`syntax fault at 1:5: expected a value, got "]"`},
		{`[15 16]`, "ArrayStart\nValue integer <15>",
			`syntax fault at 1:5: expected "," or "]", got integer`},
		{`[}`, `ArrayStart`,
			`syntax fault at 1:2: expected a value or "]", got "}"`},

		// Material after the root value.
		{`{} []`, "ObjectStart\nObjectEnd",
			`syntax fault at 1:4: trailing "[" after the root value`},
		{`1 2`, `Value integer <1>`,
			`syntax fault at 1:3: trailing integer after the root value`},
		{`null,`, `Value null <null>`,
			`syntax fault at 1:5: trailing "," after the root value`},
	}

	for _, test := range tests {
		th := new(traceHandler)
		p := parser.NewReader(strings.NewReader(test.input))
		err := p.Each(th)
		if err == nil {
			t.Errorf("Input %#q: Each did not report an error", test.input)
			continue
		}
		var f *chisel.Fault
		if !errors.As(err, &f) || f.Kind != chisel.SyntaxFault {
			t.Errorf("Input %#q: got %v, want a syntax fault", test.input, err)
		}
		if got := err.Error(); got != test.estr {
			t.Errorf("Input %#q: error %q, want %q", test.input, got, test.estr)
		}
		if got, want := th.output(), strings.TrimSpace(test.want); got != want {
			t.Errorf("Input: %#q\nEvents: (-got, +want)\n%s",
				test.input, diff.LineDiff(got, want))
		}
	}
}

func TestNext(t *testing.T) {
	p := parser.NewReader(strings.NewReader(`{"n": [1]}`))
	want := []parser.EventKind{
		parser.ObjectStart, parser.Key, parser.ArrayStart,
		parser.IntegerValue, parser.ArrayEnd, parser.ObjectEnd,
	}
	var got []parser.EventKind
	for {
		ev, err := p.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, ev.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}

	// The terminal result is sticky.
	for i := 0; i < 3; i++ {
		if _, err := p.Next(); err != io.EOF {
			t.Errorf("Next after end: got %v, want io.EOF", err)
		}
	}
}

func TestEventSpans(t *testing.T) {
	p := parser.NewReader(strings.NewReader("{\n \"ab\": [5]\n}"))
	want := []chisel.Span{
		{Start: chisel.Coords{Line: 1, Column: 1, Offset: 0}, End: chisel.Coords{Line: 1, Column: 1, Offset: 0}},
		{Start: chisel.Coords{Line: 2, Column: 2, Offset: 3}, End: chisel.Coords{Line: 2, Column: 5, Offset: 6}},
		{Start: chisel.Coords{Line: 2, Column: 8, Offset: 9}, End: chisel.Coords{Line: 2, Column: 8, Offset: 9}},
		{Start: chisel.Coords{Line: 2, Column: 9, Offset: 10}, End: chisel.Coords{Line: 2, Column: 9, Offset: 10}},
		{Start: chisel.Coords{Line: 2, Column: 10, Offset: 11}, End: chisel.Coords{Line: 2, Column: 10, Offset: 11}},
		{Start: chisel.Coords{Line: 3, Column: 1, Offset: 13}, End: chisel.Coords{Line: 3, Column: 1, Offset: 13}},
	}
	var got []chisel.Span
	for {
		ev, err := p.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, ev.Span)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Spans: (-want, +got)\n%s", diff)
	}
}

func TestHandlerError(t *testing.T) {
	sentinel := errors.New("stop here")
	th := &traceHandler{failKey: "b", err: sentinel}
	p := parser.NewReader(strings.NewReader(`{"a":1,"b":2,"c":3}`))
	if err := p.Each(th); err != sentinel {
		t.Fatalf("Each: got %v, want %v", err, sentinel)
	}
	const want = "ObjectStart\nKey <a>\nValue integer <1>"
	if got := th.output(); got != want {
		t.Errorf("Events: (-got, +want)\n%s", diff.LineDiff(got, want))
	}
}

func TestLowerFaultsPassThrough(t *testing.T) {
	tests := []struct {
		input string
		kind  chisel.FaultKind
	}{
		{"[tru]", chisel.LexFault},
		{`["\q"]`, chisel.LexFault},
		{"[\"a\xfe\"]", chisel.DecodeFault},
	}
	for _, test := range tests {
		p := parser.NewReader(strings.NewReader(test.input))
		err := p.Each(new(traceHandler))
		var f *chisel.Fault
		if !errors.As(err, &f) || f.Kind != test.kind {
			t.Errorf("Input %#q: got %v, want a %v", test.input, err, test.kind)
		}
	}
}

// A traceHandler records one line per event. If failKey is set, the handler
// reports err for that member key.
type traceHandler struct {
	buf     bytes.Buffer
	failKey string
	err     error
}

func (h *traceHandler) pr(msg string, args ...any) error {
	fmt.Fprintf(&h.buf, msg+"\n", args...)
	return nil
}

func (h *traceHandler) output() string { return strings.TrimSpace(h.buf.String()) }

func (h *traceHandler) ObjectStart(parser.Event) error { return h.pr("ObjectStart") }
func (h *traceHandler) ObjectEnd(parser.Event) error   { return h.pr("ObjectEnd") }
func (h *traceHandler) ArrayStart(parser.Event) error  { return h.pr("ArrayStart") }
func (h *traceHandler) ArrayEnd(parser.Event) error    { return h.pr("ArrayEnd") }

func (h *traceHandler) Key(e parser.Event) error {
	if h.failKey != "" && e.Str() == h.failKey {
		return h.err
	}
	return h.pr("Key <%s>", e.Str())
}

func (h *traceHandler) Value(e parser.Event) error {
	return h.pr("Value %v <%s>", e.Tok.Kind, e.Tok.Text())
}
