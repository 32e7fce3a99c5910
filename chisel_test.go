// Copyright (C) 2023 J. Coombes. All Rights Reserved.

package chisel_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonnycoombes/chisel"
)

func TestCoordsString(t *testing.T) {
	tests := []struct {
		coords chisel.Coords
		want   string
	}{
		{chisel.Coords{}, "offset 0"},
		{chisel.Coords{Offset: 25}, "offset 25"},
		{chisel.Coords{Line: 1, Column: 1, Offset: 0}, "1:1"},
		{chisel.Coords{Line: 40, Column: 3, Offset: 992}, "40:3"},
	}
	for _, test := range tests {
		if got := test.coords.String(); got != test.want {
			t.Errorf("String %+v: got %q, want %q", test.coords, got, test.want)
		}
	}
}

func TestCoordsOrder(t *testing.T) {
	a := chisel.Coords{Line: 1, Column: 5, Offset: 4}
	b := chisel.Coords{Line: 2, Column: 1, Offset: 9}
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is wrong for %v, %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After is wrong for %v, %v", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Error("a position compares ordered against itself")
	}
}

func TestSpanString(t *testing.T) {
	tests := []struct {
		span chisel.Span
		want string
	}{
		{chisel.Span{
			Start: chisel.Coords{Line: 1, Column: 2, Offset: 1},
			End:   chisel.Coords{Line: 1, Column: 8, Offset: 7},
		}, "1:2-8"},
		{chisel.Span{
			Start: chisel.Coords{Line: 2, Column: 4, Offset: 12},
			End:   chisel.Coords{Line: 4, Column: 1, Offset: 30},
		}, "2:4-4:1"},
	}
	for _, test := range tests {
		if got := test.span.String(); got != test.want {
			t.Errorf("String %+v: got %q, want %q", test.span, got, test.want)
		}
	}
}

func TestFault(t *testing.T) {
	at := chisel.Coords{Line: 3, Column: 7, Offset: 41}
	f := chisel.Faultf(chisel.LexFault, at, "unterminated string")

	const want = "lexical fault at 3:7: unterminated string"
	if got := f.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if f.Unwrap() != nil {
		t.Errorf("Unwrap: got %v, want nil", f.Unwrap())
	}

	t.Run("Wrapped", func(t *testing.T) {
		f := chisel.Faultf(chisel.ScanFault, at, "input exhausted: %w", io.EOF)
		if !errors.Is(f, io.EOF) {
			t.Errorf("fault %v does not wrap io.EOF", f)
		}
		var cf *chisel.Fault
		if !errors.As(f, &cf) || cf.Kind != chisel.ScanFault {
			t.Errorf("fault %v does not surface as a scan fault", f)
		}
	})
}

func TestFaultKindString(t *testing.T) {
	tests := []struct {
		kind chisel.FaultKind
		want string
	}{
		{chisel.DecodeFault, "decode fault"},
		{chisel.ScanFault, "scan fault"},
		{chisel.LexFault, "lexical fault"},
		{chisel.SyntaxFault, "syntax fault"},
		{chisel.FaultKind(0), "unknown fault"},
		{chisel.FaultKind(100), "unknown fault"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("String %d: got %q, want %q", test.kind, got, test.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{`a "b" c`, `"a \"b\" c"`},
		{"a\tb\nc", `"a\tb\nc"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"unéscaped", `"unéscaped"`},
		{"\u2028\u2029", `"\u2028\u2029"`},
	}
	for _, test := range tests {
		if got := chisel.Quote(test.input); got != test.want {
			t.Errorf("Quote %q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"a b c"`, "a b c"},
		{`"a \"b\" c"`, `a "b" c`},
		{`"a\tb\nc"`, "a\tb\nc"},
		{`"\u0041\u00e9"`, "Aé"},
		{`"\ud83d\ude04"`, "😄"},
		{`"étude"`, "étude"},
		{`"a\/b"`, "a/b"},
		{`"😄"`, "\U0001f604"},
	}
	for _, test := range tests {
		got, err := chisel.Unquote([]byte(test.input))
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, string(got)); diff != "" {
			t.Errorf("Unquote %#q: (-want, +got)\n%s", test.input, diff)
		}
	}

	t.Run("Errors", func(t *testing.T) {
		bad := []string{
			``, `"`, `x`, `"abc`, `abc"`,
			`"\q"`, `"\u12"`, `"\u123x"`,
			`"\ud83d"`, `"\ud83d "`, `"\ude04"`,
		}
		for _, input := range bad {
			if got, err := chisel.Unquote([]byte(input)); err == nil {
				t.Errorf("Unquote %#q: got %q, wanted error", input, got)
			}
		}
	})
}
