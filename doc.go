// Copyright (C) 2023 J. Coombes. All Rights Reserved.

// Package chisel is the root of a layered JSON text-processing pipeline:
// bytes are decoded into characters, characters are scanned into positioned
// lexemes, lexemes are assembled into typed tokens, and tokens are consumed
// by a parser that produces either a materialized document tree or a stream
// of structural events.
//
// The stages live in their own packages, leaves first:
//
//   - [github.com/jonnycoombes/chisel/decoder] converts raw bytes into a
//     lazy sequence of characters, in UTF-8 or strict ASCII.
//   - [github.com/jonnycoombes/chisel/scanner] buffers decoded characters
//     and provides advance, pushback, lookahead and take primitives with
//     per-character source coordinates.
//   - [github.com/jonnycoombes/chisel/lexer] recognizes JSON lexemes over
//     the scanner and emits positioned tokens, one lookahead deep.
//   - [github.com/jonnycoombes/chisel/parser] consumes tokens and exposes
//     two front-ends over one grammar: a pull-based event stream and an
//     eagerly materialized document tree.
//
// This package holds the types shared by every stage: [Coords] and [Span]
// for source positions, [Fault] for stage-typed errors, and the [Quote] and
// [Unquote] string escaping surface.
//
// # Pipelines
//
// Each stage wraps exactly one instance of the stage below it, and every
// stage is pull-based: nothing is produced until the consumer asks. A
// typical pipeline is assembled from the outside in:
//
//	dec := decoder.NewUTF8(r)
//	sc := scanner.New(dec)
//	lx := lexer.New(sc)
//	p := parser.New(lx)
//
// or via the shorthand constructors in the parser package. A pipeline is
// single-use: once any stage reports a fault or the end of input, no further
// items are produced. Independent pipelines share no state and may run in
// separate goroutines without synchronization.
//
// # Faults
//
// Every error produced inside the pipeline is a [*Fault] carrying the kind
// of the stage that detected it, the coordinates at which it was detected,
// and a message. Faults propagate upward unchanged: a decode fault surfaces
// from the parser exactly as the decoder produced it. Clean exhaustion is
// not a fault; it is reported as io.EOF below the lexer and as an explicit
// end-of-input token above it.
package chisel
