// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package token defines the lexical token types emitted by the JSON lexer
// for structural punctuation and keyword literals, and the Pos type used
// to report byte positions across an arbitrarily fragmented input stream.
package token

// Type identifies a simple (value-less) token produced by the lexer: JSON
// structural punctuation and the three keyword literals. Numbers and
// strings are reported through dedicated lexer.Sink methods instead of a
// Type, since they carry a value (or a sequence of raw byte chunks).
type Type int

// String is hand-written rather than `go:generate`d since the token set here
// is small and fixed, unlike the teacher's open-ended custom token types.
//
// The complete set of simple tokens the lexer can emit.
const (
	OpenCurly Type = iota
	CloseCurly
	OpenBracket
	CloseBracket
	Comma
	Colon
	True
	False
	Null
)

var names = [...]string{
	OpenCurly:    "{",
	CloseCurly:   "}",
	OpenBracket:  "[",
	CloseBracket: "]",
	Comma:        ",",
	Colon:        ":",
	True:         "true",
	False:        "false",
	Null:         "null",
}

// String returns the literal JSON spelling of t.
func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return "token.Type(?)"
	}
	return names[t]
}

// Pos is a byte offset into the logical input stream formed by
// concatenating every chunk passed to Push, starting at 0. Unlike the
// teacher's rune-indexed Pos (tied to a single io.Reader-backed File),
// streamjson never owns or buffers its input, so Pos only ever needs to
// answer "how far into the stream", not "which rune of which line" -
// sufficient for pinpointing the offending byte per spec.md §1.
type Pos int64

// NoPos is the position reported for errors raised at Finalize, which by
// definition point past the end of all pushed input rather than at a
// specific byte.
const NoPos Pos = -1

// IsValid reports whether p identifies an actual byte offset rather than
// NoPos.
func (p Pos) IsValid() bool {
	return p >= 0
}
