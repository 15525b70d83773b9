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

// Package errcode defines the streamjson error taxonomy: a stable numeric
// code per failure kind, a human-readable description for each, and an
// Error type carrying the byte position at which the failure was detected.
//
// The taxonomy mirrors embedjson_error_code from original_source/common.h
// one for one; descriptions are adapted from that file's doc comments.
package errcode

import (
	"fmt"

	"github.com/db47h/streamjson/token"
)

// Code identifies a specific way a push or finalize call can fail.
type Code int

const (
	// BadUTF8 indicates a malformed UTF-8 byte sequence inside a string.
	BadUTF8 Code = iota
	// LongUTF8 indicates a UTF-8 lead byte implying a sequence longer than
	// 4 bytes, which RFC 3629 forbids.
	LongUTF8
	// BadUnicodeEscape indicates a non-hex-digit character inside a
	// \uXXXX escape sequence.
	BadUnicodeEscape
	// BadEscape indicates an unrecognized character following a backslash
	// inside a string.
	BadEscape
	// UnescapedControlChar indicates a raw ASCII control character
	// (code point < 0x20) inside a string; JSON requires these to be
	// escaped even though some are otherwise valid Unicode.
	UnescapedControlChar
	// BadExponent indicates an unexpected character where a number's
	// exponent sign or digits were expected.
	BadExponent
	// BadTrue indicates a byte mismatch while matching the "true" keyword.
	BadTrue
	// BadFalse indicates a byte mismatch while matching the "false" keyword.
	BadFalse
	// BadNull indicates a byte mismatch while matching the "null" keyword.
	BadNull
	// LeadingZero indicates an integer part beginning with '0' followed
	// by another digit.
	LeadingZero
	// LeadingPlus indicates a '+' sign where a value was expected.
	LeadingPlus
	// EmptyFrac indicates a '.' with no digits following it.
	EmptyFrac
	// EmptyExp indicates an 'e'/'E' with no digits following it (sign
	// alone does not count as a digit).
	EmptyExp
	// ExponentOverflow indicates an exponent magnitude greater than 308,
	// beyond the range a float64 can represent.
	ExponentOverflow
	// IntOverflow indicates that accumulating an integer literal would
	// overflow int64. Only returned when Bignum mode is disabled.
	IntOverflow
	// EOFInString indicates end-of-input while inside a string, escape,
	// or unicode escape.
	EOFInString
	// EOFInExponent indicates end-of-input right after 'e'/'E', before
	// any sign or digit.
	EOFInExponent
	// EOFInTrue indicates end-of-input while matching "true".
	EOFInTrue
	// EOFInFalse indicates end-of-input while matching "false".
	EOFInFalse
	// EOFInNull indicates end-of-input while matching "null".
	EOFInNull
	// StackOverflow indicates the container nesting depth exceeded the
	// configured static stack capacity, or a dynamic stack's grow function
	// declined to enlarge it.
	StackOverflow
	// UnexpCloseCurly indicates a '}' where a value, or the start of a
	// container, was expected.
	UnexpCloseCurly
	// UnexpCloseBracket indicates a ']' where a value, or the start of a
	// container, was expected.
	UnexpCloseBracket
	// UnexpComma indicates a ',' where a value was expected.
	UnexpComma
	// UnexpColon indicates a ':' where a value was expected.
	UnexpColon
	// UnexpSymbol indicates a byte that cannot start any JSON token.
	UnexpSymbol
	// ExpColon indicates a token other than ':' following an object key.
	ExpColon
	// ExpObjectKeyOrCloseCurly indicates a token other than a string or
	// '}' where an object key was expected.
	ExpObjectKeyOrCloseCurly
	// ExpObjectKey indicates a token other than a string where an object
	// key was expected.
	ExpObjectKey
	// ExpObjectValue indicates an invalid token where an object value was
	// expected.
	ExpObjectValue
	// ExpArrayValue indicates an invalid token where an array value was
	// expected.
	ExpArrayValue
	// ExpCommaOrCloseBracket indicates a token other than ',' or ']'
	// following an array element.
	ExpCommaOrCloseBracket
	// ExpCommaOrCloseCurly indicates a token other than ',' or '}'
	// following an object member.
	ExpCommaOrCloseCurly
	// ExcessiveInput indicates non-whitespace input after the single
	// top-level value has completed.
	ExcessiveInput
	// InsufficientInput indicates Finalize was called with the grammar
	// incomplete (e.g. an open container, or no value seen at all).
	InsufficientInput
	// Internal indicates an invariant the implementation believes
	// unreachable; report it as a bug if observed.
	Internal
)

var descriptions = [...]string{
	BadUTF8:                  "malformed UTF-8 byte sequence",
	LongUTF8:                 "UTF-8 byte sequence longer than 4 bytes",
	BadUnicodeEscape:         "unexpected character in unicode escape sequence, expected a hex digit",
	BadEscape:                `unexpected character in escape sequence, expected one of " \ / b f n r t u`,
	UnescapedControlChar:     "unescaped ASCII control character in string",
	BadExponent:              "unexpected character in exponent part of number",
	BadTrue:                  `unknown keyword, expected "true"`,
	BadFalse:                 `unknown keyword, expected "false"`,
	BadNull:                  `unknown keyword, expected "null"`,
	LeadingZero:              "number with a leading zero followed by another digit",
	LeadingPlus:              "number with a leading plus sign",
	EmptyFrac:                "empty fractional part of number",
	EmptyExp:                 "empty exponent part of number",
	ExponentOverflow:         "exponent magnitude too large to represent as a float64",
	IntOverflow:              "integer literal overflows the configured integer type",
	EOFInString:              "end of input while inside a string",
	EOFInExponent:            "end of input while parsing a number's exponent",
	EOFInTrue:                `end of input while parsing "true"`,
	EOFInFalse:               `end of input while parsing "false"`,
	EOFInNull:                `end of input while parsing "null"`,
	StackOverflow:            "container nesting level exceeds the configured stack capacity",
	UnexpCloseCurly:          "expected value, got unexpected '}'",
	UnexpCloseBracket:        "expected value, got unexpected ']'",
	UnexpComma:               "expected value, got unexpected ','",
	UnexpColon:               "expected value, got unexpected ':'",
	UnexpSymbol:              "unexpected symbol",
	ExpColon:                 "expected ':' following object key",
	ExpObjectKeyOrCloseCurly: "expected string object key or '}'",
	ExpObjectKey:             "expected string object key",
	ExpObjectValue:           "expected value for object member",
	ExpArrayValue:            "expected value for array element",
	ExpCommaOrCloseBracket:   "expected ',' or ']'",
	ExpCommaOrCloseCurly:     "expected ',' or '}'",
	ExcessiveInput:           "unexpected input after the completed top-level value",
	InsufficientInput:        "input ended before the top-level value was complete",
	Internal:                 "internal error (please report this as a bug)",
}

// String returns the human-readable description of c, matching
// embedjson_strerror.
func (c Code) String() string {
	if c < 0 || int(c) >= len(descriptions) {
		return "unknown error"
	}
	return descriptions[c]
}

// Error implements the error interface for a bare Code, so that
// errors.Is(err, errcode.LeadingZero) can compare err against a Code
// sentinel directly (Is's target.(Code) assertion below requires Code to
// satisfy error).
func (c Code) Error() string {
	return c.String()
}

// Error wraps a Code with the byte position at which it was detected. It is
// the only error type streamjson itself produces (errors returned by a
// parser.Handler are passed through unchanged); the deprecated
// embedjson_error(parser, position) two-argument callback from the C
// original has no separate equivalent here since Position already carries
// everything that callback exposed.
type Error struct {
	Code Code
	Pos  token.Pos
}

// Error implements the error interface.
func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Code.String()
	}
	return fmt.Sprintf("%s (at byte %d)", e.Code.String(), e.Pos)
}

// Is allows errors.Is(err, errcode.LeadingZero) style comparisons against a
// bare Code value.
func (e *Error) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.Code == c
	}
	var other *Error
	if ok := asError(target, &other); ok {
		return other.Code == e.Code
	}
	return false
}

func asError(target error, out **Error) bool {
	e, ok := target.(*Error)
	if ok {
		*out = e
	}
	return ok
}

// New constructs an *Error for code at position pos.
func New(code Code, pos token.Pos) *Error {
	return &Error{Code: code, Pos: pos}
}
