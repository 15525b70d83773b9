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

/*
Package streamjson provides a streaming, push-driven JSON parser for
embedded and memory-constrained environments.

A caller feeds arbitrary byte slices to a Decoder's Push method; the
Decoder emits a sequence of semantic events (object and array boundaries,
string chunks, numeric values, literals) to a caller-supplied
parser.Handler as soon as they can be decided, without buffering the
document and without dynamic allocation in the default (static-stack)
configuration.

This package is a thin facade over the parser package, wiring a
parser.Parser to a parser.Handler so that the common case does not
require importing the lexer, parser, stack, token and errcode
sub-packages individually:

	d := streamjson.NewDecoder(myHandler)
	if err := d.Push(chunk1); err != nil {
		// handle error; d must not be reused
	}
	if err := d.Push(chunk2); err != nil {
		// ...
	}
	if err := d.Finalize(); err != nil {
		// document was incomplete, or a trailing number/string was left open
	}

Callers who need finer control - a dynamically-grown container stack, a
bignum overflow channel, or UTF-8 validation toggled off - construct a
parser.Parser directly with parser.Option values; Decoder accepts the
same options.

Events are delivered synchronously and in strict document order from
inside Push and Finalize; a Handler must not retain byte slices passed to
its StringChunk or BignumChunk methods past the call that delivered them,
since the underlying storage is usually a sub-slice of the caller's own
input buffer and is not copied.
*/
package streamjson
