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

package streamjson

import "github.com/db47h/streamjson/parser"

// Handler is re-exported from the parser package so callers of NewDecoder
// do not need a second import for the common case.
type Handler = parser.Handler

// Option is re-exported from the parser package; see parser.WithDynamicStack,
// parser.WithStaticStackSize, parser.WithValidateUTF8 and parser.WithBignum.
type Option = parser.Option

// Decoder wires a parser.Parser to a parser.Handler. It has no state or
// behavior of its own beyond what parser.Parser already provides; embedding
// rather than re-implementing Push/Finalize keeps this facade from drifting
// out of sync with the grammar machine it wraps.
type Decoder struct {
	*parser.Parser
}

// NewDecoder returns a Decoder delivering events to h, configured by opts.
// See parser.New for the available options.
func NewDecoder(h Handler, opts ...Option) *Decoder {
	return &Decoder{Parser: parser.New(h, opts...)}
}
