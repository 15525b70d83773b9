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

package parser

import "github.com/db47h/streamjson/stack"

// defaultStaticStackSize is the default inline stack capacity in bytes,
// good for 128 nesting levels, matching EMBEDJSON_STATIC_STACK_SIZE's
// default in original_source/common.h.
const defaultStaticStackSize = 16

type config struct {
	staticStackSize int
	grow            stack.GrowFunc
	validateUTF8    bool
	bignum          bool
}

// Option configures a Parser at construction time, replacing the
// original's compile-time preprocessor toggles the way lexer.Option /
// state.Option do for the teacher's lexer.
type Option func(*config)

// WithStaticStackSize sets the inline container-stack capacity in bytes
// (8 nesting levels per byte). If WithDynamicStack is also given, it sets
// the dynamic stack's initial capacity.
func WithStaticStackSize(bytes int) Option {
	return func(c *config) { c.staticStackSize = bytes }
}

// WithDynamicStack switches the container stack to caller-grown mode: grow
// is invoked whenever the stack would otherwise overflow.
func WithDynamicStack(grow stack.GrowFunc) Option {
	return func(c *config) { c.grow = grow }
}

// WithValidateUTF8 toggles shortest-form UTF-8 validation of raw string
// bytes. Enabled by default.
func WithValidateUTF8(v bool) Option {
	return func(c *config) { c.validateUTF8 = v }
}

// WithBignum toggles routing integer literals that would overflow int64
// to BignumBegin/BignumChunk/BignumEnd handler calls instead of failing
// with errcode.IntOverflow.
func WithBignum(v bool) Option {
	return func(c *config) { c.bignum = v }
}

func newConfig(opts []Option) config {
	c := config{staticStackSize: defaultStaticStackSize, validateUTF8: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
