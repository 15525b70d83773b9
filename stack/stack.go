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

// Package stack implements the bit-packed container nesting stack the
// parser uses to track whether each open container is an object or an
// array: one bit per nesting level, packed eight to a byte, so a depth of
// 128 costs 16 bytes.
package stack

// zero[i] is a byte with every bit set except bit i, used to clear a
// single bit without branching.
var zero = [8]byte{0xFE, 0xFD, 0xFB, 0xF7, 0xEF, 0xDF, 0xBF, 0x7F}

// one[i] is a byte with only bit i set, used to set a single bit without
// branching.
var one = [8]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

// Value is the single bit of information the stack tracks per nesting
// level: which kind of container is open.
type Value bool

const (
	Object Value = false
	Array  Value = true
)

// Stack is a bit-packed LIFO of Values backed by a byte slice, grown
// either by fixed static allocation (New) or on demand (NewDynamic).
type Stack struct {
	bits  []byte
	depth int
	grow  GrowFunc
}

// GrowFunc is called when Push would overflow the current capacity of a
// dynamically-grown Stack. It must return a buffer at least one byte
// larger than current (or nil to refuse growth, which Push reports by
// returning false). It is the Go analogue of EMBEDJSON_DYNAMIC_STACK's
// caller-supplied realloc hook.
type GrowFunc func(current []byte) []byte

// New returns a fixed-capacity Stack backed by a buffer of capBytes bytes,
// holding up to 8*capBytes nesting levels. This mirrors
// EMBEDJSON_STATIC_STACK_SIZE's fixed byte-array stack.
func New(capBytes int) *Stack {
	return &Stack{bits: make([]byte, capBytes)}
}

// NewDynamic returns a Stack that grows its backing buffer by calling grow
// whenever Push would otherwise overflow, mirroring EMBEDJSON_DYNAMIC_STACK.
func NewDynamic(initialCapBytes int, grow GrowFunc) *Stack {
	return &Stack{bits: make([]byte, initialCapBytes), grow: grow}
}

// Empty reports whether the stack holds no open containers.
func (s *Stack) Empty() bool {
	return s.depth == 0
}

// Depth returns the number of currently open containers.
func (s *Stack) Depth() int {
	return s.depth
}

// full reports whether the next Push would exceed the backing buffer's
// capacity in bits.
func (s *Stack) full() bool {
	return s.depth == 8*len(s.bits)
}

// ErrOverflow-equivalent signal: Push returns ok=false when the stack is
// full and cannot grow (static mode, or a GrowFunc that declines).
//
// Push records v as the newly-opened container's kind. It reports ok=false
// if the stack has no room and (for dynamic stacks) grow declined to
// enlarge the buffer.
func (s *Stack) Push(v Value) (ok bool) {
	if s.full() {
		if s.grow == nil {
			return false
		}
		grown := s.grow(s.bits)
		if grown == nil || len(grown) <= len(s.bits) {
			return false
		}
		s.bits = grown
	}
	nbucket, nbit := s.depth/8, s.depth%8
	if v {
		s.bits[nbucket] |= one[nbit]
	} else {
		s.bits[nbucket] &= zero[nbit]
	}
	s.depth++
	return true
}

// Pop discards the innermost open container. It panics if the stack is
// empty; callers (the parser) are expected to only Pop when a matching
// close token has already been validated against Top.
func (s *Stack) Pop() {
	if s.depth == 0 {
		panic("stack: pop of empty stack")
	}
	s.depth--
}

// Top returns the innermost open container's kind. It panics if the stack
// is empty.
func (s *Stack) Top() Value {
	if s.depth == 0 {
		panic("stack: top of empty stack")
	}
	nbucket, nbit := (s.depth-1)/8, (s.depth-1)%8
	return s.bits[nbucket]&one[nbit] != 0
}
