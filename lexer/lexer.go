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

// Package lexer implements the byte-level tokenizing state machine: it
// consumes raw input bytes, validates UTF-8 and number grammar inline, and
// emits token, number and string events to a Sink without copying or
// retaining input bytes past the call that introduced them.
package lexer

import (
	"math"

	"github.com/db47h/streamjson/errcode"
	"github.com/db47h/streamjson/pow10"
	"github.com/db47h/streamjson/token"
)

type machineState uint8

const (
	stateLookupToken machineState = iota
	stateInString
	stateInStringEscape
	stateInStringUnicodeEscape
	stateInNumber
	stateInNumberFrac
	stateInNumberExpSign
	stateInNumberExp
	stateInTrue
	stateInFalse
	stateInNull
)

// maxMagnitude is 1<<63, the absolute value of math.MinInt64 and one more
// than math.MaxInt64 - the inclusive upper bound for a negative literal's
// accumulated magnitude, one less for a positive literal.
const maxMagnitude = uint64(math.MaxInt64) + 1

// State is the comparable, pointer-free snapshot of the lexer's
// byte-level machine. Holding no slices or pointers lets Push compare a
// working copy against the committed value with a plain != instead of a
// byte-compare loop, the Go shape of the original's commit-on-success
// discipline (compute on a local copy, write back only if it changed and
// only once the whole push succeeded).
type State struct {
	state       machineState
	offset      uint8
	unicodeCP   [2]byte
	minus       bool
	expMinus    bool
	leadingZero bool
	inBignum    bool
	intMag      uint64
	fracMag     uint64
	fracDigits  uint32
	expValue    uint32
	expDigits   uint32
	nb          uint8
	cc          uint8
}

// Sink receives the events a Lexer produces. The parser package implements
// it to drive the grammar machine; a nil-returning no-op implementation is
// a valid Sink for tests that only care about lexical validity.
type Sink interface {
	Token(t token.Type, pos token.Pos) error
	Int(v int64, pos token.Pos) error
	Double(v float64, pos token.Pos) error
	StringBegin(pos token.Pos) error
	StringChunk(data []byte) error
	StringEnd(pos token.Pos) error
	BignumBegin(pos token.Pos) error
	BignumChunk(data []byte) error
	BignumEnd(pos token.Pos) error
}

// Lexer drives State through a byte stream fed via Push, reporting events
// to a Sink.
type Lexer struct {
	State
	sink         Sink
	validateUTF8 bool
	bignum       bool
	consumed     int64
}

// New returns a Lexer reporting to sink. validateUTF8 enables shortest-form
// UTF-8 checking of raw string bytes; bignum enables relaying integer
// literals that would overflow int64 as raw digit chunks instead of
// failing with errcode.IntOverflow.
func New(sink Sink, validateUTF8, bignum bool) *Lexer {
	return &Lexer{sink: sink, validateUTF8: validateUTF8, bignum: bignum}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNumberContinuationByte(b byte) bool {
	switch b {
	case '.', 'e', 'E', '+', '-':
		return true
	}
	return isDigit(b)
}

func inNumberState(s machineState) bool {
	switch s {
	case stateInNumber, stateInNumberFrac, stateInNumberExpSign, stateInNumberExp:
		return true
	}
	return false
}

// Push feeds data to the lexer. It never retains data past this call: raw
// string bytes and bignum digit bytes read in this call are handed to the
// Sink as sub-slices of data, synchronously, before Push returns. Decoded
// escape bytes, and the digits of a bignum accumulated during earlier
// calls, are passed in small separate buffers instead.
func (l *Lexer) Push(data []byte) error {
	st := l.State
	base := l.consumed

	chunkBegin := 0
	numFlushFrom := 0
	numStartPos := token.Pos(base)
	numContinued := inNumberState(st.state)

	for i := 0; i < len(data); i++ {
		b := data[i]
		pos := token.Pos(base + int64(i))

		if st.inBignum {
			if isNumberContinuationByte(b) {
				continue
			}
			if i != numFlushFrom {
				if err := l.sink.BignumChunk(data[numFlushFrom:i]); err != nil {
					return err
				}
			}
			if err := l.sink.BignumEnd(pos); err != nil {
				return err
			}
			st = State{}
			i--
			continue
		}

		switch st.state {
		case stateLookupToken:
			switch {
			case b == ' ' || b == '\n' || b == '\r' || b == '\t':
				continue
			case b == ':':
				if err := l.sink.Token(token.Colon, pos); err != nil {
					return err
				}
			case b == ',':
				if err := l.sink.Token(token.Comma, pos); err != nil {
					return err
				}
			case b == '{':
				if err := l.sink.Token(token.OpenCurly, pos); err != nil {
					return err
				}
			case b == '}':
				if err := l.sink.Token(token.CloseCurly, pos); err != nil {
					return err
				}
			case b == '[':
				if err := l.sink.Token(token.OpenBracket, pos); err != nil {
					return err
				}
			case b == ']':
				if err := l.sink.Token(token.CloseBracket, pos); err != nil {
					return err
				}
			case b == '"':
				chunkBegin = i + 1
				st.state = stateInString
				if err := l.sink.StringBegin(pos); err != nil {
					return err
				}
			case b == 't':
				st.offset = 1
				st.state = stateInTrue
			case b == 'f':
				st.offset = 1
				st.state = stateInFalse
			case b == 'n':
				st.offset = 1
				st.state = stateInNull
			case b == '-':
				st.minus = true
				st.state = stateInNumber
				numFlushFrom, numStartPos, numContinued = i, pos, false
			case b == '+':
				return errcode.New(errcode.LeadingPlus, pos)
			case isDigit(b):
				st.intMag = uint64(b - '0')
				st.leadingZero = b == '0'
				st.state = stateInNumber
				numFlushFrom, numStartPos, numContinued = i, pos, false
			default:
				return errcode.New(errcode.UnexpSymbol, pos)
			}

		case stateInString:
			if l.validateUTF8 {
				if st.nb != 0 {
					if st.nb == 2 && st.cc == 1 {
						if b&0xe0 != 0xa0 {
							return errcode.New(errcode.BadUTF8, pos)
						}
						st.cc = 0
					} else if st.nb == 3 && st.cc == 2 {
						// Second byte of a 0xF0-led sequence: [0x90,0xBF].
						if b < 0x90 || b > 0xbf {
							return errcode.New(errcode.BadUTF8, pos)
						}
						st.cc = 0
					} else if st.nb == 3 && st.cc == 3 {
						if b&0xf0 != 0x80 {
							return errcode.New(errcode.BadUTF8, pos)
						}
						st.cc = 0
					} else if b&0xc0 != 0x80 {
						return errcode.New(errcode.BadUTF8, pos)
					}
					st.nb--
				}
				switch {
				case b&0xe0 == 0xc0:
					st.nb = 1
					continue
				case b&0xf0 == 0xe0:
					if b == 0xe0 {
						st.cc = 1
					}
					st.nb = 2
					continue
				case b&0xf8 == 0xf0:
					if b == 0xf0 {
						st.cc = 2
					} else if b == 0xf4 {
						st.cc = 3
					}
					st.nb = 3
					continue
				case b&0xf8 == 0xf8:
					return errcode.New(errcode.LongUTF8, pos)
				}
			}
			switch {
			case b < 0x20:
				return errcode.New(errcode.UnescapedControlChar, pos)
			case b == '\\':
				if i != chunkBegin {
					if err := l.sink.StringChunk(data[chunkBegin:i]); err != nil {
						return err
					}
				}
				st.state = stateInStringEscape
			case b == '"':
				if i != chunkBegin {
					if err := l.sink.StringChunk(data[chunkBegin:i]); err != nil {
						return err
					}
				}
				if err := l.sink.StringEnd(pos); err != nil {
					return err
				}
				st.state = stateLookupToken
			}

		case stateInStringEscape:
			var lit byte
			switch b {
			case '"':
				lit = '"'
			case '\\':
				lit = '\\'
			case '/':
				lit = '/'
			case 'b':
				lit = '\b'
			case 'f':
				lit = '\f'
			case 'n':
				lit = '\n'
			case 'r':
				lit = '\r'
			case 't':
				lit = '\t'
			case 'u':
				st.state = stateInStringUnicodeEscape
				st.offset = 0
				continue
			default:
				return errcode.New(errcode.BadEscape, pos)
			}
			if err := l.sink.StringChunk([]byte{lit}); err != nil {
				return err
			}
			chunkBegin = i + 1
			st.state = stateInString

		case stateInStringUnicodeEscape:
			var v byte
			switch {
			case b >= '0' && b <= '9':
				v = b - '0'
			case b >= 'a' && b <= 'f':
				v = 10 + b - 'a'
			case b >= 'A' && b <= 'F':
				v = 10 + b - 'A'
			default:
				return errcode.New(errcode.BadUnicodeEscape, pos)
			}
			switch st.offset {
			case 0:
				st.unicodeCP[0] = v << 4
			case 1:
				st.unicodeCP[0] |= v
			case 2:
				st.unicodeCP[1] = v << 4
			case 3:
				st.unicodeCP[1] |= v
				cp := st.unicodeCP
				if err := l.sink.StringChunk(cp[:]); err != nil {
					return err
				}
				chunkBegin = i + 1
				st.state = stateInString
			}
			st.offset++

		case stateInNumber:
			switch {
			case isDigit(b):
				if st.leadingZero {
					return errcode.New(errcode.LeadingZero, pos)
				}
				if st.minus && st.intMag == 0 && b == '0' {
					st.leadingZero = true
				}
				bound := maxMagnitude
				if !st.minus {
					bound--
				}
				d := uint64(b - '0')
				if st.intMag > (bound-d)/10 {
					if !l.bignum {
						return errcode.New(errcode.IntOverflow, pos)
					}
					if err := l.sink.BignumBegin(numStartPos); err != nil {
						return err
					}
					if numContinued {
						prefix := formatAccumulated(st.minus, st.intMag)
						if err := l.sink.BignumChunk(prefix); err != nil {
							return err
						}
						numFlushFrom = 0
					}
					if err := l.sink.BignumChunk(data[numFlushFrom : i+1]); err != nil {
						return err
					}
					st.inBignum = true
					numFlushFrom = i + 1
					continue
				}
				st.intMag = st.intMag*10 + d
			case b == '.':
				st.state = stateInNumberFrac
			case b == 'e' || b == 'E':
				st.state = stateInNumberExpSign
			default:
				i--
				v := int64(st.intMag)
				if st.minus {
					v = -v
				}
				if err := l.sink.Int(v, pos-1); err != nil {
					return err
				}
				st = State{}
			}

		case stateInNumberFrac:
			switch {
			case isDigit(b):
				st.fracMag = st.fracMag*10 + uint64(b-'0')
				st.fracDigits++
			case b == 'e' || b == 'E':
				if st.fracDigits == 0 {
					return errcode.New(errcode.EmptyFrac, pos)
				}
				st.state = stateInNumberExpSign
			default:
				if st.fracDigits == 0 {
					return errcode.New(errcode.EmptyFrac, pos)
				}
				i--
				v := composeDouble(st)
				if err := l.sink.Double(v, pos-1); err != nil {
					return err
				}
				st = State{}
			}

		case stateInNumberExpSign:
			switch {
			case b == '-':
				st.expMinus = true
			case b == '+':
			case isDigit(b):
				st.expValue = uint32(b - '0')
				st.expDigits = 1
			default:
				return errcode.New(errcode.BadExponent, pos)
			}
			st.state = stateInNumberExp

		case stateInNumberExp:
			switch {
			case isDigit(b):
				nv := st.expValue*10 + uint32(b-'0')
				if nv > pow10.MaxExp {
					return errcode.New(errcode.ExponentOverflow, pos)
				}
				st.expValue = nv
				st.expDigits++
			default:
				if st.expDigits == 0 {
					return errcode.New(errcode.EmptyExp, pos)
				}
				i--
				v := composeDouble(st)
				exp := int(st.expValue)
				if st.expMinus {
					exp = -exp
				}
				v *= pow10.At(exp)
				if err := l.sink.Double(v, pos-1); err != nil {
					return err
				}
				st = State{}
			}

		case stateInTrue:
			if b != "true"[st.offset] {
				return errcode.New(errcode.BadTrue, pos)
			}
			st.offset++
			if st.offset > 3 {
				if err := l.sink.Token(token.True, pos); err != nil {
					return err
				}
				st.state = stateLookupToken
			}

		case stateInFalse:
			if b != "false"[st.offset] {
				return errcode.New(errcode.BadFalse, pos)
			}
			st.offset++
			if st.offset > 4 {
				if err := l.sink.Token(token.False, pos); err != nil {
					return err
				}
				st.state = stateLookupToken
			}

		case stateInNull:
			if b != "null"[st.offset] {
				return errcode.New(errcode.BadNull, pos)
			}
			st.offset++
			if st.offset > 3 {
				if err := l.sink.Token(token.Null, pos); err != nil {
					return err
				}
				st.state = stateLookupToken
			}
		}
	}

	if st.state == stateInString && len(data) != chunkBegin {
		if err := l.sink.StringChunk(data[chunkBegin:]); err != nil {
			return err
		}
	}
	if st.inBignum && len(data) != numFlushFrom {
		if err := l.sink.BignumChunk(data[numFlushFrom:]); err != nil {
			return err
		}
	}

	if st != l.State {
		l.State = st
	}
	l.consumed += int64(len(data))
	return nil
}

// composeDouble combines the integer, fractional and (already-applied
// separately) exponent parts the way original_source/lexer.c does:
// int_value + frac_value * 10^(-frac_power), negated if minus.
func composeDouble(st State) float64 {
	fracPower := int(st.fracDigits)
	if fracPower > pow10.MaxExp {
		// More fractional digits than the table spans: the contribution is
		// below the float64 subnormal floor regardless, so it rounds to 0.
		fracPower = pow10.MaxExp
	}
	v := float64(st.intMag) + float64(st.fracMag)*pow10.At(-fracPower)
	if st.minus {
		v = -v
	}
	return v
}

func formatAccumulated(minus bool, mag uint64) []byte {
	buf := make([]byte, 0, 21)
	if minus {
		buf = append(buf, '-')
	}
	start := len(buf)
	if mag == 0 {
		return append(buf, '0')
	}
	for mag > 0 {
		buf = append(buf, byte('0'+mag%10))
		mag /= 10
	}
	for l, r := start, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return buf
}

// Finalize signals end of input. It flushes any number still being
// accumulated and fails if a string, escape, keyword or exponent was left
// incomplete.
func (l *Lexer) Finalize() error {
	st := l.State
	switch st.state {
	case stateLookupToken:
	case stateInString, stateInStringEscape, stateInStringUnicodeEscape:
		return errcode.New(errcode.EOFInString, token.NoPos)
	case stateInNumber:
		if st.inBignum {
			if err := l.sink.BignumEnd(token.NoPos); err != nil {
				return err
			}
			break
		}
		v := int64(st.intMag)
		if st.minus {
			v = -v
		}
		if err := l.sink.Int(v, token.NoPos); err != nil {
			return err
		}
	case stateInNumberFrac:
		if st.fracDigits == 0 {
			return errcode.New(errcode.EmptyFrac, token.NoPos)
		}
		if err := l.sink.Double(composeDouble(st), token.NoPos); err != nil {
			return err
		}
	case stateInNumberExpSign:
		return errcode.New(errcode.EOFInExponent, token.NoPos)
	case stateInNumberExp:
		if st.expDigits == 0 {
			return errcode.New(errcode.EmptyExp, token.NoPos)
		}
		v := composeDouble(st)
		exp := int(st.expValue)
		if st.expMinus {
			exp = -exp
		}
		v *= pow10.At(exp)
		if err := l.sink.Double(v, token.NoPos); err != nil {
			return err
		}
	case stateInTrue:
		return errcode.New(errcode.EOFInTrue, token.NoPos)
	case stateInFalse:
		return errcode.New(errcode.EOFInFalse, token.NoPos)
	case stateInNull:
		return errcode.New(errcode.EOFInNull, token.NoPos)
	}
	l.State = State{}
	return nil
}
