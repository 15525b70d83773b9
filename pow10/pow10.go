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

// Package pow10 provides a pre-tabulated power-of-ten lookup spanning the
// full float64 exponent range, so the lexer can compose a number's
// fractional and exponent parts with a table index instead of calling
// math.Pow in the hot path.
package pow10

// MinExp and MaxExp bound the valid input to At: exponents outside this
// range cannot be represented by a float64 and are rejected by the lexer
// as errcode.ExponentOverflow before reaching At.
const (
	MinExp = -308
	MaxExp = 308
)

// table[i] holds 10^(MaxExp-i), mirroring the descending-literal layout of
// original_source/lexer.c's static powm10 array (1e+308 down to 1e-308).
var table = func() [MaxExp - MinExp + 1]float64 {
	var t [MaxExp - MinExp + 1]float64
	v := 1.0
	for e := 0; e <= MaxExp; e++ {
		t[MaxExp-e] = v
		v *= 10
	}
	v = 0.1
	for e := -1; e >= MinExp; e-- {
		t[MaxExp-e] = v
		v /= 10
	}
	return t
}()

// At returns 10^n. n must be within [MinExp, MaxExp]; callers are expected
// to have already validated the exponent range (see errcode.ExponentOverflow),
// so At panics on an out-of-range n rather than silently returning 0 or Inf.
func At(n int) float64 {
	if n < MinExp || n > MaxExp {
		panic("pow10: exponent out of range")
	}
	return table[MaxExp-n]
}
