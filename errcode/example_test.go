package errcode_test

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/db47h/streamjson/errcode"
	"github.com/db47h/streamjson/token"
)

// This example shows how to turn an *errcode.Error's byte position into a
// caret-aligned display of the offending line, the way a command-line JSON
// validator would report it. streamjson only ever hands back a byte offset
// into the logical input stream (it never buffers a whole document), so the
// caller is responsible for locating the line; this just demonstrates it
// against a string held for the example's sake.
func ExampleError_caretDisplay() {
	input := "{\n  \"city\": \"東京\",\n  \"temp\": 012\n}"
	// The lexer reports LeadingZero at the digit following the leading
	// zero, i.e. the '1' in "012".
	err := errcode.New(errcode.LeadingZero, token.Pos(strings.LastIndex(input, "012")+1))

	line, col := lineCol(input, int(err.Pos))
	fmt.Printf("line %d: %s\n", line+1, err.Error())
	text := strings.Split(input, "\n")[line]
	fmt.Printf("|%s\n", text)
	fmt.Printf("|%*c^\n", runeWidth(text[:col]), ' ')

	// Output:
	// line 3: number with a leading zero followed by another digit (at byte 33)
	// |  "temp": 012
	// |           ^
}

// lineCol converts a byte offset into the input into a 0-based line number
// and a 0-based byte column within that line.
func lineCol(input string, pos int) (line, col int) {
	col = pos
	for i, b := range []byte(input[:pos]) {
		if b == '\n' {
			line++
			col = pos - i - 1
		}
	}
	return line, col
}

// runeWidth computes the width in terminal cells of s, accounting for
// East Asian wide and fullwidth runes the way a monospace terminal would
// render them.
func runeWidth(s string) int {
	w := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if !unicode.IsGraphic(r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			w++
		}
	}
	return w
}
