package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/db47h/streamjson/errcode"
	"github.com/db47h/streamjson/token"
)

// event is a flattened, comparable record of one Sink call, used so test
// cases can assert on exact call sequences with go-cmp.
type event struct {
	Kind string
	I    int64
	F    float64
	S    string
	Tok  token.Type
}

type recorder struct {
	events []event
}

func (r *recorder) Token(t token.Type, pos token.Pos) error {
	r.events = append(r.events, event{Kind: "token", Tok: t})
	return nil
}
func (r *recorder) Int(v int64, pos token.Pos) error {
	r.events = append(r.events, event{Kind: "int", I: v})
	return nil
}
func (r *recorder) Double(v float64, pos token.Pos) error {
	r.events = append(r.events, event{Kind: "double", F: v})
	return nil
}
func (r *recorder) StringBegin(pos token.Pos) error {
	r.events = append(r.events, event{Kind: "strbegin"})
	return nil
}
func (r *recorder) StringChunk(data []byte) error {
	r.events = append(r.events, event{Kind: "strchunk", S: string(data)})
	return nil
}
func (r *recorder) StringEnd(pos token.Pos) error {
	r.events = append(r.events, event{Kind: "strend"})
	return nil
}
func (r *recorder) BignumBegin(pos token.Pos) error {
	r.events = append(r.events, event{Kind: "bignumbegin"})
	return nil
}
func (r *recorder) BignumChunk(data []byte) error {
	r.events = append(r.events, event{Kind: "bignumchunk", S: string(data)})
	return nil
}
func (r *recorder) BignumEnd(pos token.Pos) error {
	r.events = append(r.events, event{Kind: "bignumend"})
	return nil
}

// feedInOneByteChunks replays data one byte at a time, the same technique
// original_source/ut_lexer.c uses to exercise chunk-boundary handling.
func feedInOneByteChunks(t *testing.T, l *Lexer, data []byte) error {
	t.Helper()
	for i := range data {
		if err := l.Push(data[i : i+1]); err != nil {
			return err
		}
	}
	return l.Finalize()
}

func TestStructuralTokens(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("{}[],:")))
	require.NoError(t, l.Finalize())
	want := []event{
		{Kind: "token", Tok: token.OpenCurly},
		{Kind: "token", Tok: token.CloseCurly},
		{Kind: "token", Tok: token.OpenBracket},
		{Kind: "token", Tok: token.CloseBracket},
		{Kind: "token", Tok: token.Comma},
		{Kind: "token", Tok: token.Colon},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywords(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("true")))
	require.NoError(t, l.Push([]byte("false")))
	require.NoError(t, l.Push([]byte("null")))
	require.NoError(t, l.Finalize())
	want := []event{
		{Kind: "token", Tok: token.True},
		{Kind: "token", Tok: token.False},
		{Kind: "token", Tok: token.Null},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBadKeyword(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("tru3"))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.BadTrue)
}

func TestString(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("\"hello\\nworld\\u00e9\"")))
	require.NoError(t, l.Finalize())
	want := []event{
		{Kind: "strbegin"},
		{Kind: "strchunk", S: "hello"},
		{Kind: "strchunk", S: "\n"},
		{Kind: "strchunk", S: "world"},
		{Kind: "strchunk", S: "\x00\xe9"},
		{Kind: "strend"},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestStringOneByteAtATime(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, feedInOneByteChunks(t, l, []byte(`"ab\tc"`)))
	want := []event{
		{Kind: "strbegin"},
		{Kind: "strchunk", S: "a"},
		{Kind: "strchunk", S: "b"},
		{Kind: "strchunk", S: "\t"},
		{Kind: "strchunk", S: "c"},
		{Kind: "strend"},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestUnescapedControlChar(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("\"a\tb\""))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.UnescapedControlChar)
}

func TestBadUTF8ThirdByte(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte{'"', 0xe4, 0xb9, 0xc9})
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.BadUTF8)
}

func TestLongUTF8Rejected(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte{'"', 0xf8, 0x80})
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.LongUTF8)
}

func TestIntegers(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("0 -0 123 -456")))
	require.NoError(t, l.Finalize())
	want := []event{
		{Kind: "int", I: 0},
		{Kind: "int", I: 0},
		{Kind: "int", I: 123},
		{Kind: "int", I: -456},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestLeadingZero(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("012"))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.LeadingZero)
}

func TestLeadingPlus(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("+1"))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.LeadingPlus)
}

func TestEmptyFrac(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("1."))
	require.NoError(t, err)
	err = l.Finalize()
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.EmptyFrac)
}

func TestEmptyExp(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("0.3e+"))
	require.NoError(t, err)
	err = l.Finalize()
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.EmptyExp)
}

func TestExponentOverflow(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("1e400"))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.ExponentOverflow)
}

func TestFloats(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("1.5 -2.25e2 3e-1")))
	require.NoError(t, l.Finalize())
	require.Len(t, r.events, 3)
	require.InDelta(t, 1.5, r.events[0].F, 1e-9)
	require.InDelta(t, -225.0, r.events[1].F, 1e-9)
	require.InDelta(t, 0.3, r.events[2].F, 1e-9)
}

func TestIntOverflowWithoutBignum(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	err := l.Push([]byte("99999999999999999999"))
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.IntOverflow)
}

func TestIntOverflowWithBignum(t *testing.T) {
	r := &recorder{}
	l := New(r, true, true)
	require.NoError(t, l.Push([]byte("99999999999999999999 ")))
	require.NoError(t, l.Finalize())
	require.GreaterOrEqual(t, len(r.events), 2)
	require.Equal(t, "bignumbegin", r.events[0].Kind)
	last := r.events[len(r.events)-1]
	require.Equal(t, "bignumend", last.Kind)
	var digits string
	for _, e := range r.events {
		if e.Kind == "bignumchunk" {
			digits += e.S
		}
	}
	require.Equal(t, "99999999999999999999", digits)
}

func TestIntOverflowWithBignumOneByteAtATime(t *testing.T) {
	r := &recorder{}
	l := New(r, true, true)
	require.NoError(t, feedInOneByteChunks(t, l, []byte("99999999999999999999 ")))
	var digits string
	for _, e := range r.events {
		if e.Kind == "bignumchunk" {
			digits += e.S
		}
	}
	require.Equal(t, "99999999999999999999", digits)
}

func TestEOFInString(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte(`"abc`)))
	err := l.Finalize()
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.EOFInString)
}

func TestRollbackOnError(t *testing.T) {
	r := &recorder{}
	l := New(r, true, false)
	require.NoError(t, l.Push([]byte("123")))
	before := l.State
	err := l.Push([]byte{0xff})
	require.Error(t, err)
	require.Equal(t, before, l.State)
}

func TestChunkBoundaryIndependence(t *testing.T) {
	doc := []byte(`{"a":[1,2.5,true,false,null,"x\ty"]}`)
	whole := &recorder{}
	lw := New(whole, true, false)
	require.NoError(t, lw.Push(doc))
	require.NoError(t, lw.Finalize())

	perByte := &recorder{}
	lb := New(perByte, true, false)
	require.NoError(t, feedInOneByteChunks(t, lb, doc))

	flatten := func(evs []event) []event {
		var out []event
		var buf string
		flush := func() {
			if buf != "" {
				out = append(out, event{Kind: "strchunk", S: buf})
				buf = ""
			}
		}
		for _, e := range evs {
			if e.Kind == "strchunk" {
				buf += e.S
				continue
			}
			flush()
			out = append(out, e)
		}
		flush()
		return out
	}

	if diff := cmp.Diff(flatten(whole.events), flatten(perByte.events)); diff != "" {
		t.Errorf("chunk-boundary mismatch (-whole +perByte):\n%s", diff)
	}
}
