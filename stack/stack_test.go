package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopTop(t *testing.T) {
	s := New(1)
	require.True(t, s.Empty())

	ok := s.Push(Object)
	require.True(t, ok)
	assert.Equal(t, Object, s.Top())
	assert.Equal(t, 1, s.Depth())

	ok = s.Push(Array)
	require.True(t, ok)
	assert.Equal(t, Array, s.Top())
	assert.Equal(t, 2, s.Depth())

	s.Pop()
	assert.Equal(t, Object, s.Top())
	s.Pop()
	assert.True(t, s.Empty())
}

func TestStaticOverflow(t *testing.T) {
	s := New(1)
	for i := 0; i < 8; i++ {
		require.True(t, s.Push(Object))
	}
	assert.False(t, s.Push(Object))
}

func TestDynamicGrow(t *testing.T) {
	calls := 0
	s := NewDynamic(1, func(cur []byte) []byte {
		calls++
		grown := make([]byte, len(cur)+1)
		copy(grown, cur)
		return grown
	})
	for i := 0; i < 16; i++ {
		require.True(t, s.Push(Value(i%2 == 0)))
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 16, s.Depth())
}

func TestDynamicGrowDeclines(t *testing.T) {
	s := NewDynamic(1, func(cur []byte) []byte { return nil })
	for i := 0; i < 8; i++ {
		require.True(t, s.Push(Object))
	}
	assert.False(t, s.Push(Object))
}

func TestPopEmptyPanics(t *testing.T) {
	s := New(1)
	assert.Panics(t, func() { s.Pop() })
}

func TestTopEmptyPanics(t *testing.T) {
	s := New(1)
	assert.Panics(t, func() { s.Top() })
}
