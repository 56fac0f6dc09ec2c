package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEither(t *testing.T) {
	t.Parallel()

	left := Left[string, int]("a")
	val, ok := left.Left()
	require.True(t, ok)
	require.Equal(t, "a", val)
	require.False(t, left.IsRight())
	require.Equal(t, "Left(a)", left.String())

	right := Right[string, int](3)
	num, ok := right.Right()
	require.True(t, ok)
	require.Equal(t, 3, num)
	_, ok = right.Left()
	require.False(t, ok)
}

func TestMaybe(t *testing.T) {
	t.Parallel()

	require.Equal(t, 4, None[int]().OrElse(4))
	require.Equal(t, 2, Some(2).OrElse(4))
	require.Equal(t, "None", None[int]().String())
	require.Equal(t, "Some(2)", Some(2).String())
	require.Equal(t, "(1, b)", PairOf(1, "b").String())
}
