package h5select

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/h5select/space"
)

func TestGuessShape_NullSpace(t *testing.T) {
	shape, ok, err := GuessShape(space.NewNull())
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, shape)
}

func TestGuessShape_ScalarSpace(t *testing.T) {
	sp := space.NewScalar()
	shape, ok, err := GuessShape(sp)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{}, shape)

	sp.SelectNone()
	_, ok, err = GuessShape(sp)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGuessShape_NothingSelected(t *testing.T) {
	sp, err := space.NewSimple([]int{5, 7})
	require.NoError(t, err)
	sp.SelectNone()

	shape, ok, err := GuessShape(sp)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{0, 0}, shape)
}

func TestGuessShape_EverythingSelected(t *testing.T) {
	sp, err := space.NewSimple([]int{5, 7})
	require.NoError(t, err)

	shape, ok, err := GuessShape(sp)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{5, 7}, shape)
}

func TestGuessShape_PointsAreFlat(t *testing.T) {
	sp, err := space.NewSimple([]int{5, 7})
	require.NoError(t, err)
	require.NoError(t, sp.SelectElements([][]int{{0, 0}, {2, 3}, {4, 6}}, space.OpSet))

	shape, ok, err := GuessShape(sp)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{3}, shape)
}

func TestGuessShape_SimpleHyperslab(t *testing.T) {
	sel, err := Select([]int{10, 5, 4, 2}, nil, Ellipsis, Int(0))
	require.NoError(t, err)

	shape, ok, err := GuessShape(sel.Space())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{10, 5, 4, 1}, shape)
}

func TestGuessShape_StridedHyperslab(t *testing.T) {
	sel, err := Select([]int{10}, nil, Slice{Stop: ToEnd, Step: 2})
	require.NoError(t, err)

	shape, ok, err := GuessShape(sel.Space())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{5}, shape)
}

func TestGuessShape_RegularUnionFactors(t *testing.T) {
	// Rows {1, 3} x all columns is still an outer product, so the
	// per-axis factoring holds even for a fancy union.
	sel, err := Select([]int{10, 4}, nil, List{1, 3}, All())
	require.NoError(t, err)

	shape, ok, err := GuessShape(sel.Space())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{2, 4}, shape)
}

func TestGuessShape_IrregularUnionFallsBack(t *testing.T) {
	// Two disjoint single-cell rectangles do not factor as a grid; the
	// inference must fall back to the flat shape, never report a false
	// rectangle.
	sp, err := space.NewSimple([]int{8, 8})
	require.NoError(t, err)
	require.NoError(t, sp.SelectHyperslab([]int{0, 0}, []int{1, 1}, nil, nil, space.OpSet))
	require.NoError(t, sp.SelectHyperslab([]int{5, 5}, []int{1, 1}, nil, nil, space.OpOr))

	shape, ok, err := GuessShape(sp)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{2}, shape)
}

func TestGuessShape_EmptyHyperslab(t *testing.T) {
	sel, err := Select([]int{10, 4}, nil, Span(3, 3), All())
	require.NoError(t, err)

	shape, ok, err := GuessShape(sel.Space())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{0, 0}, shape)
}
