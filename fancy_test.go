package h5select

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFancySelection_ListAxis(t *testing.T) {
	sel, err := Select([]int{10, 10}, nil, List{1, 3, 5}, All())
	require.NoError(t, err)

	fancy, isFancy := sel.(*FancySelection)
	require.True(t, isFancy)
	require.Equal(t, []int{3, 10}, fancy.Mshape())
	require.Equal(t, []int{3, 10}, fancy.ArrayShape())
	require.Equal(t, 30, fancy.Nselect())
}

func TestFancySelection_UnionCoordinates(t *testing.T) {
	sel, err := Select([]int{6, 4}, nil, List{1, 4}, Span(0, 2))
	require.NoError(t, err)

	// Row-major over the union of the two rectangles.
	want := [][]int{{1, 0}, {1, 1}, {4, 0}, {4, 1}}
	require.Equal(t, want, sel.Space().Points())
}

func TestFancySelection_EmptyList(t *testing.T) {
	sel, err := Select([]int{10, 10}, nil, List{}, All())
	require.NoError(t, err)
	require.Equal(t, []int{0, 10}, sel.ArrayShape())
	require.Equal(t, []int{0, 10}, sel.Mshape())
	require.Equal(t, 0, sel.Nselect())
}

func TestFancySelection_NonMonotonicList(t *testing.T) {
	_, err := Select([]int{10, 10}, nil, List{3, 1}, All())
	require.ErrorIs(t, err, ErrNonMonotonicSequence)

	// Repeated values are not strictly increasing either.
	_, err = Select([]int{10, 10}, nil, List{1, 1}, All())
	require.ErrorIs(t, err, ErrNonMonotonicSequence)
}

func TestFancySelection_TwoSequenceAxes(t *testing.T) {
	_, err := Select([]int{10, 10}, nil, List{1, 2}, List{3, 4})
	require.ErrorIs(t, err, ErrFancyCombination)

	_, err = Select([]int{10, 10}, nil, List{1, 2}, Mask1D(true, false))
	require.ErrorIs(t, err, ErrFancyCombination)
}

func TestFancySelection_NoSequenceAxis(t *testing.T) {
	sel, err := newFancySelection([]int{10, 10})
	require.NoError(t, err)
	err = sel.apply([]Index{All(), All()})
	require.ErrorIs(t, err, ErrFancyCombination)
}

func TestFancySelection_BooleanMaskAxis(t *testing.T) {
	mask := Mask1D(false, true, false, true, false)
	sel, err := Select([]int{4, 5}, nil, All(), mask)
	require.NoError(t, err)
	require.Equal(t, []int{4, 2}, sel.ArrayShape())
	require.Equal(t, 8, sel.Nselect())
}

func TestFancySelection_AllFalseMaskAxis(t *testing.T) {
	mask := Mask1D(false, false, false, false, false)
	sel, err := Select([]int{4, 5}, nil, All(), mask)
	require.NoError(t, err)
	require.Equal(t, []int{4, 0}, sel.ArrayShape())
	require.Equal(t, 0, sel.Nselect())
}

func TestFancySelection_MultiDimMaskAxisRejected(t *testing.T) {
	mask := Mask{Dims: []int{2, 2}, Data: []bool{true, false, false, true}}
	_, err := Select([]int{4, 5}, nil, All(), mask)
	require.ErrorIs(t, err, ErrInvalidIndexType)
}

func TestFancySelection_ScalarAxisCollapses(t *testing.T) {
	sel, err := Select([]int{5, 6}, nil, Int(2), List{0, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, sel.Mshape())
	require.Equal(t, []int{3}, sel.ArrayShape())

	want := [][]int{{2, 0}, {2, 3}, {2, 4}}
	require.Equal(t, want, sel.Space().Points())
}

func TestFancySelection_SequenceAxisRetainedAtLengthOne(t *testing.T) {
	sel, err := Select([]int{5, 6}, nil, List{2}, Int(1))
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, sel.Mshape())
	require.Equal(t, []int{1}, sel.ArrayShape())
}

func TestFancySelection_NegativeSequenceValues(t *testing.T) {
	sel, err := Select([]int{10}, nil, List{-3, -1})
	require.NoError(t, err)
	require.Equal(t, [][]int{{7}, {9}}, sel.Space().Points())
}

func TestFancySelection_SequenceValueOutOfRange(t *testing.T) {
	_, err := Select([]int{10, 10}, nil, List{1, 10}, All())
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestFancySelection_NoBroadcast(t *testing.T) {
	sel, err := Select([]int{10, 10}, nil, List{1, 3, 5}, All())
	require.NoError(t, err)

	bc, err := sel.Broadcast([]int{3, 10})
	require.NoError(t, err)
	require.Equal(t, 1, bc.Len())
	require.True(t, bc.Next())
	require.Same(t, sel.Space(), bc.Space())

	_, err = sel.Broadcast([]int{10})
	require.ErrorIs(t, err, ErrBroadcastIncompatible)

	_, err = sel.Broadcast([]int{1, 3, 10})
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
}

func TestFancySelection_MultiBlockOnOtherAxis(t *testing.T) {
	sel, err := Select([]int{10, 10}, nil, MultiBlockSlice{Stride: 4, Count: 2, Block: 2}, List{0, 5})
	require.NoError(t, err)
	require.Equal(t, []int{4, 2}, sel.Mshape())
	require.Equal(t, []int{4, 2}, sel.ArrayShape())
	require.Equal(t, 8, sel.Nselect())
}
