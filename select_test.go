package h5select

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/h5select/space"
)

func TestSelect_DispatchesByArgumentKind(t *testing.T) {
	sel, err := Select([]int{4, 4}, nil, Int(1), All())
	require.NoError(t, err)
	require.IsType(t, &SimpleSelection{}, sel)

	sel, err = Select([]int{4, 4}, nil, List{0, 2}, All())
	require.NoError(t, err)
	require.IsType(t, &FancySelection{}, sel)

	sel, err = Select([]int{4}, nil, Mask1D(true, false, true, false))
	require.NoError(t, err)
	require.IsType(t, &PointSelection{}, sel)
}

func TestSelect_AdoptsExistingSelection(t *testing.T) {
	orig, err := Select([]int{4, 4}, nil, Int(1), All())
	require.NoError(t, err)

	adopted, err := Select([]int{4, 4}, nil, orig)
	require.NoError(t, err)
	require.Same(t, orig, adopted)
}

func TestSelect_AdoptionShapeMismatch(t *testing.T) {
	orig, err := Select([]int{4, 4}, nil, Int(1), All())
	require.NoError(t, err)

	_, err = Select([]int{4, 5}, nil, orig)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSelect_SelectionInsideTupleRejected(t *testing.T) {
	orig, err := Select([]int{4, 4}, nil)
	require.NoError(t, err)

	_, err = Select([]int{4, 4}, nil, orig, Int(0))
	require.ErrorIs(t, err, ErrInvalidIndexType)
}

// fakeResolver resolves references from a fixed map, the way a dataset
// handle resolves region references it has issued.
type fakeResolver struct {
	regions map[any]*space.Space
}

func (r *fakeResolver) RegionSpace(ref RegionReference) (*space.Space, error) {
	sp, found := r.regions[ref.Token]
	if !found {
		return nil, fmt.Errorf("unknown region reference %v", ref.Token)
	}
	return sp, nil
}

func TestSelect_RegionReference(t *testing.T) {
	sp, err := space.NewSimple([]int{6, 6})
	require.NoError(t, err)
	require.NoError(t, sp.SelectHyperslab([]int{1, 1}, []int{2, 3}, nil, nil, space.OpSet))

	ds := &fakeResolver{regions: map[any]*space.Space{"r0": sp}}

	sel, err := Select([]int{6, 6}, ds, RegionReference{Token: "r0"})
	require.NoError(t, err)
	require.IsType(t, &SpaceSelection{}, sel)
	require.Equal(t, 6, sel.Nselect())
	require.Equal(t, []int{6}, sel.Mshape())
	require.Equal(t, []int{6}, sel.ArrayShape())
}

func TestSelect_RegionReferenceShapeMismatch(t *testing.T) {
	sp, err := space.NewSimple([]int{3, 3})
	require.NoError(t, err)
	ds := &fakeResolver{regions: map[any]*space.Space{"r0": sp}}

	_, err = Select([]int{6, 6}, ds, RegionReference{Token: "r0"})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSelect_RegionReferenceWithoutResolver(t *testing.T) {
	_, err := Select([]int{6, 6}, nil, RegionReference{Token: "r0"})
	require.ErrorIs(t, err, ErrInvalidIndexType)
}

func TestSelect_ResolverErrorPropagates(t *testing.T) {
	ds := &fakeResolver{}
	_, err := Select([]int{6, 6}, ds, RegionReference{Token: "missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown region reference")
}

func TestSpaceSelection_FlatShape(t *testing.T) {
	sp, err := space.NewSimple([]int{4, 4})
	require.NoError(t, err)
	require.NoError(t, sp.SelectHyperslab([]int{0, 0}, []int{2, 2}, nil, nil, space.OpSet))

	sel := NewSpaceSelection(sp)
	require.Equal(t, []int{4, 4}, sel.Shape())
	require.Equal(t, []int{4}, sel.Mshape())

	bc, err := sel.Broadcast([]int{4})
	require.NoError(t, err)
	require.True(t, bc.Next())
	require.Same(t, sp, bc.Space())

	_, err = sel.Broadcast([]int{3})
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
}
