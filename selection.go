// Package h5select translates multi-dimensional indexing expressions into
// dataspace selections over a rectangular N-dimensional extent, and
// composes them into committed regions: regular hyperslabs, discrete point
// sets, unions of hyperslabs from list or boolean-mask indexing, and
// broadcast chunk sequences for transfers between a selection and a
// differently-shaped array.
package h5select

import (
	"fmt"

	"github.com/scigolib/h5select/space"
)

// Selection is one committed region over a fixed extent. Implementations
// form a closed set: SimpleSelection (regular, broadcastable),
// FancySelection (union of hyperslabs), PointSelection (discrete points),
// and SpaceSelection (pass-through for adopted regions).
//
// A Selection is built for one indexing attempt; after a failed build its
// committed region is undefined and it must not be reused.
type Selection interface {
	Index

	// Space returns the underlying selection engine handle.
	Space() *space.Space

	// Shape returns the shape of the whole extent.
	Shape() []int

	// Mshape returns the shape of the selected region. Its product equals
	// Nselect.
	Mshape() []int

	// ArrayShape returns Mshape with scalar-indexed axes removed: the
	// shape a companion in-memory array must match or broadcast to.
	ArrayShape() []int

	// Nselect returns the number of selected points.
	Nselect() int

	// Broadcast returns the single-pass chunk sequence for transferring
	// between this selection and an array of the given shape.
	Broadcast(sourceShape []int) (*Broadcast, error)
}

// selectionBase carries the extent shape and engine handle shared by all
// selection variants.
type selectionBase struct {
	sp    *space.Space
	shape []int
}

func (*selectionBase) isIndex() {}

// Space returns the underlying selection engine handle.
func (b *selectionBase) Space() *space.Space { return b.sp }

// Shape returns the shape of the whole extent.
func (b *selectionBase) Shape() []int { return cloneShape(b.shape) }

// Nselect returns the number of selected points.
func (b *selectionBase) Nselect() int { return b.sp.Npoints() }

func newSelectionBase(shape []int) (selectionBase, error) {
	sp, err := space.NewSimple(shape)
	if err != nil {
		return selectionBase{}, err
	}
	return selectionBase{sp: sp, shape: cloneShape(shape)}, nil
}

// broadcastFlat is the shared fan-out for selections with a flat 1-D
// logical shape: the source must hold exactly Nselect elements and the
// committed region is yielded once, unmodified.
func (b *selectionBase) broadcastFlat(sourceShape []int) (*Broadcast, error) {
	n, err := space.Product(sourceShape)
	if err != nil {
		return nil, fmt.Errorf("%w: bad source shape %v: %v", ErrBroadcastIncompatible, sourceShape, err)
	}
	if n != b.Nselect() {
		return nil, fmt.Errorf("%w: broadcasting is not supported for point-wise selections (%d source elements, %d selected)",
			ErrBroadcastIncompatible, n, b.Nselect())
	}
	return newBroadcastOnce(b.sp), nil
}

// SpaceSelection adopts an already committed region: an existing space or
// one resolved from a region reference. It has a flat 1-D logical shape
// and no further indexing behavior.
type SpaceSelection struct {
	selectionBase
}

// NewSpaceSelection wraps a committed space. The space's own extent
// provides the selection shape.
func NewSpaceSelection(sp *space.Space) *SpaceSelection {
	return &SpaceSelection{selectionBase{sp: sp, shape: sp.Dims()}}
}

// Mshape returns the flat selection shape (Nselect,).
func (s *SpaceSelection) Mshape() []int { return []int{s.Nselect()} }

// ArrayShape returns the flat selection shape (Nselect,).
func (s *SpaceSelection) ArrayShape() []int { return s.Mshape() }

// Broadcast yields the adopted region once when the source holds exactly
// Nselect elements; adopted regions do not support repetition.
func (s *SpaceSelection) Broadcast(sourceShape []int) (*Broadcast, error) {
	return s.broadcastFlat(sourceShape)
}

// Broadcast is the single-pass sequence of chunk regions produced for one
// transfer. It follows the scanner pattern:
//
//	bc, err := sel.Broadcast(sourceShape)
//	if err != nil { ... }
//	for bc.Next() {
//	    useChunk(bc.Space())
//	}
//
// The space returned by Space is borrowed: every call to Next repositions
// the same underlying handle, invalidating the previously returned value.
// Consumers must fully use each chunk before requesting the next and must
// not retain it afterward. The sequence is not restartable; abandoning it
// early is safe, but the shared handle's final offset is unspecified.
type Broadcast struct {
	sp     *space.Space
	start  []int
	stride []int
	chunks []int
	total  int
	idx    int
}

// newBroadcastOnce yields the given space a single time, unmodified.
func newBroadcastOnce(sp *space.Space) *Broadcast {
	return &Broadcast{sp: sp, total: 1}
}

// Len returns the total number of chunks in the sequence.
func (b *Broadcast) Len() int { return b.total }

// Next advances to the next chunk, repositioning the shared space handle.
// It returns false when the sequence is exhausted.
func (b *Broadcast) Next() bool {
	if b.idx >= b.total {
		return false
	}
	if b.chunks != nil {
		multi := unravelIndex(b.idx, b.chunks)
		offset := make([]int, len(multi))
		for axis := range multi {
			offset[axis] = b.start[axis] + multi[axis]*b.stride[axis]
		}
		// The handle was validated when the sequence was built; offsets
		// stay within the extent by construction.
		_ = b.sp.SetOffset(offset)
	}
	b.idx++
	return true
}

// Space returns the current chunk region. Valid only after Next has
// returned true, and only until the next call to Next.
func (b *Broadcast) Space() *space.Space { return b.sp }

// Select generates a selection from a shape and arbitrary indexing
// arguments, the way dataset __getitem__ arguments are interpreted:
//
//   - a single Selection argument is adopted after an exact shape check;
//   - a single Mask argument covering the full extent produces a
//     PointSelection;
//   - a single RegionReference is resolved through ds and adopted;
//   - integers, slices, multi-block slices and ellipses produce a
//     SimpleSelection;
//   - argument tuples containing a list or 1-D mask produce a
//     FancySelection.
//
// ds may be nil unless a RegionReference argument is used.
func Select(shape []int, ds RegionResolver, args ...Index) (Selection, error) {
	if len(args) == 1 {
		switch arg := args[0].(type) {
		case Selection:
			if !equalShape(arg.Shape(), shape) {
				return nil, fmt.Errorf("%w: selection shape %v does not match extent %v",
					ErrShapeMismatch, arg.Shape(), shape)
			}
			return arg, nil

		case Mask:
			sel, err := NewPointSelection(shape)
			if err != nil {
				return nil, err
			}
			if err := sel.SelectMask(arg); err != nil {
				return nil, err
			}
			return sel, nil

		case RegionReference:
			if ds == nil {
				return nil, fmt.Errorf("%w: region reference requires a resolver", ErrInvalidIndexType)
			}
			sp, err := ds.RegionSpace(arg)
			if err != nil {
				return nil, err
			}
			if !equalShape(sp.Dims(), shape) {
				return nil, fmt.Errorf("%w: reference shape %v does not match dataset shape %v",
					ErrShapeMismatch, sp.Dims(), shape)
			}
			return NewSpaceSelection(sp), nil
		}
	}

	fancy := false
	for _, arg := range args {
		switch arg.(type) {
		case List, Mask:
			fancy = true
		case Selection, RegionReference:
			return nil, fmt.Errorf("%w: selections and region references must be the sole indexing argument",
				ErrInvalidIndexType)
		}
	}

	if fancy {
		sel, err := newFancySelection(shape)
		if err != nil {
			return nil, err
		}
		if err := sel.apply(args); err != nil {
			return nil, err
		}
		return sel, nil
	}

	sel, err := newSimpleSelection(shape)
	if err != nil {
		return nil, err
	}
	if err := sel.apply(args); err != nil {
		return nil, err
	}
	return sel, nil
}
