package h5select

import (
	"fmt"

	"github.com/scigolib/h5select/space"
)

// FancySelection implements advanced selection: exactly one axis indexed
// by a list of positions or a 1-D boolean mask, the remaining axes by
// integers, slices or multi-block slices. The committed region is the
// union of one rectangular region per sequence value.
//
// Broadcasting is not supported for these selections.
type FancySelection struct {
	selectionBase
	mshape     []int
	arrayShape []int
}

func newFancySelection(shape []int) (*FancySelection, error) {
	base, err := newSelectionBase(shape)
	if err != nil {
		return nil, err
	}
	return &FancySelection{
		selectionBase: base,
		mshape:        cloneShape(shape),
		arrayShape:    cloneShape(shape),
	}, nil
}

// apply replaces the committed region with the union described by args.
func (s *FancySelection) apply(args []Index) error {
	args, err := expandEllipsis(args, len(s.shape))
	if err != nil {
		return err
	}

	// Locate the single sequence axis. Boolean masks contribute their
	// true positions, which are strictly increasing by construction;
	// explicit lists must be strictly increasing themselves.
	seqAxis := -1
	var seq []int
	for axis, arg := range args {
		var values []int
		switch a := arg.(type) {
		case List:
			values = a
			for i := 1; i < len(values); i++ {
				if values[i-1] >= values[i] {
					return fmt.Errorf("%w: got %v", ErrNonMonotonicSequence, []int(a))
				}
			}
		case Mask:
			values, err = a.nonzero1D()
			if err != nil {
				return err
			}
			if values == nil {
				values = []int{}
			}
		default:
			continue
		}
		if seqAxis >= 0 {
			return fmt.Errorf("%w: only one indexing vector or array is currently allowed for advanced selection",
				ErrFancyCombination)
		}
		seqAxis = axis
		seq = values
	}
	if seqAxis < 0 {
		return fmt.Errorf("%w: advanced selection inappropriate", ErrFancyCombination)
	}

	// Expand into one simple argument tuple per sequence value, e.g.
	// (0:5, [1, 3]) becomes (0:5, 1) and (0:5, 3), then OR the translated
	// regions together. An empty sequence becomes an explicit empty slice
	// so the result keeps the correct (zero-length) shape.
	var vector [][]Index
	if len(seq) > 0 {
		vector = make([][]Index, len(seq))
		for i, v := range seq {
			entry := make([]Index, len(args))
			copy(entry, args)
			entry[seqAxis] = Int(v)
			vector[i] = entry
		}
	} else {
		entry := make([]Index, len(args))
		copy(entry, args)
		entry[seqAxis] = Span(0, 0)
		vector = [][]Index{entry}
	}

	s.sp.SelectNone()
	var p *hyperslabParams
	for _, entry := range vector {
		p, err = handleSimple(s.shape, entry)
		if err != nil {
			return err
		}
		if err := s.sp.SelectHyperslab(p.start, p.count, p.stride, p.block, space.OpOr); err != nil {
			return err
		}
	}

	// Final shape: the sequence axis takes the sequence length, scalar
	// axes collapse out of the array shape, slice axes keep their span.
	mshape := p.mshape()
	s.mshape = s.mshape[:0]
	s.arrayShape = s.arrayShape[:0]
	for axis := range mshape {
		length := mshape[axis]
		collapsed := false
		switch {
		case axis == seqAxis:
			length = len(seq)
		case p.scalar[axis]:
			length = 1
			collapsed = true
		}
		s.mshape = append(s.mshape, length)
		if !collapsed {
			s.arrayShape = append(s.arrayShape, length)
		}
	}
	return nil
}

// Mshape returns the selected-region shape, counting collapsed scalar
// axes as size 1.
func (s *FancySelection) Mshape() []int { return cloneShape(s.mshape) }

// ArrayShape returns Mshape with collapsed axes removed. The sequence
// axis is always retained, even at length 1 or 0.
func (s *FancySelection) ArrayShape() []int { return cloneShape(s.arrayShape) }

// ExpandShape requires the source shape to equal ArrayShape exactly;
// complex selections do not broadcast.
func (s *FancySelection) ExpandShape(sourceShape []int) ([]int, error) {
	if !equalShape(sourceShape, s.arrayShape) {
		return nil, fmt.Errorf("%w: broadcasting is not supported for complex selections (%v -> %v)",
			ErrBroadcastIncompatible, sourceShape, s.arrayShape)
	}
	return cloneShape(sourceShape), nil
}

// Broadcast yields the committed union once; the source shape must equal
// ArrayShape exactly.
func (s *FancySelection) Broadcast(sourceShape []int) (*Broadcast, error) {
	if _, err := s.ExpandShape(sourceShape); err != nil {
		return nil, err
	}
	return newBroadcastOnce(s.sp), nil
}
