package h5select

import (
	"fmt"

	"github.com/scigolib/h5select/space"
)

// SimpleSelection is a single regular (rectangular) region built from
// integers, slices and multi-block slices. It is the only selection kind
// that participates in broadcasting.
type SimpleSelection struct {
	selectionBase
	params     *hyperslabParams
	arrayShape []int
}

func newSimpleSelection(shape []int) (*SimpleSelection, error) {
	base, err := newSelectionBase(shape)
	if err != nil {
		return nil, err
	}
	rank := len(shape)
	p := &hyperslabParams{
		start:  make([]int, rank),
		count:  cloneShape(shape),
		stride: ones(rank),
		block:  ones(rank),
		scalar: make([]bool, rank),
	}
	return &SimpleSelection{
		selectionBase: base,
		params:        p,
		arrayShape:    cloneShape(shape),
	}, nil
}

// apply replaces the committed region with the one described by args.
// Replace-not-accumulate: the previous region is discarded.
func (s *SimpleSelection) apply(args []Index) error {
	if len(s.shape) == 0 {
		// Scalar extent: only an empty index or a bare ellipsis is legal,
		// and it selects the single point.
		if len(args) > 0 && !(len(args) == 1 && args[0] == Ellipsis) {
			return fmt.Errorf("%w: invalid index for scalar dataset (only ellipsis allowed)", ErrInvalidIndexType)
		}
		s.sp.SelectAll()
		return nil
	}

	p, err := handleSimple(s.shape, args)
	if err != nil {
		return err
	}
	if err := s.sp.SelectHyperslab(p.start, p.count, p.stride, p.block, space.OpSet); err != nil {
		return err
	}

	s.params = p

	// Array shape drops dimensions selected by a scalar index.
	mshape := p.mshape()
	s.arrayShape = s.arrayShape[:0]
	for axis, length := range mshape {
		if !p.scalar[axis] {
			s.arrayShape = append(s.arrayShape, length)
		}
	}
	return nil
}

// Mshape returns the selected-region shape, count*block per axis.
func (s *SimpleSelection) Mshape() []int { return s.params.mshape() }

// ArrayShape returns Mshape with scalar-indexed axes removed.
func (s *SimpleSelection) ArrayShape() []int { return cloneShape(s.arrayShape) }

// ExpandShape matches the dimensions of a source array to the selection.
//
// The returned shape has the selection's rank and describes an array of
// the same size as sourceShape. With an extent of shape (10, 5, 4, 2)
// indexed [..., 0], a source shape (5, 4) expands to (1, 5, 4, 1); the
// broadcast sequence then repeats that chunk 10 times to cover the
// effective shape (10, 5, 4, 1).
//
// Walking axes from last to first: a scalar axis consumes nothing and
// contributes a synthetic 1; any other axis consumes the last remaining
// source dimension (1 when the source is exhausted), which must be 1, the
// full axis span, or the per-block length.
func (s *SimpleSelection) ExpandShape(sourceShape []int) ([]int, error) {
	mshape := s.Mshape()
	rank := len(mshape)
	remaining := cloneShape(sourceShape)

	eshape := make([]int, rank)
	for idx := 1; idx <= rank; idx++ {
		axis := rank - idx
		if len(remaining) == 0 || s.params.scalar[axis] {
			eshape[axis] = 1
			continue
		}
		t := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		if t == 1 || mshape[axis] == t || s.params.block[axis] == t {
			eshape[axis] = t
		} else {
			return nil, fmt.Errorf("%w: can't broadcast %v -> %v", ErrBroadcastIncompatible, sourceShape, s.arrayShape)
		}
	}

	// All leading source dimensions must have been consumed or be 1.
	for _, n := range remaining {
		if n > 1 {
			return nil, fmt.Errorf("%w: can't broadcast %v -> %v", ErrBroadcastIncompatible, sourceShape, s.arrayShape)
		}
	}
	return eshape, nil
}

// Broadcast returns the chunk sequence covering the selection with copies
// of a source array of the given shape, following the standard
// broadcasting rules against Mshape.
func (s *SimpleSelection) Broadcast(sourceShape []int) (*Broadcast, error) {
	if len(s.shape) == 0 {
		n, err := space.Product(sourceShape)
		if err != nil || n != 1 {
			return nil, fmt.Errorf("%w: can't broadcast %v to scalar", ErrBroadcastIncompatible, sourceShape)
		}
		s.sp.SelectAll()
		return newBroadcastOnce(s.sp), nil
	}

	chunkShape, err := s.ExpandShape(sourceShape)
	if err != nil {
		return nil, err
	}

	mshape := s.Mshape()
	rank := len(mshape)
	chunks := make([]int, rank)
	for axis := range mshape {
		if mshape[axis] == chunkShape[axis] {
			chunks[axis] = 1
		} else {
			chunks[axis] = mshape[axis] / chunkShape[axis]
		}
	}
	nchunks, err := space.Product(chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk grid %v: %v", ErrBroadcastIncompatible, chunks, err)
	}

	if nchunks == 1 {
		return newBroadcastOnce(s.sp), nil
	}

	// Re-describe a copied handle as a single chunk-shaped block at the
	// selection's start and stride; the sequence repositions that one
	// handle per chunk.
	sid := s.sp.Copy()
	if err := sid.SelectHyperslab(make([]int, rank), ones(rank), s.params.stride, chunkShape, space.OpSet); err != nil {
		return nil, err
	}
	return &Broadcast{
		sp:     sid,
		start:  cloneShape(s.params.start),
		stride: cloneShape(s.params.stride),
		chunks: chunks,
		total:  nchunks,
	}, nil
}

func ones(n int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = 1
	}
	return v
}
