package h5select

import (
	"fmt"

	"github.com/scigolib/h5select/space"
)

// GuessShape deduces the logical shape of a committed selection by
// querying the space alone, for regions whose shape is not otherwise
// tracked (adopted spaces, region references).
//
// ok is false when no shape can be expressed: null spaces and scalar
// spaces with nothing selected. A fully selected scalar space yields the
// empty shape. Point selections yield the flat 1-D shape (N,), matching
// point-selection flattening. Hyperslab selections yield the per-axis
// shape when the selection factors as a single regular grid, and fall
// back to (N,) when it does not (multiple hyperslab regions in effect).
func GuessShape(sp *space.Space) (shape []int, ok bool, err error) {
	switch sp.Class() {
	case space.ClassNull:
		// Null spaces don't support selections.
		return nil, false, nil
	case space.ClassScalar:
		switch sp.Mode() {
		case space.SelectNone:
			// There is no way to express an empty rank-0 selection.
			return nil, false, nil
		case space.SelectAll:
			return []int{}, true, nil
		default:
			return nil, false, fmt.Errorf("%w: %s selection on a scalar space", ErrUnsupportedSelection, sp.Mode())
		}
	case space.ClassSimple:
		// Handled below.
	default:
		return nil, false, fmt.Errorf("%w: unrecognized dataspace class %d", ErrUnsupportedSelection, sp.Class())
	}

	n := sp.Npoints()
	rank := sp.Rank()

	switch sp.Mode() {
	case space.SelectNone:
		return make([]int, rank), true, nil
	case space.SelectAll:
		return sp.Dims(), true, nil
	case space.SelectPoints:
		// Point-based selections yield 1-D shapes regardless of rank.
		return []int{n}, true, nil
	case space.SelectHyperslabs:
		// Handled below.
	default:
		return nil, false, fmt.Errorf("%w: unrecognized selection method %d", ErrUnsupportedSelection, sp.Mode())
	}

	if n == 0 {
		return make([]int, rank), true, nil
	}

	bottom, top, ok := sp.Bounds()
	if !ok {
		return make([]int, rank), true, nil
	}

	// Shape of the tight selection box.
	boxshape := make([]int, rank)
	for axis := range boxshape {
		boxshape[axis] = top[axis] - bottom[axis] + 1
	}

	shape = make([]int, rank)
	for axis := range shape {
		count, err := guessAxisCount(sp, axis, n, bottom, boxshape)
		if err != nil {
			return nil, false, err
		}
		shape[axis] = count
	}

	product := 1
	for _, c := range shape {
		product *= c
	}
	if product != n {
		// Multiple hyperslab regions are in effect; the selection is not
		// a single regular grid, so fall back to a 1-D shape.
		return []int{n}, true, nil
	}
	return shape, true, nil
}

// guessAxisCount determines the number of elements selected along one
// axis. The axis is masked off by subtracting everything in the selection
// box except its first-coordinate plane; with leftover points L, the axis
// selects N/L elements. This factoring is valid because a single regular
// hyperslab selection is an outer product across axes.
func guessAxisCount(sp *space.Space, axis, n int, bottom, boxshape []int) (int, error) {
	if boxshape[axis] == 1 {
		return 1, nil
	}

	start := cloneShape(bottom)
	start[axis]++
	count := cloneShape(boxshape)
	count[axis]--

	masked := sp.Copy()
	if err := masked.SelectHyperslab(start, count, nil, nil, space.OpNotB); err != nil {
		return 0, fmt.Errorf("masking axis %d: %w", axis, err)
	}
	leftover := masked.Npoints()
	if leftover == 0 {
		return 0, fmt.Errorf("%w: empty leftover while probing axis %d", ErrUnsupportedSelection, axis)
	}
	return n / leftover, nil
}
