package h5select

import (
	"fmt"

	"github.com/scigolib/h5select/space"
)

// PointSelection is an ordered sequence of discrete coordinates. Points
// come either from a full-extent boolean mask or from explicit coordinate
// sequences via Set, Append and Prepend. Order matters and duplicates are
// permitted. The logical shape is always 1-D, regardless of rank.
type PointSelection struct {
	selectionBase
}

// NewPointSelection creates a point selection over the given extent with
// the whole extent initially selected.
func NewPointSelection(shape []int) (*PointSelection, error) {
	base, err := newSelectionBase(shape)
	if err != nil {
		return nil, err
	}
	return &PointSelection{base}, nil
}

// Mshape returns the flat selection shape (Nselect,).
func (s *PointSelection) Mshape() []int { return []int{s.Nselect()} }

// ArrayShape returns the flat selection shape (Nselect,).
func (s *PointSelection) ArrayShape() []int { return s.Mshape() }

// Broadcast yields the committed points once when the source holds
// exactly Nselect elements; point-wise selections do not broadcast.
func (s *PointSelection) Broadcast(sourceShape []int) (*Broadcast, error) {
	return s.broadcastFlat(sourceShape)
}

// SelectMask replaces the selection with the coordinates of the true
// values of a full-extent boolean mask, in row-major order.
func (s *PointSelection) SelectMask(m Mask) error {
	if err := m.validate(); err != nil {
		return err
	}
	if !equalShape(m.Dims, s.shape) {
		return fmt.Errorf("%w: boolean indexing array has incompatible shape (mask %v, extent %v)",
			ErrShapeMismatch, m.Dims, s.shape)
	}
	points, err := m.truePoints()
	if err != nil {
		return err
	}
	return s.Set(points...)
}

// Set replaces the current selection with the given sequence of points.
// An empty sequence clears the selection.
func (s *PointSelection) Set(points ...[]int) error {
	return s.perform(points, space.OpSet)
}

// Append adds the sequence of points to the end of the current selection.
//
// When the committed region is not already point-based the operation
// degrades to Set, replacing the region with just the given points. This
// quirk is inherited behavior and intentionally preserved.
func (s *PointSelection) Append(points ...[]int) error {
	return s.perform(points, space.OpAppend)
}

// Prepend adds the sequence of points to the beginning of the current
// selection.
//
// When the committed region is not already point-based the operation
// degrades to Set, replacing the region with just the given points. This
// quirk is inherited behavior and intentionally preserved.
func (s *PointSelection) Prepend(points ...[]int) error {
	return s.perform(points, space.OpPrepend)
}

// perform validates the points and commits them with the requested
// operator, degrading append/prepend to set when the current region is
// not point-based.
func (s *PointSelection) perform(points [][]int, op space.Op) error {
	rank := len(s.shape)
	for i, p := range points {
		if len(p) != rank {
			return fmt.Errorf("%w: point %d has %d coordinates for a rank-%d extent",
				ErrLengthMismatch, i, len(p), rank)
		}
		for axis, c := range p {
			if c < 0 || c >= s.shape[axis] {
				return fmt.Errorf("%w: point %d coordinate %d out of range (0-%d) in dimension %d",
					ErrIndexOutOfRange, i, c, s.shape[axis]-1, axis)
			}
		}
	}

	if s.sp.Mode() != space.SelectPoints {
		op = space.OpSet
	}
	if len(points) == 0 {
		s.sp.SelectNone()
		return nil
	}
	return s.sp.SelectElements(points, op)
}
