package h5select

import "fmt"

// hyperslabParams is the per-axis result of translating a simple argument
// tuple: one (start, count, stride, block) descriptor per dimension, plus
// a flag marking axes indexed by a scalar (integer).
type hyperslabParams struct {
	start  []int
	count  []int
	stride []int
	block  []int
	scalar []bool
}

// mshape returns the selected-region shape, count*block per axis.
func (p *hyperslabParams) mshape() []int {
	m := make([]int, len(p.count))
	for i := range p.count {
		m[i] = p.count[i] * p.block[i]
	}
	return m
}

// expandEllipsis expands ellipsis arguments and fills in missing axes.
// At most one Ellipsis is allowed; if none is present and the argument
// count differs from the rank, one is implicitly appended. The result has
// exactly rank entries unless there were too many explicit arguments.
func expandEllipsis(args []Index, rank int) ([]Index, error) {
	nEllipsis := 0
	for _, arg := range args {
		if arg == Ellipsis {
			nEllipsis++
		}
	}
	if nEllipsis > 1 {
		return nil, fmt.Errorf("%w: found %d", ErrTooManyEllipses, nEllipsis)
	}
	if nEllipsis == 0 && len(args) != rank {
		args = append(append([]Index{}, args...), Ellipsis)
	}

	final := make([]Index, 0, rank)
	nArgs := len(args)
	for _, arg := range args {
		if arg == Ellipsis {
			for i := 0; i < rank-nArgs+1; i++ {
				final = append(final, All())
			}
		} else {
			final = append(final, arg)
		}
	}

	if len(final) > rank {
		return nil, fmt.Errorf("%w: %d indexing arguments for %d dimensions", ErrTooManyIndices, len(final), rank)
	}
	return final, nil
}

// translateInt translates an integer index into a (start, count, stride)
// triple. Negative indices count from the end of the axis.
func translateInt(idx, length int) (start, count, stride int, err error) {
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, 0, 0, fmt.Errorf("%w: index %d out of range (0-%d)", ErrIndexOutOfRange, idx, length-1)
	}
	return idx, 1, 1, nil
}

// translateSlice translates a Slice into a (start, count, stride) triple,
// normalizing bounds to [0, length] with Python slice clamping rules.
func translateSlice(s Slice, length int) (start, count, stride int, err error) {
	step := s.Step
	if step == 0 {
		step = 1
	}
	if step < 1 {
		return 0, 0, 0, fmt.Errorf("%w: step must be >= 1 (got %d)", ErrInvalidSliceStep, step)
	}

	start = s.Start
	if start < 0 {
		start += length
	}
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}

	stop := s.Stop
	if stop != ToEnd && stop < 0 {
		stop += length
	}
	if stop < 0 {
		stop = 0
	}
	if stop > length {
		stop = length
	}

	if stop <= start {
		// Empty range, matching list and array semantics.
		return 0, 0, 1, nil
	}
	count = 1 + (stop-start-1)/step
	return start, count, step, nil
}

// handleSimple translates a simple argument tuple (integers, slices,
// multi-block slices, at most one ellipsis) against a shape. Missing
// trailing axes are fully selected.
func handleSimple(shape []int, args []Index) (*hyperslabParams, error) {
	args, err := expandEllipsis(args, len(shape))
	if err != nil {
		return nil, err
	}

	p := &hyperslabParams{
		start:  make([]int, len(shape)),
		count:  make([]int, len(shape)),
		stride: make([]int, len(shape)),
		block:  make([]int, len(shape)),
		scalar: make([]bool, len(shape)),
	}

	for axis, length := range shape {
		var start, count, stride, block int
		scalar := false

		switch arg := args[axis].(type) {
		case Slice:
			start, count, stride, err = translateSlice(arg, length)
			block = 1
		case MultiBlockSlice:
			start, count, stride, block, err = arg.indices(length)
		case Int:
			start, count, stride, err = translateInt(int(arg), length)
			block = 1
			scalar = true
		default:
			err = fmt.Errorf("%w: illegal index %v (must be an integer, slice or multi-block slice)",
				ErrInvalidIndexType, arg)
		}
		if err != nil {
			return nil, err
		}

		p.start[axis] = start
		p.count[axis] = count
		p.stride[axis] = stride
		p.block[axis] = block
		p.scalar[axis] = scalar
	}
	return p, nil
}

// unravelIndex converts a flat row-major index into a multi-index, last
// axis varying fastest.
func unravelIndex(idx int, dims []int) []int {
	coord := make([]int, len(dims))
	for axis := len(dims) - 1; axis >= 0; axis-- {
		if dims[axis] > 0 {
			coord[axis] = idx % dims[axis]
			idx /= dims[axis]
		}
	}
	return coord
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneShape(v []int) []int {
	d := make([]int, len(v))
	copy(d, v)
	return d
}
