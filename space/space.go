// Package space implements an in-memory dataspace selection engine.
//
// A Space pairs a rectangular N-dimensional extent with one committed
// selection. The primitive operations mirror the HDF5 H5S call surface:
// select all, select none, hyperslab selection with set/or/not-b
// composition, element (point) selection with set/append/prepend, selected
// point count, selected bounding box, copy, and a logical offset applied
// to the whole selection.
package space

import "fmt"

// Class represents the class of a dataspace extent.
type Class uint8

// Extent class constants define the dimensionality of a space.
const (
	ClassScalar Class = 0 // Scalar (single value).
	ClassSimple Class = 1 // Simple (N-dimensional array).
	ClassNull   Class = 2 // Null (no data).
)

// String returns a human-readable extent class name.
func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassSimple:
		return "simple"
	case ClassNull:
		return "null"
	default:
		return "unknown"
	}
}

// SelectMode identifies the flavor of selection currently committed.
type SelectMode uint8

// Selection mode constants.
const (
	SelectNone       SelectMode = 0 // Nothing selected.
	SelectAll        SelectMode = 1 // Entire extent selected.
	SelectHyperslabs SelectMode = 2 // One or more hyperslab regions.
	SelectPoints     SelectMode = 3 // Ordered discrete points.
)

// String returns a human-readable selection mode name.
func (m SelectMode) String() string {
	switch m {
	case SelectNone:
		return "none"
	case SelectAll:
		return "all"
	case SelectHyperslabs:
		return "hyperslabs"
	case SelectPoints:
		return "points"
	default:
		return "unknown"
	}
}

// Op is the composition operator for hyperslab and element selection calls.
type Op uint8

// Composition operators.
const (
	OpSet     Op = 0 // Replace the current selection.
	OpOr      Op = 1 // Union with the current hyperslab selection.
	OpNotB    Op = 2 // Subtract the region from the current selection.
	OpAppend  Op = 3 // Append points to the current point selection.
	OpPrepend Op = 4 // Prepend points to the current point selection.
)

// Hyperslab is a regular (start, count, stride, block) grid region, one
// entry per dimension.
type Hyperslab struct {
	Start  []int
	Count  []int
	Stride []int
	Block  []int
}

// Space is a dataspace extent with one committed selection.
//
// A Space is not safe for concurrent mutation; each selection owns its own
// handle and independent Spaces may be used concurrently.
type Space struct {
	class  Class
	dims   []int
	mode   SelectMode
	slabs  []Hyperslab // OR-composed regions
	excl   []Hyperslab // NOTB-subtracted regions
	points [][]int     // insertion-ordered coordinates
	offset []int       // logical shift applied to the whole selection
}

// NewSimple creates a simple space with the given dimension sizes and the
// entire extent selected. A zero-length dims creates a scalar space.
func NewSimple(dims []int) (*Space, error) {
	if len(dims) == 0 {
		return NewScalar(), nil
	}
	if _, err := Product(dims); err != nil {
		return nil, fmt.Errorf("invalid extent %v: %w", dims, err)
	}
	d := make([]int, len(dims))
	copy(d, dims)
	return &Space{
		class:  ClassSimple,
		dims:   d,
		mode:   SelectAll,
		offset: make([]int, len(dims)),
	}, nil
}

// NewScalar creates a scalar space with its single point selected.
func NewScalar() *Space {
	return &Space{class: ClassScalar, mode: SelectAll}
}

// NewNull creates a null space. Null spaces hold no data and support no
// selections.
func NewNull() *Space {
	return &Space{class: ClassNull, mode: SelectNone}
}

// Class returns the extent class.
func (s *Space) Class() Class { return s.class }

// Rank returns the number of dimensions (0 for scalar and null spaces).
func (s *Space) Rank() int { return len(s.dims) }

// Dims returns a copy of the dimension sizes.
func (s *Space) Dims() []int {
	d := make([]int, len(s.dims))
	copy(d, s.dims)
	return d
}

// Mode returns the flavor of the committed selection.
func (s *Space) Mode() SelectMode { return s.mode }

// Extent returns the total number of addressable points in the extent.
func (s *Space) Extent() int {
	if s.class == ClassNull {
		return 0
	}
	total := 1
	for _, dim := range s.dims {
		total *= dim // checked at construction
	}
	return total
}

// SelectAll selects the entire extent.
func (s *Space) SelectAll() {
	s.mode = SelectAll
	s.slabs, s.excl, s.points = nil, nil, nil
}

// SelectNone clears the selection.
func (s *Space) SelectNone() {
	s.mode = SelectNone
	s.slabs, s.excl, s.points = nil, nil, nil
}

// SelectHyperslab commits a hyperslab region with the given composition
// operator. A nil stride or block defaults to all 1s. A zero count on any
// dimension describes an empty region, which is legal and selects nothing.
func (s *Space) SelectHyperslab(start, count, stride, block []int, op Op) error {
	if s.class != ClassSimple {
		return fmt.Errorf("hyperslab selection requires a simple extent, have %s", s.class)
	}
	slab, err := s.makeHyperslab(start, count, stride, block)
	if err != nil {
		return err
	}

	switch op {
	case OpSet:
		s.slabs = []Hyperslab{slab}
		s.excl, s.points = nil, nil
		s.mode = SelectHyperslabs
	case OpOr:
		if s.mode != SelectHyperslabs {
			s.slabs = []Hyperslab{slab}
			s.excl, s.points = nil, nil
			s.mode = SelectHyperslabs
		} else {
			s.slabs = append(s.slabs, slab)
		}
	case OpNotB:
		s.subtract(slab)
	default:
		return fmt.Errorf("unsupported hyperslab operator %d", op)
	}
	return nil
}

// makeHyperslab validates parameters against the extent and fills stride
// and block defaults.
func (s *Space) makeHyperslab(start, count, stride, block []int) (Hyperslab, error) {
	ndims := len(s.dims)
	if len(start) != ndims || len(count) != ndims {
		return Hyperslab{}, fmt.Errorf("hyperslab dimension mismatch: start=%d, count=%d, space=%d",
			len(start), len(count), ndims)
	}
	if stride == nil {
		stride = ones(ndims)
	}
	if block == nil {
		block = ones(ndims)
	}
	if len(stride) != ndims || len(block) != ndims {
		return Hyperslab{}, fmt.Errorf("hyperslab dimension mismatch: stride=%d, block=%d, space=%d",
			len(stride), len(block), ndims)
	}

	slab := Hyperslab{
		Start:  cloneInts(start),
		Count:  cloneInts(count),
		Stride: cloneInts(stride),
		Block:  cloneInts(block),
	}
	for i := 0; i < ndims; i++ {
		if slab.Start[i] < 0 {
			return Hyperslab{}, fmt.Errorf("start must be >= 0 in dimension %d, got %d", i, slab.Start[i])
		}
		if slab.Count[i] < 0 {
			return Hyperslab{}, fmt.Errorf("count must be >= 0 in dimension %d, got %d", i, slab.Count[i])
		}
		if slab.Stride[i] < 1 {
			return Hyperslab{}, fmt.Errorf("stride must be > 0 in dimension %d, got %d", i, slab.Stride[i])
		}
		if slab.Block[i] < 1 {
			return Hyperslab{}, fmt.Errorf("block must be > 0 in dimension %d, got %d", i, slab.Block[i])
		}
		if slab.Count[i] == 0 {
			continue
		}
		// Last selected coordinate must stay inside the extent.
		last := slab.Start[i] + (slab.Count[i]-1)*slab.Stride[i] + slab.Block[i] - 1
		if last >= s.dims[i] {
			return Hyperslab{}, fmt.Errorf("selection out of bounds in dimension %d: "+
				"start=%d + (count-1)*stride + block - 1 = %d >= size=%d",
				i, slab.Start[i], last, s.dims[i])
		}
	}
	return slab, nil
}

// subtract applies a NOTB region to the current selection.
func (s *Space) subtract(slab Hyperslab) {
	switch s.mode {
	case SelectNone:
		// Nothing to subtract from.
	case SelectAll:
		s.slabs = []Hyperslab{s.fullSlab()}
		s.excl = []Hyperslab{slab}
		s.mode = SelectHyperslabs
	case SelectHyperslabs:
		s.excl = append(s.excl, slab)
	case SelectPoints:
		kept := s.points[:0]
		for _, p := range s.points {
			if !pointInSlab(p, slab) {
				kept = append(kept, p)
			}
		}
		s.points = kept
		if len(s.points) == 0 {
			s.SelectNone()
		}
	}
}

// fullSlab describes the entire extent as a single hyperslab.
func (s *Space) fullSlab() Hyperslab {
	ndims := len(s.dims)
	return Hyperslab{
		Start:  make([]int, ndims),
		Count:  cloneInts(s.dims),
		Stride: ones(ndims),
		Block:  ones(ndims),
	}
}

// SelectElements commits an ordered sequence of coordinates. OpSet replaces
// the selection; OpAppend and OpPrepend extend an existing point selection
// at the respective end and fail when the committed selection is not
// point-based. At least one point is required; clearing is SelectNone.
func (s *Space) SelectElements(points [][]int, op Op) error {
	if s.class != ClassSimple {
		return fmt.Errorf("element selection requires a simple extent, have %s", s.class)
	}
	if len(points) == 0 {
		return fmt.Errorf("element selection requires at least one point")
	}
	ndims := len(s.dims)
	fresh := make([][]int, len(points))
	for i, p := range points {
		if len(p) != ndims {
			return fmt.Errorf("point %d has %d coordinates, space has %d dimensions", i, len(p), ndims)
		}
		for d, c := range p {
			if c < 0 || c >= s.dims[d] {
				return fmt.Errorf("point %d out of bounds in dimension %d: %d not in [0, %d)", i, d, c, s.dims[d])
			}
		}
		fresh[i] = cloneInts(p)
	}

	switch op {
	case OpSet:
		s.points = fresh
		s.slabs, s.excl = nil, nil
		s.mode = SelectPoints
	case OpAppend:
		if s.mode != SelectPoints {
			return fmt.Errorf("cannot append points to a %s selection", s.mode)
		}
		s.points = append(s.points, fresh...)
	case OpPrepend:
		if s.mode != SelectPoints {
			return fmt.Errorf("cannot prepend points to a %s selection", s.mode)
		}
		s.points = append(fresh, s.points...)
	default:
		return fmt.Errorf("unsupported element operator %d", op)
	}
	return nil
}

// SetOffset applies a logical offset to the whole selection. Passing nil
// resets the offset to zero.
func (s *Space) SetOffset(offset []int) error {
	if s.class != ClassSimple {
		return fmt.Errorf("offset requires a simple extent, have %s", s.class)
	}
	if offset == nil {
		s.offset = make([]int, len(s.dims))
		return nil
	}
	if len(offset) != len(s.dims) {
		return fmt.Errorf("offset has %d entries, space has %d dimensions", len(offset), len(s.dims))
	}
	s.offset = cloneInts(offset)
	return nil
}

// Offset returns a copy of the current logical offset.
func (s *Space) Offset() []int { return cloneInts(s.offset) }

// Copy returns a deep copy of the space, selection state included.
func (s *Space) Copy() *Space {
	dup := &Space{
		class:  s.class,
		dims:   cloneInts(s.dims),
		mode:   s.mode,
		offset: cloneInts(s.offset),
	}
	for _, slab := range s.slabs {
		dup.slabs = append(dup.slabs, cloneSlab(slab))
	}
	for _, slab := range s.excl {
		dup.excl = append(dup.excl, cloneSlab(slab))
	}
	for _, p := range s.points {
		dup.points = append(dup.points, cloneInts(p))
	}
	return dup
}

// Npoints returns the number of selected points.
func (s *Space) Npoints() int {
	switch s.class {
	case ClassNull:
		return 0
	case ClassScalar:
		if s.mode == SelectAll {
			return 1
		}
		return 0
	}

	switch s.mode {
	case SelectNone:
		return 0
	case SelectAll:
		return s.Extent()
	case SelectPoints:
		return len(s.points)
	case SelectHyperslabs:
		if len(s.slabs) == 1 && len(s.excl) == 0 {
			return slabElements(s.slabs[0])
		}
		return s.countByScan()
	default:
		return 0
	}
}

// countByScan counts selected points by walking the union bounding box.
// Used only for multi-slab unions and NOTB-subtracted selections, where no
// closed form exists.
func (s *Space) countByScan() int {
	bottom, top, ok := s.rawBounds()
	if !ok {
		return 0
	}
	n := 0
	walkBox(bottom, top, func(coord []int) {
		if s.rawSelected(coord) {
			n++
		}
	})
	return n
}

// Selected reports whether the coordinate (with the logical offset applied)
// is part of the committed selection.
func (s *Space) Selected(coord []int) bool {
	if s.class != ClassSimple || len(coord) != len(s.dims) {
		return false
	}
	raw := make([]int, len(coord))
	for i := range coord {
		raw[i] = coord[i] - s.offset[i]
	}
	return s.rawSelected(raw)
}

// rawSelected tests membership in offset-free selection coordinates.
func (s *Space) rawSelected(coord []int) bool {
	switch s.mode {
	case SelectAll:
		for i, c := range coord {
			if c < 0 || c >= s.dims[i] {
				return false
			}
		}
		return true
	case SelectPoints:
		for _, p := range s.points {
			if equalInts(p, coord) {
				return true
			}
		}
		return false
	case SelectHyperslabs:
		in := false
		for _, slab := range s.slabs {
			if pointInSlab(coord, slab) {
				in = true
				break
			}
		}
		if !in {
			return false
		}
		for _, slab := range s.excl {
			if pointInSlab(coord, slab) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Bounds returns the bounding box of the selection as inclusive bottom and
// top corners, with the logical offset applied. ok is false when nothing is
// selected. For NOTB-subtracted selections the box covers the pre-
// subtraction regions and may be loose.
func (s *Space) Bounds() (bottom, top []int, ok bool) {
	bottom, top, ok = s.rawBounds()
	if !ok {
		return nil, nil, false
	}
	for i := range bottom {
		bottom[i] += s.offset[i]
		top[i] += s.offset[i]
	}
	return bottom, top, true
}

func (s *Space) rawBounds() (bottom, top []int, ok bool) {
	if s.class != ClassSimple {
		if s.class == ClassScalar && s.mode == SelectAll {
			return []int{}, []int{}, true
		}
		return nil, nil, false
	}
	ndims := len(s.dims)

	switch s.mode {
	case SelectAll:
		bottom = make([]int, ndims)
		top = make([]int, ndims)
		for i, dim := range s.dims {
			if dim == 0 {
				return nil, nil, false
			}
			top[i] = dim - 1
		}
		return bottom, top, true

	case SelectPoints:
		if len(s.points) == 0 {
			return nil, nil, false
		}
		bottom = cloneInts(s.points[0])
		top = cloneInts(s.points[0])
		for _, p := range s.points[1:] {
			for i, c := range p {
				if c < bottom[i] {
					bottom[i] = c
				}
				if c > top[i] {
					top[i] = c
				}
			}
		}
		return bottom, top, true

	case SelectHyperslabs:
		first := true
		for _, slab := range s.slabs {
			if slabElements(slab) == 0 {
				continue
			}
			for i := 0; i < ndims; i++ {
				last := slab.Start[i] + (slab.Count[i]-1)*slab.Stride[i] + slab.Block[i] - 1
				if first {
					if i == 0 {
						bottom = cloneInts(slab.Start)
						top = make([]int, ndims)
					}
					top[i] = last
					continue
				}
				if slab.Start[i] < bottom[i] {
					bottom[i] = slab.Start[i]
				}
				if last > top[i] {
					top[i] = last
				}
			}
			first = false
		}
		if first {
			return nil, nil, false
		}
		return bottom, top, true

	default:
		return nil, nil, false
	}
}

// Points enumerates the selected coordinates with the logical offset
// applied. Hyperslab selections are produced in row-major order; point
// selections keep their insertion order.
func (s *Space) Points() [][]int {
	if s.class == ClassScalar {
		if s.mode == SelectAll {
			return [][]int{{}}
		}
		return nil
	}
	if s.class != ClassSimple {
		return nil
	}

	var out [][]int
	emit := func(coord []int) {
		p := make([]int, len(coord))
		for i := range coord {
			p[i] = coord[i] + s.offset[i]
		}
		out = append(out, p)
	}

	switch s.mode {
	case SelectAll:
		bottom, top, ok := s.rawBounds()
		if !ok {
			return nil
		}
		walkBox(bottom, top, emit)
	case SelectPoints:
		for _, p := range s.points {
			emit(p)
		}
	case SelectHyperslabs:
		if len(s.slabs) == 1 && len(s.excl) == 0 {
			walkSlab(s.slabs[0], emit)
			return out
		}
		bottom, top, ok := s.rawBounds()
		if !ok {
			return nil
		}
		walkBox(bottom, top, func(coord []int) {
			if s.rawSelected(coord) {
				emit(coord)
			}
		})
	}
	return out
}

// String returns a human-readable space description.
func (s *Space) String() string {
	switch s.class {
	case ClassScalar:
		return fmt.Sprintf("scalar space (%s selection)", s.mode)
	case ClassNull:
		return "null space"
	default:
		return fmt.Sprintf("%dD space %v (%s selection, %d points)",
			len(s.dims), s.dims, s.mode, s.Npoints())
	}
}

// pointInSlab tests membership of a coordinate in one hyperslab.
func pointInSlab(coord []int, slab Hyperslab) bool {
	for i, c := range coord {
		rel := c - slab.Start[i]
		if rel < 0 {
			return false
		}
		if rel/slab.Stride[i] >= slab.Count[i] || rel%slab.Stride[i] >= slab.Block[i] {
			return false
		}
	}
	return true
}

// slabElements returns count*block across all dimensions.
func slabElements(slab Hyperslab) int {
	total := 1
	for i := range slab.Count {
		total *= slab.Count[i] * slab.Block[i]
	}
	return total
}

// walkSlab visits every coordinate of a hyperslab in row-major order.
func walkSlab(slab Hyperslab, visit func(coord []int)) {
	ndims := len(slab.Start)
	coord := make([]int, ndims)
	var walk func(dim int)
	walk = func(dim int) {
		if dim == ndims {
			visit(coord)
			return
		}
		for c := 0; c < slab.Count[dim]; c++ {
			blockStart := slab.Start[dim] + c*slab.Stride[dim]
			for b := 0; b < slab.Block[dim]; b++ {
				coord[dim] = blockStart + b
				walk(dim + 1)
			}
		}
	}
	walk(0)
}

// walkBox visits every coordinate of an inclusive box in row-major order.
func walkBox(bottom, top []int, visit func(coord []int)) {
	ndims := len(bottom)
	coord := make([]int, ndims)
	var walk func(dim int)
	walk = func(dim int) {
		if dim == ndims {
			visit(coord)
			return
		}
		for c := bottom[dim]; c <= top[dim]; c++ {
			coord[dim] = c
			walk(dim + 1)
		}
	}
	walk(0)
}

func cloneSlab(slab Hyperslab) Hyperslab {
	return Hyperslab{
		Start:  cloneInts(slab.Start),
		Count:  cloneInts(slab.Count),
		Stride: cloneInts(slab.Stride),
		Block:  cloneInts(slab.Block),
	}
}

func cloneInts(v []int) []int {
	if v == nil {
		return nil
	}
	d := make([]int, len(v))
	copy(d, v)
	return d
}

func equalInts(a, b []int) bool {
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

func ones(n int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = 1
	}
	return v
}
