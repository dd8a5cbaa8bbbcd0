package h5select

import (
	"fmt"
	"math"

	"github.com/scigolib/h5select/space"
)

// Index is one per-axis (or whole-extent) indexing argument. The set of
// implementations is closed: Int, Slice, MultiBlockSlice, Ellipsis, List,
// Mask, any Selection, and RegionReference. Arguments are classified once
// at the Select boundary; there is no runtime sniffing beyond this type
// switch.
type Index interface {
	isIndex()
}

// Int selects a single position on one axis, collapsing it. Negative
// values count from the end of the axis.
type Int int

func (Int) isIndex() {}

// ToEnd marks a Slice.Stop that extends through the end of the axis.
const ToEnd = math.MaxInt

// Slice selects a regular range [Start, Stop) with a positive Step,
// following Python slice semantics: negative Start/Stop count from the end
// of the axis and out-of-range bounds are clamped.
//
// A zero Step is read as 1 so that composite literals may omit it. The
// zero value Slice{} is the empty range [0, 0); use All for a full-axis
// slice.
type Slice struct {
	Start int
	Stop  int
	Step  int
}

func (Slice) isIndex() {}

// All returns a slice covering the whole axis.
func All() Slice {
	return Slice{Start: 0, Stop: ToEnd, Step: 1}
}

// Span returns the slice [start, stop) with step 1.
func Span(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: 1}
}

// From returns the slice [start, end-of-axis) with step 1.
func From(start int) Slice {
	return Slice{Start: start, Stop: ToEnd, Step: 1}
}

// MultiBlockSlice extends a slice to the full hyperslab parameter set:
// Count blocks of Block consecutive elements, the starts of adjacent
// blocks Stride elements apart, beginning at Start.
//
// Zero fields take their defaults: Stride 1, Block 1, and Count "as many
// full blocks as fit in the axis". The zero value therefore selects the
// full extent of the axis.
type MultiBlockSlice struct {
	Start  int
	Stride int
	Count  int // 0 means as many full blocks as fit
	Block  int
}

func (MultiBlockSlice) isIndex() {}

// String returns the canonical form used verbatim in error messages.
func (m MultiBlockSlice) String() string {
	return m.repr(m.Count)
}

func (m MultiBlockSlice) repr(count int) string {
	countStr := "auto"
	if count > 0 {
		countStr = fmt.Sprintf("%d", count)
	}
	return fmt.Sprintf("MultiBlockSlice(start=%d, stride=%d, count=%s, block=%d)",
		m.Start, m.withDefaults().Stride, countStr, m.withDefaults().Block)
}

// withDefaults resolves zero Stride and Block to 1.
func (m MultiBlockSlice) withDefaults() MultiBlockSlice {
	if m.Stride == 0 {
		m.Stride = 1
	}
	if m.Block == 0 {
		m.Block = 1
	}
	return m
}

// validate applies the construction-time rules: non-negative start,
// positive stride and block, non-negative count, and non-overlapping
// blocks (block <= stride).
func (m MultiBlockSlice) validate() error {
	r := m.withDefaults()
	if r.Start < 0 {
		return fmt.Errorf("%w: start can't be negative in %s", ErrInvalidMultiBlock, m)
	}
	if r.Stride < 1 || r.Count < 0 || r.Block < 1 {
		return fmt.Errorf("%w: stride, count and block can't be 0 or negative in %s", ErrInvalidMultiBlock, m)
	}
	if r.Block > r.Stride {
		return fmt.Errorf("%w: blocks will overlap if block > stride in %s", ErrInvalidMultiBlock, m)
	}
	return nil
}

// indices resolves and validates the parameters against an axis length,
// computing the count when it was left automatic.
func (m MultiBlockSlice) indices(length int) (start, count, stride, block int, err error) {
	if err := m.validate(); err != nil {
		return 0, 0, 0, 0, err
	}
	r := m.withDefaults()

	count = r.Count
	if count == 0 {
		// Select as many full blocks as fit without exceeding the extent.
		count = (length-r.Start-r.Block)/r.Stride + 1
		if count < 1 {
			return 0, 0, 0, 0, fmt.Errorf("%w: no full blocks can be selected using %s on dimension of length %d",
				ErrInvalidMultiBlock, m, length)
		}
	}

	end := r.Start + r.Block + (count-1)*r.Stride - 1
	if end >= length {
		return 0, 0, 0, 0, fmt.Errorf("%w: %s range (%d - %d) extends beyond maximum index (%d)",
			ErrInvalidMultiBlock, m.repr(count), r.Start, end, length-1)
	}
	return r.Start, count, r.Stride, r.Block, nil
}

// Ellipsis stands for as many full-axis slices as needed to pad the
// argument list to the extent rank. At most one may appear.
var Ellipsis Index = ellipsis{}

type ellipsis struct{}

func (ellipsis) isIndex() {}

// List selects an explicit sequence of positions on one axis. Values must
// be strictly increasing; an empty list selects a zero-length axis.
type List []int

func (List) isIndex() {}

// Mask is a boolean mask. As the sole indexing argument it must cover the
// full extent and produces a point selection; inside a tuple it must be
// 1-D and selects the true positions of one axis.
type Mask struct {
	Dims []int
	Data []bool // row-major, len == product(Dims)
}

func (Mask) isIndex() {}

// Mask1D builds a one-dimensional mask.
func Mask1D(values ...bool) Mask {
	return Mask{Dims: []int{len(values)}, Data: values}
}

// validate checks that Data matches the declared dimensions.
func (m Mask) validate() error {
	n, err := space.Product(m.Dims)
	if err != nil {
		return fmt.Errorf("%w: bad mask dimensions %v: %v", ErrLengthMismatch, m.Dims, err)
	}
	if len(m.Data) != n {
		return fmt.Errorf("%w: mask has %d values for dimensions %v (want %d)",
			ErrLengthMismatch, len(m.Data), m.Dims, n)
	}
	return nil
}

// nonzero1D returns the true positions of a 1-D mask.
func (m Mask) nonzero1D() ([]int, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if len(m.Dims) != 1 {
		return nil, fmt.Errorf("%w: boolean indexing arrays must be 1-D, got %d dimensions",
			ErrInvalidIndexType, len(m.Dims))
	}
	var idx []int
	for i, v := range m.Data {
		if v {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// truePoints returns the coordinates of true values in row-major order.
func (m Mask) truePoints() ([][]int, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	var points [][]int
	for i, v := range m.Data {
		if v {
			points = append(points, unravelIndex(i, m.Dims))
		}
	}
	return points, nil
}

// RegionReference is an opaque handle to a previously computed region.
// References are minted by the storage layer, carried through indexing
// arguments by identity, and resolved back into a space through a
// RegionResolver.
type RegionReference struct {
	Token any
}

func (RegionReference) isIndex() {}

// RegionResolver resolves region references against the storage that
// issued them. It is the only storage-side capability Select needs beyond
// the space primitives themselves.
type RegionResolver interface {
	RegionSpace(ref RegionReference) (*space.Space, error)
}
