package h5select

import "errors"

// Selection errors form a closed taxonomy. Every error returned by this
// package wraps exactly one of these sentinels with the offending
// parameters, so callers can match with errors.Is.
var (
	// ErrShapeMismatch is returned when an adopted selection or resolved
	// region reference does not match the target shape, or a boolean mask
	// does not match the extent it indexes.
	ErrShapeMismatch = errors.New("mismatched selection shape")

	// ErrInvalidIndexType is returned when an indexing argument is not one
	// of the supported kinds for the selection being built.
	ErrInvalidIndexType = errors.New("invalid index type")

	// ErrIndexOutOfRange is returned when an integer index falls outside
	// [-length, length).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidSliceStep is returned when a slice step is below 1.
	ErrInvalidSliceStep = errors.New("invalid slice step")

	// ErrInvalidMultiBlock is returned when multi-block slice parameters
	// are malformed or the described range does not fit the axis length.
	ErrInvalidMultiBlock = errors.New("invalid multi-block slice parameters")

	// ErrTooManyEllipses is returned when more than one Ellipsis appears.
	ErrTooManyEllipses = errors.New("only one ellipsis may be used")

	// ErrTooManyIndices is returned when there are more explicit indexing
	// arguments than the extent has dimensions.
	ErrTooManyIndices = errors.New("too many indices")

	// ErrFancyCombination is returned when an advanced selection has zero
	// or more than one sequence (list or boolean mask) axis.
	ErrFancyCombination = errors.New("unsupported fancy indexing combination")

	// ErrNonMonotonicSequence is returned when sequence values are not
	// strictly increasing.
	ErrNonMonotonicSequence = errors.New("indexing elements must be in increasing order")

	// ErrLengthMismatch is returned when sequence data disagrees with its
	// declared length, such as mask data shorter than its dimensions or a
	// point with the wrong number of coordinates.
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrBroadcastIncompatible is returned when a source array shape
	// cannot broadcast to the selection's array shape.
	ErrBroadcastIncompatible = errors.New("incompatible broadcast shapes")

	// ErrUnsupportedSelection is returned when an adopted space reports an
	// extent class or selection mode this layer does not recognize.
	ErrUnsupportedSelection = errors.New("unsupported selection mode")
)
