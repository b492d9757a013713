package bitpacket

import "errors"

// Errors reported by the layout engine. All are raised synchronously at the
// point of violation, wrapped with field context, and never retried; match
// them with errors.Is. A failed decode leaves the tree in a partially
// populated, caller-discardable state.
var (
	// ErrNameConflict is returned when appending a field whose name is
	// already taken by a sibling.
	ErrNameConflict = errors.New("field name already in use")

	// ErrKeyNotFound is returned when a path segment names a field that does
	// not exist.
	ErrKeyNotFound = errors.New("field does not exist")

	// ErrNotAContainer is returned when a non-terminal path segment names a
	// leaf field.
	ErrNotAContainer = errors.New("field is not a container")

	// ErrSizeExceeded is returned when a value does not fit the field's
	// declared bit or byte width.
	ErrSizeExceeded = errors.New("value does not fit the field size")

	// ErrLengthMismatch is returned when a value's length differs from the
	// field's currently resolved length.
	ErrLengthMismatch = errors.New("value length does not match the resolved length")

	// ErrValueTooLong is returned when content does not fit a Data field's
	// length counter.
	ErrValueTooLong = errors.New("value too long for the length field")

	// ErrShortStream is returned when the stream ends before a field's
	// declared size was consumed or produced.
	ErrShortStream = errors.New("stream ended before the field's declared size")

	// ErrWrongType is returned when a field of the wrong concrete type is
	// handed to an Array, or a value of the wrong kind to SetValue.
	ErrWrongType = errors.New("wrong type")

	// ErrNotMaterialized is returned (or panicked, for accessors that cannot
	// return an error) when a MetaField is used before decode or an explicit
	// Materialize call has built its delegate.
	ErrNotMaterialized = errors.New("meta field has not been materialized")

	// ErrUnsupportedNesting is returned when byte-aligned fields are placed
	// inside a bit container, or a bit leaf is decoded straight from a byte
	// stream.
	ErrUnsupportedNesting = errors.New("bit and byte fields cannot mix at this boundary")

	// ErrIndexOutOfRange is returned when an array index assignment targets
	// more than one element past the end.
	ErrIndexOutOfRange = errors.New("array index out of range")
)
