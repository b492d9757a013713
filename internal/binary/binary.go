// Package binary replaces the encoding/binary package in the standard library
// for fixed-width integer encoding using generics. Unlike the standard
// package, one Get/Put pair covers every width and signedness, with the byte
// order passed as a parameter.
package binary

import (
	"encoding/binary"
	"fmt"
)

// Fixed constrains the integer kinds with a platform-independent wire width.
// int, uint and uintptr are excluded: their width depends on the platform, so
// they have no well-defined encoding.
type Fixed interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// FixedUnsigned is the unsigned subset of Fixed.
type FixedUnsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// Order selects the byte order for Get and Put.
type Order = binary.ByteOrder

var (
	BigEndian    = binary.BigEndian
	LittleEndian = binary.LittleEndian
)

// Size reports the number of bytes T occupies on the wire.
func Size[T Fixed]() int {
	var r T // This is only used for type detection.
	switch any(r).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32:
		return 4
	case int64, uint64:
		return 8
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Get decodes a T from b in byte order o. b must hold at least Size[T]() bytes.
func Get[T Fixed](b []byte, o Order) T {
	_ = b[Size[T]()-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T // This is only used for type detection.
	switch any(r).(type) {
	case int8:
		return T(int8(b[0]))
	case uint8:
		return T(b[0])
	case int16:
		return T(int16(o.Uint16(b)))
	case uint16:
		return T(o.Uint16(b))
	case int32:
		return T(int32(o.Uint32(b)))
	case uint32:
		return T(o.Uint32(b))
	case int64:
		return T(int64(o.Uint64(b)))
	case uint64:
		return T(o.Uint64(b))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put encodes v into b in byte order o. b must hold at least Size[T]() bytes.
func Put[T Fixed](b []byte, v T, o Order) {
	switch any(v).(type) {
	case int8, uint8:
		b[0] = byte(v)
	case int16, uint16:
		o.PutUint16(b, uint16(v))
	case int32, uint32:
		o.PutUint32(b, uint32(v))
	case int64, uint64:
		o.PutUint64(b, uint64(v))
	default:
		panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
	}
}
