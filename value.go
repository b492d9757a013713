package bitpacket

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/bearlytools/bitpacket/internal/binary"
)

// Order selects the byte order of a numeric leaf. BigEndian (network order)
// is the default used by the convenience constructors.
type Order = binary.Order

var (
	BigEndian    = binary.BigEndian
	LittleEndian = binary.LittleEndian
)

// Integer is a fixed-width integer leaf. The byte width and signedness come
// from T, the byte order from the constructor, so one type covers what would
// otherwise be a per-width zoo of field classes.
type Integer[T binary.Fixed] struct {
	Base

	order Order
	val   T
}

// NewInteger creates an integer leaf of T's width in byte order o.
func NewInteger[T binary.Fixed](name string, o Order) *Integer[T] {
	return &Integer[T]{Base: NewBase(name), order: o}
}

// Convenience constructors in network byte order. Use NewInteger with
// LittleEndian for little endian layouts.
func NewUint8(name string) *Integer[uint8]   { return NewInteger[uint8](name, BigEndian) }
func NewUint16(name string) *Integer[uint16] { return NewInteger[uint16](name, BigEndian) }
func NewUint32(name string) *Integer[uint32] { return NewInteger[uint32](name, BigEndian) }
func NewUint64(name string) *Integer[uint64] { return NewInteger[uint64](name, BigEndian) }
func NewInt8(name string) *Integer[int8]     { return NewInteger[int8](name, BigEndian) }
func NewInt16(name string) *Integer[int16]   { return NewInteger[int16](name, BigEndian) }
func NewInt32(name string) *Integer[int32]   { return NewInteger[int32](name, BigEndian) }
func NewInt64(name string) *Integer[int64]   { return NewInteger[int64](name, BigEndian) }

// Size reports the width of T in bytes.
func (f *Integer[T]) Size() int {
	return binary.Size[T]()
}

func (f *Integer[T]) Value() any {
	return f.val
}

// Get returns the value with its static type.
func (f *Integer[T]) Get() T {
	return f.val
}

// Set assigns the value with its static type.
func (f *Integer[T]) Set(v T) {
	f.val = v
}

// SetValue accepts any Go integer kind and range-checks it against T. A value
// outside T's range fails with ErrSizeExceeded.
func (f *Integer[T]) SetValue(v any) error {
	c, err := coerceInt[T](v)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	f.val = c
	return nil
}

func (f *Integer[T]) Encode(w *Writer, ctx Field) error {
	b := make([]byte, f.Size())
	binary.Put(b, f.val, f.order)
	if err := w.Write(b); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

func (f *Integer[T]) Decode(r *Reader, ctx Field) error {
	b, err := r.Read(f.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	f.val = binary.Get[T](b, f.order)
	return nil
}

// HexValue returns the wire bytes of the field interpreted as one big-endian
// integer, which is the in-memory representation renderers show.
func (f *Integer[T]) HexValue() uint64 {
	b := make([]byte, f.Size())
	binary.Put(b, f.val, f.order)
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func (f *Integer[T]) EngValue() any {
	return f.Calibrate(f.val)
}

func (f *Integer[T]) StrValue() string {
	return fmt.Sprintf("%d", f.val)
}

func (f *Integer[T]) StrHexValue() string {
	return hexString(f.HexValue(), f.Size())
}

func (f *Integer[T]) StrEngValue() string {
	return fmt.Sprint(f.EngValue())
}

// Float is a fixed-width IEEE-754 leaf: 4 bytes for float32, 8 for float64.
type Float[T constraints.Float] struct {
	Base

	order Order
	val   T
}

// NewFloat creates a float leaf of T's width in byte order o.
func NewFloat[T constraints.Float](name string, o Order) *Float[T] {
	return &Float[T]{Base: NewBase(name), order: o}
}

// Convenience constructors in network byte order.
func NewFloat32(name string) *Float[float32] { return NewFloat[float32](name, BigEndian) }
func NewFloat64(name string) *Float[float64] { return NewFloat[float64](name, BigEndian) }

func (f *Float[T]) Size() int {
	if _, ok := any(f.val).(float32); ok {
		return 4
	}
	return 8
}

func (f *Float[T]) Value() any {
	return f.val
}

// Get returns the value with its static type.
func (f *Float[T]) Get() T {
	return f.val
}

// Set assigns the value with its static type.
func (f *Float[T]) Set(v T) {
	f.val = v
}

// SetValue accepts any Go numeric kind. Conversions into a narrower float
// behave like a numeric cast, so precision may be lost.
func (f *Float[T]) SetValue(v any) error {
	switch n := v.(type) {
	case T:
		f.val = n
	case float64:
		f.val = T(n)
	case float32:
		f.val = T(n)
	case int:
		f.val = T(n)
	case int64:
		f.val = T(n)
	case uint64:
		f.val = T(n)
	default:
		return fmt.Errorf("%s: %w: cannot set %T on a float field", f.name, ErrWrongType, v)
	}
	return nil
}

func (f *Float[T]) Encode(w *Writer, ctx Field) error {
	b := make([]byte, f.Size())
	switch v := any(f.val).(type) {
	case float32:
		binary.Put(b, math.Float32bits(v), f.order)
	case float64:
		binary.Put(b, math.Float64bits(v), f.order)
	}
	if err := w.Write(b); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

func (f *Float[T]) Decode(r *Reader, ctx Field) error {
	b, err := r.Read(f.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	if f.Size() == 4 {
		f.val = T(math.Float32frombits(binary.Get[uint32](b, f.order)))
	} else {
		f.val = T(math.Float64frombits(binary.Get[uint64](b, f.order)))
	}
	return nil
}

// HexValue returns the IEEE-754 wire bytes interpreted as one big-endian
// integer.
func (f *Float[T]) HexValue() uint64 {
	b := make([]byte, f.Size())
	switch v := any(f.val).(type) {
	case float32:
		binary.Put(b, math.Float32bits(v), f.order)
	case float64:
		binary.Put(b, math.Float64bits(v), f.order)
	}
	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}
	return u
}

func (f *Float[T]) EngValue() any {
	return f.Calibrate(f.val)
}

func (f *Float[T]) StrValue() string {
	return fmt.Sprint(f.val)
}

func (f *Float[T]) StrHexValue() string {
	return hexString(f.HexValue(), f.Size())
}

func (f *Float[T]) StrEngValue() string {
	return fmt.Sprint(f.EngValue())
}

// Bytes is a fixed-length run of raw bytes.
type Bytes struct {
	Base

	data []byte
}

// NewBytes creates a raw byte leaf of the given fixed size.
func NewBytes(name string, size int) *Bytes {
	return &Bytes{Base: NewBase(name), data: make([]byte, size)}
}

func (f *Bytes) Size() int {
	return len(f.data)
}

func (f *Bytes) Value() any {
	return f.data
}

// Get returns the underlying bytes. The slice is the field's own storage, so
// callers that keep it must copy.
func (f *Bytes) Get() []byte {
	return f.data
}

// SetValue accepts a []byte or string of exactly Size() bytes.
func (f *Bytes) SetValue(v any) error {
	var b []byte
	switch n := v.(type) {
	case []byte:
		b = n
	case string:
		b = []byte(n)
	default:
		return fmt.Errorf("%s: %w: cannot set %T on a bytes field", f.name, ErrWrongType, v)
	}
	if len(b) != len(f.data) {
		return fmt.Errorf("%s: %w: got %d bytes, field is %d", f.name, ErrLengthMismatch, len(b), len(f.data))
	}
	copy(f.data, b)
	return nil
}

func (f *Bytes) Encode(w *Writer, ctx Field) error {
	if err := w.Write(f.data); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

func (f *Bytes) Decode(r *Reader, ctx Field) error {
	b, err := r.Read(len(f.data))
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	copy(f.data, b)
	return nil
}

func (f *Bytes) EngValue() any {
	return f.Calibrate(f.data)
}

func (f *Bytes) StrValue() string {
	return bytesHex(f.data)
}

func (f *Bytes) StrHexValue() string {
	return bytesHex(f.data)
}

func (f *Bytes) StrEngValue() string {
	return bytesHex(f.data)
}

// bytesHex renders b as 0x-prefixed hex, or "" for empty content.
func bytesHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return fmt.Sprintf("0x%X", b)
}

// coerceInt converts any Go integer kind to T, failing with ErrSizeExceeded
// when the value does not fit T and ErrWrongType for non-integer kinds.
func coerceInt[T constraints.Integer](v any) (T, error) {
	switch n := v.(type) {
	case int:
		return fromInt64[T](int64(n))
	case int8:
		return fromInt64[T](int64(n))
	case int16:
		return fromInt64[T](int64(n))
	case int32:
		return fromInt64[T](int64(n))
	case int64:
		return fromInt64[T](n)
	case uint:
		return fromUint64[T](uint64(n))
	case uint8:
		return fromUint64[T](uint64(n))
	case uint16:
		return fromUint64[T](uint64(n))
	case uint32:
		return fromUint64[T](uint64(n))
	case uint64:
		return fromUint64[T](n)
	}
	var zero T
	return zero, fmt.Errorf("%w: cannot set %T on an integer field", ErrWrongType, v)
}

func fromInt64[T constraints.Integer](v int64) (T, error) {
	c := T(v)
	if int64(c) != v || (c < 0) != (v < 0) {
		return 0, fmt.Errorf("%w: %d", ErrSizeExceeded, v)
	}
	return c, nil
}

func fromUint64[T constraints.Integer](v uint64) (T, error) {
	c := T(v)
	if uint64(c) != v || c < 0 {
		return 0, fmt.Errorf("%w: %d", ErrSizeExceeded, v)
	}
	return c, nil
}

// asInt narrows a decoded counter or length value to int.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d does not fit an int", ErrSizeExceeded, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrWrongType, v)
}
