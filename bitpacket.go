// Package bitpacket composes binary packet layouts out of fields. A layout is
// described once, as a tree of fields, and that single description both
// serializes a value tree into a byte stream and deserializes a byte stream
// back into the tree, without hand-written offset arithmetic.
//
// The smallest unit is a Field: a named node with a size, a value and
// encode/decode behavior. Fields compose into containers: Structure
// concatenates byte-aligned children in declaration order, while BitStructure
// packs sub-byte children through a bit-stream adapter so that, seen from the
// outside, it behaves as one byte-aligned field.
//
// Consider the first three bytes of the IP header:
//
//	version | hlen   | tos    | length
//	4 bits  | 4 bits | 1 byte | 2 bytes
//
//	ip := bitpacket.NewStructure("IP")
//	ver := bitpacket.NewBitStructure("VerHlen")
//	ver.MustAppend(bitpacket.NewBits("Version", 4))
//	ver.MustAppend(bitpacket.NewBits("Hlen", 4))
//	ip.MustAppend(ver)
//	ip.MustAppend(bitpacket.NewUint8("TOS"))
//	ip.MustAppend(bitpacket.NewUint16("Length"))
//
// Fields whose size, element count or concrete type depends on the value of
// an already decoded field (String, Data, Array, MetaStructure, MetaField)
// resolve those lazily against the Context: the root of the tree being
// encoded or decoded, passed to every Encode/Decode call and to every
// resolver function. Decode order is declaration order, so a resolver may
// only reference fields that appear before the dynamic field; a forward
// reference fails with ErrKeyNotFound because the referenced field has not
// been decoded yet.
//
// The engine is single threaded and synchronous. One tree must not be decoded
// from two goroutines, since decode mutates field values in place.
package bitpacket

import (
	"bytes"
	"fmt"
)

// Calibration converts a field's raw value into an engineering value, for
// example a 16 bit reading into degrees celsius. The engine never interprets
// the result; it is surfaced through EngValue and StrEngValue only.
type Calibration func(v any) any

// Field is the contract every node in a layout tree implements, leaf or
// composite.
type Field interface {
	// Name returns the field's name. Names are unique within the field's
	// immediate parent.
	Name() string

	// SetName renames the field. This is meant for library internals (Array
	// and MetaStructure index their elements by renaming them); renaming a
	// field that a parent has already indexed will orphan it.
	SetName(name string)

	// Parent returns the enclosing field, or nil for a root. The link is
	// non-owning and exists only for context and path resolution.
	Parent() Field

	// SetParent sets the enclosing field. Meant for library internals.
	SetParent(p Field)

	// Size reports the field's size in the unit of its kind: bytes for
	// byte-aligned fields, bits for fields that live inside a BitStructure.
	Size() int

	// Value returns the field's current value. Composites return nil; their
	// values live in their children.
	Value() any

	// SetValue assigns a new value. It fails with ErrSizeExceeded or
	// ErrLengthMismatch if the value does not fit the field's current size.
	SetValue(v any) error

	// Fields returns the ordered child fields. Leaves return nil.
	Fields() []Field

	// Encode writes the field to w, producing exactly Size() bytes. ctx is
	// the root of the tree being encoded and is handed to every resolver.
	Encode(w *Writer, ctx Field) error

	// Decode reads the field from r, consuming exactly Size() bytes as
	// resolved at the moment of the call. ctx is the root of the tree being
	// decoded.
	Decode(r *Reader, ctx Field) error

	// EngValue returns the result of applying the calibration curve to
	// Value(). The default curve is identity.
	EngValue() any

	// StrValue, StrHexValue and StrEngValue are read-only presentation hooks
	// consumed by external renderers.
	StrValue() string
	StrHexValue() string
	StrEngValue() string
}

// BitField is implemented by fields that can live inside a BitStructure.
// Both bit leaves and BitStructure itself speak this contract, which is what
// allows bit-in-bit nesting.
type BitField interface {
	Field

	// SizeBits reports the exact width in bits.
	SizeBits() int

	// EncodeBits writes the field to the bit stream, MSB first.
	EncodeBits(w *BitWriter, ctx Field) error

	// DecodeBits reads the field from the bit stream.
	DecodeBits(r *BitReader, ctx Field) error
}

// Base carries the identity every Field shares: the name, the non-owning
// parent link and the calibration curve. Concrete field types embed it.
type Base struct {
	name        string
	parent      Field
	calibration Calibration
}

// NewBase returns a Base with the given name and an identity calibration.
func NewBase(name string) Base {
	return Base{name: name}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) SetName(name string) {
	b.name = name
}

func (b *Base) Parent() Field {
	return b.parent
}

func (b *Base) SetParent(p Field) {
	b.parent = p
}

// Fields returns nil; leaves have no children.
func (b *Base) Fields() []Field {
	return nil
}

// SetCalibration installs the calibration curve applied by EngValue.
func (b *Base) SetCalibration(c Calibration) {
	b.calibration = c
}

// Calibrate applies the calibration curve to v. With no curve installed it
// returns v unchanged.
func (b *Base) Calibrate(v any) any {
	if b.calibration == nil {
		return v
	}
	return b.calibration(v)
}

// Root walks parent links to the outermost field of f's tree. A detached
// field is its own root.
func Root(f Field) Field {
	for f.Parent() != nil {
		f = f.Parent()
	}
	return f
}

// Marshal encodes f into a byte slice. f's own root serves as the context.
func Marshal(f Field) ([]byte, error) {
	buff := &bytes.Buffer{}
	if err := f.Encode(NewWriter(buff), Root(f)); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Unmarshal decodes b into f. f's own root serves as the context.
func Unmarshal(f Field, b []byte) error {
	return f.Decode(NewReader(bytes.NewReader(b)), Root(f))
}

// hexString renders v as a 0x prefixed hex string zero padded to byteSize
// bytes.
func hexString(v uint64, byteSize int) string {
	return fmt.Sprintf("0x%0*X", byteSize*2, v)
}

// bitsToBytes reports the number of whole bytes needed to hold n bits.
func bitsToBytes(n int) int {
	return (n + 7) / 8
}
