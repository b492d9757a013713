package bitpacket

import "fmt"

// Bits is the sub-byte unsigned integer leaf: single bits, nibbles and other
// flag-width fields. It only composes inside a BitStructure; decoding it
// straight from a byte stream fails with ErrUnsupportedNesting.
type Bits struct {
	Base

	size int // in bits
	val  uint64
}

// NewBits creates a bit leaf of the given width in bits (1..64).
func NewBits(name string, size int) *Bits {
	if size < 1 || size > 64 {
		panic(fmt.Sprintf("NewBits() size must be 1..64, got %d", size))
	}
	return &Bits{Base: NewBase(name), size: size}
}

// Size reports the width in bits; bit fields live in bit containers, so bits
// are their unit.
func (f *Bits) Size() int {
	return f.size
}

// SizeBits reports the exact width in bits.
func (f *Bits) SizeBits() int {
	return f.size
}

func (f *Bits) Value() any {
	return f.val
}

// Get returns the value with its static type.
func (f *Bits) Get() uint64 {
	return f.val
}

// SetValue accepts any Go integer kind. Negative values and values wider than
// the declared bit width fail with ErrSizeExceeded.
func (f *Bits) SetValue(v any) error {
	c, err := coerceInt[uint64](v)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	if f.size < 64 && c>>uint(f.size) != 0 {
		return fmt.Errorf("%s: %w: %d does not fit in %d bits", f.name, ErrSizeExceeded, c, f.size)
	}
	f.val = c
	return nil
}

func (f *Bits) EncodeBits(w *BitWriter, ctx Field) error {
	if err := w.WriteBits(f.val, f.size); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

func (f *Bits) DecodeBits(r *BitReader, ctx Field) error {
	v, err := r.ReadBits(f.size)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	f.val = v
	return nil
}

func (f *Bits) Encode(w *Writer, ctx Field) error {
	return fmt.Errorf("%w: bit field %q needs a bit-oriented stream (enclose it in a BitStructure)", ErrUnsupportedNesting, f.name)
}

func (f *Bits) Decode(r *Reader, ctx Field) error {
	return fmt.Errorf("%w: bit field %q needs a bit-oriented stream (enclose it in a BitStructure)", ErrUnsupportedNesting, f.name)
}

func (f *Bits) EngValue() any {
	return f.Calibrate(f.val)
}

func (f *Bits) StrValue() string {
	return hexString(f.val, bitsToBytes(f.size))
}

func (f *Bits) StrHexValue() string {
	return f.StrValue()
}

func (f *Bits) StrEngValue() string {
	if n, err := asInt(f.EngValue()); err == nil {
		return hexString(uint64(n), bitsToBytes(f.size))
	}
	return fmt.Sprint(f.EngValue())
}

// Boolean is a single-bit true/false field.
type Boolean struct {
	Bits
}

// NewBoolean creates a 1 bit boolean field, initially false.
func NewBoolean(name string) *Boolean {
	return &Boolean{Bits: *NewBits(name, 1)}
}

// Bool returns the value as a bool.
func (f *Boolean) Bool() bool {
	return f.val != 0
}

// Enable sets the value to true.
func (f *Boolean) Enable() {
	f.val = 1
}

// Disable sets the value to false.
func (f *Boolean) Disable() {
	f.val = 0
}

// SetValue additionally accepts a bool.
func (f *Boolean) SetValue(v any) error {
	if b, ok := v.(bool); ok {
		if b {
			f.val = 1
		} else {
			f.val = 0
		}
		return nil
	}
	return f.Bits.SetValue(v)
}

func (f *Boolean) StrValue() string {
	if f.val != 0 {
		return "True"
	}
	return "False"
}

func (f *Boolean) StrEngValue() string {
	return f.StrValue()
}

// Flag states.
const (
	FlagInactive uint64 = 0
	FlagActive   uint64 = 1
)

// Flag is a single-bit field presented as Active/Inactive.
type Flag struct {
	Bits
}

// NewFlag creates a 1 bit flag field, initially inactive.
func NewFlag(name string) *Flag {
	return &Flag{Bits: *NewBits(name, 1)}
}

// Activate sets the flag.
func (f *Flag) Activate() {
	f.val = FlagActive
}

// Deactivate clears the flag.
func (f *Flag) Deactivate() {
	f.val = FlagInactive
}

// Active reports whether the flag is set.
func (f *Flag) Active() bool {
	return f.val == FlagActive
}

func (f *Flag) StrValue() string {
	if f.val == FlagActive {
		return "Active"
	}
	return "Inactive"
}

func (f *Flag) StrEngValue() string {
	return f.StrValue()
}

// BitStructure composes bit fields into a single byte-aligned unit usable
// anywhere a Field is expected. Internally it tracks the precise bit total;
// an enclosing byte Structure sees ceil(bits/8) bytes. Encoding zero-pads the
// final partial byte; decoding consumes those padding bits and discards them,
// so padding is not round-trip guaranteed beyond the declared widths.
//
// A BitStructure nests inside another BitStructure (both speak the bit-stream
// adapter, and a nested one is not padded). Byte-aligned fields are rejected
// at Append time.
type BitStructure struct {
	Container
}

// NewBitStructure returns an empty bit container.
func NewBitStructure(name string) *BitStructure {
	s := &BitStructure{Container: NewContainer(name)}
	s.self = s
	return s
}

// Append only admits fields that speak the bit-stream adapter. Byte-aligned
// fields fail with ErrUnsupportedNesting.
func (s *BitStructure) Append(f Field) error {
	if _, ok := f.(BitField); !ok {
		return fmt.Errorf("%w: %q cannot hold byte-aligned field %q", ErrUnsupportedNesting, s.name, f.Name())
	}
	return s.Container.Append(f)
}

// MustAppend is Append that panics on error, for static layout definitions.
func (s *BitStructure) MustAppend(f Field) {
	if err := s.Append(f); err != nil {
		panic(err)
	}
}

// SizeBits reports the precise total width of the children in bits.
func (s *BitStructure) SizeBits() int {
	n := 0
	for _, f := range s.fields {
		n += f.(BitField).SizeBits()
	}
	return n
}

// Size reports the byte size an enclosing byte Structure sees: the bit total
// rounded up to whole bytes.
func (s *BitStructure) Size() int {
	return bitsToBytes(s.SizeBits())
}

func (s *BitStructure) Encode(w *Writer, ctx Field) error {
	bw := NewBitWriter(w)
	if err := s.EncodeBits(bw, ctx); err != nil {
		return err
	}
	return bw.Flush()
}

func (s *BitStructure) Decode(r *Reader, ctx Field) error {
	br := NewBitReader(r)
	if err := s.DecodeBits(br, ctx); err != nil {
		return err
	}
	// The reader pulled whole bytes as the children needed them, so the byte
	// cursor already advanced by exactly Size() bytes. Trailing padding bits
	// of the final byte are dropped.
	br.Align()
	return nil
}

func (s *BitStructure) EncodeBits(w *BitWriter, ctx Field) error {
	for _, f := range s.fields {
		if err := f.(BitField).EncodeBits(w, ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (s *BitStructure) DecodeBits(r *BitReader, ctx Field) error {
	for _, f := range s.fields {
		if err := f.(BitField).DecodeBits(r, ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
