package bitpacket

import (
	"fmt"

	"github.com/bearlytools/bitpacket/internal/binary"
	"github.com/bearlytools/bitpacket/internal/bits"
)

// MaskBit names one bit position of a Mask field.
type MaskBit struct {
	Name string
	Pos  uint8
}

// Mask is a byte-aligned unsigned leaf whose individual bits carry named
// flags, such as a permissions or capabilities byte. It behaves as an Integer
// of T's width on the wire; the named bits are set, cleared and queried
// through the mask API.
type Mask[T binary.FixedUnsigned] struct {
	Integer[T]

	masks []MaskBit
	byPos map[string]uint8
}

// NewMask creates a mask leaf of T's width in byte order o with the given
// named bits. Duplicate names or positions beyond T's width panic, as those
// are layout definition bugs.
func NewMask[T binary.FixedUnsigned](name string, o Order, masks ...MaskBit) *Mask[T] {
	m := &Mask[T]{
		Integer: *NewInteger[T](name, o),
		masks:   masks,
		byPos:   make(map[string]uint8, len(masks)),
	}
	width := uint8(m.Size() * 8)
	for _, mb := range masks {
		if mb.Pos >= width {
			panic(fmt.Sprintf("NewMask() bit %q at position %d exceeds the %d bit width", mb.Name, mb.Pos, width))
		}
		if _, ok := m.byPos[mb.Name]; ok {
			panic(fmt.Sprintf("NewMask() duplicate bit name %q", mb.Name))
		}
		m.byPos[mb.Name] = mb.Pos
	}
	return m
}

// Masks returns the named bits in declaration order.
func (m *Mask[T]) Masks() []MaskBit {
	return m.masks
}

// SetMask sets the named bit.
func (m *Mask[T]) SetMask(name string) error {
	pos, ok := m.byPos[name]
	if !ok {
		return fmt.Errorf("%w: mask %q in %q", ErrKeyNotFound, name, m.name)
	}
	m.Set(bits.SetBit(m.Get(), pos, true))
	return nil
}

// MustSetMask is SetMask for static layout setup. It panics on error.
func (m *Mask[T]) MustSetMask(name string) {
	if err := m.SetMask(name); err != nil {
		panic(err)
	}
}

// ClearMask clears the named bit.
func (m *Mask[T]) ClearMask(name string) error {
	pos, ok := m.byPos[name]
	if !ok {
		return fmt.Errorf("%w: mask %q in %q", ErrKeyNotFound, name, m.name)
	}
	m.Set(bits.ClearBit(m.Get(), pos))
	return nil
}

// Active reports whether the named bit is set.
func (m *Mask[T]) Active(name string) (bool, error) {
	pos, ok := m.byPos[name]
	if !ok {
		return false, fmt.Errorf("%w: mask %q in %q", ErrKeyNotFound, name, m.name)
	}
	return bits.GetBit(m.Get(), pos), nil
}

func (m *Mask[T]) StrValue() string {
	return m.StrHexValue()
}

func (m *Mask[T]) StrEngValue() string {
	return m.StrHexValue()
}
