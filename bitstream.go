package bitpacket

import (
	"fmt"

	"github.com/bearlytools/bitpacket/internal/bits"
)

// BitReader adapts a byte Reader to bit-granular reads. Bits are delivered
// MSB first; bytes are pulled from the underlying Reader one whole byte at a
// time, only as a read requires them. That keeps the byte cursor at exactly
// ceil(bits consumed / 8) bytes, which is what lets a BitStructure consume
// precisely its declared byte size.
type BitReader struct {
	r   *Reader
	acc uint64
	n   int // bits buffered in acc
}

// NewBitReader returns a BitReader over the byte cursor r.
func NewBitReader(r *Reader) *BitReader {
	return &BitReader{r: r}
}

// ReadBits reads the next n bits and returns them in the low bits of the
// result. n must be 1..64; anything else panics, as that is a layout
// definition bug.
func (b *BitReader) ReadBits(n int) (uint64, error) {
	if n < 1 || n > 64 {
		panic(fmt.Sprintf("ReadBits() n must be 1..64, got %d", n))
	}

	var out uint64
	for rem := n; rem > 0; {
		if b.n == 0 {
			byt, err := b.r.Read(1)
			if err != nil {
				return 0, err
			}
			b.acc = uint64(byt[0])
			b.n = 8
		}
		take := rem
		if take > b.n {
			take = b.n
		}
		shift := b.n - take
		chunk := (b.acc >> uint(shift)) & bits.Mask[uint64](0, uint64(take))
		out = out<<uint(take) | chunk
		if shift == 0 {
			b.acc = 0
		} else {
			b.acc &= bits.Mask[uint64](0, uint64(shift))
		}
		b.n = shift
		rem -= take
	}
	return out, nil
}

// Align discards any buffered bits of the current partially consumed byte,
// so the next read starts on a byte boundary. Padding bits are not preserved.
func (b *BitReader) Align() {
	b.acc, b.n = 0, 0
}

// BitWriter adapts a byte Writer to bit-granular writes. Bits accumulate MSB
// first and are emitted to the underlying Writer in whole bytes.
type BitWriter struct {
	w   *Writer
	acc uint64
	n   int // bits buffered in acc, always < 8
}

// NewBitWriter returns a BitWriter over the byte cursor w.
func NewBitWriter(w *Writer) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBits writes the low n bits of v, most significant bit first. n must be
// 1..64; anything else panics.
func (b *BitWriter) WriteBits(v uint64, n int) error {
	if n < 1 || n > 64 {
		panic(fmt.Sprintf("WriteBits() n must be 1..64, got %d", n))
	}

	for rem := n; rem > 0; {
		take := rem
		if space := 8 - b.n; take > space {
			take = space
		}
		chunk := (v >> uint(rem-take)) & bits.Mask[uint64](0, uint64(take))
		b.acc = b.acc<<uint(take) | chunk
		b.n += take
		rem -= take
		if b.n == 8 {
			if err := b.w.Write([]byte{byte(b.acc)}); err != nil {
				return err
			}
			b.acc, b.n = 0, 0
		}
	}
	return nil
}

// Flush zero-pads the current partial byte on the right and emits it. A
// writer that ended on a byte boundary flushes nothing.
func (b *BitWriter) Flush() error {
	if b.n == 0 {
		return nil
	}
	out := byte(b.acc << uint(8-b.n))
	b.acc, b.n = 0, 0
	return b.w.Write([]byte{out})
}
