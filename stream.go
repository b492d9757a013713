package bitpacket

import (
	"io"

	"github.com/pkg/errors"
)

// Reader is the sequential byte source fields decode from. The cursor only
// moves forward; each field consumes exactly its declared size. No seeking is
// required, so any io.Reader can back it.
type Reader struct {
	r   io.Reader
	pos int
}

// NewReader wraps r in a Reader with its cursor at offset 0.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read returns exactly n bytes or fails with ErrShortStream. A negative n is
// rejected rather than panicking on the allocation.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrShortStream, "invalid read of %d bytes at offset %d", n, r.pos)
	}
	b := make([]byte, n)
	got, err := io.ReadFull(r.r, b)
	r.pos += got
	if err != nil {
		return nil, errors.Wrapf(ErrShortStream, "read %d of %d bytes at offset %d", got, n, r.pos)
	}
	return b, nil
}

// Pos reports the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Writer is the sequential byte sink fields encode into.
type Writer struct {
	w   io.Writer
	pos int
}

// NewWriter wraps w in a Writer with its cursor at offset 0.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes all of b or fails.
func (w *Writer) Write(b []byte) error {
	n, err := w.w.Write(b)
	w.pos += n
	if err != nil {
		return errors.Wrapf(err, "write at offset %d", w.pos)
	}
	if n != len(b) {
		return errors.Wrapf(ErrShortStream, "wrote %d of %d bytes at offset %d", n, len(b), w.pos)
	}
	return nil
}

// Pos reports the number of bytes written so far.
func (w *Writer) Pos() int {
	return w.pos
}
