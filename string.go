package bitpacket

import "fmt"

// LengthFunc resolves a byte length, word size or element count from the
// context, lazily, during encode or decode. The context is the root of the
// tree, so a resolver can depend on a sibling of an ancestor. Resolvers may
// only reference fields declared before the field that owns them; a forward
// reference fails with ErrKeyNotFound because the referenced field has not
// been decoded yet.
type LengthFunc func(ctx Field) (int, error)

// FixedLength returns a LengthFunc that always resolves to n.
func FixedLength(n int) LengthFunc {
	return func(Field) (int, error) { return n, nil }
}

// LengthOf resolves the integer value of the field at path in the context.
// Use it as the resolver of a String or MetaStructure whose size is carried
// by an earlier field:
//
//	pkt.MustAppend(bitpacket.NewUint8("Length"))
//	pkt.MustAppend(bitpacket.NewString("Text", bitpacket.LengthOf("Length")))
func LengthOf(path string) LengthFunc {
	return func(ctx Field) (int, error) {
		g, ok := ctx.(valueGetter)
		if !ok {
			return 0, fmt.Errorf("%w: context %q has no fields", ErrNotAContainer, ctx.Name())
		}
		v, err := g.Get(path)
		if err != nil {
			return 0, err
		}
		n, err := asInt(v)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", path, err)
		}
		return n, nil
	}
}

// CountOf resolves an element count the same way LengthOf resolves a byte
// length. Use it as the count resolver of a MetaStructure whose element count
// is carried by an earlier field.
func CountOf(path string) LengthFunc {
	return LengthOf(path)
}

// String is a leaf holding a run of characters whose byte length is resolved
// from the context instead of being a compile-time constant. With a nil
// resolver the length is whatever the current content's length is, which is
// enough for encode-only use.
type String struct {
	Base

	data   []byte
	length LengthFunc
}

// NewString creates a string leaf whose length resolves through length.
func NewString(name string, length LengthFunc) *String {
	return &String{Base: NewBase(name), length: length}
}

// NewStringValue creates a string leaf seeded with s and no resolver.
func NewStringValue(name, s string) *String {
	return &String{Base: NewBase(name), data: []byte(s)}
}

// Size reports the length of the current content in bytes.
func (f *String) Size() int {
	return len(f.data)
}

func (f *String) Value() any {
	return string(f.data)
}

// Get returns the value with its static type.
func (f *String) Get() string {
	return string(f.data)
}

// SetValue accepts a string or []byte. If a resolver is installed, the new
// content's length must equal the currently resolved length; anything else
// fails with ErrLengthMismatch.
func (f *String) SetValue(v any) error {
	var b []byte
	switch n := v.(type) {
	case string:
		b = []byte(n)
	case []byte:
		b = append([]byte(nil), n...)
	default:
		return fmt.Errorf("%s: %w: cannot set %T on a string field", f.name, ErrWrongType, v)
	}
	if f.length != nil {
		want, err := f.length(Root(f))
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if len(b) != want {
			return fmt.Errorf("%s: %w: got %d bytes, resolved length is %d", f.name, ErrLengthMismatch, len(b), want)
		}
	}
	f.data = b
	return nil
}

// setRaw bypasses length resolution. Data uses it after it has already
// synchronized its length field.
func (f *String) setRaw(b []byte) {
	f.data = append([]byte(nil), b...)
}

func (f *String) Encode(w *Writer, ctx Field) error {
	n := len(f.data)
	if f.length != nil {
		want, err := f.length(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if n != want {
			return fmt.Errorf("%s: %w: content is %d bytes, resolved length is %d", f.name, ErrLengthMismatch, n, want)
		}
	}
	if err := w.Write(f.data); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

func (f *String) Decode(r *Reader, ctx Field) error {
	n := len(f.data)
	if f.length != nil {
		want, err := f.length(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if want < 0 {
			return fmt.Errorf("%s: %w: resolved length %d is negative", f.name, ErrLengthMismatch, want)
		}
		n = want
	}
	b, err := r.Read(n)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	f.data = b
	return nil
}

func (f *String) EngValue() any {
	return f.Calibrate(string(f.data))
}

func (f *String) StrValue() string {
	return bytesHex(f.data)
}

func (f *String) StrHexValue() string {
	return f.StrValue()
}

func (f *String) StrEngValue() string {
	return f.StrValue()
}
