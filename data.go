package bitpacket

import "fmt"

// Data couples a length leaf with a String whose byte length tracks it. It is
// a Structure of exactly two children: the given length field, then a String
// named "Data" whose resolver is length * word size. Assigning content keeps
// the length field synchronized automatically, so a Data round-trips without
// the caller touching the counter.
type Data struct {
	Structure

	length   Field
	data     *String
	wordSize LengthFunc
}

// NewData creates a Data with a word size of one byte. It panics if the
// length field is itself named "Data".
func NewData(name string, length Field) *Data {
	return NewDataWordSize(name, length, FixedLength(1))
}

// NewDataWordSize creates a Data whose length field counts words of a size
// resolved from the context, so the word size may itself depend on another
// field's value.
func NewDataWordSize(name string, length Field, wordSize LengthFunc) *Data {
	d := &Data{
		Structure: Structure{Container: NewContainer(name)},
		length:    length,
		wordSize:  wordSize,
	}
	d.self = d
	d.data = NewString("Data", func(ctx Field) (int, error) {
		n, err := asInt(length.Value())
		if err != nil {
			return 0, fmt.Errorf("%q: %w", length.Name(), err)
		}
		ws, err := wordSize(ctx)
		if err != nil {
			return 0, err
		}
		return n * ws, nil
	})
	d.MustAppend(length)
	d.MustAppend(d.data)
	return d
}

// Value returns the content of the inner Data string.
func (d *Data) Value() any {
	return d.data.Value()
}

// Content returns the content with its static type. The value accessor keeps
// its own name so the path-based Get promoted from Container stays available
// on a Data.
func (d *Data) Content() string {
	return d.data.Get()
}

// SetValue assigns new content from a string or []byte and updates the
// length field. It fails with ErrLengthMismatch if the content is not a
// whole number of words and with ErrValueTooLong if the word count does not
// fit the length field's width.
func (d *Data) SetValue(v any) error {
	var b []byte
	switch n := v.(type) {
	case string:
		b = []byte(n)
	case []byte:
		b = n
	default:
		return fmt.Errorf("%s: %w: cannot set %T on a data field", d.name, ErrWrongType, v)
	}

	ws, err := d.wordSize(Root(d))
	if err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	if ws < 1 {
		return fmt.Errorf("%s: word size resolved to %d, must be >= 1", d.name, ws)
	}
	if len(b)%ws != 0 {
		return fmt.Errorf("%s: %w: content must be a multiple of the word size %d, got %d bytes", d.name, ErrLengthMismatch, ws, len(b))
	}
	if err := d.length.SetValue(len(b) / ws); err != nil {
		return fmt.Errorf("%s: %w: %d words do not fit %q", d.name, ErrValueTooLong, len(b)/ws, d.length.Name())
	}
	d.data.setRaw(b)
	return nil
}
