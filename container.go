package bitpacket

import (
	"fmt"
	"strings"
)

// pathSep separates segments in dotted field paths, as in "Header.Flags.SYN".
const pathSep = "."

// fieldResolver is satisfied by every field that can resolve a dotted path:
// Container embedders and MetaField once materialized.
type fieldResolver interface {
	Field(path string) (Field, error)
}

// valueGetter and valueSetter mirror fieldResolver for path-based value
// access. Set walks one segment at a time through these so that composites
// with their own assignment rules (Array) see the writes addressed to them.
type valueGetter interface {
	Get(path string) (any, error)
}

type valueSetter interface {
	Set(path string, v any) error
}

// Container is the ordered, name-indexed collection of fields backing every
// composite. It is embedded by Structure, BitStructure and the dynamic
// containers; it is not a Field on its own (it has no codec). A Container
// owns its children exclusively; children keep a non-owning parent link used
// only for context and path resolution.
type Container struct {
	Base

	// self is the outermost field embedding this Container. Children get it
	// as their parent so Root() resolves through the real composite.
	self Field

	fields []Field
	index  map[string]Field

	// decoding and decoded implement the order rule for resolvers: while a
	// decode pass runs, path lookups into this container see only the children
	// that have already decoded, so a forward reference fails with
	// ErrKeyNotFound instead of reading a stale value.
	decoding bool
	decoded  int
}

// NewContainer returns an empty Container. Composites embedding it must set
// self before appending children.
func NewContainer(name string) Container {
	return Container{Base: NewBase(name), index: map[string]Field{}}
}

// Append adds f as the last child. Child order is wire order. It fails with
// ErrNameConflict if a same-named child already exists, and sets f's parent
// to this composite.
func (c *Container) Append(f Field) error {
	if _, ok := c.index[f.Name()]; ok {
		return fmt.Errorf("%w: %q in %q", ErrNameConflict, f.Name(), c.name)
	}
	c.fields = append(c.fields, f)
	c.index[f.Name()] = f
	f.SetParent(c.self)
	return nil
}

// MustAppend is Append for static layout definitions, where a name conflict
// is a programming error. It panics on error.
func (c *Container) MustAppend(f Field) {
	if err := c.Append(f); err != nil {
		panic(err)
	}
}

// beginDecode and endDecode bracket a decode pass over this container's
// children. Dynamic containers advance decoded themselves as they go.
func (c *Container) beginDecode() {
	c.decoding = true
	c.decoded = 0
}

func (c *Container) endDecode() {
	c.decoding = false
}

// lookup returns the named child, restricted during a decode pass to children
// that have already decoded, plus the child currently decoding so that a path
// can traverse into it (the child's own cursor restricts what is visible
// inside).
func (c *Container) lookup(head string) (Field, error) {
	f, ok := c.index[head]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrKeyNotFound, head, c.name)
	}
	if c.decoding {
		visible := c.decoded + 1
		if visible > len(c.fields) {
			visible = len(c.fields)
		}
		for _, d := range c.fields[:visible] {
			if d == f {
				return f, nil
			}
		}
		return nil, fmt.Errorf("%w: %q in %q has not been decoded yet", ErrKeyNotFound, head, c.name)
	}
	return f, nil
}

// Field returns the descendant identified by a dotted path such as "a.b.c".
// It fails with ErrKeyNotFound at the first missing segment and with
// ErrNotAContainer if a non-terminal segment names a leaf.
func (c *Container) Field(path string) (Field, error) {
	head, rest, more := strings.Cut(path, pathSep)
	f, err := c.lookup(head)
	if err != nil {
		return nil, err
	}
	if !more {
		return f, nil
	}
	sub, ok := f.(fieldResolver)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrNotAContainer, head, c.name)
	}
	return sub.Field(rest)
}

// Get returns the value of the field at path.
func (c *Container) Get(path string) (any, error) {
	head, rest, more := strings.Cut(path, pathSep)
	f, err := c.lookup(head)
	if err != nil {
		return nil, err
	}
	if !more {
		return f.Value(), nil
	}
	sub, ok := f.(valueGetter)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrNotAContainer, head, c.name)
	}
	return sub.Get(rest)
}

// Set assigns v to the field at path, recursing one segment at a time so
// composites with their own assignment rules intercept writes meant for them.
func (c *Container) Set(path string, v any) error {
	head, rest, more := strings.Cut(path, pathSep)
	f, err := c.lookup(head)
	if err != nil {
		return err
	}
	if !more {
		return f.SetValue(v)
	}
	sub, ok := f.(valueSetter)
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrNotAContainer, head, c.name)
	}
	return sub.Set(rest, v)
}

// Fields returns the ordered children.
func (c *Container) Fields() []Field {
	return c.fields
}

// Keys returns the dotted paths of every leaf and composite under this
// container, in wire order.
func (c *Container) Keys() []string {
	var keys []string
	for _, f := range c.fields {
		name := f.Name()
		if sub, ok := f.(interface{ Keys() []string }); ok {
			for _, k := range sub.Keys() {
				keys = append(keys, name+pathSep+k)
			}
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

// Len reports the number of immediate children.
func (c *Container) Len() int {
	return len(c.fields)
}

// Size reports the sum of the children's sizes, in the unit of the
// container's kind.
func (c *Container) Size() int {
	size := 0
	for _, f := range c.fields {
		size += f.Size()
	}
	return size
}

// Reset drops all children, returning the container to its pre-decode empty
// state. Dynamic containers call this before re-populating; a caller reusing
// a tree for a second decode without it keeps stale elements.
func (c *Container) Reset() {
	c.fields = nil
	c.index = map[string]Field{}
	c.decoding = false
	c.decoded = 0
}

// Value returns nil: a composite's values live in its children.
func (c *Container) Value() any {
	return nil
}

// SetValue fails; assign through a path to a leaf instead.
func (c *Container) SetValue(v any) error {
	return fmt.Errorf("%w: %q is a container, assign to a leaf path inside it", ErrWrongType, c.name)
}

func (c *Container) EngValue() any {
	return nil
}

func (c *Container) StrValue() string {
	return ""
}

func (c *Container) StrHexValue() string {
	return ""
}

func (c *Container) StrEngValue() string {
	return ""
}
