package bitpacket

import (
	"fmt"
	"reflect"
)

// MetaStructure materializes a run of elements whose count comes from an
// arbitrary resolver over the context, for example a sibling field decoded
// earlier, rather than from an owned counter the way Array does. Elements
// are auto-indexed "0".."n-1".
type MetaStructure struct {
	Structure

	count   LengthFunc
	newElem FieldFunc
}

// NewMetaStructure creates a MetaStructure with the given count resolver and
// element constructor.
func NewMetaStructure(name string, count LengthFunc, newElem FieldFunc) *MetaStructure {
	s := &MetaStructure{
		Structure: Structure{Container: NewContainer(name)},
		count:     count,
		newElem:   newElem,
	}
	s.self = s
	return s
}

// Decode drops previously materialized elements, resolves the count against
// the context and then materializes and decodes that many elements in order.
// Each element is created only after the previous one decoded, so element
// constructors may themselves depend on values inside earlier elements.
func (s *MetaStructure) Decode(r *Reader, ctx Field) error {
	s.Reset()
	s.beginDecode()
	defer s.endDecode()

	n, err := s.count(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	for i := 0; i < n; i++ {
		el, err := s.newElem(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		el.SetName(fmt.Sprintf("%d", i))
		if err := s.Container.Append(el); err != nil {
			return err
		}
		if err := el.Decode(r, ctx); err != nil {
			return fmt.Errorf("%s[%d]: %w", s.name, i, err)
		}
		s.decoded = i + 1
	}
	return nil
}

// MetaField is a single-slot placeholder that defers choosing which concrete
// field type to instantiate until decode time. It holds a constructor and,
// once a decode pass or an explicit Materialize call has run, a materialized
// delegate every operation proxies to. Before materialization, everything
// except name and size resolution fails loudly with ErrNotMaterialized
// (accessors without an error return panic with it) to surface layout
// definition bugs early. Each decode discards the previous delegate and
// materializes a fresh one.
type MetaField struct {
	Base

	newField FieldFunc
	delegate Field
}

// NewMetaField creates an empty MetaField with the given constructor.
func NewMetaField(name string, newField FieldFunc) *MetaField {
	return &MetaField{Base: NewBase(name), newField: newField}
}

// Materialize builds the delegate from the constructor without decoding,
// for encoding a tree that was assembled by hand.
func (m *MetaField) Materialize(ctx Field) error {
	f, err := m.newField(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	f.SetName(m.name)
	f.SetParent(m.parent)
	m.delegate = f
	return nil
}

// Materialized reports whether a delegate exists.
func (m *MetaField) Materialized() bool {
	return m.delegate != nil
}

// Delegate returns the materialized field.
func (m *MetaField) Delegate() (Field, error) {
	if m.delegate == nil {
		return nil, fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	return m.delegate, nil
}

// DelegateType reports the concrete type the constructor produces, probing it
// with a throwaway instance when nothing is materialized yet.
func (m *MetaField) DelegateType(ctx Field) (reflect.Type, error) {
	if m.delegate != nil {
		return reflect.TypeOf(m.delegate), nil
	}
	probe, err := m.newField(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.name, err)
	}
	return reflect.TypeOf(probe), nil
}

// Size resolves without materialization by probing the constructor; a probe
// that cannot be built yet reports 0.
func (m *MetaField) Size() int {
	if m.delegate != nil {
		return m.delegate.Size()
	}
	probe, err := m.newField(Root(m))
	if err != nil {
		return 0
	}
	return probe.Size()
}

func (m *MetaField) SetParent(p Field) {
	m.Base.SetParent(p)
	if m.delegate != nil {
		m.delegate.SetParent(p)
	}
}

// Value panics with ErrNotMaterialized before materialization.
func (m *MetaField) Value() any {
	return m.mustDelegate().Value()
}

func (m *MetaField) SetValue(v any) error {
	if m.delegate == nil {
		return fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	return m.delegate.SetValue(v)
}

func (m *MetaField) Fields() []Field {
	if m.delegate == nil {
		return nil
	}
	return m.delegate.Fields()
}

// Field resolves a dotted path through the delegate.
func (m *MetaField) Field(path string) (Field, error) {
	sub, err := m.resolver()
	if err != nil {
		return nil, err
	}
	return sub.Field(path)
}

// Get returns the value at path inside the delegate.
func (m *MetaField) Get(path string) (any, error) {
	if m.delegate == nil {
		return nil, fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	g, ok := m.delegate.(valueGetter)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAContainer, m.name)
	}
	return g.Get(path)
}

// Set assigns the value at path inside the delegate.
func (m *MetaField) Set(path string, v any) error {
	if m.delegate == nil {
		return fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	s, ok := m.delegate.(valueSetter)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotAContainer, m.name)
	}
	return s.Set(path, v)
}

func (m *MetaField) Encode(w *Writer, ctx Field) error {
	if m.delegate == nil {
		return fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	return m.delegate.Encode(w, ctx)
}

// Decode materializes a fresh delegate from the constructor and decodes into
// it. The constructor sees the context as decoded so far, which is how the
// concrete type may depend on an earlier field's value.
func (m *MetaField) Decode(r *Reader, ctx Field) error {
	if err := m.Materialize(ctx); err != nil {
		return err
	}
	return m.delegate.Decode(r, ctx)
}

func (m *MetaField) EngValue() any {
	return m.mustDelegate().EngValue()
}

func (m *MetaField) StrValue() string {
	return m.mustDelegate().StrValue()
}

func (m *MetaField) StrHexValue() string {
	return m.mustDelegate().StrHexValue()
}

func (m *MetaField) StrEngValue() string {
	return m.mustDelegate().StrEngValue()
}

func (m *MetaField) mustDelegate() Field {
	if m.delegate == nil {
		panic(fmt.Errorf("%s: %w", m.name, ErrNotMaterialized))
	}
	return m.delegate
}

func (m *MetaField) resolver() (fieldResolver, error) {
	if m.delegate == nil {
		return nil, fmt.Errorf("%s: %w", m.name, ErrNotMaterialized)
	}
	sub, ok := m.delegate.(fieldResolver)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAContainer, m.name)
	}
	return sub, nil
}
