package bitpacket

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FieldFunc constructs one new element field from the context. Array,
// MetaStructure and MetaField call it lazily, at decode time or at first
// assignment, once per materialized element.
type FieldFunc func(ctx Field) (Field, error)

// Array is a Structure whose first child is a counter leaf tracking the
// number of elements that follow it. Elements are created by the element
// constructor, renamed to their zero-based index ("0", "1", ...) and
// type-checked against the constructor's product. The counter advances only
// through Append, index assignment or Decode; setting it directly is
// rejected.
type Array struct {
	Structure

	counter Field
	newElem FieldFunc
}

// NewArray creates an Array with the given counter leaf and element
// constructor.
func NewArray(name string, counter Field, newElem FieldFunc) *Array {
	a := &Array{
		Structure: Structure{Container: NewContainer(name)},
		counter:   counter,
		newElem:   newElem,
	}
	a.self = a
	a.Container.MustAppend(counter)
	return a
}

// Count reports the number of materialized elements.
func (a *Array) Count() int {
	return len(a.fields) - 1
}

// Elem returns the element at index i.
func (a *Array) Elem(i int) (Field, error) {
	return a.Container.Field(strconv.Itoa(i))
}

// Append type-checks f against the element constructor's product, renames it
// to the next index and advances the counter. A mismatched concrete type
// fails with ErrWrongType.
func (a *Array) Append(f Field) error {
	want, err := a.elemType()
	if err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	if got := reflect.TypeOf(f); got != want {
		return fmt.Errorf("%s: %w: array holds %v, got %v", a.name, ErrWrongType, want, got)
	}

	n := a.Count()
	f.SetName(strconv.Itoa(n))
	// The counter advances first so a count that does not fit its width leaves
	// the elements untouched.
	if err := a.counter.SetValue(n + 1); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	if err := a.Container.Append(f); err != nil {
		a.counter.SetValue(n)
		return err
	}
	return nil
}

// MustAppend is Append that panics on error.
func (a *Array) MustAppend(f Field) {
	if err := a.Append(f); err != nil {
		panic(err)
	}
}

// Set assigns through a dotted path. A leading numeric segment may address an
// existing element or exactly one past the end, which materializes a new
// element first; any larger index fails with ErrIndexOutOfRange. Writes to
// the counter itself are rejected, since it must always equal the element
// count.
func (a *Array) Set(path string, v any) error {
	head, _, _ := strings.Cut(path, pathSep)
	if head == a.counter.Name() {
		return fmt.Errorf("%s: %w: counter %q advances only through Append or Decode", a.name, ErrWrongType, head)
	}
	idx, err := strconv.Atoi(head)
	if err != nil {
		return a.Container.Set(path, v)
	}

	switch n := a.Count(); {
	case idx < n:
		// Existing element.
	case idx == n:
		if _, err := a.materialize(Root(a), n); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: %w: index %d with %d elements", a.name, ErrIndexOutOfRange, idx, a.Count())
	}
	return a.Container.Set(path, v)
}

// Decode drops previously materialized elements, reads the counter and then
// materializes and decodes exactly that many elements in order.
func (a *Array) Decode(r *Reader, ctx Field) error {
	a.Reset()
	a.Container.MustAppend(a.counter)
	a.beginDecode()
	defer a.endDecode()

	if err := a.counter.Decode(r, ctx); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	a.decoded = 1
	n, err := asInt(a.counter.Value())
	if err != nil {
		return fmt.Errorf("%s: counter %q: %w", a.name, a.counter.Name(), err)
	}
	for i := 0; i < n; i++ {
		el, err := a.newElem(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
		el.SetName(strconv.Itoa(i))
		if err := a.Container.Append(el); err != nil {
			return err
		}
		if err := el.Decode(r, ctx); err != nil {
			return fmt.Errorf("%s[%d]: %w", a.name, i, err)
		}
		a.decoded = i + 2
	}
	return nil
}

// materialize creates, names and appends the element at index i and advances
// the counter.
func (a *Array) materialize(ctx Field, i int) (Field, error) {
	el, err := a.newElem(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	el.SetName(strconv.Itoa(i))
	if err := a.counter.SetValue(i + 1); err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	if err := a.Container.Append(el); err != nil {
		a.counter.SetValue(i)
		return nil, err
	}
	return el, nil
}

// elemType probes the element constructor for the concrete type an Append
// must match. A MetaField element stands for its delegate's type.
func (a *Array) elemType() (reflect.Type, error) {
	probe, err := a.newElem(Root(a))
	if err != nil {
		return nil, err
	}
	if mf, ok := probe.(*MetaField); ok {
		return mf.DelegateType(Root(a))
	}
	return reflect.TypeOf(probe), nil
}
