package bitpacket

import (
	"bytes"
	"errors"
	"testing"
)

func uint32Elem(Field) (Field, error) {
	return NewUint32("Elem"), nil
}

func TestArrayDecode(t *testing.T) {
	a := NewArray("Arr", NewUint8("Count"), uint32Elem)

	in := []byte{0x02, 0, 0, 0, 0x0A, 0, 0, 0, 0x14}
	if err := Unmarshal(a, in); err != nil {
		t.Fatalf("TestArrayDecode: unexpected error: %s", err)
	}

	if a.Count() != 2 {
		t.Fatalf("TestArrayDecode(Count): got %d, want 2", a.Count())
	}
	for i, want := range []uint32{10, 20} {
		el, err := a.Elem(i)
		if err != nil {
			t.Fatalf("TestArrayDecode(Elem %d): unexpected error: %s", i, err)
		}
		if got := el.Value().(uint32); got != want {
			t.Fatalf("TestArrayDecode(Elem %d): got %d, want %d", i, got, want)
		}
	}

	out, err := Marshal(a)
	if err != nil {
		t.Fatalf("TestArrayDecode: marshal: %s", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("TestArrayDecode(round trip): got %v, want %v", out, in)
	}
}

func TestArrayAppend(t *testing.T) {
	a := NewArray("Arr", NewUint8("Count"), uint32Elem)

	el := NewUint32("whatever")
	el.Set(7)
	if err := a.Append(el); err != nil {
		t.Fatalf("TestArrayAppend: unexpected error: %s", err)
	}

	if el.Name() != "0" {
		t.Fatalf("TestArrayAppend(rename): got %q, want %q", el.Name(), "0")
	}
	v, err := a.Get("Count")
	if err != nil {
		t.Fatalf("TestArrayAppend: unexpected error: %s", err)
	}
	if v.(uint8) != 1 {
		t.Fatalf("TestArrayAppend(counter): got %v, want 1", v)
	}

	if err := a.Append(NewUint16("bad")); !errors.Is(err, ErrWrongType) {
		t.Fatalf("TestArrayAppend(wrong type): got %v, want ErrWrongType", err)
	}
	if a.Count() != 1 {
		t.Fatalf("TestArrayAppend(after rejection): got %d elements, want 1", a.Count())
	}
}

// TestArrayCounterOverflow pins the counter invariant when the count outgrows
// the counter's width: the failed append leaves no element behind.
func TestArrayCounterOverflow(t *testing.T) {
	a := NewArray("Arr", NewUint8("Count"), uint32Elem)
	for i := 0; i < 255; i++ {
		a.MustAppend(NewUint32("e"))
	}

	if err := a.Append(NewUint32("e")); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("TestArrayCounterOverflow: got %v, want ErrSizeExceeded", err)
	}
	if a.Count() != 255 {
		t.Fatalf("TestArrayCounterOverflow(elements): got %d, want 255", a.Count())
	}
	v, err := a.Get("Count")
	if err != nil {
		t.Fatalf("TestArrayCounterOverflow: unexpected error: %s", err)
	}
	if v.(uint8) != 255 {
		t.Fatalf("TestArrayCounterOverflow(counter): got %v, want 255", v)
	}
}

func TestArraySet(t *testing.T) {
	a := NewArray("Arr", NewUint8("Count"), uint32Elem)
	a.MustAppend(NewUint32("e"))

	if err := a.Set("0", 10); err != nil {
		t.Fatalf("TestArraySet: unexpected error: %s", err)
	}

	// One past the end materializes a fresh element.
	if err := a.Set("1", 20); err != nil {
		t.Fatalf("TestArraySet(grow): unexpected error: %s", err)
	}
	if a.Count() != 2 {
		t.Fatalf("TestArraySet(grow): got %d elements, want 2", a.Count())
	}

	if err := a.Set("3", 30); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("TestArraySet(gap): got %v, want ErrIndexOutOfRange", err)
	}
	if err := a.Set("Count", 5); !errors.Is(err, ErrWrongType) {
		t.Fatalf("TestArraySet(counter): got %v, want ErrWrongType", err)
	}

	b, err := Marshal(a)
	if err != nil {
		t.Fatalf("TestArraySet: marshal: %s", err)
	}
	want := []byte{0x02, 0, 0, 0, 0x0A, 0, 0, 0, 0x14}
	if !bytes.Equal(b, want) {
		t.Fatalf("TestArraySet: got %v, want %v", b, want)
	}
}

func TestArrayRedecode(t *testing.T) {
	a := NewArray("Arr", NewUint8("Count"), uint32Elem)

	if err := Unmarshal(a, []byte{0x02, 0, 0, 0, 0x0A, 0, 0, 0, 0x14}); err != nil {
		t.Fatalf("TestArrayRedecode: unexpected error: %s", err)
	}
	if err := Unmarshal(a, []byte{0x01, 0, 0, 0, 0x63}); err != nil {
		t.Fatalf("TestArrayRedecode: unexpected error: %s", err)
	}

	if a.Count() != 1 {
		t.Fatalf("TestArrayRedecode(stale elements): got %d, want 1", a.Count())
	}
	el, err := a.Elem(0)
	if err != nil {
		t.Fatalf("TestArrayRedecode: unexpected error: %s", err)
	}
	if got := el.Value().(uint32); got != 99 {
		t.Fatalf("TestArrayRedecode(Elem 0): got %d, want 99", got)
	}
	if _, err := a.Elem(1); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("TestArrayRedecode(Elem 1): got %v, want ErrKeyNotFound", err)
	}
}

func TestArrayNested(t *testing.T) {
	pkt := NewStructure("Packet")
	pkt.MustAppend(NewUint8("Version"))
	pkt.MustAppend(NewArray("Arr", NewUint8("Count"), uint32Elem))

	in := []byte{0x07, 0x01, 0, 0, 0, 0x2A}
	if err := Unmarshal(pkt, in); err != nil {
		t.Fatalf("TestArrayNested: unexpected error: %s", err)
	}

	v, err := pkt.Get("Arr.0")
	if err != nil {
		t.Fatalf("TestArrayNested: unexpected error: %s", err)
	}
	if v.(uint32) != 42 {
		t.Fatalf("TestArrayNested(Arr.0): got %v, want 42", v)
	}

	// Writes through the parent still honor the array's assignment rules.
	if err := pkt.Set("Arr.Count", 9); !errors.Is(err, ErrWrongType) {
		t.Fatalf("TestArrayNested(counter): got %v, want ErrWrongType", err)
	}
	if err := pkt.Set("Arr.1", 43); err != nil {
		t.Fatalf("TestArrayNested(grow): unexpected error: %s", err)
	}

	out, err := Marshal(pkt)
	if err != nil {
		t.Fatalf("TestArrayNested: marshal: %s", err)
	}
	want := []byte{0x07, 0x02, 0, 0, 0, 0x2A, 0, 0, 0, 0x2B}
	if !bytes.Equal(out, want) {
		t.Fatalf("TestArrayNested: got %v, want %v", out, want)
	}
}
