package bitpacket

import (
	"bytes"
	"errors"
	"testing"
)

func TestIntegerEncodeOrder(t *testing.T) {
	be := NewUint16("X")
	be.Set(0x0102)
	b, err := Marshal(be)
	if err != nil {
		t.Fatalf("TestIntegerEncodeOrder(BE): unexpected error: %s", err)
	}
	if !bytes.Equal(b, []byte{0x01, 0x02}) {
		t.Fatalf("TestIntegerEncodeOrder(BE): got %v, want [1 2]", b)
	}

	le := NewInteger[uint16]("X", LittleEndian)
	le.Set(0x0102)
	b, err = Marshal(le)
	if err != nil {
		t.Fatalf("TestIntegerEncodeOrder(LE): unexpected error: %s", err)
	}
	if !bytes.Equal(b, []byte{0x02, 0x01}) {
		t.Fatalf("TestIntegerEncodeOrder(LE): got %v, want [2 1]", b)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	f := NewInt32("X")
	f.Set(-123456)

	b, err := Marshal(f)
	if err != nil {
		t.Fatalf("TestIntegerRoundTrip: marshal: %s", err)
	}
	if len(b) != f.Size() {
		t.Fatalf("TestIntegerRoundTrip: encoded %d bytes, Size() is %d", len(b), f.Size())
	}

	got := NewInt32("X")
	if err := Unmarshal(got, b); err != nil {
		t.Fatalf("TestIntegerRoundTrip: unmarshal: %s", err)
	}
	if got.Get() != -123456 {
		t.Fatalf("TestIntegerRoundTrip: got %d, want -123456", got.Get())
	}
}

func TestIntegerSetValue(t *testing.T) {
	tests := []struct {
		desc string
		v    any
		err  error
	}{
		{desc: "in range int", v: 255},
		{desc: "in range uint64", v: uint64(10)},
		{desc: "too large", v: 256, err: ErrSizeExceeded},
		{desc: "negative on unsigned", v: -1, err: ErrSizeExceeded},
		{desc: "not an integer", v: "nope", err: ErrWrongType},
	}

	for _, test := range tests {
		f := NewUint8("X")
		err := f.SetValue(test.v)
		switch {
		case test.err == nil && err != nil:
			t.Fatalf("TestIntegerSetValue(%s): unexpected error: %s", test.desc, err)
		case test.err != nil && !errors.Is(err, test.err):
			t.Fatalf("TestIntegerSetValue(%s): got %v, want %v", test.desc, err, test.err)
		}
	}

	s := NewInt8("X")
	if err := s.SetValue(-128); err != nil {
		t.Fatalf("TestIntegerSetValue(int8 min): unexpected error: %s", err)
	}
	if err := s.SetValue(-129); !errors.Is(err, ErrSizeExceeded) {
		t.Fatalf("TestIntegerSetValue(int8 below min): got %v, want ErrSizeExceeded", err)
	}
}

func TestIntegerPresentation(t *testing.T) {
	f := NewUint16("X")
	f.Set(0x0102)

	if got := f.StrValue(); got != "258" {
		t.Fatalf("TestIntegerPresentation(StrValue): got %q, want %q", got, "258")
	}
	if got := f.StrHexValue(); got != "0x0102" {
		t.Fatalf("TestIntegerPresentation(StrHexValue): got %q, want %q", got, "0x0102")
	}

	// StrHexValue shows the in-memory bytes, so little endian flips it.
	le := NewInteger[uint16]("X", LittleEndian)
	le.Set(0x0102)
	if got := le.StrHexValue(); got != "0x0201" {
		t.Fatalf("TestIntegerPresentation(LE StrHexValue): got %q, want %q", got, "0x0201")
	}
}

func TestCalibration(t *testing.T) {
	// A 16 bit reading covering 0..50 celsius.
	temp := NewUint16("Temp")
	temp.SetCalibration(func(v any) any {
		return float64(v.(uint16)) / 65535.0 * 50.0
	})
	temp.Set(65535)

	if got := temp.EngValue().(float64); got != 50.0 {
		t.Fatalf("TestCalibration(EngValue): got %v, want 50", got)
	}
	if got := temp.StrEngValue(); got != "50" {
		t.Fatalf("TestCalibration(StrEngValue): got %q, want %q", got, "50")
	}

	// Identity by default.
	plain := NewUint8("X")
	plain.Set(7)
	if got := plain.EngValue().(uint8); got != 7 {
		t.Fatalf("TestCalibration(identity): got %v, want 7", got)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	f := NewFloat32("F")
	f.Set(3.25)

	b, err := Marshal(f)
	if err != nil {
		t.Fatalf("TestFloatRoundTrip: marshal: %s", err)
	}
	if len(b) != 4 {
		t.Fatalf("TestFloatRoundTrip: encoded %d bytes, want 4", len(b))
	}

	got := NewFloat32("F")
	if err := Unmarshal(got, b); err != nil {
		t.Fatalf("TestFloatRoundTrip: unmarshal: %s", err)
	}
	if got.Get() != 3.25 {
		t.Fatalf("TestFloatRoundTrip: got %v, want 3.25", got.Get())
	}

	d := NewFloat64("D")
	d.Set(-0.5)
	b, err = Marshal(d)
	if err != nil {
		t.Fatalf("TestFloatRoundTrip(float64): marshal: %s", err)
	}
	got64 := NewFloat64("D")
	if err := Unmarshal(got64, b); err != nil {
		t.Fatalf("TestFloatRoundTrip(float64): unmarshal: %s", err)
	}
	if got64.Get() != -0.5 {
		t.Fatalf("TestFloatRoundTrip(float64): got %v, want -0.5", got64.Get())
	}
}

func TestBytesLeaf(t *testing.T) {
	f := NewBytes("Raw", 3)

	if err := f.SetValue([]byte{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("TestBytesLeaf(short): got %v, want ErrLengthMismatch", err)
	}
	if err := f.SetValue([]byte{1, 2, 3}); err != nil {
		t.Fatalf("TestBytesLeaf: unexpected error: %s", err)
	}

	b, err := Marshal(f)
	if err != nil {
		t.Fatalf("TestBytesLeaf: marshal: %s", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Fatalf("TestBytesLeaf: got %v, want [1 2 3]", b)
	}
	if got := f.StrValue(); got != "0x010203" {
		t.Fatalf("TestBytesLeaf(StrValue): got %q, want %q", got, "0x010203")
	}
}
