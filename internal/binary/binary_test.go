package binary

import (
	"bytes"
	"testing"
)

func TestSize(t *testing.T) {
	if got := Size[int8](); got != 1 {
		t.Fatalf("TestSize(int8): got %d, want 1", got)
	}
	if got := Size[uint8](); got != 1 {
		t.Fatalf("TestSize(uint8): got %d, want 1", got)
	}
	if got := Size[int16](); got != 2 {
		t.Fatalf("TestSize(int16): got %d, want 2", got)
	}
	if got := Size[uint16](); got != 2 {
		t.Fatalf("TestSize(uint16): got %d, want 2", got)
	}
	if got := Size[int32](); got != 4 {
		t.Fatalf("TestSize(int32): got %d, want 4", got)
	}
	if got := Size[uint32](); got != 4 {
		t.Fatalf("TestSize(uint32): got %d, want 4", got)
	}
	if got := Size[int64](); got != 8 {
		t.Fatalf("TestSize(int64): got %d, want 8", got)
	}
	if got := Size[uint64](); got != 8 {
		t.Fatalf("TestSize(uint64): got %d, want 8", got)
	}
}

func TestPutGetBytes(t *testing.T) {
	b := make([]byte, 2)
	Put(b, uint16(0x0102), BigEndian)
	if !bytes.Equal(b, []byte{0x01, 0x02}) {
		t.Fatalf("TestPutGetBytes(BE uint16): got %v, want [1 2]", b)
	}

	Put(b, uint16(0x0102), LittleEndian)
	if !bytes.Equal(b, []byte{0x02, 0x01}) {
		t.Fatalf("TestPutGetBytes(LE uint16): got %v, want [2 1]", b)
	}

	b = make([]byte, 1)
	Put(b, int8(-1), BigEndian)
	if b[0] != 0xFF {
		t.Fatalf("TestPutGetBytes(int8 -1): got %#x, want 0xFF", b[0])
	}
	if got := Get[int8](b, BigEndian); got != -1 {
		t.Fatalf("TestPutGetBytes(Get int8): got %d, want -1", got)
	}
}

func TestRoundTrip(t *testing.T) {
	orders := []Order{BigEndian, LittleEndian}

	for _, o := range orders {
		b := make([]byte, 8)

		for _, v := range []int64{0, 1, -1, -1 << 63, 1<<63 - 1} {
			Put(b, v, o)
			if got := Get[int64](b, o); got != v {
				t.Fatalf("TestRoundTrip(%v, int64 %d): got %d", o, v, got)
			}
		}
		for _, v := range []uint32{0, 1, 0xDEADBEEF, 1<<32 - 1} {
			Put(b, v, o)
			if got := Get[uint32](b, o); got != v {
				t.Fatalf("TestRoundTrip(%v, uint32 %d): got %d", o, v, got)
			}
		}
		for _, v := range []int16{0, -300, 300, -1 << 15, 1<<15 - 1} {
			Put(b, v, o)
			if got := Get[int16](b, o); got != v {
				t.Fatalf("TestRoundTrip(%v, int16 %d): got %d", o, v, got)
			}
		}
	}
}
