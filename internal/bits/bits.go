// Package bits provides the bit twiddling primitives used by the bit-stream
// adapter and by fields that carry named bit masks.
package bits

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Mask creates a mask for setting, getting and clearing a set of bits.
// start is the bit location you wish to start at and end is the bit you wish
// to end at (exclusive). Index starts at 0, so Mask(1, 4) includes bits at
// locations 1 to 3. If start >= end, this panics.
func Mask[U constraints.Unsigned](start, end uint64) U {
	return U(setBits(uint64(0), start, end))
}

// GetValue retrieves the bits covered by bitMask from store. start is the
// position the value was stored at, so the masked bits are shifted back down
// by start before being returned.
func GetValue[U, U1 constraints.Unsigned](store U, bitMask U, start uint64) U1 {
	return U1((store & bitMask) >> start)
}

// SetValue stores "val" in unsigned number "store" starting at bit "start" and
// ending at bit "end" (exclusive). The covered bits must be clear beforehand.
// If start >= end, this panics.
func SetValue[I, U constraints.Unsigned](val I, store U, start, end uint64) U {
	if start >= end {
		panic("start cannot be >= end")
	}

	c := U(val) << start

	return store | c
}

// GetBit gets a single bit value from "store" in position "pos". true if set,
// false if not. Panics if pos is outside the bit size of U.
func GetBit[U constraints.Unsigned](store U, pos uint8) bool {
	checkPos(store, pos)
	return store&(1<<pos) != 0
}

// SetBit sets a single bit in "store" at position "pos" to value "val". If val
// is true, the bit is set to 1, if false, it is set to 0.
func SetBit[U constraints.Unsigned](store U, pos uint8, val bool) U {
	checkPos(store, pos)
	if val {
		return store | (1 << pos)
	}

	return store & ^(1 << pos)
}

// ClearBit clears the bit at pos in store.
func ClearBit[U constraints.Unsigned](store U, pos uint8) U {
	checkPos(store, pos)
	store &^= (1 << pos)
	return store
}

// ClearBits clears all bits from "from" until "to" (exclusive).
func ClearBits[U constraints.Unsigned](store U, from, to uint8) U {
	for i := from; i < to; i++ {
		store = ClearBit(store, i)
	}
	return store
}

func checkPos[U constraints.Unsigned](store U, pos uint8) {
	var size uint8
	switch any(store).(type) {
	case uint:
		size = bits.UintSize
	case uint8:
		size = 8
	case uint16:
		size = 16
	case uint32:
		size = 32
	case uint64:
		size = 64
	default:
		panic(fmt.Sprintf("store must be of type uint/uint8/uint16/uint32/uint64, was %T", store))
	}
	if pos >= size {
		panic(fmt.Sprintf("can't touch bit %d of a %d bit number", pos, size))
	}
}

// setBits sets all bits to 1 from start (inclusive) to end (exclusive).
// This is not particularly fast, so best to use at init time. If start >= end
// or end exceeds the bit size of the number, this will panic.
func setBits[I constraints.Unsigned](n I, start, end uint64) I {
	var size uint64
	switch any(n).(type) {
	case uint:
		size = bits.UintSize
	case uint8:
		size = 8
	case uint16:
		size = 16
	case uint32:
		size = 32
	case uint64:
		size = 64
	default:
		panic(fmt.Sprintf("n must be of type uint8/uint16/uint32/uint64, was %T", n))
	}

	if start >= end {
		panic("start cannot be >= end")
	}
	if end > size {
		panic(fmt.Sprintf("end cannot be %d, as that is the largest amount of bits in an %d bit number", end, size))
	}

	var r uint64
	for x := start; x < end; x++ {
		c := (uint64(1) << x)
		r = r | c
	}

	return n | I(r)
}
