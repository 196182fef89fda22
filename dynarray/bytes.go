package dynarray

import (
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// Bytes is a bounded byte array, the workhorse specialization: every hashing
// construction in this module consumes one.
type Bytes = Bounded[uints.U8]

// NewBytes validates untrusted (data, length) into a bounded byte array,
// proving length ∈ [0, len(data)] and that every byte at index >= length is
// zero.
func NewBytes(api frontend.API, data []uints.U8, length frontend.Variable) *Bytes {
	return NewBounded[uints.U8](api, ByteDescriptor{}, data, length)
}

// NewBytesUnsafe constructs a bounded byte array without validating the
// zero-padding invariant.
func NewBytesUnsafe(api frontend.API, data []uints.U8, length frontend.Variable) *Bytes {
	return NewBoundedUnsafe[uints.U8](api, ByteDescriptor{}, data, length)
}

// ConstBytes fixes a compile-time byte string into a bounded array of the
// given capacity. The padding is constant zero, so no validation constraints
// are emitted.
func ConstBytes(api frontend.API, s []byte, capacity int) (*Bytes, error) {
	if len(s) > capacity {
		return nil, fmt.Errorf("input length %d exceeds capacity %d", len(s), capacity)
	}
	data := make([]uints.U8, capacity)
	copy(data, uints.NewU8Array(s))
	for i := len(s); i < capacity; i++ {
		data[i] = uints.NewU8(0)
	}
	return NewBytesUnsafe(api, data, len(s)), nil
}

// ConstString is [ConstBytes] over the UTF-8 encoding of s.
func ConstString(api frontend.API, s string, capacity int) (*Bytes, error) {
	return ConstBytes(api, []byte(s), capacity)
}

// ConstBytesHex is [ConstBytes] over the hex decoding of s.
func ConstBytesHex(api frontend.API, s string, capacity int) (*Bytes, error) {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}
	return ConstBytes(api, decoded, capacity)
}

// FixedBytes wraps an exact-size byte witness, for values whose length is
// statically known.
func FixedBytes(api frontend.API, data []uints.U8) *Fixed[uints.U8] {
	return NewFixed[uints.U8](api, ByteDescriptor{}, data)
}
