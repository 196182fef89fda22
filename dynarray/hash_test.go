package dynarray

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
)

// hashAgreeCircuit hashes the same logical content stored in two different
// capacities and requires the digests to agree.
type hashAgreeCircuit struct {
	Small  [4]uints.U8
	Large  [9]uints.U8
	Length frontend.Variable
}

func (c *hashAgreeCircuit) Define(api frontend.API) error {
	small := NewBytes(api, c.Small[:], c.Length)
	large := NewBytes(api, c.Large[:], c.Length)
	hs, err := Hash(small)
	if err != nil {
		return err
	}
	hl, err := Hash(large)
	if err != nil {
		return err
	}
	api.AssertIsEqual(hs, hl)

	// growing in-circuit agrees as well
	hg, err := Hash(small.GrowMaxLengthTo(9))
	if err != nil {
		return err
	}
	api.AssertIsEqual(hs, hg)
	return nil
}

func TestHashCapacityIndependence(t *testing.T) {
	assert := test.NewAssert(t)
	content := []byte{0xde, 0xad, 0xbe, 0xef}
	for length := 0; length <= 4; length++ {
		assert.Run(func(assert *test.Assert) {
			witness := &hashAgreeCircuit{Length: length}
			for i := range witness.Small {
				witness.Small[i] = uints.NewU8(0)
			}
			for i := range witness.Large {
				witness.Large[i] = uints.NewU8(0)
			}
			for i := 0; i < length; i++ {
				witness.Small[i] = uints.NewU8(content[i])
				witness.Large[i] = uints.NewU8(content[i])
			}
			assert.NoError(test.IsSolved(&hashAgreeCircuit{}, witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("length=%d", length))
	}
}

// hashDistinctCircuit requires the digests of two arrays to differ.
type hashDistinctCircuit struct {
	A       [6]uints.U8
	ALength frontend.Variable
	B       [6]uints.U8
	BLength frontend.Variable
}

func (c *hashDistinctCircuit) Define(api frontend.API) error {
	a := NewBytes(api, c.A[:], c.ALength)
	b := NewBytes(api, c.B[:], c.BLength)
	ha, err := Hash(a)
	if err != nil {
		return err
	}
	hb, err := Hash(b)
	if err != nil {
		return err
	}
	api.AssertIsDifferent(ha, hb)
	return nil
}

func TestHashSensitivity(t *testing.T) {
	assert := test.NewAssert(t)
	pad := func(content []byte) (out [6]uints.U8) {
		for i := range out {
			out[i] = uints.NewU8(0)
		}
		copy(out[:], uints.NewU8Array(content))
		return
	}

	assert.Run(func(assert *test.Assert) {
		// same bytes, different length
		witness := &hashDistinctCircuit{A: pad([]byte("ab")), ALength: 2, B: pad([]byte("ab")), BLength: 3}
		assert.NoError(test.IsSolved(&hashDistinctCircuit{}, witness, ecc.BN254.ScalarField()))
	}, "length")

	assert.Run(func(assert *test.Assert) {
		// same length, different bytes
		witness := &hashDistinctCircuit{A: pad([]byte("abc")), ALength: 3, B: pad([]byte("abd")), BLength: 3}
		assert.NoError(test.IsSolved(&hashDistinctCircuit{}, witness, ecc.BN254.ScalarField()))
	}, "content")

	assert.Run(func(assert *test.Assert) {
		// a trailing zero byte inside the live region is content, not padding
		witness := &hashDistinctCircuit{A: pad([]byte{1, 2}), ALength: 2, B: pad([]byte{1, 2, 0}), BLength: 3}
		assert.NoError(test.IsSolved(&hashDistinctCircuit{}, witness, ecc.BN254.ScalarField()))
	}, "trailing-zero")

	assert.Run(func(assert *test.Assert) {
		// identical arrays must not satisfy the difference assertion
		witness := &hashDistinctCircuit{A: pad([]byte("abc")), ALength: 3, B: pad([]byte("abc")), BLength: 3}
		assert.Error(test.IsSolved(&hashDistinctCircuit{}, witness, ecc.BN254.ScalarField()))
	}, "equal")
}
