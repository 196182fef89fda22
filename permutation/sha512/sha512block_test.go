package sha512

import (
	"crypto/sha512"
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
)

var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

type permuteCircuit struct {
	Block    [16]uints.U64
	Expected [8]uints.U64
}

func (c *permuteCircuit) Define(api frontend.API) error {
	uapi, err := uints.New[uints.U64](api)
	if err != nil {
		return err
	}
	var state [8]uints.U64
	copy(state[:], uints.NewU64Array(iv[:]))
	out := Permute(uapi, state, c.Block)
	for i := range out {
		uapi.AssertEq(out[i], c.Expected[i])
	}
	return nil
}

// A message under 112 bytes pads to a single block, so the digest equals the
// state after one compression.
func TestPermuteSingleBlock(t *testing.T) {
	assert := test.NewAssert(t)
	msg := []byte("abc")

	var block [128]byte
	copy(block[:], msg)
	block[len(msg)] = 0x80
	binary.BigEndian.PutUint64(block[120:], uint64(len(msg))*8)

	digest := sha512.Sum512(msg)

	witness := &permuteCircuit{}
	for i := range witness.Block {
		witness.Block[i] = uints.NewU64(binary.BigEndian.Uint64(block[8*i:]))
	}
	for i := range witness.Expected {
		witness.Expected[i] = uints.NewU64(binary.BigEndian.Uint64(digest[8*i:]))
	}
	assert.NoError(test.IsSolved(&permuteCircuit{}, witness, ecc.BN254.ScalarField()))
}
