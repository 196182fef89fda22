package sha2

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
)

var iv = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

type permuteCircuit struct {
	Block    [16]uints.U32
	Expected [8]uints.U32
}

func (c *permuteCircuit) Define(api frontend.API) error {
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	var state [8]uints.U32
	copy(state[:], uints.NewU32Array(iv[:]))
	out := Permute(uapi, state, c.Block)
	for i := range out {
		uapi.AssertEq(out[i], c.Expected[i])
	}
	return nil
}

// A message under 56 bytes pads to a single block, so the digest equals the
// state after one compression.
func TestPermuteSingleBlock(t *testing.T) {
	assert := test.NewAssert(t)
	msg := []byte("abc")

	var block [64]byte
	copy(block[:], msg)
	block[len(msg)] = 0x80
	binary.BigEndian.PutUint64(block[56:], uint64(len(msg))*8)

	digest := sha256.Sum256(msg)

	witness := &permuteCircuit{}
	for i := range witness.Block {
		witness.Block[i] = uints.NewU32(binary.BigEndian.Uint32(block[4*i:]))
	}
	for i := range witness.Expected {
		witness.Expected[i] = uints.NewU32(binary.BigEndian.Uint32(digest[4*i:]))
	}
	assert.NoError(test.IsSolved(&permuteCircuit{}, witness, ecc.BN254.ScalarField()))
}
