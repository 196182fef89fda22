package dynhash

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/std/permutation/keccakf"

	"github.com/zkdyn/gnark-dynamic/dynarray"
	"github.com/zkdyn/gnark-dynamic/permutation/sha2"
	"github.com/zkdyn/gnark-dynamic/permutation/sha512"
)

// CompressionFunc is a Merkle–Damgård compression function over words of
// type T.
type CompressionFunc[T uints.Long] func(uapi *uints.BinaryField[T], state [8]T, block [16]T) [8]T

// FoldMD folds every block of b into state with the given compression
// function. The compression runs once per physical block, so the circuit
// shape never depends on the witness. The running state is kept only while
// the block index is below the live count, so the result is the state after
// the last live block.
//
// Converting a packed word through uapi.ValueOf also range checks it, which
// anchors the builder's word arithmetic.
func FoldMD[T uints.Long](api frontend.API, uapi *uints.BinaryField[T], permute CompressionFunc[T], state [8]T, b *Blocks) [8]T {
	live := b.LiveMask()
	result := state
	for i := 0; i < b.MaxBlocks(); i++ {
		var block [16]T
		for w := range block {
			block[w] = uapi.ValueOf(b.Word(i, w))
		}
		state = permute(uapi, state, block)
		for j := range result {
			for k := 0; k < len(result[j]); k++ {
				result[j][k].Val = api.Select(live[i], state[j][k].Val, result[j][k].Val)
			}
		}
	}
	return result
}

// foldSponge absorbs every block of b into a Keccak-f[1600] state, XORing the
// rate lanes and permuting, with the same live-count skip as [FoldMD].
func foldSponge(api frontend.API, uapi *uints.BinaryField[uints.U64], state [25]uints.U64, b *Blocks) [25]uints.U64 {
	live := b.LiveMask()
	result := state
	for i := 0; i < b.MaxBlocks(); i++ {
		for w := 0; w < b.BlockWords(); w++ {
			state[w] = uapi.Xor(state[w], uapi.ValueOf(b.Word(i, w)))
		}
		state = keccakf.Permute(uapi, state)
		for j := range result {
			for k := 0; k < 8; k++ {
				result[j][k].Val = api.Select(live[i], state[j][k].Val, result[j][k].Val)
			}
		}
	}
	return result
}

func newSpongeState() (state [25]uints.U64) {
	for i := range state {
		state[i] = uints.NewU64(0)
	}
	return
}

// Sum hashes a bounded byte array: it builds the family's padded block
// sequence and folds it from the standard initial state. The digest is
// bit-identical to hashing the exact live-length message with the
// conventional fixed-size algorithm.
func Sum(api frontend.API, fam Family, data *dynarray.Bytes) ([]uints.U8, error) {
	blocks, err := Build(api, fam, data)
	if err != nil {
		return nil, fmt.Errorf("building blocks: %w", err)
	}
	return SumBlocks(api, blocks)
}

// SumBlocks folds an already-built block sequence from the family's standard
// initial state and returns the digest.
func SumBlocks(api frontend.API, blocks *Blocks) ([]uints.U8, error) {
	cfg := blocks.cfg
	switch {
	case cfg.spongeClose:
		uapi, err := uints.New[uints.U64](api)
		if err != nil {
			return nil, fmt.Errorf("initializing uints: %w", err)
		}
		state := foldSponge(api, uapi, newSpongeState(), blocks)
		var out []uints.U8
		for i := 0; i < cfg.outputBytes/8; i++ {
			out = append(out, uapi.UnpackLSB(state[i])...)
		}
		return out, nil
	case cfg.wordBytes == 4:
		uapi, err := uints.New[uints.U32](api)
		if err != nil {
			return nil, fmt.Errorf("initializing uints: %w", err)
		}
		state := FoldMD(api, uapi, sha2.Permute, InitialState32(blocks.fam), blocks)
		return unpackDigest(uapi, state, cfg.outputBytes), nil
	default:
		uapi, err := uints.New[uints.U64](api)
		if err != nil {
			return nil, fmt.Errorf("initializing uints: %w", err)
		}
		state := FoldMD(api, uapi, sha512.Permute, InitialState64(blocks.fam), blocks)
		return unpackDigest(uapi, state, cfg.outputBytes), nil
	}
}

// unpackDigest unpacks the state words most-significant-byte first and
// truncates to the family's output size (SHA-224 and SHA-384 are truncations
// of their wider siblings).
func unpackDigest[T uints.Long](uapi *uints.BinaryField[T], state [8]T, outputBytes int) []uints.U8 {
	var out []uints.U8
	for i := range state {
		out = append(out, uapi.UnpackMSB(state[i])...)
	}
	return out[:outputBytes]
}
