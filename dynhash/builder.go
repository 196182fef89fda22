// Package dynhash computes digests of bounded byte arrays: for any live
// length L the digest is bit-identical to hashing the exact L-byte message
// through the conventional fixed-size algorithm.
//
// The construction has two parts. The block builder converts a bounded byte
// array into a bounded sequence of hash blocks by splicing the family's
// padding over the (asserted zero) region past the live length, locating the
// padding positions with a mixed-radix split of the length. The streaming
// engine then folds the block sequence into the hash state, one compression
// per physical block, discarding state updates past the live block count.
package dynhash

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/selector"

	"github.com/zkdyn/gnark-dynamic/dynarray"
	"github.com/zkdyn/gnark-dynamic/internal/arith"
	"github.com/zkdyn/gnark-dynamic/logger"
)

// Blocks is a bounded sequence of hash blocks: every physical block's words
// packed into native variables, plus the live block count. Words of blocks at
// index >= NumBlocks carry the zero padding of the builder and are skipped by
// the engines.
type Blocks struct {
	api frontend.API
	fam Family
	cfg config
	arr *dynarray.Bounded[[]frontend.Variable]
}

// NewBlocks wraps witness block words into a bounded block sequence, for
// callers that carry blocks between proof sessions. The count is constrained
// to [0, len(words)] by the first live-mask derivation; the word values
// themselves are constrained by the consumer (the engine's word decomposition
// and, for session splitting, the commitment chain).
func NewBlocks(api frontend.API, fam Family, words [][]frontend.Variable, numBlocks frontend.Variable) (*Blocks, error) {
	cfg := fam.config()
	for i := range words {
		if len(words[i]) != cfg.blockWords {
			return nil, fmt.Errorf("block %d has %d words, family %s wants %d", i, len(words[i]), fam, cfg.blockWords)
		}
	}
	desc := dynarray.SliceDescriptor[frontend.Variable]{Inner: dynarray.VarDescriptor{}, K: cfg.blockWords}
	arr := dynarray.NewBoundedUnsafe[[]frontend.Variable](api, desc, words, numBlocks)
	return &Blocks{api: api, fam: fam, cfg: cfg, arr: arr}, nil
}

// Family returns the hash family the blocks were built for.
func (b *Blocks) Family() Family { return b.fam }

// MaxBlocks returns the physical block count.
func (b *Blocks) MaxBlocks() int { return b.arr.MaxLen() }

// NumBlocks returns the live block count.
func (b *Blocks) NumBlocks() frontend.Variable { return b.arr.Length() }

// BlockWords returns the number of words per block.
func (b *Blocks) BlockWords() int { return b.cfg.blockWords }

// Word returns word w of physical block i, as a packed variable.
func (b *Blocks) Word(i, w int) frontend.Variable { return b.arr.Fixed().At(i)[w] }

// LiveMask returns one bit per physical block: 1 while i < NumBlocks, 0 past
// it. Deriving it also proves NumBlocks ∈ [0, MaxBlocks].
func (b *Blocks) LiveMask() []frontend.Variable {
	dummy := b.arr.Masks().Dummy(b.arr.Length(), b.arr.MaxLen())
	live := make([]frontend.Variable, len(dummy))
	for i := range dummy {
		live[i] = b.api.Sub(1, dummy[i])
	}
	return live
}

// Build converts a bounded byte array into the padded block sequence of the
// family. It asserts that every byte past the live length is zero, the
// invariant that makes splicing padding over that region equivalent to
// standard padding, so the input does not need to have been validated
// before.
func Build(api frontend.API, fam Family, data *dynarray.Bytes) (*Blocks, error) {
	cfg := fam.config()
	maxLen := data.MaxLen()
	if maxLen >= 1<<16 {
		return nil, fmt.Errorf("capacity %d exceeds the supported range", maxLen)
	}
	length := data.Length()
	blockBytes := cfg.wordBytes * cfg.blockWords
	maxBlocks := (maxLen + cfg.headerBytes + blockBytes - 1) / blockBytes

	log := logger.Logger()
	log.Debug().Str("family", fam.String()).Int("capacity", maxLen).Int("maxBlocks", maxBlocks).Msg("building dynamic hash blocks")

	// every byte at index >= length must be zero; this is the dominant cost
	// of the builder, linear in the capacity
	dummy := data.Masks().Dummy(length, maxLen)
	for j := 0; j < maxLen; j++ {
		api.AssertIsEqual(api.Mul(dummy[j], data.Fixed().At(j).Val), 0)
	}

	// pack the zero-extended capacity into per-block word vectors; a linear
	// combination per word, no constraints
	words := make([][]frontend.Variable, maxBlocks)
	for bi := range words {
		words[bi] = make([]frontend.Variable, cfg.blockWords)
		for w := range words[bi] {
			acc := frontend.Variable(0)
			for k := 0; k < cfg.wordBytes; k++ {
				idx := bi*blockBytes + w*cfg.wordBytes + k
				if idx >= maxLen {
					continue
				}
				shift := 8 * k
				if cfg.bigEndian {
					shift = 8 * (cfg.wordBytes - 1 - k)
				}
				acc = api.Add(acc, api.Mul(data.Fixed().At(idx).Val, new(big.Int).Lsh(big.NewInt(1), uint(shift))))
			}
			words[bi][w] = acc
		}
	}
	blockDesc := dynarray.SliceDescriptor[frontend.Variable]{Inner: dynarray.VarDescriptor{}, K: cfg.blockWords}
	blocks := dynarray.NewFixed[[]frontend.Variable](api, blockDesc, words)

	// mixed-radix split of the length into padding coordinates
	split := arith.SplitRadix(api, length, cfg.wordBytes, cfg.blockWords)
	byteInWord, wordInBlock, blockIdx := split[0], split[1], split[2]

	// splice the marker byte into the word holding position `length`; the
	// target byte is zero, so the addition is a write
	inner := dynarray.NewMasks(api)
	wordMask := inner.Query(wordInBlock, cfg.blockWords)
	weight := markerWeight(api, byteInWord, cfg)
	target := blocks.Get(blockIdx)
	for w := range target {
		target[w] = api.Add(target[w], api.Mul(wordMask[w], weight))
	}
	if cfg.spongeClose {
		// 0x80 into the top byte of the block's last word; disjoint bit
		// positions even when it lands on the marker byte, so no carry
		target[cfg.blockWords-1] = api.Add(target[cfg.blockWords-1], new(big.Int).Lsh(big.NewInt(0x80), uint(8*(cfg.wordBytes-1))))
	}
	blocks.Set(blockIdx, target)

	var numBlocks frontend.Variable
	if cfg.mdLength {
		// the final block holds the big-endian bit length in its trailing two
		// words; the high word is zero since lengths are bounded below 2^16
		finalIdx, _ := arith.DivMod(api, api.Add(length, cfg.headerBytes-1), blockBytes)
		final := blocks.Get(finalIdx)
		final[cfg.blockWords-2] = 0
		final[cfg.blockWords-1] = api.Mul(length, 8)
		blocks.Set(finalIdx, final)
		numBlocks = api.Add(finalIdx, 1)
	} else {
		numBlocks = api.Add(blockIdx, 1)
	}

	arr := dynarray.NewBoundedUnsafe[[]frontend.Variable](api, blockDesc, blocks.Elements(), numBlocks)
	return &Blocks{api: api, fam: fam, cfg: cfg, arr: arr}, nil
}

// markerWeight positions the family's marker byte inside a word: it returns
// marker · 256^offset for the byte order of the family, selected over the
// compile-time possible byte offsets.
func markerWeight(api frontend.API, byteInWord frontend.Variable, cfg config) frontend.Variable {
	weights := make([]frontend.Variable, cfg.wordBytes)
	for k := range weights {
		shift := 8 * k
		if cfg.bigEndian {
			shift = 8 * (cfg.wordBytes - 1 - k)
		}
		weights[k] = new(big.Int).Lsh(big.NewInt(int64(cfg.marker)), uint(shift))
	}
	return selector.Mux(api, byteInWord, weights...)
}
