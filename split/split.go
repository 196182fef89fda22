// Package split divides one long hash computation into chained proof
// sessions.
//
// The cost of hashing in-circuit scales with the message capacity, and a
// session's assertion budget is fixed before any witness exists. Instead of
// one proof whose size scales with the whole message, a caller runs
// Initial → Update* → Final: every Update compresses a fixed batch of blocks,
// and Final compresses the bounded tail, derives the digest and proves, via
// a running MiMC commitment recomputed from scratch over the original
// message, that all sessions together processed exactly that message. The
// recomputation is field-level hashing only, far cheaper than compression.
//
// The API covers the Merkle–Damgård family in both word sizes. The sponge
// state is not a chaining value with a standard initial segment per block
// count, so the sponge family is hashed in one session via
// [github.com/zkdyn/gnark-dynamic/dynhash].
package split

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/consensys/gnark/std/math/uints"

	"github.com/zkdyn/gnark-dynamic/dynarray"
	"github.com/zkdyn/gnark-dynamic/dynhash"
	"github.com/zkdyn/gnark-dynamic/permutation/sha2"
	"github.com/zkdyn/gnark-dynamic/permutation/sha512"
)

// Hasher drives the session-split computation of one hash family.
type Hasher[T uints.Long] struct {
	api     frontend.API
	uapi    *uints.BinaryField[T]
	fam     dynhash.Family
	permute dynhash.CompressionFunc[T]
	seed    [8]T
}

// Iteration is the state carried between sessions: the running hash state and
// the running commitment over every block compressed so far.
type Iteration[T uints.Long] struct {
	State      [8]T
	Commitment frontend.Variable
}

// New224 returns a session-split SHA-224 hasher.
func New224(api frontend.API) (*Hasher[uints.U32], error) {
	return new32(api, dynhash.SHA2_224)
}

// New256 returns a session-split SHA-256 hasher.
func New256(api frontend.API) (*Hasher[uints.U32], error) {
	return new32(api, dynhash.SHA2_256)
}

// New384 returns a session-split SHA-384 hasher.
func New384(api frontend.API) (*Hasher[uints.U64], error) {
	return new64(api, dynhash.SHA2_384)
}

// New512 returns a session-split SHA-512 hasher.
func New512(api frontend.API) (*Hasher[uints.U64], error) {
	return new64(api, dynhash.SHA2_512)
}

func new32(api frontend.API, fam dynhash.Family) (*Hasher[uints.U32], error) {
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return nil, fmt.Errorf("initializing uints: %w", err)
	}
	return &Hasher[uints.U32]{api: api, uapi: uapi, fam: fam, permute: sha2.Permute, seed: dynhash.InitialState32(fam)}, nil
}

func new64(api frontend.API, fam dynhash.Family) (*Hasher[uints.U64], error) {
	uapi, err := uints.New[uints.U64](api)
	if err != nil {
		return nil, fmt.Errorf("initializing uints: %w", err)
	}
	return &Hasher[uints.U64]{api: api, uapi: uapi, fam: fam, permute: sha512.Permute, seed: dynhash.InitialState64(fam)}, nil
}

// Initial returns the starting iteration: the family's standard initial state
// and the neutral commitment.
func (h *Hasher[T]) Initial() Iteration[T] {
	return Iteration[T]{State: h.seed, Commitment: 0}
}

// Update compresses a fixed batch of blocks into the state and folds each
// block into the commitment. The batch size is part of the circuit shape;
// every block of the batch is treated as live.
func (h *Hasher[T]) Update(iter Iteration[T], batch [][16]T) (Iteration[T], error) {
	state := iter.State
	c := iter.Commitment
	for _, block := range batch {
		state = h.permute(h.uapi, state, block)
		words := make([]frontend.Variable, len(block))
		for w := range block {
			words[w] = h.uapi.ToValue(block[w])
		}
		var err error
		c, err = h.commit(c, words)
		if err != nil {
			return Iteration[T]{}, err
		}
	}
	return Iteration[T]{State: state, Commitment: c}, nil
}

// Final compresses the bounded tail (the padded trailing blocks the updates
// did not cover) into the state and returns the digest. It extends the
// commitment over the live tail blocks, then independently re-derives the
// full padding and blocking of the original message and recomputes the whole
// commitment chain from scratch; the two must agree. This equality is the
// only linkage proving that every session processed the same contiguous
// message: on mismatch the commitment assertion fails and no proof exists.
func (h *Hasher[T]) Final(iter Iteration[T], tail *dynhash.Blocks, message *dynarray.Bytes) ([]uints.U8, error) {
	if tail.Family() != h.fam {
		return nil, fmt.Errorf("tail built for %s, hasher is %s", tail.Family(), h.fam)
	}

	state := dynhash.FoldMD(h.api, h.uapi, h.permute, iter.State, tail)

	c := iter.Commitment
	live := tail.LiveMask()
	for i := 0; i < tail.MaxBlocks(); i++ {
		next, err := h.commit(c, blockWords(tail, i))
		if err != nil {
			return nil, err
		}
		c = h.api.Select(live[i], next, c)
	}

	full, err := dynhash.Build(h.api, h.fam, message)
	if err != nil {
		return nil, fmt.Errorf("building blocks: %w", err)
	}
	recomputed := frontend.Variable(0)
	liveFull := full.LiveMask()
	for i := 0; i < full.MaxBlocks(); i++ {
		next, err := h.commit(recomputed, blockWords(full, i))
		if err != nil {
			return nil, err
		}
		recomputed = h.api.Select(liveFull[i], next, recomputed)
	}

	// invalid commitment: the final session was not fed the same logical
	// message as the earlier updates
	h.api.AssertIsEqual(c, recomputed)

	var out []uints.U8
	for i := range state {
		out = append(out, h.uapi.UnpackMSB(state[i])...)
	}
	return out[:h.fam.Size()], nil
}

// commit folds one block into the running commitment via a domain-separated
// chain: commit(c, block) = H(c, H(block)).
func (h *Hasher[T]) commit(c frontend.Variable, words []frontend.Variable) (frontend.Variable, error) {
	mh, err := mimc.NewMiMC(h.api)
	if err != nil {
		return nil, fmt.Errorf("initializing mimc: %w", err)
	}
	mh.Write(words...)
	blockHash := mh.Sum()
	mh.Reset()
	mh.Write(c, blockHash)
	return mh.Sum(), nil
}

func blockWords(b *dynhash.Blocks, i int) []frontend.Variable {
	words := make([]frontend.Variable, b.BlockWords())
	for w := range words {
		words[w] = b.Word(i, w)
	}
	return words
}
