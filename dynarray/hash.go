package dynarray

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// Hash computes a field-level content hash of a bounded array: a MiMC chain
// seeded with the length, absorbing the columns of one element per step and
// discarding the state update of every dummy slot. Given the null-padding
// invariant, the digest is a pure function of logical content and length,
// independent of unused capacity: growing the array does not change it.
//
// Hash requires the null-padding invariant; call [Bounded.Check] first if the
// array was mutated since construction.
func Hash[T any](b *Bounded[T]) (frontend.Variable, error) {
	api := b.fixed.api
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return nil, fmt.Errorf("initializing mimc: %w", err)
	}
	dummy := b.fixed.masks.Dummy(b.length, b.fixed.Len())

	// fold the length into the first block so that ("ab", 2) and ("ab\x00", 2)
	// in different capacities agree while ("ab", 2) and ("ab", 3) do not
	h.Write(b.length)
	state := h.Sum()

	for j := range b.fixed.elems {
		h.Reset()
		h.Write(state)
		h.Write(b.fixed.desc.Vars(b.fixed.elems[j])...)
		next := h.Sum()
		state = api.Select(dummy[j], state, next)
	}
	return state, nil
}
