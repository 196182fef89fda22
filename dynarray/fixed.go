package dynarray

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// Fixed is an exact-size sequence of constrained elements. The capacity is a
// compile-time constant; every index-variable access costs capacity ×
// element-width constraints, which is the only way to address a secret index
// inside a constraint system.
type Fixed[T any] struct {
	api   frontend.API
	desc  Descriptor[T]
	elems []T
	masks *Masks
}

// NewFixed wraps elems into a fixed array. The slice is copied; the element
// values themselves are shared.
func NewFixed[T any](api frontend.API, desc Descriptor[T], elems []T) *Fixed[T] {
	cp := make([]T, len(elems))
	copy(cp, elems)
	return &Fixed[T]{api: api, desc: desc, elems: cp, masks: NewMasks(api)}
}

// Len returns the capacity.
func (a *Fixed[T]) Len() int { return len(a.elems) }

// Elements returns the backing storage. The slice is shared with the array;
// mutating it bypasses every invariant this package maintains.
func (a *Fixed[T]) Elements() []T { return a.elems }

// At returns the element at a native (compile-time) index.
func (a *Fixed[T]) At(i int) T { return a.elems[i] }

// Masks returns the mask engine owned by this array.
func (a *Fixed[T]) Masks() *Masks { return a.masks }

// Get returns the element at a (possibly secret) index. The lookup is a dot
// product of the equality mask with every column of the storage; it proves
// index ∈ [0, Len).
func (a *Fixed[T]) Get(index frontend.Variable) T {
	mask := a.masks.Query(index, len(a.elems))
	w := a.desc.NumVars()
	cols := make([]frontend.Variable, w)
	for c := 0; c < w; c++ {
		acc := frontend.Variable(0)
		for j := range a.elems {
			acc = a.api.MulAcc(acc, mask[j], a.desc.Vars(a.elems[j])[c])
		}
		cols[c] = acc
	}
	return a.desc.FromVars(cols)
}

// Set replaces the element at a (possibly secret) index, keeping every other
// slot: a per-slot conditional select driven by the equality mask. It proves
// index ∈ [0, Len).
func (a *Fixed[T]) Set(index frontend.Variable, v T) {
	a.setMasked(a.masks.Query(index, len(a.elems)), v)
}

// setMasked writes v into every slot whose mask entry is 1. The mask entries
// must be boolean; they need not be one-hot.
func (a *Fixed[T]) setMasked(mask []frontend.Variable, v T) {
	nv := a.desc.Vars(v)
	for j := range a.elems {
		old := a.desc.Vars(a.elems[j])
		cols := make([]frontend.Variable, len(old))
		for c := range old {
			cols[c] = a.api.Select(mask[j], nv[c], old[c])
		}
		a.elems[j] = a.desc.FromVars(cols)
	}
}

// Reverse returns a new array with the slot order reversed. The mask cache is
// not carried over: cached masks are keyed to slot positions.
func (a *Fixed[T]) Reverse() *Fixed[T] {
	elems := make([]T, len(a.elems))
	for i := range elems {
		elems[i] = a.elems[len(a.elems)-1-i]
	}
	return NewFixed(a.api, a.desc, elems)
}

// Slice returns the subarray [from, to). Compile-time bounds only.
func (a *Fixed[T]) Slice(from, to int) *Fixed[T] {
	return NewFixed(a.api, a.desc, a.elems[from:to])
}

// ChunkFixed splits the array into blocks of k consecutive elements. k must
// divide the capacity. A function rather than a method: a method would
// instantiate Fixed[[]T] from Fixed[T], an instantiation cycle.
func ChunkFixed[T any](a *Fixed[T], k int) *Fixed[[]T] {
	if len(a.elems)%k != 0 {
		panic(fmt.Sprintf("chunk size %d does not divide capacity %d", k, len(a.elems)))
	}
	blocks := make([][]T, len(a.elems)/k)
	for i := range blocks {
		blocks[i] = a.elems[i*k : (i+1)*k]
	}
	return NewFixed[[]T](a.api, SliceDescriptor[T]{Inner: a.desc, K: k}, blocks)
}

// MapFixed applies f to every slot and returns the result as a new array of
// element type U. Slot positions are preserved, so the mask cache of the
// source remains valid and is shared with the result.
//
// f may receive meaningless values for slots that were never validated;
// callers must not derive security-relevant facts from mapped dummy output
// without separate validation.
func MapFixed[T, U any](a *Fixed[T], desc Descriptor[U], f func(T) U) *Fixed[U] {
	elems := make([]U, len(a.elems))
	for i := range elems {
		elems[i] = f(a.elems[i])
	}
	return &Fixed[U]{api: a.api, desc: desc, elems: elems, masks: a.masks}
}

// ReduceFixed folds f over every slot, in slot order.
func ReduceFixed[T, S any](a *Fixed[T], init S, f func(acc S, elem T) S) S {
	acc := init
	for i := range a.elems {
		acc = f(acc, a.elems[i])
	}
	return acc
}
