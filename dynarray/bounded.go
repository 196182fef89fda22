package dynarray

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zkdyn/gnark-dynamic/internal/arith"
)

// Bounded is a fixed-capacity array carrying a constrained length: logically
// it holds length elements, physically always MaxLen. Slots at index >= length
// are dummy slots.
//
// Instances produced by [NewBounded] satisfy the null-padding invariant: every
// dummy slot equals the canonical null of the element type. The invariant is
// not re-checked on mutation; callers that need it after a Set or Push must
// call [Bounded.Check] again.
type Bounded[T any] struct {
	fixed  *Fixed[T]
	length frontend.Variable
}

// NewBounded validates untrusted (elems, length): it proves length ∈
// [0, len(elems)] and that every slot at index >= length equals the canonical
// null. Hashing may then treat the padding as free.
func NewBounded[T any](api frontend.API, desc Descriptor[T], elems []T, length frontend.Variable) *Bounded[T] {
	b := NewBoundedUnsafe(api, desc, elems, length)
	b.Check()
	return b
}

// NewBoundedUnsafe constructs a bounded array without validating the
// null-padding invariant. The length is not range checked either; the first
// dummy-mask derivation proves length ∈ [0, cap] as a side effect. Use only
// with trusted or separately validated input.
func NewBoundedUnsafe[T any](api frontend.API, desc Descriptor[T], elems []T, length frontend.Variable) *Bounded[T] {
	return &Bounded[T]{fixed: NewFixed(api, desc, elems), length: length}
}

// Length returns the constrained length value.
func (b *Bounded[T]) Length() frontend.Variable { return b.length }

// MaxLen returns the capacity.
func (b *Bounded[T]) MaxLen() int { return b.fixed.Len() }

// Fixed returns the underlying fixed-capacity storage, dummy slots included.
func (b *Bounded[T]) Fixed() *Fixed[T] { return b.fixed }

// Masks returns the mask engine owned by this array.
func (b *Bounded[T]) Masks() *Masks { return b.fixed.masks }

func (b *Bounded[T]) api() frontend.API { return b.fixed.api }

// Check asserts the null-padding invariant: length ∈ [0, cap] and every dummy
// slot equals the canonical null.
func (b *Bounded[T]) Check() {
	dummy := b.fixed.masks.Dummy(b.length, b.fixed.Len())
	null := b.fixed.desc.Vars(b.fixed.desc.Null())
	for j := range b.fixed.elems {
		vars := b.fixed.desc.Vars(b.fixed.elems[j])
		for c := range vars {
			// dummy[j] * (elems[j] - null) == 0
			b.api().AssertIsEqual(b.api().Mul(dummy[j], b.api().Sub(vars[c], null[c])), 0)
		}
	}
}

// Get returns the element at index, proving index < length. Reads of dummy
// slots fail at the access site.
func (b *Bounded[T]) Get(index frontend.Variable) T {
	b.fixed.masks.AssertInRange(index, b.api().Sub(b.length, 1))
	return b.fixed.Get(index)
}

// GetOrUnconstrained is [Bounded.Get] without the liveness guard: it returns
// the raw backing slot, dummy or not, proving only index ∈ [0, cap). Intended
// for call sites that have independently proven the index in bounds, at
// roughly half the cost. Misuse yields meaningless data silently, it does not
// fail.
func (b *Bounded[T]) GetOrUnconstrained(index frontend.Variable) T {
	return b.fixed.Get(index)
}

// Set writes v at index, proving index < length.
func (b *Bounded[T]) Set(index frontend.Variable, v T) {
	b.fixed.masks.AssertInRange(index, b.api().Sub(b.length, 1))
	b.fixed.Set(index, v)
}

// SetOrDoNothing writes v at index when index < length and leaves the array
// unchanged otherwise. Like [Bounded.GetOrUnconstrained] it never fails;
// it proves only index ∈ [0, cap).
func (b *Bounded[T]) SetOrDoNothing(index frontend.Variable, v T) {
	live := b.fixed.masks.IsLess(index, b.length)
	mask := b.fixed.masks.Query(index, b.fixed.Len())
	gated := make([]frontend.Variable, len(mask))
	for j := range mask {
		gated[j] = b.api().Mul(mask[j], live)
	}
	b.fixed.setMasked(gated, v)
}

// Push appends v: length grows by one and v is masked-written at the old
// length. Fails when the array is full.
func (b *Bounded[T]) Push(v T) {
	oldLen := b.length
	newLen := b.api().Add(oldLen, 1)
	b.fixed.masks.AssertInRange(newLen, b.fixed.Len())
	b.fixed.Set(oldLen, v)
	b.length = newLen
}

// ForEach calls f on every physical slot together with its dummy bit.
// Aggregation logic must discard updates for dummy slots via select, not
// branching: the iteration itself is always over the full capacity.
func (b *Bounded[T]) ForEach(f func(elem T, isDummy frontend.Variable)) {
	dummy := b.fixed.masks.Dummy(b.length, b.fixed.Len())
	for j := range b.fixed.elems {
		f(b.fixed.elems[j], dummy[j])
	}
}

// Reduce folds f over every physical slot of b in slot order, handing the
// callback the dummy bit of each slot.
func Reduce[T, S any](b *Bounded[T], init S, f func(acc S, elem T, isDummy frontend.Variable) S) S {
	acc := init
	b.ForEach(func(elem T, isDummy frontend.Variable) {
		acc = f(acc, elem, isDummy)
	})
	return acc
}

// GrowMaxLengthTo returns a copy of b with capacity newCap, the extra slots
// filled with the canonical null. The result shares no mutable cache state
// with b; live elements get no new constraints.
func (b *Bounded[T]) GrowMaxLengthTo(newCap int) *Bounded[T] {
	if newCap < b.fixed.Len() {
		panic(fmt.Sprintf("cannot grow capacity %d to %d", b.fixed.Len(), newCap))
	}
	elems := make([]T, newCap)
	copy(elems, b.fixed.elems)
	for i := b.fixed.Len(); i < newCap; i++ {
		elems[i] = b.fixed.desc.Null()
	}
	return NewBoundedUnsafe(b.fixed.api, b.fixed.desc, elems, b.length)
}

// Chunk splits b into blocks of k consecutive elements. It returns the blocks
// as a bounded array with block count ceil(length/k), plus the inner offset
// length mod k, so that the boundary block (a possible live/dummy mix) can
// be handled precisely by the consumer. k must divide the capacity.
//
// The returned array does not satisfy the null-padding invariant at the
// boundary block; it is constructed unchecked. A function rather than a
// method for the same reason as [ChunkFixed].
func Chunk[T any](b *Bounded[T], k int) (*Bounded[[]T], frontend.Variable) {
	if b.fixed.Len()%k != 0 {
		panic(fmt.Sprintf("chunk size %d does not divide capacity %d", k, b.fixed.Len()))
	}
	blocks := make([][]T, b.fixed.Len()/k)
	for i := range blocks {
		blocks[i] = b.fixed.elems[i*k : (i+1)*k]
	}
	q, r := arith.DivMod(b.api(), b.length, k)
	// ceil(length/k) = q + (r != 0)
	numBlocks := b.api().Add(q, b.api().Sub(1, b.api().IsZero(r)))
	desc := SliceDescriptor[T]{Inner: b.fixed.desc, K: k}
	return NewBoundedUnsafe[[]T](b.api(), desc, blocks, numBlocks), r
}
