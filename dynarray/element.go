package dynarray

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// Descriptor describes how a circuit value of type T decomposes into native
// field columns. The arrays in this package manipulate elements only through
// their columns: masked lookups are dot products per column and masked writes
// are per-column conditional selects. Implementations must be stateless value
// types so that a descriptor can be shared freely between arrays.
type Descriptor[T any] interface {
	// NumVars returns the number of native columns of T. It must be constant
	// for a given descriptor.
	NumVars() int
	// Vars decomposes an element into its columns. The returned slice has
	// exactly NumVars entries.
	Vars(T) []frontend.Variable
	// FromVars reassembles an element from its columns.
	FromVars([]frontend.Variable) T
	// Null returns the canonical null value of T, used to pad dummy slots.
	Null() T
}

// VarDescriptor describes a bare [frontend.Variable] element with canonical
// null 0.
type VarDescriptor struct{}

func (VarDescriptor) NumVars() int { return 1 }

func (VarDescriptor) Vars(v frontend.Variable) []frontend.Variable {
	return []frontend.Variable{v}
}

func (VarDescriptor) FromVars(vs []frontend.Variable) frontend.Variable { return vs[0] }

func (VarDescriptor) Null() frontend.Variable { return 0 }

// ByteDescriptor describes a [uints.U8] element with canonical null 0x00.
// Note that reassembled bytes carry no 8-bit range check of their own; the
// containers only ever reassemble from selects over already-constrained
// columns.
type ByteDescriptor struct{}

func (ByteDescriptor) NumVars() int { return 1 }

func (ByteDescriptor) Vars(b uints.U8) []frontend.Variable {
	return []frontend.Variable{b.Val}
}

func (ByteDescriptor) FromVars(vs []frontend.Variable) uints.U8 {
	return uints.U8{Val: vs[0]}
}

func (ByteDescriptor) Null() uints.U8 { return uints.NewU8(0) }

// SliceDescriptor describes a fixed-size slice of K inner elements as a single
// element of K×inner.NumVars columns. It is the element type produced by
// chunking.
type SliceDescriptor[T any] struct {
	Inner Descriptor[T]
	K     int
}

func (d SliceDescriptor[T]) NumVars() int { return d.K * d.Inner.NumVars() }

func (d SliceDescriptor[T]) Vars(block []T) []frontend.Variable {
	vs := make([]frontend.Variable, 0, d.NumVars())
	for i := range block {
		vs = append(vs, d.Inner.Vars(block[i])...)
	}
	return vs
}

func (d SliceDescriptor[T]) FromVars(vs []frontend.Variable) []T {
	w := d.Inner.NumVars()
	block := make([]T, d.K)
	for i := range block {
		block[i] = d.Inner.FromVars(vs[i*w : (i+1)*w])
	}
	return block
}

func (d SliceDescriptor[T]) Null() []T {
	block := make([]T, d.K)
	for i := range block {
		block[i] = d.Inner.Null()
	}
	return block
}
