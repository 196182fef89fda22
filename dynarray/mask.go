package dynarray

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"
)

func init() {
	// register hints
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in this package. This method is
// useful for registering all hints in the solver.
func GetHints() []solver.Hint {
	return []solver.Hint{indexMaskHint, isLessHint}
}

// rangeBits is the width of the small range checks used for indices and
// lengths. Capacities above 2^16 are not supported.
const rangeBits = 16

type maskEntry struct {
	index frontend.Variable
	mask  []frontend.Variable
}

type rangeEntry struct {
	index frontend.Variable
	bound frontend.Variable
}

type lessEntry struct {
	index frontend.Variable
	bound frontend.Variable
	bit   frontend.Variable
}

// Masks is the index-mask engine. It produces equality masks, dummy masks and
// bound checks for (possibly secret) indices, and caches results keyed by the
// queried value so that repeated queries against the same array do not emit
// duplicate assertions.
//
// A Masks instance is owned by a single array and must never be shared between
// two logically distinct arrays: a cached mask is only valid for the index
// space it was emitted in. Structural transforms that preserve slot positions
// (Map) thread the cache through; all others start fresh.
type Masks struct {
	api    frontend.API
	masks  []maskEntry
	ranges []rangeEntry
	less   []lessEntry
}

// NewMasks returns an empty mask engine bound to api.
func NewMasks(api frontend.API) *Masks {
	return &Masks{api: api}
}

// Query returns the n-slot equality mask of index: entry j is 1 exactly when
// index == j. The mask is witnessed by a hint and constrained one-hot, which
// also proves index ∈ [0, n). The result is cached per (index, n).
func (m *Masks) Query(index frontend.Variable, n int) []frontend.Variable {
	for _, e := range m.masks {
		if len(e.mask) == n && sameVariable(m.api, e.index, index) {
			return e.mask
		}
	}
	mask, err := m.api.Compiler().NewHint(indexMaskHint, n, index)
	if err != nil {
		panic(fmt.Sprintf("index mask hint: %v", err))
	}
	sum := frontend.Variable(0)
	for j := range mask {
		// mask[j] * (index - j) == 0
		m.api.AssertIsEqual(m.api.Mul(mask[j], m.api.Sub(index, j)), 0)
		sum = m.api.Add(sum, mask[j])
	}
	// exactly one entry set; together with the per-entry constraint this
	// proves index ∈ [0, n)
	m.api.AssertIsEqual(sum, 1)
	m.masks = append(m.masks, maskEntry{index: index, mask: mask})
	return mask
}

// Dummy returns the dummy mask of a length value over n slots: entry j is 1
// exactly when j >= length. It is the prefix-OR of the equality mask of length
// over n+1 slots, so it additionally proves length ∈ [0, n].
func (m *Masks) Dummy(length frontend.Variable, n int) []frontend.Variable {
	eq := m.Query(length, n+1)
	return m.prefixOr(eq)[:n]
}

// prefixOr is a prefix scan over a one-hot vector: out[j] = in[0] ∨ ... ∨
// in[j]. For one-hot input the OR degenerates to a running sum, which costs
// nothing beyond linear combinations.
func (m *Masks) prefixOr(in []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, len(in))
	acc := frontend.Variable(0)
	for j := range in {
		acc = m.api.Add(acc, in[j])
		out[j] = acc
	}
	return out
}

// AssertInRange proves 0 <= index <= bound with two 16-bit range checks, of
// index and of bound-index: if either side were out of range, the wraparound
// of the field would push the other outside 16 bits. Valid as long as index
// and bound are a priori known to fit in 32 bits. Cached per (index, bound).
func (m *Masks) AssertInRange(index, bound frontend.Variable) {
	for _, e := range m.ranges {
		if sameVariable(m.api, e.index, index) && sameVariable(m.api, e.bound, bound) {
			return
		}
	}
	bits.ToBinary(m.api, index, bits.WithNbDigits(rangeBits))
	bits.ToBinary(m.api, m.api.Sub(bound, index), bits.WithNbDigits(rangeBits))
	m.ranges = append(m.ranges, rangeEntry{index: index, bound: bound})
}

// IsLess returns a boolean b = (index < bound). Unlike [Masks.AssertInRange]
// it never fails for in-representation inputs; it is the building block for
// optional results. b is witnessed, asserted boolean, and bound to the inputs
// by one 16-bit check of index + b*2^16 - bound. Requires index, bound < 2^16.
// Cached per (index, bound).
func (m *Masks) IsLess(index, bound frontend.Variable) frontend.Variable {
	for _, e := range m.less {
		if sameVariable(m.api, e.index, index) && sameVariable(m.api, e.bound, bound) {
			return e.bit
		}
	}
	res, err := m.api.Compiler().NewHint(isLessHint, 1, index, bound)
	if err != nil {
		panic(fmt.Sprintf("is-less hint: %v", err))
	}
	b := res[0]
	m.api.AssertIsBoolean(b)
	// b = 1: index + 2^16 - bound fits 16 bits iff index < bound
	// b = 0: index - bound fits 16 bits iff index >= bound
	shifted := m.api.Sub(m.api.Add(index, m.api.Mul(b, 1<<rangeBits)), bound)
	bits.ToBinary(m.api, shifted, bits.WithNbDigits(rangeBits))
	m.less = append(m.less, lessEntry{index: index, bound: bound, bit: b})
	return b
}

// sameVariable reports whether two index variables are known to denote the
// same query. Compile-time constants compare by value, everything else by
// representation. A false negative only costs duplicate (sound) assertions.
func sameVariable(api frontend.API, a, b frontend.Variable) bool {
	av, aConst := api.Compiler().ConstantValue(a)
	bv, bConst := api.Compiler().ConstantValue(b)
	if aConst && bConst {
		return av.Cmp(bv) == 0
	}
	if aConst != bConst {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// indexMaskHint witnesses the one-hot equality mask of the input index. It
// must be provided to the prover when a circuit uses [Masks.Query].
func indexMaskHint(_ *big.Int, inputs, results []*big.Int) error {
	index := inputs[0]
	for j := range results {
		if index.Cmp(big.NewInt(int64(j))) == 0 {
			results[j].SetUint64(1)
		} else {
			results[j].SetUint64(0)
		}
	}
	return nil
}

// isLessHint witnesses the output bit of [Masks.IsLess].
func isLessHint(_ *big.Int, inputs, results []*big.Int) error {
	if inputs[0].Cmp(inputs[1]) < 0 {
		results[0].SetUint64(1)
	} else {
		results[0].SetUint64(0)
	}
	return nil
}
