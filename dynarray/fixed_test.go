package dynarray

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

type fixedGetSetCircuit struct {
	Data     [6]frontend.Variable
	Index    frontend.Variable
	Value    frontend.Variable
	Expected frontend.Variable
}

func (c *fixedGetSetCircuit) Define(api frontend.API) error {
	a := NewFixed[frontend.Variable](api, VarDescriptor{}, c.Data[:])
	api.AssertIsEqual(a.Get(c.Index), c.Expected)
	a.Set(c.Index, c.Value)
	api.AssertIsEqual(a.Get(c.Index), c.Value)
	// neighbours are untouched
	api.AssertIsEqual(a.At(0), api.Select(api.IsZero(c.Index), c.Value, c.Data[0]))
	return nil
}

func TestFixedGetSet(t *testing.T) {
	assert := test.NewAssert(t)
	data := [6]frontend.Variable{10, 20, 30, 40, 50, 60}
	for index := 0; index < 6; index++ {
		assert.Run(func(assert *test.Assert) {
			witness := &fixedGetSetCircuit{Data: data, Index: index, Value: 99, Expected: data[index]}
			assert.NoError(test.IsSolved(&fixedGetSetCircuit{}, witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("index=%d", index))
	}
	// out of capacity
	witness := &fixedGetSetCircuit{Data: data, Index: 6, Value: 99, Expected: 0}
	assert.Error(test.IsSolved(&fixedGetSetCircuit{}, witness, ecc.BN254.ScalarField()))
}

type fixedCombinatorsCircuit struct {
	Data [6]frontend.Variable
}

func (c *fixedCombinatorsCircuit) Define(api frontend.API) error {
	a := NewFixed[frontend.Variable](api, VarDescriptor{}, c.Data[:])

	rev := a.Reverse()
	for i := 0; i < a.Len(); i++ {
		api.AssertIsEqual(rev.At(i), a.At(a.Len()-1-i))
	}

	sl := a.Slice(2, 5)
	for i := 0; i < 3; i++ {
		api.AssertIsEqual(sl.At(i), a.At(2+i))
	}

	chunks := ChunkFixed(a, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			api.AssertIsEqual(chunks.At(i)[j], a.At(3*i+j))
		}
	}

	doubled := MapFixed[frontend.Variable, frontend.Variable](a, VarDescriptor{}, func(v frontend.Variable) frontend.Variable {
		return api.Mul(v, 2)
	})
	sum := ReduceFixed(doubled, frontend.Variable(0), func(acc, v frontend.Variable) frontend.Variable {
		return api.Add(acc, v)
	})
	expected := frontend.Variable(0)
	for i := range c.Data {
		expected = api.Add(expected, api.Mul(c.Data[i], 2))
	}
	api.AssertIsEqual(sum, expected)
	return nil
}

func TestFixedCombinators(t *testing.T) {
	assert := test.NewAssert(t)
	witness := &fixedCombinatorsCircuit{Data: [6]frontend.Variable{1, 2, 3, 4, 5, 6}}
	assert.NoError(test.IsSolved(&fixedCombinatorsCircuit{}, witness, ecc.BN254.ScalarField()))
}
