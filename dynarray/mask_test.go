package dynarray

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

type maskQueryCircuit struct {
	Index frontend.Variable
	Hot   [8]frontend.Variable
}

func (c *maskQueryCircuit) Define(api frontend.API) error {
	m := NewMasks(api)
	mask := m.Query(c.Index, 8)
	for i := range c.Hot {
		api.AssertIsEqual(mask[i], c.Hot[i])
	}
	// a repeated query must return the cached mask
	again := m.Query(c.Index, 8)
	for i := range mask {
		api.AssertIsEqual(mask[i], again[i])
	}
	return nil
}

func TestMaskQuery(t *testing.T) {
	assert := test.NewAssert(t)
	for index := 0; index < 8; index++ {
		assert.Run(func(assert *test.Assert) {
			witness := &maskQueryCircuit{Index: index}
			for i := range witness.Hot {
				witness.Hot[i] = 0
			}
			witness.Hot[index] = 1
			assert.NoError(test.IsSolved(&maskQueryCircuit{}, witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("index=%d", index))
	}
}

func TestMaskQueryOutOfRange(t *testing.T) {
	assert := test.NewAssert(t)
	witness := &maskQueryCircuit{Index: 8}
	for i := range witness.Hot {
		witness.Hot[i] = 0
	}
	assert.Error(test.IsSolved(&maskQueryCircuit{}, witness, ecc.BN254.ScalarField()))
}

type dummyMaskCircuit struct {
	Length frontend.Variable
	Dummy  [5]frontend.Variable
}

func (c *dummyMaskCircuit) Define(api frontend.API) error {
	m := NewMasks(api)
	dummy := m.Dummy(c.Length, 5)
	for i := range c.Dummy {
		api.AssertIsEqual(dummy[i], c.Dummy[i])
	}
	return nil
}

func TestDummyMask(t *testing.T) {
	assert := test.NewAssert(t)
	for length := 0; length <= 5; length++ {
		assert.Run(func(assert *test.Assert) {
			witness := &dummyMaskCircuit{Length: length}
			for i := range witness.Dummy {
				if i >= length {
					witness.Dummy[i] = 1
				} else {
					witness.Dummy[i] = 0
				}
			}
			assert.NoError(test.IsSolved(&dummyMaskCircuit{}, witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("length=%d", length))
	}

	// length above the capacity has no valid dummy mask
	witness := &dummyMaskCircuit{Length: 6}
	for i := range witness.Dummy {
		witness.Dummy[i] = 1
	}
	assert.Error(test.IsSolved(&dummyMaskCircuit{}, witness, ecc.BN254.ScalarField()))
}

type isLessCircuit struct {
	A, B frontend.Variable
	Want frontend.Variable
}

func (c *isLessCircuit) Define(api frontend.API) error {
	m := NewMasks(api)
	api.AssertIsEqual(m.IsLess(c.A, c.B), c.Want)
	return nil
}

func TestIsLess(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct{ a, b, want int }{
		{0, 1, 1}, {1, 1, 0}, {2, 1, 0}, {0, 0, 0}, {17, 65535, 1}, {65535, 17, 0},
	} {
		assert.Run(func(assert *test.Assert) {
			assert.NoError(test.IsSolved(&isLessCircuit{}, &isLessCircuit{A: tc.a, B: tc.b, Want: tc.want}, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("%d<%d", tc.a, tc.b))
	}
}

type inRangeCircuit struct {
	Index frontend.Variable
	Bound frontend.Variable
}

func (c *inRangeCircuit) Define(api frontend.API) error {
	m := NewMasks(api)
	m.AssertInRange(c.Index, c.Bound)
	return nil
}

func TestAssertInRange(t *testing.T) {
	assert := test.NewAssert(t)
	assert.NoError(test.IsSolved(&inRangeCircuit{}, &inRangeCircuit{Index: 0, Bound: 0}, ecc.BN254.ScalarField()))
	assert.NoError(test.IsSolved(&inRangeCircuit{}, &inRangeCircuit{Index: 7, Bound: 7}, ecc.BN254.ScalarField()))
	assert.NoError(test.IsSolved(&inRangeCircuit{}, &inRangeCircuit{Index: 3, Bound: 1000}, ecc.BN254.ScalarField()))
	assert.Error(test.IsSolved(&inRangeCircuit{}, &inRangeCircuit{Index: 8, Bound: 7}, ecc.BN254.ScalarField()))
}
