// Package arith provides hinted integer division and mixed-radix index
// splitting over the native field.
//
// The quotient/remainder relationship is not automatic over finite-field
// arithmetic: both outputs are witnessed by a hint and then bound to the
// inputs by an exact recomposition plus small range checks.
package arith

import (
	"fmt"
	"math/big"

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
	return []solver.Hint{divModHint}
}

// rangeBits bounds the quotient and remainder. Dividends above 2^16 are not
// supported; this matches the capacity bound of the array packages.
const rangeBits = 16

// DivMod returns q, r with v == q*d + r and 0 <= r < d, for a compile-time
// constant divisor d. Requires v < 2^16.
func DivMod(api frontend.API, v frontend.Variable, d int) (q, r frontend.Variable) {
	if d <= 0 {
		panic("divisor must be positive")
	}
	res, err := api.Compiler().NewHint(divModHint, 2, v, d)
	if err != nil {
		panic(fmt.Sprintf("divmod hint: %v", err))
	}
	q, r = res[0], res[1]
	api.AssertIsEqual(v, api.Add(api.Mul(q, d), r))
	bits.ToBinary(api, q, bits.WithNbDigits(rangeBits))
	bits.ToBinary(api, r, bits.WithNbDigits(rangeBits))
	// r <= d-1
	bits.ToBinary(api, api.Sub(d-1, r), bits.WithNbDigits(rangeBits))
	return q, r
}

// SplitRadix decomposes v positionally: for radices [r0, r1, ...] it returns
// digits [d0, d1, ..., q] with
//
//	v == d0 + r0*(d1 + r1*(... + rk*q))
//
// and each digit di ∈ [0, ri). The trailing quotient q is range checked to 16
// bits but otherwise unbounded; callers bound it through the index masks they
// feed it to.
func SplitRadix(api frontend.API, v frontend.Variable, radices ...int) []frontend.Variable {
	out := make([]frontend.Variable, 0, len(radices)+1)
	rest := v
	for _, rad := range radices {
		q, r := DivMod(api, rest, rad)
		out = append(out, r)
		rest = q
	}
	return append(out, rest)
}

// divModHint witnesses the quotient and remainder of the integer division of
// its two inputs. It must be provided to the prover when a circuit uses
// [DivMod].
func divModHint(_ *big.Int, inputs, results []*big.Int) error {
	if inputs[1].Sign() == 0 {
		return fmt.Errorf("division by zero")
	}
	results[0].DivMod(inputs[0], inputs[1], results[1])
	return nil
}
