// Package poseidon arithmetizes the Poseidon permutation as an R1CS gadget
// over the bn254 scalar field, with blake2b-derived round constants and MDS
// matrix (ethsnarks parameterization).
//
// The package offers three layers: native evaluation over field values
// (Hash, Permute), a direct circuit composer (Permutation), and the
// instance-sharing Gadget, which builds one master circuit per parameter set
// and lets every use inside a circuit reuse its constraints through an index
// translation.
package poseidon

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	maxRate            = 5
	MaxMultiHashInputs = 256
)

// Hash evaluates the Poseidon128 permutation directly over field values,
// outside any circuit. It accepts 1 to 5 inputs and returns the one-element
// digest; the result equals the value an in-circuit gadget of the same arity
// constrains its output variable to.
func Hash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) < 1 || len(inputs) > maxRate {
		return fr.Element{}, fmt.Errorf("poseidon: need between 1 and %d inputs, got %d", maxRate, len(inputs))
	}
	out, err := Permute(Poseidon128(len(inputs), 1), inputs)
	if err != nil {
		return fr.Element{}, err
	}
	return out[0], nil
}

// Permute runs the permutation of spec over concrete values, mirroring the
// witness algorithm round for round.
func Permute(spec Spec, inputs []fr.Element) ([]fr.Element, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) != spec.NInputs {
		return nil, fmt.Errorf("poseidon: spec wants %d inputs, got %d", spec.NInputs, len(inputs))
	}
	rc := sharedConstants(spec.Width, spec.totalRounds())
	state := inputs
	for i, shape := range roundSchedule(spec) {
		state = evalRound(rc.c[i], rc.m, state, shape)
	}
	return state, nil
}

// evalRound evaluates one round over values with the same selective S-box and
// constant folding the round gadget arithmetizes: positions beyond the S-box
// range contribute state[k] + C_i (or C_i alone when absent) to the mix.
func evalRound(c fr.Element, m []fr.Element, state []fr.Element, shape roundShape) []fr.Element {
	sboxed := make([]fr.Element, shape.nSBox)
	for h := range sboxed {
		v := c
		if h < shape.nInputs {
			v.Add(&v, &state[h])
		}
		sboxed[h] = pow5(v)
	}

	out := make([]fr.Element, shape.nOutputs)
	for o := range out {
		offset := o * shape.width
		var acc, term fr.Element
		for j := shape.nSBox; j < shape.width; j++ {
			term.Mul(&c, &m[offset+j])
			acc.Add(&acc, &term)
		}
		for s := range sboxed {
			term.Mul(&sboxed[s], &m[offset+s])
			acc.Add(&acc, &term)
		}
		for k := shape.nSBox; k < shape.nInputs; k++ {
			term.Mul(&state[k], &m[offset+k])
			acc.Add(&acc, &term)
		}
		out[o] = acc
	}
	return out
}

func pow5(x fr.Element) fr.Element {
	var x2, x5 fr.Element
	x2.Mul(&x, &x)
	x5.Mul(&x2, &x2)
	x5.Mul(&x5, &x)
	return x5
}
