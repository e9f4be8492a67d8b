// Package poseidon exposes the Poseidon128 permutation as a gnark gadget.
// Constants and matrix are shared with the native implementation, so circuit
// outputs match poseidon.Hash for the same inputs.
package poseidon

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	core "github.com/CortexFoundation/poseidon"
)

const (
	width         = 6
	capacity      = 1
	fullRounds    = 8
	partialRounds = 57
	maxRate       = width - capacity
)

// Hash computes the Poseidon128 hash of 1 to 5 variables inside a circuit.
// Missing state slots enter the first round as zero, as in the native
// permutation.
func Hash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) < 1 || len(inputs) > maxRate {
		var zero frontend.Variable
		return zero, fmt.Errorf("poseidon: need between 1 and %d inputs, got %d", maxRate, len(inputs))
	}

	c, m := core.RoundParams(width, fullRounds+partialRounds)

	state := make([]frontend.Variable, width)
	for i := range state {
		if i < len(inputs) {
			state[i] = inputs[i]
		} else {
			state[i] = 0
		}
	}

	rF := fullRounds / 2
	total := fullRounds + partialRounds
	for r := 0; r < total; r++ {
		for j := range state {
			state[j] = api.Add(state[j], c[r])
		}
		nSBox := width
		if r >= rF && r < rF+partialRounds {
			nSBox = capacity
		}
		for j := 0; j < nSBox; j++ {
			state[j] = exp5(api, state[j])
		}
		if r == total-1 {
			// the last round squeezes the state into the digest
			return mixRow(api, state, m, 0), nil
		}
		state = mix(api, state, m)
	}
	panic("poseidon: unreachable")
}

func mix(api frontend.API, state []frontend.Variable, m []fr.Element) []frontend.Variable {
	out := make([]frontend.Variable, len(state))
	for i := range out {
		out[i] = mixRow(api, state, m, i)
	}
	return out
}

func mixRow(api frontend.API, state []frontend.Variable, m []fr.Element, row int) frontend.Variable {
	offset := row * len(state)
	acc := api.Mul(state[0], m[offset])
	for j := 1; j < len(state); j++ {
		acc = api.Add(acc, api.Mul(state[j], m[offset+j]))
	}
	return acc
}

func exp5(api frontend.API, x frontend.Variable) frontend.Variable {
	x2 := api.Mul(x, x)
	x4 := api.Mul(x2, x2)
	return api.Mul(x4, x)
}
