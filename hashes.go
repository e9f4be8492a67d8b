package poseidon

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func Hash1(v fr.Element) (fr.Element, error) {
	return Hash(v)
}

func Hash2(a, b fr.Element) (fr.Element, error) {
	return Hash(a, b)
}

func Hash3(a, b, c fr.Element) (fr.Element, error) {
	return Hash(a, b, c)
}

func Hash4(a, b, c, d fr.Element) (fr.Element, error) {
	return Hash(a, b, c, d)
}

func Hash5(a, b, c, d, e fr.Element) (fr.Element, error) {
	return Hash(a, b, c, d, e)
}

// MultiHash hashes an arbitrary-length list of field elements by chunking
// with the highest rate (5) and folding until a single digest remains.
// Supports up to MaxMultiHashInputs inputs.
func MultiHash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) == 0 {
		return fr.Element{}, fmt.Errorf("poseidon: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		return fr.Element{}, fmt.Errorf("poseidon: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}

	current := make([]fr.Element, len(inputs))
	copy(current, inputs)

	for len(current) > maxRate {
		next := make([]fr.Element, 0, (len(current)+maxRate-1)/maxRate)
		for i := 0; i < len(current); i += maxRate {
			end := min(i+maxRate, len(current))
			h, err := Hash(current[i:end]...)
			if err != nil {
				return fr.Element{}, err
			}
			next = append(next, h)
		}
		current = next
	}

	return Hash(current...)
}
