package poseidon

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

const MaxMultiHashInputs = 256

// MultiHash hashes an arbitrary-length list of variables by chunking with the
// highest rate (5) and folding until a single digest remains, mirroring the
// native MultiHash. Supports up to MaxMultiHashInputs inputs.
func MultiHash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	var zero frontend.Variable
	if len(inputs) == 0 {
		return zero, fmt.Errorf("poseidon: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		return zero, fmt.Errorf("poseidon: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}

	current := make([]frontend.Variable, len(inputs))
	copy(current, inputs)

	for len(current) > maxRate {
		next := make([]frontend.Variable, 0, (len(current)+maxRate-1)/maxRate)
		for i := 0; i < len(current); i += maxRate {
			end := min(i+maxRate, len(current))
			h, err := Hash(api, current[i:end]...)
			if err != nil {
				return zero, err
			}
			next = append(next, h)
		}
		current = next
	}

	return Hash(api, current...)
}
