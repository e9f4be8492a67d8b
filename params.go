package poseidon

import "fmt"

// Spec fixes one Poseidon parameter set: state shape, round schedule and the
// gadget's input/output arity. Specs are plain comparable values; the
// instance-sharing layer keys its master registry on them.
type Spec struct {
	Width            int // state elements (t)
	Capacity         int // elements S-boxed during partial rounds (c)
	FullRounds       int // total full rounds (F), split around the partial block
	PartialRounds    int // partial rounds (P)
	NInputs          int
	NOutputs         int
	ConstrainOutputs bool // bind outputs to fresh variables
}

// Poseidon128 is the standard 128-bit parameterization t=6, c=1, F=8, P=57.
func Poseidon128(nInputs, nOutputs int) Spec {
	return Spec{
		Width:            6,
		Capacity:         1,
		FullRounds:       8,
		PartialRounds:    57,
		NInputs:          nInputs,
		NOutputs:         nOutputs,
		ConstrainOutputs: true,
	}
}

// Validate checks shape and schedule of the parameter set.
func (s Spec) Validate() error {
	if s.Width < 2 {
		return fmt.Errorf("poseidon: state width must be at least 2, got %d", s.Width)
	}
	if s.Capacity < 1 || s.Capacity > s.Width {
		return fmt.Errorf("poseidon: capacity %d out of range for width %d", s.Capacity, s.Width)
	}
	if s.FullRounds < 2 || s.FullRounds%2 != 0 {
		return fmt.Errorf("poseidon: full rounds must be even and at least 2, got %d", s.FullRounds)
	}
	if s.PartialRounds < 0 {
		return fmt.Errorf("poseidon: negative partial round count %d", s.PartialRounds)
	}
	if s.NInputs < 1 || s.NInputs > s.Width {
		return fmt.Errorf("poseidon: %d inputs out of range for width %d", s.NInputs, s.Width)
	}
	if s.NOutputs < 1 || s.NOutputs > s.Width {
		return fmt.Errorf("poseidon: %d outputs out of range for width %d", s.NOutputs, s.Width)
	}
	return nil
}

func (s Spec) totalRounds() int { return s.FullRounds + s.PartialRounds }
