package poseidon

import (
	"fmt"

	"github.com/CortexFoundation/poseidon/r1cs"
)

// Permutation composes the fixed round schedule into a full Poseidon
// permutation on a board: one first round, full rounds, the partial block,
// full rounds again, and a last round narrowed to the output arity. Each
// round's outputs feed the next round unchanged.
type Permutation struct {
	board      *r1cs.Board
	spec       Spec
	constants  *roundConstants
	rounds     []*round
	outputVars []r1cs.Variable
}

// NewPermutation builds the round chain over the given input variables. When
// spec.ConstrainOutputs is set, fresh output variables are allocated and each
// is bound to the matching last-round combination during constraint
// generation.
func NewPermutation(board *r1cs.Board, spec Spec, inputs []r1cs.Variable, label string) (*Permutation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) != spec.NInputs {
		return nil, fmt.Errorf("poseidon: spec wants %d inputs, got %d", spec.NInputs, len(inputs))
	}

	p := &Permutation{
		board:     board,
		spec:      spec,
		constants: sharedConstants(spec.Width, spec.totalRounds()),
	}

	state := r1cs.FromVariables(inputs)
	p.rounds = make([]*round, 0, spec.totalRounds())
	for i, shape := range roundSchedule(spec) {
		r := newRound(board, p.constants.c[i], p.constants.m, state, shape, fmt.Sprintf("%s.round[%d]", label, i))
		p.rounds = append(p.rounds, r)
		state = r.outputs
	}

	if spec.ConstrainOutputs {
		p.outputVars = board.AllocateArray(spec.NOutputs, label+".output")
	}
	return p, nil
}

// roundSchedule lays out the shapes of all F+P rounds in execution order.
// Round 0 ingests the nInputs raw inputs and expands them to width t; the
// last round squeezes the state into nOutputs elements.
func roundSchedule(spec Spec) []roundShape {
	t := spec.Width
	total := spec.totalRounds()
	partialBegin := spec.FullRounds / 2
	partialEnd := partialBegin + spec.PartialRounds

	shapes := make([]roundShape, total)
	for i := range shapes {
		switch {
		case i == 0:
			shapes[i] = roundShape{width: t, nSBox: t, nInputs: spec.NInputs, nOutputs: t}
		case i == total-1:
			shapes[i] = roundShape{width: t, nSBox: t, nInputs: t, nOutputs: spec.NOutputs}
		case i >= partialBegin && i < partialEnd:
			shapes[i] = roundShape{width: t, nSBox: spec.Capacity, nInputs: t, nOutputs: t}
		default:
			shapes[i] = roundShape{width: t, nSBox: t, nInputs: t, nOutputs: t}
		}
	}
	return shapes
}

// Outputs returns the constrained output variables, or nil when the
// permutation was built without output binding.
func (p *Permutation) Outputs() []r1cs.Variable { return p.outputVars }

// OutputCombinations returns the last round's raw output combinations.
func (p *Permutation) OutputCombinations() []r1cs.LinearCombination {
	return p.rounds[len(p.rounds)-1].outputs
}

// GenerateConstraints walks the round chain in schedule order and, when
// configured, binds each output combination to its output variable.
func (p *Permutation) GenerateConstraints() {
	for _, r := range p.rounds {
		r.generateConstraints()
	}
	if p.spec.ConstrainOutputs {
		last := p.rounds[len(p.rounds)-1]
		for i, lc := range last.outputs {
			p.board.AddConstraint(lc, r1cs.FromVariable(r1cs.One), r1cs.FromVariable(p.outputVars[i]),
				fmt.Sprintf("output[%d] = round[%d].output[%d]", i, len(p.rounds)-1, i))
		}
	}
}

// GenerateWitness computes every S-box assignment round by round and fills
// the output variables.
func (p *Permutation) GenerateWitness() {
	for _, r := range p.rounds {
		r.generateWitness()
	}
	if p.spec.ConstrainOutputs {
		last := p.rounds[len(p.rounds)-1]
		for i, lc := range last.outputs {
			p.board.SetValue(p.outputVars[i], p.board.Eval(lc))
		}
	}
}
