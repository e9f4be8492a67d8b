package poseidon

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/CortexFoundation/poseidon/r1cs"
)

// Outputs of a round are independent; fan out once a round is wide enough for
// the goroutine bookkeeping to pay off.
const parallelOutputs = 16

// roundShape describes one round of the permutation: how wide the state is,
// how many elements pass through an S-box, how many state positions carry a
// live value, and how many outputs to produce. The composer derives first,
// full, partial and last rounds from the same construction by varying the
// shape.
type roundShape struct {
	width    int
	nSBox    int
	nInputs  int
	nOutputs int
}

func (s roundShape) validate() {
	if s.nSBox > s.width || s.nInputs > s.width || s.nOutputs > s.width {
		panic(fmt.Sprintf("poseidon: round shape %+v exceeds state width", s))
	}
}

// round arithmetizes one permutation round: add the round constant, S-box the
// first nSBox state elements, mix through the matrix rows. State positions
// that are neither S-boxed nor live inputs contribute only C_i, which is
// folded into a single constant term per output instead of materializing the
// full post-addition state.
type round struct {
	board   *r1cs.Board
	c       fr.Element   // round constant C_i
	m       []fr.Element // t*t mixing matrix, row-major
	shape   roundShape
	state   []r1cs.LinearCombination
	sboxes  []*fifthPower
	outputs []r1cs.LinearCombination
}

func newRound(board *r1cs.Board, c fr.Element, m []fr.Element, state []r1cs.LinearCombination, shape roundShape, label string) *round {
	shape.validate()
	r := &round{board: board, c: c, m: m, shape: shape, state: state}
	r.sboxes = make([]*fifthPower, shape.nSBox)
	for h := range r.sboxes {
		r.sboxes[h] = newFifthPower(board, fmt.Sprintf("%s.sbox[%d]", label, h))
	}
	r.outputs = r.makeOutputs()
	return r
}

func (r *round) makeOutputs() []r1cs.LinearCombination {
	outputs := make([]r1cs.LinearCombination, r.shape.nOutputs)
	if r.shape.nOutputs >= parallelOutputs {
		var g errgroup.Group
		for o := range outputs {
			g.Go(func() error {
				outputs[o] = r.makeOutput(o)
				return nil
			})
		}
		_ = g.Wait()
		return outputs
	}
	for o := range outputs {
		outputs[o] = r.makeOutput(o)
	}
	return outputs
}

// makeOutput builds the output combination for matrix row o: the S-box
// results and live inputs weighted by the row, plus one folded constant term
// covering every remaining position.
func (r *round) makeOutput(o int) r1cs.LinearCombination {
	offset := o * r.shape.width

	var constant, term fr.Element
	for j := r.shape.nSBox; j < r.shape.width; j++ {
		term.Mul(&r.c, &r.m[offset+j])
		constant.Add(&constant, &term)
	}

	lc := make(r1cs.LinearCombination, 0, r.shape.width)
	if r.shape.nSBox < r.shape.width {
		lc = lc.AddConstant(constant)
	}
	for s, sbox := range r.sboxes {
		lc = lc.AddTerm(sbox.result(), r.m[offset+s])
	}
	for k := r.shape.nSBox; k < r.shape.nInputs; k++ {
		lc = lc.Add(r.state[k].Scale(r.m[offset+k]))
	}
	return lc
}

// generateConstraints binds each S-box to state[h] + C_i, or to the bare
// constant for capacity slots beyond the live inputs.
func (r *round) generateConstraints() {
	cTerm := r1cs.FromConstant(r.c)
	for h, sbox := range r.sboxes {
		if h < r.shape.nInputs {
			sbox.generateConstraints(r.state[h].Add(cTerm))
		} else {
			sbox.generateConstraints(cTerm)
		}
	}
}

func (r *round) generateWitness() {
	for h, sbox := range r.sboxes {
		value := r.c
		if h < r.shape.nInputs {
			in := r.board.Eval(r.state[h])
			value.Add(&value, &in)
		}
		sbox.generateWitness(value)
	}
}
