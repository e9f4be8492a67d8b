package poseidon

import (
	"fmt"
	"sync"

	"github.com/CortexFoundation/poseidon/logger"
	"github.com/CortexFoundation/poseidon/r1cs"
)

// master is the canonical permutation circuit of one parameter set, built
// against its own scratch board. Its constraints reference wire positions,
// never instance values, so a single master backs every instance of the set.
// The board doubles as shared witness scratch; see Gadget.GenerateWitness for
// the serialization contract.
type master struct {
	board    *r1cs.Board
	perm     *Permutation
	inputs   []r1cs.Variable
	swapOnce sync.Once
}

var (
	mastersMu sync.Mutex
	masters   = make(map[Spec]*master)
)

// masterFor returns the master for spec, building and constraining it on
// first request. The master lives for the rest of the process.
func masterFor(spec Spec) (*master, error) {
	mastersMu.Lock()
	defer mastersMu.Unlock()
	if m, ok := masters[spec]; ok {
		return m, nil
	}

	board := r1cs.NewBoard()
	inputs := board.AllocateArray(spec.NInputs, "input")
	perm, err := NewPermutation(board, spec, inputs, "master")
	if err != nil {
		return nil, err
	}
	perm.GenerateConstraints()

	m := &master{board: board, perm: perm, inputs: inputs}
	masters[spec] = m
	log := logger.Logger()
	log.Debug().
		Int("width", spec.Width).
		Int("fullRounds", spec.FullRounds).
		Int("partialRounds", spec.PartialRounds).
		Int("constraints", len(board.Constraints())).
		Int("variables", board.NumVariables()).
		Msg("built poseidon master circuit")
	return m, nil
}

// Gadget is one use of the permutation inside a caller's circuit. It reuses
// the master's constraint set through an index translation instead of
// re-deriving the round chain: master wire 0 stays the constant-one wire,
// master wires 1..nInputs become the caller's input variables, and every
// other master wire gets a one-for-one shadow variable above a fixed base
// offset.
type Gadget struct {
	board   *r1cs.Board
	spec    Spec
	master  *master
	inputs  []r1cs.Variable
	offset  r1cs.Variable // index of the first shadow variable
	shadows int
}

// New creates an instance gadget over the caller's input variables, shadow
// allocating on board exactly as many variables as the master uses beyond its
// own inputs.
func New(board *r1cs.Board, spec Spec, inputs []r1cs.Variable, label string) (*Gadget, error) {
	if len(inputs) != spec.NInputs {
		return nil, fmt.Errorf("poseidon: spec wants %d inputs, got %d", spec.NInputs, len(inputs))
	}
	if !spec.ConstrainOutputs {
		// without output binding the master has no output wires to shadow
		return nil, fmt.Errorf("poseidon: instance sharing requires constrained outputs")
	}
	m, err := masterFor(spec)
	if err != nil {
		return nil, err
	}
	g := &Gadget{
		board:   board,
		spec:    spec,
		master:  m,
		inputs:  inputs,
		offset:  r1cs.Variable(board.NumVariables() + 1),
		shadows: m.board.NumVariables() - len(inputs),
	}
	board.AllocateArray(g.shadows, label+".shadow")
	return g, nil
}

// Spec returns the instance's parameter set.
func (g *Gadget) Spec() Spec { return g.spec }

// Result is the instance's first output variable.
func (g *Gadget) Result() r1cs.Variable { return g.Outputs()[0] }

// Outputs are the instance variables shadowing the master's output variables.
func (g *Gadget) Outputs() []r1cs.Variable {
	outs := g.master.perm.Outputs()
	vars := make([]r1cs.Variable, len(outs))
	for i, v := range outs {
		vars[i] = g.Translate(v)
	}
	return vars
}

// GenerateConstraints copies the master's constraints onto the caller's board
// as shared constraints reading through this instance's translation. No term
// is rewritten; lookups translate lazily.
func (g *Gadget) GenerateConstraints() {
	for _, c := range g.master.board.Constraints() {
		g.board.AddSharedConstraint(c.(*r1cs.R1C), g)
	}
}

// GenerateWitness writes the instance's live input values into the master's
// input slots, runs the master's witness routine, and copies every computed
// value back into the shadow variables.
//
// The master's board is shared mutable scratch: witness generation for two
// instances of the same parameter set must be serialized by the caller.
func (g *Gadget) GenerateWitness() {
	for i, in := range g.inputs {
		g.master.board.SetValue(r1cs.Variable(1+i), g.board.Value(in))
	}
	g.master.perm.GenerateWitness()
	for i := 0; i < g.shadows; i++ {
		v := g.master.board.Value(r1cs.Variable(1 + len(g.inputs) + i))
		g.board.SetValue(g.offset+r1cs.Variable(i), v)
	}
}

// Translate maps a master wire index to this instance's wire index.
func (g *Gadget) Translate(v r1cs.Variable) r1cs.Variable {
	switch {
	case v == r1cs.One:
		return r1cs.One
	case int(v) <= len(g.inputs):
		return g.inputs[v-1]
	default:
		return g.offset + v - r1cs.Variable(1+len(g.inputs))
	}
}

// SwapAB swaps the multiplicative operands of every master constraint. The
// downstream proof system may require this operand convention; because the
// constraint set is shared, the swap applies to all instances of the
// parameter set at once, and repeated requests are no-ops.
func (g *Gadget) SwapAB() {
	g.master.swapOnce.Do(func() {
		for _, c := range g.master.board.Constraints() {
			c.SwapAB()
		}
	})
}
