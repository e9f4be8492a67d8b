package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/CortexFoundation/poseidon/r1cs"
)

// fifthPower raises a linear combination to the fifth power with the minimal
// three multiplication constraints: x2 = x*x, x4 = x2*x2, x5 = x4*x.
type fifthPower struct {
	board      *r1cs.Board
	x2, x4, x5 r1cs.Variable
}

func newFifthPower(board *r1cs.Board, label string) *fifthPower {
	return &fifthPower{
		board: board,
		x2:    board.Allocate(label + ".x2"),
		x4:    board.Allocate(label + ".x4"),
		x5:    board.Allocate(label + ".x5"),
	}
}

// result is the wire carrying x^5.
func (g *fifthPower) result() r1cs.Variable { return g.x5 }

func (g *fifthPower) generateConstraints(x r1cs.LinearCombination) {
	lx2 := r1cs.FromVariable(g.x2)
	lx4 := r1cs.FromVariable(g.x4)
	lx5 := r1cs.FromVariable(g.x5)
	g.board.AddConstraint(x, x, lx2, "x^2 = x * x")
	g.board.AddConstraint(lx2, lx2, lx4, "x^4 = x2 * x2")
	g.board.AddConstraint(x, lx4, lx5, "x^5 = x * x4")
}

func (g *fifthPower) generateWitness(x fr.Element) {
	var x2, x4, x5 fr.Element
	x2.Mul(&x, &x)
	x4.Mul(&x2, &x2)
	x5.Mul(&x4, &x)
	g.board.SetValue(g.x2, x2)
	g.board.SetValue(g.x4, x4)
	g.board.SetValue(g.x5, x5)
}
