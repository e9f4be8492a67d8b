package poseidon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/CortexFoundation/poseidon/r1cs"
)

func TestFifthPower(t *testing.T) {
	board := r1cs.NewBoard()
	x := board.Allocate("x")

	var val fr.Element
	if _, err := val.SetRandom(); err != nil {
		t.Fatal(err)
	}
	board.SetValue(x, val)

	g := newFifthPower(board, "sbox")
	g.generateConstraints(r1cs.FromVariable(x))
	g.generateWitness(val)

	// reference: five explicit multiplications
	want := val
	for i := 0; i < 4; i++ {
		want.Mul(&want, &val)
	}
	got := board.Value(g.result())
	if !got.Equal(&want) {
		t.Fatalf("x^5 mismatch: got %s, want %s", got.String(), want.String())
	}

	if n := len(board.Constraints()); n != 3 {
		t.Fatalf("expected 3 constraints, got %d", n)
	}
	if n := board.NumVariables(); n != 4 {
		t.Fatalf("expected 4 variables, got %d", n)
	}
	if err := board.Satisfied(); err != nil {
		t.Fatal(err)
	}
}

func TestFifthPowerOfCombination(t *testing.T) {
	// the gadget input is a linear combination, not necessarily one wire
	board := r1cs.NewBoard()
	a := board.Allocate("a")
	b := board.Allocate("b")

	var va, vb fr.Element
	va.SetUint64(7)
	vb.SetUint64(11)
	board.SetValue(a, va)
	board.SetValue(b, vb)

	lc := r1cs.FromVariable(a).Add(r1cs.FromVariable(b))
	g := newFifthPower(board, "sbox")
	g.generateConstraints(lc)
	g.generateWitness(board.Eval(lc))

	want := pow5(board.Eval(lc))
	got := board.Value(g.result())
	if !got.Equal(&want) {
		t.Fatalf("(a+b)^5 mismatch: got %s, want %s", got.String(), want.String())
	}
	if err := board.Satisfied(); err != nil {
		t.Fatal(err)
	}
}
