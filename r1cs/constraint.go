package r1cs

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Translator remaps the wire indices of a constraint built against another
// board. SwapAB requests on a translated constraint are routed through the
// rule as well, so an owner sharing one constraint set across many copies can
// apply the swap exactly once for all of them.
type Translator interface {
	Translate(Variable) Variable
	SwapAB()
}

// Constraint is a stored rank-1 constraint: either an owned R1C or a shared
// R1C read through a Translator.
type Constraint interface {
	// Satisfied evaluates the constraint under the board's current assignment.
	Satisfied(b *Board) error
	// SwapAB swaps the two multiplicative operands.
	SwapAB()
	Label() string
}

// R1C is an owned constraint A * B = C.
type R1C struct {
	A, B, C    LinearCombination
	Annotation string
}

func (c *R1C) Label() string { return c.Annotation }

// SwapAB swaps the multiplicative operands in place.
func (c *R1C) SwapAB() { c.A, c.B = c.B, c.A }

func (c *R1C) Satisfied(b *Board) error { return satisfied(c, b, nil) }

// translated is a shared constraint plus the index translation of one copy.
// Term lookups go through the rule at evaluation time; no term is rewritten.
type translated struct {
	inner *R1C
	rule  Translator
}

func (c translated) Label() string { return c.inner.Annotation }

func (c translated) SwapAB() { c.rule.SwapAB() }

func (c translated) Satisfied(b *Board) error { return satisfied(c.inner, b, c.rule) }

func satisfied(c *R1C, b *Board, rule Translator) error {
	a := b.eval(c.A, rule)
	bb := b.eval(c.B, rule)
	cc := b.eval(c.C, rule)
	var ab fr.Element
	ab.Mul(&a, &bb)
	if !ab.Equal(&cc) {
		return fmt.Errorf("r1cs: constraint %q not satisfied: %s * %s != %s",
			c.Annotation, a.String(), bb.String(), cc.String())
	}
	return nil
}
