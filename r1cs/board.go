package r1cs

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Board holds allocated wires, their current assignment and the constraints
// over them. Wire 0 always carries the value one.
type Board struct {
	values      []fr.Element
	labels      []string
	constraints []Constraint
}

// NewBoard returns an empty board with the constant-one wire set.
func NewBoard() *Board {
	b := &Board{
		values: make([]fr.Element, 1),
		labels: []string{"ONE"},
	}
	b.values[0].SetOne()
	return b
}

// Allocate reserves a fresh wire with a debug label.
func (b *Board) Allocate(label string) Variable {
	v := Variable(len(b.values))
	b.values = append(b.values, fr.Element{})
	b.labels = append(b.labels, label)
	return v
}

// AllocateArray reserves n consecutive fresh wires labeled prefix[i].
func (b *Board) AllocateArray(n int, prefix string) []Variable {
	vars := make([]Variable, n)
	for i := range vars {
		vars[i] = b.Allocate(fmt.Sprintf("%s[%d]", prefix, i))
	}
	return vars
}

// NumVariables reports the number of allocated wires, not counting the
// constant-one wire.
func (b *Board) NumVariables() int { return len(b.values) - 1 }

// AddConstraint stores the owned constraint a * bb = c.
func (b *Board) AddConstraint(a, bb, c LinearCombination, label string) {
	b.constraints = append(b.constraints, &R1C{A: a, B: bb, C: c, Annotation: label})
}

// AddSharedConstraint stores a constraint owned by another board, read
// through the given translation rule whenever its terms are consulted.
func (b *Board) AddSharedConstraint(inner *R1C, rule Translator) {
	b.constraints = append(b.constraints, translated{inner: inner, rule: rule})
}

// Constraints returns the stored constraints.
func (b *Board) Constraints() []Constraint { return b.constraints }

// Value reads the current assignment of v.
func (b *Board) Value(v Variable) fr.Element { return b.values[v] }

// SetValue writes the assignment of v.
func (b *Board) SetValue(v Variable, val fr.Element) { b.values[v] = val }

// Label returns the debug label of v.
func (b *Board) Label(v Variable) string { return b.labels[v] }

// Eval evaluates a linear combination under the current assignment.
func (b *Board) Eval(lc LinearCombination) fr.Element { return b.eval(lc, nil) }

func (b *Board) eval(lc LinearCombination, rule Translator) fr.Element {
	var acc, term fr.Element
	for _, t := range lc {
		w := t.Variable
		if rule != nil {
			w = rule.Translate(w)
		}
		v := b.values[w]
		term.Mul(&t.Coeff, &v)
		acc.Add(&acc, &term)
	}
	return acc
}

// Satisfied checks every stored constraint under the current assignment and
// returns the first violation.
func (b *Board) Satisfied() error {
	for _, c := range b.constraints {
		if err := c.Satisfied(b); err != nil {
			return err
		}
	}
	return nil
}
