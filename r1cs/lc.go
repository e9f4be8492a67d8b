// Package r1cs implements a minimal rank-1 constraint system board: variable
// allocation, linear combinations with bn254 scalar coefficients, A*B=C
// constraints and an assignment store.
//
// Constraints built against one board can be replayed on another board
// through an index Translator without duplicating their terms; see
// Board.AddSharedConstraint.
package r1cs

import (
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Variable is a wire index on a Board. Index 0 is the constant-one wire.
type Variable uint32

// One is the constant-one wire, present on every board.
const One Variable = 0

// Term is a wire scaled by a field coefficient.
type Term struct {
	Variable Variable
	Coeff    fr.Element
}

// LinearCombination is a sum of terms.
type LinearCombination []Term

// FromVariable returns the combination 1*v.
func FromVariable(v Variable) LinearCombination {
	var one fr.Element
	one.SetOne()
	return LinearCombination{{Variable: v, Coeff: one}}
}

// FromVariables lifts a variable array into single-term combinations.
func FromVariables(vs []Variable) []LinearCombination {
	lcs := make([]LinearCombination, len(vs))
	for i, v := range vs {
		lcs[i] = FromVariable(v)
	}
	return lcs
}

// FromConstant returns the combination c*One.
func FromConstant(c fr.Element) LinearCombination {
	return LinearCombination{{Variable: One, Coeff: c}}
}

// AddTerm appends coeff*v to the combination.
func (lc LinearCombination) AddTerm(v Variable, coeff fr.Element) LinearCombination {
	return append(lc, Term{Variable: v, Coeff: coeff})
}

// AddConstant appends c*One to the combination.
func (lc LinearCombination) AddConstant(c fr.Element) LinearCombination {
	return lc.AddTerm(One, c)
}

// Add returns the sum of two combinations as a fresh combination. Terms
// referencing the same wire are merged, so a chain of additions stays bounded
// by the number of distinct wires instead of growing with every step.
func (lc LinearCombination) Add(other LinearCombination) LinearCombination {
	out := make(LinearCombination, 0, len(lc)+len(other))
	out = append(out, lc...)
	out = append(out, other...)
	return out.merge()
}

// merge sorts the terms by wire and sums the coefficients of each wire,
// dropping terms that cancel to zero. The receiver is consumed.
func (lc LinearCombination) merge() LinearCombination {
	if len(lc) < 2 {
		return lc
	}
	sort.Slice(lc, func(i, j int) bool { return lc[i].Variable < lc[j].Variable })
	out := lc[:1]
	for _, t := range lc[1:] {
		last := &out[len(out)-1]
		switch {
		case t.Variable == last.Variable:
			last.Coeff.Add(&last.Coeff, &t.Coeff)
		case last.Coeff.IsZero():
			*last = t
		default:
			out = append(out, t)
		}
	}
	if out[len(out)-1].Coeff.IsZero() {
		out = out[:len(out)-1]
	}
	return out
}

// Scale returns k*lc as a fresh combination.
func (lc LinearCombination) Scale(k fr.Element) LinearCombination {
	out := make(LinearCombination, len(lc))
	for i, t := range lc {
		out[i].Variable = t.Variable
		out[i].Coeff.Mul(&t.Coeff, &k)
	}
	return out
}
