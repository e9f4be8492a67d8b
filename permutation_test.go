package poseidon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/CortexFoundation/poseidon/r1cs"
)

func TestRoundSchedule(t *testing.T) {
	spec := Poseidon128(5, 1)
	shapes := roundSchedule(spec)
	if len(shapes) != 65 {
		t.Fatalf("expected 65 rounds, got %d", len(shapes))
	}
	if shapes[0] != (roundShape{width: 6, nSBox: 6, nInputs: 5, nOutputs: 6}) {
		t.Fatalf("unexpected first round shape %+v", shapes[0])
	}
	if shapes[64] != (roundShape{width: 6, nSBox: 6, nInputs: 6, nOutputs: 1}) {
		t.Fatalf("unexpected last round shape %+v", shapes[64])
	}
	partial := 0
	for _, s := range shapes {
		if s.nSBox == spec.Capacity {
			partial++
		}
	}
	if partial != 57 {
		t.Fatalf("expected 57 partial rounds, got %d", partial)
	}
	for i := 1; i < 4; i++ {
		if shapes[i].nSBox != 6 {
			t.Fatalf("round %d should be full", i)
		}
	}
	for i := 4; i < 61; i++ {
		if shapes[i].nSBox != 1 {
			t.Fatalf("round %d should be partial", i)
		}
	}
	for i := 61; i < 64; i++ {
		if shapes[i].nSBox != 6 {
			t.Fatalf("round %d should be full", i)
		}
	}
}

func buildPermutation(t *testing.T, values []fr.Element) (*r1cs.Board, *Permutation) {
	t.Helper()
	board := r1cs.NewBoard()
	inputs := board.AllocateArray(len(values), "input")
	for i, v := range values {
		board.SetValue(inputs[i], v)
	}
	perm, err := NewPermutation(board, Poseidon128(len(values), 1), inputs, "poseidon")
	if err != nil {
		t.Fatal(err)
	}
	perm.GenerateConstraints()
	perm.GenerateWitness()
	return board, perm
}

func TestPermutationZeroVector(t *testing.T) {
	board, perm := buildPermutation(t, make([]fr.Element, 5))

	want := mustElement(t, "951383894958571821976060584138905353883650994872035011055912076785884444545")
	got := board.Value(perm.Outputs()[0])
	if !got.Equal(&want) {
		t.Fatalf("zero-vector digest mismatch: got %s", got.String())
	}
	if err := board.Satisfied(); err != nil {
		t.Fatal(err)
	}
}

func TestPermutationKnownVector(t *testing.T) {
	values := make([]fr.Element, 5)
	for i := range values {
		values[i].SetUint64(uint64(i + 1))
	}
	board, perm := buildPermutation(t, values)

	want := mustElement(t, "20988307633319688150948164954996290879952759954468093738436579145167809963446")
	got := board.Value(perm.Outputs()[0])
	if !got.Equal(&want) {
		t.Fatalf("digest mismatch: got %s", got.String())
	}
}

func TestPermutationConstraintCount(t *testing.T) {
	// 105 S-boxes (6 + 3*6 + 57 + 3*6 + 6) at 3 constraints each, plus one
	// output binding
	board, _ := buildPermutation(t, make([]fr.Element, 5))
	if n := len(board.Constraints()); n != 316 {
		t.Fatalf("expected 316 constraints, got %d", n)
	}
}

func TestRoundCombinationsStayBounded(t *testing.T) {
	spec := Poseidon128(5, 1)
	board := r1cs.NewBoard()
	inputs := board.AllocateArray(5, "input")
	perm, err := NewPermutation(board, spec, inputs, "poseidon")
	if err != nil {
		t.Fatal(err)
	}

	// merged combinations reference each distinct wire once: the constant
	// wire, a row's S-box results and the accumulated partial S-box wires.
	// Without merging the partial block multiplies the term count every
	// round.
	limit := 1 + spec.Width + spec.PartialRounds
	for i, r := range perm.rounds {
		for o, lc := range r.outputs {
			if len(lc) > limit {
				t.Fatalf("round %d output %d carries %d terms, limit %d", i, o, len(lc), limit)
			}
		}
	}

	// full rounds collapse back to one term per state lane
	last := perm.rounds[len(perm.rounds)-1]
	for o, lc := range last.outputs {
		if len(lc) != spec.Width {
			t.Fatalf("last round output %d carries %d terms, want %d", o, len(lc), spec.Width)
		}
	}
}

func TestPermutationMatchesNative(t *testing.T) {
	values := make([]fr.Element, 5)
	for i := range values {
		if _, err := values[i].SetRandom(); err != nil {
			t.Fatal(err)
		}
	}
	board, perm := buildPermutation(t, values)

	want, err := Hash(values...)
	if err != nil {
		t.Fatal(err)
	}
	got := board.Value(perm.Outputs()[0])
	if !got.Equal(&want) {
		t.Fatalf("circuit and native evaluation disagree: got %s, want %s", got.String(), want.String())
	}
}

func TestPermutationRejectsBadSpec(t *testing.T) {
	board := r1cs.NewBoard()
	inputs := board.AllocateArray(5, "input")

	cases := []Spec{
		{Width: 6, Capacity: 0, FullRounds: 8, PartialRounds: 57, NInputs: 5, NOutputs: 1},
		{Width: 6, Capacity: 1, FullRounds: 7, PartialRounds: 57, NInputs: 5, NOutputs: 1},
		{Width: 6, Capacity: 1, FullRounds: 8, PartialRounds: 57, NInputs: 7, NOutputs: 1},
		{Width: 6, Capacity: 1, FullRounds: 8, PartialRounds: 57, NInputs: 5, NOutputs: 7},
		{Width: 1, Capacity: 1, FullRounds: 8, PartialRounds: 57, NInputs: 1, NOutputs: 1},
	}
	for _, spec := range cases {
		if _, err := NewPermutation(board, spec, inputs, "poseidon"); err == nil {
			t.Fatalf("expected spec %+v to be rejected", spec)
		}
	}

	// arity mismatch between spec and inputs
	if _, err := NewPermutation(board, Poseidon128(4, 1), inputs, "poseidon"); err == nil {
		t.Fatal("expected an input arity error")
	}
}
