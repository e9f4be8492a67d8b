package poseidon

import (
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/CortexFoundation/poseidon/internal/frstream"
	"github.com/CortexFoundation/poseidon/logger"
)

// Derivation seeds fixed by the reference implementation. Changing either
// changes every digest.
const (
	constantsSeed = "poseidon_constants"
	matrixSeed    = "poseidon_matrix_0000"
)

// Constants derives n field elements from a textual seed.
func Constants(seed string, n int) []fr.Element {
	return frstream.Elements(seed, n)
}

// MDSMatrix derives the t*t mixing matrix for a seed: 2t stream elements are
// split into halves a and b, entry (i,j) = 1/(a_i - b_j). A zero difference
// would need a blake2b stream collision, which is negligible and not checked.
func MDSMatrix(seed string, t int) []fr.Element {
	c := Constants(seed, 2*t)
	m := make([]fr.Element, 0, t*t)
	for i := 0; i < t; i++ {
		for j := 0; j < t; j++ {
			var d fr.Element
			d.Sub(&c[i], &c[t+j])
			d.Inverse(&d)
			m = append(m, d)
		}
	}
	return m
}

// roundConstants bundles the derived per-round constants and mixing matrix of
// one (width, total rounds) pair. Immutable once derived; shared read-only by
// every composer and instance using the pair.
type roundConstants struct {
	c []fr.Element // one per round, F+P total
	m []fr.Element // t*t mixing matrix, row-major
}

type constantsKey struct {
	width  int
	rounds int
}

var (
	constantsMu    sync.Mutex
	constantsCache = make(map[constantsKey]*roundConstants)
)

// sharedConstants returns the cached derivation for (width, rounds), deriving
// it on first use.
func sharedConstants(width, rounds int) *roundConstants {
	key := constantsKey{width: width, rounds: rounds}
	constantsMu.Lock()
	defer constantsMu.Unlock()
	if rc, ok := constantsCache[key]; ok {
		return rc
	}
	start := time.Now()
	rc := &roundConstants{
		c: Constants(constantsSeed, rounds),
		m: MDSMatrix(matrixSeed, width),
	}
	constantsCache[key] = rc
	log := logger.Logger()
	log.Debug().
		Int("width", width).
		Int("rounds", rounds).
		Dur("took", time.Since(start)).
		Msg("derived poseidon round constants")
	return rc
}

// RoundParams returns the shared round constants and mixing matrix for a
// (width, total rounds) pair. The slices are shared and must not be modified.
func RoundParams(width, totalRounds int) (C, M []fr.Element) {
	rc := sharedConstants(width, totalRounds)
	return rc.c, rc.m
}
