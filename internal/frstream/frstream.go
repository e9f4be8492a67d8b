// Package frstream expands a textual seed into a deterministic stream of
// bn254 scalar field elements by iterating blake2b-256 over its own output.
package frstream

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
)

// Stream yields field elements derived from a seed. The first element is the
// reduced digest of the seed; every later element hashes the previous raw
// digest bytes, not the reduced field element.
type Stream struct {
	digest  [blake2b.Size256]byte
	started bool
}

// New seeds a stream.
func New(seed string) *Stream {
	return &Stream{digest: blake2b.Sum256([]byte(seed))}
}

// Next returns the next element of the stream.
func (s *Stream) Next() fr.Element {
	if s.started {
		s.digest = blake2b.Sum256(s.digest[:])
	}
	s.started = true
	return reduce(s.digest)
}

// Elements returns the first n elements of the stream for seed.
func Elements(seed string, n int) []fr.Element {
	s := New(seed)
	out := make([]fr.Element, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// reduce interprets the digest little-endian and reduces it into fr.
func reduce(digest [blake2b.Size256]byte) fr.Element {
	buf := make([]byte, len(digest))
	for i := range digest {
		buf[len(digest)-1-i] = digest[i]
	}
	var e fr.Element
	e.SetBigInt(new(big.Int).SetBytes(buf))
	return e
}
