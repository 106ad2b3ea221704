// Package host defines the boundary between the curve adapter and the
// pairing engine that performs the arithmetic-heavy steps: the multi-Miller
// loop, the final exponentiation and G1 multi-scalar multiplication.
//
// The engine is a capability injected at construction time. SoftwareEngine
// is the pure-Go fallback backed by gnark-crypto; a hosting runtime may
// substitute an accelerated implementation as long as it honors the byte
// formats of the ecc/bls381 package.
package host

import "errors"

// Engine is the host pairing engine contract. All operands and results are
// exchanged in the canonical compressed byte formats of ecc/bls381:
// 48-byte G1 points, 96-byte G2 points, 576-byte target field elements and
// 32-byte big-endian scalars.
//
// Implementations must be pure and re-entrant: same inputs, same output, no
// retained state. Index i of two parallel operand lists is paired together.
type Engine interface {
	// MultiMillerLoop evaluates the product of Miller loops over the operand
	// pairs. Zero pairs yield the encoded multiplicative identity. The result
	// is not yet exponentiated.
	MultiMillerLoop(g1s, g2s [][]byte) ([]byte, error)

	// FinalExponentiation raises a Miller loop output to (q¹²-1)/r.
	FinalExponentiation(gt []byte) ([]byte, error)

	// MSMG1 computes Σ scalars[i]·bases[i].
	MSMG1(bases, scalars [][]byte) ([]byte, error)
}

// ErrEngineFailure wraps every failure reported by an engine: operand count
// mismatches, undecodable operands, or internal faults. Engines are pure, so
// callers must not retry.
var ErrEngineFailure = errors.New("pairing engine failure")
