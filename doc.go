// Package ecpair is a pairing-friendly elliptic-curve adapter for BLS12-381.
//
// It validates and canonically (de)serializes G1/G2 points and target field
// elements, checks prime-order subgroup membership, clears cofactors, and
// delegates the arithmetic-heavy steps (multi-Miller loop, final
// exponentiation, G1 multi-scalar multiplication) to a pairing engine
// injected behind the host.Engine interface. A pure-Go engine backed by
// gnark-crypto ships in the host package; hosting runtimes may substitute an
// accelerated implementation honoring the same byte formats.
package ecpair

import "github.com/blang/semver/v4"

// Version of the ecpair module
var Version = semver.MustParse("0.1.0")
