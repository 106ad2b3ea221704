// Package bls381 implements canonical point encodings, subgroup membership
// checks and cofactor clearing for the BLS12-381 curve.
//
// The package covers the curve-specific logic that must stay bit-for-bit
// compatible across implementations: the ZCash-style compressed and
// uncompressed point formats for G1 and G2 (flag bits in the three most
// significant bits of the leading byte), the 576-byte target field (Fq12)
// encoding, the endomorphism-based fast subgroup checks and the
// effective-cofactor projections into the prime-order subgroup.
//
// Field and group arithmetic (Fq, Fq2, Fq12, Jacobian point operations) is
// provided by github.com/consensys/gnark-crypto/ecc/bls12-381; the affine
// point and target field types of that library are re-exported here so that
// callers hold a single set of types.
package bls381
