package bls381

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// gtComponents lists the twelve Fq limbs of a target field element in wire
// order: tower-first, C0 before C1, B0..B2, A0 before A1.
func gtComponents(e *GT) [12]*fp.Element {
	return [12]*fp.Element{
		&e.C0.B0.A0, &e.C0.B0.A1,
		&e.C0.B1.A0, &e.C0.B1.A1,
		&e.C0.B2.A0, &e.C0.B2.A1,
		&e.C1.B0.A0, &e.C1.B0.A1,
		&e.C1.B1.A0, &e.C1.B1.A1,
		&e.C1.B2.A0, &e.C1.B2.A1,
	}
}

// EncodeGT serializes a target field (Fq12) element to its 576-byte
// canonical form.
func EncodeGT(e *GT) []byte {
	out := make([]byte, SizeGT)
	for i, c := range gtComponents(e) {
		writeFq(out[i*sizeFq:(i+1)*sizeFq], c)
	}
	return out
}

// DecodeGT parses a 576-byte target field element, rejecting non-canonical
// limbs.
func DecodeGT(buf []byte) (GT, error) {
	var e GT
	if len(buf) != SizeGT {
		return e, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedEncoding, SizeGT, len(buf))
	}
	for i, c := range gtComponents(&e) {
		if err := readFq(c, buf[i*sizeFq:(i+1)*sizeFq]); err != nil {
			return GT{}, err
		}
	}
	return e, nil
}
