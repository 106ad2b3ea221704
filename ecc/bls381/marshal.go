package bls381

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

const sizeFq = fp.Bytes

func writeFq(dst []byte, e *fp.Element) {
	b := e.Bytes()
	copy(dst, b[:])
}

// readFq rejects non-canonical encodings (value ≥ q).
func readFq(z *fp.Element, src []byte) error {
	if err := z.SetBytesCanonical(src); err != nil {
		return fmt.Errorf("%w: non-canonical field element", ErrMalformedEncoding)
	}
	return nil
}

// Fq2 elements serialize imaginary part first: A1 then A0, 48 bytes each.
func writeFq2(dst []byte, e *E2) {
	writeFq(dst[:sizeFq], &e.A1)
	writeFq(dst[sizeFq:], &e.A0)
}

func readFq2(z *E2, src []byte) error {
	if err := readFq(&z.A1, src[:sizeFq]); err != nil {
		return err
	}
	return readFq(&z.A0, src[sizeFq:])
}

// EncodeG1 serializes p in canonical form; 48 bytes compressed, 96
// uncompressed. The point at infinity encodes as flag bits over a zero
// payload.
func EncodeG1(p *G1Affine, compressed bool) []byte {
	var q G1Affine
	if !p.IsInfinity() {
		q = *p
	}
	flags := EncodingFlags{
		Compressed: compressed,
		Infinity:   p.IsInfinity(),
		LexLargest: q.Y.LexicographicallyLargest(),
	}
	if compressed {
		out := make([]byte, SizeG1Compressed)
		writeFq(out, &q.X)
		flags.encode(out)
		return out
	}
	out := make([]byte, SizeG1Uncompressed)
	writeFq(out[:sizeFq], &q.X)
	writeFq(out[sizeFq:], &q.Y)
	flags.encode(out)
	return out
}

// EncodeG2 serializes p in canonical form; 96 bytes compressed, 192
// uncompressed.
func EncodeG2(p *G2Affine, compressed bool) []byte {
	var q G2Affine
	if !p.IsInfinity() {
		q = *p
	}
	flags := EncodingFlags{
		Compressed: compressed,
		Infinity:   p.IsInfinity(),
		LexLargest: q.Y.LexicographicallyLargest(),
	}
	if compressed {
		out := make([]byte, SizeG2Compressed)
		writeFq2(out, &q.X)
		flags.encode(out)
		return out
	}
	out := make([]byte, SizeG2Uncompressed)
	writeFq2(out[:2*sizeFq], &q.X)
	writeFq2(out[2*sizeFq:], &q.Y)
	flags.encode(out)
	return out
}

// DecodeG1 parses a canonical G1 encoding. When validate is set the point is
// additionally checked for prime-order subgroup membership.
func DecodeG1(buf []byte, compressed, validate bool) (G1Affine, error) {
	var p G1Affine
	want := SizeG1Uncompressed
	if compressed {
		want = SizeG1Compressed
	}
	flags, err := checkFraming(buf, want, compressed)
	if err != nil {
		return p, err
	}
	if flags.Infinity {
		return p, nil
	}

	if err := readFq(&p.X, unflagged(buf[:sizeFq])); err != nil {
		return G1Affine{}, err
	}
	if compressed {
		if p.Y, err = g1YFromX(&p.X, flags.LexLargest); err != nil {
			return G1Affine{}, err
		}
	} else {
		if err := readFq(&p.Y, buf[sizeFq:]); err != nil {
			return G1Affine{}, err
		}
		if !p.IsOnCurve() {
			return G1Affine{}, ErrNotOnCurve
		}
	}
	if validate && !IsInSubGroupG1(&p) {
		return G1Affine{}, ErrNotInSubgroup
	}
	return p, nil
}

// DecodeG2 parses a canonical G2 encoding. When validate is set the point is
// additionally checked for prime-order subgroup membership.
func DecodeG2(buf []byte, compressed, validate bool) (G2Affine, error) {
	var p G2Affine
	want := SizeG2Uncompressed
	if compressed {
		want = SizeG2Compressed
	}
	flags, err := checkFraming(buf, want, compressed)
	if err != nil {
		return p, err
	}
	if flags.Infinity {
		return p, nil
	}

	if err := readFq2(&p.X, unflagged(buf[:2*sizeFq])); err != nil {
		return G2Affine{}, err
	}
	if compressed {
		if p.Y, err = g2YFromX(&p.X, flags.LexLargest); err != nil {
			return G2Affine{}, err
		}
	} else {
		if err := readFq2(&p.Y, buf[2*sizeFq:]); err != nil {
			return G2Affine{}, err
		}
		if !p.IsOnCurve() {
			return G2Affine{}, ErrNotOnCurve
		}
	}
	if validate && !IsInSubGroupG2(&p) {
		return G2Affine{}, ErrNotInSubgroup
	}
	return p, nil
}

// checkFraming validates length and flag consistency, and for infinity
// encodings requires an all-zero payload.
func checkFraming(buf []byte, want int, compressed bool) (EncodingFlags, error) {
	if len(buf) != want {
		return EncodingFlags{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedEncoding, want, len(buf))
	}
	flags := parseFlags(buf[0])
	if !flags.consistent(compressed) {
		return EncodingFlags{}, fmt.Errorf("%w: inconsistent flag bits 0b%03b", ErrMalformedEncoding, buf[0]>>5)
	}
	if flags.Infinity {
		if buf[0]&^maskFlags != 0 {
			return EncodingFlags{}, fmt.Errorf("%w: infinity flag with non-zero payload", ErrMalformedEncoding)
		}
		for _, b := range buf[1:] {
			if b != 0 {
				return EncodingFlags{}, fmt.Errorf("%w: infinity flag with non-zero payload", ErrMalformedEncoding)
			}
		}
	}
	return flags, nil
}

// unflagged returns a copy of the leading field element bytes with the flag
// bits cleared, leaving the caller's buffer untouched.
func unflagged(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)
	out[0] &^= maskFlags
	return out
}

// g1YFromX recovers y = sqrt(x³ + 4), picking the root selected by the sign
// flag.
func g1YFromX(x *fp.Element, lexLargest bool) (fp.Element, error) {
	var ySq, y fp.Element
	ySq.Square(x).Mul(&ySq, x).Add(&ySq, &bG1)
	if y.Sqrt(&ySq) == nil {
		return y, ErrNotOnCurve
	}
	if y.LexicographicallyLargest() != lexLargest {
		y.Neg(&y)
	}
	return y, nil
}

// g2YFromX recovers y = sqrt(x³ + 4(1+u)), picking the root selected by the
// sign flag.
func g2YFromX(x *E2, lexLargest bool) (E2, error) {
	var ySq, y E2
	ySq.Square(x).Mul(&ySq, x).Add(&ySq, &bG2)
	if ySq.Legendre() == -1 {
		return y, ErrNotOnCurve
	}
	y.Sqrt(&ySq)
	if y.LexicographicallyLargest() != lexLargest {
		y.Neg(&y)
	}
	return y, nil
}
