package bls381

import "errors"

var (
	// ErrMalformedEncoding is returned when a buffer has the wrong length,
	// inconsistent flag bits, or an infinity flag set alongside a non-zero
	// payload.
	ErrMalformedEncoding = errors.New("malformed point encoding")

	// ErrNotOnCurve is returned when decoded coordinates do not satisfy the
	// curve equation, or when no square root exists during decompression.
	ErrNotOnCurve = errors.New("point is not on the curve")

	// ErrNotInSubgroup is returned when an on-curve point fails the
	// prime-order subgroup check.
	ErrNotInSubgroup = errors.New("point is not in the prime-order subgroup")
)
