package host

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/hostcrypto/ecpair/ecc/bls381"
)

// SoftwareEngine evaluates the engine contract in-process with gnark-crypto.
// Operand points are fully validated on decode (curve membership and
// prime-order subgroup); this is the trust boundary of the host call.
type SoftwareEngine struct{}

// NewSoftwareEngine returns the pure-Go fallback engine.
func NewSoftwareEngine() *SoftwareEngine {
	return &SoftwareEngine{}
}

func (e *SoftwareEngine) MultiMillerLoop(g1s, g2s [][]byte) ([]byte, error) {
	if len(g1s) != len(g2s) {
		return nil, fmt.Errorf("%w: %d g1 operands vs %d g2 operands", ErrEngineFailure, len(g1s), len(g2s))
	}
	if len(g1s) == 0 {
		var one bls381.GT
		one.SetOne()
		return bls381.EncodeGT(&one), nil
	}
	ps := make([]bls381.G1Affine, len(g1s))
	qs := make([]bls381.G2Affine, len(g2s))
	for i := range g1s {
		var err error
		if ps[i], err = bls381.DecodeG1(g1s[i], true, true); err != nil {
			return nil, fmt.Errorf("%w: g1 operand %d: %w", ErrEngineFailure, i, err)
		}
		if qs[i], err = bls381.DecodeG2(g2s[i], true, true); err != nil {
			return nil, fmt.Errorf("%w: g2 operand %d: %w", ErrEngineFailure, i, err)
		}
	}
	res, err := bls12381.MillerLoop(ps, qs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}
	return bls381.EncodeGT(&res), nil
}

func (e *SoftwareEngine) FinalExponentiation(gt []byte) ([]byte, error) {
	f, err := bls381.DecodeGT(gt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}
	// zero is never a Miller loop output and has no well-defined image
	if f.IsZero() {
		return nil, fmt.Errorf("%w: zero target field element", ErrEngineFailure)
	}
	res := bls12381.FinalExponentiation(&f)
	return bls381.EncodeGT(&res), nil
}

func (e *SoftwareEngine) MSMG1(bases, scalars [][]byte) ([]byte, error) {
	if len(bases) != len(scalars) {
		return nil, fmt.Errorf("%w: %d bases vs %d scalars", ErrEngineFailure, len(bases), len(scalars))
	}
	var res bls381.G1Affine
	if len(bases) == 0 {
		return bls381.EncodeG1(&res, true), nil
	}
	ps := make([]bls381.G1Affine, len(bases))
	ss := make([]fr.Element, len(scalars))
	for i := range bases {
		var err error
		if ps[i], err = bls381.DecodeG1(bases[i], true, false); err != nil {
			return nil, fmt.Errorf("%w: base %d: %w", ErrEngineFailure, i, err)
		}
		if len(scalars[i]) != bls381.SizeFr {
			return nil, fmt.Errorf("%w: scalar %d: expected %d bytes, got %d", ErrEngineFailure, i, bls381.SizeFr, len(scalars[i]))
		}
		if err = ss[i].SetBytesCanonical(scalars[i]); err != nil {
			return nil, fmt.Errorf("%w: scalar %d: %w", ErrEngineFailure, i, err)
		}
	}
	if _, err := res.MultiExp(ps, ss, ecc.MultiExpConfig{}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}
	return bls381.EncodeG1(&res, true), nil
}
