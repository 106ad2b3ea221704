package ecpair

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/hostcrypto/ecpair/debug"
	"github.com/hostcrypto/ecpair/ecc/bls381"
	"github.com/hostcrypto/ecpair/host"
	"github.com/hostcrypto/ecpair/logger"
)

// ErrLengthMismatch is returned when the two operand lists of a pairing or
// MSM call have different lengths.
var ErrLengthMismatch = errors.New("operand lists length mismatch")

// operand serialization fans out across goroutines from this batch size on
const parallelThreshold = 16

// Adapter orchestrates pairing and multi-scalar multiplication over an
// injected engine. It is stateless after construction and safe for
// concurrent use as long as the engine is re-entrant.
type Adapter struct {
	engine   host.Engine
	validate bool
	nbTasks  int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithOperandValidation subgroup-checks every operand point before it is
// handed to the engine, surfacing bls381.ErrNotInSubgroup early instead of
// relying on the engine's own screening.
func WithOperandValidation() Option {
	return func(a *Adapter) { a.validate = true }
}

// WithNbTasks caps the number of goroutines used for operand serialization.
func WithNbTasks(n int) Option {
	return func(a *Adapter) {
		if n >= 1 {
			a.nbTasks = n
		}
	}
}

// New returns an Adapter delegating to engine.
func New(engine host.Engine, opts ...Option) *Adapter {
	a := &Adapter{
		engine:  engine,
		nbTasks: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MultiMillerLoop evaluates the product of Miller loops over the operand
// pairs, index-wise. The result is not exponentiated; zero pairs yield the
// multiplicative identity of the target field.
func (a *Adapter) MultiMillerLoop(g1s []bls381.G1Affine, g2s []bls381.G2Affine) (bls381.GT, error) {
	var res bls381.GT
	if len(g1s) != len(g2s) {
		return res, fmt.Errorf("%w: %d g1 points vs %d g2 points", ErrLengthMismatch, len(g1s), len(g2s))
	}
	start := time.Now()

	g1Bufs, g2Bufs, err := a.encodePairs(g1s, g2s)
	if err != nil {
		return res, err
	}
	out, err := a.engine.MultiMillerLoop(g1Bufs, g2Bufs)
	if err != nil {
		return res, fmt.Errorf("multi miller loop: %w", err)
	}
	if res, err = bls381.DecodeGT(out); err != nil {
		return bls381.GT{}, fmt.Errorf("multi miller loop result: %w", err)
	}

	log := logger.Logger()
	log.Debug().Int("n", len(g1s)).Dur("took", time.Since(start)).Msg("multi miller loop")
	return res, nil
}

// FinalExponentiation raises a Miller loop output to (q¹²-1)/r, mapping it
// into the pairing target group. Engine failures are surfaced as-is; the
// engine is pure, so there is nothing to retry.
func (a *Adapter) FinalExponentiation(f *bls381.GT) (bls381.GT, error) {
	var res bls381.GT
	out, err := a.engine.FinalExponentiation(bls381.EncodeGT(f))
	if err != nil {
		return res, fmt.Errorf("final exponentiation: %w", err)
	}
	if res, err = bls381.DecodeGT(out); err != nil {
		return bls381.GT{}, fmt.Errorf("final exponentiation result: %w", err)
	}
	return res, nil
}

// Pair computes the full bilinear pairing e(p, q).
func (a *Adapter) Pair(p *bls381.G1Affine, q *bls381.G2Affine) (bls381.GT, error) {
	return a.PairMany([]bls381.G1Affine{*p}, []bls381.G2Affine{*q})
}

// PairMany computes Π e(g1s[i], g2s[i]) with a single final exponentiation.
func (a *Adapter) PairMany(g1s []bls381.G1Affine, g2s []bls381.G2Affine) (bls381.GT, error) {
	ml, err := a.MultiMillerLoop(g1s, g2s)
	if err != nil {
		return ml, err
	}
	return a.FinalExponentiation(&ml)
}

// MultiScalarMulG1 computes Σ scalars[i]·bases[i] inside the engine. The
// decoded result is trusted and not re-validated.
func (a *Adapter) MultiScalarMulG1(bases []bls381.G1Affine, scalars []fr.Element) (bls381.G1Affine, error) {
	var res bls381.G1Affine
	if len(bases) != len(scalars) {
		return res, fmt.Errorf("%w: %d bases vs %d scalars", ErrLengthMismatch, len(bases), len(scalars))
	}
	start := time.Now()

	baseBufs := make([][]byte, len(bases))
	scalarBufs := make([][]byte, len(scalars))
	err := a.forEach(len(bases), func(i int) error {
		if a.validate && !bls381.IsInSubGroupG1(&bases[i]) {
			return fmt.Errorf("base %d: %w", i, bls381.ErrNotInSubgroup)
		}
		baseBufs[i] = bls381.EncodeG1(&bases[i], true)
		b := scalars[i].Bytes()
		scalarBufs[i] = b[:]
		return nil
	})
	if err != nil {
		return res, err
	}
	out, err := a.engine.MSMG1(baseBufs, scalarBufs)
	if err != nil {
		return res, fmt.Errorf("msm g1: %w", err)
	}
	if res, err = bls381.DecodeG1(out, true, false); err != nil {
		return bls381.G1Affine{}, fmt.Errorf("msm g1 result: %w", err)
	}

	log := logger.Logger()
	log.Debug().Int("n", len(bases)).Dur("took", time.Since(start)).Msg("msm g1")
	return res, nil
}

func (a *Adapter) encodePairs(g1s []bls381.G1Affine, g2s []bls381.G2Affine) ([][]byte, [][]byte, error) {
	debug.Assert(len(g1s) == len(g2s))
	g1Bufs := make([][]byte, len(g1s))
	g2Bufs := make([][]byte, len(g2s))
	err := a.forEach(len(g1s), func(i int) error {
		if a.validate {
			if !bls381.IsInSubGroupG1(&g1s[i]) {
				return fmt.Errorf("g1 operand %d: %w", i, bls381.ErrNotInSubgroup)
			}
			if !bls381.IsInSubGroupG2(&g2s[i]) {
				return fmt.Errorf("g2 operand %d: %w", i, bls381.ErrNotInSubgroup)
			}
		}
		g1Bufs[i] = bls381.EncodeG1(&g1s[i], true)
		g2Bufs[i] = bls381.EncodeG2(&g2s[i], true)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return g1Bufs, g2Bufs, nil
}

// forEach runs fn for each operand index, fanning out across goroutines for
// large batches. Results land at their input index, so list order is always
// preserved.
func (a *Adapter) forEach(n int, fn func(i int) error) error {
	if n < parallelThreshold && !a.validate {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(a.nbTasks)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
