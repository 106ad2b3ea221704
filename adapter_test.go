package ecpair

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostcrypto/ecpair/ecc/bls381"
	"github.com/hostcrypto/ecpair/host"
)

// on-curve G1 point with x=4, outside the prime-order subgroup
const g1OffSubgroupHex = "800000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000004"

func testAdapter(t *testing.T, opts ...Option) *Adapter {
	t.Helper()
	return New(host.NewSoftwareEngine(), opts...)
}

func randomFr(t *testing.T) fr.Element {
	t.Helper()
	var s fr.Element
	_, err := s.SetRandom()
	require.NoError(t, err)
	return s
}

func randomOperands(t *testing.T, n int) ([]bls381.G1Affine, []bls381.G2Affine) {
	t.Helper()
	params := bls381.Params()
	g1s := make([]bls381.G1Affine, n)
	g2s := make([]bls381.G2Affine, n)
	for i := 0; i < n; i++ {
		a := randomFr(t)
		b := randomFr(t)
		g1s[i].ScalarMultiplication(&params.G1Gen, a.BigInt(new(big.Int)))
		g2s[i].ScalarMultiplication(&params.G2Gen, b.BigInt(new(big.Int)))
	}
	return g1s, g2s
}

func TestPairBilinearity(t *testing.T) {
	adapter := testAdapter(t)
	params := bls381.Params()

	a := randomFr(t)
	b := randomFr(t)
	var p bls381.G1Affine
	var q bls381.G2Affine
	p.ScalarMultiplication(&params.G1Gen, a.BigInt(new(big.Int)))
	q.ScalarMultiplication(&params.G2Gen, b.BigInt(new(big.Int)))

	got, err := adapter.Pair(&p, &q)
	require.NoError(t, err)

	base, err := adapter.Pair(&params.G1Gen, &params.G2Gen)
	require.NoError(t, err)

	var ab fr.Element
	ab.Mul(&a, &b)
	var want bls381.GT
	want.Exp(base, ab.BigInt(new(big.Int)))

	assert.True(t, got.Equal(&want))
}

func TestPairManyDecomposition(t *testing.T) {
	adapter := testAdapter(t)

	g1s, g2s := randomOperands(t, 4)
	joint, err := adapter.PairMany(g1s, g2s)
	require.NoError(t, err)

	var want bls381.GT
	want.SetOne()
	for i := range g1s {
		e, err := adapter.Pair(&g1s[i], &g2s[i])
		require.NoError(t, err)
		want.Mul(&want, &e)
	}
	assert.True(t, joint.Equal(&want))
}

func TestEmptyMillerLoop(t *testing.T) {
	adapter := testAdapter(t)

	ml, err := adapter.MultiMillerLoop(nil, nil)
	require.NoError(t, err)
	assert.True(t, ml.IsOne())

	fe, err := adapter.FinalExponentiation(&ml)
	require.NoError(t, err)
	assert.True(t, fe.IsOne())
}

func TestLengthMismatch(t *testing.T) {
	adapter := testAdapter(t)
	g1s, g2s := randomOperands(t, 2)

	_, err := adapter.MultiMillerLoop(g1s, g2s[:1])
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = adapter.PairMany(g1s[:1], g2s)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = adapter.MultiScalarMulG1(g1s, []fr.Element{randomFr(t)})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestOperandValidation(t *testing.T) {
	raw, err := hex.DecodeString(g1OffSubgroupHex)
	require.NoError(t, err)
	bad, err := bls381.DecodeG1(raw, true, false)
	require.NoError(t, err)
	require.True(t, bad.IsOnCurve())

	g1s, g2s := randomOperands(t, 1)
	g1s[0] = bad

	// with early validation the engine is never reached
	strict := testAdapter(t, WithOperandValidation())
	_, err = strict.PairMany(g1s, g2s)
	require.Error(t, err)
	assert.ErrorIs(t, err, bls381.ErrNotInSubgroup)

	// without it the software engine still screens operands
	lax := testAdapter(t)
	_, err = lax.PairMany(g1s, g2s)
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrEngineFailure)
	assert.ErrorIs(t, err, bls381.ErrNotInSubgroup)

	_, err = strict.MultiScalarMulG1([]bls381.G1Affine{bad}, []fr.Element{randomFr(t)})
	assert.ErrorIs(t, err, bls381.ErrNotInSubgroup)
}

func TestMultiScalarMulG1(t *testing.T) {
	adapter := testAdapter(t)

	const n = 6
	bases, _ := randomOperands(t, n)
	scalars := make([]fr.Element, n)
	for i := range scalars {
		scalars[i] = randomFr(t)
	}

	got, err := adapter.MultiScalarMulG1(bases, scalars)
	require.NoError(t, err)

	var want bls381.G1Affine
	_, err = want.MultiExp(bases, scalars, ecc.MultiExpConfig{})
	require.NoError(t, err)
	assert.True(t, got.Equal(&want))
}

// Batches above the fan-out threshold must produce the same results as small
// sequential ones.
func TestParallelSerialization(t *testing.T) {
	sequential := testAdapter(t)
	parallel := testAdapter(t, WithOperandValidation(), WithNbTasks(4))

	g1s, g2s := randomOperands(t, 20)
	want, err := sequential.PairMany(g1s, g2s)
	require.NoError(t, err)
	got, err := parallel.PairMany(g1s, g2s)
	require.NoError(t, err)
	assert.True(t, got.Equal(&want))

	scalars := make([]fr.Element, len(g1s))
	for i := range scalars {
		scalars[i] = randomFr(t)
	}
	wantP, err := sequential.MultiScalarMulG1(g1s, scalars)
	require.NoError(t, err)
	gotP, err := parallel.MultiScalarMulG1(g1s, scalars)
	require.NoError(t, err)
	assert.True(t, gotP.Equal(&wantP))
}

func TestAdapterReplay(t *testing.T) {
	recorder := host.NewRecorder(host.NewSoftwareEngine())
	recording := New(recorder)

	g1s, g2s := randomOperands(t, 2)
	want, err := recording.PairMany(g1s, g2s)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, recorder.Save(&buf))
	transcript, err := host.LoadTranscript(&buf)
	require.NoError(t, err)

	replaying := New(host.NewReplayer(transcript))
	got, err := replaying.PairMany(g1s, g2s)
	require.NoError(t, err)
	assert.True(t, got.Equal(&want))

	// a call outside the transcript has no recorded answer
	_, err = replaying.MultiScalarMulG1(g1s, []fr.Element{randomFr(t), randomFr(t)})
	assert.ErrorIs(t, err, host.ErrEngineFailure)
}
