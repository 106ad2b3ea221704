package bls381

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInSubGroupG1(t *testing.T) {
	var inf G1Affine
	assert.True(t, IsInSubGroupG1(&inf))
	assert.True(t, IsInSubGroupG1(&g1Gen))

	p, err := DecodeG1(mustHex(t, g1OffSubgroupHex), true, false)
	require.NoError(t, err)
	require.True(t, p.IsOnCurve())
	assert.False(t, IsInSubGroupG1(&p))

	var neg G1Affine
	neg.Neg(&g1Gen)
	assert.True(t, IsInSubGroupG1(&neg))
}

func TestIsInSubGroupG2(t *testing.T) {
	var inf G2Affine
	assert.True(t, IsInSubGroupG2(&inf))
	assert.True(t, IsInSubGroupG2(&g2Gen))

	p, err := DecodeG2(mustHex(t, g2OffSubgroupHex), true, false)
	require.NoError(t, err)
	require.True(t, p.IsOnCurve())
	assert.False(t, IsInSubGroupG2(&p))

	var neg G2Affine
	neg.Neg(&g2Gen)
	assert.True(t, IsInSubGroupG2(&neg))
}

// The endomorphism checks must agree with the arithmetic library's own
// membership test on both members and sampled non-members.
func TestSubGroupAgreesWithLibrary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("[G1] members pass the endomorphism check", prop.ForAll(
		func(p G1Affine) bool {
			return IsInSubGroupG1(&p) && IsInSubGroupG1(&p) == p.IsInSubGroup()
		},
		genG1(),
	))

	properties.Property("[G2] members pass the endomorphism check", prop.ForAll(
		func(p G2Affine) bool {
			return IsInSubGroupG2(&p) && IsInSubGroupG2(&p) == p.IsInSubGroup()
		},
		genG2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	for _, p := range sampleG1OffCurveSubgroup(t, 10) {
		assert.Equal(t, p.IsInSubGroup(), IsInSubGroupG1(&p))
		assert.False(t, IsInSubGroupG1(&p))
	}
	for _, p := range sampleG2OffCurveSubgroup(t, 10) {
		assert.Equal(t, p.IsInSubGroup(), IsInSubGroupG2(&p))
		assert.False(t, IsInSubGroupG2(&p))
	}
}

// sampleG1OffCurveSubgroup returns n on-curve G1 points outside the
// prime-order subgroup, found by decompressing random x coordinates.
func sampleG1OffCurveSubgroup(t *testing.T, n int) []G1Affine {
	t.Helper()
	out := make([]G1Affine, 0, n)
	for len(out) < n {
		var p G1Affine
		if _, err := p.X.SetRandom(); err != nil {
			t.Fatal(err)
		}
		var err error
		if p.Y, err = g1YFromX(&p.X, false); err != nil {
			continue
		}
		require.True(t, p.IsOnCurve())
		if p.IsInSubGroup() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sampleG2OffCurveSubgroup(t *testing.T, n int) []G2Affine {
	t.Helper()
	out := make([]G2Affine, 0, n)
	for len(out) < n {
		var p G2Affine
		if _, err := p.X.A0.SetRandom(); err != nil {
			t.Fatal(err)
		}
		if _, err := p.X.A1.SetRandom(); err != nil {
			t.Fatal(err)
		}
		var err error
		if p.Y, err = g2YFromX(&p.X, false); err != nil {
			continue
		}
		require.True(t, p.IsOnCurve())
		if p.IsInSubGroup() {
			continue
		}
		out = append(out, p)
	}
	return out
}
