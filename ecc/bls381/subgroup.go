package bls381

// Fast subgroup membership checks from eprint 2021/1130, replacing the naive
// multiplication by the subgroup order with O(2·log x₀) point operations.

// IsInSubGroupG1 reports whether p belongs to the prime-order subgroup of
// G1. The point is assumed on-curve; the point at infinity is a member.
//
// The check (section 6 of the paper) verifies φ(P) == -[x₀²]P, where
// φ(x,y) = (β·x, y) and β is a non-trivial cube root of unity in Fq, with an
// early out: a finite point fixed by [x₀] cannot be in the subgroup.
func IsInSubGroupG1(p *G1Affine) bool {
	if p.IsInfinity() {
		return true
	}
	var pj, xp, mx2p, phi G1Jac
	pj.FromAffine(p)
	mulByLoopScalarG1(&xp, &pj)
	if xp.Equal(&pj) {
		return false
	}
	mulByLoopScalarG1(&mx2p, &xp)
	mx2p.Neg(&mx2p)

	e := endomorphismG1(p)
	phi.FromAffine(&e)
	return mx2p.Equal(&phi)
}

// IsInSubGroupG2 reports whether p belongs to the prime-order subgroup of
// G2. The point is assumed on-curve; the point at infinity is a member.
//
// The check (section 4 of the paper) verifies ψ(P) == [x₀]P, where ψ is the
// p-power endomorphism.
func IsInSubGroupG2(p *G2Affine) bool {
	if p.IsInfinity() {
		return true
	}
	var pj, xp, psij G2Jac
	pj.FromAffine(p)
	mulByLoopScalarG2(&xp, &pj)
	if loopScalarNegative {
		xp.Neg(&xp)
	}
	e := psiG2(p)
	psij.FromAffine(&e)
	return xp.Equal(&psij)
}

// endomorphismG1 computes φ(P) = (β·x, y).
func endomorphismG1(p *G1Affine) G1Affine {
	var res G1Affine
	res.X.Mul(&p.X, &beta)
	res.Y = p.Y
	return res
}

// psiG2 computes ψ(P) = (psiX·x̄, psiY·ȳ), the Frobenius endomorphism
// conjugated by the (un)twist isomorphism.
func psiG2(p *G2Affine) G2Affine {
	var res G2Affine
	res.X.Conjugate(&p.X)
	res.X.Mul(&res.X, &psiX)
	res.Y.Conjugate(&p.Y)
	res.Y.Mul(&res.Y, &psiY)
	return res
}

// mulByLoopScalarG1 sets res = [|x₀|]p with a plain double-and-add over the
// bits of the loop scalar, most significant first.
func mulByLoopScalarG1(res, p *G1Jac) {
	var acc G1Jac
	started := false
	for i := int(loopScalarBits.Len()) - 1; i >= 0; i-- {
		if started {
			acc.DoubleAssign()
		}
		if loopScalarBits.Test(uint(i)) {
			if started {
				acc.AddAssign(p)
			} else {
				acc.Set(p)
				started = true
			}
		}
	}
	res.Set(&acc)
}

func mulByLoopScalarG2(res, p *G2Jac) {
	var acc G2Jac
	started := false
	for i := int(loopScalarBits.Len()) - 1; i >= 0; i-- {
		if started {
			acc.DoubleAssign()
		}
		if loopScalarBits.Test(uint(i)) {
			if started {
				acc.AddAssign(p)
			} else {
				acc.Set(p)
				started = true
			}
		}
	}
	res.Set(&acc)
}
