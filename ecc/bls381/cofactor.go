package bls381

import "math/big"

// ClearCofactorG1 projects an on-curve point into the prime-order subgroup
// by multiplying with the effective cofactor h_eff = 1 - x₀ (eprint
// 2019/403, section 5), instead of the full cofactor (x₀-1)²/3.
func ClearCofactorG1(p *G1Affine) G1Affine {
	if p.IsInfinity() {
		return *p
	}
	var res G1Affine
	var hEff big.Int
	hEff.SetUint64(effCofactorG1)
	res.ScalarMultiplication(p, &hEff)
	return res
}

// ClearCofactorG2 projects an on-curve point into the prime-order subgroup
// using the ψ-polynomial method of Budroni and Pintore (eprint 2017/419,
// section 4.1):
//
//	[h_eff]P = ψ²([2]P) + [x₀]([x₀]P + ψ(P)) - [x₀]P - ψ(P) - P
func ClearCofactorG2(p *G2Affine) G2Affine {
	if p.IsInfinity() {
		return *p
	}
	var xAbs big.Int
	xAbs.SetUint64(loopScalar)

	var pj, xp, psip, acc, tmp G2Jac
	pj.FromAffine(p)

	// [x₀]P, sign folded in
	xp.ScalarMultiplication(&pj, &xAbs)
	if loopScalarNegative {
		xp.Neg(&xp)
	}

	// ψ(P)
	e := psiG2(p)
	psip.FromAffine(&e)

	// [x₀]([x₀]P + ψ(P))
	tmp.Set(&xp)
	tmp.AddAssign(&psip)
	acc.ScalarMultiplication(&tmp, &xAbs)
	if loopScalarNegative {
		acc.Neg(&acc)
	}

	// + ψ²([2]P)
	var dbl G2Jac
	var dblAff G2Affine
	dbl.Set(&pj)
	dbl.DoubleAssign()
	dblAff.FromJacobian(&dbl)
	psi2 := psiG2(&dblAff)
	psi2 = psiG2(&psi2)
	var psi2j G2Jac
	psi2j.FromAffine(&psi2)
	acc.AddAssign(&psi2j)

	// - [x₀]P - ψ(P) - P
	acc.SubAssign(&xp)
	acc.SubAssign(&psip)
	acc.SubAssign(&pj)

	var res G2Affine
	res.FromJacobian(&acc)
	return res
}
