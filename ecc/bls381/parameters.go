package bls381

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Re-exported arithmetic library types. Callers and the host engine exchange
// points and target field elements using these.
type (
	G1Affine = bls12381.G1Affine
	G2Affine = bls12381.G2Affine
	G1Jac    = bls12381.G1Jac
	G2Jac    = bls12381.G2Jac
	E2       = bls12381.E2
	GT       = bls12381.GT
)

// TwistType discriminates the two possible sextic twists of a BLS12 curve.
type TwistType uint8

const (
	// TwistM is the multiplicative twist, y² = x³ + b·v.
	TwistM TwistType = iota
	// TwistD is the divisive twist, y² = x³ + b/v.
	TwistD
)

// Serialized sizes, in bytes. Flag bits live in the three most significant
// bits of the leading byte and never change these widths.
const (
	SizeG1Compressed   = 48
	SizeG1Uncompressed = 96
	SizeG2Compressed   = 96
	SizeG2Uncompressed = 192
	SizeGT             = 576
	SizeFr             = 32
)

// loopScalar is |x₀|, the absolute value of the BLS12-381 loop parameter
// x₀ = -0xd201000000010000. The sign is tracked separately.
const (
	loopScalar         uint64 = 0xd201000000010000
	loopScalarNegative        = true

	// effCofactorG1 = 1 - x₀. Multiplying by it clears the G1 cofactor
	// (eprint 2019/403, section 5), much cheaper than (x₀-1)²/3.
	effCofactorG1 uint64 = 0xd201000000010001
)

// loopScalarBits drives the double-and-add ladders of the subgroup checks.
var loopScalarBits = bitset.From([]uint64{loopScalar})

// CurveParameters collects the named constants of the curve. The adapter
// logic is written against this data, not against per-curve code paths.
type CurveParameters struct {
	LoopScalar         uint64 // |x₀|
	LoopScalarNegative bool
	Twist              TwistType

	CoeffBG1 fp.Element // 4
	CoeffBG2 E2         // 4(1+u)

	Cofactor    big.Int    // (x₀-1)²/3
	CofactorInv fr.Element // Cofactor⁻¹ mod r

	G1Gen G1Affine
	G2Gen G2Affine

	Beta fp.Element // non-trivial cube root of unity, G1 endomorphism
	PsiX E2         // ψ coefficients, G2 p-power endomorphism
	PsiY E2
}

// Params returns a copy of the BLS12-381 curve parameters.
func Params() CurveParameters {
	var p CurveParameters
	p.LoopScalar = loopScalar
	p.LoopScalarNegative = loopScalarNegative
	p.Twist = TwistM
	p.CoeffBG1 = bG1
	p.CoeffBG2 = bG2
	p.Cofactor.Set(&cofactorG1)
	p.CofactorInv = cofactorG1Inv
	p.G1Gen = g1Gen
	p.G2Gen = g2Gen
	p.Beta = beta
	p.PsiX = psiX
	p.PsiY = psiY
	return p
}

var (
	bG1 fp.Element
	bG2 E2

	cofactorG1    big.Int
	cofactorG1Inv fr.Element

	g1Gen G1Affine
	g2Gen G2Affine

	// beta is a non-trivial cube root of unity in Fq; (x,y) ↦ (beta·x, y)
	// is the curve endomorphism used by the G1 subgroup check.
	beta fp.Element

	// psiX, psiY are the untwist-Frobenius-twist coefficients of the
	// p-power endomorphism ψ on G2: ψ(x,y) = (psiX·x̄, psiY·ȳ).
	psiX E2
	psiY E2
)

func init() {
	bG1.SetUint64(4)
	bG2.A0.SetUint64(4)
	bG2.A1.SetUint64(4)

	cofactorG1.SetString("76329603384216526031706109802092473003", 10)
	mustFr(&cofactorG1Inv, "52435875175126190458656871551744051925719901746859129887267498875565241663483")

	mustFp(&g1Gen.X, "3685416753713387016781088315183077757961620795782546409894578378688607592378376318836054947676345821548104185464507")
	mustFp(&g1Gen.Y, "1339506544944476473020471379941921221584933875938349620426543736416511423956333506472724655353366534992391756441569")

	mustFp(&g2Gen.X.A0, "352701069587466618187139116011060144890029952792775240219908644239793785735715026873347600343865175952761926303160")
	mustFp(&g2Gen.X.A1, "3059144344244213709971259814753781636986470325476647558659373206291635324768958432433509563104347017837885763365758")
	mustFp(&g2Gen.Y.A0, "1985150602287291935568054521177171638300868978215655730859378665066344726373823718423869104263333984641494340347905")
	mustFp(&g2Gen.Y.A1, "927553665492332455747201965776037880757740193453592970025027978793976877002675564980949289727957565575433344219582")

	mustFp(&beta, "793479390729215512621379701633421447060886740281060493010456487427281649075476305620758731620350")

	mustFp(&psiX.A1, "4002409555221667392624310435006688643935503118305586438271171395842971157480381377015405980053539358417135540939437")
	mustFp(&psiY.A0, "2973677408986561043442465346520108879172042883009249989176415018091420807192182638567116318576472649347015917690530")
	mustFp(&psiY.A1, "1028732146235106349975324479215795277384839936929757896155643118032610843298655225875571310552543014690878354869257")
}

func mustFp(z *fp.Element, s string) {
	if _, err := z.SetString(s); err != nil {
		panic(err)
	}
}

func mustFr(z *fr.Element, s string) {
	if _, err := z.SetString(s); err != nil {
		panic(err)
	}
}
