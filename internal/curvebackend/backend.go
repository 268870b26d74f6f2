// Package curvebackend is the external ABI boundary: a thin layer of
// named aliases and conversion helpers over gnark-crypto's BLS12-381
// implementation, which supplies everything this module treats as an
// "external collaborator" — dense Fr/Fp arithmetic, G1 group law, and
// single-point scalar multiplication for the tail of a batch that does
// not divide evenly into eight-wide lanes. Nothing in this package does
// its own field or curve arithmetic; it exists so the rest of the
// module names these types in one place.
package curvebackend

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Fr is a BLS12-381 scalar field element (4 Montgomery limbs).
type Fr = fr.Element

// Fp is a BLS12-381 base field element (6 Montgomery limbs).
type Fp = fp.Element

// G1Affine is a G1 point in affine coordinates.
type G1Affine = bls12381.G1Affine

// G1Jac is a G1 point in Jacobian coordinates.
type G1Jac = bls12381.G1Jac

// DenseWords returns x's raw Montgomery limbs as a plain [6]uint64,
// the representation internal/fp52's ToMont/FromMont round-trip
// against.
func DenseWords(x *Fp) [6]uint64 {
	return [6]uint64(*x)
}

// FpFromWords builds an Fp from raw Montgomery limbs, the inverse of
// DenseWords.
func FpFromWords(w [6]uint64) Fp {
	return Fp(w)
}

// AffineToWords returns a G1Affine point's (x, y) coordinates as raw
// dense Montgomery words, in the 3x6-word/stride-18 layout
// internal/fp52.CvtFromG1Ax expects, with z implicitly set to the
// Montgomery encoding of 1 (or of 0 when the point is at infinity).
func AffineToWords(p *G1Affine) (x, y, z [6]uint64) {
	x = DenseWords(&p.X)
	y = DenseWords(&p.Y)
	var one Fp
	one.SetOne()
	if p.X.IsZero() && p.Y.IsZero() {
		var zero Fp
		z = DenseWords(&zero)
		return
	}
	z = DenseWords(&one)
	return
}

// WordsToAffine is AffineToWords's inverse for a normalized point
// (z already divided out). It takes only x and y and does no identity
// check: x = y = 0 yields gnark-crypto's affine encoding of the identity.
func WordsToAffine(x, y [6]uint64) G1Affine {
	var p G1Affine
	p.X = FpFromWords(x)
	p.Y = FpFromWords(y)
	return p
}

// Identity returns the G1 identity element in Jacobian coordinates.
func Identity() G1Jac {
	var z G1Jac
	z.X.SetOne()
	z.Y.SetOne()
	z.Z.SetZero()
	return z
}

// ScalarMulTail computes out = s*p using gnark-crypto's own scalar
// multiplication, for the leftover tail of a batch whose length is not
// a multiple of eight lanes.
func ScalarMulTail(out *G1Jac, p *G1Affine, s *Fr) {
	var pj G1Jac
	pj.FromAffine(p)
	var sInt big.Int
	s.ToBigIntRegular(&sInt)
	out.ScalarMultiplication(&pj, &sInt)
}
