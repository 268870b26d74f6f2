package bls12381msm

import (
	"math/big"
	"testing"

	"github.com/msmlabs/bls12381msm/internal/curvebackend"
	"github.com/msmlabs/bls12381msm/internal/glv"
)

func TestMulEachAgainstNaive(t *testing.T) {
	const n = 24 // three groups of eight
	points, scalars := testVectors(t, n)
	orig := make([]curvebackend.G1Affine, n)
	copy(orig, points)

	want := make([]curvebackend.G1Affine, n)
	for i := range orig {
		var jac curvebackend.G1Jac
		curvebackend.ScalarMulTail(&jac, &orig[i], &scalars[i])
		want[i].FromJacobian(&jac)
	}

	if err := MulEach(points, scalars); err != nil {
		t.Fatal(err)
	}
	for i := range points {
		if !points[i].X.Equal(&want[i].X) || !points[i].Y.Equal(&want[i].Y) {
			t.Fatalf("point %d: MulEach disagrees with naive scalar mul", i)
		}
	}
}

func TestMulEachSpecialScalars(t *testing.T) {
	base := basePoint(t)
	lambda := glv.Lambda()

	specials := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Mod(lambda, frModulus),
		new(big.Int).Mod(new(big.Int).Add(big.NewInt(7), new(big.Int).Mul(big.NewInt(3), lambda)), frModulus),
		new(big.Int).Mod(new(big.Int).Add(big.NewInt(1), new(big.Int).Mul(big.NewInt(5), lambda)), frModulus),
	}
	for len(specials) < 8 {
		specials = append(specials, big.NewInt(int64(len(specials))))
	}

	points := make([]curvebackend.G1Affine, 8)
	scalars := make([]curvebackend.Fr, 8)
	for i := range points {
		points[i] = base
		scalars[i].SetBigInt(specials[i])
	}

	want := make([]curvebackend.G1Affine, 8)
	for i := range points {
		var jac curvebackend.G1Jac
		curvebackend.ScalarMulTail(&jac, &base, &scalars[i])
		want[i].FromJacobian(&jac)
	}

	if err := MulEach(points, scalars); err != nil {
		t.Fatal(err)
	}
	for i := range points {
		if specials[i].Sign() == 0 {
			if !points[i].X.IsZero() || !points[i].Y.IsZero() {
				t.Fatalf("0*P should be the identity, got non-identity at index %d", i)
			}
			continue
		}
		if !points[i].X.Equal(&want[i].X) || !points[i].Y.Equal(&want[i].Y) {
			t.Fatalf("point %d (scalar %s): MulEach disagrees with naive scalar mul", i, specials[i].String())
		}
	}
}

func TestMulEachLengthMismatch(t *testing.T) {
	points, scalars := testVectors(t, 8)
	if err := MulEach(points, scalars[:7]); err != ErrLengthMismatch {
		t.Fatalf("got %v, want ErrLengthMismatch", err)
	}
}

func TestMulEachAlignment(t *testing.T) {
	points, scalars := testVectors(t, 9)
	if err := MulEach(points, scalars); err != ErrMulEachAlignment {
		t.Fatalf("got %v, want ErrMulEachAlignment", err)
	}
}
