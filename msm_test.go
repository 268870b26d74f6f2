package bls12381msm

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/msmlabs/bls12381msm/internal/curvebackend"
)

// fpModulus and frModulus are the public BLS12-381 field moduli, used
// only to build test fixtures (small curve points, random scalars).
var fpModulus, _ = new(big.Int).SetString("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
var frModulus, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// basePoint brute-forces a small affine point on y^2=x^3+4 over Fp, the
// same seed every test in this package works from.
func basePoint(t *testing.T) curvebackend.G1Affine {
	t.Helper()
	b := big.NewInt(4)
	for x := int64(1); x < 10000; x++ {
		xBig := big.NewInt(x)
		rhs := new(big.Int).Exp(xBig, big.NewInt(3), fpModulus)
		rhs.Add(rhs, b)
		rhs.Mod(rhs, fpModulus)
		y := new(big.Int).ModSqrt(rhs, fpModulus)
		if y == nil {
			continue
		}
		var p curvebackend.G1Affine
		p.X.SetBigInt(xBig)
		p.Y.SetBigInt(y)
		return p
	}
	t.Fatal("no small curve point found")
	return curvebackend.G1Affine{}
}

func randFr(t *testing.T) curvebackend.Fr {
	t.Helper()
	v, err := rand.Int(rand.Reader, frModulus)
	if err != nil {
		t.Fatal(err)
	}
	var s curvebackend.Fr
	s.SetBigInt(v)
	return s
}

// testVectors builds n distinct points (i*base+base, i.e. (i+1)*base)
// and n random scalars.
func testVectors(t *testing.T, n int) ([]curvebackend.G1Affine, []curvebackend.Fr) {
	t.Helper()
	base := basePoint(t)
	points := make([]curvebackend.G1Affine, n)
	scalars := make([]curvebackend.Fr, n)
	for i := 0; i < n; i++ {
		points[i].ScalarMultiplication(&base, big.NewInt(int64(i+1)))
		scalars[i] = randFr(t)
	}
	return points, scalars
}

func naiveMSM(points []curvebackend.G1Affine, scalars []curvebackend.Fr) curvebackend.G1Jac {
	total := curvebackend.Identity()
	for i := range points {
		var term curvebackend.G1Jac
		curvebackend.ScalarMulTail(&term, &points[i], &scalars[i])
		total.AddAssign(&term)
	}
	return total
}

func assertJacEqual(t *testing.T, got, want *curvebackend.G1Jac, msg string) {
	t.Helper()
	var gotAff, wantAff curvebackend.G1Affine
	gotAff.FromJacobian(got)
	wantAff.FromJacobian(want)
	if !gotAff.X.Equal(&wantAff.X) || !gotAff.Y.Equal(&wantAff.Y) {
		t.Fatalf("%s: mismatch", msg)
	}
}

func TestMulVecAgainstNaive(t *testing.T) {
	for _, n := range []int{8, 64, 1031} {
		n := n
		t.Run("", func(t *testing.T) {
			points, scalars := testVectors(t, n)
			want := naiveMSM(points, scalars)

			var got curvebackend.G1Jac
			if err := MulVec(&got, points, scalars, 0); err != nil {
				t.Fatal(err)
			}
			assertJacEqual(t, &got, &want, "MulVec disagrees with naive sum")
		})
	}
}

func TestMulVecTailPath(t *testing.T) {
	// 8203 = 8*1025 + 3, not divisible by 8: exercises the scalar-tail path.
	const n = 8203
	points, scalars := testVectors(t, n)
	want := naiveMSM(points, scalars)

	var got curvebackend.G1Jac
	if err := MulVec(&got, points, scalars, 0); err != nil {
		t.Fatal(err)
	}
	assertJacEqual(t, &got, &want, "MulVec tail path disagrees with naive sum")
}

func TestMulVecIdentityPoints(t *testing.T) {
	points, scalars := testVectors(t, 16)
	// Replace a few points with the identity.
	points[0] = curvebackend.G1Affine{}
	points[3] = curvebackend.G1Affine{}
	want := naiveMSM(points, scalars)

	var got curvebackend.G1Jac
	if err := MulVec(&got, points, scalars, 0); err != nil {
		t.Fatal(err)
	}
	assertJacEqual(t, &got, &want, "MulVec with identity points disagrees with naive sum")
}

func TestMulVecEqualConsecutivePoints(t *testing.T) {
	points, scalars := testVectors(t, 16)
	for i := 1; i < len(points); i += 2 {
		points[i] = points[i-1]
	}
	want := naiveMSM(points, scalars)

	var got curvebackend.G1Jac
	if err := MulVec(&got, points, scalars, 0); err != nil {
		t.Fatal(err)
	}
	assertJacEqual(t, &got, &want, "MulVec with equal consecutive points disagrees with naive sum")
}

func TestMulVecBucketOverride(t *testing.T) {
	points, scalars := testVectors(t, 64)
	want := naiveMSM(points, scalars)

	for _, b := range []int{2, 5, 10, 20} {
		var got curvebackend.G1Jac
		if err := MulVec(&got, points, scalars, b); err != nil {
			t.Fatalf("bucketOverride=%d: %v", b, err)
		}
		assertJacEqual(t, &got, &want, "MulVec result depends on bucket width")
	}
}

func TestMulVecEmpty(t *testing.T) {
	var got curvebackend.G1Jac
	if err := MulVec(&got, nil, nil, 0); err != nil {
		t.Fatal(err)
	}
	want := curvebackend.Identity()
	assertJacEqual(t, &got, &want, "MulVec([]) != identity")
}

func TestMulVecLengthMismatch(t *testing.T) {
	points, scalars := testVectors(t, 8)
	var got curvebackend.G1Jac
	if err := MulVec(&got, points, scalars[:7], 0); err != ErrLengthMismatch {
		t.Fatalf("got %v, want ErrLengthMismatch", err)
	}
}

func TestMulVecInvalidBucketWidth(t *testing.T) {
	points, scalars := testVectors(t, 8)
	var got curvebackend.G1Jac
	if err := MulVec(&got, points, scalars, 1); err != ErrInvalidBucketWidth {
		t.Fatalf("got %v, want ErrInvalidBucketWidth", err)
	}
	if err := MulVec(&got, points, scalars, 21); err != ErrInvalidBucketWidth {
		t.Fatalf("got %v, want ErrInvalidBucketWidth", err)
	}
}

func TestMulVecMTAgainstMulVec(t *testing.T) {
	points, scalars := testVectors(t, 257)
	var want curvebackend.G1Jac
	if err := MulVec(&want, points, scalars, 0); err != nil {
		t.Fatal(err)
	}

	var got curvebackend.G1Jac
	if err := MulVecMT(&got, points, scalars, 0); err != nil {
		t.Fatal(err)
	}
	assertJacEqual(t, &got, &want, "MulVecMT disagrees with MulVec")
}

func TestHeuristicIndependence(t *testing.T) {
	// The bucket-width heuristic must not change the answer, only the
	// work schedule: spot check a handful of n values against the
	// default (heuristic) choice.
	for _, n := range []int{8, 128, 2000} {
		points, scalars := testVectors(t, n)
		var def curvebackend.G1Jac
		if err := MulVec(&def, points, scalars, 0); err != nil {
			t.Fatal(err)
		}
		for _, b := range []int{2, 8, 16} {
			var got curvebackend.G1Jac
			if err := MulVec(&got, points, scalars, b); err != nil {
				t.Fatal(err)
			}
			assertJacEqual(t, &got, &def, "bucket width changed MulVec's answer")
		}
	}
}
