package glv

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/msmlabs/bls12381msm/internal/curve8"
	"github.com/msmlabs/bls12381msm/internal/curvebackend"
	"github.com/msmlabs/bls12381msm/internal/fp52"
)

func TestLambdaIsCubeRootOfUnity(t *testing.T) {
	lambda := Lambda()
	r := fr.Modulus()

	lhs := new(big.Int).Mul(lambda, lambda)
	lhs.Add(lhs, lambda)
	lhs.Add(lhs, big.NewInt(1))
	lhs.Mod(lhs, r)
	if lhs.Sign() != 0 {
		t.Fatalf("lambda^2+lambda+1 != 0 mod r: got %s", lhs.String())
	}
	if lambda.Cmp(big.NewInt(1)) == 0 {
		t.Fatal("lambda must not be the trivial cube root 1")
	}
}

// TestMulLambdaMatchesScalarMultiplication is spec Testable Property #5:
// mulLambda(P) = lambda*P, verified against lambda*P computed by plain
// scalar multiplication rather than by the endomorphism. This is the
// check that catches lambda and curve8.MulLambda's beta disagreeing on
// which cube root of unity they mean (resolveLambda in split.go exists
// precisely to make this pass).
func TestMulLambdaMatchesScalarMultiplication(t *testing.T) {
	lambda := Lambda()
	q := cofactorTestPoint()
	if q.IsInfinityAll() == 0xff {
		t.Fatal("cofactor-cleared test point is the identity")
	}

	var phiQ curve8.Point8
	phiQ.MulLambda(&q)

	want := scalarMulPoint8(&q, lambda)
	if phiQ.IsEqualAll(&want) != 0xff {
		t.Fatal("MulLambda(Q) != Lambda()*Q for a point in the order-r subgroup")
	}
}

func TestSplitRecombines(t *testing.T) {
	r := fr.Modulus()
	lambda := Lambda()

	for trial := 0; trial < 30; trial++ {
		k, err := rand.Int(rand.Reader, r)
		if err != nil {
			t.Fatal(err)
		}
		d := Split(k)

		k1 := new(big.Int).Set(d.K1)
		if d.Neg1 {
			k1.Neg(k1)
		}
		k2 := new(big.Int).Set(d.K2)
		if d.Neg2 {
			k2.Neg(k2)
		}

		got := new(big.Int).Mul(k2, lambda)
		got.Add(got, k1)
		got.Mod(got, r)

		want := new(big.Int).Mod(k, r)
		if got.Cmp(want) != 0 {
			t.Fatalf("k1+k2*lambda != k mod r for k=%s", k.String())
		}

		// Both halves should be roughly half r's bit length (GLV's whole
		// point): allow generous slack since Babai rounding is not
		// perfectly tight, but a regression to full-width halves would
		// indicate a broken basis reduction.
		half := r.BitLen()/2 + 8
		if d.K1.BitLen() > half || d.K2.BitLen() > half {
			t.Fatalf("split halves too wide: |k1|.BitLen()=%d |k2|.BitLen()=%d, r.BitLen()=%d",
				d.K1.BitLen(), d.K2.BitLen(), r.BitLen())
		}
	}
}

func TestRecodeRoundTrip(t *testing.T) {
	for trial := 0; trial < 30; trial++ {
		bound := new(big.Int).Lsh(big.NewInt(1), 130)
		k, err := rand.Int(rand.Reader, bound)
		if err != nil {
			t.Fatal(err)
		}
		digits := Recode(k)

		got := big.NewInt(0)
		for i := len(digits) - 1; i >= 0; i-- {
			got.Lsh(got, Window)
			got.Add(got, big.NewInt(int64(digits[i])))
		}
		if got.Cmp(k) != 0 {
			t.Fatalf("Recode round trip mismatch: got %s want %s", got.String(), k.String())
		}
		for _, d := range digits {
			if d < -TableSize+1 || d >= TableSize {
				t.Fatalf("digit %d out of range for TableSize %d", d, TableSize)
			}
		}
	}
}

func TestBuildTableAndGather(t *testing.T) {
	base := genTestPoint(t)
	tbl := BuildTable(&base)

	if tbl[0].IsInfinityAll() != 0xff {
		t.Fatal("tbl[0] must be the identity")
	}

	var two curve8.Point8
	two.Add(&tbl[1], &tbl[1])
	if two.IsEqualAll(&tbl[2]) != 0xff {
		t.Fatal("tbl[2] != 2*tbl[1]")
	}

	digits := [8]int32{0, 1, -1, 16, -16, 5, -5, 3}
	got := GatherSigned8(&tbl, digits)

	for lane, d := range digits {
		idx := d
		neg := false
		if idx < 0 {
			idx = -idx
			neg = true
		}
		want := tbl[idx]
		if neg {
			var negP curve8.Point8
			negP.Neg(&want)
			want = negP
		}
		var singleGot, singleWant curve8.Point8
		singleGot.Select(&got, &singleGot, 1<<uint(lane))
		singleWant.Select(&want, &singleWant, 1<<uint(lane))
		if singleGot.IsEqualAll(&singleWant)&(1<<uint(lane)) == 0 {
			t.Fatalf("lane %d: GatherSigned8 mismatch for digit %d", lane, d)
		}
	}
}

// genTestPoint is the same brute-force small curve point construction
// internal/curve8's own tests use, duplicated here since it is a tiny,
// self-contained helper and this package should not import curve8's
// test-only helpers.
func genTestPoint(t *testing.T) curve8.Point8 {
	t.Helper()
	p, _ := new(big.Int).SetString("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
	b := big.NewInt(4)
	var x, y *big.Int
	for i := int64(1); i < 10000; i++ {
		xi := big.NewInt(i)
		rhs := new(big.Int).Exp(xi, big.NewInt(3), p)
		rhs.Add(rhs, b)
		rhs.Mod(rhs, p)
		yi := new(big.Int).ModSqrt(rhs, p)
		if yi != nil {
			x, y = xi, yi
			break
		}
	}
	if x == nil {
		t.Fatal("no small curve point found")
	}

	var xe, ye curvebackend.Fp
	xe.SetBigInt(x)
	ye.SetBigInt(y)

	var xs, ys fp52.F8
	mx := fp52.ToMont(curvebackend.DenseWords(&xe))
	my := fp52.ToMont(curvebackend.DenseWords(&ye))
	for i := 0; i < 8; i++ {
		xs.SetLane(i, mx)
		ys.SetLane(i, my)
	}
	return curve8.FromAffine(xs, ys)
}
