package fp52

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// randElem returns a uniformly random Elem already in the
// Montgomery-R416 domain (i.e. a valid operand for elemSub/elemMul as
// they are actually used elsewhere in this package).
func randElem(t *testing.T) Elem {
	t.Helper()
	v, err := rand.Int(rand.Reader, pBig)
	if err != nil {
		t.Fatal(err)
	}
	r416 := new(big.Int).Mod(new(big.Int).Mul(v, rBig), pBig)
	var mont Elem
	fromBig(&mont, r416)
	return mont
}

func randF8(t *testing.T) F8 {
	t.Helper()
	var f F8
	for i := 0; i < lanes; i++ {
		f.SetLane(i, randElem(t))
	}
	return f
}

func TestLimbsCanonical(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		e := randElem(t)
		for _, limb := range e {
			if limb > mask52 {
				t.Fatalf("limb %#x exceeds 52 bits", limb)
			}
		}
	}
}

func TestToMontFromMontRoundTrip(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		v, err := rand.Int(rand.Reader, pBig)
		if err != nil {
			t.Fatal(err)
		}
		dense := denseMontR384(v)
		packed := ToMont(dense)
		back := FromMont(packed)
		if back != dense {
			t.Fatalf("round trip mismatch: got %x want %x", back, dense)
		}
	}
}

// denseMontR384 encodes v (a plain residue mod p) into the 6x64
// Montgomery-R384 form gnark-crypto's fp.Element uses.
func denseMontR384(v *big.Int) [6]uint64 {
	r384 := new(big.Int).Exp(big.NewInt(2), big.NewInt(384), pBig)
	mont := new(big.Int).Mod(new(big.Int).Mul(v, r384), pBig)
	var out [6]uint64
	t := new(big.Int).Set(mont)
	mask := new(big.Int).SetUint64(^uint64(0))
	for i := 0; i < 6; i++ {
		word := new(big.Int).And(t, mask)
		out[i] = word.Uint64()
		t.Rsh(t, 64)
	}
	return out
}

func TestRawSplitConcatRoundTrip(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		v, err := rand.Int(rand.Reader, pBig)
		if err != nil {
			t.Fatal(err)
		}
		dense := denseMontR384(v)
		split := rawSplit52(dense)
		back := concat52(split)
		if back != dense {
			t.Fatalf("rawSplit52/concat52 round trip mismatch: got %x want %x", back, dense)
		}
	}
}

func TestAddCommutative(t *testing.T) {
	a, b := randF8(t), randF8(t)
	var ab, ba F8
	ab.Add(&a, &b)
	ba.Add(&b, &a)
	if ab.IsEqualAll(&ba) != 0xff {
		t.Fatal("a+b != b+a")
	}
}

func TestMulCommutative(t *testing.T) {
	a, b := randF8(t), randF8(t)
	var ab, ba F8
	ab.Mul(&a, &b)
	ba.Mul(&b, &a)
	if ab.IsEqualAll(&ba) != 0xff {
		t.Fatal("a*b != b*a")
	}
}

func TestMulByOneIsIdentity(t *testing.T) {
	a := randF8(t)
	one := One()
	var got F8
	got.Mul(&a, &one)
	if got.IsEqualAll(&a) != 0xff {
		t.Fatal("a*1 != a")
	}
}

func TestAddNegIsZero(t *testing.T) {
	a := randF8(t)
	var neg, sum F8
	neg.Neg(&a)
	sum.Add(&a, &neg)
	if sum.IsZero() != 0xff {
		t.Fatal("a+(-a) != 0")
	}
}

func TestSqrMatchesMul(t *testing.T) {
	a := randF8(t)
	var sqr, mul F8
	sqr.Sqr(&a)
	mul.Mul(&a, &a)
	if sqr.IsEqualAll(&mul) != 0xff {
		t.Fatal("sqr(a) != mul(a,a)")
	}
}

func TestInvertOneRoundTrip(t *testing.T) {
	a := randF8(t)
	// avoid the zero lane pathologically landing in every trial; not
	// fatal if it does since BatchInvert maps 0 to 0 and 0*0=0 != 1,
	// so force a nonzero value in every lane instead.
	one := One()
	a.Select(&one, &a, a.IsZero())

	inv := InvertOne(a)
	var prod F8
	prod.Mul(&a, &inv)
	want := One()
	if prod.IsEqualAll(&want) != 0xff {
		t.Fatal("a*inv(a) != 1")
	}
}

func TestSelectPerLane(t *testing.T) {
	a, b := randF8(t), randF8(t)
	var got F8
	got.Select(&a, &b, 0x55) // lanes 0,2,4,6 from a; 1,3,5,7 from b
	for i := 0; i < lanes; i++ {
		want := b.Lane(i)
		if i%2 == 0 {
			want = a.Lane(i)
		}
		if got.Lane(i) != want {
			t.Fatalf("lane %d: select mismatch", i)
		}
	}
}

func TestF16MatchesF8Halves(t *testing.T) {
	a8, b8 := randF8(t), randF8(t)
	var f16a, f16b F16
	for i := 0; i < lanes; i++ {
		f16a.SetLane(i, a8.Lane(i))
		f16a.SetLane(i+lanes, a8.Lane(i))
		f16b.SetLane(i, b8.Lane(i))
		f16b.SetLane(i+lanes, b8.Lane(i))
	}
	var sum8, sum16 F8
	sum8.Add(&a8, &b8)
	var sum16w F16
	sum16w.Add(&f16a, &f16b)
	sum16 = sum16w.Lo
	if sum16.IsEqualAll(&sum8) != 0xff {
		t.Fatal("F16.Add lo half disagrees with F8.Add")
	}
}

func TestTrans8x8(t *testing.T) {
	var m [8][8]uint64
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			m[i][j] = uint64(10*i + j)
		}
	}
	got := trans8x8(m)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if got[j][i] != m[i][j] {
				t.Fatalf("trans8x8[%d][%d] = %d, want %d", j, i, got[j][i], m[i][j])
			}
		}
	}
}

func TestGatherScatterRoundTrip(t *testing.T) {
	var lanesIn [8]Elem
	for i := range lanesIn {
		lanesIn[i] = randElem(t)
	}
	f := Gather(lanesIn[0], lanesIn[1], lanesIn[2], lanesIn[3], lanesIn[4], lanesIn[5], lanesIn[6], lanesIn[7])
	out := Scatter(&f)
	if out != lanesIn {
		t.Fatal("Gather/Scatter round trip mismatch")
	}
}
