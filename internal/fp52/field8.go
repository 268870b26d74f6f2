package fp52

import "github.com/msmlabs/bls12381msm/internal/simd"

// F8 packs eight Fp values as eight 512-bit vectors v[0..7], where v[j]
// holds limb j of all eight lanes (structure of arrays): for every j,
// F8.v[j][i] is limb j of lane i. This is the layout an AVX-512 load
// into a single zmm register would produce; every method below operates
// elementwise across the eight lanes.
type F8 struct {
	v [nLimbs][lanes]uint64
}

// Zero and One are the F8-wide identity elements, broadcast to all lanes.
var (
	zero8 = F8{}
	one8  = broadcast(oneElem)
)

func broadcast(e Elem) F8 {
	var f F8
	for i := 0; i < lanes; i++ {
		for j := 0; j < nLimbs; j++ {
			f.v[j][i] = e[j]
		}
	}
	return f
}

// Zero returns an F8 with every lane set to the additive identity.
func Zero() F8 { return zero8 }

// One returns an F8 with every lane set to the multiplicative identity.
func One() F8 { return one8 }

// Broadcast3B returns an F8 with every lane set to 3*b, the curve
// constant the complete Weierstrass addition/doubling formulas need
// (b=4 for BLS12-381 G1, so this is 12 in every lane).
func Broadcast3B() F8 { return broadcast(b3Elem) }

// BroadcastBeta returns an F8 with every lane set to beta, the
// primitive cube root of unity in Fp used by the G1 endomorphism.
func BroadcastBeta() F8 { return broadcast(betaElem) }

// Lane extracts lane i as a single Elem.
func (f *F8) Lane(i int) Elem {
	var e Elem
	for j := 0; j < nLimbs; j++ {
		e[j] = f.v[j][i]
	}
	return e
}

// SetLane writes e into lane i.
func (f *F8) SetLane(i int, e Elem) {
	for j := 0; j < nLimbs; j++ {
		f.v[j][i] = e[j]
	}
}

func (f *F8) eachLane(x, y *F8, op func(z, a, b *Elem)) *F8 {
	for i := 0; i < lanes; i++ {
		xe, ye := x.Lane(i), y.Lane(i)
		var ze Elem
		op(&ze, &xe, &ye)
		f.SetLane(i, ze)
	}
	return f
}

// Add sets z = x+y lanewise and returns z. Unlike Sub/Mul/Sqr (which
// round-trip through a per-lane Elem and the scalar elem*.go helpers),
// Add works directly on the structure-of-arrays limb vectors v[j] --
// each one already is an internal/simd.Lane8, limb j across all eight
// lanes, the exact shape simd.AddMod52 expects -- carrying the per-lane
// carry-out sequentially across the eight limb positions the same way
// a real vector CPU would chain vpaddq/vpsrlq across limb index, not
// across lanes. The final conditional subtract of p is a lanewise
// select via simd.SelectMask (through F8.Select), not a branch.
func (z *F8) Add(x, y *F8) *F8 {
	var sum F8
	var carry simd.Lane8
	for j := 0; j < nLimbs; j++ {
		s1, c1 := simd.AddMod52(x.v[j], y.v[j])
		s2, c2 := simd.AddMod52(s1, carry)
		sum.v[j] = s2
		for i := range carry {
			carry[i] = c1[i] + c2[i]
		}
	}
	return z.condSub8(&sum)
}

// condSub8 subtracts p from sum lanewise wherever sum >= p. The trial
// subtraction's borrow chain runs one lane at a time (internal/simd
// exposes no vector subtractor, only the adder and the blend), but the
// result is committed with a single lanewise simd.SelectMask blend via
// F8.Select rather than a per-lane branch.
func (z *F8) condSub8(sum *F8) *F8 {
	var trial F8
	var keepSum uint8
	for i := 0; i < lanes; i++ {
		se := sum.Lane(i)
		var te Elem
		var borrow int64
		for j := 0; j < nLimbs; j++ {
			d := int64(se[j]) - int64(p[j]) - borrow
			if d < 0 {
				d += int64(1) << limbBits
				borrow = 1
			} else {
				borrow = 0
			}
			te[j] = uint64(d)
		}
		trial.SetLane(i, te)
		if borrow != 0 {
			// sum < p: trial subtraction underflowed, keep sum.
			keepSum |= 1 << uint(i)
		}
	}
	return z.Select(sum, &trial, keepSum)
}

// Sub sets z = x-y lanewise and returns z.
func (z *F8) Sub(x, y *F8) *F8 { return z.eachLane(x, y, elemSub) }

// Mul sets z = x*y lanewise (Montgomery product) and returns z.
func (z *F8) Mul(x, y *F8) *F8 { return z.eachLane(x, y, elemMul) }

// Sqr sets z = x*x lanewise and returns z.
func (z *F8) Sqr(x *F8) *F8 {
	for i := 0; i < lanes; i++ {
		xe := x.Lane(i)
		var ze Elem
		elemSqr(&ze, &xe)
		z.SetLane(i, ze)
	}
	return z
}

// Neg sets z = -x lanewise and returns z.
func (z *F8) Neg(x *F8) *F8 {
	for i := 0; i < lanes; i++ {
		xe := x.Lane(i)
		var ze Elem
		elemNeg(&ze, &xe)
		z.SetLane(i, ze)
	}
	return z
}

// Pow sets z = x^e lanewise using fixed-window (w=4) left-to-right
// exponentiation against a 16-entry precomputed table, as spec.md's C2
// describes. e is the lanewise exponent as a big-endian nibble stream,
// most significant nibble first, one slice of nibbles per lane.
func (z *F8) Pow(x *F8, eNibbles [][]byte) *F8 {
	for i := 0; i < lanes; i++ {
		xe := x.Lane(i)
		z.SetLane(i, powElem(xe, eNibbles[i]))
	}
	return z
}

func powElem(x Elem, nibbles []byte) Elem {
	var tbl [16]Elem
	tbl[0] = oneElem
	tbl[1] = x
	for i := 2; i < 16; i++ {
		elemMul(&tbl[i], &tbl[i-1], &x)
	}
	acc := oneElem
	for _, n := range nibbles {
		for k := 0; k < 4; k++ {
			elemSqr(&acc, &acc)
		}
		gathered := gatherElem(tbl[:], int(n))
		elemMul(&acc, &acc, &gathered)
	}
	return acc
}

func gatherElem(tbl []Elem, idx int) Elem {
	var out Elem
	for i, e := range tbl {
		cond := i == idx
		elemSelect(&out, &e, &out, cond)
	}
	return out
}

// Select sets z = lane-i(a) if mask bit i is set else lane-i(b), for
// every lane, and returns z. mask's low `lanes` bits are the predicate.
// Implemented as a limb-major simd.SelectMask blend (the vpblendmq
// internal/simd documents) rather than a per-lane branch.
func (z *F8) Select(a, b *F8, mask uint8) *F8 {
	var lm simd.Lane8
	for i := 0; i < lanes; i++ {
		if mask&(1<<uint(i)) != 0 {
			lm[i] = ^uint64(0)
		}
	}
	for j := 0; j < nLimbs; j++ {
		z.v[j] = simd.SelectMask(a.v[j], b.v[j], lm)
	}
	return z
}

// IsZero returns a per-lane predicate mask with bit i set iff lane i is 0.
func (f *F8) IsZero() uint8 {
	var mask uint8
	for i := 0; i < lanes; i++ {
		e := f.Lane(i)
		if elemIsZero(&e) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// IsEqualAll returns a per-lane predicate mask with bit i set iff lane i
// of x equals lane i of y.
func (x *F8) IsEqualAll(y *F8) uint8 {
	var mask uint8
	for i := 0; i < lanes; i++ {
		xe, ye := x.Lane(i), y.Lane(i)
		if elemEqual(&xe, &ye) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
