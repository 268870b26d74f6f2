// Package curve8 implements G1 group arithmetic over eight-wide packed
// points (C3): each Point8 holds eight BLS12-381 G1 points in projective
// coordinates, one per fp52.F8 lane, and every method operates on all
// eight lanes at once.
//
// Addition and doubling use the complete, branch-free formulas for
// short Weierstrass curves with a=0 from Renes, Costello and Batina,
// "Complete addition formulas for prime order elliptic curves" (2015),
// algorithms 7 and 9. They are "complete" in the sense that they handle
// P=Q, P=-Q, and either operand at infinity without a separate code
// path, which is exactly what a fixed-schedule SIMD kernel needs: every
// lane runs the same sequence of field ops regardless of which lanes
// hold degenerate inputs.
package curve8

import "github.com/msmlabs/bls12381msm/internal/fp52"

// Point8 is eight G1 points in projective (X:Y:Z) coordinates, one per
// lane. The identity is represented by Z=0 (X,Y arbitrary but kept at
// 0,1 by this package's constructors).
type Point8 struct {
	X, Y, Z fp52.F8
}

// b3 is 3*b in the packed Montgomery domain, broadcast to all eight
// lanes; BLS12-381's G1 equation is y^2=x^3+4, so b3=12.
var b3 = fp52.Broadcast3B()

// beta is the packed Montgomery encoding of the G1 endomorphism's cube
// root of unity, broadcast to all eight lanes.
var beta = fp52.BroadcastBeta()

// Infinity8 returns eight copies of the point at infinity.
func Infinity8() Point8 {
	one := fp52.One()
	return Point8{X: fp52.Zero(), Y: one, Z: fp52.Zero()}
}

// FromAffine builds a Point8 from eight affine (x,y) coordinates,
// packed as F8 pairs, setting Z=1 in every lane. A lane with x=y=0 is
// treated as the point at infinity, matching the gnark-crypto affine
// convention this package's external ABI shares.
func FromAffine(x, y fp52.F8) Point8 {
	var p Point8
	p.X = x
	p.Y = y
	p.Z = fp52.One()
	zeroMask := x.IsZero() & y.IsZero()
	if zeroMask != 0 {
		inf := Infinity8()
		p.X.Select(&inf.X, &p.X, zeroMask)
		p.Y.Select(&inf.Y, &p.Y, zeroMask)
		p.Z.Select(&inf.Z, &p.Z, zeroMask)
	}
	return p
}

// Add sets z = p+q lanewise using the complete addition law (algorithm
// 7) and returns z. z may alias p or q.
func (z *Point8) Add(p, q *Point8) *Point8 {
	var t0, t1, t2, t3, t4, x3, y3, z3 fp52.F8

	t0.Mul(&p.X, &q.X)
	t1.Mul(&p.Y, &q.Y)
	t2.Mul(&p.Z, &q.Z)

	t3.Add(&p.X, &p.Y)
	t4.Add(&q.X, &q.Y)
	t3.Mul(&t3, &t4)
	t4.Add(&t0, &t1)
	t3.Sub(&t3, &t4)

	t4.Add(&p.Y, &p.Z)
	x3.Add(&q.Y, &q.Z)
	t4.Mul(&t4, &x3)
	x3.Add(&t1, &t2)
	t4.Sub(&t4, &x3)

	x3.Add(&p.X, &p.Z)
	y3.Add(&q.X, &q.Z)
	x3.Mul(&x3, &y3)
	y3.Add(&t0, &t2)
	y3.Sub(&x3, &y3)

	x3.Add(&t0, &t0)
	t0.Add(&x3, &t0)
	t2.Mul(&t2, &b3)
	z3.Add(&t1, &t2)
	t1.Sub(&t1, &t2)
	y3.Mul(&y3, &b3)
	x3.Mul(&t4, &y3)
	t2.Mul(&t3, &t1)
	x3.Sub(&t2, &x3)
	y3.Mul(&y3, &t0)
	t1.Mul(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Mul(&t0, &t3)
	z3.Mul(&z3, &t4)
	z3.Add(&z3, &t0)

	z.X, z.Y, z.Z = x3, y3, z3
	return z
}

// AddMixed is Add specialized for q in affine form (Z implicitly 1);
// it is just Add with q.Z set to One, kept as a distinct entry point to
// mirror the dense ABI's AddMixed/AddAssign split, which a caller that
// has normalized one operand (e.g. the MSM bucket table) can use to
// skip materializing q.Z.
func (z *Point8) AddMixed(p *Point8, qx, qy *fp52.F8) *Point8 {
	q := Point8{X: *qx, Y: *qy, Z: fp52.One()}
	return z.Add(p, &q)
}

// Double sets z = 2p lanewise using the complete doubling law (algorithm
// 9) and returns z. z may alias p.
func (z *Point8) Double(p *Point8) *Point8 {
	var t0, t1, t2, x3, y3, z3 fp52.F8

	t0.Sqr(&p.Y)
	z3.Add(&t0, &t0)
	z3.Add(&z3, &z3)
	z3.Add(&z3, &z3)
	t1.Mul(&p.Y, &p.Z)
	t2.Sqr(&p.Z)
	t2.Mul(&t2, &b3)
	x3.Mul(&t2, &z3)
	y3.Add(&t0, &t2)
	z3.Mul(&t1, &z3)
	t1.Add(&t2, &t2)
	t2.Add(&t1, &t2)
	t0.Sub(&t0, &t2)
	y3.Mul(&t0, &y3)
	y3.Add(&x3, &y3)
	t1.Mul(&p.X, &p.Y)
	x3.Mul(&t0, &t1)
	x3.Add(&x3, &x3)

	z.X, z.Y, z.Z = x3, y3, z3
	return z
}

// Neg sets z = -p lanewise (X, -Y, Z) and returns z.
func (z *Point8) Neg(p *Point8) *Point8 {
	z.X = p.X
	z.Y.Neg(&p.Y)
	z.Z = p.Z
	return z
}

// CondNeg sets z = -p in every lane where mask's bit is set, and z = p
// elsewhere, then returns z. Used to apply a per-lane wNAF digit sign
// without branching on any individual lane.
func (z *Point8) CondNeg(p *Point8, mask uint8) *Point8 {
	var negY fp52.F8
	negY.Neg(&p.Y)
	z.X = p.X
	z.Y.Select(&negY, &p.Y, mask)
	z.Z = p.Z
	return z
}

// MulLambda sets z = phi(p) lanewise, the degree-3 endomorphism
// phi(x,y) = (beta*x, y) used by the GLV scalar decomposition in
// internal/glv.
func (z *Point8) MulLambda(p *Point8) *Point8 {
	z.X.Mul(&p.X, &beta)
	z.Y = p.Y
	z.Z = p.Z
	return z
}

// Select sets z = lane-i(a) if mask bit i is set else lane-i(b), for
// every lane, and returns z.
func (z *Point8) Select(a, b *Point8, mask uint8) *Point8 {
	z.X.Select(&a.X, &b.X, mask)
	z.Y.Select(&a.Y, &b.Y, mask)
	z.Z.Select(&a.Z, &b.Z, mask)
	return z
}

// GatherByIndex builds a Point8 where lane i holds lane i of tbl[idx[i]],
// the portable stand-in for a vpgatherqq-style indexed load. It scans
// every index of tbl, but only blends in the entries that at least one
// lane requested, so which entries are read depends on idx. idx[i] must
// be a valid index into tbl for every lane.
func GatherByIndex(tbl []Point8, idx [8]int) Point8 {
	out := Infinity8()
	for j := range tbl {
		var mask uint8
		for lane := 0; lane < 8; lane++ {
			if idx[lane] == j {
				mask |= 1 << uint(lane)
			}
		}
		if mask != 0 {
			out.Select(&tbl[j], &out, mask)
		}
	}
	return out
}

// ScatterByIndex writes v's lane i into lane i of tbl[idx[i]] for every
// lane, the portable stand-in for a vpscatterqq-style indexed store.
// Lanes of a table entry that no lane's index points at are left
// unchanged. Two lanes sharing an idx value write disjoint lanes of the
// same entry, so colliding indices are well defined.
func ScatterByIndex(tbl []Point8, idx [8]int, v Point8) {
	for j := range tbl {
		var mask uint8
		for lane := 0; lane < 8; lane++ {
			if idx[lane] == j {
				mask |= 1 << uint(lane)
			}
		}
		if mask != 0 {
			tbl[j].Select(&v, &tbl[j], mask)
		}
	}
}

// IsInfinityAll returns a per-lane predicate mask with bit i set iff
// lane i is the point at infinity.
func (p *Point8) IsInfinityAll() uint8 {
	return p.Z.IsZero()
}

// IsEqualAll returns a per-lane predicate mask with bit i set iff lane
// i of p equals lane i of q as projective points: cross-multiplied
// coordinates agree, which also correctly compares either side being
// infinity (Z=0) against the other.
func (p *Point8) IsEqualAll(q *Point8) uint8 {
	var l, r fp52.F8
	l.Mul(&p.X, &q.Z)
	r.Mul(&q.X, &p.Z)
	xEq := l.IsEqualAll(&r)

	l.Mul(&p.Y, &q.Z)
	r.Mul(&q.Y, &p.Z)
	yEq := l.IsEqualAll(&r)

	return xEq & yEq
}
