package curve8

import "github.com/msmlabs/bls12381msm/internal/fp52"

// PointJ8 is eight G1 points in Jacobi (X:Y:Z) coordinates, one per
// lane, with (X,Y,Z) ~ (c^2*X, c^3*Y, c*Z): affine x = X/Z^2, y = Y/Z^3.
// The identity is any point with Z=0. This is the faster of the two
// point representations spec.md §3/§4.3 names (projective's Point8 is
// the other): AddMixed below is the 7M+4S mixed addition used
// when the second operand is affine (Z implicitly 1), the form the
// Pippenger bucket loop's "add an affine table entry into a Jacobi
// accumulator" step is built for. It is a distinct Go type from Point8
// rather than a mode flag on the same struct precisely because spec.md
// §3 requires the two interpretations "must not be mixed within one
// operation" -- making that a type error rather than a runtime
// invariant is the idiomatic way to enforce it.
type PointJ8 struct {
	X, Y, Z fp52.F8
}

// InfinityJ8 returns eight copies of the point at infinity. X and Y are
// unconstrained by the identity (Z=0 alone marks it); One/One here
// matches the external ABI's curvebackend.Identity() convention rather
// than carrying actual meaning.
func InfinityJ8() PointJ8 {
	one := fp52.One()
	return PointJ8{X: one, Y: one, Z: fp52.Zero()}
}

// FromAffineJ8 builds a PointJ8 from eight affine (x,y) coordinates,
// setting Z=1 in every lane (for Z=1, X/Z^2=X and Y/Z^3=Y, so the
// affine embedding is bit-identical to Point8's). A lane with x=y=0 is
// the point at infinity, matching FromAffine's convention.
func FromAffineJ8(x, y fp52.F8) PointJ8 {
	var p PointJ8
	p.X = x
	p.Y = y
	p.Z = fp52.One()
	zeroMask := x.IsZero() & y.IsZero()
	if zeroMask != 0 {
		inf := InfinityJ8()
		p.X.Select(&inf.X, &p.X, zeroMask)
		p.Y.Select(&inf.Y, &p.Y, zeroMask)
		p.Z.Select(&inf.Z, &p.Z, zeroMask)
	}
	return p
}

// AddMixed sets z = p+q lanewise, where q is affine (qx, qy) with
// Z implicitly 1, using the standard mixed Jacobi addition law
// (Bernstein/Lange, "madd-2007-bl" in the EFD shortw-jacobian
// catalogue). The raw formula is undefined when p is the identity or q
// is the identity (qx=qy=0): per spec.md §4.3 those two cases are
// patched afterward with a pair of per-lane selects rather than folded
// into the arithmetic, exactly as spec.md describes ("t = select(...);
// z = select(...)"). P=Q and P=-Q are not special-cased here; spec.md
// assigns that to the caller (bucket contents are distinct inputs by
// construction).
func (z *PointJ8) AddMixed(p *PointJ8, qx, qy *fp52.F8) *PointJ8 {
	var z1z1, u2, s2, h, hh, ii, jj, r, v, x3, y3, z3 fp52.F8

	z1z1.Sqr(&p.Z)
	u2.Mul(qx, &z1z1)
	s2.Mul(qy, &p.Z)
	s2.Mul(&s2, &z1z1)

	h.Sub(&u2, &p.X)
	hh.Sqr(&h)
	ii.Add(&hh, &hh)
	ii.Add(&ii, &ii) // ii = 4*hh

	jj.Mul(&h, &ii)

	r.Sub(&s2, &p.Y)
	r.Add(&r, &r) // r = 2*(s2-p.Y)

	v.Mul(&p.X, &ii)

	var twoV fp52.F8
	twoV.Add(&v, &v)
	x3.Sqr(&r)
	x3.Sub(&x3, &jj)
	x3.Sub(&x3, &twoV)

	var vMinusX3, twoY1J fp52.F8
	vMinusX3.Sub(&v, &x3)
	y3.Mul(&r, &vMinusX3)
	twoY1J.Mul(&p.Y, &jj)
	twoY1J.Add(&twoY1J, &twoY1J)
	y3.Sub(&y3, &twoY1J)

	var zh fp52.F8
	zh.Add(&p.Z, &h)
	z3.Sqr(&zh)
	z3.Sub(&z3, &z1z1)
	z3.Sub(&z3, &hh)

	var raw, qAsJ PointJ8
	raw.X, raw.Y, raw.Z = x3, y3, z3
	qAsJ.X, qAsJ.Y, qAsJ.Z = *qx, *qy, fp52.One()

	pIsInf := p.Z.IsZero()
	raw.Select(&qAsJ, &raw, pIsInf)

	qIsInf := qx.IsZero() & qy.IsZero()
	z.Select(p, &raw, qIsInf)
	return z
}

// Double sets z = 2p lanewise using the a=0 Jacobi doubling law
// (Bernstein/Lange, "dbl-2009-l") and returns z. z may alias p. Unlike
// AddMixed, no select is needed for p=identity: Z3 = 2*Y1*Z1 is 0
// whenever Z1 is 0, regardless of X1/Y1, so doubling the identity
// produces the identity by construction.
func (z *PointJ8) Double(p *PointJ8) *PointJ8 {
	var a, b, c, d, e, f, x3, y3, z3 fp52.F8

	a.Sqr(&p.X)
	b.Sqr(&p.Y)
	c.Sqr(&b)

	var xPlusB fp52.F8
	xPlusB.Add(&p.X, &b)
	d.Sqr(&xPlusB)
	d.Sub(&d, &a)
	d.Sub(&d, &c)
	d.Add(&d, &d) // d = 2*((x+b)^2-a-c)

	e.Add(&a, &a)
	e.Add(&e, &a) // e = 3*a
	f.Sqr(&e)

	x3.Sub(&f, &d)
	x3.Sub(&x3, &d)

	var dMinusX3, eightC fp52.F8
	dMinusX3.Sub(&d, &x3)
	y3.Mul(&e, &dMinusX3)
	eightC.Add(&c, &c)
	eightC.Add(&eightC, &eightC)
	eightC.Add(&eightC, &eightC) // eightC = 8*c
	y3.Sub(&y3, &eightC)

	z3.Mul(&p.Y, &p.Z)
	z3.Add(&z3, &z3)

	z.X, z.Y, z.Z = x3, y3, z3
	return z
}

// Neg sets z = -p lanewise (X, -Y, Z) and returns z.
func (z *PointJ8) Neg(p *PointJ8) *PointJ8 {
	z.X = p.X
	z.Y.Neg(&p.Y)
	z.Z = p.Z
	return z
}

// CondNeg sets z = -p in every lane where mask's bit is set, z = p
// elsewhere, mirroring Point8.CondNeg.
func (z *PointJ8) CondNeg(p *PointJ8, mask uint8) *PointJ8 {
	var negY fp52.F8
	negY.Neg(&p.Y)
	z.X = p.X
	z.Y.Select(&negY, &p.Y, mask)
	z.Z = p.Z
	return z
}

// Select sets z = lane-i(a) if mask bit i is set else lane-i(b).
func (z *PointJ8) Select(a, b *PointJ8, mask uint8) *PointJ8 {
	z.X.Select(&a.X, &b.X, mask)
	z.Y.Select(&a.Y, &b.Y, mask)
	z.Z.Select(&a.Z, &b.Z, mask)
	return z
}

// IsInfinityAll returns a per-lane predicate mask with bit i set iff
// lane i is the point at infinity.
func (p *PointJ8) IsInfinityAll() uint8 {
	return p.Z.IsZero()
}

// IsEqualJacobiAll returns a per-lane predicate mask with bit i set iff
// lane i of p equals lane i of q as curve points, comparing
// X1*Z2^2 == X2*Z1^2 and Y1*Z2^3 == Y2*Z1^3 (the Jacobi cross-multiply,
// analogous to Point8.IsEqualAll's projective X*Z2==X2*Z cross terms).
// When both sides are the identity every cross term is 0*anything=0 and
// the comparison is true by construction; collisions between a real
// point and an arbitrarily-coded identity lane are left unguarded, the
// same tolerance spec.md §4.6 states explicitly for mulEach.
func (p *PointJ8) IsEqualJacobiAll(q *PointJ8) uint8 {
	var pz2, qz2, pz3, qz3, l, r fp52.F8
	pz2.Sqr(&p.Z)
	qz2.Sqr(&q.Z)
	pz3.Mul(&pz2, &p.Z)
	qz3.Mul(&qz2, &q.Z)

	l.Mul(&p.X, &qz2)
	r.Mul(&q.X, &pz2)
	xEq := l.IsEqualAll(&r)

	l.Mul(&p.Y, &qz3)
	r.Mul(&q.Y, &pz3)
	yEq := l.IsEqualAll(&r)

	return xEq & yEq
}

// ProjToJacobi converts a projective Point8 to a Jacobi PointJ8
// representing the same affine points: given (X:Y:Z) with x=X/Z, y=Y/Z,
// (X*Z : Y*Z^2 : Z) satisfies X_j/Z^2 = X/Z and Y_j/Z^3 = Y/Z. Z=0
// (identity) maps to Z=0 unchanged. This mirrors the external ABI's
// ec::ProjToJacobi named in spec.md §6; it is implemented in-module
// (rather than deferred to curvebackend) purely to let this package's
// own tests check the two point representations agree, which is
// spec.md's Testable Property #5.
func ProjToJacobi(p *Point8) PointJ8 {
	var j PointJ8
	j.X.Mul(&p.X, &p.Z)
	var z2 fp52.F8
	z2.Sqr(&p.Z)
	j.Y.Mul(&p.Y, &z2)
	j.Z = p.Z
	return j
}

// JacobiToProj is ProjToJacobi's inverse direction: given Jacobi
// (X:Y:Z) with x=X/Z^2, y=Y/Z^3, (X*Z : Y : Z^3) is a valid projective
// representative of the same affine point (x = X*Z/Z^3 = X/Z^2,
// y = Y/Z^3).
func JacobiToProj(j *PointJ8) Point8 {
	var p Point8
	p.X.Mul(&j.X, &j.Z)
	p.Y = j.Y
	p.Z.Sqr(&j.Z)
	p.Z.Mul(&p.Z, &j.Z)
	return p
}

// NormalizeJacobiVec converts a slice of PointJ8 to affine coordinates
// with one batched inversion over every Z, dividing X by Z^2 and Y by
// Z^3 per lane (the Jacobi convention normalize.go's NormalizeVec does
// not implement, which is projective's X/Z, Y/Z). A lane that was the
// point at infinity comes back as (0,0), matching NormalizeVec.
func NormalizeJacobiVec(pts []PointJ8) (xs, ys []fp52.F8) {
	n := len(pts)
	zs := make([]fp52.F8, n)
	for i := range pts {
		zs[i] = pts[i].Z
	}
	zInv := fp52.BatchInvert(zs)

	xs = make([]fp52.F8, n)
	ys = make([]fp52.F8, n)
	for i := range pts {
		var zInv2, zInv3 fp52.F8
		zInv2.Sqr(&zInv[i])
		zInv3.Mul(&zInv2, &zInv[i])
		xs[i].Mul(&pts[i].X, &zInv2)
		ys[i].Mul(&pts[i].Y, &zInv3)
	}
	return xs, ys
}
