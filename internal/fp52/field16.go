package fp52

// F16 packs sixteen Fp lanes as a pair of F8 halves, the natural
// extension when two ZMM-width vector groups are processed together
// (e.g. a pair of AVX-512 registers, or one that has been widened to
// 1024 bits on hardware that supports it). Every method operates on
// the two halves independently and in the same way F8's methods do.
type F16 struct {
	Lo, Hi F8
}

// Zero16 and One16 are the F16-wide identity elements.
func Zero16() F16 { return F16{Zero(), Zero()} }
func One16() F16  { return F16{One(), One()} }

// Lane extracts lane i (0..15) as a single Elem.
func (f *F16) Lane(i int) Elem {
	if i < lanes {
		return f.Lo.Lane(i)
	}
	return f.Hi.Lane(i - lanes)
}

// SetLane writes e into lane i (0..15).
func (f *F16) SetLane(i int, e Elem) {
	if i < lanes {
		f.Lo.SetLane(i, e)
		return
	}
	f.Hi.SetLane(i-lanes, e)
}

// Add sets z = x+y lanewise and returns z.
func (z *F16) Add(x, y *F16) *F16 {
	z.Lo.Add(&x.Lo, &y.Lo)
	z.Hi.Add(&x.Hi, &y.Hi)
	return z
}

// Sub sets z = x-y lanewise and returns z.
func (z *F16) Sub(x, y *F16) *F16 {
	z.Lo.Sub(&x.Lo, &y.Lo)
	z.Hi.Sub(&x.Hi, &y.Hi)
	return z
}

// Mul sets z = x*y lanewise and returns z.
func (z *F16) Mul(x, y *F16) *F16 {
	z.Lo.Mul(&x.Lo, &y.Lo)
	z.Hi.Mul(&x.Hi, &y.Hi)
	return z
}

// Sqr sets z = x*x lanewise and returns z.
//
// Open question resolution (see DESIGN.md): F16.Sqr shares F8.Sqr's
// (and therefore Mul's) big.Int-backed Montgomery reduction rather than
// a hand-scheduled squaring variant, mirroring one of the two observed
// mcl vsqr/vmul delegation behaviors, applied uniformly at both widths.
func (z *F16) Sqr(x *F16) *F16 {
	z.Lo.Sqr(&x.Lo)
	z.Hi.Sqr(&x.Hi)
	return z
}

// Neg sets z = -x lanewise and returns z.
func (z *F16) Neg(x *F16) *F16 {
	z.Lo.Neg(&x.Lo)
	z.Hi.Neg(&x.Hi)
	return z
}

// Select sets z = lane-i(a) if mask bit i is set else lane-i(b), for
// every lane 0..15, and returns z.
func (z *F16) Select(a, b *F16, mask uint16) *F16 {
	z.Lo.Select(&a.Lo, &b.Lo, uint8(mask))
	z.Hi.Select(&a.Hi, &b.Hi, uint8(mask>>lanes))
	return z
}

// IsZero returns a 16-bit per-lane predicate mask with bit i set iff
// lane i is 0.
func (f *F16) IsZero() uint16 {
	return uint16(f.Lo.IsZero()) | uint16(f.Hi.IsZero())<<lanes
}

// IsEqualAll returns a 16-bit per-lane predicate mask with bit i set
// iff lane i of x equals lane i of y.
func (x *F16) IsEqualAll(y *F16) uint16 {
	return uint16(x.Lo.IsEqualAll(&y.Lo)) | uint16(x.Hi.IsEqualAll(&y.Hi))<<lanes
}
