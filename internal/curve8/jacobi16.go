package curve8

import "github.com/msmlabs/bls12381msm/internal/fp52"

// PointJ16 is sixteen G1 points in Jacobi coordinates, packed as a pair
// of PointJ8 halves, the same halving discipline Point16 uses over two
// Point8 halves.
type PointJ16 struct {
	Lo, Hi PointJ8
}

// InfinityJ16 returns sixteen copies of the point at infinity.
func InfinityJ16() PointJ16 {
	inf := InfinityJ8()
	return PointJ16{Lo: inf, Hi: inf}
}

// Double sets z = 2p lanewise and returns z.
func (z *PointJ16) Double(p *PointJ16) *PointJ16 {
	z.Lo.Double(&p.Lo)
	z.Hi.Double(&p.Hi)
	return z
}

// Neg sets z = -p lanewise and returns z.
func (z *PointJ16) Neg(p *PointJ16) *PointJ16 {
	z.Lo.Neg(&p.Lo)
	z.Hi.Neg(&p.Hi)
	return z
}

// Select sets z = lane-i(a) if mask bit i is set else lane-i(b), for
// every lane 0..15, and returns z.
func (z *PointJ16) Select(a, b *PointJ16, mask uint16) *PointJ16 {
	z.Lo.Select(&a.Lo, &b.Lo, uint8(mask))
	z.Hi.Select(&a.Hi, &b.Hi, uint8(mask>>8))
	return z
}

// IsInfinityAll returns a 16-bit per-lane predicate mask.
func (p *PointJ16) IsInfinityAll() uint16 {
	return uint16(p.Lo.IsInfinityAll()) | uint16(p.Hi.IsInfinityAll())<<8
}

// IsEqualJacobiAll returns a 16-bit per-lane predicate mask.
func (p *PointJ16) IsEqualJacobiAll(q *PointJ16) uint16 {
	return uint16(p.Lo.IsEqualJacobiAll(&q.Lo)) | uint16(p.Hi.IsEqualJacobiAll(&q.Hi))<<8
}

// splitLanesJ16 flattens a slice of PointJ16 into PointJ8 halves for
// batched normalization, mirroring splitLanes16.
func splitLanesJ16(pts []PointJ16) []PointJ8 {
	out := make([]PointJ8, 0, len(pts)*2)
	for i := range pts {
		out = append(out, pts[i].Lo, pts[i].Hi)
	}
	return out
}

// NormalizeJacobiVec16 is NormalizeJacobiVec for sixteen-wide points.
func NormalizeJacobiVec16(pts []PointJ16) (xs, ys []fp52.F16) {
	flat := splitLanesJ16(pts)
	flatX, flatY := NormalizeJacobiVec(flat)

	n := len(pts)
	xs = make([]fp52.F16, n)
	ys = make([]fp52.F16, n)
	for i := 0; i < n; i++ {
		xs[i] = fp52.F16{Lo: flatX[2*i], Hi: flatX[2*i+1]}
		ys[i] = fp52.F16{Lo: flatY[2*i], Hi: flatY[2*i+1]}
	}
	return xs, ys
}
