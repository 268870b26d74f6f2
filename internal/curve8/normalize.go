package curve8

import "github.com/msmlabs/bls12381msm/internal/fp52"

// NormalizeVec converts a slice of Point8 (eight lanes each) from
// projective to affine coordinates, performing a single batched field
// inversion across every Z coordinate of every lane via
// fp52.BatchInvert rather than one inversion per lane, the same
// Montgomery batch-inversion trick the external ABI's
// BatchJacobianToAffine uses. Returns parallel slices of affine X, Y;
// a lane that was the point at infinity comes back as (0,0).
func NormalizeVec(pts []Point8) (xs, ys []fp52.F8) {
	n := len(pts)
	zs := make([]fp52.F8, n)
	for i := range pts {
		zs[i] = pts[i].Z
	}
	zInv := fp52.BatchInvert(zs)

	xs = make([]fp52.F8, n)
	ys = make([]fp52.F8, n)
	for i := range pts {
		xs[i].Mul(&pts[i].X, &zInv[i])
		ys[i].Mul(&pts[i].Y, &zInv[i])
	}
	return xs, ys
}

// NormalizeVec16 is NormalizeVec for sixteen-wide points, flattening
// each Point16 into its Lo/Hi Point8 halves before the batched
// inversion and reassembling the F16 results afterward.
func NormalizeVec16(pts []Point16) (xs, ys []fp52.F16) {
	flat := splitLanes16(pts)
	flatX, flatY := NormalizeVec(flat)

	n := len(pts)
	xs = make([]fp52.F16, n)
	ys = make([]fp52.F16, n)
	for i := 0; i < n; i++ {
		xs[i] = fp52.F16{Lo: flatX[2*i], Hi: flatX[2*i+1]}
		ys[i] = fp52.F16{Lo: flatY[2*i], Hi: flatY[2*i+1]}
	}
	return xs, ys
}
