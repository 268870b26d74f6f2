package bls12381msm

import "github.com/msmlabs/bls12381msm/internal/fp52"

// CurveID names a curve Init can be asked to prepare. BLS12_381 is the
// only defined value; this package has no other curve to support.
type CurveID int

// BLS12_381 is the only supported curve.
const BLS12_381 CurveID = 1

// Init reports whether this package can run its packed fast path for
// curve: true only for BLS12_381 on a CPU where AVX-512 IFMA was
// detected at process start. Any other curve value, or an absent
// AVX-512 IFMA bit, returns false. Init performs no other work: the
// field and endomorphism constant tables are plain immutable package
// vars, already initialized before Init is ever called.
func Init(curve CurveID) bool {
	if curve != BLS12_381 {
		return false
	}
	return fp52.HasIFMA()
}
