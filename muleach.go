package bls12381msm

import (
	"math/big"

	"github.com/msmlabs/bls12381msm/internal/curve8"
	"github.com/msmlabs/bls12381msm/internal/curvebackend"
	"github.com/msmlabs/bls12381msm/internal/fp52"
	"github.com/msmlabs/bls12381msm/internal/glv"
)

// MulEach computes points[i] <- scalars[i] * points[i] in place, eight
// points at a time, using a per-point GLV split and a windowed
// signed-digit table rather than a shared bucket structure: each of the
// eight lanes in a group runs its own independent window schedule.
// len(points) must be a multiple of 8.
func MulEach(points []curvebackend.G1Affine, scalars []curvebackend.Fr) error {
	if len(points) != len(scalars) {
		return ErrLengthMismatch
	}
	if len(points)%8 != 0 {
		return ErrMulEachAlignment
	}

	n := len(points)
	for g := 0; g*8 < n; g++ {
		mulEachGroup(points[g*8:g*8+8], scalars[g*8:g*8+8])
	}
	return nil
}

func mulEachGroup(points []curvebackend.G1Affine, scalars []curvebackend.Fr) {
	var xs, ys fp52.F8
	for lane := 0; lane < 8; lane++ {
		dx := curvebackend.DenseWords(&points[lane].X)
		dy := curvebackend.DenseWords(&points[lane].Y)
		xs.SetLane(lane, fp52.ToMont(dx))
		ys.SetLane(lane, fp52.ToMont(dy))
	}
	base := curve8.FromAffine(xs, ys)
	var phiBase curve8.Point8
	phiBase.MulLambda(&base)

	t1 := glv.BuildTable(&base)
	t2 := glv.BuildTable(&phiBase)

	// Affine-normalize every table entry of both tables (T1 and T2, 2 *
	// glv.TableSize points total) in one batched inversion, per spec.md
	// §4.6's "affine-normalized across all tables in one pass".
	flat := make([]curve8.Point8, 0, 2*glv.TableSize)
	flat = append(flat, t1[:]...)
	flat = append(flat, t2[:]...)
	flatXs, flatYs := curve8.NormalizeVec(flat)
	for i := range flat {
		flat[i] = curve8.FromAffine(flatXs[i], flatYs[i])
	}
	copy(t1[:], flat[:glv.TableSize])
	copy(t2[:], flat[glv.TableSize:])

	var digitsK1, digitsK2 [8][]int32
	maxLen := 0
	for lane := 0; lane < 8; lane++ {
		var sBig big.Int
		scalars[lane].ToBigIntRegular(&sBig)
		d := glv.Split(&sBig)

		k1 := signedBig(d.K1, d.Neg1)
		k2 := signedBig(d.K2, d.Neg2)
		digitsK1[lane] = glv.Recode(absBig(k1))
		digitsK2[lane] = glv.Recode(absBig(k2))
		if k1.Sign() < 0 {
			negateDigits(digitsK1[lane])
		}
		if k2.Sign() < 0 {
			negateDigits(digitsK2[lane])
		}
		if len(digitsK1[lane]) > maxLen {
			maxLen = len(digitsK1[lane])
		}
		if len(digitsK2[lane]) > maxLen {
			maxLen = len(digitsK2[lane])
		}
	}

	acc := curve8.Infinity8()
	for widx := maxLen - 1; widx >= 0; widx-- {
		if widx != maxLen-1 {
			for i := 0; i < glv.Window; i++ {
				acc.Double(&acc)
			}
		}
		var d1, d2 [8]int32
		for lane := 0; lane < 8; lane++ {
			d1[lane] = digitAt(digitsK1[lane], widx)
			d2[lane] = digitAt(digitsK2[lane], widx)
		}
		g1 := glv.GatherSigned8(&t1, d1)
		acc.Add(&acc, &g1)
		g2 := glv.GatherSigned8(&t2, d2)
		acc.Add(&acc, &g2)
	}

	outXs, outYs := curve8.NormalizeVec([]curve8.Point8{acc})
	infMask := acc.IsInfinityAll()
	for lane := 0; lane < 8; lane++ {
		if infMask&(1<<uint(lane)) != 0 {
			points[lane].X.SetZero()
			points[lane].Y.SetZero()
			continue
		}
		xw := fp52.FromMont(outXs[0].Lane(lane))
		yw := fp52.FromMont(outYs[0].Lane(lane))
		points[lane] = curvebackend.WordsToAffine(xw, yw)
	}
}

func signedBig(mag *big.Int, neg bool) *big.Int {
	v := new(big.Int).Set(mag)
	if neg {
		v.Neg(v)
	}
	return v
}

func absBig(v *big.Int) *big.Int {
	return new(big.Int).Abs(v)
}

func negateDigits(digits []int32) {
	for i := range digits {
		digits[i] = -digits[i]
	}
}

func digitAt(digits []int32, i int) int32 {
	if i < 0 || i >= len(digits) {
		return 0
	}
	return digits[i]
}
