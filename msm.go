package bls12381msm

import (
	"math/big"

	"github.com/msmlabs/bls12381msm/internal/curve8"
	"github.com/msmlabs/bls12381msm/internal/curvebackend"
	"github.com/msmlabs/bls12381msm/internal/fp52"
	"github.com/msmlabs/bls12381msm/internal/glv"
)

// splitScalarBits is the bit width Split's k1/k2 halves are bounded to;
// the GLV decomposition on a 255-bit Fr roughly halves the scalar
// length, per spec.md §4.4.
const splitScalarBits = 128

// MulVec computes out = sum(s_i * points_i) using packed eight-wide
// field/curve arithmetic, a GLV endomorphism split of every scalar, and
// a Pippenger bucket method over the combined 2n half-width scalars.
// bucketOverride, if non-zero, must be in [2, 20] and replaces the
// heuristic window width.
func MulVec(out *curvebackend.G1Jac, points []curvebackend.G1Affine, scalars []curvebackend.Fr, bucketOverride int) error {
	if len(points) != len(scalars) {
		return ErrLengthMismatch
	}
	if bucketOverride != 0 && (bucketOverride < minBucketWidth || bucketOverride > maxBucketWidth) {
		return ErrInvalidBucketWidth
	}

	n := len(points)
	if n == 0 {
		*out = curvebackend.Identity()
		return nil
	}

	b := bucketOverride
	if b == 0 {
		b = bucketWidthHeuristic(2 * n)
	}

	// Only the lane-aligned prefix runs through the packed pipeline; a
	// remainder of n%8 points (n not a multiple of 8) is handled below by
	// gnark-crypto's own scalar multiplication, per spec.md §4.5's
	// external-reference tail path.
	nFull := n - n%8
	nGroups := nFull / 8
	pGroups := make([]curve8.Point8, nGroups)
	phiGroups := make([]curve8.Point8, nGroups)
	k1s := make([]*big.Int, nFull)
	k2s := make([]*big.Int, nFull)
	neg1s := make([]bool, nFull)
	neg2s := make([]bool, nFull)

	for g := 0; g < nGroups; g++ {
		var xs, ys fp52.F8
		for lane := 0; lane < 8; lane++ {
			idx := g*8 + lane
			dx := curvebackend.DenseWords(&points[idx].X)
			dy := curvebackend.DenseWords(&points[idx].Y)
			xs.SetLane(lane, fp52.ToMont(dx))
			ys.SetLane(lane, fp52.ToMont(dy))

			s := scalars[idx]
			var sBig big.Int
			s.ToBigIntRegular(&sBig)
			d := glv.Split(&sBig)
			k1s[idx], k2s[idx] = d.K1, d.K2
			neg1s[idx], neg2s[idx] = d.Neg1, d.Neg2
		}
		pGroups[g] = curve8.FromAffine(xs, ys)
		phiGroups[g].MulLambda(&pGroups[g])
	}

	numWindows := (splitScalarBits + b - 1) / b
	numBuckets := 1 << uint(b)

	var acc curve8.Point8
	acc = curve8.Infinity8()

	for w := 0; w < numWindows; w++ {
		if w != 0 {
			for i := 0; i < b; i++ {
				acc.Double(&acc)
			}
		}

		buckets := make([]curve8.Point8, numBuckets)
		for i := range buckets {
			buckets[i] = curve8.Infinity8()
		}

		shift := uint(numWindows-1-w) * uint(b)
		addStream := func(groups []curve8.Point8, ks []*big.Int, negs []bool) {
			for g := 0; g < nGroups; g++ {
				var digits [8]int
				for lane := 0; lane < 8; lane++ {
					idx := g*8 + lane
					digits[lane] = windowDigit(ks[idx], shift, b, negs[idx])
				}
				accumulateGroup(buckets, &groups[g], digits)
			}
		}
		addStream(pGroups, k1s, neg1s)
		addStream(phiGroups, k2s, neg2s)

		windowSum := combineBuckets(buckets)
		acc.Add(&acc, &windowSum)
	}

	*out = reducePacked(&acc)

	for idx := nFull; idx < n; idx++ {
		var tail curvebackend.G1Jac
		curvebackend.ScalarMulTail(&tail, &points[idx], &scalars[idx])
		out.AddAssign(&tail)
	}
	return nil
}

// windowDigit extracts the signed b-bit digit for scalar k (given as a
// non-negative magnitude with sign neg) at bit offset shift, folding the
// sign into the digit's own sign: a negative k contributes a negative
// digit. Digit 0 is always returned as non-negative.
func windowDigit(k *big.Int, shift uint, b int, neg bool) int {
	if k == nil {
		return 0
	}
	chunk := new(big.Int).Rsh(k, shift)
	mask := big.NewInt((int64(1) << uint(b)) - 1)
	chunk.And(chunk, mask)
	d := int(chunk.Int64())
	if neg {
		d = -d
	}
	return d
}

// accumulateGroup adds group's eight points into buckets, using each
// lane's own (possibly negative) digit to pick the bucket and sign.
// The sign is handled by accumulating the point (or its negation) into
// |digit|'s bucket; a zero digit adds the point into bucket 0, which
// combineBuckets never reads.
func accumulateGroup(buckets []curve8.Point8, group *curve8.Point8, digits [8]int) {
	var idx [8]int
	var negMask uint8
	for lane, d := range digits {
		if d < 0 {
			idx[lane] = -d
			negMask |= 1 << uint(lane)
		} else {
			idx[lane] = d
		}
	}

	var signed curve8.Point8
	signed.CondNeg(group, negMask)

	gathered := curve8.GatherByIndex(buckets, idx)
	var sum curve8.Point8
	sum.Add(&gathered, &signed)
	curve8.ScatterByIndex(buckets, idx, sum)
}

// combineBuckets folds numBuckets-1 buckets (bucket 0 is unused, digit
// 0 contributes nothing) into sum(j*buckets[j]) via the standard
// running-sum/running-total Pippenger recurrence, using 2*(numBuckets-2)
// additions.
func combineBuckets(buckets []curve8.Point8) curve8.Point8 {
	n := len(buckets)
	sum := buckets[n-1]
	total := buckets[n-1]
	for i := n - 2; i >= 1; i-- {
		sum.Add(&sum, &buckets[i])
		total.Add(&total, &sum)
	}
	return total
}

// reducePacked unpacks an eight-lane packed accumulator into eight
// dense G1Jac values and sums them with gnark-crypto's own addition,
// matching spec.md §4.5's "unpack to eight G1 values and sum them with
// the reference G1::add".
func reducePacked(p *curve8.Point8) curvebackend.G1Jac {
	xs, ys := curve8.NormalizeVec([]curve8.Point8{*p})
	infMask := p.IsInfinityAll()

	total := curvebackend.Identity()
	for lane := 0; lane < 8; lane++ {
		if infMask&(1<<uint(lane)) != 0 {
			continue
		}
		xw := fp52.FromMont(xs[0].Lane(lane))
		yw := fp52.FromMont(ys[0].Lane(lane))
		aff := curvebackend.WordsToAffine(xw, yw)
		var jac curvebackend.G1Jac
		jac.FromAffine(&aff)
		total.AddAssign(&jac)
	}
	return total
}
