package bls12381msm

import "math/bits"

// bucketWidthTable maps log2(effective n) (indices 6..26) to an
// empirically tuned Pippenger bucket width b. Below log2 n = 6, b = 2;
// above 26, the table's last entry (16) is held as an extrapolated
// clamp rather than re-measured, per spec.md §9.
var bucketWidthTable = [27]int{
	// index 0..5 unused (clamped to 2 below); entries from 6 on.
	6: 3, 7: 4, 8: 5, 9: 5, 10: 6, 11: 7, 12: 8, 13: 8, 14: 10, 15: 10,
	16: 10, 17: 10, 18: 10, 19: 13, 20: 15, 21: 15, 22: 16, 23: 16,
	24: 16, 25: 16, 26: 16,
}

const (
	minBucketWidth = 2
	maxBucketWidth = 20 // spec.md §6 precondition: bucketOverride in [2, 20]
)

// bucketWidthHeuristic returns the recommended Pippenger bucket width
// for an effective input size of n points (after any GLV doubling of
// the point count has already been applied by the caller).
func bucketWidthHeuristic(n int) int {
	if n <= 0 {
		return minBucketWidth
	}
	log2n := bits.Len(uint(n)) - 1
	switch {
	case log2n < 6:
		return minBucketWidth
	case log2n > 26:
		return bucketWidthTable[26]
	default:
		return bucketWidthTable[log2n]
	}
}
