// Package simd is the narrow typed boundary between this module's
// field/curve packages and whatever vector instructions the host CPU
// actually has. Its caller (internal/fp52) never itself branches on CPU
// features: it calls the functions here. AddMod52 and SelectMask have a
// single portable implementation, used on every architecture;
// IfmaAvailable only reports what was detected.
//
// Every op here is a [8]uint64 lane carrying one 52-bit limb per lane,
// the unit an AVX-512 zmm register load/store would move as a block;
// internal/fp52 assembles eight of these (one per limb index) into one
// F8 value. This file is the always-available portable fallback.
package simd

// Lane8 is eight 52-bit-masked limbs, one per SIMD lane.
type Lane8 [8]uint64

// AddMod52 computes (a[i]+b[i]) mod 2^52 for every lane, returning both
// the masked sum and the carry-out bit per lane (1 or 0), mirroring
// what a vpaddq+vpandq+vpsrlq sequence produces.
func AddMod52(a, b Lane8) (sum Lane8, carry Lane8) {
	for i := range a {
		s := a[i] + b[i]
		sum[i] = s & mask52
		carry[i] = s >> 52
	}
	return
}

// SelectMask blends a and b per lane according to mask (all-ones or
// all-zero per lane, as a vpblendmq predicate would produce).
func SelectMask(a, b Lane8, mask Lane8) Lane8 {
	var out Lane8
	for i := range a {
		if mask[i] != 0 {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

const mask52 = (uint64(1) << 52) - 1
