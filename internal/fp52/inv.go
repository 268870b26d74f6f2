package fp52

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// Inversion is explicitly out of scope for the packed kernel itself
// (see DESIGN.md): rather than hand-roll a binary or Fermat inverse
// over the 52-bit limb representation, every lane is decoded to the
// dense Montgomery-R384 form and handed to gnark-crypto's fp.Element,
// whose BatchInvert amortizes the single required modular inversion
// across every lane via the standard Montgomery trick. This mirrors
// how the external ABI is used everywhere else in this package: the
// packed layout is for the bulk field and curve arithmetic that
// benefits from wide lanes, and rare or awkward operations defer to
// the dense collaborator.

// BatchInvert inverts every lane of every F8 in xs, returning the
// inverses in a freshly allocated slice of the same length; xs itself
// is left unchanged. A lane holding zero
// inverts to zero, matching fp.Element's BatchInvert convention.
func BatchInvert(xs []F8) []F8 {
	if len(xs) == 0 {
		return nil
	}
	flat := make([]fp.Element, len(xs)*lanes)
	for i := range xs {
		for l := 0; l < lanes; l++ {
			e := xs[i].Lane(l)
			flat[i*lanes+l] = fp.Element(FromMont(e))
		}
	}
	invFlat := fp.BatchInvert(flat)

	out := make([]F8, len(xs))
	for i := range out {
		for l := 0; l < lanes; l++ {
			dense := [6]uint64(invFlat[i*lanes+l])
			out[i].SetLane(l, ToMont(dense))
		}
	}
	return out
}

// InvertOne inverts every lane of a single F8 and returns the result;
// a convenience wrapper over BatchInvert for callers with only one
// vector to invert (e.g. a final single-point normalization).
func InvertOne(x F8) F8 {
	return BatchInvert([]F8{x})[0]
}
