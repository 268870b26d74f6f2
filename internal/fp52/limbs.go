package fp52

// This file implements C1: packed-limb layout and transforms. split52
// and concat52 are a pure radix change (6x64 bits re-sliced into 8x52
// bits, top 32 bits zero) with no modular arithmetic; ToMont/FromMont
// additionally shift between the dense Montgomery-R384 domain (the
// external ABI's representation, matching gnark-crypto's fp.Element)
// and this package's Montgomery-R416 domain, via the m64to52/m52to64
// constants derived in consts.go.

// rawSplit52 re-slices six 64-bit limbs into eight 52-bit limbs. The
// concatenation of 6*64=384 bits into 8*52=416 bits leaves the top 32
// bits of the result zero; every output limb is masked to 52 bits.
func rawSplit52(dense [6]uint64) Elem {
	var e Elem
	// Treat dense as one 384-bit little-endian integer and re-slice it
	// into 52-bit windows.
	var acc uint64
	var accBits uint
	word := 0
	var cur uint64
	if word < len(dense) {
		cur = dense[word]
	}
	curBits := uint(64)
	for i := 0; i < nLimbs; i++ {
		for accBits < limbBits {
			if curBits == 0 {
				word++
				if word < len(dense) {
					cur = dense[word]
				} else {
					cur = 0
				}
				curBits = 64
			}
			take := limbBits - accBits
			if take > curBits {
				take = curBits
			}
			chunk := cur & ((uint64(1) << take) - 1)
			acc |= chunk << accBits
			accBits += take
			cur >>= take
			curBits -= take
		}
		e[i] = acc & mask52
		acc >>= limbBits
		accBits -= limbBits
	}
	return e
}

// concat52 is the inverse of rawSplit52: eight 52-bit limbs back to six
// 64-bit words. concat52(rawSplit52(x)) == x for any 384-bit x.
func concat52(e Elem) [6]uint64 {
	var dense [6]uint64
	for i := 0; i < nLimbs; i++ {
		bit := uint(i) * limbBits
		w, off := bit/64, bit%64
		if w < uint(len(dense)) {
			dense[w] |= e[i] << off
		}
		// A limb that straddles a word boundary spills its high bits
		// into the next word.
		if off+limbBits > 64 && w+1 < uint(len(dense)) {
			dense[w+1] |= e[i] >> (64 - off)
		}
	}
	return dense
}

// ToMont converts a dense Montgomery-R384 field element (gnark-crypto's
// fp.Element representation) into this package's packed Montgomery-R416
// Elem.
func ToMont(dense [6]uint64) Elem {
	raw := rawSplit52(dense)
	var out Elem
	elemMul(&out, &raw, &m64to52)
	return out
}

// FromMont is ToMont's inverse: packed Montgomery-R416 Elem back to a
// dense Montgomery-R384 field element.
func FromMont(e Elem) [6]uint64 {
	var raw Elem
	elemMul(&raw, &e, &m52to64)
	return concat52(raw)
}

// g1Stride is the word stride of one packed G1 point entry: three
// coordinates (x, y, z) of six 64-bit words each, matching spec.md's
// "3x6 64-bit words, stride 18" layout for Jacobi/projective points (an
// affine point is represented with z set to the Montgomery encoding of
// 1, or of 0 for the identity).
const g1Stride = 18

// CvtFromG1Ax gathers eight strided G1 points (each g1Stride dense
// 64-bit words, coordinates in x,y,z order) into three packed F8 values.
// This is the gather half of C1; the host curve library supplies the
// points in dense Montgomery-R384 form.
func CvtFromG1Ax(points [lanes][g1Stride]uint64) (x, y, z F8) {
	for i := 0; i < lanes; i++ {
		var dx, dy, dz [6]uint64
		copy(dx[:], points[i][0:6])
		copy(dy[:], points[i][6:12])
		copy(dz[:], points[i][12:18])
		x.SetLane(i, ToMont(dx))
		y.SetLane(i, ToMont(dy))
		z.SetLane(i, ToMont(dz))
	}
	return
}

// CvtToG1Ax is CvtFromG1Ax's inverse: scatter three packed F8 values
// back into eight strided dense G1 points.
func CvtToG1Ax(x, y, z F8) [lanes][g1Stride]uint64 {
	var out [lanes][g1Stride]uint64
	for i := 0; i < lanes; i++ {
		dx := FromMont(x.Lane(i))
		dy := FromMont(y.Lane(i))
		dz := FromMont(z.Lane(i))
		copy(out[i][0:6], dx[:])
		copy(out[i][6:12], dy[:])
		copy(out[i][12:18], dz[:])
	}
	return out
}
