package fp52

import "math/big"

// elemSub sets z = x-y mod p. Limb subtract with borrow, followed by a
// conditional add of p when the subtraction underflowed.
func elemSub(z, x, y *Elem) {
	var t Elem
	var borrow int64
	for i := 0; i < nLimbs; i++ {
		d := int64(x[i]) - int64(y[i]) - borrow
		if d < 0 {
			d += int64(1) << limbBits
			borrow = 1
		} else {
			borrow = 0
		}
		t[i] = uint64(d)
	}
	if borrow != 0 {
		var carry uint64
		for i := 0; i < nLimbs; i++ {
			s := t[i] + p[i] + carry
			t[i] = s & mask52
			carry = s >> limbBits
		}
	}
	*z = t
}

// elemMul sets z = x*y*R^-1 mod p, i.e. Montgomery multiplication in the
// R=2^416 domain. Implemented directly from the defining Montgomery
// identity via big.Int rather than a hand-unrolled 52-bit CIOS carry
// chain; see DESIGN.md.
func elemMul(z, x, y *Elem) {
	xb, yb := toBig(x), toBig(y)
	prod := new(big.Int).Mul(xb, yb)
	prod.Mul(prod, rInvBig)
	prod.Mod(prod, pBig)
	fromBig(z, prod)
}

// elemSqr sets z = x*x*R^-1 mod p. It is elemMul(z, x, x): F8.Sqr and
// F16.Sqr both reach it, so squaring delegates to multiplication at both
// widths, the way mcl's vsqr sometimes delegates to vmul (DESIGN.md).
func elemSqr(z, x *Elem) {
	elemMul(z, x, x)
}

// elemNeg sets z = -x mod p (p-x, or 0 if x is already 0).
func elemNeg(z, x *Elem) {
	if *x == (Elem{}) {
		*z = Elem{}
		return
	}
	elemSub(z, &p, x)
}

// elemIsZero reports whether x == 0.
func elemIsZero(x *Elem) bool {
	return *x == (Elem{})
}

// elemEqual reports whether x == y as field elements (both already
// reduced to [0,p)).
func elemEqual(x, y *Elem) bool {
	return *x == *y
}

// elemSelect sets z = a if cond else b.
func elemSelect(z, a, b *Elem, cond bool) {
	if cond {
		*z = *a
	} else {
		*z = *b
	}
}
