package glv

import (
	"math/big"

	"github.com/msmlabs/bls12381msm/internal/curve8"
)

// Window is the window width mulEach's per-half scalar recoding uses.
// The bucket MSM does not use it; it picks its own bucket width.
const Window = 5

// TableSize is the number of precomputed multiples per point, 0*P
// through 2^(Window-1)*P inclusive: digits from Recode satisfy |d| <=
// 2^(Window-1) (a digit strictly greater than half the window range
// wraps to negative, but one exactly equal to half stays positive), so
// the table needs indices 0..16 for Window=5 -- 17 entries, not 16.
const TableSize = 1<<(Window-1) + 1

// Recode turns a non-negative scalar (the half-width output of Split,
// at most ~128 bits) into a little-endian stream of signed digits, one
// per Window-bit window: d_i = bits[i*Window .. i*Window+Window) +
// carry; if d_i > 2^(Window-1) the emitted digit is d_i - 2^Window with
// a carry of 1 into the next window, otherwise the digit is d_i with no
// carry. This is spec.md's windowed recoding, not classical odd-only
// NAF: digit magnitudes range over the full 0..2^(Window-1), which is
// why the table below holds every multiple in that range rather than
// only the odd ones.
func Recode(a *big.Int) []int32 {
	if a.Sign() == 0 {
		return nil
	}
	bitLen := a.BitLen()
	numWindows := (bitLen + Window - 1) / Window

	modulus := int32(1) << Window
	half := modulus / 2

	digits := make([]int32, 0, numWindows+1)
	var carry int32
	for i := 0; i < numWindows || carry != 0; i++ {
		shift := uint(i * Window)
		chunk := new(big.Int).Rsh(a, shift)
		chunk.And(chunk, big.NewInt(int64(modulus-1)))
		d := int32(chunk.Int64()) + carry
		if d > half {
			digits = append(digits, d-modulus)
			carry = 1
		} else {
			digits = append(digits, d)
			carry = 0
		}
	}
	return digits
}

// BuildTable precomputes 0*base, 1*base, ..., (TableSize-1)*base, the
// table Recode's digits index into.
func BuildTable(base *curve8.Point8) [TableSize]curve8.Point8 {
	var tbl [TableSize]curve8.Point8
	tbl[0] = curve8.Infinity8()
	if TableSize > 1 {
		tbl[1] = *base
	}
	for i := 2; i < TableSize; i++ {
		tbl[i].Add(&tbl[i-1], base)
	}
	return tbl
}

// GatherSigned8 selects, independently per lane, the table entry for
// lane i's signed digit digits[i] (0 <= |d| < TableSize), negating the
// selected point in every lane whose digit was negative. The scan
// touches every table entry for every lane regardless of which index
// that lane wants, so the access pattern never depends on the digit
// values themselves.
func GatherSigned8(tbl *[TableSize]curve8.Point8, digits [8]int32) curve8.Point8 {
	var wantIdx [8]int32
	var negMask uint8
	for lane, d := range digits {
		if d < 0 {
			wantIdx[lane] = -d
			negMask |= 1 << uint(lane)
		} else {
			wantIdx[lane] = d
		}
	}

	out := curve8.Infinity8()
	for i := 0; i < TableSize; i++ {
		var mask uint8
		for lane := 0; lane < 8; lane++ {
			if wantIdx[lane] == int32(i) {
				mask |= 1 << uint(lane)
			}
		}
		out.Select(&tbl[i], &out, mask)
	}
	out.CondNeg(&out, negMask)
	return out
}
