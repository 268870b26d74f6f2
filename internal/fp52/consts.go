// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fp52 implements BLS12-381 base-field arithmetic over eight
// 52-bit limbs packed into structure-of-arrays lanes, the representation
// an AVX-512 IFMA kernel operates on directly. It mirrors the radix51
// package's split between a dense external form and a wide internal one,
// generalized from 2^255-19/radix-51 to BLS12-381's 381-bit prime and
// radix-52.
package fp52

import "math/big"

// limbBits is the width of one packed limb. Eight of them give 416 bits
// of headroom for a 381-bit modulus.
const limbBits = 52

const mask52 = (uint64(1) << limbBits) - 1

// nLimbs is the number of 52-bit limbs in one packed field element.
const nLimbs = 8

// lanes is the SIMD width of F8: eight field elements per 512-bit vector.
const lanes = 8

// Elem is a single field element's 52-bit limbs in Montgomery form with
// R = 2^(52*8) mod p. Elem is the "lane" unit F8 is built from; it never
// appears on its own in the public API but underlies every F8 operation.
type Elem [nLimbs]uint64

// p is the BLS12-381 base field modulus, 52-bit limbs, little-endian.
var p = Elem{
	0xeffffffffaaab, 0xfeb153ffffb9f, 0x6b0f6241eabff, 0x12bf6730d2a0f,
	0x764774b84f385, 0x1ba7b6434bacd, 0x1ea397fe69a4b, 0x000000001a011,
}

// pBig is p as a big.Int, used by the big.Int-backed Montgomery
// multiplication helpers below.
var pBig = mustBig("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")

// rBig is R = 2^416 mod p, the Montgomery radix this package's Elem is
// encoded against.
var rBig = new(big.Int).Exp(big.NewInt(2), big.NewInt(416), pBig)

// rInvBig is R^-1 mod p, used to decode a limb-encoded Elem back to its
// plain residue and to implement Montgomery multiplication directly from
// the defining identity mul(A,B) = A*B*R^-1 mod p rather than a literal
// CIOS carry chain; see DESIGN.md for why the generic path is expressed
// this way.
var rInvBig = new(big.Int).ModInverse(rBig, pBig)

// oneElem is the Montgomery encoding of 1: R mod p.
var oneElem = Elem{
	0x6480ea8e9b9af, 0x65766c8fe444f, 0x8b540fea96f7d, 0x3b2ee82efd422,
	0xa6723e5f0ade5, 0xff6eb6fdd4230, 0xe06ef23c24a25, 0x0000000014c8e,
}

// zeroElem is the additive identity; zero is its own Montgomery encoding.
var zeroElem = Elem{}

// m64to52 converts a dense 6x64 Montgomery-R384 value, re-sliced into
// 8x52 limbs by split52 (no arithmetic, a pure radix change), into this
// package's Montgomery-R416 encoding. Equal to 2^448 mod p; see
// DESIGN.md for the derivation.
var m64to52 = Elem{
	0x7fde37dba9366, 0x4e27525bc342b, 0x1f5b1e9778489, 0xb872b2b91b9dc,
	0xb206f497dfcaf, 0x4137cc89a9b0b, 0xd9d20d7e39959, 0x000000000411c,
}

// m52to64 converts this package's Montgomery-R416 encoding back to a
// dense Montgomery-R384 value (still 8x52 limbs; concat52 then does the
// pure radix change back to 6x64 words). Equal to 2^384 mod p = R384.
var m52to64 = Elem{
	0x900000002fffd, 0x0bc40c0002760, 0x3c758baebf400, 0x57455f4898575,
	0xd77ce58537052, 0x071a97a256ec6, 0xec3fa80e4935c, 0x0000000015f65,
}

// b3Elem is 3*b in Montgomery-R416 form, b=4 for BLS12-381's y^2=x^3+4,
// used by the projective complete addition/doubling formula (C3).
var b3Elem = Elem{
	0x460afeaf7b431, 0xcd5122beb5b19, 0xc4664aadd2de0, 0x1d78417c77713,
	0xa4d7d1f9b9711, 0x004b2b884890e, 0x717302e000d24, 0x000000000f618,
}

// betaElem is the Montgomery-R416 encoding of a primitive cube root of
// unity in Fp used for the G1 endomorphism mulLambda: phi(x,y)=(beta*x,y).
var betaElem = Elem{
	0xd75aaff33455f, 0xd095356b7cbb6, 0x953a2f6fa079f, 0x1080cf0a3d697,
	0x3f7de3465fe7c, 0x01f71fd6896ec, 0xd9dd9cc172747, 0x0000000007d91,
}

func mustBig(hexStr string) *big.Int {
	v, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic("fp52: invalid constant")
	}
	return v
}

func toBig(e *Elem) *big.Int {
	v := new(big.Int)
	for i := nLimbs - 1; i >= 0; i-- {
		v.Lsh(v, limbBits)
		v.Or(v, new(big.Int).SetUint64(e[i]))
	}
	return v
}

func fromBig(z *Elem, v *big.Int) {
	t := new(big.Int).Set(v)
	mask := big.NewInt(int64(mask52))
	for i := 0; i < nLimbs; i++ {
		limb := new(big.Int).And(t, mask)
		z[i] = limb.Uint64()
		t.Rsh(t, limbBits)
	}
}
