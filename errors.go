// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bls12381msm implements a multi-scalar-multiplication engine
// for BLS12-381 G1, built around eight-wide packed-limb field and curve
// arithmetic (internal/fp52, internal/curve8), a GLV endomorphism split
// with windowed NAF recoding (internal/glv), and a Pippenger bucket
// method for the aggregate form. Dense Fr/Fp/G1 arithmetic and
// single-point fallbacks are supplied by gnark-crypto
// (internal/curvebackend); this package supplies only the packed,
// batched path.
package bls12381msm

import "errors"

// ErrLengthMismatch is returned by MulVec, MulVecMT and MulEach when
// the points and scalars slices have different lengths.
var ErrLengthMismatch = errors.New("bls12381msm: points and scalars length mismatch")

// ErrInvalidBucketWidth is returned by MulVec/MulVecMT when
// bucketOverride is outside the supported bucket-width range.
var ErrInvalidBucketWidth = errors.New("bls12381msm: bucketOverride out of range")

// ErrMulEachAlignment is returned by MulEach when the input length is
// not a multiple of the eight-wide lane width.
var ErrMulEachAlignment = errors.New("bls12381msm: MulEach requires len(points)%8 == 0")
