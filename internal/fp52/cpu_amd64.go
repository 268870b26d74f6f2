// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64
// +build amd64

package fp52

import "golang.org/x/sys/cpu"

// hasIFMA reports whether the running CPU supports AVX-512 IFMA, the
// instruction set a real vmulA/vsqrA kernel would dispatch to. This
// package's arithmetic is always computed through the portable Go path
// in elem.go; hasIFMA exists so callers (the root package's Init) can
// report which capability was detected and so a future
// assembly kernel has the same init-time gate the teacher's radix51
// package uses for useBMI2.
var hasIFMA bool

func init() {
	hasIFMA = cpu.Initialized && cpu.X86.HasAVX512IFMA
}

// HasIFMA reports whether AVX-512 IFMA was detected at process start.
func HasIFMA() bool { return hasIFMA }
