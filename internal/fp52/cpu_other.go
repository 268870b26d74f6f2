// Copyright (c) 2017 George Tankersley. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64
// +build !amd64

package fp52

// hasIFMA is always false off amd64: there is no AVX-512 IFMA to detect.
var hasIFMA = false

// HasIFMA reports whether AVX-512 IFMA was detected at process start.
func HasIFMA() bool { return hasIFMA }
