//go:build amd64
// +build amd64

package simd

import "golang.org/x/sys/cpu"

// ifmaAvailable reports whether the process detected AVX-512 IFMA at
// startup. No assembly kernel is wired behind this boundary in this
// module (see DESIGN.md): AddMod52/SelectMask in ops_generic.go are the
// only implementations actually called, on every architecture. This
// file keeps the detection half of the fast-path split present and
// correctly gated, the same way internal/fp52's cpu_amd64.go does, so
// that a real assembly kernel could be added behind IfmaAvailable later
// without moving this boundary.
var ifmaAvailable = cpu.Initialized && cpu.X86.HasAVX512IFMA

// IfmaAvailable reports whether AVX-512 IFMA was detected at process
// start.
func IfmaAvailable() bool { return ifmaAvailable }
