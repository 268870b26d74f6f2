//go:build !amd64
// +build !amd64

package simd

// IfmaAvailable is always false off amd64.
func IfmaAvailable() bool { return false }
