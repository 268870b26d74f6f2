package fp52

// trans8x8 returns the transpose of an 8x8 matrix of uint64: out[j][i] =
// in[i][j]; in is passed by value and not modified. An AVX-512 kernel does this with a handful of unpack/shuffle
// instructions to move from eight separately-loaded lane vectors into
// the per-limb SoA form F8 uses (or back again); this is the reference
// version that path must agree with, and the one the non-assembly
// Gather/Scatter helpers below actually use.
func trans8x8(in [8][8]uint64) [8][8]uint64 {
	var out [8][8]uint64
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			out[j][i] = in[i][j]
		}
	}
	return out
}

// Gather builds an F8 from eight separately-addressed Elem values, as
// if loading eight lanes from scattered memory and transposing them
// into SoA form.
func Gather(lane0, lane1, lane2, lane3, lane4, lane5, lane6, lane7 Elem) F8 {
	in := [8][8]uint64{lane0, lane1, lane2, lane3, lane4, lane5, lane6, lane7}
	out := trans8x8(in)
	var f F8
	for j := 0; j < nLimbs; j++ {
		f.v[j] = out[j]
	}
	return f
}

// Scatter is Gather's inverse, producing eight individually addressable
// Elem values from an F8's SoA limbs.
func Scatter(f *F8) [lanes]Elem {
	var in [8][8]uint64
	for j := 0; j < nLimbs; j++ {
		in[j] = f.v[j]
	}
	out := trans8x8(in)
	var lanes [8]Elem
	for i := 0; i < 8; i++ {
		lanes[i] = Elem(out[i])
	}
	return lanes
}
