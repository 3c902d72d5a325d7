// Package bobjr implements Bob Jr., the Keccak-f[800] sponge used to
// derive deterministic nonces and challenge scalars: rate 68 bytes,
// capacity 32 bytes, overwrite-mode absorption, 10 permutation rounds.
package bobjr

// rot32 rotates x left by n bits within a 32-bit word.
func rot32(x uint32, n uint32) uint32 {
	return (x << n) | (x >> (32 - n))
}

// roundConstants holds the last 10 of the 22 standard Keccak-f[800]
// round constants, matching the reference implementation's non-full-round
// build (CONF_KF800_FULLR=0): only the final 10 rounds run.
var roundConstants = [10]uint32{
	0x8000808b, 0x0000008b, 0x00008089, 0x00008003, 0x00008002,
	0x00000080, 0x0000800a, 0x8000000a, 0x80008081, 0x00008080,
}

// rhoPiSteps describes the combined Rho (rotate) and Pi
// (permute) step as a chain: starting from lane 1, each entry rotates the
// value carried from the previous lane by the given amount and stores it
// into the given destination lane. Transcribed from the reference
// implementation's explicit 24-step chain.
var rhoPiSteps = [24]struct {
	dst, src uint32
	rot      uint32
}{
	{10, 1, 1}, {7, 10, 3}, {11, 7, 6}, {17, 11, 10}, {18, 17, 15}, {3, 18, 21},
	{5, 3, 28}, {16, 5, 4}, {8, 16, 13}, {21, 8, 23}, {24, 21, 2}, {4, 24, 14},
	{15, 4, 27}, {23, 15, 9}, {19, 23, 24}, {13, 19, 8}, {12, 13, 25}, {2, 12, 11},
	{20, 2, 30}, {14, 20, 18}, {22, 14, 7}, {9, 22, 29}, {6, 9, 20}, {1, 6, 12},
}

// permute applies the Keccak-f[800] permutation to state, running the
// last nr of its 22 rounds (10, for this module's fixed round count).
// Grounded on kf800_permute's C fallback (non-assembly) path.
func permute(state *[25]uint32, nr int) {
	A := state
	start := len(roundConstants) - nr
	for r := start; r < len(roundConstants); r++ {
		// Theta
		var c [5]uint32
		for x := 0; x < 5; x++ {
			c[x] = A[x] ^ A[5+x] ^ A[10+x] ^ A[15+x] ^ A[20+x]
		}
		var d [5]uint32
		d[0] = c[4] ^ rot32(c[1], 1)
		d[1] = c[0] ^ rot32(c[2], 1)
		d[2] = c[1] ^ rot32(c[3], 1)
		d[3] = c[2] ^ rot32(c[4], 1)
		d[4] = c[3] ^ rot32(c[0], 1)
		for x := 0; x < 5; x++ {
			A[x] ^= d[x]
			A[x+5] ^= d[x]
			A[x+10] ^= d[x]
			A[x+15] ^= d[x]
			A[x+20] ^= d[x]
		}

		// Rho and Pi combined.
		carry := A[1]
		for _, step := range rhoPiSteps {
			next := A[step.dst]
			A[step.dst] = rot32(carry, step.rot)
			carry = next
		}

		// Chi
		var x, y uint32
		for row := 0; row < 25; row += 5 {
			x, y = A[row+0], A[row+1]
			A[row+0] ^= ^y & A[row+2]
			A[row+1] ^= ^A[row+2] & A[row+3]
			A[row+2] ^= ^A[row+3] & A[row+4]
			A[row+3] ^= ^A[row+4] & x
			A[row+4] ^= ^x & y
		}

		// Iota
		A[0] ^= roundConstants[r]
	}
}
