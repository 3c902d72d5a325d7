//go:build !qdsv_vartime

package kummer

import "github.com/lix2ng/qdsv/internal/field"

// swapPoints conditionally exchanges x and y in constant time: every limb
// of every coordinate is touched regardless of swap, so the access pattern
// does not leak which branch was taken. Grounded on ct_swap, compiled in
// whenever the caller handles secret scalars (key generation, signing, the
// Diffie-Hellman exchange).
func swapPoints(x, y *Point, swap uint64) {
	mask := uint64(0) - (swap & 1)
	condSwapElt(&x.X, &y.X, mask)
	condSwapElt(&x.Y, &y.Y, mask)
	condSwapElt(&x.Z, &y.Z, mask)
	condSwapElt(&x.T, &y.T, mask)
}

func condSwapElt(a, b *field.Elt, mask uint64) {
	for i := range a {
		t := (a[i] ^ b[i]) & mask
		a[i] ^= t
		b[i] ^= t
	}
}
