package field

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/big"
)

// =====================================================================
// Custom PRNG (based on SHA-512) for reproducible tests.

type prng struct {
	buf [64]byte
	ptr int
}

// Initialize the PRNG with an explicit seed.
func (p *prng) init(seed string) {
	hv := sha512.Sum512([]byte(seed))
	copy(p.buf[:], hv[:])
	p.ptr = 0
}

// Fill the provided slice with pseudorandom bytes from the PRNG.
func (p *prng) generate(d []byte) {
	n := len(d)
	for n > 0 {
		c := 32 - p.ptr
		if c == 0 {
			hv := sha512.Sum512(p.buf[:])
			copy(p.buf[:], hv[:])
			p.ptr = 0
			c = 32
		}
		if c > n {
			c = n
		}
		copy(d, p.buf[p.ptr:p.ptr+c])
		d = d[c:]
		n -= c
		p.ptr += c
	}
}

// Generate a random 128-bit integer from the PRNG.
func (p *prng) mk128(d *[2]uint64) {
	var bb [16]byte
	p.generate(bb[:])
	d[0] = binary.LittleEndian.Uint64(bb[0:])
	d[1] = binary.LittleEndian.Uint64(bb[8:])
}

// Make a new random field element from the PRNG.
func (p *prng) mkgf(d *[2]uint64) {
	var t [2]uint64
	p.mk128(&t)
	copy(d[:], t[:])
}

// Create a new big integer by reducing the provided 128-bit integer a[]
// modulo m.
func int128ToBigMod(a *[2]uint64, m *big.Int) big.Int {
	var x, y big.Int
	for i := 1; i >= 0; i-- {
		y.SetUint64(a[i])
		x.Lsh(&x, 64).Add(&x, &y)
	}
	for x.Cmp(m) >= 0 {
		x.Sub(&x, m)
	}
	return x
}

// Get the string representation of a 128-bit integer (hex, '0x' prefix).
func int128ToString(a *[2]uint64) string {
	return fmt.Sprintf("0x%016X%016X", a[1], a[0])
}

// Convert a field element to a readable string.
func gfToString(a *[2]uint64) string {
	var t [2]uint64
	copy(t[:], a[:])
	return "K(" + int128ToString(&t) + ")"
}

// Convert an (internal) field element representation to a big integer
// modulo the provided integer p.
func gfToBig(a *[2]uint64, p *big.Int) big.Int {
	var t [2]uint64
	copy(t[:], a[:])
	return int128ToBigMod(&t, p)
}

// The field modulus, p = 2^127 - 1, as a big.Int.
func fieldModulus() *big.Int {
	var p big.Int
	p.SetUint64(1)
	p.Lsh(&p, 127)
	p.Sub(&p, big.NewInt(1))
	return &p
}
