package kummer

import (
	"crypto/sha512"
	"math/big"

	"github.com/lix2ng/qdsv/internal/field"
)

// Small PRNG, same construction as internal/field's test helper.
type prng struct {
	buf [64]byte
	ptr int
}

func (p *prng) init(seed string) {
	hv := sha512.Sum512([]byte(seed))
	copy(p.buf[:], hv[:])
	p.ptr = 0
}

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

func (p *prng) elt() field.Elt {
	var buf [16]byte
	p.generate(buf[:])
	var e field.Elt
	e.DecodeReduce(buf[:])
	return e
}

func (p *prng) point() Point {
	return Point{X: p.elt(), Y: p.elt(), Z: p.elt(), T: p.elt()}
}

func (p *prng) scalarBytes() [32]byte {
	var n [32]byte
	p.generate(n[:])
	n[31] &= 0x07 // keep within the 251-bit range the ladder consumes
	return n
}

func fieldModulus() *big.Int {
	var p big.Int
	p.SetUint64(1)
	p.Lsh(&p, 127)
	p.Sub(&p, big.NewInt(1))
	return &p
}

func eltToBig(a *field.Elt, p *big.Int) *big.Int {
	var z, w big.Int
	z.SetUint64(a[1])
	z.Lsh(&z, 64)
	w.SetUint64(a[0])
	z.Add(&z, &w)
	z.Mod(&z, p)
	return &z
}
