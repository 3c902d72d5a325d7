package scalar

import (
	"crypto/sha512"
	"encoding/binary"
	"math/big"
	"testing"
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

func bigN() *big.Int {
	var z big.Int
	for i := 3; i >= 0; i-- {
		var w big.Int
		w.SetUint64(N[i])
		z.Lsh(&z, 64)
		z.Add(&z, &w)
	}
	return &z
}

func limbsToBig(a *[4]uint64) *big.Int {
	var z big.Int
	for i := 3; i >= 0; i-- {
		var w big.Int
		w.SetUint64(a[i])
		z.Lsh(&z, 64)
		z.Add(&z, &w)
	}
	return &z
}

func wideToBig(a []uint64) *big.Int {
	var z big.Int
	for i := len(a) - 1; i >= 0; i-- {
		var w big.Int
		w.SetUint64(a[i])
		z.Lsh(&z, 64)
		z.Add(&z, &w)
	}
	return &z
}

func TestNBitLength(t *testing.T) {
	n := bigN()
	if n.BitLen() != 250 {
		t.Fatalf("ERR N bit length: got %d, want 250", n.BitLen())
	}
	if n.Bit(0) != 1 {
		t.Fatalf("ERR N must be odd")
	}
}

func TestMul256x256(t *testing.T) {
	var rng prng
	rng.init("test mul256x256")
	for i := 0; i < 2000; i++ {
		var a, b [4]uint64
		var buf [64]byte
		rng.generate(buf[:])
		for j := 0; j < 4; j++ {
			a[j] = binary.LittleEndian.Uint64(buf[8*j:])
			b[j] = binary.LittleEndian.Uint64(buf[32+8*j:])
		}
		var d [8]uint64
		Mul256x256(&d, &a, &b)

		za := limbsToBig(&a)
		zb := limbsToBig(&b)
		var want big.Int
		want.Mul(za, zb)
		got := wideToBig(d[:])
		if got.Cmp(&want) != 0 {
			t.Fatalf("ERR Mul256x256 mismatch at iteration %d", i)
		}
	}
}

func TestReduceN(t *testing.T) {
	var rng prng
	rng.init("test reducen")
	n := bigN()
	var s Scalar
	for i := 0; i < 5000; i++ {
		var x [8]uint64
		var buf [64]byte
		rng.generate(buf[:])
		for j := 0; j < 8; j++ {
			x[j] = binary.LittleEndian.Uint64(buf[8*j:])
		}
		s.Reduce512(&x)

		zx := wideToBig(x[:])
		var want big.Int
		want.Mod(zx, n)

		got := limbsToBig((*[4]uint64)(&s))
		if got.Cmp(&want) != 0 {
			t.Fatalf("ERR reduceN mismatch at iteration %d", i)
		}
		if got.Cmp(n) >= 0 {
			t.Fatalf("ERR reduceN result not below N at iteration %d", i)
		}
	}
}

func TestDecodeReduce32(t *testing.T) {
	var rng prng
	rng.init("test decodereduce32")
	n := bigN()
	for i := 0; i < 2000; i++ {
		var buf [32]byte
		rng.generate(buf[:])
		var s Scalar
		s.DecodeReduce32(&buf)

		var zx big.Int
		for j := 31; j >= 0; j-- {
			zx.Lsh(&zx, 8)
			zx.Add(&zx, big.NewInt(int64(buf[j])))
		}
		var want big.Int
		want.Mod(&zx, n)

		got := limbsToBig((*[4]uint64)(&s))
		if got.Cmp(&want) != 0 {
			t.Fatalf("ERR DecodeReduce32 mismatch at iteration %d", i)
		}
	}
}

func TestReduceWide64(t *testing.T) {
	var rng prng
	rng.init("test reducewide64")
	n := bigN()
	for i := 0; i < 2000; i++ {
		var buf [64]byte
		rng.generate(buf[:])
		var s Scalar
		s.ReduceWide64(&buf)

		var zx big.Int
		for j := 63; j >= 0; j-- {
			zx.Lsh(&zx, 8)
			zx.Add(&zx, big.NewInt(int64(buf[j])))
		}
		var want big.Int
		want.Mod(&zx, n)

		got := limbsToBig((*[4]uint64)(&s))
		if got.Cmp(&want) != 0 {
			t.Fatalf("ERR ReduceWide64 mismatch at iteration %d", i)
		}
	}
}

func TestSubMul(t *testing.T) {
	var rng prng
	rng.init("test submul")
	n := bigN()
	for i := 0; i < 2000; i++ {
		var buf [96]byte
		rng.generate(buf[:])
		var rS, hS, dS, s Scalar
		var tmp [32]byte
		copy(tmp[:], buf[0:32])
		rS.DecodeReduce32(&tmp)
		copy(tmp[:], buf[32:64])
		hS.DecodeReduce32(&tmp)
		copy(tmp[:], buf[64:96])
		dS.DecodeReduce32(&tmp)

		s.SubMul(&rS, &hS, &dS)

		zr := limbsToBig((*[4]uint64)(&rS))
		zh := limbsToBig((*[4]uint64)(&hS))
		zd := limbsToBig((*[4]uint64)(&dS))
		var want big.Int
		want.Mul(zh, zd)
		want.Sub(zr, &want)
		want.Mod(&want, n)

		got := limbsToBig((*[4]uint64)(&s))
		if got.Cmp(&want) != 0 {
			t.Fatalf("ERR SubMul mismatch at iteration %d", i)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	var rng prng
	rng.init("test scalar bytes")
	for i := 0; i < 2000; i++ {
		var buf [32]byte
		rng.generate(buf[:])
		var s Scalar
		s.DecodeReduce32(&buf)

		enc := s.Bytes()
		var s2 Scalar
		s2.DecodeReduce32(&enc)
		if s != s2 {
			t.Fatalf("ERR Bytes round-trip mismatch at iteration %d", i)
		}
	}
}
