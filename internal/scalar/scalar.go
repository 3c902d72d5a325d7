package scalar

import (
	"encoding/binary"
	"math/bits"
)

// This file implements arithmetic on scalars modulo the group order
// N = 2^249 + ... (250-bit, odd) of the Kummer-surface ladder. A scalar is
// held as four 64-bit limbs in little-endian order; values are not always
// held canonically reduced between operations.
//
// As with the field layer, scalar operations are not performance-critical
// (they run once per sign/verify) but must be constant-time, since some
// scalar values (nonces, private-key halves) are secret.

// Scalar is an element of Z/NZ, stored as four 64-bit limbs, little-endian.
type Scalar [4]uint64

// N, the group order, as a reference value (little-endian limbs). Scalar
// values produced by Reduce512/DecodeReduce32/SubMul are always below N.
var N = Scalar{0xB88CF4B47BF3FA43, 0x2D3D8036065EAB00, 0xFCCB2967DF38AD6B, 0x03FFFFFFFFFFFFFF}

// L = 2^250 - N = 2^250 mod N, and L6 = L*64 = 2^256 mod N (both well
// below N; used by the fold reduction below). These are the exact constants of the reference
// implementation's large_red, re-expressed as 64-bit limbs.
var redL = [4]uint64{0x47730B4B840C05BD, 0xD2C27FC9F9A154FF, 0x0334D69820C75294, 0}
var redL6 = [4]uint64{0xDCC2D2E103016F40, 0xB09FF27E68553FD1, 0xCD35A60831D4A534, 0}

// Extend a slice for appending n bytes. The two returned values are the
// new extended slice (no extra allocation if the original slice was large
// enough), and the sub-slice where data should be written.
// (Inspired by https://github.com/gtank/ristretto255 )
func prepareAppend(b []byte, n int) (head, tail []byte) {
	len1 := len(b)
	len2 := len1 + n
	if cap(b) >= len2 {
		head = b[:len2]
	} else {
		head = make([]byte, len2)
		copy(head, b)
	}
	tail = head[len1:]
	return
}

// 128x128->128 multiplication.
func Mul128x128trunc(d, a, b *[2]uint64) {
	t1, t0 := bits.Mul64(a[0], b[0])
	t1 += a[0]*b[1] + a[1]*b[0]
	d[0] = t0
	d[1] = t1
}

// 128x128->256 multiplication.
func Mul128x128(d *[4]uint64, a, b *[2]uint64) {
	var lo, hi, cc uint64
	d[1], d[0] = bits.Mul64(a[0], b[0])
	d[3], d[2] = bits.Mul64(a[1], b[1])
	hi, lo = bits.Mul64(a[0], b[1])
	d[1], cc = bits.Add64(d[1], lo, 0)
	d[2], cc = bits.Add64(d[2], hi, cc)
	d[3] += cc
	hi, lo = bits.Mul64(a[1], b[0])
	d[1], cc = bits.Add64(d[1], lo, 0)
	d[2], cc = bits.Add64(d[2], hi, cc)
	d[3] += cc
}

// 256x128->384 multiplication.
func Mul256x128(d *[6]uint64, a *[4]uint64, b *[2]uint64) {
	var c0, c1 [2]uint64
	var t0, t1 [4]uint64
	c0[0] = a[0]
	c0[1] = a[1]
	Mul128x128(&t0, &c0, b)
	c1[0] = a[2]
	c1[1] = a[3]
	Mul128x128(&t1, &c1, b)
	var cc uint64
	d[0] = t0[0]
	d[1] = t0[1]
	d[2], cc = bits.Add64(t0[2], t1[0], 0)
	d[3], cc = bits.Add64(t0[3], t1[1], cc)
	d[4], cc = bits.Add64(0, t1[2], cc)
	d[5] = t1[3] + cc
}

// 256x256->512 multiplication.
func Mul256x256(d *[8]uint64, a *[4]uint64, b *[4]uint64) {
	var c0, c1 [2]uint64
	var t0, t1 [6]uint64
	c0[0] = b[0]
	c0[1] = b[1]
	Mul256x128(&t0, a, &c0)
	c1[0] = b[2]
	c1[1] = b[3]
	Mul256x128(&t1, a, &c1)
	var cc uint64
	d[0] = t0[0]
	d[1] = t0[1]
	d[2], cc = bits.Add64(t0[2], t1[0], 0)
	d[3], cc = bits.Add64(t0[3], t1[1], cc)
	d[4], cc = bits.Add64(t0[4], t1[2], cc)
	d[5], cc = bits.Add64(t0[5], t1[3], cc)
	d[6], cc = bits.Add64(0, t1[4], cc)
	d[7] = t1[5] + cc
}

// addLowInto adds the 256-bit value y into the low 256 bits of the 512-bit
// value r, propagating the carry through r's high 256 bits. Grounded on
// large_add(x, y, 0) of the reference implementation.
func addLowInto(r *[8]uint64, y *[4]uint64) {
	var cc uint64
	r[0], cc = bits.Add64(r[0], y[0], 0)
	r[1], cc = bits.Add64(r[1], y[1], cc)
	r[2], cc = bits.Add64(r[2], y[2], cc)
	r[3], cc = bits.Add64(r[3], y[3], cc)
	for i := 4; i < 8; i++ {
		r[i], cc = bits.Add64(r[i], 0, cc)
	}
}

// reduceN reduces a 512-bit value modulo N = 2^250-ish, using the
// fold-by-L6-then-L scheme of the reference implementation's large_red.
// N occupies exactly 250 bits, so the gap to the 256-bit register width is
// 6 bits; that 6-bit boundary sits at bit 58 of the fourth limb.
func reduceN(x *[8]uint64) Scalar {
	var r [8]uint64
	copy(r[:], x[:])

	for i := 0; i < 4; i++ {
		var hi [4]uint64
		copy(hi[:], r[4:8])
		var temp [8]uint64
		Mul256x256(&temp, &hi, &redL6)
		copy(r[4:8], temp[4:8])
		var lo [4]uint64
		copy(lo[:], temp[0:4])
		addLowInto(&r, &lo)
	}

	// Fold the 6 bits beyond the 250-bit boundary (top 6 bits of r[3])
	// into the bottom of the high half, then reduce that residual by L.
	fold := r[3] >> 58
	r[3] &= 0x03FFFFFFFFFFFFFF
	var hi [4]uint64
	hi[0] = (r[4] << 6) | fold
	hi[1] = r[5]
	hi[2] = r[6]
	hi[3] = r[7]
	var temp [8]uint64
	Mul256x256(&temp, &hi, &redL)
	copy(r[4:8], temp[4:8])
	var lo [4]uint64
	copy(lo[:], temp[0:4])
	addLowInto(&r, &lo)

	// One more bit may have spilled past bit 250 from the addition above.
	bit := (r[3] >> 58) & 1
	r[3] &= 0x03FFFFFFFFFFFFFF
	hi = [4]uint64{bit, 0, 0, 0}
	Mul256x256(&temp, &hi, &redL)
	r[4], r[5], r[6], r[7] = 0, 0, 0, 0
	copy(lo[:], temp[0:4])
	addLowInto(&r, &lo)

	var s Scalar
	copy(s[:], r[0:4])
	return s
}

// negN computes N - s (mod 2^256). Grounded on large_neg.
func negN(s *Scalar) Scalar {
	var r Scalar
	var borrow uint64
	for i := 0; i < 4; i++ {
		r[i], borrow = bits.Sub64(N[i], s[i], borrow)
	}
	return r
}

// Reduce512 sets s to x reduced modulo N, where x is a 512-bit little-endian
// integer held as 8 limbs (the full output of a 256x256 multiply, or the
// 64-byte output of the sponge used for deterministic nonce/challenge
// derivation). Grounded on large_red as invoked directly on a hash state.
func (s *Scalar) Reduce512(x *[8]uint64) *Scalar {
	*s = reduceN(x)
	return s
}

// DecodeReduce32 decodes a 32-byte little-endian integer and reduces it
// modulo N. Grounded on scalar_get32.
func (s *Scalar) DecodeReduce32(src *[32]byte) *Scalar {
	var x [8]uint64
	for i := 0; i < 4; i++ {
		x[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	*s = reduceN(&x)
	return s
}

// ReduceWide64 decodes a 64-byte little-endian integer (e.g. a full sponge
// finish state) and reduces it modulo N. Grounded on scalar_get_hrqm.
func (s *Scalar) ReduceWide64(src *[64]byte) *Scalar {
	var x [8]uint64
	for i := 0; i < 8; i++ {
		x[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	*s = reduceN(&x)
	return s
}

// SubMul computes s <- (r - h*d) mod N. Grounded on scalar_ops, the core
// of signature generation (s = r - h*privkey mod N).
func (s *Scalar) SubMul(r, h, d *Scalar) *Scalar {
	hh := [4]uint64(*h)
	dd := [4]uint64(*d)
	var prod [8]uint64
	Mul256x256(&prod, &hh, &dd)
	hd := reduceN(&prod)

	neg := negN(&hd)
	var t [8]uint64
	copy(t[0:4], neg[:])
	rr := [4]uint64(*r)
	addLowInto(&t, &rr)
	*s = reduceN(&t)
	return s
}

// Bytes encodes s into 32 bytes, little-endian. The caller is responsible
// for ensuring s is already reduced (every constructor above guarantees
// this).
func (s *Scalar) Bytes() [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], s[i])
	}
	return out
}

// AppendBytes appends the 32-byte little-endian encoding of s to dst.
func (s *Scalar) AppendBytes(dst []byte) []byte {
	b2, tail := prepareAppend(dst, 32)
	enc := s.Bytes()
	copy(tail, enc[:])
	return b2
}
