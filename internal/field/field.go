package field

import (
	"encoding/binary"
	"math/bits"
)

// This file implements computations in the field of integers modulo
// 2^127 - mq (for small mq). The implementation is portable (no assembly)
// but should be decently efficient on 64-bit architectures. It is safe
// (constant-time) as long as 64-bit operations (especially 64x64->128
// multiplication, using math/bits.Mul64()) are constant-time, which
// should be true on most modern systems.

// =======================================================================
// Internal functions
// =======================================================================

// Unless otherwise stated, all functions below accept source and destination
// operands to be the same objects. Parameter order is destination first
// (similar to mathematical notation: "d = a + b").
// The 'mq' parameter is the small integer such that modulus is p = 2^127-mq.
// For the only field this module implements, mq == 1.
//
// Storage format: an array of two 64-bit unsigned integers, which encode
// the value in base 2^64 (little-endian order: first limb is least
// significant). Values are not necessarily reduced on output; all functions
// accept inputs in the whole 0..2^128-1 range.

// Internal function for field addition.
func gf_add(d, a, b *[2]uint64, mq uint64) {
	// First pass: sum over 128 bits + carry.
	var cc uint64 = 0
	d[0], cc = bits.Add64(a[0], b[0], cc)
	d[1], cc = bits.Add64(a[1], b[1], cc)

	// Second pass: if there is a carry, subtract 2*p = 2^128 - 2*mq;
	// i.e. we add 2*mq.
	d[0], cc = bits.Add64(d[0], (mq<<1)&-cc, 0)
	d[1], cc = bits.Add64(d[1], 0, cc)

	// If there is an extra carry, the initial sum was at least
	// 2^129 - 2*mq, in which case the low limb is necessarily lower
	// than 2*mq, and adding 2*mq again won't trigger an extra carry.
	d[0] += (mq << 1) & -cc
}

// Internal function for field subtraction.
func gf_sub(d, a, b *[2]uint64, mq uint64) {
	var cc uint64 = 0
	d[0], cc = bits.Sub64(a[0], b[0], cc)
	d[1], cc = bits.Sub64(a[1], b[1], cc)

	d[0], cc = bits.Sub64(d[0], (mq<<1)&-cc, 0)
	d[1], cc = bits.Sub64(d[1], 0, cc)

	d[0] -= (mq << 1) & -cc
}

// Internal function for field negation.
func gf_neg(d, a *[2]uint64, mq uint64) {
	// First pass: compute 2*p - a over 128 bits.
	var cc uint64
	d[0], cc = bits.Sub64(-(mq << 1), a[0], 0)
	d[1], cc = bits.Sub64(0xFFFFFFFFFFFFFFFF, a[1], cc)

	// Second pass: if there is a borrow, add back p = 2^127 - mq.
	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	d[1], _ = bits.Add64(d[1], e>>1, cc)
}

// Internal function for constant-time selection: d <- a if ctl == 1,
// d <- b if ctl == 0. ctl MUST be 0 or 1.
func gf_select(d, a, b *[2]uint64, ctl uint64) {
	ma := -ctl
	mb := ^ma
	d[0] = (a[0] & ma) | (b[0] & mb)
	d[1] = (a[1] & ma) | (b[1] & mb)
}

// Conditional negation: d <- -a if ctl == 1, d <- a if ctl == 0.
func gf_condneg(d, a *[2]uint64, mq uint64, ctl uint64) {
	var t [2]uint64
	gf_neg(&t, a, mq)
	gf_select(d, &t, a, ctl)
}

// Internal function for multiplication.
func gf_mul(d, a, b *[2]uint64, mq uint64) {
	var t [4]uint64
	var hi, lo, cc uint64

	// Step 1: plain 128x128 -> 256-bit product into t[].
	t[1], t[0] = bits.Mul64(a[0], b[0])
	t[3], t[2] = bits.Mul64(a[1], b[1])
	hi, lo = bits.Mul64(a[0], b[1])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	t[3] += cc
	hi, lo = bits.Mul64(a[1], b[0])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	t[3] += cc

	// Step 2: fold upper half (t[2], t[3]) into lower half, multiplied
	// by 2*mq. Each high word is multiplied by 2*mq, yielding a low half
	// (64 bits, added to t[0]/t[1]) and a high half (h0, h1, each < 2*mq).
	var h0, h1 uint64
	h0, lo = bits.Mul64(t[2], mq<<1)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[3], mq<<1)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h1 += cc

	// h1 is folded again; bit 127 is included in h1 so this triggers
	// no further carry. (2*h1+1)*mq <= 2*mq^2 is tiny, so plain * works.
	h1 = (h1 << 1) | (t[1] >> 63)
	t[1] &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t[0], h1*mq, 0)
	d[1], _ = bits.Add64(t[1], h0, cc)
}

// Internal function for squaring.
func gf_sqr(d, a *[2]uint64, mq uint64) {
	var cc uint64

	// Cross term a0*a1, doubled.
	hi, lo := bits.Mul64(a[0], a[1])
	t1 := lo << 1
	t2 := (hi << 1) | (lo >> 63)

	// Add in the squares a0^2 and a1^2.
	hi0, lo0 := bits.Mul64(a[0], a[0])
	hi1, lo1 := bits.Mul64(a[1], a[1])
	t0 := lo0
	t1, cc = bits.Add64(t1, hi0, 0)
	t2, cc = bits.Add64(t2, lo1, cc)
	t3, _ := bits.Add64(hi1, hi>>63, cc)

	// Reduce, same as gf_mul.
	var h0, h1 uint64
	h0, lo = bits.Mul64(t2, mq<<1)
	t0, cc = bits.Add64(t0, lo, 0)
	h1, lo = bits.Mul64(t3, mq<<1)
	t1, cc = bits.Add64(t1, lo, cc)
	h1 += cc

	h1 = (h1 << 1) | (t1 >> 63)
	t1 &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t0, h1*mq, 0)
	d[1], _ = bits.Add64(t1, h0, cc)
}

// Internal function computing d = a^(2^n) for any n >= 0. Constant-time
// with regard to a and d, but not to n.
func gf_sqr_x(d, a *[2]uint64, n uint, mq uint64) {
	if n == 0 {
		copy(d[:], a[:])
		return
	}
	gf_sqr(d, a, mq)
	for n -= 1; n != 0; n-- {
		gf_sqr(d, d, mq)
	}
}

// Internal function for halving (division by 2).
func gf_half(d, a *[2]uint64, mq uint64) {
	// Right shift, and add (p+1)/2 = 2^126 - ((mq-1)/2) conditionally on
	// the least significant bit of the source.
	var e uint64 = -(a[0] & 1)
	var bb uint64
	d[0], bb = bits.Sub64((a[0]>>1)|(a[1]<<63), e&((mq-1)>>1), 0)
	d[1] = (a[1] >> 1) + (e & (uint64(1) << 62)) - bb
}

// Internal function for left-shifting by some bits (1 <= n <= 15).
func gf_lsh(d, a *[2]uint64, n uint, mq uint64) {
	var g uint64 = a[0] >> (64 - n)
	d[0] = a[0] << n
	d[1] = (a[1] << n) | g
	g = a[1] >> (64 - n)

	g = (g << 1) | (d[1] >> 63)
	var cc uint64
	d[0], cc = bits.Add64(d[0], g*mq, 0)
	d[1] = (d[1] & 0x7FFFFFFFFFFFFFFF) + cc
}

// Internal function for normalization into the 0..p-1 range.
func gf_norm(d, a *[2]uint64, mq uint64) {
	// Fold the top bit to ensure a value of at most 2^127 + mq - 1.
	var cc uint64
	d[0], cc = bits.Add64(a[0], mq&-(a[1]>>63), 0)
	d[1] = (a[1] & 0x7FFFFFFFFFFFFFFF) + cc

	// Subtract p.
	d[0], cc = bits.Sub64(d[0], -mq, 0)
	d[1], cc = bits.Sub64(d[1], 0x7FFFFFFFFFFFFFFF, cc)

	// If there is a borrow, add p back.
	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	d[1], _ = bits.Add64(d[1], e>>1, cc)
}

// Internal function testing whether a value is zero modulo p.
func gf_iszero(a *[2]uint64, mq uint64) uint64 {
	// Three possible representations of zero: 0, p, 2p.
	t0 := a[0] | a[1]
	t1 := (a[0] + mq) | (a[1] ^ 0x7FFFFFFFFFFFFFFF)
	t2 := (a[0] + (mq << 1)) | ^a[1]
	return 1 - (((t0 | -t0) & (t1 | -t1) & (t2 | -t2)) >> 63)
}

// Internal function testing whether two values are equal modulo p.
func gf_eq(a, b *[2]uint64, mq uint64) uint64 {
	var t [2]uint64
	gf_sub(&t, a, b, mq)
	return gf_iszero(&t, mq)
}

// Internal function for encoding a field element into 16 bytes, appended
// to the given slice. Returns the (possibly reallocated) slice.
func gf_encode(b []byte, a *[2]uint64, mq uint64) []byte {
	len1 := len(b)
	len2 := len1 + 16
	var b2 []byte
	if cap(b) >= len2 {
		b2 = b[:len2]
	} else {
		b2 = make([]byte, len2)
		copy(b2, b)
	}
	dst := b2[len1:]
	var t [2]uint64
	gf_norm(&t, a, mq)
	binary.LittleEndian.PutUint64(dst[0:], t[0])
	binary.LittleEndian.PutUint64(dst[8:], t[1])
	return b2
}

// Internal function for decoding a field element from 16 bytes. If the
// source is out of the 0..p-1 range, destination is set to zero and 0 is
// returned; otherwise 1 is returned.
func gf_decode(d *[2]uint64, src []byte, mq uint64) uint64 {
	d[0] = binary.LittleEndian.Uint64(src[0:])
	d[1] = binary.LittleEndian.Uint64(src[8:])
	_, cc := bits.Sub64(d[0], -mq, 0)
	_, cc = bits.Sub64(d[1], 0x7FFFFFFFFFFFFFFF, cc)
	d[0] &= -cc
	d[1] &= -cc
	return cc
}

// Internal function for decoding a field element from an arbitrary number
// of bytes, with reduction (little-endian convention). Cannot fail.
func gf_decodeReduce(d *[2]uint64, src []byte, mq uint64) {
	var t [4]uint64

	n := len(src)
	j := n & 15
	if j == 0 && n != 0 {
		j = 16
	}
	n -= j
	var buf [16]byte
	copy(buf[:], src[n:])
	t[0] = binary.LittleEndian.Uint64(buf[0:])
	t[1] = binary.LittleEndian.Uint64(buf[8:])

	for n > 0 {
		n -= 16
		t[2] = t[0]
		t[3] = t[1]
		t[0] = binary.LittleEndian.Uint64(src[n:])
		t[1] = binary.LittleEndian.Uint64(src[n+8:])

		var h0, h1 uint64
		var lo, cc uint64
		h0, lo = bits.Mul64(t[2], mq<<1)
		t[0], cc = bits.Add64(t[0], lo, 0)
		h1, lo = bits.Mul64(t[3], mq<<1)
		t[1], cc = bits.Add64(t[1], lo, cc)
		h1 += cc

		h1 = (h1 << 1) | (t[1] >> 63)
		t[1] &= 0x7FFFFFFFFFFFFFFF
		t[0], cc = bits.Add64(t[0], h1*mq, 0)
		t[1], _ = bits.Add64(t[1], h0, cc)
	}

	copy(d[:], t[:2])
}
