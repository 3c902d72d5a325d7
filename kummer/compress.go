package kummer

import (
	"encoding/binary"
	"errors"

	"github.com/lix2ng/qdsv/internal/field"
)

// ErrInvalidEncoding is returned by Decompress when its input does not
// encode a valid point on the Kummer surface.
var ErrInvalidEncoding = errors.New("kummer: invalid point encoding")

// Constants used by the K2/K3/K4 recovery polynomials.
const (
	q0 uint16 = 0xDF7
	q1 uint16 = 0x2599
	q2 uint16 = 0x1211
	q3 uint16 = 0x2FE3
	q4 uint16 = 0x2C0B
	q5 uint16 = 0x1D33
	q6 uint16 = 0x1779
	q7 uint16 = 0xABD7
)

// setConst sets r to the small constant c (not multiplied, assigned).
func setConst(r *field.Elt, c uint16) {
	*r = field.Elt{uint64(c), 0}
}

// getK2 computes K_2(l1, l2, tau) into r, using t as scratch.
func getK2(r, t *field.Elt, l1, l2 *field.Elt, tau uint64) {
	r.MulSmall(l1, q2)
	r.Mul(l2, r)
	if tau != 0 {
		t.MulSmall(l1, q0)
		r.Add(r, t)
		t.MulSmall(l2, q1)
		r.Sub(r, t)
	}
	r.MulSmall(r, q3)
	r.Add(r, r)
	t.MulSmall(l1, q5)
	t.Sqr(t)
	r.Sub(t, r)
	t.MulSmall(l2, q3)
	t.Sqr(t)
	r.Add(t, r)
	if tau != 0 {
		setConst(t, q4)
		t.Sqr(t)
		r.Add(t, r)
	}
}

// getK3 computes K_3(l1, l2, tau) into r, using t0, t1 as scratch.
func getK3(r, t0, t1 *field.Elt, l1, l2 *field.Elt, tau uint64) {
	r.Sqr(l1)
	t0.Sqr(l2)

	if tau != 0 {
		setConst(t1, 1)
		r.Add(r, t1)
		t0.Add(t0, t1)
		t1.Add(r, t0)
	}
	r.Mul(r, l2)
	r.MulSmall(r, q0)
	t0.Mul(t0, l1)
	t0.MulSmall(t0, q1)
	r.Sub(r, t0)
	if tau != 0 {
		setConst(t0, 1)
		t1.Sub(t1, t0)
		t1.Sub(t1, t0)
		t1.MulSmall(t1, q2)
		r.Add(r, t1)
	}
	r.MulSmall(r, q3)
	if tau != 0 {
		t0.Mul(l1, l2)
		t0.MulSmall(t0, q6)
		t0.MulSmall(t0, q7)
		r.Sub(r, t0)
	}
}

// getK4 computes K_4(l1, l2, tau) into r, using t as scratch.
func getK4(r, t *field.Elt, l1, l2 *field.Elt, tau uint64) {
	if tau != 0 {
		t.MulSmall(l2, q0)
		r.MulSmall(l1, q1)
		t.Sub(t, r)
		setConst(r, q2)
		t.Add(t, r)
		t.Mul(t, l1)
		t.Mul(t, l2)
		t.MulSmall(t, q3)
		t.Add(t, t)
		r.MulSmall(l1, q3)
		r.Sqr(r)
		t.Sub(r, t)
		r.MulSmall(l2, q5)
		r.Sqr(r)
		t.Add(r, t)
	}
	r.MulSmall(l1, q4)
	r.Mul(r, l2)
	r.Sqr(r)
	if tau != 0 {
		r.Add(r, t)
	}
}

// Compressed is the 32-byte wire encoding of a Kummer point: two field
// elements, each carrying one extra sign bit (tau, sigma) in its top bit.
type Compressed [32]byte

// Compress encodes src into its 32-byte wire representation.
func Compress(dst *Compressed, src *Point) {
	var t Point
	tMatrix(&t, src)

	tau := uint64(1) - t.Z.IsZero()
	var l1, l2 field.Elt
	if tau != 0 {
		l2.Invert(&t.Z)
	} else if t.Y.IsZero() == 0 {
		l2.Invert(&t.Y)
	} else if t.X.IsZero() == 0 {
		l2.Invert(&t.X)
	} else {
		l2.Invert(&t.T)
	}

	t.T.Mul(&t.T, &l2)
	l1.Mul(&t.X, &l2)
	l2.Mul(&t.Y, &l2)

	var k2, k3, s0, s1 field.Elt
	getK2(&k2, &s0, &l1, &l2, tau)
	k2.Mul(&k2, &t.T)
	getK3(&k3, &s0, &s1, &l1, &l2, tau)
	k2.Sub(&k2, &k3)

	l1.Freeze(&l1)
	l2.Freeze(&l2)
	k2.Freeze(&k2)

	enc1 := l1.Encode(nil)
	enc2 := l2.Encode(nil)
	enc1[15] |= uint8(tau&1) << 7
	enc2[15] |= uint8(k2[0]&1) << 7

	copy(dst[0:16], enc1)
	copy(dst[16:32], enc2)
}

// Decompress decodes src into the unique Kummer point it represents,
// returning an error if src is not a valid encoding.
func Decompress(dst *Point, src *Compressed) error {
	// The top bit of each half is a sign tag, not part of the field
	// value; strip it before interpreting the remaining 127 bits as an
	// (unreduced) field element, rather than using Decode's strict
	// canonical-range check.
	var l1, l2 field.Elt
	l1[0] = binary.LittleEndian.Uint64(src[0:8])
	l1[1] = binary.LittleEndian.Uint64(src[8:16])
	l2[0] = binary.LittleEndian.Uint64(src[16:24])
	l2[1] = binary.LittleEndian.Uint64(src[24:32])

	tau := (l1[1] >> 63) & 1
	sigma := (l2[1] >> 63) & 1
	l1[1] &^= uint64(1) << 63
	l2[1] &^= uint64(1) << 63

	var t Point
	var k2, k3, k4, s0, s1 field.Elt
	getK2(&k2, &s0, &l1, &l2, tau)
	getK3(&k3, &s0, &s1, &l1, &l2, tau)
	getK4(&k4, &s0, &l1, &l2, tau)

	if k2.IsZero() != 0 {
		k3.Freeze(&k3)
		if k3.IsZero() != 0 {
			if l1.IsZero() == 0 || l2.IsZero() == 0 || tau != 0 || sigma != 0 {
				return ErrInvalidEncoding
			}
			t = Point{}
			t.T = field.One
		} else if sigma^(k3[0]&1) != 0 {
			t.X.Mul(&k3, &l1)
			t.X.Add(&t.X, &t.X)
			t.Y.Mul(&k3, &l2)
			t.Y.Add(&t.Y, &t.Y)
			if tau != 0 {
				t.Z.Add(&k3, &k3)
			} else {
				t.Z = field.Zero
			}
			t.T = k4
		} else {
			return ErrInvalidEncoding
		}
	} else {
		var delta, root field.Elt
		delta.Sqr(&k3)
		root.Mul(&k2, &k4)
		delta.Sub(&delta, &root)
		if root.HasSqrt(&delta, sigma) != 0 {
			return ErrInvalidEncoding
		}
		t.T.Add(&k3, &root)
		if tau != 0 {
			t.Z = k2
		} else {
			t.Z = field.Zero
		}
		t.X.Mul(&k2, &l1)
		t.Y.Mul(&k2, &l2)
	}

	tInvMatrix(dst, &t)
	return nil
}
