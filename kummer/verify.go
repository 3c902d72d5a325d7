package kummer

import "github.com/lix2ng/qdsv/internal/field"

// dotConst's fixed coefficients.
const (
	dk1 uint16 = 0x1259
	dk2 uint16 = 0x173F
	dk3 uint16 = 0x1679
	dk4 uint16 = 0x07C7
)

// quadC is the fixed curve constant used by quad, transcribed from its
// 16-byte little-endian representation.
var quadC = field.Elt{0x46f7e3d8cddda843, 0x40f50eefa320a2dd}

// dot computes the dot product x0*y0 + x1*y1 + x2*y2 + x3*y3.
func dot(x0, x1, x2, x3, y0, y1, y2, y3 *field.Elt) field.Elt {
	var r, t field.Elt
	r.Mul(x0, y0)
	t.Mul(x1, y1)
	r.Add(&r, &t)
	t.Mul(x2, y2)
	r.Add(&r, &t)
	t.Mul(x3, y3)
	r.Add(&r, &t)
	return r
}

// dotConst computes x0*dk1 - x1*dk2 - x2*dk3 + x3*dk4.
func dotConst(x0, x1, x2, x3 *field.Elt) field.Elt {
	var r, t field.Elt
	r.MulSmall(x0, dk1)
	t.MulSmall(x1, dk2)
	r.Sub(&r, &t)
	t.MulSmall(x2, dk3)
	r.Sub(&r, &t)
	t.MulSmall(x3, dk4)
	r.Add(&r, &t)
	return r
}

// sumConst computes a*b + c*d, treating a, b, c, d as small constants
// rather than field-encoded values. Grounded on fe1271_sum.
func sumConst(a, b, c, d uint16) field.Elt {
	var r, t field.Elt
	setConst(&t, a)
	t.MulSmall(&t, b)
	setConst(&r, c)
	r.MulSmall(&r, d)
	r.Add(&r, &t)
	return r
}

// biiValues computes the four diagonal biquadratic forms (B11, B22, B33,
// B44) of sP and hQ, returned as a Point whose X/Y/Z/T coordinates hold
// B11/B22/B33/B44 respectively.
func biiValues(sP, hQ *Point) Point {
	var t0, r Point
	sqr4(&t0, sP)
	sqr4(&r, hQ)
	mulConst4(&t0, &ehat)
	mulConst4(&r, &ehat)
	t0.X.Neg(&t0.X)
	r.X.Neg(&r.X)

	var t1 Point
	t1.X = dot(&t0.X, &t0.Y, &t0.Z, &t0.T, &r.X, &r.Y, &r.Z, &r.T)
	t1.Y = dot(&t0.X, &t0.Y, &t0.Z, &t0.T, &r.Y, &r.X, &r.T, &r.Z)
	t1.Z = dot(&t0.X, &t0.Z, &t0.Y, &t0.T, &r.Z, &r.X, &r.T, &r.Y)
	t1.T = dot(&t0.X, &t0.T, &t0.Y, &t0.Z, &r.T, &r.X, &r.Z, &r.Y)

	r.X = dotConst(&t1.X, &t1.Y, &t1.Z, &t1.T)
	r.Y = dotConst(&t1.Y, &t1.X, &t1.T, &t1.Z)
	r.Z = dotConst(&t1.Z, &t1.T, &t1.X, &t1.Y)
	r.T = dotConst(&t1.T, &t1.Z, &t1.Y, &t1.X)
	mulConst4(&r, &muhat)
	r.X.Neg(&r.X)
	return r
}

// bijValue computes the off-diagonal biquadratic form B_ij, where
// (P1..P4) and (Q1..Q4) are a coordinate permutation of P and Q matched
// to the curve-constant permutation (c1..c4).
func bijValue(P1, P2, P3, P4, Q1, Q2, Q3, Q4 *field.Elt, c1, c2, c3, c4 uint16) field.Elt {
	var r, tx, ty, tz field.Elt
	r.Mul(P1, P2)
	tx.Mul(Q1, Q2)
	ty.Mul(P3, P4)
	r.Sub(&r, &ty)
	tz.Mul(Q3, Q4)
	tx.Sub(&tx, &tz)
	r.Mul(&r, &tx)
	tx.Mul(&ty, &tz)
	r.MulSmall(&r, c3)
	r.MulSmall(&r, c4)
	ty = sumConst(c3, c4, c1, c2)
	tx.Mul(&tx, &ty)
	r.Sub(&tx, &r)
	r.MulSmall(&r, c1)
	r.MulSmall(&r, c2)
	ty = sumConst(c2, c4, c1, c3)
	r.Mul(&r, &ty)
	ty = sumConst(c2, c3, c1, c4)
	r.Mul(&r, &ty)
	return r
}

// quad reports whether Bjj*R1^2 - 2*quadC*Bij*R1*R2 + Bii*R2^2 == 0,
// returning 0 if the equality holds and 1 otherwise (so the caller can
// accumulate failures with bitwise OR, as check does).
func quad(Bij, Bjj, Bii, R1, R2 *field.Elt) uint64 {
	var tx, ty field.Elt
	tx.Sqr(R1)
	tx.Mul(Bjj, &tx)
	ty.Mul(R1, R2)
	ty.Mul(Bij, &ty)
	ty.Mul(&quadC, &ty)
	ty.Add(&ty, &ty)
	tx.Sub(&tx, &ty)
	ty.Sqr(R2)
	ty.Mul(Bii, &ty)
	tx.Add(&tx, &ty)
	return 1 - tx.IsZero()
}

// Check verifies that R decompresses to a point equal to ±(sP ± hQ) on
// the Kummer surface, without ever reconstructing R, sP±hQ as an affine
// point. sP and hQ are consumed (all four of their coordinates are
// overwritten by the raw Hadamard transform at the start). Returns nil if
// the relation holds, or ErrInvalidEncoding if xr does not decode to a
// valid point or the relation fails.
func Check(sP, hQ *Point, xr *Compressed) error {
	field.Hdmrd(&sP.X, &sP.Y, &sP.Z, &sP.T, &sP.X, &sP.Y, &sP.Z, &sP.T)
	field.Hdmrd(&hQ.X, &hQ.Y, &hQ.Z, &hQ.T, &hQ.X, &hQ.Y, &hQ.Z, &hQ.T)
	bii := biiValues(sP, hQ)

	var r Point
	if err := Decompress(&r, xr); err != nil {
		return err
	}
	field.Hdmrd(&r.X, &r.Y, &r.Z, &r.T, &r.X, &r.Y, &r.Z, &r.T)

	var bad uint64

	b12 := bijValue(&sP.X, &sP.Y, &sP.Z, &sP.T, &hQ.X, &hQ.Y, &hQ.Z, &hQ.T,
		muhat[0], muhat[1], muhat[2], muhat[3])
	bad |= quad(&b12, &bii.Y, &bii.X, &r.X, &r.Y)

	b13 := bijValue(&sP.X, &sP.Z, &sP.Y, &sP.T, &hQ.X, &hQ.Z, &hQ.Y, &hQ.T,
		muhat[0], muhat[2], muhat[1], muhat[3])
	bad |= quad(&b13, &bii.Z, &bii.X, &r.X, &r.Z)

	b14 := bijValue(&sP.X, &sP.T, &sP.Y, &sP.Z, &hQ.X, &hQ.T, &hQ.Y, &hQ.Z,
		muhat[0], muhat[3], muhat[1], muhat[2])
	bad |= quad(&b14, &bii.T, &bii.X, &r.X, &r.T)

	b23 := bijValue(&sP.Y, &sP.Z, &sP.X, &sP.T, &hQ.Y, &hQ.Z, &hQ.X, &hQ.T,
		muhat[1], muhat[2], muhat[0], muhat[3])
	b23.Neg(&b23)
	bad |= quad(&b23, &bii.Z, &bii.Y, &r.Y, &r.Z)

	b24 := bijValue(&sP.Y, &sP.T, &sP.X, &sP.Z, &hQ.Y, &hQ.T, &hQ.X, &hQ.Z,
		muhat[1], muhat[3], muhat[0], muhat[2])
	b24.Neg(&b24)
	bad |= quad(&b24, &bii.T, &bii.Y, &r.Y, &r.T)

	b34 := bijValue(&sP.Z, &sP.T, &sP.X, &sP.Y, &hQ.Z, &hQ.T, &hQ.X, &hQ.Y,
		muhat[2], muhat[3], muhat[0], muhat[1])
	b34.Neg(&b34)
	bad |= quad(&b34, &bii.T, &bii.Z, &r.Z, &r.T)

	if bad != 0 {
		return ErrInvalidEncoding
	}
	return nil
}
