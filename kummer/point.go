// Package kummer implements differential-addition arithmetic on the
// genus-2 Gaudry-Schost Kummer surface used by the signature scheme: point
// representation, the combined doubling/addition ladder step, wrap/unwrap
// between the uncompressed and wrapped coordinate systems, and point
// compression/decompression to and from the 32-byte wire form.
package kummer

import "github.com/lix2ng/qdsv/internal/field"

// Point holds the four projective coordinates (X:Y:Z:T) of a point on the
// Kummer surface. The same layout is reused for a "wrapped" point, in
// which (Y,Z,T) hold the ratios (X/Y,X/Z,X/T) of some other point and the
// X field is always zero and unused; Wrap and Unwrap convert between the
// two representations.
type Point struct {
	X, Y, Z, T field.Elt
}

// ehat are the curve constants used inside xDBLADD's inner Hadamard step.
var ehat = [4]uint16{0x341, 0x9C3, 0x651, 0x231}

// muhat are the curve constants used by the verification layer's
// biquadratic forms.
var muhat = [4]uint16{0x0021, 0x000B, 0x0011, 0x0031}

// mul4 sets dst <- dst .* src, coordinatewise (in place on dst).
func mul4(dst *Point, src *Point) {
	dst.X.Mul(&dst.X, &src.X)
	dst.Y.Mul(&dst.Y, &src.Y)
	dst.Z.Mul(&dst.Z, &src.Z)
	dst.T.Mul(&dst.T, &src.T)
}

// sqr4 sets dst <- src .* src, coordinatewise.
func sqr4(dst *Point, src *Point) {
	dst.X.Sqr(&src.X)
	dst.Y.Sqr(&src.Y)
	dst.Z.Sqr(&src.Z)
	dst.T.Sqr(&src.T)
}

// mulConst4 sets dst <- dst .* cons, coordinatewise, where cons holds four
// 16-bit constants.
func mulConst4(dst *Point, cons *[4]uint16) {
	dst.X.MulSmall(&dst.X, cons[0])
	dst.Y.MulSmall(&dst.Y, cons[1])
	dst.Z.MulSmall(&dst.Z, cons[2])
	dst.T.MulSmall(&dst.T, cons[3])
}

// econs are the curve constants applied to xp at the end of xDBLADD.
var econs = [4]uint16{0x72, 0x39, 0x42, 0x1A2}

// xDBLADD performs a simultaneous doubling of xp and differential addition
// of xp and xq, with respect to the wrapped difference point xd. The
// ladder step negates xq.X immediately before calling xDBLADD (and
// undoes a standing negation of xp.X once, after the loop) to realize
// the sign convention the underlying Hadamard identities require; both
// Hadamard steps inside this function use the signed transform field.H
// (negate the first coordinate, transform, negate the fourth).
//
// On exit: xp <- 2*xp, xq <- xp_in + xq_in.
func xDBLADD(xp, xq *Point, xd *Point) {
	field.H(&xq.X, &xq.Y, &xq.Z, &xq.T)
	field.H(&xp.X, &xp.Y, &xp.Z, &xp.T)
	mul4(xq, xp)
	sqr4(xp, xp)
	mulConst4(xq, &ehat)
	mulConst4(xp, &ehat)
	field.H(&xq.X, &xq.Y, &xq.Z, &xq.T)
	field.H(&xp.X, &xp.Y, &xp.Z, &xp.T)
	sqr4(xq, xq)
	sqr4(xp, xp)
	xq.Y.Mul(&xq.Y, &xd.Y)
	xq.Z.Mul(&xq.Z, &xd.Z)
	xq.T.Mul(&xq.T, &xd.T)
	mulConst4(xp, &econs)
}

// Unwrap recovers the uncompressed representation of a wrapped point.
func Unwrap(dst *Point, src *Point) {
	dst.T.Mul(&src.Y, &src.Z)
	dst.Z.Mul(&src.Y, &src.T)
	dst.Y.Mul(&src.Z, &src.T)
	dst.X.Mul(&dst.T, &src.T)
}

// Wrap computes the wrapped representation (X/Y,X/Z,X/T) of an
// uncompressed point, using a single field inversion.
func Wrap(dst *Point, src *Point) {
	var w0, w1, w2, w3 field.Elt
	w0.Mul(&src.Y, &src.Z)
	w1.Mul(&w0, &src.T)
	w2.Invert(&w1)
	w2.Mul(&w2, &src.X)
	w3.Mul(&w2, &src.T)
	dst.Y.Mul(&w3, &src.Z)
	dst.Z.Mul(&w3, &src.Y)
	dst.T.Mul(&w0, &w2)
}
