package kummer

import "github.com/lix2ng/qdsv/internal/field"

// Curve constants for the forward matrix T (used by Compress) and its
// inverse T_inv (used by Decompress).
const (
	khat1 uint16 = 0x3C1
	khat2 uint16 = 0x80
	khat3 uint16 = 0x239
	khat4 uint16 = 0x449

	mu1 uint16 = 0x0B
	mu2 uint16 = 0x16
	mu3 uint16 = 0x13
	mu4 uint16 = 0x03
)

// tRow computes r <- X2*khat2 + X3*khat3 + X4*khat4 - X1*khat1 (one row of
// the T matrix, under the coordinate permutation the caller supplies).
func tRow(r *field.Elt, x1, x2, x3, x4 *field.Elt) {
	var t field.Elt
	r.MulSmall(x2, khat2)
	t.MulSmall(x3, khat3)
	r.Add(r, &t)
	t.MulSmall(x4, khat4)
	r.Add(r, &t)
	t.MulSmall(x1, khat1)
	r.Sub(r, &t)
}

// tMatrix applies the forward basis change T to x, writing the result into
// r (r and x must not alias).
func tMatrix(r, x *Point) {
	tRow(&r.X, &x.T, &x.Z, &x.Y, &x.X)
	tRow(&r.Y, &x.Z, &x.T, &x.X, &x.Y)
	tRow(&r.Z, &x.Y, &x.X, &x.T, &x.Z)
	tRow(&r.T, &x.X, &x.Y, &x.Z, &x.T)
}

// tInvRow computes r <- (2*X2-X1)*mu1 + X3*mu3 + X4*mu4 (one row of the
// T_inv matrix, under the coordinate permutation the caller supplies).
func tInvRow(r *field.Elt, x1, x2, x3, x4 *field.Elt) {
	var t field.Elt
	r.Add(x2, x2)
	r.Sub(r, x1)
	r.MulSmall(r, mu1)
	t.MulSmall(x3, mu3)
	r.Add(r, &t)
	t.MulSmall(x4, mu4)
	r.Add(r, &t)
}

// tInvMatrix applies the inverse basis change T_inv to x, writing the
// result into r (r and x must not alias).
func tInvMatrix(r, x *Point) {
	tInvRow(&r.X, &x.T, &x.Z, &x.Y, &x.X)
	tInvRow(&r.Y, &x.Z, &x.T, &x.X, &x.Y)
	tInvRow(&r.Z, &x.Y, &x.X, &x.T, &x.Z)
	tInvRow(&r.T, &x.X, &x.Y, &x.Z, &x.T)
}
