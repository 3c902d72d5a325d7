package kummer

import "github.com/lix2ng/qdsv/internal/field"

// Ladder250 computes xp <- n*xq and xq <- (n+1)*xq via a 251-step
// Montgomery-style differential ladder over the Kummer surface, using xd
// (the wrapped difference xq - 0, i.e. xq itself in wrapped form) as the
// fixed difference point of every xDBLADD step. n holds the scalar as 32
// little-endian bytes; only its low 251 bits are consumed. Grounded on
// ladder_250.
func Ladder250(xp, xq *Point, xd *Point, n *[32]byte) {
	*xp = Point{}
	xp.X = field.Elt{uint64(mu1), 0}
	xp.Y = field.Elt{uint64(mu2), 0}
	xp.Z = field.Elt{uint64(mu3), 0}
	xp.T = field.Elt{uint64(mu4), 0}

	var prevbit, bit uint64
	for i := 250; i >= 0; i-- {
		bit = uint64((n[i>>3] >> (uint(i) & 7)) & 1)
		swap := bit ^ prevbit
		prevbit = bit

		xq.X.Neg(&xq.X)
		swapPoints(xp, xq, swap)
		xDBLADD(xp, xq, xd)
	}

	xp.X.Neg(&xp.X)
	swapPoints(xp, xq, bit)
}

// wrappedBasePoint is the module's fixed base point, given directly in its
// wrapped (X/Y,X/Z,X/T) representation (its X coordinate is implicitly
// zero, as for every wrapped point). Constants transcribed verbatim from
// the reference implementation.
var wrappedBasePoint = Point{
	Y: field.Elt{0xaeb351a64e931a48, 0x1be0c3dc2049c2e7},
	Z: field.Elt{0x64659818e07e36df, 0x23b416cd8eaba630},
	T: field.Elt{0xc7ae3d057215441e, 0x5db35c384447a24d},
}

// LadderBase250 computes n*basePoint, where basePoint is the module's
// fixed generator. Grounded on ladder_base_250.
func LadderBase250(xp *Point, n *[32]byte) {
	var xq Point
	Unwrap(&xq, &wrappedBasePoint)
	Ladder250(xp, &xq, &wrappedBasePoint, n)
}
