package kummer

import (
	"math/big"
	"testing"

	"github.com/lix2ng/qdsv/internal/field"
)

// End-to-end exercise of Check() against genuine signature relations lives
// in the qdsv package's tests, alongside Sign/Verify; these tests cover
// the algebraic building blocks in isolation.

func TestDotMatchesDefinition(t *testing.T) {
	var rng prng
	rng.init("test dot")
	p := fieldModulus()
	for i := 0; i < 1000; i++ {
		x0, x1, x2, x3 := rng.elt(), rng.elt(), rng.elt(), rng.elt()
		y0, y1, y2, y3 := rng.elt(), rng.elt(), rng.elt(), rng.elt()

		got := dot(&x0, &x1, &x2, &x3, &y0, &y1, &y2, &y3)
		got.Freeze(&got)

		var want big.Int
		terms := [][2]*field.Elt{{&x0, &y0}, {&x1, &y1}, {&x2, &y2}, {&x3, &y3}}
		for _, term := range terms {
			var xf, yf field.Elt
			xf.Freeze(term[0])
			yf.Freeze(term[1])
			t := new(big.Int).Mul(eltToBig(&xf, p), eltToBig(&yf, p))
			want.Add(&want, t)
		}
		want.Mod(&want, p)

		if eltToBig(&got, p).Cmp(&want) != 0 {
			t.Fatalf("ERR dot mismatch at iteration %d", i)
		}
	}
}

func TestDotConstMatchesDefinition(t *testing.T) {
	var rng prng
	rng.init("test dotconst")
	p := fieldModulus()
	for i := 0; i < 1000; i++ {
		x0, x1, x2, x3 := rng.elt(), rng.elt(), rng.elt(), rng.elt()

		got := dotConst(&x0, &x1, &x2, &x3)
		got.Freeze(&got)

		var f0, f1, f2, f3 field.Elt
		f0.Freeze(&x0)
		f1.Freeze(&x1)
		f2.Freeze(&x2)
		f3.Freeze(&x3)

		var want big.Int
		want.Mul(eltToBig(&f0, p), big.NewInt(int64(dk1)))
		var term big.Int
		term.Mul(eltToBig(&f1, p), big.NewInt(int64(dk2)))
		want.Sub(&want, &term)
		term.Mul(eltToBig(&f2, p), big.NewInt(int64(dk3)))
		want.Sub(&want, &term)
		term.Mul(eltToBig(&f3, p), big.NewInt(int64(dk4)))
		want.Add(&want, &term)
		want.Mod(&want, p)

		if eltToBig(&got, p).Cmp(&want) != 0 {
			t.Fatalf("ERR dotConst mismatch at iteration %d", i)
		}
	}
}

func TestSumConstMatchesDefinition(t *testing.T) {
	p := fieldModulus()
	consts := []uint16{muhat[0], muhat[1], muhat[2], muhat[3], dk1, dk2, dk3, dk4}
	for _, a := range consts {
		for _, b := range consts {
			for _, c := range consts {
				for _, d := range consts {
					got := sumConst(a, b, c, d)
					got.Freeze(&got)

					var want big.Int
					want.SetInt64(int64(a) * int64(b))
					want.Add(&want, big.NewInt(int64(c)*int64(d)))
					want.Mod(&want, p)

					if eltToBig(&got, p).Cmp(&want) != 0 {
						t.Fatalf("ERR sumConst(%d,%d,%d,%d) mismatch", a, b, c, d)
					}
				}
			}
		}
	}
}

func TestQuadZeroWhenBothRootsZero(t *testing.T) {
	var rng prng
	rng.init("test quad zero roots")
	zero := field.Zero
	for i := 0; i < 200; i++ {
		bij, bjj, bii := rng.elt(), rng.elt(), rng.elt()
		if quad(&bij, &bjj, &bii, &zero, &zero) != 0 {
			t.Fatalf("ERR quad rejected R1=R2=0 at iteration %d", i)
		}
	}
}

func TestQuadDetectsNonzeroResidual(t *testing.T) {
	// Bjj=1, Bij=0, Bii=0, R1=1, R2=0 evaluates the quadratic form to
	// exactly 1, a known nonzero residual, so quad must flag it as bad.
	one := field.One
	zero := field.Zero
	if quad(&zero, &one, &zero, &one, &zero) == 0 {
		t.Fatalf("ERR quad accepted a nonzero residual")
	}
}

func TestQuadAcceptsAllZeroCoefficients(t *testing.T) {
	// Bij=0, Bjj=Bii=0 makes the form vanish identically, so quad must
	// accept it for any (random) roots R1, R2.
	var rng prng
	rng.init("test quad accept")
	zero := field.Zero
	for i := 0; i < 200; i++ {
		r1, r2 := rng.elt(), rng.elt()
		if quad(&zero, &zero, &zero, &r1, &r2) != 0 {
			t.Fatalf("ERR quad rejected the all-zero biquadratic coefficients at iteration %d", i)
		}
	}
}
