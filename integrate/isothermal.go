package integrate

import (
	"math"
)

// Isothermal integrates the isothermal Lane-Emden equation over the whole
// buffer with step dxi, writing radii to xi and densities exp(-phi) to rho.
// It works with u = xi phi, which satisfies d2u/dxi2 = xi exp(-u/xi). The
// density never reaches zero, so the result is always Completed.
func Isothermal(dxi float64, xi, rho []float64) Result {
	if len(xi) != len(rho) {
		panic("Length of xi and rho are not the same.")
	} else if len(xi) < 2 {
		panic("Isothermal needs room for at least two samples.")
	}

	xi[0], rho[0] = 0, 1
	uPrev, u := 0.0, dxi*dxi*dxi/6*(1-dxi*dxi/20)
	for i := 1; i < len(xi); i++ {
		x := float64(i) * dxi
		xi[i] = x
		rho[i] = math.Exp(-u / x)
		uPrev, u = u, 2*u-uPrev+dxi*dxi*x*rho[i]
	}

	return Result{Npts: len(xi), Status: Completed}
}
