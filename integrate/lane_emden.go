package integrate

import (
	"math"
)

// LaneEmden integrates the Lane-Emden equation of index n outward from the
// center with step dr, writing radii to xi and normalized densities
// theta^n to rho. It works with v = xi theta, which satisfies
// d2v/dxi2 = -xi (v/xi)^n, and stops at the first sample where v reaches zero.
// That sample is written with zero density.
func LaneEmden(n, dr float64, xi, rho []float64) Result {
	if len(xi) != len(rho) {
		panic("Length of xi and rho are not the same.")
	} else if len(xi) < 2 {
		panic("LaneEmden needs room for at least two samples.")
	}

	xi[0], rho[0] = 0, 1
	vPrev, v := 0.0, dr*(1-dr*dr/6)
	for i := 1; i < len(xi); i++ {
		x := float64(i) * dr
		xi[i] = x
		if v <= 0 {
			rho[i] = 0
			return Result{Npts: i + 1, Status: Completed}
		}

		rho[i] = math.Pow(v/x, n)
		vPrev, v = v, 2*v-vPrev-dr*dr*x*rho[i]
	}

	return Result{Npts: len(xi), Status: Overrun}
}
