package integrate

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/eos"
	"github.com/phil-mansfield/rhoprof/profile"
)

// Hydrostatic integrates d/dr(r^2 c/rho drho/dr) = -4 pi G r^2 rho outward
// from central density rhoc with step dr, where c = dP/drho comes from e.
// It writes radii to r and densities to rho and stops at the first sample
// where the density reaches zero. That sample is written with zero density.
//
// The stepper keeps one step of EOS history, since the correction term uses
// the difference of g = r^2 c/rho between neighboring samples.
func Hydrostatic(
	e eos.EOS, rhoc, dr, G float64, r, rho []float64,
) (Result, error) {
	if len(r) != len(rho) {
		panic("Length of r and rho are not the same.")
	} else if len(r) < 2 {
		panic("Hydrostatic needs room for at least two samples.")
	}

	cPrev, err := soundSpeed2(e, rhoc)
	if err != nil {
		return Result{}, err
	}

	r[0], rho[0] = 0, rhoc
	next := rhoc - 2*math.Pi/3*G*rhoc*rhoc*dr*dr/cPrev
	gPrev := 0.0
	for i := 1; i < len(r); i++ {
		r[i] = float64(i) * dr
		if next <= 0 {
			rho[i] = 0
			return Result{Npts: i + 1, Status: Completed}, nil
		} else if math.IsInf(next, 0) || math.IsNaN(next) {
			return Result{}, errorsmod.Wrapf(profile.ErrBadParameter,
				"density became %g at r = %g", next, r[i])
		}
		rho[i] = next

		c, err := soundSpeed2(e, rho[i])
		if err != nil {
			return Result{}, err
		}
		g := r[i] * r[i] * c / rho[i]

		next = 2*rho[i] - rho[i-1] - dr*dr*4*math.Pi*G*rho[i]*rho[i]/c -
			(rho[i]-rho[i-1])*(g-gPrev)/g
		gPrev = g
	}

	return Result{Npts: len(r), Status: Overrun}, nil
}

func soundSpeed2(e eos.EOS, rho float64) (float64, error) {
	c := e.DPDRho(rho)
	if !(c > 0) || math.IsInf(c, 0) {
		return 0, errorsmod.Wrapf(profile.ErrBadParameter,
			"EOS gives dP/drho = %g at rho = %g", c, rho)
	}
	return c, nil
}
