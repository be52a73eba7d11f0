package profile

import (
	"math"

	errorsmod "cosmossdk.io/errors"
)

func checkClosed(name string, ng int, M, R float64) error {
	if ng <= 0 || M <= 0 || R <= 0 {
		return errorsmod.Wrapf(ErrBadParameter, "%s profile needs positive "+
			"ng, M and R, got ng = %d, M = %g, R = %g", name, ng, M, R)
	}
	return nil
}

// Uniform returns a uniform density sphere of mass M and radius R sampled at
// r[i] = (i+1) R/ng. Mass holds the exact enclosed mass.
func Uniform(ng int, M, R float64) (*Profile, error) {
	if err := checkClosed("Uniform", ng, M, R); err != nil {
		return New(0), err
	}

	p := New(ng)
	p.Reserve(ng)
	p.Mass = make([]float64, ng)

	dr := R / float64(ng)
	rho := 3 * M / (4 * math.Pi * R * R * R)
	for i := 0; i < ng; i++ {
		p.R[i] = float64(i+1) * dr
		p.Rho[i] = rho
		x := p.R[i] / R
		p.Mass[i] = M * x * x * x
	}

	return p, nil
}

// Evrard returns the Evrard collapse profile, rho = M / (2 pi R^2 r), of
// mass M and radius R sampled at r[i] = (i+1) R/ng. Mass holds the exact
// enclosed mass.
func Evrard(ng int, M, R float64) (*Profile, error) {
	if err := checkClosed("Evrard", ng, M, R); err != nil {
		return New(0), err
	}

	p := New(ng)
	p.Reserve(ng)
	p.Mass = make([]float64, ng)

	dr := R / float64(ng)
	for i := 0; i < ng; i++ {
		p.R[i] = float64(i+1) * dr
		p.Rho[i] = M / (2 * math.Pi * R * R * p.R[i])
		x := p.R[i] / R
		p.Mass[i] = M * x * x
	}

	return p, nil
}
