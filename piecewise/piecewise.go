/*
package piecewise generates stars with an arbitrary equation of state. The
central density is searched for until the hydrostatic profile has the
requested mass.
*/
package piecewise

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/go-kit/log"

	"github.com/phil-mansfield/rhoprof/calibrate"
	"github.com/phil-mansfield/rhoprof/eos"
	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/profile"
)

// DefaultRange is the radius, in code units, that the default step size
// lets a full table span.
const DefaultRange = 30.0

// Result is a generated star.
type Result struct {
	Profile *profile.Profile
	RhoC, R float64
	// StepSize is the radial step of the final integration.
	StepSize   float64
	Iterations int
}

type params struct {
	rhoc, dr, G float64
	calibOpts   []calibrate.Option
	logger      log.Logger
}

type internalOption func(*params)
type Option internalOption

// CentralDensity sets the initial guess for the central density. The
// default is 1.
func CentralDensity(rhoc float64) Option {
	return func(p *params) { p.rhoc = rhoc }
}

// StepSize sets the initial radial step. The default is
// DefaultRange / capacity.
func StepSize(dr float64) Option {
	return func(p *params) { p.dr = dr }
}

// G sets the gravitational constant. The default is 1.
func G(g float64) Option {
	return func(p *params) { p.G = g }
}

// Calibration passes options through to calibrate.CentralDensity.
func Calibration(opts ...calibrate.Option) Option {
	return func(p *params) { p.calibOpts = append(p.calibOpts, opts...) }
}

func Logger(l log.Logger) Option {
	return func(p *params) { p.logger = l }
}

func (p *params) loadOptions(capacity int, opts []Option) {
	p.rhoc, p.G = 1, 1
	if capacity > 0 {
		p.dr = DefaultRange / float64(capacity)
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Logger("module", "piecewise")
	}
}

// Generate builds a star of mass M with the equation of state e in a table
// with room for capacity samples. The returned profile has Mass and Pressure
// filled. The pressure of an EOS which implements eos.Pressurer is
// evaluated directly, and any other pressure is integrated inward from zero
// at the surface. On failure the profile is empty.
func Generate(
	e eos.EOS, M float64, capacity int, opts ...Option,
) (Result, error) {
	p := &params{}
	p.loadOptions(capacity, opts)

	prof := profile.New(capacity)
	switch {
	case e == nil:
		return Result{Profile: prof}, errorsmod.Wrap(profile.ErrBadParameter,
			"no equation of state given")
	case !(M > 0):
		return Result{Profile: prof}, errorsmod.Wrapf(profile.ErrBadParameter,
			"M = %g", M)
	case capacity < 3:
		return Result{Profile: prof}, errorsmod.Wrapf(profile.ErrBadParameter,
			"capacity %d is too small", capacity)
	case !(p.rhoc > 0) || !(p.dr > 0) || !(p.G > 0):
		return Result{Profile: prof}, errorsmod.Wrapf(profile.ErrBadParameter,
			"rhoc = %g, dr = %g, G = %g", p.rhoc, p.dr, p.G)
	}

	prof.Reserve(capacity)
	shoot := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		res, err := integrate.Hydrostatic(e, rhoc, dr, p.G, prof.R, prof.Rho)
		if err != nil {
			return 0, 0, res.Status, err
		}
		mass := profile.TotalMass(prof.R[:res.Npts], prof.Rho[:res.Npts])
		return mass, res.Npts, res.Status, nil
	}

	calibOpts := append([]calibrate.Option{calibrate.Logger(p.logger)},
		p.calibOpts...)
	cal, err := calibrate.CentralDensity(M, p.rhoc, p.dr, shoot, calibOpts...)
	if err != nil {
		prof.Clear()
		return Result{Profile: prof}, err
	}

	// The last integration was the converged one.
	prof.Truncate(cal.Npts)
	prof.EnclosedMass()
	if pr, ok := e.(eos.Pressurer); ok {
		prof.Pressure = make([]float64, prof.Len())
		for i := range prof.Pressure {
			prof.Pressure[i] = pr.Pressure(prof.Rho[i])
		}
	} else {
		prof.Pressure = surfacePressure(e, prof.Rho)
	}

	logging.LogInfo(p.logger, "msg", "converged", "rhoc", cal.CentralDensity,
		"iterations", cal.Iterations, "npts", cal.Npts, "dr", cal.StepSize)

	return Result{
		Profile: prof, RhoC: cal.CentralDensity, R: prof.R[prof.Len()-1],
		StepSize: cal.StepSize, Iterations: cal.Iterations,
	}, nil
}

// surfacePressure integrates dP = c drho inward from P = 0 at the last
// sample with the trapezoid rule.
func surfacePressure(e eos.EOS, rho []float64) []float64 {
	n := len(rho)
	P := make([]float64, n)
	cNext := e.DPDRho(rho[n-1])
	for i := n - 2; i >= 0; i-- {
		c := e.DPDRho(rho[i])
		P[i] = P[i+1] + (c+cNext)/2*(rho[i]-rho[i+1])
		cNext = c
	}
	return P
}
