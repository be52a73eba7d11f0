/*
package polytrope generates polytropic stars. The Lane-Emden equation is
self-similar, so a single dimensionless integration is rescaled to the
requested mass without any iteration.
*/
package polytrope

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	"github.com/go-kit/log"

	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/profile"
)

// DefaultStepSize is the initial dimensionless step of the Lane-Emden
// integration.
const DefaultStepSize = 1e-3

// Result is a generated polytrope.
type Result struct {
	Profile *profile.Profile
	// RhoC is the central density, R is the radius of the surface and K is
	// the polytropic constant used, which differs from the input if it was
	// fit to a target radius.
	RhoC, R, K float64
	// StepSize is the dimensionless step of the integration.
	StepSize float64
}

type params struct {
	rStar        float64
	setK         bool
	dr, G        float64
	maxDoublings int
	logger       log.Logger
}

type internalOption func(*params)
type Option internalOption

// Radius sets the target stellar radius used by SetK.
func Radius(rStar float64) Option {
	return func(p *params) { p.rStar = rStar }
}

// SetK requests that K be corrected so that the star has the radius given
// by Radius.
func SetK(setK bool) Option {
	return func(p *params) { p.setK = setK }
}

// StepSize sets the initial dimensionless step.
func StepSize(dr float64) Option {
	return func(p *params) { p.dr = dr }
}

// G sets the gravitational constant. The default is 1.
func G(g float64) Option {
	return func(p *params) { p.G = g }
}

// Doublings sets the maximum number of step doublings.
func Doublings(n int) Option {
	return func(p *params) { p.maxDoublings = n }
}

func Logger(l log.Logger) Option {
	return func(p *params) { p.logger = l }
}

func (p *params) loadOptions(opts []Option) {
	p.dr, p.G = DefaultStepSize, 1
	p.maxDoublings = integrate.MaxDoublings
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Logger("module", "polytrope")
	}
}

func (p *params) validate(gamma, K, M float64) error {
	switch {
	case !(gamma > 1 && gamma < 2):
		return errorsmod.Wrapf(profile.ErrBadParameter,
			"gamma = %g is not between 1 and 2", gamma)
	case gamma == 4.0/3:
		return errorsmod.Wrap(profile.ErrBadParameter,
			"gamma = 4/3 polytropes have a mass independent of central density")
	case !(K > 0):
		return errorsmod.Wrapf(profile.ErrBadParameter, "K = %g", K)
	case !(M > 0):
		return errorsmod.Wrapf(profile.ErrBadParameter, "M = %g", M)
	case !(p.dr > 0) || !(p.G > 0):
		return errorsmod.Wrapf(profile.ErrBadParameter,
			"step size = %g, G = %g", p.dr, p.G)
	case p.setK && !(p.rStar > 0):
		return errorsmod.Wrapf(profile.ErrBadParameter,
			"fitting K needs a positive radius, got %g", p.rStar)
	}
	return nil
}

// Generate creates a polytrope, P = K rho^gamma, of mass M in a table with
// room for capacity samples. The returned profile has Mass and Pressure
// filled. On failure the profile is empty.
func Generate(
	gamma, K, M float64, capacity int, opts ...Option,
) (Result, error) {
	p := &params{}
	p.loadOptions(opts)

	prof := profile.New(capacity)
	if err := p.validate(gamma, K, M); err != nil {
		return Result{Profile: prof}, err
	} else if capacity < 3 {
		return Result{Profile: prof}, errorsmod.Wrapf(profile.ErrBadParameter,
			"capacity %d is too small", capacity)
	}

	n := 1 / (gamma - 1)
	if n >= 5 {
		logging.LogWarn(p.logger, "msg", "polytrope has no finite radius",
			"gamma", gamma)
	}

	prof.Reserve(capacity)
	res, dr, err := integrate.Retry(p.dr, p.maxDoublings,
		func(dr float64) (integrate.Result, error) {
			return integrate.LaneEmden(n, dr, prof.R, prof.Rho), nil
		})
	if err != nil {
		prof.Clear()
		return Result{Profile: prof}, err
	}
	prof.Truncate(res.Npts)

	mf := profile.TotalMass(prof.R, prof.Rho)
	xiMax := prof.R[prof.Len()-1]

	rhoc, rfac := scaling(gamma, K, M, mf, p.G)
	logging.LogDebug(p.logger, "npts", res.Npts, "dr", dr, "xi1", xiMax,
		"mass_unit", mf, "rhoc", rhoc, "R", rfac*xiMax)

	if p.setK {
		K *= math.Pow(p.rStar/(rfac*xiMax), 3*gamma-4)
		rhoc, rfac = scaling(gamma, K, M, mf, p.G)
		logging.LogDebug(p.logger, "K", K, "rhoc", rhoc, "R", rfac*xiMax)
	}

	prof.Scale(rfac, rhoc)
	prof.EnclosedMass()
	prof.Pressure = make([]float64, prof.Len())
	for i := range prof.Pressure {
		prof.Pressure[i] = K * math.Pow(prof.Rho[i], gamma)
	}

	return Result{
		Profile: prof, RhoC: rhoc, R: prof.R[prof.Len()-1], K: K,
		StepSize: dr,
	}, nil
}

// scaling returns the central density and radius scale of a polytrope of
// mass M given the mass mf of the dimensionless table.
func scaling(gamma, K, M, mf, G float64) (rhoc, rfac float64) {
	fac := gamma * K / (4 * math.Pi * G * (gamma - 1))
	rhoc = math.Pow((M/mf)/math.Pow(fac, 1.5), 2/(3*gamma-4))
	rfac = math.Sqrt(fac * math.Pow(rhoc, gamma-2))
	return rhoc, rfac
}
