/*
package calibrate searches for the central density which gives a profile
its target mass.
*/
package calibrate

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	"github.com/go-kit/log"

	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/profile"
)

const (
	// MaxIterations is the default limit on calibration iterations.
	MaxIterations = 1000
	// Tolerance is the relative mass error at which the search stops.
	Tolerance = 1e4 * 0x1p-52
)

// Shooter integrates a profile with central density rhoc and step dr and
// reports its total mass and sample count.
type Shooter func(rhoc, dr float64) (
	mass float64, npts int, status integrate.Status, err error,
)

// Result is a converged central density search.
type Result struct {
	CentralDensity float64
	// StepSize is the step of the final integration, after any doublings.
	StepSize   float64
	Npts       int
	Mass       float64
	Iterations int
}

type params struct {
	maxIterations, maxDoublings int
	tolerance                   float64
	logger                      log.Logger
}

type internalOption func(*params)
type Option internalOption

// Iterations sets the maximum number of calibration iterations.
func Iterations(n int) Option {
	return func(p *params) { p.maxIterations = n }
}

// Doublings sets how many times the step may be doubled at a single central
// density.
func Doublings(n int) Option {
	return func(p *params) { p.maxDoublings = n }
}

// Tol sets the relative mass tolerance.
func Tol(tol float64) Option {
	return func(p *params) { p.tolerance = tol }
}

// Logger sets the logger that per-iteration progress is written to.
func Logger(l log.Logger) Option {
	return func(p *params) { p.logger = l }
}

func (p *params) loadOptions(opts []Option) {
	p.maxIterations = MaxIterations
	p.maxDoublings = integrate.MaxDoublings
	p.tolerance = Tolerance
	p.logger = nil
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Logger("module", "calibrate")
	}
}

// CentralDensity adjusts the central density, starting from rhoc, until
// shoot gives a profile whose mass is within the tolerance of target.
//
// The first iteration rescales rhoc by the cube root of the mass ratio. The
// second steps rhoc by 10% towards the target, and later iterations keep
// that step until the mass crosses the target. Each crossing halves the step
// and reverses it, which turns the search into a bisection. Overruns double
// dr and retry the same rhoc without using up an iteration.
func CentralDensity(
	target, rhoc, dr float64, shoot Shooter, opts ...Option,
) (Result, error) {
	p := &params{}
	p.loadOptions(opts)

	if !(target > 0) {
		return Result{}, errorsmod.Wrapf(profile.ErrBadParameter,
			"target mass %g is not positive", target)
	} else if !(dr > 0) {
		return Result{}, errorsmod.Wrapf(profile.ErrBadParameter,
			"step size %g is not positive", dr)
	}

	sign, delta := 0.0, 0.0
	for it := 0; it < p.maxIterations; it++ {
		if !(rhoc > 0) || math.IsInf(rhoc, 0) {
			return Result{}, errorsmod.Wrapf(profile.ErrNoConvergence,
				"central density became %g after %d iterations", rhoc, it)
		}

		var (
			mass float64
			npts int
			err  error
		)
		_, dr, err = integrate.Retry(dr, p.maxDoublings,
			func(dr float64) (integrate.Result, error) {
				m, n, status, err := shoot(rhoc, dr)
				mass, npts = m, n
				return integrate.Result{Npts: n, Status: status}, err
			})
		if err != nil {
			return Result{}, errorsmod.Wrapf(err,
				"calibration iteration %d at rhoc = %g", it, rhoc)
		}

		logging.LogDebug(p.logger, "iter", it, "rhoc", rhoc, "dr", dr,
			"npts", npts, "mass", mass, "target", target)

		if !(mass > 0) || math.IsInf(mass, 0) {
			return Result{}, errorsmod.Wrapf(profile.ErrNoConvergence,
				"profile with rhoc = %g has mass %g", rhoc, mass)
		}

		if math.Abs(target-mass)/target < p.tolerance {
			return Result{
				CentralDensity: rhoc, StepSize: dr, Npts: npts,
				Mass: mass, Iterations: it + 1,
			}, nil
		}

		s := 1.0
		if mass > target {
			s = -1
		}

		switch {
		case it == 0:
			rhoc *= math.Cbrt(target / mass)
		case it == 1:
			delta = 0.1 * rhoc * s
			rhoc += delta
		default:
			if s != sign {
				delta = -delta / 2
			}
			rhoc += delta
		}
		sign = s
	}

	return Result{}, errorsmod.Wrapf(profile.ErrNoConvergence,
		"mass did not reach %g within %d iterations", target, p.maxIterations)
}
