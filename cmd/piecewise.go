package cmd

import (
	"fmt"

	"github.com/phil-mansfield/rhoprof/calibrate"
	"github.com/phil-mansfield/rhoprof/eos"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/piecewise"
)

type PiecewiseConfig struct {
	k0        float64
	gammas    []float64
	rhoDivide []float64
	mass      float64

	npts, iterations int64
	centralDensity   float64
	stepSize, g, tol float64
}

var _ Mode = &PiecewiseConfig{}

func (config *PiecewiseConfig) ExampleConfig() string {
	return `[piecewise.config]

#####################
## Required Fields ##
#####################

# The equation of state is a piecewise polytrope. Below the first density in
# RhoDivide, P = K0 rho^Gammas[0]. Each later segment uses the next Gamma, and
# its K is chosen so that the pressure is continuous. RhoDivide must have one
# fewer element than Gammas and must be increasing.
K0 = 1
Gammas = 1.6666666666666667, 1.4
RhoDivide = 0.5

# Mass of the star in code units.
Mass = 1

#####################
## Optional Fields ##
#####################

# Initial guess for the central density.
CentralDensity = 1

# Npts is the size of the integration buffer. StepSize is the initial radial
# step. If StepSize is 0, it is set to 30 / Npts.
Npts = 4000
StepSize = 0

# The calibration stops when the relative mass error is below Tol or after
# Iterations attempts.
Iterations = 1000
Tol = 2.220446049250313e-12

# Gravitational constant.
G = 1`
}

func (config *PiecewiseConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("piecewise.config")

	vars.Float(&config.k0, "K0", 1)
	vars.Floats(&config.gammas, "Gammas", []float64{5.0 / 3})
	vars.Floats(&config.rhoDivide, "RhoDivide", []float64{})
	vars.Float(&config.mass, "Mass", 1)
	vars.Float(&config.centralDensity, "CentralDensity", 1)
	vars.Int(&config.npts, "Npts", 4000)
	vars.Float(&config.stepSize, "StepSize", 0)
	vars.Int(&config.iterations, "Iterations", calibrate.MaxIterations)
	vars.Float(&config.tol, "Tol", calibrate.Tolerance)
	vars.Float(&config.g, "G", 1)

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}
	if err := parse.ReadFlags(flags, vars); err != nil {
		return err
	}

	return config.validate()
}

func (config *PiecewiseConfig) validate() error {
	switch {
	case config.npts < 3:
		return fmt.Errorf("'Npts' must be at least 3, but is %d.",
			config.npts)
	case config.iterations <= 0:
		return fmt.Errorf("'Iterations' must be positive, but is %d.",
			config.iterations)
	case config.stepSize < 0:
		return fmt.Errorf("'StepSize' may not be negative, but is %g.",
			config.stepSize)
	case !(config.tol > 0):
		return fmt.Errorf("'Tol' must be positive, but is %g.", config.tol)
	}
	return nil
}

func (config *PiecewiseConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	e, err := eos.NewPiecewisePolytrope(
		config.k0, config.gammas, config.rhoDivide,
	)
	if err != nil {
		return nil, err
	}

	l := logging.Logger("mode", "piecewise")
	opts := []piecewise.Option{
		piecewise.CentralDensity(config.centralDensity),
		piecewise.G(config.g),
		piecewise.Logger(l),
		piecewise.Calibration(
			calibrate.Iterations(int(config.iterations)),
			calibrate.Tol(config.tol),
			calibrate.Logger(l),
		),
	}
	if config.stepSize > 0 {
		opts = append(opts, piecewise.StepSize(config.stepSize))
	}

	res, err := piecewise.Generate(e, config.mass, int(config.npts), opts...)
	if err != nil {
		return nil, err
	}

	s := newSummary("piecewise")
	s.Mass, s.Radius, s.CentralDensity = config.mass, res.R, res.RhoC
	s.Values["iterations"] = float64(res.Iterations)
	s.Values["step_size"] = res.StepSize
	return finish(gConfig, s, res.Profile)
}
