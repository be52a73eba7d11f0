package cmd

import (
	"fmt"

	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/polytrope"
)

type PolytropeConfig struct {
	gamma, k, mass float64
	radius         float64
	setK           bool

	npts, doublings int64
	stepSize, g     float64
}

var _ Mode = &PolytropeConfig{}

func (config *PolytropeConfig) ExampleConfig() string {
	return `[polytrope.config]

#####################
## Required Fields ##
#####################

# The star follows P = K rho^Gamma. Gamma must be between 1 and 2 and may not
# be 4/3.
Gamma = 1.6666666666666667
K = 1

# Mass of the star in code units.
Mass = 1

#####################
## Optional Fields ##
#####################

# If SetK is true, K is replaced by the value which gives the star the radius
# Radius. Otherwise Radius is ignored.
SetK = false
Radius = 1

# Npts is the size of the integration buffer. If the star doesn't fit, the
# step is doubled (at most Doublings times) and the integration is rerun.
Npts = 10000
StepSize = 0.001
Doublings = 40

# Gravitational constant.
G = 1`
}

func (config *PolytropeConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("polytrope.config")

	vars.Float(&config.gamma, "Gamma", 5.0/3)
	vars.Float(&config.k, "K", 1)
	vars.Float(&config.mass, "Mass", 1)
	vars.Bool(&config.setK, "SetK", false)
	vars.Float(&config.radius, "Radius", 1)
	vars.Int(&config.npts, "Npts", 10000)
	vars.Float(&config.stepSize, "StepSize", polytrope.DefaultStepSize)
	vars.Int(&config.doublings, "Doublings", integrate.MaxDoublings)
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

// validate only checks the variables that the generator doesn't.
func (config *PolytropeConfig) validate() error {
	if config.npts < 3 {
		return fmt.Errorf("'Npts' must be at least 3, but is %d.",
			config.npts)
	} else if config.doublings < 0 {
		return fmt.Errorf("'Doublings' may not be negative, but is %d.",
			config.doublings)
	}
	return nil
}

func (config *PolytropeConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	l := logging.Logger("mode", "polytrope")
	res, err := polytrope.Generate(
		config.gamma, config.k, config.mass, int(config.npts),
		polytrope.SetK(config.setK), polytrope.Radius(config.radius),
		polytrope.StepSize(config.stepSize), polytrope.G(config.g),
		polytrope.Doublings(int(config.doublings)), polytrope.Logger(l),
	)
	if err != nil {
		return nil, err
	}

	s := newSummary("polytrope")
	s.Mass, s.Radius, s.CentralDensity = config.mass, res.R, res.RhoC
	s.Values["K"] = res.K
	s.Values["gamma"] = config.gamma
	s.Values["step_size"] = res.StepSize
	return finish(gConfig, s, res.Profile)
}
