package cmd

import (
	"fmt"

	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/profile"
)

// closedConfig is shared by the modes which generate closed-form profiles.
type closedConfig struct {
	npts         int64
	mass, radius float64
}

func (config *closedConfig) readConfig(
	name, fname string, flags []string,
) error {
	vars := parse.NewConfigVars(name)
	vars.Int(&config.npts, "Npts", 1000)
	vars.Float(&config.mass, "Mass", 1)
	vars.Float(&config.radius, "Radius", 1)

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}
	if err := parse.ReadFlags(flags, vars); err != nil {
		return err
	}

	switch {
	case config.npts <= 0:
		return fmt.Errorf("'Npts' must be positive, but is %d.", config.npts)
	case config.mass <= 0:
		return fmt.Errorf("'Mass' must be positive, but is %g.", config.mass)
	case config.radius <= 0:
		return fmt.Errorf("'Radius' must be positive, but is %g.",
			config.radius)
	}
	return nil
}

func closedExample(name, description string) string {
	return fmt.Sprintf(`[%s]

# %s

# Npts is the number of radial samples. Sample i is at radius
# (i + 1) * Radius / Npts.
Npts = 1000

# Mass and Radius of the sphere in code units.
Mass = 1
Radius = 1`, name, description)
}

func (config *closedConfig) run(
	mode string, gConfig *GlobalConfig,
	gen func(int, float64, float64) (*profile.Profile, error),
) ([]string, error) {
	p, err := gen(int(config.npts), config.mass, config.radius)
	if err != nil {
		return nil, err
	}

	s := newSummary(mode)
	s.Mass, s.Radius = config.mass, config.radius
	if mode == "uniform" {
		s.CentralDensity = p.Rho[0]
	}
	return finish(gConfig, s, p)
}

// UniformConfig generates a sphere of constant density.
type UniformConfig struct{ closedConfig }

var _ Mode = &UniformConfig{}

func (config *UniformConfig) ReadConfig(fname string, flags []string) error {
	return config.readConfig("uniform.config", fname, flags)
}

func (config *UniformConfig) ExampleConfig() string {
	return closedExample("uniform.config",
		"The uniform mode generates a sphere of constant density.")
}

func (config *UniformConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	return config.run("uniform", gConfig, profile.Uniform)
}

// EvrardConfig generates the rho ~ 1/r profile used in Evrard collapse
// tests.
type EvrardConfig struct{ closedConfig }

var _ Mode = &EvrardConfig{}

func (config *EvrardConfig) ReadConfig(fname string, flags []string) error {
	return config.readConfig("evrard.config", fname, flags)
}

func (config *EvrardConfig) ExampleConfig() string {
	return closedExample("evrard.config",
		"The evrard mode generates the rho ~ 1/r sphere of Evrard collapse\n"+
			"# tests.")
}

func (config *EvrardConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	return config.run("evrard", gConfig, profile.Evrard)
}
