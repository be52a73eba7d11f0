package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/phil-mansfield/rhoprof/bonnorebert"
	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/units"
)

type BonnorEbertConfig struct {
	centralDensity, radius, xi, mass, overdensity float64
	set                                           map[string]bool

	soundSpeed, temperature, mu, g float64
	override, artifact             bool
	npts                           int64
}

var _ Mode = &BonnorEbertConfig{}

// beVars are the variables of which exactly two select the sphere.
var beVars = []string{
	"CentralDensity", "Radius", "Xi", "Mass", "Overdensity",
}

func (config *BonnorEbertConfig) ExampleConfig() string {
	return `[bonnor-ebert.config]

#####################
## Required Fields ##
#####################

# Exactly two of the following variables must be set. The supported pairs are
#
# CentralDensity, Radius
# CentralDensity, Xi
# CentralDensity, Mass
# Radius, Xi
# Mass, Xi
# Mass, Overdensity
#
# Xi is the dimensionless radius of the sphere. Mass, Overdensity starts from
# the critical sphere of mass Mass and multiplies its central density by
# Overdensity at fixed radius.
CentralDensity = 1
Xi = 7
# Radius = 1
# Mass = 1
# Overdensity = 1.2

#####################
## Optional Fields ##
#####################

# Isothermal sound speed in code units. If Temperature (in K) is set, the
# sound speed is instead computed from Temperature and the mean molecular
# weight Mu and converted with the units of the global config file.
SoundSpeed = 1
# Temperature = 10
Mu = 2.33

# Spheres with a central to edge density contrast of at most 14.1 are stable
# against collapse and are rejected unless Override is true.
Override = false

# If Artifact is true, the table of radius, enclosed mass and density is also
# written to output_dir/BonnorEbert.txt, or to ./BonnorEbert.txt if the global
# output_dir isn't set.
Artifact = true

# Number of samples in the dimensionless solution.
Npts = 4000

# Gravitational constant.
G = 1`
}

func (config *BonnorEbertConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("bonnor-ebert.config")

	vars.Float(&config.centralDensity, "CentralDensity", 0)
	vars.Float(&config.radius, "Radius", 0)
	vars.Float(&config.xi, "Xi", 0)
	vars.Float(&config.mass, "Mass", 0)
	vars.Float(&config.overdensity, "Overdensity", 0)
	vars.Float(&config.soundSpeed, "SoundSpeed", 1)
	vars.Float(&config.temperature, "Temperature", 0)
	vars.Float(&config.mu, "Mu", 2.33)
	vars.Bool(&config.override, "Override", false)
	vars.Bool(&config.artifact, "Artifact", true)
	vars.Int(&config.npts, "Npts", bonnorebert.DefaultCapacity)
	vars.Float(&config.g, "G", 1)

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}
	if err := parse.ReadFlags(flags, vars); err != nil {
		return err
	}

	config.set = map[string]bool{}
	for _, name := range beVars {
		if vars.IsSet(name) {
			config.set[name] = true
		}
	}

	return config.validate()
}

func (config *BonnorEbertConfig) validate() error {
	if len(config.set) != 2 {
		names := []string{}
		for _, name := range beVars {
			if config.set[name] {
				names = append(names, name)
			}
		}
		return fmt.Errorf("Exactly two of %s must be set, but %d were: [%s].",
			strings.Join(beVars, ", "), len(names), strings.Join(names, ", "))
	}

	if _, err := config.params(); err != nil {
		return err
	}

	if config.temperature < 0 || !(config.mu > 0) {
		return fmt.Errorf("'Temperature' = %g and 'Mu' = %g are invalid.",
			config.temperature, config.mu)
	}
	return nil
}

// params converts the two set variables into a parameterisation.
func (config *BonnorEbertConfig) params() (bonnorebert.Params, error) {
	has := func(a, b string) bool { return config.set[a] && config.set[b] }

	switch {
	case has("CentralDensity", "Radius"):
		return bonnorebert.CentralDensityRadius{
			RhoC: config.centralDensity, R: config.radius,
		}, nil
	case has("CentralDensity", "Xi"):
		return bonnorebert.CentralDensityXi{
			RhoC: config.centralDensity, Xi: config.xi,
		}, nil
	case has("CentralDensity", "Mass"):
		return bonnorebert.CentralDensityMass{
			RhoC: config.centralDensity, M: config.mass,
		}, nil
	case has("Radius", "Xi"):
		return bonnorebert.RadiusXi{R: config.radius, Xi: config.xi}, nil
	case has("Mass", "Xi"):
		return bonnorebert.MassXi{M: config.mass, Xi: config.xi}, nil
	case has("Mass", "Overdensity"):
		return bonnorebert.MassOverdensity{
			M: config.mass, Fac: config.overdensity,
		}, nil
	}
	return nil, fmt.Errorf("The variables %v can't be used together to "+
		"select a Bonnor-Ebert sphere.", config.set)
}

// soundSpeedCode returns the sound speed in code units.
func (config *BonnorEbertConfig) soundSpeedCode(gConfig *GlobalConfig) float64 {
	if config.temperature == 0 {
		return config.soundSpeed
	}
	cs := units.SoundSpeed(config.temperature, config.mu)
	return cs / gConfig.System.Velocity()
}

func (config *BonnorEbertConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	par, err := config.params()
	if err != nil {
		return nil, err
	}

	cs := config.soundSpeedCode(gConfig)
	opts := []bonnorebert.Option{
		bonnorebert.SoundSpeed(cs),
		bonnorebert.G(config.g),
		bonnorebert.Override(config.override),
		bonnorebert.Capacity(int(config.npts)),
		bonnorebert.Logger(logging.Logger("mode", "bonnor-ebert")),
	}

	artifact := &bytes.Buffer{}
	if config.artifact {
		opts = append(opts, bonnorebert.Artifact(artifact))
	}

	res, err := bonnorebert.Generate(par, opts...)
	if artifact.Len() > 0 {
		if werr := writeArtifact(gConfig.OutputDir, artifact); werr != nil {
			return nil, werr
		}
	}
	if err != nil {
		return nil, err
	}

	// The sphere is isothermal, so every sample has the same temperature.
	T := units.Temperature(cs*gConfig.System.Velocity(), config.mu)
	res.Profile.Temperature = make([]float64, res.Profile.Len())
	for i := range res.Profile.Temperature {
		res.Profile.Temperature[i] = T
	}

	s := newSummary("bonnor-ebert")
	s.Mass, s.Radius, s.CentralDensity = res.M, res.R, res.RhoC
	s.Values["xi"] = res.Xi
	s.Values["contrast"] = res.Contrast
	s.Values["sound_speed"] = cs
	s.Values["temperature"] = T
	return finish(gConfig, s, res.Profile)
}

// writeArtifact writes the Bonnor-Ebert table to dir, or to the working
// directory if dir isn't set.
func writeArtifact(dir string, buf *bytes.Buffer) error {
	if dir == "" {
		dir = "."
	}
	fname := path.Join(dir, bonnorebert.ArtifactName)

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("I couldn't create %s: %s", fname, err.Error())
	}
	if _, err = buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("I couldn't write %s: %s", fname, err.Error())
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("I couldn't close %s: %s", fname, err.Error())
	}
	return nil
}
