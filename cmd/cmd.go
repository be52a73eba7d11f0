/*
package cmd contains code for running rhoprof in its various command line
modes.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/units"
	"github.com/phil-mansfield/rhoprof/version"
)

// EnvPrefix is the prefix of environment variables which override global
// config variables, e.g. RHOPROF_OUTPUT_DIR.
const EnvPrefix = "RHOPROF"

var ModeNames map[string]Mode = map[string]Mode{
	"uniform":      &UniformConfig{},
	"evrard":       &EvrardConfig{},
	"polytrope":    &PolytropeConfig{},
	"piecewise":    &PiecewiseConfig{},
	"bonnor-ebert": &BonnorEbertConfig{},
	"mass":         &MassConfig{},
	"check":        &CheckConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode. Flags of the form "--Name=value" override the file.
	// An empty fname means that only defaults and flags are used.
	ReadConfig(fname string, flags []string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes an initialized GlobalConfig struct and
	// a slice of lines representing the contents of stdin. It will return a
	// slice of lines that should be written to stdout along with an error if
	// one occurs.
	Run(gConfig *GlobalConfig, stdin []string) ([]string, error)
}

// GlobalConfig is a config file used by every mode. Unlike mode config
// files, it is a YAML file read through viper, so every variable can also be
// set by an environment variable.
type GlobalConfig struct {
	Version   string `mapstructure:"version"`
	OutputDir string `mapstructure:"output_dir"`
	Log       string `mapstructure:"log"`
	Plot      bool   `mapstructure:"plot"`
	Units     struct {
		Mass   string `mapstructure:"mass"`
		Length string `mapstructure:"length"`
	} `mapstructure:"units"`

	// Set by validate.
	LogMode logging.Flag `mapstructure:"-"`
	System  units.System `mapstructure:"-"`
}

var _ Mode = &GlobalConfig{}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", version.SourceVersion)
	v.SetDefault("output_dir", "")
	v.SetDefault("log", "nil")
	v.SetDefault("plot", false)
	v.SetDefault("units.mass", "1")
	v.SetDefault("units.length", "1")
	return v
}

// ReadConfig reads a config file and returns an error, if applicable. Flags
// use the YAML key names, e.g. "--output_dir=out" or "--units.mass=msun".
func (config *GlobalConfig) ReadConfig(fname string, flags []string) error {
	v := newViper()
	if fname != "" {
		v.SetConfigFile(fname)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("I couldn't read the global config file %s: %s",
				fname, err.Error())
		}
	}

	for _, flag := range flags {
		tok := strings.TrimLeft(flag, "-")
		eq := strings.Index(tok, "=")
		if eq <= 0 {
			return fmt.Errorf("The flag '%s' does not take the form "+
				"name=value.", flag)
		}
		v.Set(strings.ToLower(tok[:eq]), tok[eq+1:])
	}

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("I couldn't parse the global config file %s: %s",
			fname, err.Error())
	}

	return config.validate()
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set.
func (config *GlobalConfig) validate() error {
	if err := version.Compatible(config.Version); err != nil {
		return fmt.Errorf("I couldn't use the 'version' variable: %s",
			err.Error())
	}

	var err error
	if config.LogMode, err = logging.ParseFlag(config.Log); err != nil {
		return fmt.Errorf("The 'log' variable is invalid: %s", err.Error())
	}

	config.System, err = units.NewSystem(config.Units.Mass, config.Units.Length)
	if err != nil {
		return fmt.Errorf("The 'units' variables are invalid: %s",
			err.Error())
	}

	if config.Plot && config.OutputDir == "" {
		return fmt.Errorf("The 'plot' variable is set, but 'output_dir', " +
			"where plots are written, isn't.")
	} else if config.OutputDir != "" {
		if err = validateDir(config.OutputDir); err != nil {
			return fmt.Errorf("The 'output_dir' variable is set to '%s', "+
				"but %s", config.OutputDir, err.Error())
		}
	}

	return nil
}

// FromLaterPatch returns true if the config file was written for a later
// patch release of the source than the one that is running.
func (config *GlobalConfig) FromLaterPatch() bool {
	later, err := version.Later(config.Version, version.SourceVersion)
	return err == nil && later
}

// validateDir returns an error if there are any problems with the given
// directory.
func validateDir(name string) error {
	if info, err := os.Stat(name); err != nil {
		return fmt.Errorf("%s does not exist.", name)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory.", name)
	}

	return nil
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`# Target version of rhoprof. This option merely allows rhoprof to notice
# when its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
version: %s

# Directory that run summaries (<mode>.yaml) and the Bonnor-Ebert table are
# written to. Nothing is written if this is empty.
output_dir: ""

# Logging mode: nil, performance, or debug. Log lines go to stderr.
log: nil

# Write a plot of the generated profile to output_dir/<mode>.png.
plot: false

# Profiles are generated in code units with G = 1. These set the mass and
# length units that the run summary converts results to. Each can be the
# name of a unit (g, cm, msun, rsun, au, pc, km) or a number of cgs units.
units:
  mass: msun
  length: rsun

# Every variable can also be set with an environment variable, e.g.
# RHOPROF_OUTPUT_DIR or RHOPROF_UNITS_MASS.`, version.SourceVersion)
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	panic("GlobalConfig.Run() should never be executed.")
}
