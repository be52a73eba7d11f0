package cmd

import (
	"fmt"

	"github.com/phil-mansfield/rhoprof/cmd/catalog"
	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/profile"
)

// MassConfig reads a radius and density table from stdin and writes it back
// with the enclosed mass of each sample appended.
type MassConfig struct {
	rCol, rhoCol int64
}

var _ Mode = &MassConfig{}

func (config *MassConfig) ExampleConfig() string {
	return `[mass.config]

# The mass mode reads a table from stdin and computes the mass enclosed by
# each sample, treating each sample as a shell of constant density.

# Columns (zero-indexed) of stdin which contain the radius and the density.
# Radii must be increasing.
RCol = 0
RhoCol = 1`
}

func (config *MassConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("mass.config")
	vars.Int(&config.rCol, "RCol", 0)
	vars.Int(&config.rhoCol, "RhoCol", 1)

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil {
			return err
		}
	}
	if err := parse.ReadFlags(flags, vars); err != nil {
		return err
	}

	if config.rCol < 0 || config.rhoCol < 0 {
		return fmt.Errorf("'RCol' = %d and 'RhoCol' = %d may not be "+
			"negative.", config.rCol, config.rhoCol)
	}
	return nil
}

// readProfile reads the radius and density columns of a table.
func readProfile(stdin []string, rCol, rhoCol int64) (*profile.Profile, error) {
	cols, err := catalog.ParseLines(stdin, []int{int(rCol), int(rhoCol)})
	if err != nil {
		return nil, err
	}
	if err = checkIncreasing(cols[0]); err != nil {
		return nil, err
	}
	return &profile.Profile{R: cols[0], Rho: cols[1]}, nil
}

func checkIncreasing(r []float64) error {
	for i := 1; i < len(r); i++ {
		if r[i] <= r[i-1] {
			return fmt.Errorf("Radii must be increasing, but r[%d] = %g "+
				"and r[%d] = %g.", i-1, r[i-1], i, r[i])
		}
	}
	return nil
}

func (config *MassConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	p, err := readProfile(stdin, config.rCol, config.rhoCol)
	if err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("No data was passed through stdin.")
	}
	p.EnclosedMass()

	s := newSummary("mass")
	s.Mass, s.Radius = p.Mass[p.Len()-1], p.R[p.Len()-1]
	return finish(gConfig, s, p)
}
