package cmd

import (
	"fmt"
	"math"

	quad "gonum.org/v1/gonum/integrate"

	"github.com/phil-mansfield/rhoprof/cmd/catalog"
	"github.com/phil-mansfield/rhoprof/math/interpolate"
	"github.com/phil-mansfield/rhoprof/parse"
	"github.com/phil-mansfield/rhoprof/profile"
)

// CheckConfig reads a profile table from stdin and reports how well it is
// resolved and how close it is to hydrostatic equilibrium.
type CheckConfig struct {
	rCol, rhoCol, pCol int64
	g                  float64
}

var _ Mode = &CheckConfig{}

func (config *CheckConfig) ExampleConfig() string {
	return `[check.config]

# The check mode reads a profile from stdin, such as the output of another
# mode, and writes a single line containing:
# npts    - The number of samples.
# M_shell - The total mass, treating each sample as a constant density shell.
# M_trap  - The total mass from the trapezoid rule.
# M_spline - The total mass from integrating a cubic spline through the
#            samples.
# dM      - The largest of |M_shell - M_trap| and |M_shell - M_spline|,
#           divided by M_shell.
# resid   - The hydrostatic residual, max|dP/dr + G M rho / r^2| divided by
#           max(G M rho / r^2). This is -1 if PCol is negative.

# Columns (zero-indexed) of stdin which contain the radius, the density and
# the pressure. Set PCol to -1 if there is no pressure column.
RCol = 0
RhoCol = 1
PCol = 3

# Gravitational constant.
G = 1`
}

func (config *CheckConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("check.config")
	vars.Int(&config.rCol, "RCol", 0)
	vars.Int(&config.rhoCol, "RhoCol", 1)
	vars.Int(&config.pCol, "PCol", 3)
	vars.Float(&config.g, "G", 1)

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
	} else if !(config.g > 0) {
		return fmt.Errorf("'G' must be positive, but is %g.", config.g)
	}
	return nil
}

func (config *CheckConfig) Run(
	gConfig *GlobalConfig, stdin []string,
) ([]string, error) {
	p, err := readProfile(stdin, config.rCol, config.rhoCol)
	if err != nil {
		return nil, err
	} else if p.Len() < 3 {
		return nil, fmt.Errorf("The check mode needs at least three samples, "+
			"but got %d.", p.Len())
	}

	mShell := profile.TotalMass(p.R, p.Rho)
	mTrap := trapezoidMass(p.R, p.Rho)
	mSpline := splineMass(p.R, p.Rho)

	resid := -1.0
	if config.pCol >= 0 {
		cols, err := catalog.ParseLines(stdin, []int{int(config.pCol)})
		if err != nil {
			return nil, err
		}
		p.Pressure = cols[0]
		p.EnclosedMass()
		if resid, err = p.HydrostaticResidual(config.g); err != nil {
			return nil, err
		}
	}

	s := newSummary("check")
	s.Npts, s.Mass, s.Radius = p.Len(), mShell, p.R[p.Len()-1]
	s.Values["trapezoid_mass"] = mTrap
	s.Values["spline_mass"] = mSpline
	s.Values["hydrostatic_residual"] = resid
	if err = WriteSummary(gConfig, s); err != nil {
		return nil, err
	}

	dm := math.Max(math.Abs(mShell-mTrap), math.Abs(mShell-mSpline)) / mShell
	return []string{
		catalog.CommentString(
			[]string{"npts", "M_shell", "M_trap", "M_spline", "dM", "resid"},
		),
		fmt.Sprintf("%d %.10g %.10g %.10g %.4g %.4g",
			p.Len(), mShell, mTrap, mSpline, dm, resid),
	}, nil
}

// trapezoidMass integrates 4 pi r^2 rho with the trapezoid rule.
func trapezoidMass(r, rho []float64) float64 {
	return quad.Trapezoidal(r, massIntegrand(r, rho)) + coreMass(r, rho)
}

// splineMass integrates a natural cubic spline through 4 pi r^2 rho.
func splineMass(r, rho []float64) float64 {
	sp := interpolate.NewSpline(r, massIntegrand(r, rho))
	return sp.Integrate(r[0], r[len(r)-1]) + coreMass(r, rho)
}

func massIntegrand(r, rho []float64) []float64 {
	f := make([]float64, len(r))
	for i := range r {
		f[i] = 4 * math.Pi * r[i] * r[i] * rho[i]
	}
	return f
}

// coreMass is the mass inside r[0], treating the innermost sample as a
// uniform sphere that extends to the center.
func coreMass(r, rho []float64) float64 {
	return 4 * math.Pi / 3 * r[0] * r[0] * r[0] * rho[0]
}
