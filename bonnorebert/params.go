package bonnorebert

import (
	"fmt"
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/profile"
)

// Params selects which two quantities fix a Bonnor-Ebert sphere. The other
// quantities are derived from the dimensionless solution.
type Params interface {
	// resolve returns the central density and the dimensionless radius of
	// the sphere.
	resolve(t *table, c constants) (rhoc, xi float64, err error)
	fmt.Stringer
}

// CentralDensityRadius fixes the central density and the radius.
type CentralDensityRadius struct{ RhoC, R float64 }

// CentralDensityXi fixes the central density and the dimensionless radius.
type CentralDensityXi struct{ RhoC, Xi float64 }

// CentralDensityMass fixes the central density and the mass.
type CentralDensityMass struct{ RhoC, M float64 }

// RadiusXi fixes the radius and the dimensionless radius.
type RadiusXi struct{ R, Xi float64 }

// MassXi fixes the mass and the dimensionless radius.
type MassXi struct{ M, Xi float64 }

// MassOverdensity starts from the critical sphere of mass M and multiplies
// its central density by Fac while keeping its radius fixed, which moves the
// edge to xi = CriticalXi sqrt(Fac).
type MassOverdensity struct{ M, Fac float64 }

var (
	_ Params = CentralDensityRadius{}
	_ Params = CentralDensityXi{}
	_ Params = CentralDensityMass{}
	_ Params = RadiusXi{}
	_ Params = MassXi{}
	_ Params = MassOverdensity{}
)

type constants struct{ cs, G float64 }

// scaleRadius returns the radius unit a = cs / sqrt(4 pi G rhoc).
func (c constants) scaleRadius(rhoc float64) float64 {
	return c.cs / math.Sqrt(4*math.Pi*c.G*rhoc)
}

// centralDensity inverts scaleRadius.
func (c constants) centralDensity(a float64) float64 {
	return c.cs * c.cs / (4 * math.Pi * c.G * a * a)
}

// massDensity returns the central density of a sphere with dimensionless
// mass m and mass M, from M = rhoc a^3 m.
func (c constants) massDensity(m, M float64) float64 {
	x := c.cs * c.cs * c.cs * m / (math.Pow(4*math.Pi*c.G, 1.5) * M)
	return x * x
}

func positive(name string, vals ...float64) error {
	for _, v := range vals {
		if !(v > 0) || math.IsInf(v, 0) {
			return errorsmod.Wrapf(profile.ErrBadParameter,
				"%s needs positive, finite values, got %v", name, vals)
		}
	}
	return nil
}

func (p CentralDensityRadius) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.RhoC, p.R); err != nil {
		return 0, 0, err
	}
	return p.RhoC, p.R / c.scaleRadius(p.RhoC), nil
}

func (p CentralDensityXi) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.RhoC, p.Xi); err != nil {
		return 0, 0, err
	}
	return p.RhoC, p.Xi, nil
}

func (p CentralDensityMass) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.RhoC, p.M); err != nil {
		return 0, 0, err
	}
	a := c.scaleRadius(p.RhoC)
	xi, err := t.xiOf(p.M / (p.RhoC * a * a * a))
	return p.RhoC, xi, err
}

func (p RadiusXi) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.R, p.Xi); err != nil {
		return 0, 0, err
	}
	return c.centralDensity(p.R / p.Xi), p.Xi, nil
}

func (p MassXi) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.M, p.Xi); err != nil {
		return 0, 0, err
	}
	m, err := t.massOf(p.Xi)
	if err != nil {
		return 0, 0, err
	}
	return c.massDensity(m, p.M), p.Xi, nil
}

func (p MassOverdensity) resolve(t *table, c constants) (float64, float64, error) {
	if err := positive(p.String(), p.M, p.Fac); err != nil {
		return 0, 0, err
	}
	m, err := t.massOf(CriticalXi)
	if err != nil {
		return 0, 0, err
	}
	rhoc := c.massDensity(m, p.M)
	R := CriticalXi * c.scaleRadius(rhoc)

	rhoc *= p.Fac
	return rhoc, R / c.scaleRadius(rhoc), nil
}

func (p CentralDensityRadius) String() string {
	return fmt.Sprintf("CentralDensityRadius{RhoC: %g, R: %g}", p.RhoC, p.R)
}

func (p CentralDensityXi) String() string {
	return fmt.Sprintf("CentralDensityXi{RhoC: %g, Xi: %g}", p.RhoC, p.Xi)
}

func (p CentralDensityMass) String() string {
	return fmt.Sprintf("CentralDensityMass{RhoC: %g, M: %g}", p.RhoC, p.M)
}

func (p RadiusXi) String() string {
	return fmt.Sprintf("RadiusXi{R: %g, Xi: %g}", p.R, p.Xi)
}

func (p MassXi) String() string {
	return fmt.Sprintf("MassXi{M: %g, Xi: %g}", p.M, p.Xi)
}

func (p MassOverdensity) String() string {
	return fmt.Sprintf("MassOverdensity{M: %g, Fac: %g}", p.M, p.Fac)
}
