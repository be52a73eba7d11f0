/*
package profile contains the radial profile data model shared by every
generator, the shell-mass integrator and the closed-form reference profiles.
*/
package profile

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/rhoprof/math/calc"
	"github.com/phil-mansfield/rhoprof/math/interpolate"
)

// Profile is a table of radial samples. R is strictly increasing. Every
// non-nil optional slice has the same length as R.
type Profile struct {
	R, Rho []float64

	Mass        []float64
	Pressure    []float64
	Temperature []float64
	// Energy is the specific internal energy.
	Energy []float64
	// Composition maps species names to mass fractions.
	Composition map[string][]float64
}

// New returns an empty profile with room for capacity samples. Negative
// capacities are treated as zero.
func New(capacity int) *Profile {
	if capacity < 0 {
		capacity = 0
	}
	return &Profile{
		R:   make([]float64, 0, capacity),
		Rho: make([]float64, 0, capacity),
	}
}

// Len returns the number of samples in the profile.
func (p *Profile) Len() int { return len(p.R) }

// Reserve sets the length of R and Rho to n, reusing the existing backing
// arrays when they are large enough. Optional columns are dropped. Steppers
// write into the reserved slices and never append to them.
func (p *Profile) Reserve(n int) {
	p.R = reserve(p.R, n)
	p.Rho = reserve(p.Rho, n)
	p.Mass, p.Pressure, p.Temperature, p.Energy = nil, nil, nil, nil
	p.Composition = nil
}

func reserve(x []float64, n int) []float64 {
	if cap(x) < n {
		return make([]float64, n)
	}
	x = x[:n]
	for i := range x {
		x[i] = 0
	}
	return x
}

// Truncate shortens every column to the first n samples.
func (p *Profile) Truncate(n int) {
	if n > p.Len() {
		panic("Cannot truncate a profile to a larger size.")
	}
	p.R, p.Rho = p.R[:n], p.Rho[:n]
	for _, col := range p.optional() {
		if *col != nil {
			*col = (*col)[:n]
		}
	}
	for name := range p.Composition {
		p.Composition[name] = p.Composition[name][:n]
	}
}

// Clear empties the profile. Generators call it on failure so that callers
// never see a partially written table.
func (p *Profile) Clear() {
	p.R, p.Rho = p.R[:0], p.Rho[:0]
	p.Mass, p.Pressure, p.Temperature, p.Energy = nil, nil, nil, nil
	p.Composition = nil
}

func (p *Profile) optional() []*[]float64 {
	return []*[]float64{&p.Mass, &p.Pressure, &p.Temperature, &p.Energy}
}

// EnclosedMass fills p.Mass using ShellMass.
func (p *Profile) EnclosedMass() []float64 {
	if len(p.Mass) != p.Len() {
		p.Mass = make([]float64, p.Len())
	}
	return ShellMass(p.R, p.Rho, p.Mass)
}

// Scale multiplies radii by rFac and densities by rhoFac. Mass, pressure,
// specific energy and temperature are rescaled so that a profile in
// hydrostatic equilibrium at a fixed G stays in equilibrium.
func (p *Profile) Scale(rFac, rhoFac float64) {
	floats.Scale(rFac, p.R)
	floats.Scale(rhoFac, p.Rho)
	if p.Mass != nil {
		floats.Scale(rhoFac*rFac*rFac*rFac, p.Mass)
	}
	if p.Pressure != nil {
		floats.Scale(rhoFac*rhoFac*rFac*rFac, p.Pressure)
	}
	if p.Energy != nil {
		floats.Scale(rhoFac*rFac*rFac, p.Energy)
	}
	if p.Temperature != nil {
		floats.Scale(rhoFac*rFac*rFac, p.Temperature)
	}
}

// RadiusEnclosing returns the radius which encloses a mass m, found by
// linear interpolation of the enclosed mass table. Mass must be filled.
func (p *Profile) RadiusEnclosing(m float64) (float64, error) {
	if len(p.Mass) != p.Len() || p.Len() == 0 {
		return 0, errorsmod.Wrap(ErrDataUnavailable,
			"profile has no enclosed mass table")
	}

	n := p.Len()
	if m < 0 || m > p.Mass[n-1] {
		return 0, errorsmod.Wrapf(ErrOutOfRange, "mass %g is outside "+
			"[0, %g]", m, p.Mass[n-1])
	}

	// Samples past the surface add no mass, so only strictly increasing
	// points are kept.
	ms, rs := []float64{0}, []float64{0}
	if p.R[0] == 0 {
		ms, rs = ms[:0], rs[:0]
	}
	for i := 0; i < n; i++ {
		if len(ms) > 0 && p.Mass[i] <= ms[len(ms)-1] {
			continue
		}
		ms, rs = append(ms, p.Mass[i]), append(rs, p.R[i])
	}

	if len(ms) < 2 || m <= ms[0] {
		return rs[0], nil
	}
	return interpolate.NewLinear(ms, rs).Eval(m), nil
}

// HydrostaticResidual measures how far a profile is from hydrostatic
// equilibrium, dP/dr = -G M rho / r^2. It returns the largest absolute
// residual over interior samples divided by the largest gravitational force
// density. Mass and Pressure must be filled.
func (p *Profile) HydrostaticResidual(G float64) (float64, error) {
	n := p.Len()
	if len(p.Mass) != n || len(p.Pressure) != n {
		return 0, errorsmod.Wrap(ErrDataUnavailable,
			"profile needs mass and pressure columns")
	} else if n < 5 {
		return 0, errorsmod.Wrapf(ErrDataUnavailable,
			"profile has only %d samples", n)
	}

	dPdr := calc.Deriv(p.R, p.Pressure, 2)
	maxRes, maxGrav := 0.0, 0.0
	for i := 1; i < n-1; i++ {
		if p.R[i] <= 0 {
			continue
		}
		// Mass[i-1] ends at the inner edge of sample i's shell.
		e := (p.R[i-1] + p.R[i]) / 2
		m := p.Mass[i-1] + 4*math.Pi/3*p.Rho[i]*(p.R[i]*p.R[i]*p.R[i]-e*e*e)
		grav := G * m * p.Rho[i] / (p.R[i] * p.R[i])
		maxRes = math.Max(maxRes, math.Abs(dPdr[i]+grav))
		maxGrav = math.Max(maxGrav, grav)
	}

	if maxGrav == 0 {
		return 0, errorsmod.Wrap(ErrBadParameter, "profile has no mass")
	}
	return maxRes / maxGrav, nil
}
