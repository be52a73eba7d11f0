package bonnorebert

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/math/interpolate"
	"github.com/phil-mansfield/rhoprof/profile"
)

// table is the dimensionless isothermal sphere. mEdge[j] is the mass of the
// table truncated at sample j, so that the last shell ends at xi[j].
type table struct {
	xi, rho, mEdge []float64
	toXi, toMass   *interpolate.Spline
}

func newTable(capacity int) *table {
	t := &table{
		xi:    make([]float64, capacity),
		rho:   make([]float64, capacity),
		mEdge: make([]float64, capacity),
	}
	integrate.Isothermal(Span/float64(capacity-1), t.xi, t.rho)

	m := profile.ShellMass(t.xi, t.rho)
	for j := 1; j < capacity; j++ {
		inner := (t.xi[j-1] + t.xi[j]) / 2
		t.mEdge[j] = m[j-1] + 4*math.Pi*t.xi[j]*t.xi[j]*t.rho[j]*(t.xi[j]-inner)
	}

	t.toXi = interpolate.NewSpline(t.mEdge, t.xi)
	t.toMass = interpolate.NewSpline(t.xi, t.mEdge)
	return t
}

// xiOf returns the dimensionless radius that encloses dimensionless mass m.
func (t *table) xiOf(m float64) (float64, error) {
	lo, hi := t.toXi.Range()
	if !(m > lo && m <= hi) {
		return 0, errorsmod.Wrapf(profile.ErrOutOfRange, "dimensionless "+
			"mass %g is outside the integrated range (%g, %g]", m, lo, hi)
	}
	return t.toXi.Eval(m), nil
}

// massOf returns the dimensionless mass enclosed by xi.
func (t *table) massOf(xi float64) (float64, error) {
	if err := t.checkXi(xi); err != nil {
		return 0, err
	}
	return t.toMass.Eval(xi), nil
}

func (t *table) checkXi(xi float64) error {
	lo, hi := t.toMass.Range()
	if !(xi > lo && xi <= hi) {
		return errorsmod.Wrapf(profile.ErrOutOfRange, "xi = %g is outside "+
			"the integrated range (%g, %g]", xi, lo, hi)
	}
	return nil
}

// edge returns the first sample with a radius of at least xi.
func (t *table) edge(xi float64) (int, error) {
	if err := t.checkXi(xi); err != nil {
		return 0, err
	}
	i := int(xi / t.xi[1])
	if i > len(t.xi)-1 {
		i = len(t.xi) - 1
	}
	for i > 0 && t.xi[i-1] >= xi {
		i--
	}
	for t.xi[i] < xi {
		i++
	}
	return i, nil
}
