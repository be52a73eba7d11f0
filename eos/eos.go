/*
package eos contains the equations of state used by the hydrostatic
stepper. An EOS only needs to supply dP/drho as a function of density and
must not keep any state between calls.
*/
package eos

import (
	"fmt"
	"math"
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/profile"
)

// EOS gives the derivative of pressure with respect to density.
type EOS interface {
	DPDRho(rho float64) float64
}

// Pressurer is implemented by equations of state with a closed-form
// pressure.
type Pressurer interface {
	Pressure(rho float64) float64
}

// Func adapts a plain function into an EOS.
type Func func(rho float64) float64

func (f Func) DPDRho(rho float64) float64 { return f(rho) }

// Polytropic is the EOS P = K rho^Gamma.
type Polytropic struct {
	K, Gamma float64
}

func (eos Polytropic) DPDRho(rho float64) float64 {
	return eos.Gamma * eos.K * math.Pow(rho, eos.Gamma-1)
}

func (eos Polytropic) Pressure(rho float64) float64 {
	return eos.K * math.Pow(rho, eos.Gamma)
}

// Isothermal is the EOS P = cs^2 rho.
type Isothermal struct {
	SoundSpeed float64
}

func (eos Isothermal) DPDRho(rho float64) float64 {
	return eos.SoundSpeed * eos.SoundSpeed
}

func (eos Isothermal) Pressure(rho float64) float64 {
	return eos.SoundSpeed * eos.SoundSpeed * rho
}

// PiecewisePolytrope is a sequence of polytropic segments joined at
// dividing densities. Segment k covers densities between divide[k-1] and
// divide[k]. The K of each segment after the first is chosen so that the
// pressure is continuous.
type PiecewisePolytrope struct {
	divide []float64
	k      []float64
	gamma  []float64
}

// NewPiecewisePolytrope creates a piecewise polytrope whose lowest density
// segment has P = k0 rho^gammas[0]. rhoDivide holds the len(gammas) - 1
// increasing densities where segments meet.
func NewPiecewisePolytrope(
	k0 float64, gammas, rhoDivide []float64,
) (*PiecewisePolytrope, error) {
	if len(gammas) == 0 || len(rhoDivide) != len(gammas)-1 {
		return nil, errorsmod.Wrapf(profile.ErrBadParameter,
			"%d adiabatic indices need %d dividing densities, got %d",
			len(gammas), len(gammas)-1, len(rhoDivide))
	} else if k0 <= 0 {
		return nil, errorsmod.Wrapf(profile.ErrBadParameter,
			"polytropic constant %g is not positive", k0)
	}
	for i := range gammas {
		if gammas[i] <= 0 {
			return nil, errorsmod.Wrapf(profile.ErrBadParameter,
				"adiabatic index %d is %g", i, gammas[i])
		}
	}
	if !sort.Float64sAreSorted(rhoDivide) || (len(rhoDivide) > 0 && rhoDivide[0] <= 0) {
		return nil, errorsmod.Wrapf(profile.ErrBadParameter,
			"dividing densities %v are not positive and increasing", rhoDivide)
	}

	pp := &PiecewisePolytrope{
		divide: append([]float64{}, rhoDivide...),
		k:      make([]float64, len(gammas)),
		gamma:  append([]float64{}, gammas...),
	}
	pp.k[0] = k0
	for i := 1; i < len(gammas); i++ {
		pp.k[i] = pp.k[i-1] *
			math.Pow(rhoDivide[i-1], pp.gamma[i-1]-pp.gamma[i])
	}

	return pp, nil
}

func (pp *PiecewisePolytrope) segment(rho float64) int {
	return sort.SearchFloat64s(pp.divide, rho)
}

func (pp *PiecewisePolytrope) DPDRho(rho float64) float64 {
	i := pp.segment(rho)
	return pp.gamma[i] * pp.k[i] * math.Pow(rho, pp.gamma[i]-1)
}

func (pp *PiecewisePolytrope) Pressure(rho float64) float64 {
	i := pp.segment(rho)
	return pp.k[i] * math.Pow(rho, pp.gamma[i])
}

// K returns the polytropic constant of each segment.
func (pp *PiecewisePolytrope) K() []float64 {
	return append([]float64{}, pp.k...)
}

func (pp *PiecewisePolytrope) String() string {
	return fmt.Sprintf("PiecewisePolytrope{K: %v, Gamma: %v, Divide: %v}",
		pp.k, pp.gamma, pp.divide)
}
