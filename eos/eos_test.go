package eos

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rhoprof/profile"
)

func TestFunc(t *testing.T) {
	var e EOS = Func(func(rho float64) float64 { return 3 * rho })
	require.Equal(t, 6.0, e.DPDRho(2))
}

func TestPolytropic(t *testing.T) {
	e := Polytropic{K: 2, Gamma: 5.0 / 3}
	rho, h := 1.7, 1e-6
	num := (e.Pressure(rho+h) - e.Pressure(rho-h)) / (2 * h)
	require.InEpsilon(t, num, e.DPDRho(rho), 1e-8)
}

func TestIsothermal(t *testing.T) {
	e := Isothermal{SoundSpeed: 0.5}
	require.Equal(t, 0.25, e.DPDRho(10))
	require.Equal(t, 2.5, e.Pressure(10))
}

func TestPiecewisePolytrope(t *testing.T) {
	pp, err := NewPiecewisePolytrope(1, []float64{1.2, 2, 1.5}, []float64{1, 4})
	require.NoError(t, err)

	k := pp.K()
	require.Equal(t, 1.0, k[0])
	require.InEpsilon(t, math.Pow(1, 1.2-2), k[1], 1e-12)
	require.InEpsilon(t, k[1]*math.Pow(4, 2-1.5), k[2], 1e-12)

	// Pressure is continuous across each dividing density.
	for _, rho := range []float64{1, 4} {
		lo, hi := rho*(1-1e-10), rho*(1+1e-10)
		require.InEpsilon(t, pp.Pressure(lo), pp.Pressure(hi), 1e-8)
	}

	require.InEpsilon(t, 1.2*math.Pow(0.5, 0.2), pp.DPDRho(0.5), 1e-12)
	require.InEpsilon(t, 2*k[1]*2, pp.DPDRho(2), 1e-12)
	require.InEpsilon(t, 1.5*k[2]*math.Pow(9, 0.5), pp.DPDRho(9), 1e-12)
}

func TestPiecewisePolytropeInvalid(t *testing.T) {
	table := []struct {
		k0             float64
		gammas, divide []float64
	}{
		{1, []float64{}, []float64{}},
		{1, []float64{1.5, 2}, []float64{}},
		{0, []float64{1.5}, []float64{}},
		{1, []float64{1.5, -2}, []float64{1}},
		{1, []float64{1.5, 2, 3}, []float64{2, 1}},
		{1, []float64{1.5, 2}, []float64{0}},
	}

	for i := range table {
		_, err := NewPiecewisePolytrope(
			table[i].k0, table[i].gammas, table[i].divide,
		)
		require.Truef(t, errors.Is(err, profile.ErrBadParameter),
			"%d) expected ErrBadParameter, got %v", i, err)
	}
}
