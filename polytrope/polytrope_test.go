package polytrope

import (
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rhoprof/profile"
)

func nop() Option { return Logger(log.NewNopLogger()) }

func TestGenerateEndToEnd(t *testing.T) {
	res, err := Generate(5.0/3, 1, 1, 4000, nop())
	require.NoError(t, err)

	p := res.Profile
	n := p.Len()
	require.LessOrEqual(t, n, 4000)
	require.Equal(t, 0.0, p.R[0])
	require.Equal(t, 0.0, p.Rho[n-1])
	require.Equal(t, res.RhoC, p.Rho[0])
	require.Equal(t, res.R, p.R[n-1])
	for i := 1; i < n; i++ {
		require.Less(t, p.Rho[i], p.Rho[i-1])
		require.Greater(t, p.R[i], p.R[i-1])
	}

	require.InDelta(t, 1, profile.TotalMass(p.R, p.Rho), 1e-10)
	require.InDelta(t, 1, p.Mass[n-1], 1e-10)
	require.Equal(t, 1e-3, res.StepSize)
}

func TestGenerateMass(t *testing.T) {
	gammas := []float64{1.25, 1.4, 1.5, 5.0 / 3, 1.9}
	masses := []float64{1, 0.3, 7}

	for _, gamma := range gammas {
		for _, M := range masses {
			res, err := Generate(gamma, 0.5, M, 4000, nop())
			require.NoErrorf(t, err, "gamma = %g, M = %g", gamma, M)
			mass := profile.TotalMass(res.Profile.R, res.Profile.Rho)
			require.InEpsilonf(t, M, mass, 1e-12,
				"gamma = %g, M = %g", gamma, M)
		}
	}
}

func TestGenerateStepDoubling(t *testing.T) {
	// n = 4 reaches the surface at xi = 14.97, which doesn't fit in 4000
	// samples at the default step.
	res, err := Generate(1.25, 1, 1, 4000, nop())
	require.NoError(t, err)
	require.Equal(t, 4e-3, res.StepSize)

	_, err = Generate(1.25, 1, 1, 4000, Doublings(1), nop())
	require.True(t, errors.Is(err, profile.ErrStepLimit))
}

func TestGenerateSetK(t *testing.T) {
	res0, err := Generate(5.0/3, 1, 1, 4000, nop())
	require.NoError(t, err)

	res, err := Generate(5.0/3, 1, 1, 4000, Radius(2), SetK(true), nop())
	require.NoError(t, err)
	require.InEpsilon(t, 2, res.R, 1e-12)
	require.InEpsilon(t, 2/res0.R, res.K, 1e-12)
	require.InEpsilon(t, 1, profile.TotalMass(res.Profile.R, res.Profile.Rho), 1e-12)

	// A radius alone doesn't change K.
	res, err = Generate(5.0/3, 1, 1, 4000, Radius(2), nop())
	require.NoError(t, err)
	require.Equal(t, 1.0, res.K)
}

func TestGenerateHydrostatic(t *testing.T) {
	res, err := Generate(1.5, 2, 3, 4000, nop())
	require.NoError(t, err)
	resid, err := res.Profile.HydrostaticResidual(1)
	require.NoError(t, err)
	require.Less(t, resid, 5e-3)
}

func TestGenerateInvalid(t *testing.T) {
	table := []struct {
		gamma, K, M float64
		capacity    int
		opts        []Option
	}{
		{4.0 / 3, 1, 1, 4000, nil},
		{1, 1, 1, 4000, nil},
		{2, 1, 1, 4000, nil},
		{5.0 / 3, 0, 1, 4000, nil},
		{5.0 / 3, 1, -1, 4000, nil},
		{5.0 / 3, 1, 1, 2, nil},
		{5.0 / 3, 1, 1, -1, nil},
		{5.0 / 3, 1, 1, 4000, []Option{SetK(true)}},
		{5.0 / 3, 1, 1, 4000, []Option{G(0)}},
	}

	for i := range table {
		tt := table[i]
		res, err := Generate(tt.gamma, tt.K, tt.M, tt.capacity,
			append(tt.opts, nop())...)
		require.Truef(t, errors.Is(err, profile.ErrBadParameter),
			"%d) expected ErrBadParameter, got %v", i, err)
		require.Equal(t, 0, res.Profile.Len())
	}
}
