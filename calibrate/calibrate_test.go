package calibrate

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/rhoprof/integrate"
	"github.com/phil-mansfield/rhoprof/profile"
)

func powerLaw(a, p float64) Shooter {
	return func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		return a * math.Pow(rhoc, p), 100, integrate.Completed, nil
	}
}

func TestCentralDensityMonotone(t *testing.T) {
	table := []struct {
		a, p, target, rhoc float64
	}{
		{4, 0.5, 3, 1},
		{4, 0.5, 12, 1},
		{1, 1, 0.5, 1},
		{0.5, 2, 7, 10},
	}

	for i := range table {
		tt := table[i]
		res, err := CentralDensity(tt.target, tt.rhoc, 0.1,
			powerLaw(tt.a, tt.p), Logger(log.NewNopLogger()))
		require.NoErrorf(t, err, "%d) target %g", i, tt.target)
		require.Lessf(t, math.Abs(res.Mass-tt.target)/tt.target, Tolerance,
			"%d) mass %g, target %g", i, res.Mass, tt.target)
		require.InEpsilon(t, math.Pow(tt.target/tt.a, 1/tt.p),
			res.CentralDensity, 1e-10)
		require.LessOrEqual(t, res.Iterations, MaxIterations)
		require.Equal(t, 0.1, res.StepSize)
	}
}

func TestCentralDensitySchedule(t *testing.T) {
	var seen []float64
	shoot := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		seen = append(seen, rhoc)
		return rhoc, 100, integrate.Completed, nil
	}

	_, err := CentralDensity(2, 1, 0.1, shoot,
		Iterations(12), Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, profile.ErrNoConvergence))

	// Cube root rescale, then 10% steps until the mass passes 2, then the
	// step is halved and reversed at every crossing.
	c := math.Cbrt(2)
	d := 0.1 * c
	want := []float64{
		1, c, c + d, c + 2*d, c + 3*d, c + 4*d, c + 5*d,
		c + 6*d,
		c + 6*d - d/2,
		c + 6*d - d/2 + d/4, c + 6*d - d/2 + d/2,
		c + 6*d - d/2 + d/2 - d/8,
	}
	require.Len(t, seen, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], seen[i], 1e-12, "iteration %d", i)
	}
	require.InDelta(t, 2.015873679831798, seen[7], 1e-12)
	require.InDelta(t, 1.9528776273370543, seen[8], 1e-12)
}

func TestCentralDensityOverrun(t *testing.T) {
	calls := 0
	shoot := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		calls++
		if dr < 0.01 {
			return 0, 100, integrate.Overrun, nil
		}
		return 2 * rhoc, 50, integrate.Completed, nil
	}

	res, err := CentralDensity(3, 1, 1e-3, shoot, Logger(log.NewNopLogger()))
	require.NoError(t, err)
	require.Equal(t, 0.016, res.StepSize)
	require.Equal(t, 50, res.Npts)
	require.InEpsilon(t, 1.5, res.CentralDensity, 1e-10)
	// Only the first iteration needed to double its step.
	require.Equal(t, res.Iterations+4, calls)
}

func TestCentralDensityStepLimit(t *testing.T) {
	shoot := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		return 0, 10, integrate.Overrun, nil
	}
	_, err := CentralDensity(1, 1, 1, shoot,
		Doublings(5), Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, profile.ErrStepLimit))
}

func TestCentralDensityNoConvergence(t *testing.T) {
	flat := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		return 4.5, 100, integrate.Completed, nil
	}
	_, err := CentralDensity(50, 1, 0.1, flat, Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, profile.ErrNoConvergence))

	// Mass falls as rhoc grows, so the search walks until the mass is
	// negative.
	falling := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		return 10 - 5*rhoc, 100, integrate.Completed, nil
	}
	_, err = CentralDensity(9, 1, 0.1, falling, Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, profile.ErrNoConvergence))

	_, err = CentralDensity(3, 1, 0.1, powerLaw(4, 0.5),
		Iterations(3), Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, profile.ErrNoConvergence))
}

func TestCentralDensityErrors(t *testing.T) {
	myErr := errors.New("EOS table missing")
	shoot := func(rhoc, dr float64) (float64, int, integrate.Status, error) {
		return 0, 0, integrate.Completed, myErr
	}
	_, err := CentralDensity(1, 1, 0.1, shoot, Logger(log.NewNopLogger()))
	require.True(t, errors.Is(err, myErr))

	_, err = CentralDensity(-1, 1, 0.1, powerLaw(1, 1))
	require.True(t, errors.Is(err, profile.ErrBadParameter))
	_, err = CentralDensity(1, 1, 0, powerLaw(1, 1))
	require.True(t, errors.Is(err, profile.ErrBadParameter))
}

func TestCentralDensityLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	l := level.NewFilter(log.NewLogfmtLogger(buf), level.AllowDebug())

	_, err := CentralDensity(3, 1, 0.1, powerLaw(4, 0.5), Logger(l))
	require.NoError(t, err)
	require.True(t, strings.Contains(buf.String(), "iter=0"))
	require.True(t, strings.Contains(buf.String(), "level=debug"))
}
