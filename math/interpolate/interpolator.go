/*
package interpolate implements the 1D interpolators used to invert and
resample radial profile tables.
*/
package interpolate

// Interpolator is a 1D interpolator. These interpolators cache lookup state,
// so they are not thread safe.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
	// Range returns the smallest and largest x values which can be passed to
	// Eval.
	Range() (lo, hi float64)
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)

func evalAll(in Interpolator, xs []float64, out [][]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = in.Eval(xs[i])
	}
	return out[0]
}
