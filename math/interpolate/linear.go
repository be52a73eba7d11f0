package interpolate

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a strictly increasing sequence
// of points, xs, which take on the values given by vals.
//
// Lookups will occur in O(log |xs|), or O(1) when successive lookups move
// outward through the table.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	}
	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// Eval returns the interpolated value at x.
//
// Eval panics if called on a values outside the supplied range on inputs.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(lin, xs, out)
}

func (lin *Linear) Range() (lo, hi float64) {
	return lin.xs.x0, lin.xs.lim
}
