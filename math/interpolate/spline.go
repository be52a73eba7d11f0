package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points.
type Spline struct {
	xs     searcher
	ys     []float64
	y2s    []float64
	coeffs []splineCoeff
}

// NewSpline creates a spline based off a table of x and y values. The values
// must be sorted in strictly increasing order in x.
func NewSpline(xs, ys []float64) *Spline {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("Table given to NewSpline() has len(xs) = %d "+
			"but len(ys) = %d.", len(xs), len(ys)))
	} else if len(xs) <= 2 {
		panic(fmt.Sprintf("Table given to NewSpline() has "+
			"length of %d.", len(xs)))
	}

	sp := &Spline{
		y2s:    make([]float64, len(xs)),
		coeffs: make([]splineCoeff, len(xs)-1),
	}
	sp.Init(xs, ys)

	return sp
}

// Init reinitializes a spline to use a new sequence of points without doing
// any additional heap allocations. |xs| and |ys| must be the same as the
// previous point set.
func (sp *Spline) Init(xs, ys []float64) {
	if len(xs) != len(sp.y2s) || len(ys) != len(sp.y2s) {
		panic("Length of input arrays do not equal internal spline arrays.")
	}
	sp.xs.init(xs)
	sp.ys = ys

	sp.calcY2s()
	sp.calcCoeffs()
}

// Eval computes the value of the spline at the given point.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Eval(x float64) float64 {
	return sp.Deriv(x, 0)
}

func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

func (sp *Spline) Range() (lo, hi float64) {
	return sp.xs.x0, sp.xs.lim
}

// Deriv computes the derivative of spline at the given point to the
// specified order.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Deriv(x float64, order int) float64 {
	i := sp.xs.search(x)
	dx := x - sp.xs.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// Integrate integrates the spline from lo to hi.
func (sp *Spline) Integrate(lo, hi float64) float64 {
	if lo > hi {
		return -sp.Integrate(hi, lo)
	}

	xs := sp.xs.xs
	iLo, iHi := sp.xs.search(lo), sp.xs.search(hi)
	if iLo == iHi {
		return sp.integTerm(iLo, hi) - sp.integTerm(iLo, lo)
	}

	sum := sp.integTerm(iLo, xs[iLo+1]) - sp.integTerm(iLo, lo) +
		sp.integTerm(iHi, hi)
	for i := iLo + 1; i < iHi; i++ {
		sum += sp.integTerm(i, xs[i+1])
	}
	return sum
}

// integTerm integrates the i-th polynomial from xs[i] to x.
func (sp *Spline) integTerm(i int, x float64) float64 {
	c := &sp.coeffs[i]
	dx := x - sp.xs.xs[i]
	return c.a*dx*dx*dx*dx/4 + c.b*dx*dx*dx/3 + c.c*dx*dx/2 + c.d*dx
}

// calcY2s computes the second derivative at every point in the table. The
// boundaries are set to zero.
func (sp *Spline) calcY2s() {
	n := len(sp.y2s)
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)
	sp.y2s[0], sp.y2s[n-1] = 0, 0

	xs, ys := sp.xs.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.xs.xs, sp.ys, sp.y2s
	for i := range coeffs {
		dx := xs[i+1] - xs[i]
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * dx)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/dx - dx*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}
