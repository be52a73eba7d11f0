package profile

import (
	"math"
)

// ShellMass computes the mass enclosed by each sample of a (r, rho) table.
// Each sample owns the shell between the midpoints to its neighbors. The
// innermost sample is a uniform sphere out to the first midpoint and the
// outermost shell ends at r[N-1]. The result is written to out[0] if it is
// supplied.
func ShellMass(r, rho []float64, out ...[]float64) []float64 {
	if len(r) != len(rho) {
		panic("Length of r and rho are not the same.")
	}

	var m []float64
	if len(out) == 0 {
		m = make([]float64, len(r))
	} else {
		m = out[0]
		if len(m) != len(r) {
			panic("Length of out and r are not the same.")
		}
	}

	accumulate(r, rho, func(i int, mi float64) { m[i] = mi })
	return m
}

// TotalMass returns the last element of ShellMass(r, rho) without
// allocating a mass table.
func TotalMass(r, rho []float64) float64 {
	if len(r) != len(rho) {
		panic("Length of r and rho are not the same.")
	}

	m := 0.0
	accumulate(r, rho, func(_ int, mi float64) { m = mi })
	return m
}

// accumulate walks the shells of a (r, rho) table from the center outwards
// and passes the enclosed mass at each sample to visit.
func accumulate(r, rho []float64, visit func(i int, m float64)) {
	n := len(r)
	switch n {
	case 0:
		return
	case 1:
		visit(0, 4*math.Pi/3*rho[0]*r[0]*r[0]*r[0])
		return
	}

	edge := (r[0] + r[1]) / 2
	m := 4 * math.Pi / 3 * rho[0] * edge * edge * edge
	visit(0, m)
	for i := 1; i < n; i++ {
		inner := edge
		if i < n-1 {
			edge = (r[i] + r[i+1]) / 2
		} else {
			edge = r[n-1]
		}
		m += 4 * math.Pi * r[i] * r[i] * rho[i] * (edge - inner)
		visit(i, m)
	}
}
