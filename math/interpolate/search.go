package interpolate

import (
	"fmt"
)

// searcher finds the interval containing a point in a strictly increasing
// table. The last interval found is cached, since profile lookups usually
// walk outward through the table.
type searcher struct {
	xs          []float64
	x0, dx, lim float64
	n           int
	last        int
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Table of length %d cannot be searched.", len(xs)))
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i+1] <= xs[i] {
			panic(fmt.Sprintf("Table is not strictly increasing at "+
				"index %d: %g, %g.", i, xs[i], xs[i+1]))
		}
	}

	s.xs = xs
	s.x0 = xs[0]
	s.lim = xs[len(xs)-1]
	s.dx = (s.lim - s.x0) / float64(len(xs)-1)
	s.n = len(xs)
	s.last = 0
}

// search returns the index of the interval [xs[i], xs[i+1]] containing x.
func (s *searcher) search(x float64) int {
	if x > s.lim || x < s.x0 {
		panic(fmt.Sprintf(
			"Value %g out of range bounds [%g, %g]", x, s.x0, s.lim,
		))
	}

	if s.contains(s.last, x) {
		return s.last
	} else if s.contains(s.last+1, x) {
		s.last++
		return s.last
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.x0) / s.dx)
	if s.contains(guess, x) {
		s.last = guess
		return guess
	}

	// Binary search.
	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= s.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}

	s.last = lo
	return lo
}

func (s *searcher) contains(i int, x float64) bool {
	return i >= 0 && i < s.n-1 && s.xs[i] <= x && x <= s.xs[i+1]
}

func (s *searcher) val(i int) float64 { return s.xs[i] }
