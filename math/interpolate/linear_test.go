package interpolate

import (
	"math"
	"testing"
)

func TestLinear(t *testing.T) {
	xs := []float64{0, 1, 3, 6}
	vals := []float64{0, 2, 0, 3}
	lin := NewLinear(xs, vals)

	table := []struct{ x, y float64 }{
		{0, 0}, {0.5, 1}, {1, 2}, {2, 1}, {3, 0}, {5, 2}, {6, 3}, {0.25, 0.5},
	}
	for i := range table {
		if y := lin.Eval(table[i].x); math.Abs(y-table[i].y) > 1e-12 {
			t.Errorf("%d) Linear.Eval(%g) = %g, not %g.",
				i, table[i].x, y, table[i].y)
		}
	}

	if lo, hi := lin.Range(); lo != 0 || hi != 6 {
		t.Errorf("Linear.Range() = (%g, %g), not (0, 6).", lo, hi)
	}
}

func TestLinearUnsorted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewLinear accepted an unsorted table.")
		}
	}()
	NewLinear([]float64{0, 2, 1}, []float64{0, 1, 2})
}
