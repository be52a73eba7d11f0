package units

import (
	"math"
	"testing"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps*math.Max(math.Abs(x), math.Abs(y))
}

func TestLookup(t *testing.T) {
	table := []struct {
		name  string
		val   float64
		valid bool
	}{
		{"msun", MSunCGS, true},
		{" AU ", AUCGS, true},
		{"2.5e10", 2.5e10, true},
		{"-1", 0, false},
		{"furlong", 0, false},
	}

	for i := range table {
		val, err := Lookup(table[i].name)
		if (err == nil) != table[i].valid {
			t.Errorf("%d) Expected valid = %v for '%s', got err = %v.",
				i, table[i].valid, table[i].name, err)
		} else if table[i].valid && val != table[i].val {
			t.Errorf("%d) Lookup('%s') = %g, not %g.",
				i, table[i].name, val, table[i].val)
		}
	}
}

func TestCodeUnits(t *testing.T) {
	if !almostEq(Code.Time(), 1, 1e-12) {
		t.Errorf("Code time unit is %g, not 1.", Code.Time())
	}

	sys, err := NewSystem("msun", "au")
	if err != nil {
		t.Fatal(err.Error())
	}
	// One AU orbit around the sun takes 2 pi code times, about a year.
	year := 2 * math.Pi * sys.Time()
	if !almostEq(year, YearCGS, 1e-3) {
		t.Errorf("Orbital period at 1 AU is %g s, not %g s.", year, YearCGS)
	}

	if !almostEq(sys.Pressure(), sys.Density()*sys.SpecificEnergy(), 1e-12) {
		t.Errorf("Pressure unit is not density times specific energy.")
	}
}

func TestSoundSpeed(t *testing.T) {
	cs := SoundSpeed(10, 2.33)
	if !almostEq(Temperature(cs, 2.33), 10, 1e-12) {
		t.Errorf("Temperature(SoundSpeed(10)) = %g.", Temperature(cs, 2.33))
	}
	// Cold molecular gas has cs of about 0.19 km/s.
	if cs < 1.8e4 || cs > 2.0e4 {
		t.Errorf("SoundSpeed(10 K, 2.33) = %g cm/s.", cs)
	}
}
