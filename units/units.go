/*
package units contains physical constants in cgs and the code unit system
that profiles are generated in. Code units have G = 1, so a choice of mass
and length units fixes every other unit.
*/
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Physical constants in cgs.
const (
	GCGS    = 6.674e-8
	KBCGS   = 1.380649e-16
	MHCGS   = 1.6735575e-24
	MSunCGS = 1.98847e33
	RSunCGS = 6.957e10
	AUCGS   = 1.495978707e13
	PcCGS   = 3.0856775814913673e18
	KmCGS   = 1e5
	YearCGS = 3.15576e7
)

var named = map[string]float64{
	"g":    1,
	"cm":   1,
	"msun": MSunCGS,
	"rsun": RSunCGS,
	"au":   AUCGS,
	"pc":   PcCGS,
	"km":   KmCGS,
}

// Lookup converts a unit name, such as "msun" or "au", or a plain number into
// its value in cgs.
func Lookup(name string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if val, ok := named[key]; ok {
		return val, nil
	}
	val, err := strconv.ParseFloat(key, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("'%s' is not a known unit name or a positive "+
			"number.", name)
	}
	return val, nil
}

// System is a code unit system with G = 1.
type System struct {
	Mass, Length float64 // cgs
}

// Code is the unit system where every conversion factor is one.
var Code = System{Mass: 1 / GCGS, Length: 1}

func NewSystem(mass, length string) (System, error) {
	m, err := Lookup(mass)
	if err != nil {
		return System{}, err
	}
	l, err := Lookup(length)
	if err != nil {
		return System{}, err
	}
	return System{Mass: m, Length: l}, nil
}

// Time is the unit of time in seconds.
func (s System) Time() float64 {
	return math.Sqrt(s.Length * s.Length * s.Length / (GCGS * s.Mass))
}

func (s System) Velocity() float64 { return s.Length / s.Time() }

func (s System) Density() float64 {
	return s.Mass / (s.Length * s.Length * s.Length)
}

func (s System) Pressure() float64 {
	v := s.Velocity()
	return s.Density() * v * v
}

// SpecificEnergy is the unit of energy per unit mass.
func (s System) SpecificEnergy() float64 {
	v := s.Velocity()
	return v * v
}

// SoundSpeed returns the isothermal sound speed in cm/s of gas at temperature
// T (K) with mean molecular weight mu.
func SoundSpeed(T, mu float64) float64 {
	return math.Sqrt(KBCGS * T / (mu * MHCGS))
}

// Temperature inverts SoundSpeed.
func Temperature(cs, mu float64) float64 {
	return cs * cs * mu * MHCGS / KBCGS
}
