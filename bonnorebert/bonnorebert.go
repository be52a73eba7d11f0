/*
package bonnorebert generates Bonnor-Ebert spheres: pressure-bounded
isothermal spheres. The isothermal Lane-Emden equation has a single
solution, so it is integrated once and rescaled to the requested sphere.
*/
package bonnorebert

import (
	"bufio"
	"fmt"
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/go-kit/log"

	"github.com/phil-mansfield/rhoprof/logging"
	"github.com/phil-mansfield/rhoprof/profile"
)

const (
	// CriticalXi is the dimensionless radius of the critical sphere.
	CriticalXi = 6.45
	// Span is how far the dimensionless solution is integrated.
	Span = 5.01 * CriticalXi
	// CriticalContrast is the central to edge density ratio that a sphere
	// must exceed to be unstable to collapse.
	CriticalContrast = 14.1
	// DefaultCapacity is the default number of samples in the dimensionless
	// table.
	DefaultCapacity = 4000
	// ArtifactName is the file the command line tool writes WriteTable's
	// output to.
	ArtifactName = "BonnorEbert.txt"
)

// Result is a generated Bonnor-Ebert sphere.
type Result struct {
	Profile *profile.Profile
	// RhoC is the central density, R the radius, Xi the dimensionless
	// radius and M the mass of the sphere.
	RhoC, R, Xi, M float64
	// Contrast is the ratio of central to edge density.
	Contrast float64
	// Edge is the index of the last sample.
	Edge int
}

type params struct {
	cs, G    float64
	override bool
	capacity int
	artifact io.Writer
	logger   log.Logger
}

type internalOption func(*params)
type Option internalOption

// SoundSpeed sets the isothermal sound speed. The default is 1.
func SoundSpeed(cs float64) Option {
	return func(p *params) { p.cs = cs }
}

// G sets the gravitational constant. The default is 1.
func G(g float64) Option {
	return func(p *params) { p.G = g }
}

// Override lets spheres below the critical contrast be generated.
func Override(override bool) Option {
	return func(p *params) { p.override = override }
}

// Capacity sets the number of samples in the dimensionless table.
func Capacity(n int) Option {
	return func(p *params) { p.capacity = n }
}

// Artifact sets a writer that the sphere is written to with WriteTable once
// all the numerics have succeeded, even if the sphere fails the contrast
// check.
func Artifact(w io.Writer) Option {
	return func(p *params) { p.artifact = w }
}

func Logger(l log.Logger) Option {
	return func(p *params) { p.logger = l }
}

func (p *params) loadOptions(opts []Option) {
	p.cs, p.G, p.capacity = 1, 1, DefaultCapacity
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Logger("module", "bonnorebert")
	}
}

// CheckContrast returns profile.ErrStable unless the contrast is strictly
// larger than CriticalContrast or override is set.
func CheckContrast(contrast float64, override bool) error {
	if contrast > CriticalContrast || override {
		return nil
	}
	return errorsmod.Wrapf(profile.ErrStable, "density contrast %.4g is not "+
		"above %g", contrast, CriticalContrast)
}

// Generate creates the Bonnor-Ebert sphere selected by par. The returned
// profile has Mass and Pressure filled. On failure the profile is empty,
// but the scalars of a sphere which failed the contrast check are still
// returned.
func Generate(par Params, opts ...Option) (Result, error) {
	p := &params{}
	p.loadOptions(opts)
	empty := Result{Profile: profile.New(0)}

	if par == nil {
		return empty, errorsmod.Wrap(profile.ErrBadParameter,
			"no Bonnor-Ebert parameters given")
	} else if err := positive("sound speed and G", p.cs, p.G); err != nil {
		return empty, err
	} else if p.capacity < 4 {
		return empty, errorsmod.Wrapf(profile.ErrBadParameter,
			"capacity %d is too small", p.capacity)
	}

	t := newTable(p.capacity)
	c := constants{cs: p.cs, G: p.G}
	rhoc, xi, err := par.resolve(t, c)
	if err != nil {
		return empty, errorsmod.Wrapf(err, "resolving %s", par)
	}
	edge, err := t.edge(xi)
	if err != nil {
		return empty, errorsmod.Wrapf(err, "resolving %s", par)
	}

	prof := profile.New(edge + 1)
	prof.Reserve(edge + 1)
	copy(prof.R, t.xi[:edge+1])
	copy(prof.Rho, t.rho[:edge+1])
	prof.Scale(c.scaleRadius(rhoc), rhoc)
	prof.EnclosedMass()
	prof.Pressure = make([]float64, edge+1)
	for i := range prof.Pressure {
		prof.Pressure[i] = p.cs * p.cs * prof.Rho[i]
	}

	res := Result{
		Profile: prof, RhoC: rhoc, R: prof.R[edge], Xi: t.xi[edge],
		M: prof.Mass[edge], Contrast: t.rho[0] / t.rho[edge], Edge: edge,
	}
	logging.LogDebug(p.logger, "params", par, "rhoc", res.RhoC, "R", res.R,
		"xi", res.Xi, "M", res.M, "contrast", res.Contrast, "edge", edge)

	checkErr := CheckContrast(res.Contrast, p.override)
	if res.Contrast <= CriticalContrast {
		logging.LogWarn(p.logger, "msg", "sphere is not unstable to collapse",
			"contrast", res.Contrast, "critical", CriticalContrast,
			"override", p.override)
	}

	if p.artifact != nil {
		if err := WriteTable(p.artifact, prof); err != nil {
			res.Profile = profile.New(0)
			return res, err
		}
	}

	if checkErr != nil {
		res.Profile = profile.New(0)
		return res, checkErr
	}
	return res, nil
}

// WriteTable writes the radius, enclosed mass and density of p as a text
// table with a one line header.
func WriteTable(w io.Writer, p *profile.Profile) error {
	if len(p.Mass) != p.Len() {
		return errorsmod.Wrap(profile.ErrDataUnavailable,
			"profile has no enclosed mass table")
	}

	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "%18s %18s %18s\n", "r(code)", "M_enc(code)", "rho(code)")
	for i := range p.R {
		fmt.Fprintf(buf, "%18.10E %18.10E %18.10E\n", p.R[i], p.Mass[i], p.Rho[i])
	}
	if err := buf.Flush(); err != nil {
		return errorsmod.Wrap(err, "writing Bonnor-Ebert table")
	}
	return nil
}
